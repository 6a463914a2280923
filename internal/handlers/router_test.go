package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/dream-finder/internal/auth"
	"github.com/justsurfingit/dream-finder/internal/dtos"
	"github.com/justsurfingit/dream-finder/internal/models"
	"github.com/justsurfingit/dream-finder/internal/services"
	"github.com/justsurfingit/dream-finder/internal/store/memstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	store  *memstore.Store
	tokens *auth.Tokens
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	st := memstore.New()
	tokens := auth.NewTokens("test-secret", time.Hour)
	gate := auth.NewGate(tokens, st)
	h := Handlers{
		Jobs:         NewJobHandler(services.NewJobService(st, nil, 9)),
		Users:        NewUserHandler(services.NewUserService(st), tokens),
		Companies:    NewCompanyHandler(services.NewCompanyService(st, nil)),
		Applications: NewApplicationHandler(services.NewApplicationService(st)),
		Bookmarks:    NewBookmarkHandler(services.NewBookmarkService(st, 7)),
		Feedback:     NewFeedbackHandler(services.NewFeedbackService(st, nil)),
	}
	r := NewRouter(RouterConfig{Gate: gate, CORSOrigins: []string{"http://localhost:5174"}}, h)
	return &testServer{router: r, store: st, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) token(t *testing.T, email string) string {
	t.Helper()
	raw, _, err := s.tokens.Issue(email)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func (s *testServer) user(t *testing.T, email string, role models.Role) {
	t.Helper()
	if err := s.store.InsertUser(context.Background(), &models.User{Email: email, Role: role}); err != nil {
		t.Fatal(err)
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestCreateUserTwice(t *testing.T) {
	s := newTestServer(t)
	body := dtos.UserCreationRequest{Name: "Ada", Email: "ada@example.com"}

	first := decode[dtos.InsertedResponse](t, s.do(t, http.MethodPost, "/create/user", "", body))
	if first.InsertedID == nil {
		t.Fatal("first create should return an id")
	}
	w := s.do(t, http.MethodPost, "/create/user", "", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decode[map[string]any](t, w); got["insertedId"] != nil {
		t.Errorf("second create insertedId = %v, want null", got["insertedId"])
	}
}

func TestIssueTokenThenCheckRole(t *testing.T) {
	s := newTestServer(t)
	s.user(t, "a@example.com", models.RoleAdmin)

	w := s.do(t, http.MethodPost, "/create/jwt", "", dtos.TokenRequest{Email: "a@example.com"})
	tok := decode[dtos.TokenResponse](t, w)
	if tok.Token == "" {
		t.Fatalf("no token in %s", w.Body.String())
	}

	w = s.do(t, http.MethodGet, "/users/admin/a@example.com", tok.Token, nil)
	if got := decode[map[string]bool](t, w); !got["admin"] {
		t.Errorf("admin check = %s", w.Body.String())
	}
	// A valid token for someone else is refused regardless of role.
	if w := s.do(t, http.MethodGet, "/users/admin/b@example.com", tok.Token, nil); w.Code != http.StatusForbidden {
		t.Errorf("foreign email status = %d, want 403", w.Code)
	}
	w = s.do(t, http.MethodGet, "/users/admin/a@example.com", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing token status = %d, want 401", w.Code)
	}
	if got := decode[map[string]string](t, w); got["error"] == "" {
		t.Errorf("error body = %s, want an error key", w.Body.String())
	}
}

func TestSearchByPopularity(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	for _, v := range []int64{3, 9, 1, 5} {
		job := models.Job{Title: "j", Category: "Design", PostedDate: "2026-10-01", ViewCount: v}
		if err := s.store.InsertJob(ctx, &job); err != nil {
			t.Fatal(err)
		}
	}
	w := s.do(t, http.MethodGet, "/api/v1/jobs?preference=true&category=design", "", nil)
	res := decode[dtos.JobSearchResponse](t, w)
	if res.JobCount != 4 || len(res.Result) != 4 {
		t.Fatalf("got %d of %d", len(res.Result), res.JobCount)
	}
	for i, want := range []int64{9, 5, 3, 1} {
		if res.Result[i].ViewCount != want {
			t.Fatalf("position %d viewCount = %d, want %d", i, res.Result[i].ViewCount, want)
		}
	}

	w = s.do(t, http.MethodGet, "/api/v1/jobs?category=nothing", "", nil)
	if body := w.Body.String(); body != `{"result":[],"jobCount":0}` {
		t.Errorf("empty search body = %s", body)
	}
}

func TestJobIDErrors(t *testing.T) {
	s := newTestServer(t)
	if w := s.do(t, http.MethodPatch, "/incrementAppliedCount/not-an-id", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("malformed id status = %d, want 400", w.Code)
	}
	w := s.do(t, http.MethodPatch, "/incrementAppliedCount/8c1b8f7e-3d0c-4c7a-9a59-2f0f0f6c2d11", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "null" {
		t.Errorf("unknown id = %d %s, want 200 null", w.Code, w.Body.String())
	}
	w = s.do(t, http.MethodGet, "/api/v1/jobs/8c1b8f7e-3d0c-4c7a-9a59-2f0f0f6c2d11", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "null" {
		t.Errorf("unknown job = %d %s, want 200 null", w.Code, w.Body.String())
	}
}

func TestPostJobRequiresHR(t *testing.T) {
	s := newTestServer(t)
	s.user(t, "hr@acme.io", models.RoleHR)
	s.user(t, "seeker@example.com", models.RoleNone)
	body := dtos.JobCreationRequest{
		Title: "Go Engineer", Description: "Build", CompanyName: "Acme",
		Category: "Engineering", Location: "Remote", Types: []string{"remote"},
	}

	if w := s.do(t, http.MethodPost, "/api/v1/post-job", s.token(t, "seeker@example.com"), body); w.Code != http.StatusForbidden {
		t.Errorf("non-hr status = %d, want 403", w.Code)
	}
	w := s.do(t, http.MethodPost, "/api/v1/post-job", s.token(t, "hr@acme.io"), body)
	if w.Code != http.StatusCreated {
		t.Fatalf("hr status = %d: %s", w.Code, w.Body.String())
	}
	job := decode[models.Job](t, w)
	if job.CompanyEmail != "hr@acme.io" {
		t.Errorf("company_email = %q", job.CompanyEmail)
	}

	bad := body
	bad.Types = []string{"freelance"}
	if w := s.do(t, http.MethodPost, "/api/v1/post-job", s.token(t, "hr@acme.io"), bad); w.Code != http.StatusBadRequest {
		t.Errorf("unknown employment type status = %d, want 400", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/v1/posted-jobs/hr@acme.io", s.token(t, "hr@acme.io"), nil)
	if jobs := decode[[]models.Job](t, w); len(jobs) != 1 {
		t.Errorf("posted jobs = %s", w.Body.String())
	}
}

func TestPostJobIgnoresForeignCompanyEmail(t *testing.T) {
	s := newTestServer(t)
	s.user(t, "hr@acme.io", models.RoleHR)
	s.user(t, "hr@rival.io", models.RoleHR)
	acme := s.token(t, "hr@acme.io")
	body := map[string]any{
		"title": "Go Engineer", "description": "Build", "company_name": "Acme",
		"category": "Engineering", "location": "Remote", "company_email": "hr@rival.io",
	}

	w := s.do(t, http.MethodPost, "/api/v1/post-job", acme, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("post status = %d: %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"type":[]`)) {
		t.Errorf("job without types must serialize an empty list: %s", w.Body.String())
	}
	job := decode[models.Job](t, w)
	if job.CompanyEmail != "hr@acme.io" {
		t.Errorf("company_email = %q, want the poster", job.CompanyEmail)
	}

	w = s.do(t, http.MethodGet, "/api/v1/posted-jobs/hr@rival.io", s.token(t, "hr@rival.io"), nil)
	if jobs := decode[[]models.Job](t, w); len(jobs) != 0 {
		t.Errorf("rival sees %d foreign jobs", len(jobs))
	}
	w = s.do(t, http.MethodGet, "/api/v1/posted-jobs/HR@Acme.io", acme, nil)
	if jobs := decode[[]models.Job](t, w); len(jobs) != 1 {
		t.Errorf("mixed-case posted-jobs = %s", w.Body.String())
	}
	w = s.do(t, http.MethodDelete, "/api/v1/jobs/"+job.ID, acme, nil)
	if got := decode[dtos.DeletedResponse](t, w); got.DeletedCount != 1 {
		t.Errorf("owner delete = %s", w.Body.String())
	}
}

func TestApplyCountsOnce(t *testing.T) {
	s := newTestServer(t)
	job := models.Job{Title: "j", PostedDate: "2026-10-01"}
	if err := s.store.InsertJob(context.Background(), &job); err != nil {
		t.Fatal(err)
	}
	tok := s.token(t, "ada@example.com")
	req := dtos.ApplicationRequest{JobID: job.ID, ApplicantName: "Ada", ResumeLink: "https://cv.example.com/ada"}

	if w := s.do(t, http.MethodPost, "/api/v1/apply", tok, req); w.Code != http.StatusCreated {
		t.Fatalf("apply status = %d: %s", w.Code, w.Body.String())
	}
	if w := s.do(t, http.MethodPost, "/api/v1/apply", tok, req); w.Code != http.StatusConflict {
		t.Errorf("second apply status = %d, want 409", w.Code)
	}
	got, _ := s.store.GetJob(context.Background(), job.ID)
	if got.AppliedCount != 1 {
		t.Errorf("appliedCount = %d, want 1", got.AppliedCount)
	}
}

func TestBookmarksEndpoint(t *testing.T) {
	s := newTestServer(t)
	for _, id := range []string{"j1", "j2", "j1"} {
		s.do(t, http.MethodPost, "/bookmark", "", dtos.BookmarkRequest{User: "ada@example.com", JobID: id})
	}
	w := s.do(t, http.MethodGet, "/bookmark/ada@example.com?page=1", "", nil)
	page := decode[dtos.BookmarkPage](t, w)
	if page.Count != 2 || len(page.Bookmarks) != 2 {
		t.Errorf("bookmarks = %s", w.Body.String())
	}
}

func TestContactListIsAdminOnly(t *testing.T) {
	s := newTestServer(t)
	s.user(t, "a@example.com", models.RoleAdmin)
	s.user(t, "blocked@example.com", models.RoleBlocked)
	s.do(t, http.MethodPost, "/contact", "", dtos.ContactRequest{Name: "A", Email: "x@y.co", Message: "hello"})

	if w := s.do(t, http.MethodGet, "/contact", s.token(t, "blocked@example.com"), nil); w.Code != http.StatusForbidden {
		t.Errorf("blocked status = %d, want 403", w.Code)
	}
	w := s.do(t, http.MethodGet, "/contact", s.token(t, "a@example.com"), nil)
	if msgs := decode[[]models.ContactMessage](t, w); len(msgs) != 1 {
		t.Errorf("contacts = %s", w.Body.String())
	}
}

func TestFeedbackValidation(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/feedback", "", dtos.FeedbackRequest{Name: "A", Email: "a@b.co", Rating: 9, Message: "m"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("rating 9 status = %d, want 400", w.Code)
	}
}
