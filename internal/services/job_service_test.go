package services

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/justsurfingit/dream-finder/internal/dtos"
	"github.com/justsurfingit/dream-finder/internal/models"
	"github.com/justsurfingit/dream-finder/internal/store"
	"github.com/justsurfingit/dream-finder/internal/store/memstore"
)

var fixedNow = time.Date(2026, 10, 17, 15, 30, 0, 0, time.UTC)

func newJobService(t *testing.T, pageSize int) (*JobService, *memstore.Store) {
	t.Helper()
	st := memstore.New()
	svc := NewJobService(st, nil, pageSize)
	svc.now = func() time.Time { return fixedNow }
	return svc, st
}

func seedJob(t *testing.T, st *memstore.Store, job models.Job) models.Job {
	t.Helper()
	if job.PostedDate == "" {
		job.PostedDate = "2026-10-01"
	}
	if err := st.InsertJob(context.Background(), &job); err != nil {
		t.Fatalf("InsertJob: %v", err)
	}
	return job
}

func int64p(v int64) *int64 { return &v }

func TestSearch_PaginationCoversEveryMatchOnce(t *testing.T) {
	svc, st := newJobService(t, 9)
	for i := 0; i < 20; i++ {
		seedJob(t, st, models.Job{Title: "job", Category: "Engineering", ViewCount: int64(i % 4)})
	}
	seedJob(t, st, models.Job{Title: "other", Category: "Sales"})

	for _, pref := range []string{"", "true"} {
		seen := map[string]bool{}
		for page := 1; page <= 4; page++ {
			params := url.Values{"category": {"engineering"}, "page": {strconv.Itoa(page)}, "preference": {pref}}
			res, err := svc.Search(context.Background(), params)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if res.JobCount != 20 {
				t.Fatalf("jobCount = %d, want 20", res.JobCount)
			}
			if len(res.Result) > 9 {
				t.Fatalf("page %d has %d jobs, want at most 9", page, len(res.Result))
			}
			for _, j := range res.Result {
				if seen[j.ID] {
					t.Fatalf("preference=%q: job %s on more than one page", pref, j.ID)
				}
				seen[j.ID] = true
			}
		}
		if len(seen) != 20 {
			t.Errorf("preference=%q: pages covered %d jobs, want 20", pref, len(seen))
		}
	}
}

func TestSearch_EmptyResultIsArray(t *testing.T) {
	svc, _ := newJobService(t, 9)
	res, err := svc.Search(context.Background(), url.Values{"category": {"nothing"}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Result == nil || len(res.Result) != 0 || res.JobCount != 0 {
		t.Errorf("got %+v, want empty non-nil result and zero count", res)
	}
}

func TestSearch_PopularityOrder(t *testing.T) {
	svc, st := newJobService(t, 9)
	for _, v := range []int64{3, 9, 1, 5} {
		seedJob(t, st, models.Job{Title: "j", ViewCount: v})
	}
	res, err := svc.Search(context.Background(), url.Values{"preference": {"true"}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	var got []int64
	for _, j := range res.Result {
		got = append(got, j.ViewCount)
	}
	want := []int64{9, 5, 3, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSearch_SalaryBounds(t *testing.T) {
	svc, st := newJobService(t, 9)
	seedJob(t, st, models.Job{Title: "a", MinSalary: 50000, MaxSalary: 80000})
	seedJob(t, st, models.Job{Title: "b", MinSalary: 40000, MaxSalary: 120000})

	cases := []struct {
		params url.Values
		want   int64
	}{
		{url.Values{"minSalary": {"50000"}}, 1},
		{url.Values{"maxSalary": {"100000"}}, 1},
		{url.Values{"minSalary": {"50000"}, "maxSalary": {"100000"}}, 1},
		{url.Values{"minSalary": {"abc"}}, 2},
		{url.Values{"minSalary": {"60000"}}, 0},
	}
	for _, tc := range cases {
		res, err := svc.Search(context.Background(), tc.params)
		if err != nil {
			t.Fatalf("Search(%v): %v", tc.params, err)
		}
		if res.JobCount != tc.want {
			t.Errorf("Search(%v) jobCount = %d, want %d", tc.params, res.JobCount, tc.want)
		}
	}
}

func TestRecent_FourteenDayBoundary(t *testing.T) {
	svc, st := newJobService(t, 9)
	seedJob(t, st, models.Job{Title: "edge", PostedDate: "2026-10-03"})
	seedJob(t, st, models.Job{Title: "old", PostedDate: "2026-10-02"})
	seedJob(t, st, models.Job{Title: "today", PostedDate: "2026-10-17"})

	jobs, err := svc.Recent(context.Background())
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(jobs) != 2 || jobs[0].Title != "edge" || jobs[1].Title != "today" {
		t.Errorf("Recent = %+v, want edge and today", jobs)
	}
}

func TestMostViewed_CapsAtFifteen(t *testing.T) {
	svc, st := newJobService(t, 9)
	for i := 0; i < 20; i++ {
		seedJob(t, st, models.Job{Title: "j", ViewCount: int64(i)})
	}
	jobs, err := svc.MostViewed(context.Background())
	if err != nil {
		t.Fatalf("MostViewed: %v", err)
	}
	if len(jobs) != 15 || jobs[0].ViewCount != 19 || jobs[14].ViewCount != 5 {
		t.Errorf("MostViewed returned %d jobs, first %d", len(jobs), jobs[0].ViewCount)
	}
}

func TestPost_DefaultsAndValidation(t *testing.T) {
	svc, _ := newJobService(t, 9)
	ctx := context.Background()

	job, err := svc.Post(ctx, "HR@Acme.io", &dtos.JobCreationRequest{
		Title:       "Go <b>Engineer</b>",
		Description: "<p>Build things</p><script>x()</script>",
		CompanyName: "Acme",
		Category:    "Engineering",
		Location:    "Remote",
		Types:       []string{"remote", " ", "full-time"},
	})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if job.ID == "" || job.PostedDate != "2026-10-17" || job.CompanyEmail != "hr@acme.io" {
		t.Errorf("defaults not applied: %+v", job)
	}
	if job.Title != "Go Engineer" || job.Description != "<p>Build things</p>" {
		t.Errorf("sanitizing: title %q description %q", job.Title, job.Description)
	}
	if job.ViewCount != 0 || job.AppliedCount != 0 || len(job.Types) != 2 {
		t.Errorf("counts or types wrong: %+v", job)
	}

	bad := []*dtos.JobCreationRequest{
		{Title: "x", MinSalary: int64p(10), MaxSalary: int64p(5)},
		{Title: "x", PostedDate: "17/10/2026"},
		{Title: "x", Deadline: "soon"},
		{Title: "<b></b>"},
	}
	for _, req := range bad {
		var verr *ValidationError
		if _, err := svc.Post(ctx, "hr@acme.io", req); !errors.As(err, &verr) {
			t.Errorf("Post(%+v) err = %v, want ValidationError", req, err)
		}
	}
}

func TestPost_OwnershipFollowsPoster(t *testing.T) {
	svc, _ := newJobService(t, 9)
	ctx := context.Background()

	job, err := svc.Post(ctx, "HR@Acme.io", &dtos.JobCreationRequest{Title: "Designer", CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if job.Types == nil {
		t.Error("Types must be an empty list, not nil")
	}
	for _, email := range []string{"hr@acme.io", "HR@Acme.io", " hr@ACME.io "} {
		jobs, err := svc.PostedBy(ctx, email)
		if err != nil {
			t.Fatalf("PostedBy(%q): %v", email, err)
		}
		if len(jobs) != 1 || jobs[0].ID != job.ID {
			t.Errorf("PostedBy(%q) = %d jobs, want the posted job", email, len(jobs))
		}
	}
	if err := svc.Delete(ctx, job.ID, "Hr@acme.IO"); err != nil {
		t.Errorf("owner delete with different case: %v", err)
	}
}

func TestView_IncrementsViewCount(t *testing.T) {
	svc, st := newJobService(t, 9)
	job := seedJob(t, st, models.Job{Title: "j"})

	for want := int64(1); want <= 2; want++ {
		got, err := svc.View(context.Background(), job.ID)
		if err != nil {
			t.Fatalf("View: %v", err)
		}
		if got.ViewCount != want {
			t.Errorf("ViewCount = %d, want %d", got.ViewCount, want)
		}
	}
}

func TestIncrementApplied(t *testing.T) {
	svc, st := newJobService(t, 9)
	job := seedJob(t, st, models.Job{Title: "j"})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.IncrementApplied(ctx, job.ID); err != nil {
				t.Errorf("IncrementApplied: %v", err)
			}
		}()
	}
	wg.Wait()
	got, _ := st.GetJob(ctx, job.ID)
	if got.AppliedCount != 25 {
		t.Errorf("AppliedCount = %d, want 25", got.AppliedCount)
	}

	if _, err := svc.IncrementApplied(ctx, "not-an-id"); !errors.Is(err, store.ErrInvalidID) {
		t.Errorf("malformed id: err = %v", err)
	}
	if _, err := svc.IncrementApplied(ctx, "8c1b8f7e-3d0c-4c7a-9a59-2f0f0f6c2d11"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown id: err = %v", err)
	}
}

func TestDelete_OnlyOwner(t *testing.T) {
	svc, st := newJobService(t, 9)
	job := seedJob(t, st, models.Job{Title: "j", CompanyEmail: "hr@acme.io"})
	ctx := context.Background()

	if err := svc.Delete(ctx, job.ID, "other@acme.io"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("foreign delete: err = %v", err)
	}
	if err := svc.Delete(ctx, job.ID, "HR@acme.io"); err != nil {
		t.Errorf("owner delete: %v", err)
	}
	jobs, _ := svc.PostedBy(ctx, "hr@acme.io")
	if len(jobs) != 0 {
		t.Errorf("job still listed after delete")
	}
}
