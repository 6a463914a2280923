// Package memstore is an in-process store.Store. Each call is atomic on its
// own, as a single document operation would be; nothing spans calls.
package memstore

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/justsurfingit/dream-finder/internal/models"
	"github.com/justsurfingit/dream-finder/internal/query"
	"github.com/justsurfingit/dream-finder/internal/store"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	mu           sync.RWMutex
	jobs         []models.Job
	users        []models.User
	companies    []models.Company
	applications []models.Application
	bookmarks    []models.Bookmark
	feedback     []models.Feedback
	contacts     []models.ContactMessage
	now          func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

func (s *Store) Close(context.Context) error { return nil }

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return store.ErrInvalidID
	}
	return nil
}

func indexOf[T any](items []T, match func(T) bool) int {
	return slices.IndexFunc(items, match)
}

// Jobs

func (s *Store) CountJobs(_ context.Context, p query.Predicate) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, j := range s.jobs {
		if p.Matches(j) {
			n++
		}
	}
	return n, nil
}

func (s *Store) FindJobs(_ context.Context, p query.Predicate, r query.Ranking) ([]models.Job, error) {
	s.mu.RLock()
	var matched []models.Job
	for _, j := range s.jobs {
		if p.Matches(j) {
			matched = append(matched, cloneJob(j))
		}
	}
	s.mu.RUnlock()
	return query.Apply(matched, r), nil
}

func (s *Store) GetJob(_ context.Context, id string) (*models.Job, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.jobs, func(j models.Job) bool { return j.ID == id })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	j := cloneJob(s.jobs[i])
	return &j, nil
}

func (s *Store) InsertJob(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.ID = uuid.NewString()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = s.now().UTC()
	}
	s.jobs = append(s.jobs, cloneJob(*job))
	return nil
}

func (s *Store) DeleteJob(_ context.Context, id, companyEmail string) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.jobs, func(j models.Job) bool { return j.ID == id && j.CompanyEmail == companyEmail })
	if i < 0 {
		return store.ErrNotFound
	}
	s.jobs = slices.Delete(s.jobs, i, i+1)
	return nil
}

func (s *Store) IncrementJob(_ context.Context, id string, c store.Counter) (int64, error) {
	if err := checkID(id); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.jobs, func(j models.Job) bool { return j.ID == id })
	if i < 0 {
		return 0, store.ErrNotFound
	}
	switch c {
	case store.CounterViews:
		s.jobs[i].ViewCount++
		return s.jobs[i].ViewCount, nil
	default:
		s.jobs[i].AppliedCount++
		return s.jobs[i].AppliedCount, nil
	}
}

func cloneJob(j models.Job) models.Job {
	j.Types = slices.Clone(j.Types)
	return j
}

// Users

func (s *Store) InsertUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.users, func(x models.User) bool { return strings.EqualFold(x.Email, u.Email) }) >= 0 {
		return store.ErrDuplicate
	}
	u.ID = uuid.NewString()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now().UTC()
	}
	s.users = append(s.users, *u)
	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.users, func(u models.User) bool { return strings.EqualFold(u.Email, email) })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	u := s.users[i]
	return &u, nil
}

func (s *Store) ListUsers(context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users), nil
}

func (s *Store) SetUserRole(_ context.Context, email string, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.users, func(u models.User) bool { return strings.EqualFold(u.Email, email) })
	if i < 0 {
		return store.ErrNotFound
	}
	s.users[i].Role = role
	return nil
}

func (s *Store) DeleteUser(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.users, func(u models.User) bool { return strings.EqualFold(u.Email, email) })
	if i < 0 {
		return store.ErrNotFound
	}
	s.users = slices.Delete(s.users, i, i+1)
	return nil
}

// Companies

func (s *Store) UpsertCompany(_ context.Context, c *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.companies, func(x models.Company) bool { return x.Email == c.Email }); i >= 0 {
		c.ID = s.companies[i].ID
		c.CreatedAt = s.companies[i].CreatedAt
		s.companies[i] = *c
		return nil
	}
	c.ID = uuid.NewString()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now().UTC()
	}
	s.companies = append(s.companies, *c)
	return nil
}

func (s *Store) GetCompanyByEmail(_ context.Context, email string) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.companies, func(c models.Company) bool { return c.Email == email })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	c := s.companies[i]
	return &c, nil
}

func (s *Store) ListCompanies(context.Context) ([]models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.companies), nil
}

// Applications

func (s *Store) InsertApplication(_ context.Context, a *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.applications, func(x models.Application) bool {
		return x.JobID == a.JobID && x.ApplicantEmail == a.ApplicantEmail
	}) >= 0 {
		return store.ErrDuplicate
	}
	a.ID = uuid.NewString()
	if a.AppliedAt.IsZero() {
		a.AppliedAt = s.now().UTC()
	}
	s.applications = append(s.applications, *a)
	return nil
}

func (s *Store) ListApplicationsByApplicant(_ context.Context, email string) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Application
	for _, a := range s.applications {
		if a.ApplicantEmail == email {
			out = append(out, a)
		}
	}
	return out, nil
}

// Bookmarks

func (s *Store) InsertBookmark(_ context.Context, b *models.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.bookmarks, func(x models.Bookmark) bool { return x.User == b.User && x.JobID == b.JobID }) >= 0 {
		return store.ErrDuplicate
	}
	b.ID = uuid.NewString()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.now().UTC()
	}
	s.bookmarks = append(s.bookmarks, *b)
	return nil
}

func (s *Store) CountBookmarks(_ context.Context, user string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, b := range s.bookmarks {
		if b.User == user {
			n++
		}
	}
	return n, nil
}

func (s *Store) ListBookmarks(_ context.Context, user string, w query.Window) ([]models.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []models.Bookmark
	for _, b := range s.bookmarks {
		if b.User == user {
			matched = append(matched, b)
		}
	}
	lo, hi := w.Bounds(len(matched))
	return matched[lo:hi], nil
}

func (s *Store) DeleteBookmark(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.bookmarks, func(b models.Bookmark) bool { return b.ID == id })
	if i < 0 {
		return store.ErrNotFound
	}
	s.bookmarks = slices.Delete(s.bookmarks, i, i+1)
	return nil
}

// Feedback and contact

func (s *Store) InsertFeedback(_ context.Context, f *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = uuid.NewString()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = s.now().UTC()
	}
	s.feedback = append(s.feedback, *f)
	return nil
}

func (s *Store) ListFeedback(context.Context) ([]models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.feedback), nil
}

func (s *Store) InsertContact(_ context.Context, m *models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = uuid.NewString()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now().UTC()
	}
	s.contacts = append(s.contacts, *m)
	return nil
}

func (s *Store) ListContacts(context.Context) ([]models.ContactMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.contacts), nil
}
