// Package store declares the document store gateway the services run
// against. Backends live in the sub-packages.
package store

import (
	"context"
	"errors"

	"github.com/justsurfingit/dream-finder/internal/models"
	"github.com/justsurfingit/dream-finder/internal/query"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrInvalidID = errors.New("store: malformed id")
	ErrDuplicate = errors.New("store: duplicate key")
)

// Counter names a job counter that can be bumped atomically.
type Counter string

const (
	CounterViews   Counter = "viewCount"
	CounterApplied Counter = "appliedCount"
)

type JobStore interface {
	// CountJobs and FindJobs must accept the same predicate so a listing
	// can pair a page with its total.
	CountJobs(ctx context.Context, p query.Predicate) (int64, error)
	FindJobs(ctx context.Context, p query.Predicate, r query.Ranking) ([]models.Job, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	InsertJob(ctx context.Context, job *models.Job) error
	// DeleteJob removes a job owned by companyEmail.
	DeleteJob(ctx context.Context, id, companyEmail string) error
	// IncrementJob adds one to the counter and returns the new value.
	IncrementJob(ctx context.Context, id string, c Counter) (int64, error)
}

type UserStore interface {
	InsertUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SetUserRole(ctx context.Context, email string, role models.Role) error
	DeleteUser(ctx context.Context, email string) error
}

type CompanyStore interface {
	// UpsertCompany inserts or replaces the company keyed by email.
	UpsertCompany(ctx context.Context, c *models.Company) error
	GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
}

type ApplicationStore interface {
	InsertApplication(ctx context.Context, a *models.Application) error
	ListApplicationsByApplicant(ctx context.Context, email string) ([]models.Application, error)
}

type BookmarkStore interface {
	InsertBookmark(ctx context.Context, b *models.Bookmark) error
	CountBookmarks(ctx context.Context, user string) (int64, error)
	ListBookmarks(ctx context.Context, user string, w query.Window) ([]models.Bookmark, error)
	DeleteBookmark(ctx context.Context, id string) error
}

type FeedbackStore interface {
	InsertFeedback(ctx context.Context, f *models.Feedback) error
	ListFeedback(ctx context.Context) ([]models.Feedback, error)
	InsertContact(ctx context.Context, m *models.ContactMessage) error
	ListContacts(ctx context.Context) ([]models.ContactMessage, error)
}

// Store is the full gateway a backend provides.
type Store interface {
	JobStore
	UserStore
	CompanyStore
	ApplicationStore
	BookmarkStore
	FeedbackStore
	Close(ctx context.Context) error
}
