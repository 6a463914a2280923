package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/justsurfingit/dream-finder/internal/dtos"
	"github.com/justsurfingit/dream-finder/internal/models"
	"github.com/justsurfingit/dream-finder/internal/store"
)

// ApplicationStore is what applying needs: the application table plus the
// job it points at.
type ApplicationStore interface {
	store.ApplicationStore
	GetJob(ctx context.Context, id string) (*models.Job, error)
	IncrementJob(ctx context.Context, id string, c store.Counter) (int64, error)
}

type ApplicationService struct {
	store ApplicationStore
}

func NewApplicationService(s ApplicationStore) *ApplicationService {
	return &ApplicationService{store: s}
}

// Apply records one application per applicant and job, then counts it on
// the job. A second application for the same job is store.ErrDuplicate.
func (s *ApplicationService) Apply(ctx context.Context, applicant string, req *dtos.ApplicationRequest) (*models.Application, error) {
	job, err := s.store.GetJob(ctx, strings.TrimSpace(req.JobID))
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}
	a := &models.Application{
		JobID:          job.ID,
		ApplicantEmail: normalizeEmail(applicant),
		ApplicantName:  strings.TrimSpace(req.ApplicantName),
		ResumeLink:     strings.TrimSpace(req.ResumeLink),
		JobTitle:       job.Title,
		CompanyName:    job.CompanyName,
	}
	if err := s.store.InsertApplication(ctx, a); err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}
	// The application is stored; a lost counter bump is not worth failing it.
	if _, err := s.store.IncrementJob(ctx, job.ID, store.CounterApplied); err != nil {
		slog.Warn("increment applied count failed", "jobId", job.ID, "err", err)
	}
	return a, nil
}

func (s *ApplicationService) ListByApplicant(ctx context.Context, email string) ([]models.Application, error) {
	apps, err := s.store.ListApplicationsByApplicant(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return orEmpty(apps), nil
}
