package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/justsurfingit/dream-finder/internal/dtos"
	"github.com/justsurfingit/dream-finder/internal/models"
	"github.com/justsurfingit/dream-finder/internal/query"
	"github.com/justsurfingit/dream-finder/internal/store"
	"github.com/justsurfingit/dream-finder/internal/textclean"
)

type JobService struct {
	jobs     store.JobStore
	cleaner  *textclean.Cleaner
	pageSize int
	now      func() time.Time
}

func NewJobService(jobs store.JobStore, cleaner *textclean.Cleaner, pageSize int) *JobService {
	if pageSize < 1 {
		pageSize = query.DefaultPageSize
	}
	if cleaner == nil {
		cleaner = textclean.New()
	}
	return &JobService{
		jobs:     jobs,
		cleaner:  cleaner,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// Search runs the filtered, paginated listing. The count and the page are
// two independent reads of the same predicate; a write landing between
// them can make jobCount disagree with the page by that write.
func (s *JobService) Search(ctx context.Context, params url.Values) (*dtos.JobSearchResponse, error) {
	criteria := query.ParseCriteria(params)
	predicate := query.BuildPredicate(criteria, s.now())
	ranking := query.PlanRanking(criteria, s.pageSize)

	var (
		total int64
		page  []models.Job
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.jobs.CountJobs(gctx, predicate)
		total = n
		return err
	})
	g.Go(func() error {
		jobs, err := s.jobs.FindJobs(gctx, predicate, ranking)
		page = jobs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	return &dtos.JobSearchResponse{Result: orEmpty(page), JobCount: total}, nil
}

// Recent lists jobs posted within the last two weeks, today included.
func (s *JobService) Recent(ctx context.Context) ([]models.Job, error) {
	days := query.RecentWindowDays
	predicate := query.BuildPredicate(query.FilterCriteria{PostedWithinDays: &days}, s.now())
	jobs, err := s.jobs.FindJobs(ctx, predicate, query.Ranking{})
	if err != nil {
		return nil, fmt.Errorf("recent jobs: %w", err)
	}
	return orEmpty(jobs), nil
}

func (s *JobService) MostViewed(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.jobs.FindJobs(ctx, query.Predicate{}, query.MostViewed())
	if err != nil {
		return nil, fmt.Errorf("most viewed jobs: %w", err)
	}
	return orEmpty(jobs), nil
}

func (s *JobService) PostedBy(ctx context.Context, companyEmail string) ([]models.Job, error) {
	companyEmail = normalizeEmail(companyEmail)
	jobs, err := s.jobs.FindJobs(ctx, query.Predicate{CompanyEmail: companyEmail}, query.Ranking{})
	if err != nil {
		return nil, fmt.Errorf("jobs posted by %s: %w", companyEmail, err)
	}
	return orEmpty(jobs), nil
}

// View returns a job and counts the visit.
func (s *JobService) View(ctx context.Context, id string) (*models.Job, error) {
	if _, err := s.jobs.IncrementJob(ctx, id, store.CounterViews); err != nil {
		return nil, fmt.Errorf("view job: %w", err)
	}
	job, err := s.jobs.GetJob(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("view job: %w", err)
	}
	return job, nil
}

// Post stores a new job owned by poster. Ownership always follows the
// caller's token, never the request body.
func (s *JobService) Post(ctx context.Context, poster string, req *dtos.JobCreationRequest) (*models.Job, error) {
	job, err := s.buildJob(poster, req)
	if err != nil {
		return nil, err
	}
	if err := s.jobs.InsertJob(ctx, job); err != nil {
		return nil, fmt.Errorf("post job: %w", err)
	}
	return job, nil
}

func (s *JobService) buildJob(poster string, req *dtos.JobCreationRequest) (*models.Job, error) {
	job := &models.Job{
		Title:        s.cleaner.Text(req.Title),
		Description:  s.cleaner.Description(req.Description),
		CompanyName:  s.cleaner.Text(req.CompanyName),
		CompanyLogo:  strings.TrimSpace(req.CompanyLogo),
		Category:     s.cleaner.Text(req.Category),
		Location:     s.cleaner.Text(req.Location),
		Types:        pq.StringArray(orEmpty(query.SplitTypes(strings.Join(req.Types, ",")))),
		PostedDate:   strings.TrimSpace(req.PostedDate),
		Deadline:     strings.TrimSpace(req.Deadline),
		CompanyEmail: normalizeEmail(poster),
	}
	if job.Title == "" {
		return nil, invalid("title", "must not be empty")
	}
	if req.MinSalary != nil {
		job.MinSalary = *req.MinSalary
	}
	if req.MaxSalary != nil {
		job.MaxSalary = *req.MaxSalary
	}
	if job.MinSalary < 0 || job.MaxSalary < 0 {
		return nil, invalid("salary", "must not be negative")
	}
	if req.MinSalary != nil && req.MaxSalary != nil && job.MinSalary > job.MaxSalary {
		return nil, invalid("salary", "minSalary %d exceeds maxSalary %d", job.MinSalary, job.MaxSalary)
	}
	if job.PostedDate == "" {
		job.PostedDate = s.now().Format(query.DateLayout)
	} else if _, err := time.Parse(query.DateLayout, job.PostedDate); err != nil {
		return nil, invalid("posted_date", "want YYYY-MM-DD, got %q", job.PostedDate)
	}
	if job.Deadline != "" {
		if _, err := time.Parse(query.DateLayout, job.Deadline); err != nil {
			return nil, invalid("deadline", "want YYYY-MM-DD, got %q", job.Deadline)
		}
	}
	return job, nil
}

// IncrementApplied bumps appliedCount and returns the new value.
func (s *JobService) IncrementApplied(ctx context.Context, id string) (int64, error) {
	n, err := s.jobs.IncrementJob(ctx, id, store.CounterApplied)
	if err != nil {
		return 0, fmt.Errorf("increment applied count: %w", err)
	}
	return n, nil
}

// Delete removes a job only when owner posted it. Anything else reads as
// not found so ownership is not leaked.
func (s *JobService) Delete(ctx context.Context, id, owner string) error {
	if err := s.jobs.DeleteJob(ctx, id, normalizeEmail(owner)); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
