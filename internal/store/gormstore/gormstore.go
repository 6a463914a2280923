// Package gormstore implements store.Store on PostgreSQL through gorm.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/justsurfingit/dream-finder/internal/models"
	"github.com/justsurfingit/dream-finder/internal/query"
	"github.com/justsurfingit/dream-finder/internal/store"
)

var _ store.Store = (*Store)(nil)

const uniqueViolation = "23505"

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Migrate creates or updates every table the store uses.
func (s *Store) Migrate() error {
	return s.DB.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Job{},
		&models.Application{},
		&models.Bookmark{},
		&models.Feedback{},
		&models.ContactMessage{},
	)
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return store.ErrInvalidID
	}
	return nil
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		return store.ErrDuplicate
	}
	return err
}

// likePattern escapes LIKE wildcards so the input matches literally.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func applyPredicate(tx *gorm.DB, p query.Predicate) *gorm.DB {
	if p.CategoryContains != "" {
		tx = tx.Where("category ILIKE ?", likePattern(p.CategoryContains))
	}
	if p.LocationContains != "" {
		tx = tx.Where("location ILIKE ?", likePattern(p.LocationContains))
	}
	if p.PostedOnOrAfter != "" {
		tx = tx.Where("posted_date >= ?", p.PostedOnOrAfter)
	}
	if len(p.EmploymentTypes) > 0 {
		tx = tx.Where("job_type && ?", pq.StringArray(p.EmploymentTypes))
	}
	if p.MinSalaryAtLeast != nil {
		tx = tx.Where("min_salary >= ?", *p.MinSalaryAtLeast)
	}
	if p.MaxSalaryAtMost != nil {
		tx = tx.Where("max_salary <= ?", *p.MaxSalaryAtMost)
	}
	if p.CompanyEmail != "" {
		tx = tx.Where("company_email = ?", p.CompanyEmail)
	}
	return tx
}

// Natural order is insertion order; the id tiebreak keeps pages disjoint
// when two rows share a timestamp.
func applyRanking(tx *gorm.DB, r query.Ranking) *gorm.DB {
	if r.Sort == query.SortViewCountDesc {
		tx = tx.Order("view_count DESC")
	}
	tx = tx.Order("created_at ASC").Order("id ASC")
	return applyWindow(tx, r.Window)
}

func applyWindow(tx *gorm.DB, w query.Window) *gorm.DB {
	if w.Skip > 0 {
		tx = tx.Offset(w.Skip)
	}
	if w.Limit > 0 {
		tx = tx.Limit(w.Limit)
	}
	return tx
}

func counterColumn(c store.Counter) string {
	if c == store.CounterViews {
		return "view_count"
	}
	return "applied_count"
}

// Jobs

func (s *Store) CountJobs(ctx context.Context, p query.Predicate) (int64, error) {
	var n int64
	err := applyPredicate(s.DB.WithContext(ctx).Model(&models.Job{}), p).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

func (s *Store) FindJobs(ctx context.Context, p query.Predicate, r query.Ranking) ([]models.Job, error) {
	var jobs []models.Job
	tx := applyRanking(applyPredicate(s.DB.WithContext(ctx).Model(&models.Job{}), p), r)
	if err := tx.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	return jobs, nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var job models.Job
	if err := s.DB.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

func (s *Store) InsertJob(ctx context.Context, job *models.Job) error {
	job.ID = uuid.NewString()
	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("insert job: %w", translate(err))
	}
	return nil
}

func (s *Store) DeleteJob(ctx context.Context, id, companyEmail string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res := s.DB.WithContext(ctx).Where("id = ? AND company_email = ?", id, companyEmail).Delete(&models.Job{})
	if res.Error != nil {
		return fmt.Errorf("delete job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) IncrementJob(ctx context.Context, id string, c store.Counter) (int64, error) {
	if err := checkID(id); err != nil {
		return 0, err
	}
	col := counterColumn(c)
	var job models.Job
	res := s.DB.WithContext(ctx).Model(&job).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: col}}}).
		Where("id = ?", id).
		UpdateColumn(col, gorm.Expr(col+" + ?", 1))
	if res.Error != nil {
		return 0, fmt.Errorf("increment %s: %w", col, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, store.ErrNotFound
	}
	if c == store.CounterViews {
		return job.ViewCount, nil
	}
	return job.AppliedCount, nil
}

// Users

func (s *Store) InsertUser(ctx context.Context, u *models.User) error {
	u.ID = uuid.NewString()
	u.Email = strings.ToLower(u.Email)
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("insert user: %w", translate(err))
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, "email = ?", strings.ToLower(email)).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Store) SetUserRole(ctx context.Context, email string, role models.Role) error {
	res := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", strings.ToLower(email)).
		Update("role", role)
	if res.Error != nil {
		return fmt.Errorf("set role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, email string) error {
	res := s.DB.WithContext(ctx).Where("email = ?", strings.ToLower(email)).Delete(&models.User{})
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Companies

func (s *Store) UpsertCompany(ctx context.Context, c *models.Company) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	err := s.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "logo", "website", "location", "description"}),
		},
		clause.Returning{},
	).Create(c).Error
	if err != nil {
		return fmt.Errorf("upsert company: %w", translate(err))
	}
	return nil
}

func (s *Store) GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error) {
	var c models.Company
	if err := s.DB.WithContext(ctx).First(&c, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := s.DB.WithContext(ctx).Order("created_at").Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// Applications

func (s *Store) InsertApplication(ctx context.Context, a *models.Application) error {
	a.ID = uuid.NewString()
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now().UTC()
	}
	if err := s.DB.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("insert application: %w", translate(err))
	}
	return nil
}

func (s *Store) ListApplicationsByApplicant(ctx context.Context, email string) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).Where("applicant_email = ?", email).Order("applied_at DESC").Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// Bookmarks

func (s *Store) InsertBookmark(ctx context.Context, b *models.Bookmark) error {
	b.ID = uuid.NewString()
	if err := s.DB.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("insert bookmark: %w", translate(err))
	}
	return nil
}

func (s *Store) CountBookmarks(ctx context.Context, user string) (int64, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.Bookmark{}).Where("\"user\" = ?", user).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count bookmarks: %w", err)
	}
	return n, nil
}

func (s *Store) ListBookmarks(ctx context.Context, user string, w query.Window) ([]models.Bookmark, error) {
	var marks []models.Bookmark
	tx := s.DB.WithContext(ctx).Where("\"user\" = ?", user).Order("created_at ASC").Order("id ASC")
	if err := applyWindow(tx, w).Find(&marks).Error; err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return marks, nil
}

func (s *Store) DeleteBookmark(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Bookmark{})
	if res.Error != nil {
		return fmt.Errorf("delete bookmark: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Feedback and contact

func (s *Store) InsertFeedback(ctx context.Context, f *models.Feedback) error {
	f.ID = uuid.NewString()
	if err := s.DB.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (s *Store) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	var items []models.Feedback
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return items, nil
}

func (s *Store) InsertContact(ctx context.Context, m *models.ContactMessage) error {
	m.ID = uuid.NewString()
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (s *Store) ListContacts(ctx context.Context) ([]models.ContactMessage, error) {
	var items []models.ContactMessage
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return items, nil
}
