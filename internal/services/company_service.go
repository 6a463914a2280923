package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/justsurfingit/dream-finder/internal/dtos"
	"github.com/justsurfingit/dream-finder/internal/models"
	"github.com/justsurfingit/dream-finder/internal/store"
	"github.com/justsurfingit/dream-finder/internal/textclean"
)

type CompanyService struct {
	companies store.CompanyStore
	cleaner   *textclean.Cleaner
}

func NewCompanyService(companies store.CompanyStore, cleaner *textclean.Cleaner) *CompanyService {
	if cleaner == nil {
		cleaner = textclean.New()
	}
	return &CompanyService{companies: companies, cleaner: cleaner}
}

// Save creates or replaces the company owned by the hr user owner.
func (s *CompanyService) Save(ctx context.Context, owner string, req *dtos.CompanyRequest) (*models.Company, error) {
	c := &models.Company{
		Name:        s.cleaner.Text(req.Name),
		Email:       normalizeEmail(owner),
		Logo:        strings.TrimSpace(req.Logo),
		Website:     strings.TrimSpace(req.Website),
		Location:    s.cleaner.Text(req.Location),
		Description: s.cleaner.Description(req.Description),
	}
	if c.Name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if err := s.companies.UpsertCompany(ctx, c); err != nil {
		return nil, fmt.Errorf("save company: %w", err)
	}
	return c, nil
}

func (s *CompanyService) Get(ctx context.Context, email string) (*models.Company, error) {
	c, err := s.companies.GetCompanyByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	companies, err := s.companies.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return orEmpty(companies), nil
}
