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

// FeedbackService stores site feedback and contact form messages.
type FeedbackService struct {
	feedback store.FeedbackStore
	cleaner  *textclean.Cleaner
}

func NewFeedbackService(feedback store.FeedbackStore, cleaner *textclean.Cleaner) *FeedbackService {
	if cleaner == nil {
		cleaner = textclean.New()
	}
	return &FeedbackService{feedback: feedback, cleaner: cleaner}
}

func (s *FeedbackService) Submit(ctx context.Context, req *dtos.FeedbackRequest) (*models.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, invalid("rating", "must be between 1 and 5")
	}
	f := &models.Feedback{
		Name:    s.cleaner.Text(req.Name),
		Email:   normalizeEmail(req.Email),
		Rating:  req.Rating,
		Message: s.cleaner.Text(req.Message),
	}
	if err := s.feedback.InsertFeedback(ctx, f); err != nil {
		return nil, fmt.Errorf("submit feedback: %w", err)
	}
	return f, nil
}

func (s *FeedbackService) List(ctx context.Context) ([]models.Feedback, error) {
	items, err := s.feedback.ListFeedback(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return orEmpty(items), nil
}

func (s *FeedbackService) Contact(ctx context.Context, req *dtos.ContactRequest) (*models.ContactMessage, error) {
	m := &models.ContactMessage{
		Name:    s.cleaner.Text(req.Name),
		Email:   normalizeEmail(req.Email),
		Subject: s.cleaner.Text(req.Subject),
		Message: s.cleaner.Text(req.Message),
	}
	if strings.TrimSpace(m.Message) == "" {
		return nil, invalid("message", "must not be empty")
	}
	if err := s.feedback.InsertContact(ctx, m); err != nil {
		return nil, fmt.Errorf("send contact message: %w", err)
	}
	return m, nil
}

func (s *FeedbackService) Contacts(ctx context.Context) ([]models.ContactMessage, error) {
	items, err := s.feedback.ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return orEmpty(items), nil
}
