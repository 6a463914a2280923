package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/dream-finder/internal/dtos"
	"github.com/justsurfingit/dream-finder/internal/models"
	"github.com/justsurfingit/dream-finder/internal/store"
)

type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create registers a user on first sign in. A user that already exists is
// left untouched and the returned id is nil.
func (s *UserService) Create(ctx context.Context, req *dtos.UserCreationRequest) (*string, error) {
	email := normalizeEmail(req.Email)
	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("create user: %w", err)
	}

	u := &models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Photo: strings.TrimSpace(req.Photo),
		Role:  models.RoleNone,
	}
	// A concurrent sign in may win the race; the unique index decides.
	if err := s.users.InsertUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, nil
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u.ID, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return orEmpty(users), nil
}

// HasRole reports whether email currently holds role. Unknown users hold
// none.
func (s *UserService) HasRole(ctx context.Context, email string, role models.Role) (bool, error) {
	u, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check role: %w", err)
	}
	return u.Role == role, nil
}

func (s *UserService) SetRole(ctx context.Context, email, role string) error {
	r, ok := models.ParseRole(role)
	if !ok {
		return invalid("role", "unknown role %q", role)
	}
	if err := s.users.SetUserRole(ctx, normalizeEmail(email), r); err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	return nil
}

func (s *UserService) Delete(ctx context.Context, email string) error {
	if err := s.users.DeleteUser(ctx, normalizeEmail(email)); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
