// Package auth authenticates bearer tokens and checks roles against the
// user store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/dream-finder/internal/models"
	"github.com/justsurfingit/dream-finder/internal/store"
)

var (
	ErrUnauthenticated = errors.New("unauthorized access")
	ErrForbidden       = errors.New("forbidden access")
)

// Identity is what a verified token proves about the caller.
type Identity struct {
	Email string
}

// UserLookup is the slice of the user store the gate reads roles from.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Gate holds no per-request state; every call reads the current role.
type Gate struct {
	tokens *Tokens
	users  UserLookup
}

func NewGate(tokens *Tokens, users UserLookup) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Authenticate parses an Authorization header of the form "Bearer <token>".
func (g *Gate) Authenticate(header string) (Identity, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Identity{}, fmt.Errorf("%w: missing authorization header", ErrUnauthenticated)
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return Identity{}, fmt.Errorf("%w: malformed authorization header", ErrUnauthenticated)
	}
	return g.tokens.Verify(token)
}

// RoleOf returns the stored role for email. Unknown users have no role.
func (g *Gate) RoleOf(ctx context.Context, email string) (models.Role, error) {
	u, err := g.users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return models.RoleNone, nil
	}
	if err != nil {
		return models.RoleNone, fmt.Errorf("lookup role: %w", err)
	}
	return u.Role, nil
}

// Authorize fails with ErrForbidden unless id currently holds role.
func (g *Gate) Authorize(ctx context.Context, id Identity, role models.Role) error {
	current, err := g.RoleOf(ctx, id.Email)
	if err != nil {
		return err
	}
	if role == models.RoleNone || role == models.RoleBlocked || current != role {
		return fmt.Errorf("%w: %s role required", ErrForbidden, role)
	}
	return nil
}

// RequireSelf fails with ErrForbidden when a path email names someone other
// than the caller. Roles are not consulted.
func RequireSelf(id Identity, email string) error {
	if !strings.EqualFold(strings.TrimSpace(email), id.Email) {
		return fmt.Errorf("%w: identity mismatch", ErrForbidden)
	}
	return nil
}
