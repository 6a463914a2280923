// Package middleware adapts the auth gate and the rate limiter to gin.
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/dream-finder/internal/auth"
	"github.com/justsurfingit/dream-finder/internal/models"
)

const identityKey = "identity"

// Authenticate rejects requests without a valid bearer token and stores the
// caller's identity on the context.
func Authenticate(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gate.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireRole must run after Authenticate.
func RequireRole(gate *auth.Gate, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			abort(c, auth.ErrUnauthenticated)
			return
		}
		if err := gate.Authorize(c.Request.Context(), id, role); err != nil {
			abort(c, err)
			return
		}
		c.Next()
	}
}

// RequireSelf checks the path parameter param names the caller. It must run
// after Authenticate.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			abort(c, auth.ErrUnauthenticated)
			return
		}
		if err := auth.RequireSelf(id, c.Param(param)); err != nil {
			abort(c, err)
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

func abort(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrUnauthenticated.Error()})
	case errors.Is(err, auth.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": auth.ErrForbidden.Error()})
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
