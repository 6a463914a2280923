package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/dream-finder/internal/auth"
	"github.com/justsurfingit/dream-finder/internal/dtos"
	"github.com/justsurfingit/dream-finder/internal/models"
	"github.com/justsurfingit/dream-finder/internal/services"
	"github.com/justsurfingit/dream-finder/internal/store"
)

type UserHandler struct {
	UserService *services.UserService
	Tokens      *auth.Tokens
}

func NewUserHandler(u *services.UserService, tokens *auth.Tokens) *UserHandler {
	return &UserHandler{UserService: u, Tokens: tokens}
}

// IssueToken is POST /create/jwt
func (h *UserHandler) IssueToken(c *gin.Context) {
	var req dtos.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	token, expiresAt, err := h.Tokens.Issue(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.TokenResponse{Token: token, ExpiresAt: expiresAt.Unix()})
}

// CreateUser is POST /create/user. Repeat sign ins answer insertedId null.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dtos.UserCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	id, err := h.UserService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.InsertedResponse{InsertedID: id})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.UserService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) IsAdmin(c *gin.Context) {
	h.hasRole(c, models.RoleAdmin, "admin")
}

func (h *UserHandler) IsHR(c *gin.Context) {
	h.hasRole(c, models.RoleHR, "hr")
}

func (h *UserHandler) hasRole(c *gin.Context, role models.Role, key string) {
	ok, err := h.UserService.HasRole(c.Request.Context(), c.Param("email"), role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{key: ok})
}

// SetRole is PATCH /users/role/:email
func (h *UserHandler) SetRole(c *gin.Context) {
	var req dtos.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	err := h.UserService.SetRole(c.Request.Context(), c.Param("email"), req.Role)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, dtos.ModifiedResponse{ModifiedCount: 0})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.ModifiedResponse{ModifiedCount: 1})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	err := h.UserService.Delete(c.Request.Context(), c.Param("email"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, dtos.DeletedResponse{DeletedCount: 0})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.DeletedResponse{DeletedCount: 1})
}
