package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/dream-finder/internal/dtos"
	"github.com/justsurfingit/dream-finder/internal/middleware"
	"github.com/justsurfingit/dream-finder/internal/services"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
}

func NewApplicationHandler(s *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: s}
}

// Apply is POST /api/v1/apply. The applicant is always the caller.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dtos.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	id, _ := middleware.IdentityFrom(c)
	app, err := h.ApplicationService.Apply(c.Request.Context(), id.Email, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.ApplicationService.ListByApplicant(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}
