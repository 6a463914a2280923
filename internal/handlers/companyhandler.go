package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/dream-finder/internal/dtos"
	"github.com/justsurfingit/dream-finder/internal/middleware"
	"github.com/justsurfingit/dream-finder/internal/services"
)

type CompanyHandler struct {
	CompanyService *services.CompanyService
}

func NewCompanyHandler(s *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{CompanyService: s}
}

func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.CompanyService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.CompanyService.Get(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// SaveCompany creates or replaces the caller's own company.
func (h *CompanyHandler) SaveCompany(c *gin.Context) {
	var req dtos.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	id, _ := middleware.IdentityFrom(c)
	company, err := h.CompanyService.Save(c.Request.Context(), id.Email, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}
