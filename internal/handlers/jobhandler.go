package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/dream-finder/internal/dtos"
	"github.com/justsurfingit/dream-finder/internal/middleware"
	"github.com/justsurfingit/dream-finder/internal/services"
	"github.com/justsurfingit/dream-finder/internal/store"
)

type JobHandler struct {
	JobService *services.JobService
}

func NewJobHandler(j *services.JobService) *JobHandler {
	return &JobHandler{JobService: j}
}

// Search is GET /api/v1/jobs
func (h *JobHandler) Search(c *gin.Context) {
	res, err := h.JobService.Search(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetJob is GET /api/v1/jobs/:id and counts as a view.
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.JobService.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Recent(c *gin.Context) {
	jobs, err := h.JobService.Recent(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) MostViewed(c *gin.Context) {
	jobs, err := h.JobService.MostViewed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// PostedBy lists the jobs of the company email in the path. The route
// checks the caller owns that email.
func (h *JobHandler) PostedBy(c *gin.Context) {
	jobs, err := h.JobService.PostedBy(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	id, _ := middleware.IdentityFrom(c)
	job, err := h.JobService.Post(c.Request.Context(), id.Email, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	err := h.JobService.Delete(c.Request.Context(), c.Param("id"), id.Email)
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

// IncrementApplied is PATCH /incrementAppliedCount/:id
func (h *JobHandler) IncrementApplied(c *gin.Context) {
	n, err := h.JobService.IncrementApplied(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.AppliedCountResponse{AppliedCount: n})
}
