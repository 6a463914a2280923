package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/dream-finder/internal/dtos"
	"github.com/justsurfingit/dream-finder/internal/services"
)

type FeedbackHandler struct {
	FeedbackService *services.FeedbackService
}

func NewFeedbackHandler(s *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{FeedbackService: s}
}

func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req dtos.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	f, err := h.FeedbackService.Submit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.InsertedResponse{InsertedID: &f.ID})
}

func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	items, err := h.FeedbackService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *FeedbackHandler) SubmitContact(c *gin.Context) {
	var req dtos.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	m, err := h.FeedbackService.Contact(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.InsertedResponse{InsertedID: &m.ID})
}

// ListContacts is admin only.
func (h *FeedbackHandler) ListContacts(c *gin.Context) {
	items, err := h.FeedbackService.Contacts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
