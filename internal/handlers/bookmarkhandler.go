package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/dream-finder/internal/dtos"
	"github.com/justsurfingit/dream-finder/internal/services"
	"github.com/justsurfingit/dream-finder/internal/store"
)

type BookmarkHandler struct {
	BookmarkService *services.BookmarkService
}

func NewBookmarkHandler(s *services.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{BookmarkService: s}
}

// ListBookmarks is GET /bookmark/:user?page=N
func (h *BookmarkHandler) ListBookmarks(c *gin.Context) {
	page, err := h.BookmarkService.Page(c.Request.Context(), c.Param("user"), c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *BookmarkHandler) AddBookmark(c *gin.Context) {
	var req dtos.BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	id, err := h.BookmarkService.Add(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.InsertedResponse{InsertedID: id})
}

func (h *BookmarkHandler) DeleteBookmark(c *gin.Context) {
	err := h.BookmarkService.Delete(c.Request.Context(), c.Param("id"))
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
