package dtos

import "github.com/justsurfingit/dream-finder/internal/models"

type BookmarkRequest struct {
	User        string `json:"user" binding:"required,email"`
	JobID       string `json:"job_id" binding:"required"`
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
}

// BookmarkPage is one page of a user's bookmarks plus their total.
type BookmarkPage struct {
	Bookmarks []models.Bookmark `json:"bookmarks"`
	Count     int64             `json:"count"`
}
