package dtos

import "github.com/justsurfingit/dream-finder/internal/models"

// JobCreationRequest is the body of POST /api/v1/post-job.
type JobCreationRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	CompanyName string `json:"company_name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Location    string `json:"location" binding:"required"`

	// Optional Fields
	CompanyLogo string   `json:"company_logo" binding:"omitempty,url"`
	Types       []string `json:"type" binding:"omitempty,dive,oneof=full-time part-time contract remote internship"`
	MinSalary   *int64   `json:"minSalary" binding:"omitempty,gte=0"`
	MaxSalary   *int64   `json:"maxSalary" binding:"omitempty,gte=0"`
	PostedDate  string   `json:"posted_date"` // Defaults to today if empty
	Deadline    string   `json:"deadline"`
}

// JobSearchResponse pairs one page of jobs with the total match count.
type JobSearchResponse struct {
	Result   []models.Job `json:"result"`
	JobCount int64        `json:"jobCount"`
}

type AppliedCountResponse struct {
	AppliedCount int64 `json:"appliedCount"`
}

type DeletedResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
