package models

import (
	"time"

	"github.com/lib/pq"
)

type Role string

const (
	RoleNone    Role = ""
	RoleAdmin   Role = "admin"
	RoleHR      Role = "hr"
	RoleBlocked Role = "blocked"
)

// ParseRole accepts the role names used by the admin endpoints. "none" maps
// to RoleNone.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "none", "":
		return RoleNone, true
	case string(RoleAdmin):
		return RoleAdmin, true
	case string(RoleHR):
		return RoleHR, true
	case string(RoleBlocked):
		return RoleBlocked, true
	}
	return RoleNone, false
}

// IDs are assigned by the store. The bson "-" tag keeps them out of the
// document body; the Mongo store carries _id separately.

type User struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"-" json:"_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	Name  string `bson:"name" json:"name"`
	Email string `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	Photo string `bson:"photo" json:"photo,omitempty"`
	Role  Role   `gorm:"size:16;not null;default:''" bson:"role" json:"role"`
}

type Company struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"-" json:"_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	Name        string `gorm:"not null" bson:"name" json:"name"`
	Email       string `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	Logo        string `bson:"logo" json:"logo,omitempty"`
	Website     string `bson:"website" json:"website,omitempty"`
	Location    string `bson:"location" json:"location,omitempty"`
	Description string `gorm:"type:text" bson:"description" json:"description,omitempty"`
}

// Job is a posted vacancy. Types holds every employment type tag the job is
// offered under (full-time, remote, ...).
type Job struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"-" json:"_id"`
	CreatedAt time.Time `gorm:"index" bson:"created_at" json:"created_at"`

	Title        string         `gorm:"not null" bson:"title" json:"title"`
	Description  string         `gorm:"type:text" bson:"description" json:"description"`
	CompanyName  string         `bson:"company_name" json:"company_name"`
	CompanyLogo  string         `bson:"company_logo" json:"company_logo,omitempty"`
	Category     string         `gorm:"index" bson:"category" json:"category"`
	Location     string         `bson:"location" json:"location"`
	Types        pq.StringArray `gorm:"column:job_type;type:text[]" bson:"type" json:"type"`
	MinSalary    int64          `gorm:"column:min_salary" bson:"minSalary" json:"minSalary"`
	MaxSalary    int64          `gorm:"column:max_salary" bson:"maxSalary" json:"maxSalary"`
	PostedDate   string         `gorm:"column:posted_date;size:10;index" bson:"posted_date" json:"posted_date"`
	Deadline     string         `gorm:"size:10" bson:"deadline" json:"deadline,omitempty"`
	ViewCount    int64          `gorm:"column:view_count;not null;default:0" bson:"viewCount" json:"viewCount"`
	AppliedCount int64          `gorm:"column:applied_count;not null;default:0" bson:"appliedCount" json:"appliedCount"`
	CompanyEmail string         `gorm:"column:company_email;index" bson:"company_email" json:"company_email"`
}

type Application struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"-" json:"_id"`
	AppliedAt time.Time `bson:"applied_at" json:"applied_at"`

	JobID          string `gorm:"uniqueIndex:idx_application_job_applicant;size:36;not null" bson:"job_id" json:"job_id"`
	ApplicantEmail string `gorm:"uniqueIndex:idx_application_job_applicant;not null" bson:"applicant_email" json:"applicant_email"`
	ApplicantName  string `bson:"applicant_name" json:"applicant_name"`
	ResumeLink     string `bson:"resume_link" json:"resume_link"`
	JobTitle       string `bson:"job_title" json:"job_title"`
	CompanyName    string `bson:"company_name" json:"company_name"`
}

type Bookmark struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"-" json:"_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	User        string `gorm:"uniqueIndex:idx_bookmark_user_job;not null" bson:"user" json:"user"`
	JobID       string `gorm:"uniqueIndex:idx_bookmark_user_job;size:36;not null" bson:"job_id" json:"job_id"`
	JobTitle    string `bson:"job_title" json:"job_title"`
	CompanyName string `bson:"company_name" json:"company_name"`
}

type Feedback struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"-" json:"_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Rating  int    `bson:"rating" json:"rating"`
	Message string `gorm:"type:text" bson:"message" json:"message"`
}

type ContactMessage struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"-" json:"_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Subject string `bson:"subject" json:"subject"`
	Message string `gorm:"type:text" bson:"message" json:"message"`
}
