package dtos

type ApplicationRequest struct {
	JobID         string `json:"job_id" binding:"required"`
	ApplicantName string `json:"applicant_name" binding:"required"`
	ResumeLink    string `json:"resume_link" binding:"required,url"`
}
