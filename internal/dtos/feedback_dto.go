package dtos

type FeedbackRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Message string `json:"message" binding:"required,max=2000"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required,max=5000"`
}
