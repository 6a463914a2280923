package dtos

type CompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Logo        string `json:"logo" binding:"omitempty,url"`
	Website     string `json:"website" binding:"omitempty,url"`
	Location    string `json:"location"`
	Description string `json:"description"`
}
