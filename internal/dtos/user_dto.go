package dtos

type UserCreationRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
	Photo string `json:"photo"`
}

// InsertedResponse carries the new document id, or null when nothing was
// inserted.
type InsertedResponse struct {
	InsertedID *string `json:"insertedId"`
}

type TokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type RoleUpdateRequest struct {
	Role string `json:"role" binding:"required,oneof=admin hr blocked none"`
}

type ModifiedResponse struct {
	ModifiedCount int64 `json:"modifiedCount"`
}
