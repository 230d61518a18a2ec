package profile

import (
	"time"

	"coderr/internal/domain"
)

// UpdateProfileRequest lists the writable profile fields. type is not
// among them.
type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name" binding:"omitempty,max=150"`
	LastName     *string `json:"last_name" binding:"omitempty,max=150"`
	File         *string `json:"file" binding:"omitempty,max=80"`
	Location     *string `json:"location" binding:"omitempty,max=80"`
	Tel          *string `json:"tel" binding:"omitempty,max=30"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours" binding:"omitempty,max=50"`
	Email        *string `json:"email" binding:"omitempty,email,max=254"`
}

type ProfileResponse struct {
	User         int64     `json:"user"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	File         string    `json:"file"`
	Location     string    `json:"location"`
	Tel          string    `json:"tel"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours"`
	Type         string    `json:"type"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

// toProfileResponse reads names from the user record when it is loaded.
func toProfileResponse(p *domain.Profile) ProfileResponse {
	out := ProfileResponse{
		User:         p.UserID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		File:         p.File,
		Location:     p.Location,
		Tel:          p.Tel,
		Description:  p.Description,
		WorkingHours: p.WorkingHours,
		Type:         string(p.Type),
		Email:        p.Email,
		CreatedAt:    p.CreatedAt,
	}
	if p.User != nil {
		out.Username = p.User.Username
		out.FirstName = p.User.FirstName
		out.LastName = p.User.LastName
	}
	return out
}
