package user

import (
	"time"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/google/uuid"
)

// RegisterRequest is the body of POST /api/v1/users.
type RegisterRequest struct {
	Firstname string `json:"firstname" validate:"required,max=64"`
	Lastname  string `json:"lastname" validate:"max=64"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
}

// UpdateRequest is the body of PUT /api/v1/users/me. Omitted fields are
// left unchanged.
type UpdateRequest struct {
	Firstname *string `json:"firstname" validate:"omitempty,max=64"`
	Lastname  *string `json:"lastname" validate:"omitempty,max=64"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
}

type PasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

type Response struct {
	ID        uuid.UUID `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname,omitempty"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToResponse(u *domain.User) Response {
	return Response{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
