package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBranchRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Location string `json:"location" validate:"omitempty,max=255"`
	Address  string `json:"address"`
	Phone    string `json:"phone" validate:"omitempty,e164"`
	Email    string `json:"email" validate:"required,email"`
	Manager  string `json:"manager" validate:"omitempty,max=255"`
}

type UpdateBranchRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=255"`
	Location *string `json:"location" validate:"omitempty,max=255"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone" validate:"omitempty,e164"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Manager  *string `json:"manager" validate:"omitempty,max=255"`
	IsActive *bool   `json:"is_active"`
}

// Response DTOs

type BranchResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email"`
	Manager   string    `json:"manager,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
