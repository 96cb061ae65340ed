package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateRepresentativeRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Age         int    `json:"age" validate:"required,min=18,max=100"`
	BusinessID  string `json:"business_id" validate:"required,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
	Notes       string `json:"notes"`
}

type UpdateRepresentativeRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=255"`
	Age         *int    `json:"age" validate:"omitempty,min=18,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,e164"`
	Notes       *string `json:"notes"`
	IsActive    *bool   `json:"is_active"`
}

// Response DTOs

type RepresentativeResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Age           int       `json:"age"`
	BusinessID    string    `json:"business_id"`
	PhoneNumber   string    `json:"phone_number"`
	PatientsCount int       `json:"patients_count"`
	DoctorsCount  int       `json:"doctors_count"`
	Notes         string    `json:"notes,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
