package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name             string     `json:"name" validate:"required,min=2,max=255"`
	Specialization   string     `json:"specialization" validate:"required,max=100"`
	LicenseNumber    *string    `json:"license_number" validate:"omitempty,max=100"`
	ContactNumber    string     `json:"contact_number" validate:"required,e164"`
	RepresentativeID *uuid.UUID `json:"representative_id"`
}

type UpdateDoctorRequest struct {
	Name             *string    `json:"name" validate:"omitempty,min=2,max=255"`
	Specialization   *string    `json:"specialization" validate:"omitempty,max=100"`
	LicenseNumber    *string    `json:"license_number" validate:"omitempty,max=100"`
	ContactNumber    *string    `json:"contact_number" validate:"omitempty,e164"`
	RepresentativeID *uuid.UUID `json:"representative_id"`
	IsActive         *bool      `json:"is_active"`
}

// Response DTOs

type DoctorResponse struct {
	ID                    uuid.UUID  `json:"id"`
	Name                  string     `json:"name"`
	Specialization        string     `json:"specialization"`
	LicenseNumber         *string    `json:"license_number,omitempty"`
	ContactNumber         string     `json:"contact_number"`
	TotalPatientsReferred int        `json:"total_patients_referred"`
	TotalScansReferred    int        `json:"total_scans_referred"`
	RepresentativeID      *uuid.UUID `json:"representative_id,omitempty"`
	IsActive              bool       `json:"is_active"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

type RecountResponse struct {
	Updated int `json:"updated"`
}
