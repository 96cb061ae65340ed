package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	Name             string     `json:"name" validate:"required,min=2,max=255"`
	DateOfBirth      string     `json:"date_of_birth" validate:"required"` // Format: YYYY-MM-DD
	Gender           string     `json:"gender" validate:"required,oneof=male female other"`
	PhoneNumber      string     `json:"phone_number" validate:"omitempty,e164"`
	SocialNumber     *string    `json:"social_number" validate:"omitempty,min=3,max=50"`
	DoctorReferredID uuid.UUID  `json:"doctor_referred_id" validate:"required"`
	RepresentativeID *uuid.UUID `json:"representative_id"`
	MedicalHistory   []string   `json:"medical_history"`
	Address          string     `json:"address"`
}

type UpdatePatientRequest struct {
	Name             *string    `json:"name" validate:"omitempty,min=2,max=255"`
	DateOfBirth      *string    `json:"date_of_birth"`
	Gender           *string    `json:"gender" validate:"omitempty,oneof=male female other"`
	PhoneNumber      *string    `json:"phone_number" validate:"omitempty,e164"`
	SocialNumber     *string    `json:"social_number" validate:"omitempty,min=3,max=50"`
	RepresentativeID *uuid.UUID `json:"representative_id"`
	MedicalHistory   []string   `json:"medical_history"`
	Address          *string    `json:"address"`
}

// Response DTOs

type PatientResponse struct {
	ID               uuid.UUID               `json:"id"`
	Name             string                  `json:"name"`
	DateOfBirth      time.Time               `json:"date_of_birth"`
	Gender           string                  `json:"gender"`
	PhoneNumber      string                  `json:"phone_number,omitempty"`
	SocialNumber     *string                 `json:"social_number,omitempty"`
	DoctorReferredID uuid.UUID               `json:"doctor_referred_id"`
	RepresentativeID *uuid.UUID              `json:"representative_id,omitempty"`
	MedicalHistory   []string                `json:"medical_history"`
	Address          string                  `json:"address,omitempty"`
	IsActive         bool                    `json:"is_active"`
	DoctorReferred   *DoctorResponse         `json:"doctor_referred,omitempty"`
	Representative   *RepresentativeResponse `json:"representative,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}
