package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type AppointmentScanRequest struct {
	ScanID   uuid.UUID `json:"scan_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1"`
}

type CreateAppointmentRequest struct {
	RadiologistID uuid.UUID                `json:"radiologist_id" validate:"required"`
	PatientID     uuid.UUID                `json:"patient_id" validate:"required"`
	BranchID      uuid.UUID                `json:"branch_id" validate:"required"`
	Scans         []AppointmentScanRequest `json:"scans" validate:"required,min=1,dive"`
	ScheduledAt   time.Time                `json:"scheduled_at" validate:"required"`
	Priority      string                   `json:"priority" validate:"omitempty,oneof=routine urgent stat"`
	Notes         string                   `json:"notes"`
	MakeHugeSale  bool                     `json:"make_huge_sale"`
	CustomPrice   *decimal.Decimal         `json:"custom_price"`
}

type UpdateAppointmentRequest struct {
	RadiologistID *uuid.UUID               `json:"radiologist_id"`
	PatientID     *uuid.UUID               `json:"patient_id"`
	Scans         []AppointmentScanRequest `json:"scans" validate:"omitempty,min=1,dive"`
	ScheduledAt   *time.Time               `json:"scheduled_at"`
	Priority      *string                  `json:"priority" validate:"omitempty,oneof=routine urgent stat"`
	Notes         *string                  `json:"notes"`
	MakeHugeSale  *bool                    `json:"make_huge_sale"`
	CustomPrice   *decimal.Decimal         `json:"custom_price"`
}

// UpdateAppointmentStatusRequest arrives as multipart form fields when the
// target status is completed (the PDF report rides along as a file part).
type UpdateAppointmentStatusRequest struct {
	Status             string `json:"status" validate:"required,oneof=scheduled confirmed in_progress completed cancelled no-show"`
	Notes              string `json:"notes"`
	CancellationReason string `json:"cancellation_reason"`
}

// Response DTOs

type AppointmentScanResponse struct {
	ScanID   uuid.UUID `json:"scan_id"`
	Quantity int       `json:"quantity"`
}

type AppointmentResponse struct {
	ID                 uuid.UUID                 `json:"id"`
	RadiologistID      uuid.UUID                 `json:"radiologist_id"`
	BranchID           uuid.UUID                 `json:"branch_id"`
	PatientID          uuid.UUID                 `json:"patient_id"`
	Scans              []AppointmentScanResponse `json:"scans"`
	Cost               decimal.Decimal           `json:"cost"`
	Price              decimal.Decimal           `json:"price"`
	Profit             decimal.Decimal           `json:"profit"`
	ReferredByID       uuid.UUID                 `json:"referred_by_id"`
	RepresentativeID   *uuid.UUID                `json:"representative_id,omitempty"`
	ScheduledAt        time.Time                 `json:"scheduled_at"`
	Status             string                    `json:"status"`
	Priority           string                    `json:"priority"`
	Notes              string                    `json:"notes,omitempty"`
	PDFReport          *string                   `json:"pdf_report,omitempty"`
	MakeHugeSale       bool                      `json:"make_huge_sale"`
	CustomPrice        *decimal.Decimal          `json:"custom_price,omitempty"`
	CancelledAt        *time.Time                `json:"cancelled_at,omitempty"`
	CancelledByID      *uuid.UUID                `json:"cancelled_by_id,omitempty"`
	CancellationReason *string                   `json:"cancellation_reason,omitempty"`
	Radiologist        *UserResponse             `json:"radiologist,omitempty"`
	Patient            *PatientResponse          `json:"patient,omitempty"`
	Branch             *BranchResponse           `json:"branch,omitempty"`
	ReferredBy         *DoctorResponse           `json:"referred_by,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}
