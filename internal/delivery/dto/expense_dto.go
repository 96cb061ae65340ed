package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateExpenseRequest struct {
	Date          string          `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Reason        string          `json:"reason" validate:"required,min=2,max=255"`
	TotalCost     decimal.Decimal `json:"total_cost" validate:"required"`
	Category      string          `json:"category" validate:"omitempty,max=100"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty,max=50"`
}

type UpdateExpenseRequest struct {
	Date          *string          `json:"date"`
	Reason        *string          `json:"reason" validate:"omitempty,min=2,max=255"`
	TotalCost     *decimal.Decimal `json:"total_cost"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	Description   *string          `json:"description"`
	PaymentMethod *string          `json:"payment_method" validate:"omitempty,max=50"`
}

type UpdateExpenseStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected paid"`
}

// Response DTOs

type ExpenseResponse struct {
	ID            uuid.UUID       `json:"id"`
	Date          time.Time       `json:"date"`
	Reason        string          `json:"reason"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	RequesterID   uuid.UUID       `json:"requester_id"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Status        string          `json:"status"`
	ApprovedByID  *uuid.UUID      `json:"approved_by_id,omitempty"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
	Requester     *UserResponse   `json:"requester,omitempty"`
	ApprovedBy    *UserResponse   `json:"approved_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
