package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type ScanItemRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type CreateScanRequest struct {
	Name       string            `json:"name" validate:"required,min=2,max=255"`
	ActualCost decimal.Decimal   `json:"actual_cost" validate:"required"`
	MinPrice   decimal.Decimal   `json:"min_price" validate:"required"`
	Items      []ScanItemRequest `json:"items" validate:"required,min=1,dive"`
	Images     []string          `json:"images"`
}

type UpdateScanRequest struct {
	Name       *string           `json:"name" validate:"omitempty,min=2,max=255"`
	ActualCost *decimal.Decimal  `json:"actual_cost"`
	MinPrice   *decimal.Decimal  `json:"min_price"`
	Items      []ScanItemRequest `json:"items" validate:"omitempty,min=1,dive"`
	Images     []string          `json:"images"`
	IsActive   *bool             `json:"is_active"`
}

// Response DTOs

type ScanItemResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type ScanResponse struct {
	ID         uuid.UUID          `json:"id"`
	Name       string             `json:"name"`
	ActualCost decimal.Decimal    `json:"actual_cost"`
	MinPrice   decimal.Decimal    `json:"min_price"`
	Items      []ScanItemResponse `json:"items"`
	Images     []string           `json:"images"`
	IsActive   bool               `json:"is_active"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
