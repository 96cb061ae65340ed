package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateStockItemRequest struct {
	Name             string          `json:"name" validate:"required,min=1,max=255"`
	BranchID         uuid.UUID       `json:"branch_id" validate:"required"`
	Quantity         int             `json:"quantity" validate:"min=0"`
	MinimumThreshold int             `json:"minimum_threshold" validate:"min=0"`
	Price            decimal.Decimal `json:"price" validate:"required"`
	ValidUntil       time.Time       `json:"valid_until" validate:"required"`
}

type UpdateStockItemRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=255"`
	MinimumThreshold *int             `json:"minimum_threshold" validate:"omitempty,min=0"`
	Price            *decimal.Decimal `json:"price"`
	ValidUntil       *time.Time       `json:"valid_until"`
	IsActive         *bool            `json:"is_active"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required,ne=0"`
}

// Response DTOs

type StockItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	BranchID         uuid.UUID       `json:"branch_id"`
	Quantity         int             `json:"quantity"`
	MinimumThreshold int             `json:"minimum_threshold"`
	Price            decimal.Decimal `json:"price"`
	ValidUntil       time.Time       `json:"valid_until"`
	IsActive         bool            `json:"is_active"`
	LowStock         bool            `json:"low_stock"`
	Expired          bool            `json:"expired"`
	Branch           *BranchResponse `json:"branch,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
