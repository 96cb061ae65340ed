package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItem is a per-branch consumable record. Quantity never goes below
// zero: subtractions are conditional updates in the repository.
type StockItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name             string          `gorm:"type:varchar(255);not null;index" json:"name"`
	BranchID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"branch_id"`
	Quantity         int             `gorm:"not null;default:0" json:"quantity"`
	MinimumThreshold int             `gorm:"not null;default:0" json:"minimum_threshold"`
	Price            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	ValidUntil       time.Time       `gorm:"not null" json:"valid_until"`
	IsActive         *bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Branch Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (StockItem) TableName() string {
	return "stock_items"
}

// LowStock reports whether quantity has reached the alert threshold.
func (s *StockItem) LowStock() bool {
	return s.Quantity <= s.MinimumThreshold
}

// Expired reports whether the stock has passed its validity date.
func (s *StockItem) Expired(now time.Time) bool {
	return s.ValidUntil.Before(now)
}
