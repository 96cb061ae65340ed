package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseStatus represents the approval state of an expense
type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "pending"
	ExpenseStatusApproved ExpenseStatus = "approved"
	ExpenseStatusRejected ExpenseStatus = "rejected"
	ExpenseStatusPaid     ExpenseStatus = "paid"
)

// Expense is a branch expenditure moving pending -> approved|rejected,
// approved -> paid. Rejected and paid are terminal.
type Expense struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Date          time.Time       `gorm:"type:date;not null" json:"date"`
	Reason        string          `gorm:"type:varchar(255);not null" json:"reason"`
	TotalCost     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_cost"`
	RequesterID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"requester_id"`
	Category      string          `gorm:"type:varchar(100)" json:"category,omitempty"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	PaymentMethod string          `gorm:"type:varchar(50)" json:"payment_method,omitempty"`
	Status        ExpenseStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ApprovedByID  *uuid.UUID      `gorm:"type:uuid" json:"approved_by_id,omitempty"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Requester  User  `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	ApprovedBy *User `gorm:"foreignKey:ApprovedByID" json:"approved_by,omitempty"`
}

func (Expense) TableName() string {
	return "expenses"
}

// CanTransitionTo checks the expense state machine.
func (s ExpenseStatus) CanTransitionTo(target ExpenseStatus) bool {
	switch s {
	case ExpenseStatusPending:
		return target == ExpenseStatusApproved || target == ExpenseStatusRejected
	case ExpenseStatusApproved:
		return target == ExpenseStatusPaid
	default:
		return false
	}
}
