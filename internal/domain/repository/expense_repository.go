package repository

import (
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(db *gorm.DB, expense *entity.Expense) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Expense, error)
	FindAll(db *gorm.DB, filter *entity.ExpenseFilter, params *pagination.Params) ([]entity.Expense, int64, error)
	Update(db *gorm.DB, expense *entity.Expense) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
