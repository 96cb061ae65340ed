package repository

import (
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockRepository interface {
	Create(db *gorm.DB, item *entity.StockItem) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.StockItem, error)
	// FindByNameAndBranch matches active rows case-insensitively on name.
	FindByNameAndBranch(db *gorm.DB, branchID uuid.UUID, name string) (*entity.StockItem, error)
	FindAll(db *gorm.DB, filter *entity.StockFilter, params *pagination.Params) ([]entity.StockItem, int64, error)
	Update(db *gorm.DB, item *entity.StockItem) error
	Delete(db *gorm.DB, id uuid.UUID) error
	// AdjustQuantity applies a signed delta iff the result stays >= 0.
	// Returns affected rows: 0 means the guard rejected the subtraction.
	AdjustQuantity(db *gorm.DB, id uuid.UUID, delta int) (int64, error)
	// DeductByName decrements iff quantity >= qty for the active row matching
	// the branch and case-insensitive name. Returns affected rows.
	DeductByName(db *gorm.DB, branchID uuid.UUID, name string, qty int) (int64, error)
}
