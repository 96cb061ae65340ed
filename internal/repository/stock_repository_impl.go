package repository

import (
	"errors"
	"time"

	"radlab-backoffice/internal/domain/entity"
	domainRepo "radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stockRepository struct{}

func NewStockRepository() domainRepo.StockRepository {
	return &stockRepository{}
}

func (r *stockRepository) Create(db *gorm.DB, item *entity.StockItem) error {
	return db.Create(item).Error
}

func (r *stockRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.StockItem, error) {
	var item entity.StockItem
	err := db.Preload("Branch").Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *stockRepository) FindByNameAndBranch(db *gorm.DB, branchID uuid.UUID, name string) (*entity.StockItem, error) {
	var item entity.StockItem
	err := db.Where("branch_id = ? AND LOWER(name) = LOWER(?) AND is_active = ?", branchID, name, true).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

var stockSortColumns = map[string]string{
	"name":       "name",
	"quantity":   "quantity",
	"validUntil": "valid_until",
	"createdAt":  "created_at",
}

func (r *stockRepository) FindAll(db *gorm.DB, filter *entity.StockFilter, params *pagination.Params) ([]entity.StockItem, int64, error) {
	q := db.Model(&entity.StockItem{}).Where("is_active = ?", true)

	if filter != nil {
		if filter.BranchID != nil {
			q = q.Where("branch_id = ?", *filter.BranchID)
		}
		if filter.LowStock {
			q = q.Where("quantity <= minimum_threshold")
		}
		if filter.Expired {
			q = q.Where("valid_until < ?", time.Now())
		}
	}

	if params.Search != "" {
		q = q.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.StockItem
	err := q.Preload("Branch").
		Order(orderClause(stockSortColumns, params, "name ASC")).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *stockRepository) Update(db *gorm.DB, item *entity.StockItem) error {
	return db.Save(item).Error
}

func (r *stockRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.StockItem{}).Where("id = ?", id).Update("is_active", false).Error
}

// AdjustQuantity applies a signed delta with a non-negative guard.
// The guard makes concurrent subtractions safe without row locks.
func (r *stockRepository) AdjustQuantity(db *gorm.DB, id uuid.UUID, delta int) (int64, error) {
	result := db.Model(&entity.StockItem{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	return result.RowsAffected, result.Error
}

// DeductByName decrements iff quantity >= qty, per the conditional-update
// contract the appointment completion path relies on.
func (r *stockRepository) DeductByName(db *gorm.DB, branchID uuid.UUID, name string, qty int) (int64, error) {
	result := db.Model(&entity.StockItem{}).
		Where("branch_id = ? AND LOWER(name) = LOWER(?) AND is_active = ? AND quantity >= ?", branchID, name, true, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	return result.RowsAffected, result.Error
}
