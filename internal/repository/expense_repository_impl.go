package repository

import (
	"errors"

	"radlab-backoffice/internal/domain/entity"
	domainRepo "radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var expenseSortColumns = map[string]string{
	"date":       "date",
	"total_cost": "total_cost",
	"status":     "status",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type expenseRepository struct{}

func NewExpenseRepository() domainRepo.ExpenseRepository {
	return &expenseRepository{}
}

func (r *expenseRepository) Create(db *gorm.DB, expense *entity.Expense) error {
	return db.Create(expense).Error
}

func (r *expenseRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := db.Preload("Requester").Preload("ApprovedBy").
		Where("id = ?", id).First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) FindAll(db *gorm.DB, filter *entity.ExpenseFilter, params *pagination.Params) ([]entity.Expense, int64, error) {
	q := db.Model(&entity.Expense{})

	if filter != nil {
		if filter.Status != nil {
			q = q.Where("status = ?", *filter.Status)
		}
		if filter.From != nil {
			q = q.Where("date >= ?", *filter.From)
		}
		if filter.To != nil {
			q = q.Where("date < ?", *filter.To)
		}
	}

	if params.Search != "" {
		q = q.Where("reason ILIKE ? OR description ILIKE ?", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var expenses []entity.Expense
	err := q.Preload("Requester").
		Order(orderClause(expenseSortColumns, params, "date DESC")).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&expenses).Error
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

func (r *expenseRepository) Update(db *gorm.DB, expense *entity.Expense) error {
	return db.Save(expense).Error
}

func (r *expenseRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Expense{}).Error
}
