package repository

import (
	"errors"

	"radlab-backoffice/internal/domain/entity"
	domainRepo "radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type branchRepository struct{}

func NewBranchRepository() domainRepo.BranchRepository {
	return &branchRepository{}
}

func (r *branchRepository) Create(db *gorm.DB, branch *entity.Branch) error {
	return db.Create(branch).Error
}

func (r *branchRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Branch, error) {
	var branch entity.Branch
	err := db.Where("id = ?", id).First(&branch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &branch, nil
}

var branchSortColumns = map[string]string{
	"name":      "name",
	"location":  "location",
	"createdAt": "created_at",
}

func (r *branchRepository) FindAll(db *gorm.DB, params *pagination.Params) ([]entity.Branch, int64, error) {
	q := db.Model(&entity.Branch{}).Where("is_active = ?", true)

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("name ILIKE ? OR location ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var branches []entity.Branch
	err := q.Order(orderClause(branchSortColumns, params, "name ASC")).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&branches).Error
	if err != nil {
		return nil, 0, err
	}
	return branches, total, nil
}

func (r *branchRepository) Update(db *gorm.DB, branch *entity.Branch) error {
	return db.Save(branch).Error
}

func (r *branchRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Branch{}).Error
}
