package repository

import (
	"errors"

	"radlab-backoffice/internal/domain/entity"
	domainRepo "radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scanRepository struct{}

func NewScanRepository() domainRepo.ScanRepository {
	return &scanRepository{}
}

func (r *scanRepository) Create(db *gorm.DB, scan *entity.Scan) error {
	return db.Create(scan).Error
}

func (r *scanRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Scan, error) {
	var scan entity.Scan
	err := db.Where("id = ?", id).First(&scan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &scan, nil
}

func (r *scanRepository) FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.Scan, error) {
	var scans []entity.Scan
	err := db.Where("id IN ?", ids).Find(&scans).Error
	if err != nil {
		return nil, err
	}
	return scans, nil
}

var scanSortColumns = map[string]string{
	"name":       "name",
	"actualCost": "actual_cost",
	"minPrice":   "min_price",
	"createdAt":  "created_at",
}

func (r *scanRepository) FindAll(db *gorm.DB, params *pagination.Params) ([]entity.Scan, int64, error) {
	q := db.Model(&entity.Scan{}).Where("is_active = ?", true)

	if params.Search != "" {
		q = q.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var scans []entity.Scan
	err := q.Order(orderClause(scanSortColumns, params, "name ASC")).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&scans).Error
	if err != nil {
		return nil, 0, err
	}
	return scans, total, nil
}

func (r *scanRepository) Update(db *gorm.DB, scan *entity.Scan) error {
	return db.Save(scan).Error
}

func (r *scanRepository) SoftDelete(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.Scan{}).Where("id = ?", id).Update("is_active", false).Error
}
