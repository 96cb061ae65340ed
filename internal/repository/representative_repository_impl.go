package repository

import (
	"errors"

	"radlab-backoffice/internal/domain/entity"
	domainRepo "radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type representativeRepository struct{}

func NewRepresentativeRepository() domainRepo.RepresentativeRepository {
	return &representativeRepository{}
}

func (r *representativeRepository) Create(db *gorm.DB, rep *entity.Representative) error {
	return db.Create(rep).Error
}

func (r *representativeRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Representative, error) {
	var rep entity.Representative
	err := db.Where("id = ?", id).First(&rep).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rep, nil
}

var representativeSortColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
}

func (r *representativeRepository) FindAll(db *gorm.DB, params *pagination.Params) ([]entity.Representative, int64, error) {
	q := db.Model(&entity.Representative{}).Where("is_active = ?", true)

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("name ILIKE ? OR business_id ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reps []entity.Representative
	err := q.Order(orderClause(representativeSortColumns, params, "created_at DESC")).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&reps).Error
	if err != nil {
		return nil, 0, err
	}
	return reps, total, nil
}

func (r *representativeRepository) Update(db *gorm.DB, rep *entity.Representative) error {
	return db.Save(rep).Error
}

func (r *representativeRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Representative{}).Error
}

func (r *representativeRepository) SetCounters(db *gorm.DB, id uuid.UUID, patients, doctors int64) error {
	return db.Model(&entity.Representative{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"patients_count": patients,
			"doctors_count":  doctors,
		}).Error
}
