package repository

import (
	"errors"

	"radlab-backoffice/internal/domain/entity"
	domainRepo "radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Create(doctor).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

var doctorSortColumns = map[string]string{
	"name":               "name",
	"specialization":     "specialization",
	"totalScansReferred": "total_scans_referred",
	"createdAt":          "created_at",
}

func (r *doctorRepository) FindAll(db *gorm.DB, params *pagination.Params) ([]entity.Doctor, int64, error) {
	q := db.Model(&entity.Doctor{}).Where("is_active = ?", true)

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("name ILIKE ? OR specialization ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var doctors []entity.Doctor
	err := q.Order(orderClause(doctorSortColumns, params, "created_at DESC")).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&doctors).Error
	if err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Save(doctor).Error
}

func (r *doctorRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Doctor{}).Error
}

func (r *doctorRepository) IncrementPatientsReferred(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.Doctor{}).Where("id = ?", id).
		Update("total_patients_referred", gorm.Expr("total_patients_referred + 1")).Error
}

func (r *doctorRepository) IncrementScansReferred(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.Doctor{}).Where("id = ?", id).
		Update("total_scans_referred", gorm.Expr("total_scans_referred + 1")).Error
}

func (r *doctorRepository) SetCounters(db *gorm.DB, id uuid.UUID, patients, scans int64) error {
	return db.Model(&entity.Doctor{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_patients_referred": patients,
			"total_scans_referred":    scans,
		}).Error
}

func (r *doctorRepository) CountByRepresentative(db *gorm.DB, representativeID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Doctor{}).Where("representative_id = ?", representativeID).Count(&count).Error
	return count, err
}
