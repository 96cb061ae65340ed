package repository

import (
	"errors"

	"radlab-backoffice/internal/domain/entity"
	domainRepo "radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Preload("DoctorReferred").Preload("Representative").Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindActiveByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Preload("DoctorReferred").Where("id = ? AND is_active = ?", id, true).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

var patientSortColumns = map[string]string{
	"name":        "name",
	"dateOfBirth": "date_of_birth",
	"createdAt":   "created_at",
}

func (r *patientRepository) FindAll(db *gorm.DB, params *pagination.Params) ([]entity.Patient, int64, error) {
	q := db.Model(&entity.Patient{}).Where("is_active = ?", true)

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("name ILIKE ? OR phone_number ILIKE ? OR social_number ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patients []entity.Patient
	err := q.Preload("DoctorReferred").
		Order(orderClause(patientSortColumns, params, "created_at DESC")).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&patients).Error
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Save(patient).Error
}

func (r *patientRepository) SoftDelete(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.Patient{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *patientRepository) CountByDoctor(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Patient{}).Where("doctor_referred_id = ?", doctorID).Count(&count).Error
	return count, err
}

func (r *patientRepository) CountByRepresentative(db *gorm.DB, representativeID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Patient{}).Where("representative_id = ?", representativeID).Count(&count).Error
	return count, err
}
