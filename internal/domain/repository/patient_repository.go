package repository

import (
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindActiveByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindAll(db *gorm.DB, params *pagination.Params) ([]entity.Patient, int64, error)
	Update(db *gorm.DB, patient *entity.Patient) error
	SoftDelete(db *gorm.DB, id uuid.UUID) error
	CountByDoctor(db *gorm.DB, doctorID uuid.UUID) (int64, error)
	CountByRepresentative(db *gorm.DB, representativeID uuid.UUID) (int64, error)
}
