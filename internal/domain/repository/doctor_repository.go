package repository

import (
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindAll(db *gorm.DB, params *pagination.Params) ([]entity.Doctor, int64, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
	Delete(db *gorm.DB, id uuid.UUID) error
	IncrementPatientsReferred(db *gorm.DB, id uuid.UUID) error
	IncrementScansReferred(db *gorm.DB, id uuid.UUID) error
	SetCounters(db *gorm.DB, id uuid.UUID, patients, scans int64) error
	CountByRepresentative(db *gorm.DB, representativeID uuid.UUID) (int64, error)
}
