package repository

import (
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RepresentativeRepository interface {
	Create(db *gorm.DB, rep *entity.Representative) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Representative, error)
	FindAll(db *gorm.DB, params *pagination.Params) ([]entity.Representative, int64, error)
	Update(db *gorm.DB, rep *entity.Representative) error
	Delete(db *gorm.DB, id uuid.UUID) error
	SetCounters(db *gorm.DB, id uuid.UUID, patients, doctors int64) error
}
