package repository

import (
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BranchRepository interface {
	Create(db *gorm.DB, branch *entity.Branch) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Branch, error)
	FindAll(db *gorm.DB, params *pagination.Params) ([]entity.Branch, int64, error)
	Update(db *gorm.DB, branch *entity.Branch) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
