package repository

import (
	"time"

	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter, params *pagination.Params) ([]entity.Appointment, int64, error)
	// FindConflict returns an active appointment for the radiologist at the
	// exact timestamp with status scheduled or in_progress, excluding the
	// given id (zero UUID means no exclusion).
	FindConflict(db *gorm.DB, radiologistID uuid.UUID, scheduledAt time.Time, excludeID uuid.UUID) (*entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id uuid.UUID) error
	CountActiveByPatient(db *gorm.DB, patientID uuid.UUID) (int64, error)
	CountByReferredBy(db *gorm.DB, doctorID uuid.UUID) (int64, error)
}
