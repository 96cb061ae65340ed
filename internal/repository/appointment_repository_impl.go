package repository

import (
	"errors"
	"time"

	"radlab-backoffice/internal/domain/entity"
	domainRepo "radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Radiologist").
		Preload("Patient").
		Preload("Branch").
		Preload("ReferredBy").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

var appointmentSortColumns = map[string]string{
	"scheduledAt": "scheduled_at",
	"status":      "status",
	"price":       "price",
	"createdAt":   "created_at",
}

func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter, params *pagination.Params) ([]entity.Appointment, int64, error) {
	q := db.Model(&entity.Appointment{}).Where("is_active = ?", true)

	if filter != nil {
		if filter.Status != nil {
			q = q.Where("status = ?", *filter.Status)
		}
		if filter.From != nil {
			q = q.Where("scheduled_at >= ?", *filter.From)
		}
		if filter.To != nil {
			q = q.Where("scheduled_at < ?", *filter.To)
		}
		if filter.PatientID != nil {
			q = q.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.DoctorID != nil {
			q = q.Where("referred_by_id = ?", *filter.DoctorID)
		}
		if filter.RadiologistID != nil {
			q = q.Where("radiologist_id = ?", *filter.RadiologistID)
		}
		if filter.BranchID != nil {
			q = q.Where("branch_id = ?", *filter.BranchID)
		}
		if filter.RepresentativeID != nil {
			q = q.Where("representative_id = ?", *filter.RepresentativeID)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := q.Preload("Radiologist").
		Preload("Patient").
		Preload("ReferredBy").
		Order(orderClause(appointmentSortColumns, params, "scheduled_at DESC")).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) FindConflict(db *gorm.DB, radiologistID uuid.UUID, scheduledAt time.Time, excludeID uuid.UUID) (*entity.Appointment, error) {
	q := db.Where(
		"radiologist_id = ? AND scheduled_at = ? AND status IN ? AND is_active = ?",
		radiologistID,
		scheduledAt,
		[]entity.AppointmentStatus{entity.AppointmentStatusScheduled, entity.AppointmentStatusInProgress},
		true,
	)
	if excludeID != uuid.Nil {
		q = q.Where("id != ?", excludeID)
	}

	var appointment entity.Appointment
	err := q.First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Appointment{}).Error
}

func (r *appointmentRepository) CountActiveByPatient(db *gorm.DB, patientID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("patient_id = ? AND status IN ? AND is_active = ?",
			patientID,
			[]entity.AppointmentStatus{entity.AppointmentStatusScheduled, entity.AppointmentStatusInProgress},
			true,
		).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountByReferredBy(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Where("referred_by_id = ?", doctorID).Count(&count).Error
	return count, err
}
