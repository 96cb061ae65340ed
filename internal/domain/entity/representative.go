package entity

import (
	"time"

	"github.com/google/uuid"
)

// Representative is a sales representative associated with referring doctors
// and patients. PatientsCount and DoctorsCount are recomputable caches.
type Representative struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Age           int       `gorm:"not null" json:"age"`
	BusinessID    string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"business_id"`
	PhoneNumber   string    `gorm:"type:varchar(20);not null" json:"phone_number"`
	PatientsCount int       `gorm:"not null;default:0" json:"patients_count"`
	DoctorsCount  int       `gorm:"not null;default:0" json:"doctors_count"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	IsActive      *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Representative) TableName() string {
	return "representatives"
}
