package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Gender values
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// StringList is a JSONB-backed string array (medical history notes, image paths).
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(value interface{}) error {
	*s = nil
	return scanJSONB(value, s)
}

// Patient represents a person receiving scans. Patients are soft-deleted.
type Patient struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name             string     `gorm:"type:varchar(255);not null" json:"name"`
	DateOfBirth      time.Time  `gorm:"type:date;not null" json:"date_of_birth"`
	Gender           string     `gorm:"type:varchar(10);not null" json:"gender"`
	PhoneNumber      string     `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	SocialNumber     *string    `gorm:"type:varchar(50);uniqueIndex" json:"social_number,omitempty"`
	DoctorReferredID uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_referred_id"`
	RepresentativeID *uuid.UUID `gorm:"type:uuid;index" json:"representative_id,omitempty"`
	MedicalHistory   StringList `gorm:"type:jsonb;not null;default:'[]'" json:"medical_history"`
	Address          string     `gorm:"type:text" json:"address,omitempty"`
	IsActive         *bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	DoctorReferred Doctor          `gorm:"foreignKey:DoctorReferredID" json:"doctor_referred,omitempty"`
	Representative *Representative `gorm:"foreignKey:RepresentativeID" json:"representative,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
