package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor represents a referring physician. The referral counters are
// convenience caches maintained as side effects of patient and appointment
// creation; Recount rebuilds them from the source tables.
type Doctor struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name                  string     `gorm:"type:varchar(255);not null" json:"name"`
	Specialization        string     `gorm:"type:varchar(100);not null" json:"specialization"`
	LicenseNumber         *string    `gorm:"type:varchar(100)" json:"license_number,omitempty"`
	ContactNumber         string     `gorm:"type:varchar(20);not null" json:"contact_number"`
	TotalPatientsReferred int        `gorm:"not null;default:0" json:"total_patients_referred"`
	TotalScansReferred    int        `gorm:"not null;default:0" json:"total_scans_referred"`
	RepresentativeID      *uuid.UUID `gorm:"type:uuid;index" json:"representative_id,omitempty"`
	IsActive              *bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Representative *Representative `gorm:"foreignKey:RepresentativeID" json:"representative,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// Active reports whether the doctor can receive new referrals.
func (d *Doctor) Active() bool {
	return d.IsActive != nil && *d.IsActive
}

// HasReferrals reports whether any referral counter is non-zero.
// Doctors with referrals cannot be deleted.
func (d *Doctor) HasReferrals() bool {
	return d.TotalPatientsReferred > 0 || d.TotalScansReferred > 0
}
