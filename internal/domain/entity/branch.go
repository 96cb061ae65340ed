package entity

import (
	"time"

	"github.com/google/uuid"
)

// Branch is a physical location holding stock and conducting appointments.
type Branch struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Location  string    `gorm:"type:varchar(255)" json:"location,omitempty"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Manager   string    `gorm:"type:varchar(255)" json:"manager,omitempty"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Branch) TableName() string {
	return "branches"
}
