package entity

import (
	"time"

	"github.com/google/uuid"
)

// User types
const (
	UserTypeSuperAdmin   = "superAdmin"
	UserTypeDoctor       = "doctor"
	UserTypeReceptionist = "receptionist"
	UserTypeRadiologist  = "radiologist"
)

// User represents a staff account. Radiologists are users with
// UserType=radiologist plus a unique license id.
type User struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username         string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Name             string          `gorm:"type:varchar(255);not null" json:"name"`
	Email            string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password         string          `gorm:"type:text;not null" json:"-"`
	UserType         string          `gorm:"type:varchar(30);not null;index" json:"user_type"`
	IsSuperAdmin     bool            `gorm:"not null;default:false" json:"is_super_admin"`
	IsActive         *bool           `gorm:"not null;default:true;index" json:"is_active"`
	TwoFactorSecret  string          `gorm:"type:text" json:"-"`
	TwoFactorEnabled bool            `gorm:"not null;default:false" json:"two_factor_enabled"`
	LicenseID        *string         `gorm:"type:varchar(100);uniqueIndex" json:"license_id,omitempty"`
	Privileges       PrivilegeGrants `gorm:"type:jsonb;not null;default:'[]'" json:"privileges"`

	PasswordResetToken     *string    `gorm:"type:varchar(128)" json:"-"`
	PasswordResetExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Allow is the privilege check consulted on every request. Super-admins pass
// unconditionally; everyone else needs a grant for the module that includes
// the operation. It performs no I/O.
func (u *User) Allow(module, operation string) bool {
	if u.IsSuperAdmin {
		return true
	}
	grant := u.Privileges.Find(module)
	if grant == nil {
		return false
	}
	return grant.HasOperation(operation)
}

// Active reports whether the account can authenticate.
func (u *User) Active() bool {
	return u.IsActive != nil && *u.IsActive
}

// IsRadiologist reports whether the user can be assigned appointments.
func (u *User) IsRadiologist() bool {
	return u.UserType == UserTypeRadiologist
}
