package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	UserType  string `json:"user_type" validate:"required,oneof=superAdmin doctor receptionist radiologist"`
	LicenseID string `json:"license_id" validate:"omitempty,max=100"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=255"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
	UserType  *string `json:"user_type" validate:"omitempty,oneof=superAdmin doctor receptionist radiologist"`
	LicenseID *string `json:"license_id" validate:"omitempty,max=100"`
	IsActive  *bool   `json:"is_active"`

	// Super-admin only
	IsSuperAdmin *bool `json:"is_super_admin"`
}

type GrantPrivilegeRequest struct {
	Module     string   `json:"module" validate:"required"`
	Operations []string `json:"operations" validate:"required,min=1,dive,required"`
}

type RevokePrivilegeRequest struct {
	Module     string   `json:"module" validate:"required"`
	Operations []string `json:"operations" validate:"omitempty,dive,required"`
}

// Response DTOs

type PrivilegeGrantResponse struct {
	Module     string     `json:"module"`
	Operations []string   `json:"operations"`
	GrantedBy  *uuid.UUID `json:"granted_by,omitempty"`
	GrantedAt  time.Time  `json:"granted_at"`
}

type UserResponse struct {
	ID               uuid.UUID                `json:"id"`
	Username         string                   `json:"username"`
	Name             string                   `json:"name"`
	Email            string                   `json:"email"`
	UserType         string                   `json:"user_type"`
	IsSuperAdmin     bool                     `json:"is_super_admin"`
	IsActive         bool                     `json:"is_active"`
	TwoFactorEnabled bool                     `json:"two_factor_enabled"`
	LicenseID        *string                  `json:"license_id,omitempty"`
	Privileges       []PrivilegeGrantResponse `json:"privileges"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}
