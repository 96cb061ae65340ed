package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	UserType  string `json:"user_type" validate:"required,oneof=superAdmin doctor receptionist radiologist"`
	LicenseID string `json:"license_id" validate:"omitempty,max=100"`
}

type VerifyRegistrationRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Token  string    `json:"token" validate:"required,len=6,numeric"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type VerifyLoginRequest struct {
	TwoFactorToken string `json:"two_factor_token" validate:"required"`
	Token          string `json:"token" validate:"required,len=6,numeric"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// Response DTOs

type RegisterResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	Secret     string    `json:"secret"`
	OtpAuthURL string    `json:"otp_auth_url"`
}

type TwoFactorChallengeResponse struct {
	TwoFactorRequired bool   `json:"two_factor_required"`
	TwoFactorToken    string `json:"two_factor_token"`
}

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}
