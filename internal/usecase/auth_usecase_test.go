package usecase

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/sirupsen/logrus"
)

func TestValidateTOTPAcceptsSkewedSteps(t *testing.T) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: "skew-test",
	})
	if err != nil {
		t.Fatalf("totp.Generate() error = %v", err)
	}
	secret := key.Secret()

	u := &authUsecase{log: logrus.New()}

	tests := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{"current step", 0, true},
		{"one step behind", -30 * time.Second, true},
		{"two steps behind", -60 * time.Second, true},
		{"one step ahead", 30 * time.Second, true},
		{"two steps ahead", 60 * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := totp.GenerateCode(secret, time.Now().Add(tt.offset))
			if err != nil {
				t.Fatalf("GenerateCode() error = %v", err)
			}
			if got := u.validateTOTP(code, secret); got != tt.want {
				t.Errorf("validateTOTP(offset %v) = %v, want %v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestValidateTOTPRejectsFarSteps(t *testing.T) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: "reject-test",
	})
	if err != nil {
		t.Fatalf("totp.Generate() error = %v", err)
	}
	secret := key.Secret()

	u := &authUsecase{log: logrus.New()}

	// Five minutes is well outside the accepted window.
	code, err := totp.GenerateCode(secret, time.Now().Add(-5*time.Minute))
	if err != nil {
		t.Fatalf("GenerateCode() error = %v", err)
	}
	if u.validateTOTP(code, secret) {
		t.Error("validateTOTP accepted a code five minutes old")
	}

	if u.validateTOTP("000000", secret) && u.validateTOTP("123456", secret) {
		t.Error("validateTOTP accepted arbitrary codes")
	}
}
