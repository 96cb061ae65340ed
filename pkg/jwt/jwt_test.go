package jwt

import (
	"testing"
	"time"

	"radlab-backoffice/config"

	"github.com/google/uuid"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		AccessSecret:    "access-secret",
		RefreshSecret:   "refresh-secret",
		AccessExpiry:    15 * time.Minute,
		RefreshExpiry:   7 * 24 * time.Hour,
		TwoFactorExpiry: 5 * time.Minute,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if tokenID == "" {
		t.Fatal("GenerateAccessToken() returned empty token ID")
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.TokenID != tokenID {
		t.Errorf("TokenID = %s, want %s", claims.TokenID, tokenID)
	}
	if claims.TokenType != AccessToken {
		t.Errorf("TokenType = %s, want %s", claims.TokenType, AccessToken)
	}
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	refresh, _, err := svc.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}
	if _, err := svc.ValidateAccessToken(refresh); err == nil {
		t.Error("refresh token accepted as access token")
	}

	twoFactor, _, err := svc.GenerateTwoFactorToken(userID)
	if err != nil {
		t.Fatalf("GenerateTwoFactorToken() error = %v", err)
	}
	if _, err := svc.ValidateAccessToken(twoFactor); err == nil {
		t.Error("2FA token accepted as access token")
	}
	if _, err := svc.ValidateTwoFactorToken(twoFactor); err != nil {
		t.Errorf("ValidateTwoFactorToken() error = %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := svc.ValidateAccessToken(token + "x"); err == nil {
		t.Error("tampered token accepted")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	svc := newTestService()
	other := NewJWTService(config.JWTConfig{
		AccessSecret: "another-secret",
		AccessExpiry: time.Minute,
	})

	token, _, err := svc.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Error("token signed with a different secret accepted")
	}
}
