package jwt

import (
	"errors"
	"time"

	"radlab-backoffice/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken    TokenType = "access"
	RefreshToken   TokenType = "refresh"
	TwoFactorToken TokenType = "2fa_verify"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	TokenType TokenType `json:"token_type"`
	TokenID   string    `json:"token_id"`
	jwt.RegisteredClaims
}

type JWTService struct {
	config config.JWTConfig
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{config: cfg}
}

func (s *JWTService) GenerateAccessToken(userID uuid.UUID) (string, string, error) {
	return s.generate(userID, AccessToken, s.config.AccessExpiry, s.config.AccessSecret)
}

func (s *JWTService) GenerateRefreshToken(userID uuid.UUID) (string, string, error) {
	return s.generate(userID, RefreshToken, s.config.RefreshExpiry, s.config.RefreshSecret)
}

// GenerateTwoFactorToken issues the short-lived handshake token returned by
// the first login step. It is only accepted by the 2FA verification endpoint.
func (s *JWTService) GenerateTwoFactorToken(userID uuid.UUID) (string, string, error) {
	return s.generate(userID, TwoFactorToken, s.config.TwoFactorExpiry, s.config.AccessSecret)
}

func (s *JWTService) generate(userID uuid.UUID, tokenType TokenType, expiry time.Duration, secret string) (string, string, error) {
	tokenID := uuid.New().String()
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		TokenID:   tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	return signedToken, tokenID, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, AccessToken, s.config.AccessSecret)
}

func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, RefreshToken, s.config.RefreshSecret)
}

func (s *JWTService) ValidateTwoFactorToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, TwoFactorToken, s.config.AccessSecret)
}

func (s *JWTService) validate(tokenString string, expected TokenType, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != expected {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *JWTService) GetAccessExpiry() time.Duration {
	return s.config.AccessExpiry
}

func (s *JWTService) GetRefreshExpiry() time.Duration {
	return s.config.RefreshExpiry
}
