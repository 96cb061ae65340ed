package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"radlab-backoffice/internal/converter"
	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/internal/service"
	"radlab-backoffice/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pquerna/otp/totp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const totpSkew = 2

var (
	ErrUsernameAlreadyExists  = errors.New("username already exists")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrLicenseIDAlreadyExists = errors.New("license id already exists")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrAccountInactive        = errors.New("account is inactive")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrTokenRevoked           = errors.New("token has been revoked")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidTOTP            = errors.New("Invalid 2FA token")
	ErrTwoFactorNotEnabled    = errors.New("two-factor authentication is not set up")
	ErrTwoFactorAlreadySetUp  = errors.New("two-factor authentication is already enabled")
	ErrLicenseIDRequired      = errors.New("license id is required for radiologists")
	ErrResetTokenInvalid      = errors.New("invalid or expired reset token")
)

const totpIssuer = "RadLab Back-Office"

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyRegistration(ctx context.Context, req *dto.VerifyRegistrationRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TwoFactorChallengeResponse, error)
	VerifyLogin(ctx context.Context, req *dto.VerifyLoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	mailer      service.Mailer
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	mailer service.Mailer,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		jwtService:  jwtService,
		redisClient: redisClient,
		mailer:      mailer,
	}
}

// Register creates the account in a pending-2FA state and returns the TOTP
// provisioning data. The account cannot log in until the first code is
// verified.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.UserType == entity.UserTypeRadiologist && req.LicenseID == "" {
		return nil, ErrLicenseIDRequired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: req.Username,
	})
	if err != nil {
		u.log.Warnf("Failed to generate TOTP secret: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username:         req.Username,
		Name:             req.Name,
		Email:            req.Email,
		Password:         string(hashedPassword),
		UserType:         req.UserType,
		IsSuperAdmin:     req.UserType == entity.UserTypeSuperAdmin,
		TwoFactorSecret:  key.Secret(),
		TwoFactorEnabled: false,
	}
	if req.LicenseID != "" {
		user.LicenseID = &req.LicenseID
	}

	if err := u.userRepo.Create(u.db.WithContext(ctx), user); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameAlreadyExists
		}
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isDuplicateKeyError(err, "license") {
			return nil, ErrLicenseIDAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	return &dto.RegisterResponse{
		UserID:     user.ID,
		Secret:     key.Secret(),
		OtpAuthURL: key.URL(),
	}, nil
}

// VerifyRegistration confirms the first TOTP, enables 2FA and issues the
// initial token pair.
func (u *authUsecase) VerifyRegistration(ctx context.Context, req *dto.VerifyRegistrationRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.TwoFactorEnabled {
		return nil, ErrTwoFactorAlreadySetUp
	}

	if !u.validateTOTP(req.Token, user.TwoFactorSecret) {
		return nil, ErrInvalidTOTP
	}

	user.TwoFactorEnabled = true
	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to enable 2FA: %+v", err)
		return nil, err
	}

	return u.issueTokenPair(ctx, user)
}

// Login verifies the password and answers with a short-lived two-factor
// token. The credentials alone never yield an access token.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TwoFactorChallengeResponse, error) {
	user, err := u.userRepo.FindByUsername(u.db.WithContext(ctx), req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Active() {
		return nil, ErrAccountInactive
	}
	if !user.TwoFactorEnabled {
		return nil, ErrTwoFactorNotEnabled
	}

	twoFactorToken, _, err := u.jwtService.GenerateTwoFactorToken(user.ID)
	if err != nil {
		u.log.Warnf("Failed to generate two-factor token: %+v", err)
		return nil, err
	}

	return &dto.TwoFactorChallengeResponse{
		TwoFactorRequired: true,
		TwoFactorToken:    twoFactorToken,
	}, nil
}

// VerifyLogin completes the handshake: a valid two-factor token plus a
// current TOTP yields the token pair.
func (u *authUsecase) VerifyLogin(ctx context.Context, req *dto.VerifyLoginRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateTwoFactorToken(req.TwoFactorToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Active() {
		return nil, ErrAccountInactive
	}

	if !u.validateTOTP(req.Token, user.TwoFactorSecret) {
		return nil, ErrInvalidTOTP
	}

	return u.issueTokenPair(ctx, user)
}

// RefreshToken rotates a whitelisted refresh token into a new pair. The old
// refresh token is revoked before the new pair is issued.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Active() {
		return nil, ErrAccountInactive
	}

	return u.issueTokenPair(ctx, user)
}

// Logout revokes the presented access token and every refresh token the
// user holds.
func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error {
	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), accessTokenID)
	if err := u.redisClient.Del(ctx, accessKey).Err(); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	refreshPattern := fmt.Sprintf("refresh_token:%s:*", userID.String())
	refreshKeys, err := u.redisClient.Keys(ctx, refreshPattern).Result()
	if err != nil {
		u.log.Warnf("Failed to get refresh token keys: %+v", err)
		return err
	}
	if len(refreshKeys) > 0 {
		if err := u.redisClient.Del(ctx, refreshKeys...).Err(); err != nil {
			u.log.Warnf("Failed to delete refresh tokens: %+v", err)
			return err
		}
	}

	return nil
}

// ForgotPassword stores a single-use reset token and emails it. The
// response is identical whether or not the email is registered.
func (u *authUsecase) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if user == nil || !user.Active() {
		return nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		u.log.Warnf("Failed to generate reset token: %+v", err)
		return err
	}
	token := hex.EncodeToString(buf)
	expiresAt := time.Now().Add(1 * time.Hour)

	user.PasswordResetToken = &token
	user.PasswordResetExpiresAt = &expiresAt
	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to store reset token: %+v", err)
		return err
	}

	if err := u.mailer.SendPasswordReset(user.Email, user.Name, token); err != nil {
		return err
	}
	return nil
}

// ResetPassword consumes the reset token, sets the new password and issues
// a fresh token pair. All previously issued tokens are revoked.
func (u *authUsecase) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByResetToken(u.db.WithContext(ctx), req.Token)
	if err != nil {
		u.log.Warnf("Failed to find user by reset token: %+v", err)
		return nil, err
	}
	if user == nil || user.PasswordResetExpiresAt == nil || user.PasswordResetExpiresAt.Before(time.Now()) {
		return nil, ErrResetTokenInvalid
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user.Password = string(hashedPassword)
	user.PasswordResetToken = nil
	user.PasswordResetExpiresAt = nil
	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to reset password: %+v", err)
		return nil, err
	}

	u.revokeAllTokens(ctx, user.ID)

	return u.issueTokenPair(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// validateTOTP accepts codes within a two-step window on either side of the
// current 30-second step.
func (u *authUsecase) validateTOTP(code string, secret string) bool {
	now := time.Now()
	for offset := -totpSkew; offset <= totpSkew; offset++ {
		at := now.Add(time.Duration(offset) * 30 * time.Second)
		expected, err := totp.GenerateCode(secret, at)
		if err != nil {
			return false
		}
		if expected == code {
			return true
		}
	}
	return false
}

// issueTokenPair generates and whitelists an access/refresh pair.
func (u *authUsecase) issueTokenPair(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", user.ID.String(), accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", user.ID.String(), refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}
	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		User:         converter.UserToResponse(user),
	}, nil
}

func (u *authUsecase) revokeAllTokens(ctx context.Context, userID uuid.UUID) {
	for _, pattern := range []string{
		fmt.Sprintf("access_token:%s:*", userID.String()),
		fmt.Sprintf("refresh_token:%s:*", userID.String()),
	} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to list token keys: %+v", err)
			continue
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete token keys: %+v", err)
			}
		}
	}
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
