package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/pkg/jwt"
	"radlab-backoffice/pkg/response"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type contextKey string

const (
	UserKey    contextKey = "user"
	TokenIDKey contextKey = "token_id"
)

type AuthMiddleware struct {
	db          *gorm.DB
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	userRepo    repository.UserRepository
}

func NewAuthMiddleware(db *gorm.DB, jwtService *jwt.JWTService, redisClient *redis.Client, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		db:          db,
		jwtService:  jwtService,
		redisClient: redisClient,
		userRepo:    userRepo,
	}
}

// Authenticate validates the bearer token against the signature, the Redis
// whitelist, and the current account state, then stores the full user on
// the request context for the privilege check.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractToken(r)
		if tokenString == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		claims, err := m.jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		// Revocation check against the whitelist
		tokenKey := fmt.Sprintf("access_token:%s:%s", claims.UserID.String(), claims.TokenID)
		exists, err := m.redisClient.Exists(r.Context(), tokenKey).Result()
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if exists == 0 {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		user, err := m.userRepo.FindByID(m.db.WithContext(r.Context()), claims.UserID)
		if err != nil {
			response.InternalServerError(w, "Failed to load user")
			return
		}
		if user == nil || !user.Active() {
			response.Unauthorized(w, "Account is inactive")
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken reads the bearer token, falling back to the token query
// parameter for websocket upgrades where headers cannot be set.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserKey).(*entity.User)
	return user, ok
}

// GetTokenIDFromContext extracts the access token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
