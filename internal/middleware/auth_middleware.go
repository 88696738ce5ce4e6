package middleware

import (
	"errors"
	"net/http"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	AccountIDKey = "accountID"
	EmailKey     = "email"
)

// AuthMiddleware for authentication
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth rejects requests without a valid bearer access token
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			if errors.Is(err, apperrors.ErrTokenNotFound) {
				errorDetail = errorDetail.WithDetails("Authorization header missing")
			} else {
				errorDetail = errorDetail.WithDetails("Invalid token format")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed").WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(AccountIDKey, claims.AccountID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// OptionalJWTAuth identifies the caller when a valid token is present and
// lets anonymous requests through otherwise
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err == nil {
			if claims, err := m.jwtService.ValidateToken(tokenString); err == nil {
				c.Set(AccountIDKey, claims.AccountID)
				c.Set(EmailKey, claims.Email)
			}
		}
		c.Next()
	}
}

// AccountID returns the authenticated account id, if any
func AccountID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(AccountIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}
