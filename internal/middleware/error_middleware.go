package middleware

import (
	"errors"
	"net/http"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// errorMapping is one row of the error kind to HTTP translation table
type errorMapping struct {
	kind    error
	status  int
	code    dto.ErrorCode
	message string
}

// Order matters: the first matching kind wins
var errorMappings = []errorMapping{
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"},
	{apperrors.ErrWeakPassword, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Password does not meet policy"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid request"},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Conflict"},
	{apperrors.ErrExternalService, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "External service failure"},
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.kind) {
			continue
		}

		message := m.message
		if public, ok := apperrors.PublicMessage(err); ok {
			message = public
		}
		if m.status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.FullPath()).Msg("Upstream failure")
		}

		detail := dto.NewErrorDetail(m.code, message)
		var ce *apperrors.CustomError
		if errors.As(err, &ce) && ce.Details != nil {
			detail.WithDetails(ce.Details)
		}
		c.JSON(m.status, dto.NewErrorResponse(detail))
		return
	}

	logger.Error().Err(err).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg("Unhandled error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
	))
}

// HandleBindingError answers a failed ShouldBind* call with 400 VAL_001
func HandleBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
