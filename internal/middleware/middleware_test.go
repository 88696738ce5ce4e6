package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorBody struct {
	Success bool             `json:"success"`
	Error   *dto.ErrorDetail `json:"error"`
}

func TestHandleAPIError(t *testing.T) {
	tcases := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"not found", apperrors.NewResourceNotFoundError("classroom not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "classroom not found"},
		{"forbidden", apperrors.NewForbiddenError("not yours"), http.StatusForbidden, dto.ErrorCodeForbidden, "not yours"},
		{"bad request", apperrors.NewBadRequestError("content must not be empty"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "content must not be empty"},
		{"conflict", apperrors.NewConflictError("invitation is already accepted"), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "invitation is already accepted"},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
		{"revoked token", fmt.Errorf("refresh: %w", apperrors.ErrTokenRevoked), http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"},
		{"weak password", &apperrors.CustomError{Err: apperrors.ErrWeakPassword, Message: "too weak"}, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "too weak"},
		{"gateway", apperrors.NewExternalServiceError("failed to create Webex meeting", errors.New("dial tcp")), http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "failed to create Webex meeting"},
		{"unclassified", errors.New("pq: relation does not exist"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rr)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tc.err)

			assert.Equal(t, tc.status, rr.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.code, body.Error.Code)
			assert.Equal(t, tc.message, body.Error.Message)
			assert.NotContains(t, rr.Body.String(), "pq:")
		})
	}
}

func newTestJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "middleware-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func TestJWTAuth(t *testing.T) {
	jwtService := newTestJWT()
	pair, err := jwtService.GenerateTokenPair(42, "t@school.edu")
	require.NoError(t, err)

	other := auth.NewJWTService(auth.JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	forged, err := other.GenerateTokenPair(42, "t@school.edu")
	require.NoError(t, err)

	tcases := []struct {
		name   string
		header string
		status int
		code   dto.ErrorCode
	}{
		{"valid token", "Bearer " + pair.AccessToken, http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"bad signature", "Bearer " + forged.AccessToken, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/me", NewAuthMiddleware(jwtService).JWTAuth(), func(c *gin.Context) {
				id, ok := AccountID(c)
				require.True(t, ok)
				c.String(http.StatusOK, "%d", id)
			})

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "42", rr.Body.String())
				return
			}
			var body errorBody
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Error.Code)
		})
	}
}

func TestOptionalJWTAuth(t *testing.T) {
	jwtService := newTestJWT()
	pair, err := jwtService.GenerateTokenPair(7, "t@school.edu")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/posts", NewAuthMiddleware(jwtService).OptionalJWTAuth(), func(c *gin.Context) {
		if id, ok := AccountID(c); ok {
			c.String(http.StatusOK, "viewer %d", id)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	tcases := []struct {
		header string
		want   string
	}{
		{"", "anonymous"},
		{"Bearer garbage", "anonymous"},
		{"Bearer " + pair.AccessToken, "viewer 7"},
	}
	for _, tc := range tcases {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, tc.want, rr.Body.String())
	}
}

type validatedRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,strongpassword"`
	Name     *string `json:"name" binding:"omitempty,notblank"`
}

func TestCustomValidators(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, registerOn(v))

	blank := "   "
	named := "Room 10"

	tcases := []struct {
		name  string
		req   validatedRequest
		field string
	}{
		{"valid", validatedRequest{Email: "t@school.edu", Password: "Str0ng!pass", Name: &named}, ""},
		{"weak password", validatedRequest{Email: "t@school.edu", Password: "password"}, "password"},
		{"blank name", validatedRequest{Email: "t@school.edu", Password: "Str0ng!pass", Name: &blank}, "name"},
		{"bad email", validatedRequest{Email: "nope", Password: "Str0ng!pass"}, "email"},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.req)
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			detail := dto.HandleValidationError(err)
			assert.Equal(t, dto.ErrorCodeValidationFailed, detail.Code)
			assert.Equal(t, tc.field, detail.Field)
		})
	}
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"http://localhost:5173"}))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
