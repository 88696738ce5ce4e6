package auth

import (
	"testing"
	"time"

	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Str0ng!Pass")
	require.NoError(t, err)

	assert.NotEqual(t, "Str0ng!Pass", hash)
	assert.True(t, CheckPassword(hash, "Str0ng!Pass"))

	for _, wrong := range []string{"", "str0ng!pass", "Str0ng!Pass ", "Str0ng!Pas"} {
		assert.False(t, CheckPassword(hash, wrong), wrong)
	}
}

func TestIsStrongPassword(t *testing.T) {
	tcases := []struct {
		password string
		strong   bool
	}{
		{"Str0ng!Pass", true},
		{"Aa1 aaaa", true},
		{"Aa1!", false},
		{"alllower1!", false},
		{"ALLUPPER1!", false},
		{"NoDigits!!", false},
		{"NoSpecial11", false},
		{"Ünï1cødeA", true},
		{"", false},
	}

	for _, tc := range tcases {
		t.Run(tc.password, func(t *testing.T) {
			assert.Equal(t, tc.strong, IsStrongPassword(tc.password))
		})
	}
}

func newTestJWTService(now time.Time) *JWTService {
	s := NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "penpals.test",
	})
	s.now = func() time.Time { return now }
	return s
}

func TestGenerateAndValidateToken(t *testing.T) {
	now := time.Now()
	s := newTestJWTService(now)

	pair, err := s.GenerateTokenPair(42, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3600, pair.ExpiresIn)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.WithinDuration(t, now.Add(24*time.Hour), pair.RefreshExpiresAt, time.Second)

	claims, err := s.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AccountID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateTokenFailures(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	old := newTestJWTService(issuedAt)
	expired, err := old.GenerateTokenPair(1, "a@example.com")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "penpals.test"})
	foreign, err := other.GenerateTokenPair(1, "a@example.com")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{AccountID: 1})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	s := newTestJWTService(time.Now())

	tcases := []struct {
		name  string
		token string
		want  error
	}{
		{"expired", expired.AccessToken, apperrors.ErrTokenExpired},
		{"wrong secret", foreign.AccessToken, apperrors.ErrTokenInvalid},
		{"alg none", unsigned, apperrors.ErrTokenInvalid},
		{"garbage", "not.a.jwt", apperrors.ErrTokenInvalid},
		{"empty", "", apperrors.ErrTokenInvalid},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.ValidateToken(tc.token)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	tcases := []struct {
		header string
		token  string
		err    error
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"bearer abc", "abc", nil},
		{"", "", apperrors.ErrTokenNotFound},
		{"Basic dXNlcg==", "", apperrors.ErrTokenInvalid},
		{"Bearer ", "", apperrors.ErrTokenInvalid},
		{"abc.def.ghi", "", apperrors.ErrTokenInvalid},
	}

	for _, tc := range tcases {
		t.Run(tc.header, func(t *testing.T) {
			token, err := ExtractBearerToken(tc.header)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.token, token)
		})
	}
}
