package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/repositories/mocks"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/webex"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func TestWebexConnect(t *testing.T) {
	tcases := []struct {
		name     string
		code     string
		grant    *webex.TokenGrant
		grantErr error
		wantKind error
		wantSave *models.WebexTokens
	}{
		{
			name:     "empty code",
			code:     "  ",
			wantKind: apperrors.ErrBadRequest,
		},
		{
			name:     "exchange rejected",
			code:     "bad",
			grantErr: &webex.APIError{StatusCode: 400, Message: "invalid_grant"},
			wantKind: apperrors.ErrExternalService,
		},
		{
			name:  "stores tokens with expiry",
			code:  "good",
			grant: &webex.TokenGrant{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 3600},
			wantSave: &models.WebexTokens{
				AccessToken:  "at",
				RefreshToken: strPtr("rt"),
				ExpiresAt:    func() *time.Time { t := fixedNow.Add(time.Hour); return &t }(),
			},
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			accounts := &mocks.MockAccountRepository{}
			gateway := &MockGateway{}
			svc := NewWebexService(accounts, gateway, zerolog.Nop()).(*webexServiceImpl)
			svc.now = func() time.Time { return fixedNow }

			if tc.grant != nil || tc.grantErr != nil {
				gateway.On("ExchangeCode", tc.code).Return(tc.grant, tc.grantErr).Once()
			}
			if tc.wantSave != nil {
				accounts.On("UpdateWebexTokens", int64(1), *tc.wantSave).Return(nil).Once()
			}

			err := svc.Connect(context.Background(), 1, tc.code)
			if tc.wantKind != nil {
				assert.ErrorIs(t, err, tc.wantKind)
			} else {
				assert.NoError(t, err)
			}
			accounts.AssertExpectations(t)
			gateway.AssertExpectations(t)
		})
	}
}

func TestWebexStatusAndDisconnect(t *testing.T) {
	accounts := &mocks.MockAccountRepository{}
	svc := NewWebexService(accounts, &MockGateway{}, zerolog.Nop())

	accounts.On("GetByID", int64(1)).Return(&models.Account{ID: 1, WebexAccessToken: strPtr("at")}, nil).Once()
	accounts.On("GetByID", int64(2)).Return(&models.Account{ID: 2}, nil).Once()
	accounts.On("ClearWebexTokens", int64(1)).Return(nil).Once()

	st, err := svc.Status(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, st.Connected)

	st, err = svc.Status(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, st.Connected)

	require.NoError(t, svc.Disconnect(context.Background(), 1))
	accounts.AssertExpectations(t)
}

func TestWebexTokenGuard(t *testing.T) {
	past := fixedNow.Add(-time.Minute)
	future := fixedNow.Add(time.Hour)

	tcases := []struct {
		name       string
		account    *models.Account
		refresh    *webex.TokenGrant
		refreshErr error
		wantToken  string
		wantKind   error
		wantSave   *models.WebexTokens
	}{
		{
			name:     "not connected",
			account:  &models.Account{ID: 1},
			wantKind: apperrors.ErrPermissionDenied,
		},
		{
			name:      "valid token",
			account:   &models.Account{ID: 1, WebexAccessToken: strPtr("at"), WebexTokenExpiresAt: &future},
			wantToken: "at",
		},
		{
			name:      "no expiry recorded",
			account:   &models.Account{ID: 1, WebexAccessToken: strPtr("at")},
			wantToken: "at",
		},
		{
			name:     "expired without refresh token",
			account:  &models.Account{ID: 1, WebexAccessToken: strPtr("at"), WebexTokenExpiresAt: &past},
			wantKind: apperrors.ErrPermissionDenied,
		},
		{
			name:       "refresh rejected",
			account:    &models.Account{ID: 1, WebexAccessToken: strPtr("at"), WebexRefreshToken: strPtr("rt"), WebexTokenExpiresAt: &past},
			refreshErr: errors.New("invalid_grant"),
			wantKind:   apperrors.ErrPermissionDenied,
		},
		{
			name:      "refreshed keeping old refresh token",
			account:   &models.Account{ID: 1, WebexAccessToken: strPtr("at"), WebexRefreshToken: strPtr("rt"), WebexTokenExpiresAt: &past},
			refresh:   &webex.TokenGrant{AccessToken: "at2", ExpiresIn: 60},
			wantToken: "at2",
			wantSave: &models.WebexTokens{
				AccessToken: "at2",
				ExpiresAt:   func() *time.Time { t := fixedNow.Add(time.Minute); return &t }(),
			},
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			accounts := &mocks.MockAccountRepository{}
			gateway := &MockGateway{}
			guard := &webexTokenGuard{
				accountRepo: accounts,
				gateway:     gateway,
				now:         func() time.Time { return fixedNow },
				logger:      zerolog.Nop(),
			}

			accounts.On("GetByID", int64(1)).Return(tc.account, nil).Once()
			if tc.refresh != nil || tc.refreshErr != nil {
				gateway.On("RefreshToken", "rt").Return(tc.refresh, tc.refreshErr).Once()
			}
			if tc.wantSave != nil {
				accounts.On("UpdateWebexTokens", int64(1), *tc.wantSave).Return(nil).Once()
			}

			token, err := guard.accessToken(context.Background(), 1)
			if tc.wantKind != nil {
				assert.ErrorIs(t, err, tc.wantKind)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantToken, token)
			}
			accounts.AssertExpectations(t)
			gateway.AssertExpectations(t)
		})
	}
}

func TestTokensFromGrant(t *testing.T) {
	tcases := []struct {
		name        string
		grant       webex.TokenGrant
		wantRefresh *string
		wantExpiry  *time.Time
	}{
		{
			name:  "access token only",
			grant: webex.TokenGrant{AccessToken: "at"},
		},
		{
			name:        "zero expires_in keeps stored expiry",
			grant:       webex.TokenGrant{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 0},
			wantRefresh: func() *string { s := "rt"; return &s }(),
		},
		{
			name:       "expiry from expires_in",
			grant:      webex.TokenGrant{AccessToken: "at", ExpiresIn: 3600},
			wantExpiry: func() *time.Time { e := fixedNow.Add(time.Hour); return &e }(),
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			tokens := tokensFromGrant(&tc.grant, fixedNow)
			assert.Equal(t, "at", tokens.AccessToken)
			assert.Equal(t, tc.wantRefresh, tokens.RefreshToken)
			assert.Equal(t, tc.wantExpiry, tokens.ExpiresAt)
		})
	}
}
