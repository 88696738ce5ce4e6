package services

import (
	"context"
	"testing"
	"time"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/repositories/mocks"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	svc           AuthService
	jwt           *auth.JWTService
	accounts      *mocks.MockAccountRepository
	tokens        *mocks.MockTokenRepository
	profiles      *mocks.MockProfileRepository
	friends       *mocks.MockFriendRepository
	notifications *mocks.MockNotificationRepository
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		jwt: auth.NewJWTService(auth.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenExp:  time.Hour,
			RefreshTokenExp: 24 * time.Hour,
			TokenIssuer:     "test",
		}),
		accounts:      &mocks.MockAccountRepository{},
		tokens:        &mocks.MockTokenRepository{},
		profiles:      &mocks.MockProfileRepository{},
		friends:       &mocks.MockFriendRepository{},
		notifications: &mocks.MockNotificationRepository{},
	}
	f.svc = NewAuthService(f.accounts, f.tokens, f.profiles, f.friends, f.notifications, f.jwt, zerolog.Nop())
	return f
}

func TestRegister(t *testing.T) {
	tcases := []struct {
		name     string
		req      dto.RegisterRequest
		repoErr  error
		wantKind error
	}{
		{
			name: "creates account with normalized email",
			req:  dto.RegisterRequest{Email: " Teacher@School.EDU ", Password: "Str0ng!pass"},
		},
		{
			name:     "weak password",
			req:      dto.RegisterRequest{Email: "t@school.edu", Password: "weakpass"},
			wantKind: apperrors.ErrWeakPassword,
		},
		{
			name:     "missing email",
			req:      dto.RegisterRequest{Password: "Str0ng!pass"},
			wantKind: apperrors.ErrBadRequest,
		},
		{
			name:     "duplicate email",
			req:      dto.RegisterRequest{Email: "t@school.edu", Password: "Str0ng!pass"},
			repoErr:  apperrors.ErrEmailAlreadyExists,
			wantKind: apperrors.ErrEmailAlreadyExists,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAuthFixture()
			if tc.wantKind == nil || tc.repoErr != nil {
				f.accounts.On("Create", mock.MatchedBy(func(a *models.Account) bool {
					return a.Email == "teacher@school.edu" || a.Email == "t@school.edu"
				})).Run(func(args mock.Arguments) {
					a := args.Get(0).(*models.Account)
					assert.True(t, auth.CheckPassword(a.PasswordHash, tc.req.Password))
					a.ID = 3
				}).Return(tc.repoErr).Once()
			}

			resp, err := f.svc.Register(context.Background(), &tc.req)
			if tc.wantKind != nil {
				assert.ErrorIs(t, err, tc.wantKind)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(3), resp.AccountID)
			}
			f.accounts.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("Str0ng!pass")
	require.NoError(t, err)
	account := &models.Account{ID: 3, Email: "t@school.edu", PasswordHash: hash}

	t.Run("issues token pair", func(t *testing.T) {
		f := newAuthFixture()
		f.accounts.On("GetByEmail", "t@school.edu").Return(account, nil).Once()
		f.tokens.On("CreateToken", mock.AnythingOfType("string"), int64(3), mock.AnythingOfType("time.Time")).Return(nil).Once()

		resp, err := f.svc.Login(context.Background(), &dto.LoginRequest{Email: "T@school.edu", Password: "Str0ng!pass"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, int64(3), resp.AccountID)
		assert.NotEmpty(t, resp.RefreshToken)

		claims, err := f.jwt.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(3), claims.AccountID)
		f.tokens.AssertExpectations(t)
	})

	tcases := []struct {
		name     string
		found    *models.Account
		findErr  error
		password string
	}{
		{name: "unknown email", findErr: apperrors.NewResourceNotFoundError("account not found"), password: "Str0ng!pass"},
		{name: "wrong password", found: account, password: "Wr0ng!pass"},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAuthFixture()
			f.accounts.On("GetByEmail", "t@school.edu").Return(tc.found, tc.findErr).Once()

			_, err := f.svc.Login(context.Background(), &dto.LoginRequest{Email: "t@school.edu", Password: tc.password})
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
			f.tokens.AssertNotCalled(t, "CreateToken", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRefreshTokenRotates(t *testing.T) {
	f := newAuthFixture()
	f.tokens.On("GetTokenByValue", "old").Return(int64(3), nil).Once()
	f.accounts.On("GetByID", int64(3)).Return(&models.Account{ID: 3, Email: "t@school.edu"}, nil).Once()
	f.tokens.On("RevokeToken", "old").Return(nil).Once()
	f.tokens.On("CreateToken", mock.AnythingOfType("string"), int64(3), mock.AnythingOfType("time.Time")).Return(nil).Once()

	resp, err := f.svc.RefreshToken(context.Background(), "old")
	require.NoError(t, err)
	assert.NotEqual(t, "old", resp.RefreshToken)
	f.tokens.AssertExpectations(t)

	f.tokens.On("GetTokenByValue", "revoked").Return(int64(0), apperrors.ErrTokenRevoked).Once()
	_, err = f.svc.RefreshToken(context.Background(), "revoked")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestLogout(t *testing.T) {
	tcases := []struct {
		name       string
		allDevices bool
		setup      func(f *authFixture)
		wantErr    error
	}{
		{
			name: "single session",
			setup: func(f *authFixture) {
				f.tokens.On("RevokeToken", "tok").Return(nil).Once()
			},
		},
		{
			name: "single session already revoked",
			setup: func(f *authFixture) {
				f.tokens.On("RevokeToken", "tok").Return(apperrors.ErrTokenRevoked).Once()
			},
			wantErr: apperrors.ErrTokenRevoked,
		},
		{
			name:       "all devices",
			allDevices: true,
			setup: func(f *authFixture) {
				f.tokens.On("GetTokenByValue", "tok").Return(int64(3), nil).Once()
				f.tokens.On("RevokeAllAccountTokens", int64(3)).Return(nil).Once()
			},
		},
		{
			name:       "all devices with dead token",
			allDevices: true,
			setup: func(f *authFixture) {
				f.tokens.On("GetTokenByValue", "tok").Return(int64(0), apperrors.ErrTokenExpired).Once()
			},
			wantErr: apperrors.ErrTokenExpired,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAuthFixture()
			tc.setup(f)

			err := f.svc.Logout(context.Background(), "tok", tc.allDevices)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				f.tokens.AssertNotCalled(t, "RevokeAllAccountTokens", mock.Anything)
			} else {
				require.NoError(t, err)
			}
			f.tokens.AssertExpectations(t)
		})
	}
}

func TestMe(t *testing.T) {
	f := newAuthFixture()
	created := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

	f.accounts.On("GetByID", int64(3)).Return(&models.Account{ID: 3, Email: "t@school.edu"}, nil).Once()
	f.notifications.On("ListByAccount", int64(3)).Return([]*models.Notification{
		{ID: 11, Title: "New Friend Request", Type: models.NotificationFriendRequestReceived, CreatedAt: created},
	}, nil).Once()
	f.profiles.On("ListByAccount", int64(3)).Return([]*models.Profile{{ID: 10, AccountID: 3, Name: "Room 10"}}, nil).Once()
	f.friends.On("ListFriends", int64(10)).Return([]*models.Friend{{RelationID: 4, ProfileID: 20, Name: "Room 20", Since: created}}, nil).Once()
	f.friends.On("ListPendingReceived", int64(10)).Return([]*models.FriendRequest{}, nil).Once()

	resp, err := f.svc.Me(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "t@school.edu", resp.Account.Email)
	assert.NotNil(t, resp.Account.RecentCalls)
	assert.Empty(t, resp.Account.RecentCalls)
	require.Len(t, resp.Account.Notifications, 1)
	assert.Equal(t, "11", resp.Account.Notifications[0].ID)
	require.Len(t, resp.Classrooms, 1)
	require.Len(t, resp.Classrooms[0].Friends, 1)
	assert.Equal(t, "Room 20", resp.Classrooms[0].Friends[0].ClassroomName)
	assert.NotNil(t, resp.Classrooms[0].ReceivedFriendRequests)
	assert.Empty(t, resp.Classrooms[0].ReceivedFriendRequests)
	assert.NotNil(t, resp.Classrooms[0].RecentCalls)
	assert.Empty(t, resp.Classrooms[0].RecentCalls)
}
