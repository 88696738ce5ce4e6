package services

import (
	"context"
	"strings"
	"time"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/repositories"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/webex"
	"github.com/rs/zerolog"
)

// ConferencingGateway is the external meeting provider
type ConferencingGateway interface {
	AuthURL() string
	ExchangeCode(ctx context.Context, code string) (*webex.TokenGrant, error)
	RefreshToken(ctx context.Context, refreshToken string) (*webex.TokenGrant, error)
	CreateMeeting(ctx context.Context, accessToken, title string, start, end time.Time) (*webex.Meeting, error)
	UpdateMeeting(ctx context.Context, accessToken, meetingID, title string, start, end time.Time) error
	DeleteMeeting(ctx context.Context, accessToken, meetingID string) error
}

var _ ConferencingGateway = (*webex.Client)(nil)

// WebexService defines connecting an account to Webex
type WebexService interface {
	AuthURL() *dto.WebexAuthURLResponse
	Connect(ctx context.Context, accountID int64, code string) error
	Status(ctx context.Context, accountID int64) (*dto.WebexStatusResponse, error)
	Disconnect(ctx context.Context, accountID int64) error
}

type webexServiceImpl struct {
	accountRepo repositories.IAccountRepository
	gateway     ConferencingGateway
	now         func() time.Time
	logger      zerolog.Logger
}

// NewWebexService creates a new WebexService
func NewWebexService(accountRepo repositories.IAccountRepository, gateway ConferencingGateway, logger zerolog.Logger) WebexService {
	return &webexServiceImpl{
		accountRepo: accountRepo,
		gateway:     gateway,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *webexServiceImpl) AuthURL() *dto.WebexAuthURLResponse {
	return &dto.WebexAuthURLResponse{URL: s.gateway.AuthURL()}
}

// Connect exchanges an authorization code and stores the tokens
func (s *webexServiceImpl) Connect(ctx context.Context, accountID int64, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return apperrors.NewBadRequestError("authorization code is required")
	}

	grant, err := s.gateway.ExchangeCode(ctx, code)
	if err != nil {
		s.logger.Warn().Err(err).Int64("accountID", accountID).Msg("Webex code exchange failed")
		return apperrors.NewExternalServiceError("failed to connect Webex", err)
	}

	if err := s.accountRepo.UpdateWebexTokens(ctx, accountID, tokensFromGrant(grant, s.now())); err != nil {
		return err
	}
	s.logger.Info().Int64("accountID", accountID).Msg("Webex connected")
	return nil
}

func (s *webexServiceImpl) Status(ctx context.Context, accountID int64) (*dto.WebexStatusResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &dto.WebexStatusResponse{Connected: account.HasWebexToken()}, nil
}

func (s *webexServiceImpl) Disconnect(ctx context.Context, accountID int64) error {
	if err := s.accountRepo.ClearWebexTokens(ctx, accountID); err != nil {
		return err
	}
	s.logger.Info().Int64("accountID", accountID).Msg("Webex disconnected")
	return nil
}

// tokensFromGrant converts a gateway grant into stored tokens. An empty
// refresh token or a missing expires_in leaves the stored value in place.
func tokensFromGrant(grant *webex.TokenGrant, now time.Time) models.WebexTokens {
	tokens := models.WebexTokens{AccessToken: grant.AccessToken}
	if grant.RefreshToken != "" {
		rt := grant.RefreshToken
		tokens.RefreshToken = &rt
	}
	if grant.ExpiresIn > 0 {
		expiresAt := now.Add(time.Duration(grant.ExpiresIn) * time.Second)
		tokens.ExpiresAt = &expiresAt
	}
	return tokens
}

// webexTokenGuard hands out a usable access token for an account,
// refreshing it first when it has expired
type webexTokenGuard struct {
	accountRepo repositories.IAccountRepository
	gateway     ConferencingGateway
	now         func() time.Time
	logger      zerolog.Logger
}

func (g *webexTokenGuard) accessToken(ctx context.Context, accountID int64) (string, error) {
	account, err := g.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return "", err
	}
	if !account.HasWebexToken() {
		return "", apperrors.NewForbiddenError("Webex is not connected for this account")
	}
	if !account.WebexTokenExpired(g.now()) {
		return *account.WebexAccessToken, nil
	}

	if account.WebexRefreshToken == nil || *account.WebexRefreshToken == "" {
		return "", apperrors.NewForbiddenError("Webex session expired, reconnect Webex")
	}

	grant, err := g.gateway.RefreshToken(ctx, *account.WebexRefreshToken)
	if err != nil {
		g.logger.Warn().Err(err).Int64("accountID", accountID).Msg("Webex token refresh failed")
		return "", apperrors.NewForbiddenError("Webex session expired, reconnect Webex")
	}

	if err := g.accountRepo.UpdateWebexTokens(ctx, accountID, tokensFromGrant(grant, g.now())); err != nil {
		return "", err
	}
	g.logger.Debug().Int64("accountID", accountID).Msg("Webex token refreshed")
	return grant.AccessToken, nil
}
