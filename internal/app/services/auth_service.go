package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/repositories"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// AuthService defines account registration, login and the session endpoints
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string, allDevices bool) error
	Me(ctx context.Context, accountID int64) (*dto.MeResponse, error)
}

type authServiceImpl struct {
	accountRepo      repositories.IAccountRepository
	tokenRepo        repositories.ITokenRepository
	profileRepo      repositories.IProfileRepository
	friendRepo       repositories.IFriendRepository
	notificationRepo repositories.INotificationRepository
	jwtService       *auth.JWTService
	logger           zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	accountRepo repositories.IAccountRepository,
	tokenRepo repositories.ITokenRepository,
	profileRepo repositories.IProfileRepository,
	friendRepo repositories.IFriendRepository,
	notificationRepo repositories.INotificationRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		accountRepo:      accountRepo,
		tokenRepo:        tokenRepo,
		profileRepo:      profileRepo,
		friendRepo:       friendRepo,
		notificationRepo: notificationRepo,
		jwtService:       jwtService,
		logger:           logger,
	}
}

// Register creates an account
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperrors.NewBadRequestError("email and password are required")
	}
	if !auth.IsStrongPassword(req.Password) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrWeakPassword,
			Message: "password must be at least 8 characters and contain upper case, lower case, digit and special characters",
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Email:        email,
		PasswordHash: hash,
		Organization: req.Organization,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, &apperrors.CustomError{Err: apperrors.ErrEmailAlreadyExists, Message: "an account with this email already exists"}
		}
		return nil, err
	}

	s.logger.Info().Int64("accountID", account.ID).Msg("Account registered")
	return &dto.RegisterResponse{AccountID: account.ID}, nil
}

// Login verifies credentials and issues a token pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		s.logger.Warn().Int64("accountID", account.ID).Msg("Login failed: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, account)
}

// RefreshToken rotates a refresh token into a new pair
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	accountID, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, err
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, account)
}

// Logout revokes a refresh token. allDevices revokes every live token of
// the owning account; the presented token must itself still be live.
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string, allDevices bool) error {
	if !allDevices {
		return s.tokenRepo.RevokeToken(ctx, refreshToken)
	}

	accountID, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return err
	}
	if err := s.tokenRepo.RevokeAllAccountTokens(ctx, accountID); err != nil {
		return err
	}
	s.logger.Info().Int64("accountID", accountID).Msg("All sessions revoked")
	return nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, account *models.Account) (*dto.TokenResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(account.ID, account.Email)
	if err != nil {
		s.logger.Error().Err(err).Int64("accountID", account.ID).Msg("Failed to generate token pair")
		return nil, err
	}

	if err := s.tokenRepo.CreateToken(ctx, pair.RefreshToken, account.ID, pair.RefreshExpiresAt); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
		AccountID:    account.ID,
	}, nil
}

// Me assembles the caller's account, notifications and classrooms
func (s *authServiceImpl) Me(ctx context.Context, accountID int64) (*dto.MeResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	notifications, err := s.notificationRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	profiles, err := s.profileRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	classrooms := make([]dto.ClassroomData, 0, len(profiles))
	for _, p := range profiles {
		// Relations exist in both directions, so outgoing ones list each friend once
		friends, err := s.friendRepo.ListFriends(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		requests, err := s.friendRepo.ListPendingReceived(ctx, p.ID)
		if err != nil {
			return nil, err
		}

		classroom := dto.ClassroomData{
			ID:                     p.ID,
			Name:                   p.Name,
			Location:               p.Location,
			Latitude:               p.Latitude,
			Longitude:              p.Longitude,
			ClassSize:              p.ClassSize,
			Interests:              p.Interests,
			Availability:           p.Availability,
			Friends:                make([]dto.FriendData, 0, len(friends)),
			ReceivedFriendRequests: make([]dto.FriendRequestData, 0, len(requests)),
			RecentCalls:            []dto.RecentCallData{},
		}
		for _, f := range friends {
			classroom.Friends = append(classroom.Friends, toFriendData(f))
		}
		for _, fr := range requests {
			classroom.ReceivedFriendRequests = append(classroom.ReceivedFriendRequests, toFriendRequestData(fr))
		}
		classrooms = append(classrooms, classroom)
	}

	return &dto.MeResponse{
		Account: dto.AccountData{
			ID:            account.ID,
			Email:         account.Email,
			Organization:  account.Organization,
			Notifications: toNotificationResponses(notifications),
			RecentCalls:   []dto.RecentCallData{},
		},
		Classrooms: classrooms,
	}, nil
}
