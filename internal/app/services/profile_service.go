package services

import (
	"context"
	"strings"

	authz "github.com/HarinChan/MirrorMirrorEngine/internal/app/auth"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/repositories"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// ProfileService defines classroom profile operations
type ProfileService interface {
	CreateProfile(ctx context.Context, accountID int64, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error)
	ListProfiles(ctx context.Context, accountID int64) ([]dto.ProfileResponse, error)
	GetProfile(ctx context.Context, id int64) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, accountID, id int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	DeleteProfile(ctx context.Context, accountID, id int64) error
}

type profileServiceImpl struct {
	profileRepo  repositories.IProfileRepository
	authzService *authz.AuthorizationService
	logger       zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repositories.IProfileRepository, authzService *authz.AuthorizationService, logger zerolog.Logger) ProfileService {
	return &profileServiceImpl{
		profileRepo:  profileRepo,
		authzService: authzService,
		logger:       logger,
	}
}

func (s *profileServiceImpl) CreateProfile(ctx context.Context, accountID int64, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("name is required")
	}

	profile := &models.Profile{
		AccountID:    accountID,
		Name:         name,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		ClassSize:    req.ClassSize,
		Interests:    req.Interests,
		Availability: req.Availability,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("accountID", accountID).Int64("profileID", profile.ID).Msg("Classroom created")
	resp := toProfileResponse(profile)
	return &resp, nil
}

func (s *profileServiceImpl) ListProfiles(ctx context.Context, accountID int64) ([]dto.ProfileResponse, error) {
	profiles, err := s.profileRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toProfileResponse(p))
	}
	return out, nil
}

func (s *profileServiceImpl) GetProfile(ctx context.Context, id int64) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProfileResponse(profile)
	return &resp, nil
}

func (s *profileServiceImpl) UpdateProfile(ctx context.Context, accountID, id int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if _, err := s.authzService.OwnedProfile(ctx, accountID, id); err != nil {
		return nil, err
	}

	upd := models.ProfileUpdate{
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		ClassSize:    req.ClassSize,
		Interests:    req.Interests,
		Availability: req.Availability,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewBadRequestError("name must not be blank")
		}
		upd.Name = &name
	}

	profile, err := s.profileRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	resp := toProfileResponse(profile)
	return &resp, nil
}

func (s *profileServiceImpl) DeleteProfile(ctx context.Context, accountID, id int64) error {
	if _, err := s.authzService.OwnedProfile(ctx, accountID, id); err != nil {
		return err
	}
	if err := s.profileRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("accountID", accountID).Int64("profileID", id).Msg("Classroom deleted")
	return nil
}
