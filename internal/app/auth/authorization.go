package auth

import (
	"context"
	"errors"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/repositories"
	"github.com/HarinChan/MirrorMirrorEngine/internal/domain"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/logger"
)

// AuthorizationService answers ownership questions about profiles and meetings
type AuthorizationService struct {
	profileRepo repositories.IProfileRepository
	meetingRepo repositories.IMeetingRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(profileRepo repositories.IProfileRepository, meetingRepo repositories.IMeetingRepository) *AuthorizationService {
	return &AuthorizationService{
		profileRepo: profileRepo,
		meetingRepo: meetingRepo,
	}
}

// OwnedProfile loads a profile and checks that accountID owns it
func (s *AuthorizationService) OwnedProfile(ctx context.Context, accountID, profileID int64) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.AccountID != accountID {
		logger.Warn().Int64("accountID", accountID).Int64("profileID", profileID).Msg("Profile ownership check failed")
		return nil, apperrors.NewForbiddenError("you do not own this classroom")
	}
	return profile, nil
}

// ResolveActingProfile picks the profile an account acts as. An explicit
// profileID must be owned by the account; otherwise the account's first
// profile is used.
func (s *AuthorizationService) ResolveActingProfile(ctx context.Context, accountID int64, profileID *int64) (*models.Profile, error) {
	if profileID != nil {
		return s.OwnedProfile(ctx, accountID, *profileID)
	}

	profile, err := s.profileRepo.FirstByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewBadRequestError("create a classroom first")
		}
		return nil, err
	}
	return profile, nil
}

// InvitationRole returns how accountID relates to inv
func (s *AuthorizationService) InvitationRole(inv *models.MeetingInvitation, accountID int64) domain.InvitationRole {
	role := domain.RoleNone
	if inv.SenderAccountID == accountID {
		role |= domain.RoleSender
	}
	if inv.ReceiverAccountID == accountID {
		role |= domain.RoleReceiver
	}
	return role
}

// CanViewMeeting allows the creator's account and accounts with a participating profile
func (s *AuthorizationService) CanViewMeeting(ctx context.Context, meeting *models.Meeting, accountID int64) error {
	if meeting.CreatorAccountID == accountID {
		return nil
	}

	ok, err := s.meetingRepo.IsParticipant(ctx, meeting.ID, accountID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewForbiddenError("you are not part of this meeting")
	}
	return nil
}

// RequireMeetingCreator allows only the creator's account
func (s *AuthorizationService) RequireMeetingCreator(meeting *models.Meeting, accountID int64) error {
	if meeting.CreatorAccountID != accountID {
		return apperrors.NewForbiddenError("only the meeting creator can change this meeting")
	}
	return nil
}
