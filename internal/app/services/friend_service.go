package services

import (
	"context"

	authz "github.com/HarinChan/MirrorMirrorEngine/internal/app/auth"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/repositories"
	"github.com/HarinChan/MirrorMirrorEngine/internal/domain"
	"github.com/rs/zerolog"
)

// FriendService defines friend request and friendship operations
type FriendService interface {
	SubmitRequest(ctx context.Context, accountID int64, req *dto.FriendRequestCreate) (*dto.FriendRequestResult, error)
	AcceptRequest(ctx context.Context, accountID, requestID int64) error
	RejectRequest(ctx context.Context, accountID, requestID int64) error
	ListFriends(ctx context.Context, accountID int64, profileID *int64) ([]dto.FriendData, error)
	Unfriend(ctx context.Context, accountID int64, profileID *int64, friendProfileID int64) error
}

type friendServiceImpl struct {
	profileRepo  repositories.IProfileRepository
	friendRepo   repositories.IFriendRepository
	authzService *authz.AuthorizationService
	logger       zerolog.Logger
}

// NewFriendService creates a new FriendService
func NewFriendService(
	profileRepo repositories.IProfileRepository,
	friendRepo repositories.IFriendRepository,
	authzService *authz.AuthorizationService,
	logger zerolog.Logger,
) FriendService {
	return &friendServiceImpl{
		profileRepo:  profileRepo,
		friendRepo:   friendRepo,
		authzService: authzService,
		logger:       logger,
	}
}

// SubmitRequest sends a friend request, or accepts the target's own pending
// request when one exists
func (s *friendServiceImpl) SubmitRequest(ctx context.Context, accountID int64, req *dto.FriendRequestCreate) (*dto.FriendRequestResult, error) {
	sender, err := s.authzService.ResolveActingProfile(ctx, accountID, req.ProfileID)
	if err != nil {
		return nil, err
	}

	target, err := s.profileRepo.GetByID(ctx, req.ClassroomID)
	if err != nil {
		return nil, err
	}

	state := domain.FriendGraphState{
		SenderProfileID: sender.ID,
		TargetProfileID: target.ID,
	}
	if sender.ID != target.ID {
		if state.AlreadyFriends, err = s.friendRepo.AreFriends(ctx, sender.ID, target.ID); err != nil {
			return nil, err
		}
		outgoing, err := s.friendRepo.PendingRequestID(ctx, sender.ID, target.ID)
		if err != nil {
			return nil, err
		}
		state.OutgoingPending = outgoing != nil
		if state.IncomingPendingID, err = s.friendRepo.PendingRequestID(ctx, target.ID, sender.ID); err != nil {
			return nil, err
		}
	}

	resolution, err := domain.ResolveFriendRequest(state)
	if err != nil {
		return nil, err
	}

	switch resolution {
	case domain.AcceptReverseRequest:
		notice := domain.FriendRequestAcceptedNotice(target.AccountID, sender)
		if err := s.friendRepo.AcceptRequest(ctx, *state.IncomingPendingID, notice); err != nil {
			return nil, err
		}
		s.logger.Info().Int64("from", sender.ID).Int64("to", target.ID).Msg("Reciprocal friend request accepted")
		return &dto.FriendRequestResult{Status: string(models.FriendRequestAccepted)}, nil

	default:
		notice := domain.FriendRequestReceivedNotice(target.AccountID, sender.Name)
		fr, err := s.friendRepo.CreatePendingRequest(ctx, sender.ID, target.ID, notice)
		if err != nil {
			return nil, err
		}
		s.logger.Info().Int64("from", sender.ID).Int64("to", target.ID).Int64("requestID", fr.ID).Msg("Friend request sent")
		return &dto.FriendRequestResult{Status: string(models.FriendRequestPending), RequestID: &fr.ID}, nil
	}
}

// AcceptRequest accepts a request addressed to one of the caller's classrooms
func (s *friendServiceImpl) AcceptRequest(ctx context.Context, accountID, requestID int64) error {
	fr, receiver, err := s.loadAddressedRequest(ctx, accountID, requestID)
	if err != nil {
		return err
	}

	sender, err := s.profileRepo.GetByID(ctx, fr.SenderProfileID)
	if err != nil {
		return err
	}

	notice := domain.FriendRequestAcceptedNotice(sender.AccountID, receiver)
	return s.friendRepo.AcceptRequest(ctx, fr.ID, notice)
}

// RejectRequest rejects a request addressed to one of the caller's classrooms
func (s *friendServiceImpl) RejectRequest(ctx context.Context, accountID, requestID int64) error {
	fr, _, err := s.loadAddressedRequest(ctx, accountID, requestID)
	if err != nil {
		return err
	}
	return s.friendRepo.RejectRequest(ctx, fr.ID)
}

func (s *friendServiceImpl) loadAddressedRequest(ctx context.Context, accountID, requestID int64) (*models.FriendRequest, *models.Profile, error) {
	fr, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}

	receiver, err := s.profileRepo.GetByID(ctx, fr.ReceiverProfileID)
	if err != nil {
		return nil, nil, err
	}

	if err := domain.CanRespondToFriendRequest(fr.Status, receiver.AccountID == accountID); err != nil {
		return nil, nil, err
	}
	return fr, receiver, nil
}

// ListFriends lists the acting classroom's friends
func (s *friendServiceImpl) ListFriends(ctx context.Context, accountID int64, profileID *int64) ([]dto.FriendData, error) {
	profile, err := s.authzService.ResolveActingProfile(ctx, accountID, profileID)
	if err != nil {
		return nil, err
	}

	friends, err := s.friendRepo.ListFriends(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.FriendData, 0, len(friends))
	for _, f := range friends {
		out = append(out, toFriendData(f))
	}
	return out, nil
}

// Unfriend removes the friendship between the acting classroom and another
func (s *friendServiceImpl) Unfriend(ctx context.Context, accountID int64, profileID *int64, friendProfileID int64) error {
	profile, err := s.authzService.ResolveActingProfile(ctx, accountID, profileID)
	if err != nil {
		return err
	}
	return s.friendRepo.DeleteFriendship(ctx, profile.ID, friendProfileID)
}
