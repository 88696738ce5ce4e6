package domain

import (
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
)

// FriendRequestResolution is what submitting a friend request should do
type FriendRequestResolution int

const (
	// CreatePendingRequest stores a new pending request for the target
	CreatePendingRequest FriendRequestResolution = iota + 1
	// AcceptReverseRequest accepts the target's own pending request instead
	AcceptReverseRequest
)

// FriendGraphState is the slice of the social graph relevant to one request
type FriendGraphState struct {
	SenderProfileID   int64
	TargetProfileID   int64
	AlreadyFriends    bool
	OutgoingPending   bool
	IncomingPendingID *int64
}

// ResolveFriendRequest decides how a request from sender to target resolves.
// A pending request in the opposite direction means both sides want the
// friendship, so it is accepted rather than duplicated.
func ResolveFriendRequest(state FriendGraphState) (FriendRequestResolution, error) {
	switch {
	case state.SenderProfileID == state.TargetProfileID:
		return 0, apperrors.NewBadRequestError("cannot send a friend request to yourself")
	case state.AlreadyFriends:
		return 0, apperrors.NewConflictError("already friends")
	case state.OutgoingPending:
		return 0, apperrors.NewConflictError("friend request already sent")
	case state.IncomingPendingID != nil:
		return AcceptReverseRequest, nil
	default:
		return CreatePendingRequest, nil
	}
}

// CanRespondToFriendRequest checks that a request is pending and addressed
// to one of the caller's profiles.
func CanRespondToFriendRequest(status models.FriendRequestStatus, receiverOwned bool) error {
	if !receiverOwned {
		return apperrors.NewForbiddenError("this friend request is not addressed to you")
	}
	if status != models.FriendRequestPending {
		return apperrors.NewConflictError("friend request is already " + string(status))
	}
	return nil
}
