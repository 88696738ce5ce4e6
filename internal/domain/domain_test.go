package domain

import (
	"testing"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionInvitation(t *testing.T) {
	events := []InvitationEvent{InvitationAccept, InvitationDecline, InvitationCancel}

	t.Run("pending moves to the event target", func(t *testing.T) {
		want := map[InvitationEvent]models.InvitationStatus{
			InvitationAccept:  models.InvitationAccepted,
			InvitationDecline: models.InvitationDeclined,
			InvitationCancel:  models.InvitationCancelled,
		}
		for _, ev := range events {
			next, err := TransitionInvitation(models.InvitationPending, ev)
			require.NoError(t, err)
			assert.Equal(t, want[ev], next)
		}
	})

	t.Run("terminal states reject every event", func(t *testing.T) {
		terminal := []models.InvitationStatus{models.InvitationAccepted, models.InvitationDeclined, models.InvitationCancelled}
		for _, status := range terminal {
			for _, ev := range events {
				next, err := TransitionInvitation(status, ev)
				assert.ErrorIs(t, err, apperrors.ErrConflict)
				assert.Contains(t, err.Error(), string(status))
				assert.Equal(t, status, next)
			}
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := TransitionInvitation(models.InvitationPending, InvitationEvent("postpone"))
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}

func TestAuthorizeInvitationEvent(t *testing.T) {
	tcases := []struct {
		role    InvitationRole
		event   InvitationEvent
		allowed bool
	}{
		{RoleReceiver, InvitationAccept, true},
		{RoleReceiver, InvitationDecline, true},
		{RoleReceiver, InvitationCancel, false},
		{RoleSender, InvitationAccept, false},
		{RoleSender, InvitationDecline, false},
		{RoleSender, InvitationCancel, true},
		{RoleNone, InvitationAccept, false},
		{RoleNone, InvitationCancel, false},
		{RoleSender | RoleReceiver, InvitationAccept, true},
		{RoleSender | RoleReceiver, InvitationCancel, true},
	}

	for _, tc := range tcases {
		err := AuthorizeInvitationEvent(tc.role, tc.event)
		if tc.allowed {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		}
	}
}

func TestApplyLike(t *testing.T) {
	tcases := []struct {
		name  string
		state LikeState
		want  bool
		out   LikeOutcome
	}{
		{"like new", LikeState{Liked: false, Count: 3}, true, LikeOutcome{Changed: true, Liked: true, Count: 4}},
		{"like again is a no-op", LikeState{Liked: true, Count: 4}, true, LikeOutcome{Changed: false, Liked: true, Count: 4}},
		{"unlike", LikeState{Liked: true, Count: 4}, false, LikeOutcome{Changed: true, Liked: false, Count: 3}},
		{"unlike never liked is a no-op", LikeState{Liked: false, Count: 0}, false, LikeOutcome{Changed: false, Liked: false, Count: 0}},
		{"unlike floors at zero", LikeState{Liked: true, Count: 0}, false, LikeOutcome{Changed: true, Liked: false, Count: 0}},
		{"negative counter is clamped", LikeState{Liked: false, Count: -2}, false, LikeOutcome{Changed: false, Liked: false, Count: 0}},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, ApplyLike(tc.state, tc.want))
		})
	}
}

func TestResolveFriendRequest(t *testing.T) {
	reverse := int64(9)

	tcases := []struct {
		name  string
		state FriendGraphState
		want  FriendRequestResolution
		err   error
	}{
		{"fresh pair", FriendGraphState{SenderProfileID: 1, TargetProfileID: 2}, CreatePendingRequest, nil},
		{"reciprocal request", FriendGraphState{SenderProfileID: 1, TargetProfileID: 2, IncomingPendingID: &reverse}, AcceptReverseRequest, nil},
		{"self", FriendGraphState{SenderProfileID: 1, TargetProfileID: 1}, 0, apperrors.ErrBadRequest},
		{"already friends", FriendGraphState{SenderProfileID: 1, TargetProfileID: 2, AlreadyFriends: true}, 0, apperrors.ErrConflict},
		{"duplicate outgoing", FriendGraphState{SenderProfileID: 1, TargetProfileID: 2, OutgoingPending: true}, 0, apperrors.ErrConflict},
		{"friends wins over reverse request", FriendGraphState{SenderProfileID: 1, TargetProfileID: 2, AlreadyFriends: true, IncomingPendingID: &reverse}, 0, apperrors.ErrConflict},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveFriendRequest(tc.state)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCanRespondToFriendRequest(t *testing.T) {
	assert.NoError(t, CanRespondToFriendRequest(models.FriendRequestPending, true))
	assert.ErrorIs(t, CanRespondToFriendRequest(models.FriendRequestPending, false), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, CanRespondToFriendRequest(models.FriendRequestAccepted, true), apperrors.ErrConflict)
}

func TestNotices(t *testing.T) {
	accepter := &models.Profile{ID: 7, Name: "Room 4"}
	n := FriendRequestAcceptedNotice(3, accepter)
	assert.Equal(t, int64(3), n.AccountID)
	assert.Equal(t, "Friend Request Accepted", n.Title)
	assert.Equal(t, models.NotificationSuccess, n.Type)
	require.NotNil(t, n.RelatedID)
	assert.Equal(t, "7", *n.RelatedID)

	received := FriendRequestReceivedNotice(4, "Room 9")
	assert.Equal(t, models.NotificationFriendRequestReceived, received.Type)
	assert.Nil(t, received.RelatedID)
	SetRelatedID(received, 12)
	assert.Equal(t, "12", *received.RelatedID)

	inv := &models.MeetingInvitation{ID: 5, Title: "Hello", SenderName: "Room 9", ReceiverName: "Room 4"}
	assert.Equal(t, "Meeting Invitation Declined", InvitationOutcomeNotice(1, inv, models.InvitationDeclined).Title)
	assert.Equal(t, "Meeting Invitation Cancelled", InvitationOutcomeNotice(1, inv, models.InvitationCancelled).Title)
}
