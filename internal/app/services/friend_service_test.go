package services

import (
	"context"
	"testing"

	authz "github.com/HarinChan/MirrorMirrorEngine/internal/app/auth"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/repositories/mocks"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFriendFixture() (FriendService, *mocks.MockProfileRepository, *mocks.MockFriendRepository) {
	profiles := &mocks.MockProfileRepository{}
	friends := &mocks.MockFriendRepository{}
	authzService := authz.NewAuthorizationService(profiles, &mocks.MockMeetingRepository{})
	return NewFriendService(profiles, friends, authzService, zerolog.Nop()), profiles, friends
}

func TestSubmitFriendRequest(t *testing.T) {
	sender := &models.Profile{ID: 10, AccountID: 1, Name: "Room 10"}
	target := &models.Profile{ID: 20, AccountID: 2, Name: "Room 20"}
	reverseID := int64(77)

	tcases := []struct {
		name       string
		targetID   int64
		friends    bool
		outgoing   *int64
		incoming   *int64
		wantStatus string
		wantKind   error
	}{
		{name: "creates pending request", targetID: 20, wantStatus: "pending"},
		{name: "accepts reverse request", targetID: 20, incoming: &reverseID, wantStatus: "accepted"},
		{name: "already friends", targetID: 20, friends: true, wantKind: apperrors.ErrConflict},
		{name: "duplicate request", targetID: 20, outgoing: &reverseID, wantKind: apperrors.ErrConflict},
		{name: "self request", targetID: 10, wantKind: apperrors.ErrBadRequest},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			svc, profiles, friends := newFriendFixture()
			profiles.On("FirstByAccount", int64(1)).Return(sender, nil).Once()
			if tc.targetID == target.ID {
				profiles.On("GetByID", int64(20)).Return(target, nil).Once()
				friends.On("AreFriends", int64(10), int64(20)).Return(tc.friends, nil).Once()
				friends.On("PendingRequestID", int64(10), int64(20)).Return(tc.outgoing, nil).Maybe()
				friends.On("PendingRequestID", int64(20), int64(10)).Return(tc.incoming, nil).Maybe()
			} else {
				profiles.On("GetByID", int64(10)).Return(sender, nil).Once()
			}

			switch tc.wantStatus {
			case "pending":
				friends.On("CreatePendingRequest", int64(10), int64(20), mock.MatchedBy(func(n *models.Notification) bool {
					return n.AccountID == 2 && n.Type == models.NotificationFriendRequestReceived
				})).Return(&models.FriendRequest{ID: 5}, nil).Once()
			case "accepted":
				friends.On("AcceptRequest", reverseID, mock.MatchedBy(func(n *models.Notification) bool {
					return n.AccountID == 2
				})).Return(nil).Once()
			}

			res, err := svc.SubmitRequest(context.Background(), 1, &dto.FriendRequestCreate{ClassroomID: tc.targetID})
			if tc.wantKind != nil {
				assert.ErrorIs(t, err, tc.wantKind)
				friends.AssertNotCalled(t, "CreatePendingRequest", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, res.Status)
			friends.AssertExpectations(t)
		})
	}
}

func TestRespondToFriendRequest(t *testing.T) {
	sender := &models.Profile{ID: 10, AccountID: 1, Name: "Room 10"}
	receiver := &models.Profile{ID: 20, AccountID: 2, Name: "Room 20"}

	tcases := []struct {
		name     string
		caller   int64
		status   models.FriendRequestStatus
		accept   bool
		wantKind error
	}{
		{name: "receiver accepts", caller: 2, status: models.FriendRequestPending, accept: true},
		{name: "receiver rejects", caller: 2, status: models.FriendRequestPending},
		{name: "sender cannot accept", caller: 1, status: models.FriendRequestPending, accept: true, wantKind: apperrors.ErrPermissionDenied},
		{name: "already rejected", caller: 2, status: models.FriendRequestRejected, accept: true, wantKind: apperrors.ErrConflict},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			svc, profiles, friends := newFriendFixture()
			friends.On("GetRequestByID", int64(5)).Return(&models.FriendRequest{ID: 5, SenderProfileID: 10, ReceiverProfileID: 20, Status: tc.status}, nil).Once()
			profiles.On("GetByID", int64(20)).Return(receiver, nil).Once()

			var err error
			if tc.accept {
				if tc.wantKind == nil {
					profiles.On("GetByID", int64(10)).Return(sender, nil).Once()
					friends.On("AcceptRequest", int64(5), mock.MatchedBy(func(n *models.Notification) bool {
						return n.AccountID == 1 && *n.RelatedID == "20"
					})).Return(nil).Once()
				}
				err = svc.AcceptRequest(context.Background(), tc.caller, 5)
			} else {
				friends.On("RejectRequest", int64(5)).Return(nil).Once()
				err = svc.RejectRequest(context.Background(), tc.caller, 5)
			}

			if tc.wantKind != nil {
				assert.ErrorIs(t, err, tc.wantKind)
			} else {
				assert.NoError(t, err)
			}
			friends.AssertExpectations(t)
			profiles.AssertExpectations(t)
		})
	}
}

func TestListFriendsAndUnfriend(t *testing.T) {
	svc, profiles, friends := newFriendFixture()
	mine := &models.Profile{ID: 10, AccountID: 1}

	profiles.On("GetByID", int64(10)).Return(mine, nil)
	friends.On("ListFriends", int64(10)).Return([]*models.Friend{{RelationID: 3, ProfileID: 20, Name: "Room 20"}}, nil).Once()
	friends.On("DeleteFriendship", int64(10), int64(20)).Return(nil).Once()

	list, err := svc.ListFriends(context.Background(), 1, int64Ptr(10))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(20), list[0].ClassroomID)
	assert.Equal(t, "accepted", list[0].FriendshipStatus)

	require.NoError(t, svc.Unfriend(context.Background(), 1, int64Ptr(10), 20))

	_, err = svc.ListFriends(context.Background(), 9, int64Ptr(10))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	friends.AssertExpectations(t)
}
