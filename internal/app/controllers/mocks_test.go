package controllers

import (
	"context"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/stretchr/testify/mock"
)

type MockFriendService struct {
	mock.Mock
}

func (m *MockFriendService) SubmitRequest(ctx context.Context, accountID int64, req *dto.FriendRequestCreate) (*dto.FriendRequestResult, error) {
	args := m.Called(accountID, req)
	if r, ok := args.Get(0).(*dto.FriendRequestResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFriendService) AcceptRequest(ctx context.Context, accountID, requestID int64) error {
	return m.Called(accountID, requestID).Error(0)
}

func (m *MockFriendService) RejectRequest(ctx context.Context, accountID, requestID int64) error {
	return m.Called(accountID, requestID).Error(0)
}

func (m *MockFriendService) ListFriends(ctx context.Context, accountID int64, profileID *int64) ([]dto.FriendData, error) {
	args := m.Called(accountID, profileID)
	if r, ok := args.Get(0).([]dto.FriendData); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFriendService) Unfriend(ctx context.Context, accountID int64, profileID *int64, friendProfileID int64) error {
	return m.Called(accountID, profileID, friendProfileID).Error(0)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) ListPosts(ctx context.Context, viewerID *int64) ([]dto.PostResponse, error) {
	args := m.Called(viewerID)
	if r, ok := args.Get(0).([]dto.PostResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, accountID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	args := m.Called(accountID, req)
	if r, ok := args.Get(0).(*dto.PostResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostService) LikePost(ctx context.Context, accountID, postID int64) (*dto.LikeResponse, error) {
	args := m.Called(accountID, postID)
	if r, ok := args.Get(0).(*dto.LikeResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostService) UnlikePost(ctx context.Context, accountID, postID int64) (*dto.LikeResponse, error) {
	args := m.Called(accountID, postID)
	if r, ok := args.Get(0).(*dto.LikeResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, accountID, postID int64) error {
	return m.Called(accountID, postID).Error(0)
}

type MockMeetingService struct {
	mock.Mock
}

func (m *MockMeetingService) CreateInvitation(ctx context.Context, accountID int64, req *dto.CreateInvitationRequest) (*dto.InvitationCreatedResponse, error) {
	args := m.Called(accountID, req)
	if r, ok := args.Get(0).(*dto.InvitationCreatedResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMeetingService) ListReceivedInvitations(ctx context.Context, accountID int64) (*dto.InvitationListResponse, error) {
	args := m.Called(accountID)
	if r, ok := args.Get(0).(*dto.InvitationListResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMeetingService) ListSentInvitations(ctx context.Context, accountID int64) (*dto.SentInvitationListResponse, error) {
	args := m.Called(accountID)
	if r, ok := args.Get(0).(*dto.SentInvitationListResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMeetingService) AcceptInvitation(ctx context.Context, accountID, invitationID int64) (*dto.AcceptInvitationResponse, error) {
	args := m.Called(accountID, invitationID)
	if r, ok := args.Get(0).(*dto.AcceptInvitationResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMeetingService) DeclineInvitation(ctx context.Context, accountID, invitationID int64) (*dto.InvitationStatusResponse, error) {
	args := m.Called(accountID, invitationID)
	if r, ok := args.Get(0).(*dto.InvitationStatusResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMeetingService) CancelInvitation(ctx context.Context, accountID, invitationID int64) (*dto.InvitationStatusResponse, error) {
	args := m.Called(accountID, invitationID)
	if r, ok := args.Get(0).(*dto.InvitationStatusResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMeetingService) GetMeeting(ctx context.Context, accountID, meetingID int64) (*dto.MeetingResponse, error) {
	args := m.Called(accountID, meetingID)
	if r, ok := args.Get(0).(*dto.MeetingResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMeetingService) UpdateMeeting(ctx context.Context, accountID, meetingID int64, req *dto.UpdateMeetingRequest) (*dto.MeetingResponse, error) {
	args := m.Called(accountID, meetingID, req)
	if r, ok := args.Get(0).(*dto.MeetingResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMeetingService) DeleteMeeting(ctx context.Context, accountID, meetingID int64) error {
	return m.Called(accountID, meetingID).Error(0)
}

func (m *MockMeetingService) ListUpcoming(ctx context.Context, accountID int64) (*dto.MeetingListResponse, error) {
	args := m.Called(accountID)
	if r, ok := args.Get(0).(*dto.MeetingListResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
