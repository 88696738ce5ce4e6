// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/stretchr/testify/mock"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) error {
	args := m.Called(account)
	return args.Error(0)
}
func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(id)
	if a, ok := args.Get(0).(*models.Account); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(email)
	if a, ok := args.Get(0).(*models.Account); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockAccountRepository) UpdateWebexTokens(ctx context.Context, accountID int64, tokens models.WebexTokens) error {
	args := m.Called(accountID, tokens)
	return args.Error(0)
}
func (m *MockAccountRepository) ClearWebexTokens(ctx context.Context, accountID int64) error {
	args := m.Called(accountID)
	return args.Error(0)
}

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) CreateToken(ctx context.Context, token string, accountID int64, expiryDate time.Time) error {
	args := m.Called(token, accountID, expiryDate)
	return args.Error(0)
}
func (m *MockTokenRepository) GetTokenByValue(ctx context.Context, token string) (int64, error) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockTokenRepository) RevokeToken(ctx context.Context, token string) error {
	args := m.Called(token)
	return args.Error(0)
}
func (m *MockTokenRepository) RevokeAllAccountTokens(ctx context.Context, accountID int64) error {
	args := m.Called(accountID)
	return args.Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}
func (m *MockProfileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	args := m.Called(id)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockProfileRepository) ListByAccount(ctx context.Context, accountID int64) ([]*models.Profile, error) {
	args := m.Called(accountID)
	if p, ok := args.Get(0).([]*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockProfileRepository) FirstByAccount(ctx context.Context, accountID int64) (*models.Profile, error) {
	args := m.Called(accountID)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockProfileRepository) Update(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.Profile, error) {
	args := m.Called(id, upd)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockProfileRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockFriendRepository struct {
	mock.Mock
}

func (m *MockFriendRepository) AreFriends(ctx context.Context, a, b int64) (bool, error) {
	args := m.Called(a, b)
	return args.Bool(0), args.Error(1)
}
func (m *MockFriendRepository) PendingRequestID(ctx context.Context, senderID, receiverID int64) (*int64, error) {
	args := m.Called(senderID, receiverID)
	if id, ok := args.Get(0).(*int64); ok {
		return id, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockFriendRepository) GetRequestByID(ctx context.Context, id int64) (*models.FriendRequest, error) {
	args := m.Called(id)
	if fr, ok := args.Get(0).(*models.FriendRequest); ok {
		return fr, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockFriendRepository) CreatePendingRequest(ctx context.Context, senderID, receiverID int64, notice *models.Notification) (*models.FriendRequest, error) {
	args := m.Called(senderID, receiverID, notice)
	if fr, ok := args.Get(0).(*models.FriendRequest); ok {
		return fr, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockFriendRepository) AcceptRequest(ctx context.Context, requestID int64, notice *models.Notification) error {
	args := m.Called(requestID, notice)
	return args.Error(0)
}
func (m *MockFriendRepository) RejectRequest(ctx context.Context, requestID int64) error {
	args := m.Called(requestID)
	return args.Error(0)
}
func (m *MockFriendRepository) ListFriends(ctx context.Context, profileID int64) ([]*models.Friend, error) {
	args := m.Called(profileID)
	if f, ok := args.Get(0).([]*models.Friend); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockFriendRepository) ListPendingReceived(ctx context.Context, profileID int64) ([]*models.FriendRequest, error) {
	args := m.Called(profileID)
	if fr, ok := args.Get(0).([]*models.FriendRequest); ok {
		return fr, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockFriendRepository) DeleteFriendship(ctx context.Context, a, b int64) error {
	args := m.Called(a, b)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) ListByAccount(ctx context.Context, accountID int64) ([]*models.Notification, error) {
	args := m.Called(accountID)
	if n, ok := args.Get(0).([]*models.Notification); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, accountID int64) error {
	args := m.Called(id, accountID)
	return args.Error(0)
}
func (m *MockNotificationRepository) Delete(ctx context.Context, id, accountID int64) error {
	args := m.Called(id, accountID)
	return args.Error(0)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) List(ctx context.Context, viewerID *int64) ([]*models.Post, error) {
	args := m.Called(viewerID)
	if p, ok := args.Get(0).([]*models.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockPostRepository) GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Post, error) {
	args := m.Called(id, viewerID)
	if p, ok := args.Get(0).(*models.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}
func (m *MockPostRepository) SetLike(ctx context.Context, postID, accountID int64, want bool) (int, error) {
	args := m.Called(postID, accountID, want)
	return args.Int(0), args.Error(1)
}
func (m *MockPostRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) CreateInvitation(ctx context.Context, inv *models.MeetingInvitation, notice *models.Notification) error {
	args := m.Called(inv, notice)
	return args.Error(0)
}
func (m *MockMeetingRepository) GetInvitation(ctx context.Context, id int64) (*models.MeetingInvitation, error) {
	args := m.Called(id)
	if inv, ok := args.Get(0).(*models.MeetingInvitation); ok {
		return inv, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockMeetingRepository) ListPendingReceived(ctx context.Context, accountID int64) ([]*models.MeetingInvitation, error) {
	args := m.Called(accountID)
	if inv, ok := args.Get(0).([]*models.MeetingInvitation); ok {
		return inv, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockMeetingRepository) ListPendingSent(ctx context.Context, accountID int64) ([]*models.MeetingInvitation, error) {
	args := m.Called(accountID)
	if inv, ok := args.Get(0).([]*models.MeetingInvitation); ok {
		return inv, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockMeetingRepository) UpdateInvitationStatus(ctx context.Context, id int64, status models.InvitationStatus, notice *models.Notification) error {
	args := m.Called(id, status, notice)
	return args.Error(0)
}
func (m *MockMeetingRepository) AcceptInvitation(ctx context.Context, inv *models.MeetingInvitation, meeting *models.Meeting, notice *models.Notification) error {
	args := m.Called(inv, meeting, notice)
	return args.Error(0)
}
func (m *MockMeetingRepository) GetMeeting(ctx context.Context, id int64) (*models.Meeting, error) {
	args := m.Called(id)
	if mt, ok := args.Get(0).(*models.Meeting); ok {
		return mt, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockMeetingRepository) IsParticipant(ctx context.Context, meetingID, accountID int64) (bool, error) {
	args := m.Called(meetingID, accountID)
	return args.Bool(0), args.Error(1)
}
func (m *MockMeetingRepository) UpdateMeetingTimes(ctx context.Context, id int64, start, end time.Time) error {
	args := m.Called(id, start, end)
	return args.Error(0)
}
func (m *MockMeetingRepository) DeleteMeeting(ctx context.Context, id int64) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *MockMeetingRepository) ListUpcoming(ctx context.Context, accountID int64, from time.Time) ([]*models.Meeting, error) {
	args := m.Called(accountID, from)
	if mt, ok := args.Get(0).([]*models.Meeting); ok {
		return mt, args.Error(1)
	}
	return nil, args.Error(1)
}
