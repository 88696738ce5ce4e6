package services

import (
	"context"
	"time"

	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/webex"
	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) AuthURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockGateway) ExchangeCode(ctx context.Context, code string) (*webex.TokenGrant, error) {
	args := m.Called(code)
	if g, ok := args.Get(0).(*webex.TokenGrant); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) RefreshToken(ctx context.Context, refreshToken string) (*webex.TokenGrant, error) {
	args := m.Called(refreshToken)
	if g, ok := args.Get(0).(*webex.TokenGrant); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) CreateMeeting(ctx context.Context, accessToken, title string, start, end time.Time) (*webex.Meeting, error) {
	args := m.Called(accessToken, title, start, end)
	if mt, ok := args.Get(0).(*webex.Meeting); ok {
		return mt, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) UpdateMeeting(ctx context.Context, accessToken, meetingID, title string, start, end time.Time) error {
	args := m.Called(accessToken, meetingID, title, start, end)
	return args.Error(0)
}

func (m *MockGateway) DeleteMeeting(ctx context.Context, accessToken, meetingID string) error {
	args := m.Called(accessToken, meetingID)
	return args.Error(0)
}
