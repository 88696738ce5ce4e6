package auth

import (
	"context"
	"testing"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/repositories/mocks"
	"github.com/HarinChan/MirrorMirrorEngine/internal/domain"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveActingProfile(t *testing.T) {
	own := &models.Profile{ID: 3, AccountID: 1, Name: "Room 3"}
	foreign := &models.Profile{ID: 4, AccountID: 2, Name: "Room 4"}
	first := &models.Profile{ID: 1, AccountID: 1, Name: "Room 1"}

	id := func(v int64) *int64 { return &v }

	tcases := []struct {
		name      string
		profileID *int64
		setup     func(m *mocks.MockProfileRepository)
		want      *models.Profile
		err       error
	}{
		{
			name:      "explicit owned profile",
			profileID: id(3),
			setup:     func(m *mocks.MockProfileRepository) { m.On("GetByID", int64(3)).Return(own, nil) },
			want:      own,
		},
		{
			name:      "explicit foreign profile",
			profileID: id(4),
			setup:     func(m *mocks.MockProfileRepository) { m.On("GetByID", int64(4)).Return(foreign, nil) },
			err:       apperrors.ErrPermissionDenied,
		},
		{
			name:      "explicit unknown profile",
			profileID: id(9),
			setup: func(m *mocks.MockProfileRepository) {
				m.On("GetByID", int64(9)).Return(nil, apperrors.NewResourceNotFoundError("classroom not found"))
			},
			err: apperrors.ErrResourceNotFound,
		},
		{
			name:  "defaults to first profile",
			setup: func(m *mocks.MockProfileRepository) { m.On("FirstByAccount", int64(1)).Return(first, nil) },
			want:  first,
		},
		{
			name: "account without profiles",
			setup: func(m *mocks.MockProfileRepository) {
				m.On("FirstByAccount", int64(1)).Return(nil, apperrors.NewResourceNotFoundError("account has no classroom"))
			},
			err: apperrors.ErrBadRequest,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			profiles := new(mocks.MockProfileRepository)
			tc.setup(profiles)
			svc := NewAuthorizationService(profiles, new(mocks.MockMeetingRepository))

			got, err := svc.ResolveActingProfile(context.Background(), 1, tc.profileID)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			profiles.AssertExpectations(t)
		})
	}
}

func TestInvitationRole(t *testing.T) {
	svc := NewAuthorizationService(nil, nil)
	inv := &models.MeetingInvitation{SenderAccountID: 1, ReceiverAccountID: 2}

	assert.Equal(t, domain.RoleSender, svc.InvitationRole(inv, 1))
	assert.Equal(t, domain.RoleReceiver, svc.InvitationRole(inv, 2))
	assert.Equal(t, domain.RoleNone, svc.InvitationRole(inv, 3))

	own := &models.MeetingInvitation{SenderAccountID: 1, ReceiverAccountID: 1}
	role := svc.InvitationRole(own, 1)
	assert.True(t, role.Has(domain.RoleSender))
	assert.True(t, role.Has(domain.RoleReceiver))
}

func TestCanViewMeeting(t *testing.T) {
	meeting := &models.Meeting{ID: 10, CreatorAccountID: 1}

	meetings := new(mocks.MockMeetingRepository)
	meetings.On("IsParticipant", int64(10), int64(2)).Return(true, nil)
	meetings.On("IsParticipant", int64(10), int64(3)).Return(false, nil)
	svc := NewAuthorizationService(nil, meetings)

	assert.NoError(t, svc.CanViewMeeting(context.Background(), meeting, 1))
	assert.NoError(t, svc.CanViewMeeting(context.Background(), meeting, 2))
	assert.ErrorIs(t, svc.CanViewMeeting(context.Background(), meeting, 3), apperrors.ErrPermissionDenied)

	assert.NoError(t, svc.RequireMeetingCreator(meeting, 1))
	assert.ErrorIs(t, svc.RequireMeetingCreator(meeting, 2), apperrors.ErrPermissionDenied)
}
