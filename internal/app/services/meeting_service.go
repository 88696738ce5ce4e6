package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	authz "github.com/HarinChan/MirrorMirrorEngine/internal/app/auth"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/repositories"
	"github.com/HarinChan/MirrorMirrorEngine/internal/domain"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

const (
	defaultMeetingTitle    = "Classroom Meeting"
	defaultMeetingDuration = time.Hour
	placeholderPrefix      = "dummy_"
)

// MeetingService defines the invitation workflow and meeting lifecycle
type MeetingService interface {
	CreateInvitation(ctx context.Context, accountID int64, req *dto.CreateInvitationRequest) (*dto.InvitationCreatedResponse, error)
	ListReceivedInvitations(ctx context.Context, accountID int64) (*dto.InvitationListResponse, error)
	ListSentInvitations(ctx context.Context, accountID int64) (*dto.SentInvitationListResponse, error)
	AcceptInvitation(ctx context.Context, accountID, invitationID int64) (*dto.AcceptInvitationResponse, error)
	DeclineInvitation(ctx context.Context, accountID, invitationID int64) (*dto.InvitationStatusResponse, error)
	CancelInvitation(ctx context.Context, accountID, invitationID int64) (*dto.InvitationStatusResponse, error)
	GetMeeting(ctx context.Context, accountID, meetingID int64) (*dto.MeetingResponse, error)
	UpdateMeeting(ctx context.Context, accountID, meetingID int64, req *dto.UpdateMeetingRequest) (*dto.MeetingResponse, error)
	DeleteMeeting(ctx context.Context, accountID, meetingID int64) error
	ListUpcoming(ctx context.Context, accountID int64) (*dto.MeetingListResponse, error)
}

type meetingServiceImpl struct {
	meetingRepo  repositories.IMeetingRepository
	profileRepo  repositories.IProfileRepository
	authzService *authz.AuthorizationService
	gateway      ConferencingGateway
	tokens       *webexTokenGuard
	now          func() time.Time
	logger       zerolog.Logger
}

// NewMeetingService creates a new MeetingService
func NewMeetingService(
	meetingRepo repositories.IMeetingRepository,
	profileRepo repositories.IProfileRepository,
	accountRepo repositories.IAccountRepository,
	authzService *authz.AuthorizationService,
	gateway ConferencingGateway,
	logger zerolog.Logger,
) MeetingService {
	s := &meetingServiceImpl{
		meetingRepo:  meetingRepo,
		profileRepo:  profileRepo,
		authzService: authzService,
		gateway:      gateway,
		now:          time.Now,
		logger:       logger,
	}
	s.tokens = &webexTokenGuard{
		accountRepo: accountRepo,
		gateway:     gateway,
		now:         func() time.Time { return s.now() },
		logger:      logger,
	}
	return s
}

// parseClassroomRef validates the invited classroom reference
func parseClassroomRef(ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return 0, apperrors.NewBadRequestError("classroom_id is required")
	case strings.HasPrefix(ref, placeholderPrefix):
		return 0, apperrors.NewBadRequestError("cannot invite a placeholder classroom")
	}

	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError("classroom_id must be numeric")
	}
	return id, nil
}

// resolveWindow parses an optional start/end pair. When either bound is
// absent the window is now to now plus one hour.
func (s *meetingServiceImpl) resolveWindow(startStr, endStr *string) (time.Time, time.Time, error) {
	if startStr == nil || endStr == nil || strings.TrimSpace(*startStr) == "" || strings.TrimSpace(*endStr) == "" {
		start := s.now().UTC().Truncate(time.Second)
		return start, start.Add(defaultMeetingDuration), nil
	}

	start, err := helpers.ParseISOTimestamp(*startStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("invalid start_time format")
	}
	end, err := helpers.ParseISOTimestamp(*endStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("invalid end_time format")
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("end_time must be after start_time")
	}
	return start, end, nil
}

// CreateInvitation invites a classroom to a meeting
func (s *meetingServiceImpl) CreateInvitation(ctx context.Context, accountID int64, req *dto.CreateInvitationRequest) (*dto.InvitationCreatedResponse, error) {
	receiverID, err := parseClassroomRef(req.ClassroomRef())
	if err != nil {
		return nil, err
	}

	sender, err := s.authzService.ResolveActingProfile(ctx, accountID, req.ProfileID)
	if err != nil {
		return nil, err
	}

	receiver, err := s.profileRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if receiver.ID == sender.ID {
		return nil, apperrors.NewBadRequestError("cannot invite your own classroom")
	}

	title := defaultMeetingTitle
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		title = strings.TrimSpace(*req.Title)
	}

	start, end, err := s.resolveWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	inv := &models.MeetingInvitation{
		SenderProfileID:   sender.ID,
		ReceiverProfileID: receiver.ID,
		Title:             title,
		StartTime:         start,
		EndTime:           end,
	}
	notice := domain.MeetingInvitationNotice(receiver.AccountID, sender.Name, title)
	if err := s.meetingRepo.CreateInvitation(ctx, inv, notice); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("invitationID", inv.ID).Int64("from", sender.ID).Int64("to", receiver.ID).Msg("Meeting invitation sent")
	return &dto.InvitationCreatedResponse{
		ID:        inv.ID,
		Title:     inv.Title,
		StartTime: helpers.FormatISO(inv.StartTime),
		EndTime:   helpers.FormatISO(inv.EndTime),
		Status:    string(inv.Status),
	}, nil
}

func (s *meetingServiceImpl) ListReceivedInvitations(ctx context.Context, accountID int64) (*dto.InvitationListResponse, error) {
	invs, err := s.meetingRepo.ListPendingReceived(ctx, accountID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.InvitationResponse, 0, len(invs))
	for _, inv := range invs {
		r := toInvitationResponse(inv)
		r.SenderName = inv.SenderName
		out = append(out, r)
	}
	return &dto.InvitationListResponse{Invitations: out}, nil
}

func (s *meetingServiceImpl) ListSentInvitations(ctx context.Context, accountID int64) (*dto.SentInvitationListResponse, error) {
	invs, err := s.meetingRepo.ListPendingSent(ctx, accountID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.InvitationResponse, 0, len(invs))
	for _, inv := range invs {
		r := toInvitationResponse(inv)
		r.ReceiverName = inv.ReceiverName
		out = append(out, r)
	}
	return &dto.SentInvitationListResponse{SentInvitations: out}, nil
}

// loadForEvent fetches an invitation and checks the caller may apply event
// and that the invitation is still pending
func (s *meetingServiceImpl) loadForEvent(ctx context.Context, accountID, invitationID int64, event domain.InvitationEvent) (*models.MeetingInvitation, models.InvitationStatus, error) {
	inv, err := s.meetingRepo.GetInvitation(ctx, invitationID)
	if err != nil {
		return nil, "", err
	}

	if err := domain.AuthorizeInvitationEvent(s.authzService.InvitationRole(inv, accountID), event); err != nil {
		return nil, "", err
	}

	next, err := domain.TransitionInvitation(inv.Status, event)
	if err != nil {
		return nil, "", err
	}
	return inv, next, nil
}

// AcceptInvitation creates the external meeting on the sender's Webex
// account and records it. The invitation stays pending if anything before
// the final transaction fails.
func (s *meetingServiceImpl) AcceptInvitation(ctx context.Context, accountID, invitationID int64) (*dto.AcceptInvitationResponse, error) {
	inv, next, err := s.loadForEvent(ctx, accountID, invitationID, domain.InvitationAccept)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.accessToken(ctx, inv.SenderAccountID)
	if err != nil {
		return nil, err
	}

	external, err := s.gateway.CreateMeeting(ctx, accessToken, inv.Title, inv.StartTime, inv.EndTime)
	if err != nil {
		s.logger.Error().Err(err).Int64("invitationID", inv.ID).Msg("Webex meeting creation failed")
		return nil, apperrors.NewExternalServiceError("failed to create Webex meeting", err)
	}

	meeting := &models.Meeting{
		WebexID:   optionalString(external.ID),
		Title:     inv.Title,
		StartTime: inv.StartTime,
		EndTime:   inv.EndTime,
		WebLink:   optionalString(external.WebLink),
		Password:  optionalString(external.Password),
		CreatorID: inv.SenderProfileID,
	}
	notice := domain.InvitationOutcomeNotice(inv.SenderAccountID, inv, next)
	if err := s.meetingRepo.AcceptInvitation(ctx, inv, meeting, notice); err != nil {
		s.logger.Warn().Err(err).Str("webexMeetingID", external.ID).Int64("invitationID", inv.ID).Msg("Webex meeting created but not recorded")
		return nil, err
	}

	s.logger.Info().Int64("invitationID", inv.ID).Int64("meetingID", meeting.ID).Msg("Meeting invitation accepted")
	return &dto.AcceptInvitationResponse{
		Meeting: dto.MeetingSummary{
			ID:        meeting.ID,
			Title:     meeting.Title,
			WebLink:   meeting.WebLink,
			StartTime: helpers.FormatISO(meeting.StartTime),
			EndTime:   helpers.FormatISO(meeting.EndTime),
			Password:  meeting.Password,
		},
	}, nil
}

// DeclineInvitation is the receiver turning an invitation down
func (s *meetingServiceImpl) DeclineInvitation(ctx context.Context, accountID, invitationID int64) (*dto.InvitationStatusResponse, error) {
	inv, next, err := s.loadForEvent(ctx, accountID, invitationID, domain.InvitationDecline)
	if err != nil {
		return nil, err
	}

	notice := domain.InvitationOutcomeNotice(inv.SenderAccountID, inv, next)
	if err := s.meetingRepo.UpdateInvitationStatus(ctx, inv.ID, next, notice); err != nil {
		return nil, err
	}
	return &dto.InvitationStatusResponse{ID: inv.ID, Status: string(next)}, nil
}

// CancelInvitation is the sender withdrawing an invitation
func (s *meetingServiceImpl) CancelInvitation(ctx context.Context, accountID, invitationID int64) (*dto.InvitationStatusResponse, error) {
	inv, next, err := s.loadForEvent(ctx, accountID, invitationID, domain.InvitationCancel)
	if err != nil {
		return nil, err
	}

	notice := domain.InvitationOutcomeNotice(inv.ReceiverAccountID, inv, next)
	if err := s.meetingRepo.UpdateInvitationStatus(ctx, inv.ID, next, notice); err != nil {
		return nil, err
	}
	return &dto.InvitationStatusResponse{ID: inv.ID, Status: string(next)}, nil
}

func (s *meetingServiceImpl) GetMeeting(ctx context.Context, accountID, meetingID int64) (*dto.MeetingResponse, error) {
	meeting, err := s.meetingRepo.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.CanViewMeeting(ctx, meeting, accountID); err != nil {
		return nil, err
	}

	resp := toMeetingResponse(meeting, accountID)
	return &resp, nil
}

// UpdateMeeting reschedules a meeting on Webex and then locally
func (s *meetingServiceImpl) UpdateMeeting(ctx context.Context, accountID, meetingID int64, req *dto.UpdateMeetingRequest) (*dto.MeetingResponse, error) {
	meeting, err := s.meetingRepo.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.RequireMeetingCreator(meeting, accountID); err != nil {
		return nil, err
	}

	start, end := meeting.StartTime, meeting.EndTime
	if req.StartTime != nil && strings.TrimSpace(*req.StartTime) != "" {
		if start, err = helpers.ParseISOTimestamp(*req.StartTime); err != nil {
			return nil, apperrors.NewBadRequestError("invalid start_time format")
		}
	}
	if req.EndTime != nil && strings.TrimSpace(*req.EndTime) != "" {
		if end, err = helpers.ParseISOTimestamp(*req.EndTime); err != nil {
			return nil, apperrors.NewBadRequestError("invalid end_time format")
		}
	}
	if !end.After(start) {
		return nil, apperrors.NewBadRequestError("end_time must be after start_time")
	}

	accessToken, err := s.tokens.accessToken(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if meeting.WebexID != nil {
		if err := s.gateway.UpdateMeeting(ctx, accessToken, *meeting.WebexID, meeting.Title, start, end); err != nil {
			s.logger.Error().Err(err).Int64("meetingID", meeting.ID).Msg("Webex meeting update failed")
			return nil, apperrors.NewExternalServiceError("failed to update Webex meeting", err)
		}
	}

	if err := s.meetingRepo.UpdateMeetingTimes(ctx, meeting.ID, start, end); err != nil {
		return nil, err
	}

	meeting.StartTime, meeting.EndTime = start, end
	resp := toMeetingResponse(meeting, accountID)
	return &resp, nil
}

// DeleteMeeting removes the Webex meeting first and keeps the local row if that fails
func (s *meetingServiceImpl) DeleteMeeting(ctx context.Context, accountID, meetingID int64) error {
	meeting, err := s.meetingRepo.GetMeeting(ctx, meetingID)
	if err != nil {
		return err
	}
	if err := s.authzService.RequireMeetingCreator(meeting, accountID); err != nil {
		return err
	}

	accessToken, err := s.tokens.accessToken(ctx, accountID)
	if err != nil {
		return err
	}

	if meeting.WebexID != nil {
		if err := s.gateway.DeleteMeeting(ctx, accessToken, *meeting.WebexID); err != nil {
			s.logger.Error().Err(err).Int64("meetingID", meeting.ID).Msg("Webex meeting deletion failed")
			return apperrors.NewExternalServiceError("failed to delete Webex meeting", err)
		}
	}

	if err := s.meetingRepo.DeleteMeeting(ctx, meeting.ID); err != nil {
		return err
	}
	s.logger.Info().Int64("meetingID", meeting.ID).Msg("Meeting deleted")
	return nil
}

// ListUpcoming lists meetings the caller created or joined that have not started yet
func (s *meetingServiceImpl) ListUpcoming(ctx context.Context, accountID int64) (*dto.MeetingListResponse, error) {
	meetings, err := s.meetingRepo.ListUpcoming(ctx, accountID, s.now().UTC())
	if err != nil {
		return nil, err
	}

	out := make([]dto.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, toMeetingResponse(m, accountID))
	}
	return &dto.MeetingListResponse{Meetings: out}, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
