package controllers

import (
	"context"
	"net/http"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/services"
	"github.com/HarinChan/MirrorMirrorEngine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// MeetingController handles meeting invitations and scheduled meetings
type MeetingController struct {
	meetingService services.MeetingService
}

// NewMeetingController creates a new MeetingController
func NewMeetingController(meetingService services.MeetingService) *MeetingController {
	return &MeetingController{meetingService: meetingService}
}

// CreateInvitation invites another classroom to a meeting
// @Summary Create meeting invitation
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInvitationRequest true "Invitation"
// @Success 201 {object} dto.APIResponse{data=dto.InvitationCreatedResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid classroom or times"
// @Failure 403 {object} dto.ErrorResponse "Webex not connected"
// @Failure 404 {object} dto.ErrorResponse "Classroom not found"
// @Router /webex/meeting [post]
func (c *MeetingController) CreateInvitation(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	var req dto.CreateInvitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.meetingService.CreateInvitation(ctx.Request.Context(), accountID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// ListReceivedInvitations lists pending invitations addressed to the caller
// @Summary List received invitations
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.InvitationListResponse}
// @Router /webex/invitations [get]
func (c *MeetingController) ListReceivedInvitations(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	resp, err := c.meetingService.ListReceivedInvitations(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ListSentInvitations lists pending invitations the caller sent
// @Summary List sent invitations
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SentInvitationListResponse}
// @Router /webex/invitations/sent [get]
func (c *MeetingController) ListSentInvitations(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	resp, err := c.meetingService.ListSentInvitations(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// AcceptInvitation accepts an invitation and schedules the meeting
// @Summary Accept invitation
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID" Format(int64) minimum(1)
// @Success 201 {object} dto.APIResponse{data=dto.AcceptInvitationResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the receiver or Webex not connected"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Failure 409 {object} dto.ErrorResponse "Not pending"
// @Failure 502 {object} dto.ErrorResponse "Webex failed"
// @Router /webex/invitations/{id}/accept [post]
func (c *MeetingController) AcceptInvitation(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "invitation")
	if !ok {
		return
	}

	resp, err := c.meetingService.AcceptInvitation(ctx.Request.Context(), accountID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// DeclineInvitation declines an invitation addressed to the caller
// @Summary Decline invitation
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.InvitationStatusResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the receiver"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Failure 409 {object} dto.ErrorResponse "Not pending"
// @Router /webex/invitations/{id}/decline [post]
func (c *MeetingController) DeclineInvitation(ctx *gin.Context) {
	c.closeInvitation(ctx, c.meetingService.DeclineInvitation)
}

// CancelInvitation withdraws an invitation the caller sent
// @Summary Cancel invitation
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.InvitationStatusResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the sender"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Failure 409 {object} dto.ErrorResponse "Not pending"
// @Router /webex/invitations/{id}/cancel [post]
func (c *MeetingController) CancelInvitation(ctx *gin.Context) {
	c.closeInvitation(ctx, c.meetingService.CancelInvitation)
}

func (c *MeetingController) closeInvitation(ctx *gin.Context, apply func(context.Context, int64, int64) (*dto.InvitationStatusResponse, error)) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "invitation")
	if !ok {
		return
	}

	resp, err := apply(ctx.Request.Context(), accountID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetMeeting returns one meeting the caller takes part in
// @Summary Get meeting
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meeting ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MeetingResponse}
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Failure 404 {object} dto.ErrorResponse "Meeting not found"
// @Router /webex/meeting/{id} [get]
func (c *MeetingController) GetMeeting(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "meeting")
	if !ok {
		return
	}

	resp, err := c.meetingService.GetMeeting(ctx.Request.Context(), accountID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateMeeting reschedules a meeting the caller created
// @Summary Update meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meeting ID" Format(int64) minimum(1)
// @Param request body dto.UpdateMeetingRequest true "New times"
// @Success 200 {object} dto.APIResponse{data=dto.MeetingResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid times"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Meeting not found"
// @Router /webex/meeting/{id} [put]
func (c *MeetingController) UpdateMeeting(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "meeting")
	if !ok {
		return
	}

	var req dto.UpdateMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.meetingService.UpdateMeeting(ctx.Request.Context(), accountID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteMeeting cancels a meeting the caller created
// @Summary Delete meeting
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meeting ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Meeting not found"
// @Router /webex/meeting/{id} [delete]
func (c *MeetingController) DeleteMeeting(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "meeting")
	if !ok {
		return
	}

	if err := c.meetingService.DeleteMeeting(ctx.Request.Context(), accountID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "meeting deleted"}))
}

// ListUpcoming lists the caller's meetings that have not ended
// @Summary List upcoming meetings
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MeetingListResponse}
// @Router /meetings [get]
func (c *MeetingController) ListUpcoming(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	resp, err := c.meetingService.ListUpcoming(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
