package controllers

import (
	"net/http"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/services"
	"github.com/HarinChan/MirrorMirrorEngine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// FriendController handles friend requests and friendships
type FriendController struct {
	friendService services.FriendService
}

// NewFriendController creates a new FriendController
func NewFriendController(friendService services.FriendService) *FriendController {
	return &FriendController{friendService: friendService}
}

// SubmitRequest sends a friend request to a classroom
// @Summary Send friend request
// @Description Sends a request, or accepts the target's pending request to the caller when one exists
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FriendRequestCreate true "Target classroom"
// @Success 200 {object} dto.APIResponse{data=dto.FriendRequestResult} "Reverse request accepted"
// @Success 201 {object} dto.APIResponse{data=dto.FriendRequestResult} "Request created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or self request"
// @Failure 404 {object} dto.ErrorResponse "Classroom not found"
// @Failure 409 {object} dto.ErrorResponse "Already friends or already requested"
// @Router /friends/request [post]
func (c *FriendController) SubmitRequest(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	var req dto.FriendRequestCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.friendService.SubmitRequest(ctx.Request.Context(), accountID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusCreated
	if resp.Status == string(models.FriendRequestAccepted) {
		status = http.StatusOK
	}
	ctx.JSON(status, dto.NewSuccessResponse(resp))
}

// AcceptRequest accepts a pending friend request
// @Summary Accept friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Friend request ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 403 {object} dto.ErrorResponse "Not addressed to the caller"
// @Failure 409 {object} dto.ErrorResponse "Not pending"
// @Router /friends/requests/{id}/accept [post]
func (c *FriendController) AcceptRequest(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "friend request")
	if !ok {
		return
	}

	if err := c.friendService.AcceptRequest(ctx.Request.Context(), accountID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "friend request accepted"}))
}

// RejectRequest rejects a pending friend request
// @Summary Reject friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Friend request ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 403 {object} dto.ErrorResponse "Not addressed to the caller"
// @Failure 409 {object} dto.ErrorResponse "Not pending"
// @Router /friends/requests/{id}/reject [post]
func (c *FriendController) RejectRequest(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "friend request")
	if !ok {
		return
	}

	if err := c.friendService.RejectRequest(ctx.Request.Context(), accountID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "friend request rejected"}))
}

// ListFriends lists the acting classroom's friends
// @Summary List friends
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param profileId query int false "Acting classroom ID"
// @Success 200 {object} dto.APIResponse{data=dto.FriendListResponse}
// @Router /friends [get]
func (c *FriendController) ListFriends(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	profileID, ok := actingProfileQuery(ctx)
	if !ok {
		return
	}

	friends, err := c.friendService.ListFriends(ctx.Request.Context(), accountID, profileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FriendListResponse{Friends: friends}))
}

// Unfriend removes a friendship
// @Summary Unfriend
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param profileId path int true "Friend classroom ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 404 {object} dto.ErrorResponse "Not friends"
// @Router /friends/{profileId} [delete]
func (c *FriendController) Unfriend(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	friendID, ok := parseIDParam(ctx, "profileId", "classroom")
	if !ok {
		return
	}
	profileID, ok := actingProfileQuery(ctx)
	if !ok {
		return
	}

	if err := c.friendService.Unfriend(ctx.Request.Context(), accountID, profileID, friendID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "friend removed"}))
}
