package controllers

import (
	"net/http"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/services"
	"github.com/HarinChan/MirrorMirrorEngine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ProfileController handles classroom profile endpoints
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// CreateProfile creates a classroom for the caller
// @Summary Create classroom
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProfileRequest true "Classroom"
// @Success 201 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /profiles [post]
func (c *ProfileController) CreateProfile(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	var req dto.CreateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.profileService.CreateProfile(ctx.Request.Context(), accountID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// ListProfiles lists the caller's classrooms
// @Summary List own classrooms
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ProfileResponse}
// @Router /profiles [get]
func (c *ProfileController) ListProfiles(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	resp, err := c.profileService.ListProfiles(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetProfile returns any classroom by id
// @Summary Get classroom
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Classroom ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 404 {object} dto.ErrorResponse "Classroom not found"
// @Router /profiles/{id} [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "classroom")
	if !ok {
		return
	}

	resp, err := c.profileService.GetProfile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateProfile partially updates an owned classroom
// @Summary Update classroom
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Classroom ID" Format(int64) minimum(1)
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Classroom not found"
// @Router /profiles/{id} [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "classroom")
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.profileService.UpdateProfile(ctx.Request.Context(), accountID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteProfile deletes an owned classroom
// @Summary Delete classroom
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Classroom ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Router /profiles/{id} [delete]
func (c *ProfileController) DeleteProfile(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "classroom")
	if !ok {
		return
	}

	if err := c.profileService.DeleteProfile(ctx.Request.Context(), accountID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "classroom deleted"}))
}
