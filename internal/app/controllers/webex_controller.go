package controllers

import (
	"net/http"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/services"
	"github.com/HarinChan/MirrorMirrorEngine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// WebexController handles linking an account to Webex
type WebexController struct {
	webexService services.WebexService
}

// NewWebexController creates a new WebexController
func NewWebexController(webexService services.WebexService) *WebexController {
	return &WebexController{webexService: webexService}
}

// AuthURL returns the Webex OAuth authorize URL
// @Summary Webex authorize URL
// @Tags webex
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.WebexAuthURLResponse}
// @Router /webex/auth-url [get]
func (c *WebexController) AuthURL(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.webexService.AuthURL()))
}

// Connect exchanges an authorization code and stores the tokens
// @Summary Connect Webex
// @Tags webex
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.WebexConnectRequest true "Authorization code"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing code"
// @Failure 502 {object} dto.ErrorResponse "Webex rejected the code"
// @Router /webex/connect [post]
func (c *WebexController) Connect(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	var req dto.WebexConnectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.webexService.Connect(ctx.Request.Context(), accountID, req.Code); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "webex connected"}))
}

// Status reports whether the caller has linked Webex
// @Summary Webex connection status
// @Tags webex
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.WebexStatusResponse}
// @Router /webex/status [get]
func (c *WebexController) Status(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	resp, err := c.webexService.Status(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Disconnect clears the caller's Webex tokens
// @Summary Disconnect Webex
// @Tags webex
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Router /webex/disconnect [post]
func (c *WebexController) Disconnect(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	if err := c.webexService.Disconnect(ctx.Request.Context(), accountID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "webex disconnected"}))
}
