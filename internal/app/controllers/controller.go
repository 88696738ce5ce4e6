// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive int64 path parameter, answering 400 when it is malformed
func parseIDParam(ctx *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID").WithField(name),
		))
		return 0, false
	}
	return id, true
}

// currentAccountID returns the authenticated account or answers 401
func currentAccountID(ctx *gin.Context) (int64, bool) {
	id, ok := middleware.AccountID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		))
		return 0, false
	}
	return id, true
}

// actingProfileQuery reads the optional profileId query parameter
func actingProfileQuery(ctx *gin.Context) (*int64, bool) {
	raw := ctx.Query("profileId")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile ID").WithField("profileId"),
		))
		return nil, false
	}
	return &id, true
}
