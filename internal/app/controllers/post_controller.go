package controllers

import (
	"context"
	"net/http"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/services"
	"github.com/HarinChan/MirrorMirrorEngine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// PostController handles the feed
type PostController struct {
	postService services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService) *PostController {
	return &PostController{postService: postService}
}

// ListPosts returns the feed
// @Summary List posts
// @Description Newest first. isLiked reflects the caller when a valid token is sent.
// @Tags posts
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse}
// @Router /posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	var viewerID *int64
	if id, ok := middleware.AccountID(ctx); ok {
		viewerID = &id
	}

	posts, err := c.postService.ListPosts(ctx.Request.Context(), viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PostListResponse{Posts: posts}))
}

// CreatePost publishes a post
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostRequest true "Post"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse}
// @Failure 400 {object} dto.ErrorResponse "Empty content or no classroom"
// @Failure 404 {object} dto.ErrorResponse "Quoted post not found"
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.postService.CreatePost(ctx.Request.Context(), accountID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// LikePost likes a post
// @Summary Like post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.LikeResponse}
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/like [post]
func (c *PostController) LikePost(ctx *gin.Context) {
	c.toggleLike(ctx, c.postService.LikePost)
}

// UnlikePost unlikes a post
// @Summary Unlike post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.LikeResponse}
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/unlike [post]
func (c *PostController) UnlikePost(ctx *gin.Context) {
	c.toggleLike(ctx, c.postService.UnlikePost)
}

func (c *PostController) toggleLike(ctx *gin.Context, apply func(ctx context.Context, accountID, postID int64) (*dto.LikeResponse, error)) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "post")
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

// DeletePost deletes one of the caller's posts
// @Summary Delete post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "post")
	if !ok {
		return
	}

	if err := c.postService.DeletePost(ctx.Request.Context(), accountID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "post deleted"}))
}
