package services

import (
	"context"
	"strings"

	authz "github.com/HarinChan/MirrorMirrorEngine/internal/app/auth"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/repositories"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// PostService defines feed operations
type PostService interface {
	ListPosts(ctx context.Context, viewerID *int64) ([]dto.PostResponse, error)
	CreatePost(ctx context.Context, accountID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	LikePost(ctx context.Context, accountID, postID int64) (*dto.LikeResponse, error)
	UnlikePost(ctx context.Context, accountID, postID int64) (*dto.LikeResponse, error)
	DeletePost(ctx context.Context, accountID, postID int64) error
}

type postServiceImpl struct {
	postRepo     repositories.IPostRepository
	profileRepo  repositories.IProfileRepository
	authzService *authz.AuthorizationService
	logger       zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.IPostRepository,
	profileRepo repositories.IProfileRepository,
	authzService *authz.AuthorizationService,
	logger zerolog.Logger,
) PostService {
	return &postServiceImpl{
		postRepo:     postRepo,
		profileRepo:  profileRepo,
		authzService: authzService,
		logger:       logger,
	}
}

// ListPosts returns the feed, newest first. isLiked is false for anonymous viewers.
func (s *postServiceImpl) ListPosts(ctx context.Context, viewerID *int64) ([]dto.PostResponse, error) {
	posts, err := s.postRepo.List(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out, nil
}

// CreatePost publishes a post as the acting classroom
func (s *postServiceImpl) CreatePost(ctx context.Context, accountID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewBadRequestError("content must not be empty")
	}

	author, err := s.authzService.ResolveActingProfile(ctx, accountID, req.ProfileID)
	if err != nil {
		return nil, err
	}

	if req.QuotedPostID != nil {
		if _, err := s.postRepo.GetByID(ctx, *req.QuotedPostID, nil); err != nil {
			return nil, err
		}
	}

	post := &models.Post{
		ProfileID:    author.ID,
		Content:      content,
		ImageURL:     req.ImageURL,
		QuotedPostID: req.QuotedPostID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	created, err := s.postRepo.GetByID(ctx, post.ID, &accountID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("postID", post.ID).Int64("profileID", author.ID).Msg("Post created")
	resp := toPostResponse(created)
	return &resp, nil
}

// LikePost adds the caller to the post's like-set
func (s *postServiceImpl) LikePost(ctx context.Context, accountID, postID int64) (*dto.LikeResponse, error) {
	likes, err := s.postRepo.SetLike(ctx, postID, accountID, true)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResponse{Likes: likes}, nil
}

// UnlikePost removes the caller from the post's like-set
func (s *postServiceImpl) UnlikePost(ctx context.Context, accountID, postID int64) (*dto.LikeResponse, error) {
	likes, err := s.postRepo.SetLike(ctx, postID, accountID, false)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResponse{Likes: likes}, nil
}

// DeletePost removes a post authored by one of the caller's classrooms
func (s *postServiceImpl) DeletePost(ctx context.Context, accountID, postID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID, nil)
	if err != nil {
		return err
	}

	author, err := s.profileRepo.GetByID(ctx, post.ProfileID)
	if err != nil {
		return err
	}
	if author.AccountID != accountID {
		return apperrors.NewForbiddenError("you can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, postID)
}
