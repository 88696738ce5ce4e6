package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/db"
	"github.com/HarinChan/MirrorMirrorEngine/internal/domain"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/dberrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/logger"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostRepository handles feed posts and their like-sets
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// feedSelect joins author and quoted post. isLiked is computed for viewerID
// and is always false for anonymous viewers.
func (r *PostRepository) feedSelect(viewerID *int64) squirrel.SelectBuilder {
	liked := squirrel.Expr("FALSE")
	if viewerID != nil {
		liked = squirrel.Expr("EXISTS (SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.account_id = ?)", *viewerID)
	}

	return r.sb.Select(
		"p.id", "p.profile_id", "p.content", "p.image_url", "p.likes", "p.comments_count",
		"p.quoted_post_id", "p.created_at", "a.name",
		"q.id", "qa.name", "q.content", "q.image_url",
	).
		Column(squirrel.Alias(liked, "is_liked")).
		From("posts p").
		Join("profiles a ON a.id = p.profile_id").
		LeftJoin("posts q ON q.id = p.quoted_post_id").
		LeftJoin("profiles qa ON qa.id = q.profile_id")
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	var quotedID *int64
	var quotedAuthor, quotedContent, quotedImage *string

	err := row.Scan(
		&p.ID, &p.ProfileID, &p.Content, &p.ImageURL, &p.Likes, &p.CommentsCount,
		&p.QuotedPostID, &p.CreatedAt, &p.AuthorName,
		&quotedID, &quotedAuthor, &quotedContent, &quotedImage,
		&p.IsLiked,
	)
	if err != nil {
		return nil, err
	}

	if quotedID != nil {
		p.QuotedPost = &models.QuotedPost{ID: *quotedID, ImageURL: quotedImage}
		if quotedAuthor != nil {
			p.QuotedPost.AuthorName = *quotedAuthor
		}
		if quotedContent != nil {
			p.QuotedPost.Content = *quotedContent
		}
	}
	return &p, nil
}

// List returns every post newest first
func (r *PostRepository) List(ctx context.Context, viewerID *int64) ([]*models.Post, error) {
	sql, args, err := r.feedSelect(viewerID).
		OrderBy("p.created_at DESC", "p.id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list posts SQL")
		return nil, fmt.Errorf("failed to build list posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list posts query")
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning post row")
			return nil, fmt.Errorf("error scanning post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return posts, nil
}

// GetByID retrieves a post with its author and quote
func (r *PostRepository) GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Post, error) {
	sql, args, err := r.feedSelect(viewerID).
		Where(squirrel.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get post SQL")
		return nil, fmt.Errorf("failed to build get post query: %w", err)
	}

	p, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("post not found")
		}
		logger.Error().Err(err).Int64("postID", id).Msg("Error scanning post row")
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}
	return p, nil
}

// Create inserts a post with zero likes and comments
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	sql, args, err := r.sb.Insert("posts").
		Columns("profile_id", "content", "image_url", "quoted_post_id").
		Values(post.ProfileID, post.Content, post.ImageURL, post.QuotedPostID).
		Suffix("RETURNING id, likes, comments_count, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create post SQL")
		return fmt.Errorf("failed to build create post query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&post.ID, &post.Likes, &post.CommentsCount, &post.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "posts_quoted_post_id_fkey") {
			return apperrors.NewResourceNotFoundError("quoted post not found")
		}
		logger.Error().Err(err).Int64("profileID", post.ProfileID).Msg("Error executing create post query")
		return fmt.Errorf("error creating post: %w", err)
	}
	return nil
}

// SetLike moves accountID into or out of the post's like-set and keeps the
// counter in step, under a row lock on the post. It returns the resulting
// like count.
func (r *PostRepository) SetLike(ctx context.Context, postID, accountID int64, want bool) (int, error) {
	var outcome domain.LikeOutcome

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		state, err := r.lockLikeState(ctx, tx, postID, accountID)
		if err != nil {
			return err
		}

		outcome = domain.ApplyLike(state, want)
		if !outcome.Changed {
			return nil
		}

		var sql string
		var args []interface{}
		if outcome.Liked {
			sql, args, err = r.sb.Insert("post_likes").
				Columns("post_id", "account_id").
				Values(postID, accountID).
				Suffix("ON CONFLICT (post_id, account_id) DO NOTHING").
				ToSql()
		} else {
			sql, args, err = r.sb.Delete("post_likes").
				Where(squirrel.Eq{"post_id": postID, "account_id": accountID}).
				ToSql()
		}
		if err != nil {
			return fmt.Errorf("failed to build like membership query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error updating like membership: %w", err)
		}

		sql, args, err = r.sb.Update("posts").
			Set("likes", outcome.Count).
			Where(squirrel.Eq{"id": postID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build like counter query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error updating like counter: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			logger.Error().Err(err).Int64("postID", postID).Int64("accountID", accountID).Msg("Error toggling like")
		}
		return 0, err
	}
	return outcome.Count, nil
}

func (r *PostRepository) lockLikeState(ctx context.Context, tx pgx.Tx, postID, accountID int64) (domain.LikeState, error) {
	sql, args, err := r.sb.Select("p.likes").
		Column(squirrel.Expr("EXISTS (SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.account_id = ?)", accountID)).
		From("posts p").
		Where(squirrel.Eq{"p.id": postID}).
		Suffix("FOR UPDATE OF p").
		ToSql()
	if err != nil {
		return domain.LikeState{}, fmt.Errorf("failed to build like state query: %w", err)
	}

	var state domain.LikeState
	if err := tx.QueryRow(ctx, sql, args...).Scan(&state.Count, &state.Liked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.LikeState{}, apperrors.NewResourceNotFoundError("post not found")
		}
		return domain.LikeState{}, fmt.Errorf("error reading like state: %w", err)
	}
	return state, nil
}

// Delete removes a post. Quotes of it keep existing without the quote.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("posts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete post SQL")
		return fmt.Errorf("failed to build delete post query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", id).Msg("Error executing delete post query")
		return fmt.Errorf("error deleting post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("post not found")
	}
	return nil
}
