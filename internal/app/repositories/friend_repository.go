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

// FriendRepository handles relations and friend requests
type FriendRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFriendRepository creates a new FriendRepository
func NewFriendRepository(db *pgxpool.Pool) *FriendRepository {
	return &FriendRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// AreFriends reports whether an accepted relation connects a and b in either direction
func (r *FriendRepository) AreFriends(ctx context.Context, a, b int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("relations").
		Where(squirrel.Eq{"status": models.RelationAccepted}).
		Where(squirrel.Or{
			squirrel.Eq{"from_profile_id": a, "to_profile_id": b},
			squirrel.Eq{"from_profile_id": b, "to_profile_id": a},
		}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building are friends SQL")
		return false, fmt.Errorf("failed to build are friends query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Int64("a", a).Int64("b", b).Msg("Error executing are friends query")
		return false, fmt.Errorf("error checking friendship: %w", err)
	}
	return exists, nil
}

// PendingRequestID returns the pending request from sender to receiver, or nil
func (r *FriendRepository) PendingRequestID(ctx context.Context, senderID, receiverID int64) (*int64, error) {
	sql, args, err := r.sb.Select("id").
		From("friend_requests").
		Where(squirrel.Eq{
			"sender_profile_id":   senderID,
			"receiver_profile_id": receiverID,
			"status":              models.FriendRequestPending,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building pending request SQL")
		return nil, fmt.Errorf("failed to build pending request query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Msg("Error scanning pending request row")
		return nil, fmt.Errorf("error retrieving pending request: %w", err)
	}
	return &id, nil
}

// GetRequestByID retrieves a friend request with its sender's name
func (r *FriendRepository) GetRequestByID(ctx context.Context, id int64) (*models.FriendRequest, error) {
	sql, args, err := r.sb.Select(
		"fr.id", "fr.sender_profile_id", "fr.receiver_profile_id", "fr.status", "fr.created_at",
		"p.name", "p.location",
	).
		From("friend_requests fr").
		Join("profiles p ON p.id = fr.sender_profile_id").
		Where(squirrel.Eq{"fr.id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get friend request SQL")
		return nil, fmt.Errorf("failed to build get friend request query: %w", err)
	}

	var fr models.FriendRequest
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&fr.ID, &fr.SenderProfileID, &fr.ReceiverProfileID, &fr.Status, &fr.CreatedAt,
		&fr.SenderName, &fr.SenderLocation,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("friend request not found")
		}
		logger.Error().Err(err).Int64("requestID", id).Msg("Error scanning friend request row")
		return nil, fmt.Errorf("error retrieving friend request: %w", err)
	}
	return &fr, nil
}

// CreatePendingRequest stores a pending request and the receiver's
// notification in one transaction. The notification's related id is set to
// the new request.
func (r *FriendRepository) CreatePendingRequest(ctx context.Context, senderID, receiverID int64, notice *models.Notification) (*models.FriendRequest, error) {
	fr := &models.FriendRequest{
		SenderProfileID:   senderID,
		ReceiverProfileID: receiverID,
		Status:            models.FriendRequestPending,
	}

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("friend_requests").
			Columns("sender_profile_id", "receiver_profile_id", "status").
			Values(senderID, receiverID, models.FriendRequestPending).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create friend request query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&fr.ID, &fr.CreatedAt); err != nil {
			if dberrors.IsDuplicateConstraintError(err, "friend_requests_pending_pair_key") {
				return apperrors.NewConflictError("friend request already sent")
			}
			if dberrors.IsForeignKeyViolation(err, "") {
				return apperrors.NewResourceNotFoundError("classroom not found")
			}
			return fmt.Errorf("error creating friend request: %w", err)
		}

		domain.SetRelatedID(notice, fr.ID)
		return insertNotification(ctx, tx, r.sb, notice)
	})
	if err != nil {
		logger.Error().Err(err).Int64("senderID", senderID).Int64("receiverID", receiverID).Msg("Error creating friend request")
		return nil, err
	}
	return fr, nil
}

// AcceptRequest marks a pending request accepted, creates both relation rows,
// settles any pending request in the opposite direction and notifies the
// sender, all in one transaction. A request that is no longer pending is a
// conflict.
func (r *FriendRepository) AcceptRequest(ctx context.Context, requestID int64, notice *models.Notification) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		senderID, receiverID, err := r.settleRequest(ctx, tx, requestID, models.FriendRequestAccepted)
		if err != nil {
			return err
		}

		sql, args, err := r.sb.Update("friend_requests").
			Set("status", models.FriendRequestAccepted).
			Where(squirrel.Eq{
				"sender_profile_id":   receiverID,
				"receiver_profile_id": senderID,
				"status":              models.FriendRequestPending,
			}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build settle reverse request query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error settling reverse request: %w", err)
		}

		sql, args, err = r.sb.Insert("relations").
			Columns("from_profile_id", "to_profile_id", "status").
			Values(senderID, receiverID, models.RelationAccepted).
			Values(receiverID, senderID, models.RelationAccepted).
			Suffix("ON CONFLICT (from_profile_id, to_profile_id) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create relations query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error creating relations: %w", err)
		}

		return insertNotification(ctx, tx, r.sb, notice)
	})
	if err != nil && !errors.Is(err, apperrors.ErrConflict) {
		logger.Error().Err(err).Int64("requestID", requestID).Msg("Error accepting friend request")
	}
	return err
}

// RejectRequest marks a pending request rejected
func (r *FriendRepository) RejectRequest(ctx context.Context, requestID int64) error {
	_, _, err := r.settleRequest(ctx, r.db, requestID, models.FriendRequestRejected)
	return err
}

func (r *FriendRepository) settleRequest(ctx context.Context, q querier, requestID int64, status models.FriendRequestStatus) (int64, int64, error) {
	sql, args, err := r.sb.Update("friend_requests").
		Set("status", status).
		Where(squirrel.Eq{"id": requestID, "status": models.FriendRequestPending}).
		Suffix("RETURNING sender_profile_id, receiver_profile_id").
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build settle friend request query: %w", err)
	}

	var senderID, receiverID int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&senderID, &receiverID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, apperrors.NewConflictError("friend request is no longer pending")
		}
		return 0, 0, fmt.Errorf("error settling friend request: %w", err)
	}
	return senderID, receiverID, nil
}

// ListFriends returns the profiles reachable through outgoing relations of profileID
func (r *FriendRepository) ListFriends(ctx context.Context, profileID int64) ([]*models.Friend, error) {
	sql, args, err := r.sb.Select("rel.id", "p.id", "p.name", "p.location", "rel.created_at").
		From("relations rel").
		Join("profiles p ON p.id = rel.to_profile_id").
		Where(squirrel.Eq{"rel.from_profile_id": profileID, "rel.status": models.RelationAccepted}).
		OrderBy("rel.created_at ASC", "p.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list friends SQL")
		return nil, fmt.Errorf("failed to build list friends query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("profileID", profileID).Msg("Error executing list friends query")
		return nil, fmt.Errorf("error listing friends: %w", err)
	}
	defer rows.Close()

	friends := []*models.Friend{}
	for rows.Next() {
		var f models.Friend
		if err := rows.Scan(&f.RelationID, &f.ProfileID, &f.Name, &f.Location, &f.Since); err != nil {
			logger.Error().Err(err).Msg("Error scanning friend row")
			return nil, fmt.Errorf("error scanning friend: %w", err)
		}
		friends = append(friends, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friends: %w", err)
	}
	return friends, nil
}

// ListPendingReceived returns pending requests addressed to profileID, newest first
func (r *FriendRepository) ListPendingReceived(ctx context.Context, profileID int64) ([]*models.FriendRequest, error) {
	sql, args, err := r.sb.Select(
		"fr.id", "fr.sender_profile_id", "fr.receiver_profile_id", "fr.status", "fr.created_at",
		"p.name", "p.location",
	).
		From("friend_requests fr").
		Join("profiles p ON p.id = fr.sender_profile_id").
		Where(squirrel.Eq{"fr.receiver_profile_id": profileID, "fr.status": models.FriendRequestPending}).
		OrderBy("fr.created_at DESC", "fr.id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list friend requests SQL")
		return nil, fmt.Errorf("failed to build list friend requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("profileID", profileID).Msg("Error executing list friend requests query")
		return nil, fmt.Errorf("error listing friend requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.FriendRequest{}
	for rows.Next() {
		var fr models.FriendRequest
		if err := rows.Scan(&fr.ID, &fr.SenderProfileID, &fr.ReceiverProfileID, &fr.Status, &fr.CreatedAt,
			&fr.SenderName, &fr.SenderLocation); err != nil {
			logger.Error().Err(err).Msg("Error scanning friend request row")
			return nil, fmt.Errorf("error scanning friend request: %w", err)
		}
		requests = append(requests, &fr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friend requests: %w", err)
	}
	return requests, nil
}

// DeleteFriendship removes both relation rows between a and b
func (r *FriendRepository) DeleteFriendship(ctx context.Context, a, b int64) error {
	sql, args, err := r.sb.Delete("relations").
		Where(squirrel.Or{
			squirrel.Eq{"from_profile_id": a, "to_profile_id": b},
			squirrel.Eq{"from_profile_id": b, "to_profile_id": a},
		}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete friendship SQL")
		return fmt.Errorf("failed to build delete friendship query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("a", a).Int64("b", b).Msg("Error executing delete friendship query")
		return fmt.Errorf("error deleting friendship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("not friends with this classroom")
	}
	return nil
}
