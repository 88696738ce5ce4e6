package repositories

import (
	"context"
	"fmt"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/logger"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// insertNotification writes n through q and sets its ID, Read and CreatedAt.
// Repositories call it inside their own transactions.
func insertNotification(ctx context.Context, q querier, sb squirrel.StatementBuilderType, n *models.Notification) error {
	if n.Type == "" {
		n.Type = models.NotificationInfo
	}

	sql, args, err := sb.Insert("notifications").
		Columns("account_id", "title", "message", "type", "related_id").
		Values(n.AccountID, n.Title, n.Message, n.Type, n.RelatedID).
		Suffix("RETURNING id, read, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create notification query: %w", err)
	}

	if err := q.QueryRow(ctx, sql, args...).Scan(&n.ID, &n.Read, &n.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("accountID", n.AccountID).Str("type", n.Type).Msg("Error inserting notification")
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

// ListByAccount returns an account's notifications, newest first
func (r *NotificationRepository) ListByAccount(ctx context.Context, accountID int64) ([]*models.Notification, error) {
	sql, args, err := r.sb.Select("id", "account_id", "title", "message", "type", "read", "related_id", "created_at").
		From("notifications").
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list notifications SQL")
		return nil, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("accountID", accountID).Msg("Error executing list notifications query")
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.AccountID, &n.Title, &n.Message, &n.Type, &n.Read, &n.RelatedID, &n.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning notification row")
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags one of the account's notifications as read. A notification
// owned by another account is reported as not found.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, accountID int64) error {
	sql, args, err := r.sb.Update("notifications").
		Set("read", true).
		Where(squirrel.Eq{"id": id, "account_id": accountID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building mark notification read SQL")
		return fmt.Errorf("failed to build mark read query: %w", err)
	}
	return r.execOwned(ctx, sql, args, id)
}

// Delete removes one of the account's notifications
func (r *NotificationRepository) Delete(ctx context.Context, id, accountID int64) error {
	sql, args, err := r.sb.Delete("notifications").
		Where(squirrel.Eq{"id": id, "account_id": accountID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete notification SQL")
		return fmt.Errorf("failed to build delete notification query: %w", err)
	}
	return r.execOwned(ctx, sql, args, id)
}

func (r *NotificationRepository) execOwned(ctx context.Context, sql string, args []interface{}, id int64) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error executing notification query")
		return fmt.Errorf("error updating notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("notification not found")
	}
	return nil
}
