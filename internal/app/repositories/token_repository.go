package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/dberrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/logger"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TokenRepository handles refresh token database operations
type TokenRepository struct {
	db  *pgxpool.Pool
	sb  squirrel.StatementBuilderType
	now func() time.Time
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db:  db,
		sb:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		now: time.Now,
	}
}

// CreateToken stores a new refresh token
func (r *TokenRepository) CreateToken(ctx context.Context, token string, accountID int64, expiryDate time.Time) error {
	sql, args, err := r.sb.Insert("refresh_tokens").
		Columns("token", "account_id", "expiry_date", "is_revoked", "created_at").
		Values(token, accountID, expiryDate, false, r.now()).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create token SQL")
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "refresh_tokens_token_key") {
			logger.Warn().Int64("accountID", accountID).Msg("Attempted to create duplicate token")
			return apperrors.ErrTokenInvalid
		}
		logger.Error().Err(err).Int64("accountID", accountID).Msg("Error executing create token query")
		return fmt.Errorf("error creating token: %w", err)
	}

	return nil
}

// GetTokenByValue returns the owning account of a live refresh token.
// Revoked and expired tokens are reported as such.
func (r *TokenRepository) GetTokenByValue(ctx context.Context, token string) (int64, error) {
	var accountID int64
	var expiryDate time.Time
	var isRevoked bool

	sql, args, err := r.sb.Select("account_id", "expiry_date", "is_revoked").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get token by value SQL")
		return 0, fmt.Errorf("failed to build get token query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&accountID, &expiryDate, &isRevoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Msg("Error scanning token row")
		return 0, fmt.Errorf("error retrieving token: %w", err)
	}

	if isRevoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if expiryDate.Before(r.now()) {
		return 0, apperrors.ErrTokenExpired
	}

	return accountID, nil
}

// revokeUpdate only matches a live token so that two concurrent rotations
// of the same token cannot both succeed
func (r *TokenRepository) revokeUpdate(token string) squirrel.UpdateBuilder {
	return r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"token": token, "is_revoked": false})
}

// RevokeToken revokes a single refresh token. A token that was already
// revoked yields ErrTokenRevoked, an unknown one ErrTokenNotFound.
func (r *TokenRepository) RevokeToken(ctx context.Context, token string) error {
	sql, args, err := r.revokeUpdate(token).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building revoke token SQL")
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing revoke token query")
		return fmt.Errorf("error revoking token: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return r.missedRevocation(ctx, token)
	}

	return nil
}

// missedRevocation tells apart a token lost to a concurrent revocation
// from one that never existed
func (r *TokenRepository) missedRevocation(ctx context.Context, token string) error {
	sql, args, err := r.sb.Select("1").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build token lookup query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Msg("Error checking refresh token existence")
		return fmt.Errorf("error checking token: %w", err)
	}
	if exists {
		return apperrors.ErrTokenRevoked
	}
	return apperrors.ErrTokenNotFound
}

// RevokeAllAccountTokens revokes every active refresh token of an account
func (r *TokenRepository) RevokeAllAccountTokens(ctx context.Context, accountID int64) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"account_id": accountID, "is_revoked": false}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("accountID", accountID).Msg("Error building revoke all account tokens SQL")
		return fmt.Errorf("failed to build revoke all account tokens query: %w", err)
	}

	// No active tokens is fine
	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("accountID", accountID).Msg("Error executing revoke all account tokens query")
		return fmt.Errorf("error revoking account tokens: %w", err)
	}

	return nil
}
