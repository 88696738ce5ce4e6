package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/dberrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/logger"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var accountColumns = []string{
	"id", "email", "password_hash", "organization",
	"webex_access_token", "webex_refresh_token", "webex_token_expires_at", "created_at",
}

// AccountRepository handles account database operations
type AccountRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an account and sets its ID and CreatedAt
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	sql, args, err := r.sb.Insert("accounts").
		Columns("email", "password_hash", "organization").
		Values(account.Email, account.PasswordHash, account.Organization).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create account SQL")
		return fmt.Errorf("failed to build create account query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "accounts_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", account.Email).Msg("Error executing create account query")
		return fmt.Errorf("error creating account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves an account by email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *AccountRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Account, error) {
	sql, args, err := r.sb.Select(accountColumns...).
		From("accounts").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get account SQL")
		return nil, fmt.Errorf("failed to build get account query: %w", err)
	}

	var a models.Account
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Organization,
		&a.WebexAccessToken, &a.WebexRefreshToken, &a.WebexTokenExpiresAt, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("account not found")
		}
		logger.Error().Err(err).Msg("Error scanning account row")
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}
	return &a, nil
}

// UpdateWebexTokens stores a fresh token set. A nil RefreshToken or
// ExpiresAt keeps the stored value.
func (r *AccountRepository) UpdateWebexTokens(ctx context.Context, accountID int64, tokens models.WebexTokens) error {
	return r.execAccountUpdate(ctx, r.webexTokensUpdate(accountID, tokens), accountID, "update webex tokens")
}

func (r *AccountRepository) webexTokensUpdate(accountID int64, tokens models.WebexTokens) squirrel.UpdateBuilder {
	q := r.sb.Update("accounts").
		Set("webex_access_token", tokens.AccessToken).
		Where(squirrel.Eq{"id": accountID})
	if tokens.RefreshToken != nil {
		q = q.Set("webex_refresh_token", *tokens.RefreshToken)
	}
	if tokens.ExpiresAt != nil {
		q = q.Set("webex_token_expires_at", *tokens.ExpiresAt)
	}
	return q
}

// ClearWebexTokens disconnects Webex from the account
func (r *AccountRepository) ClearWebexTokens(ctx context.Context, accountID int64) error {
	q := r.sb.Update("accounts").
		Set("webex_access_token", nil).
		Set("webex_refresh_token", nil).
		Set("webex_token_expires_at", nil).
		Where(squirrel.Eq{"id": accountID})

	return r.execAccountUpdate(ctx, q, accountID, "clear webex tokens")
}

func (r *AccountRepository) execAccountUpdate(ctx context.Context, q squirrel.UpdateBuilder, accountID int64, op string) error {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msgf("Error building %s SQL", op)
		return fmt.Errorf("failed to build %s query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("accountID", accountID).Msgf("Error executing %s query", op)
		return fmt.Errorf("error executing %s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("account not found")
	}
	return nil
}
