package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/logger"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var profileColumns = []string{
	"id", "account_id", "name", "location", "latitude", "longitude",
	"class_size", "interests", "availability", "created_at",
}

// ProfileRepository handles classroom profile database operations
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.AccountID, &p.Name, &p.Location, &p.Latitude, &p.Longitude,
		&p.ClassSize, &p.Interests, &p.Availability, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	normalizeProfileJSON(&p)
	return &p, nil
}

func normalizeProfileJSON(p *models.Profile) {
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.Availability == nil {
		p.Availability = map[string]interface{}{}
	}
}

// Create inserts a profile and sets its ID and CreatedAt
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	normalizeProfileJSON(profile)

	sql, args, err := r.sb.Insert("profiles").
		Columns("account_id", "name", "location", "latitude", "longitude", "class_size", "interests", "availability").
		Values(profile.AccountID, profile.Name, profile.Location, profile.Latitude, profile.Longitude,
			profile.ClassSize, profile.Interests, profile.Availability).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create profile SQL")
		return fmt.Errorf("failed to build create profile query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&profile.ID, &profile.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("accountID", profile.AccountID).Msg("Error executing create profile query")
		return fmt.Errorf("error creating profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	sql, args, err := r.sb.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get profile SQL")
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("classroom not found")
		}
		logger.Error().Err(err).Int64("profileID", id).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	return p, nil
}

// ListByAccount returns the account's profiles ordered by ID
func (r *ProfileRepository) ListByAccount(ctx context.Context, accountID int64) ([]*models.Profile, error) {
	sql, args, err := r.sb.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list profiles SQL")
		return nil, fmt.Errorf("failed to build list profiles query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("accountID", accountID).Msg("Error executing list profiles query")
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}
	defer rows.Close()

	profiles := []*models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning profile row")
			return nil, fmt.Errorf("error scanning profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}
	return profiles, nil
}

// FirstByAccount returns the account's lowest-ID profile
func (r *ProfileRepository) FirstByAccount(ctx context.Context, accountID int64) (*models.Profile, error) {
	sql, args, err := r.sb.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building first profile SQL")
		return nil, fmt.Errorf("failed to build first profile query: %w", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("account has no classroom")
		}
		logger.Error().Err(err).Int64("accountID", accountID).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	return p, nil
}

// Update applies the non-nil fields of upd and returns the stored profile
func (r *ProfileRepository) Update(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.Profile, error) {
	if upd.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	q := r.sb.Update("profiles").Where(squirrel.Eq{"id": id})
	if upd.Name != nil {
		q = q.Set("name", *upd.Name)
	}
	if upd.Location != nil {
		q = q.Set("location", *upd.Location)
	}
	if upd.Latitude != nil {
		q = q.Set("latitude", *upd.Latitude)
	}
	if upd.Longitude != nil {
		q = q.Set("longitude", *upd.Longitude)
	}
	if upd.ClassSize != nil {
		q = q.Set("class_size", *upd.ClassSize)
	}
	if upd.Interests != nil {
		interests := *upd.Interests
		if interests == nil {
			interests = []string{}
		}
		q = q.Set("interests", interests)
	}
	if upd.Availability != nil {
		availability := *upd.Availability
		if availability == nil {
			availability = map[string]interface{}{}
		}
		q = q.Set("availability", availability)
	}

	sql, args, err := q.Suffix("RETURNING " + joinColumns(profileColumns)).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile SQL")
		return nil, fmt.Errorf("failed to build update profile query: %w", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("classroom not found")
		}
		logger.Error().Err(err).Int64("profileID", id).Msg("Error executing update profile query")
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return p, nil
}

// Delete removes a profile. Relations, requests, posts and meetings it owns cascade.
func (r *ProfileRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("profiles").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete profile SQL")
		return fmt.Errorf("failed to build delete profile query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("profileID", id).Msg("Error executing delete profile query")
		return fmt.Errorf("error deleting profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("classroom not found")
	}
	return nil
}
