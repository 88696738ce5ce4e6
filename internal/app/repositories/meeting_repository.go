package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

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

// MeetingRepository handles meeting invitations, meetings and participants
type MeetingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMeetingRepository creates a new MeetingRepository
func NewMeetingRepository(db *pgxpool.Pool) *MeetingRepository {
	return &MeetingRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *MeetingRepository) invitationSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"i.id", "i.sender_profile_id", "i.receiver_profile_id", "i.title", "i.start_time", "i.end_time",
		"i.status", "i.meeting_id", "i.created_at",
		"s.name", "s.account_id", "rc.name", "rc.account_id",
	).
		From("meeting_invitations i").
		Join("profiles s ON s.id = i.sender_profile_id").
		Join("profiles rc ON rc.id = i.receiver_profile_id")
}

func scanInvitation(row pgx.Row) (*models.MeetingInvitation, error) {
	var inv models.MeetingInvitation
	err := row.Scan(
		&inv.ID, &inv.SenderProfileID, &inv.ReceiverProfileID, &inv.Title, &inv.StartTime, &inv.EndTime,
		&inv.Status, &inv.MeetingID, &inv.CreatedAt,
		&inv.SenderName, &inv.SenderAccountID, &inv.ReceiverName, &inv.ReceiverAccountID,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// CreateInvitation stores a pending invitation and the receiver's
// notification in one transaction
func (r *MeetingRepository) CreateInvitation(ctx context.Context, inv *models.MeetingInvitation, notice *models.Notification) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("meeting_invitations").
			Columns("sender_profile_id", "receiver_profile_id", "title", "start_time", "end_time", "status").
			Values(inv.SenderProfileID, inv.ReceiverProfileID, inv.Title, inv.StartTime, inv.EndTime, models.InvitationPending).
			Suffix("RETURNING id, status, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create invitation query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&inv.ID, &inv.Status, &inv.CreatedAt); err != nil {
			if dberrors.IsForeignKeyViolation(err, "") {
				return apperrors.NewResourceNotFoundError("classroom not found")
			}
			return fmt.Errorf("error creating invitation: %w", err)
		}

		domain.SetRelatedID(notice, inv.ID)
		return insertNotification(ctx, tx, r.sb, notice)
	})
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		logger.Error().Err(err).Int64("senderID", inv.SenderProfileID).Msg("Error creating meeting invitation")
	}
	return err
}

// GetInvitation retrieves an invitation with both parties' names and accounts
func (r *MeetingRepository) GetInvitation(ctx context.Context, id int64) (*models.MeetingInvitation, error) {
	sql, args, err := r.invitationSelect().Where(squirrel.Eq{"i.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get invitation SQL")
		return nil, fmt.Errorf("failed to build get invitation query: %w", err)
	}

	inv, err := scanInvitation(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("invitation not found")
		}
		logger.Error().Err(err).Int64("invitationID", id).Msg("Error scanning invitation row")
		return nil, fmt.Errorf("error retrieving invitation: %w", err)
	}
	return inv, nil
}

// ListPendingReceived returns pending invitations addressed to the account's profiles, newest first
func (r *MeetingRepository) ListPendingReceived(ctx context.Context, accountID int64) ([]*models.MeetingInvitation, error) {
	return r.listInvitations(ctx, squirrel.Eq{"rc.account_id": accountID, "i.status": models.InvitationPending})
}

// ListPendingSent returns pending invitations sent from the account's profiles, newest first
func (r *MeetingRepository) ListPendingSent(ctx context.Context, accountID int64) ([]*models.MeetingInvitation, error) {
	return r.listInvitations(ctx, squirrel.Eq{"s.account_id": accountID, "i.status": models.InvitationPending})
}

func (r *MeetingRepository) listInvitations(ctx context.Context, where squirrel.Eq) ([]*models.MeetingInvitation, error) {
	sql, args, err := r.invitationSelect().
		Where(where).
		OrderBy("i.created_at DESC", "i.id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list invitations SQL")
		return nil, fmt.Errorf("failed to build list invitations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list invitations query")
		return nil, fmt.Errorf("error listing invitations: %w", err)
	}
	defer rows.Close()

	invitations := []*models.MeetingInvitation{}
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning invitation row")
			return nil, fmt.Errorf("error scanning invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invitations: %w", err)
	}
	return invitations, nil
}

// guardedTransition moves a pending invitation to status. Zero rows updated
// means another request got there first.
func (r *MeetingRepository) guardedTransition(ctx context.Context, q querier, id int64, status models.InvitationStatus, meetingID *int64) error {
	upd := r.sb.Update("meeting_invitations").
		Set("status", status).
		Where(squirrel.Eq{"id": id, "status": models.InvitationPending})
	if meetingID != nil {
		upd = upd.Set("meeting_id", *meetingID)
	}

	sql, args, err := upd.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build invitation transition query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating invitation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("invitation is no longer pending")
	}
	return nil
}

// UpdateInvitationStatus applies a decline or cancel and notifies the other
// party in one transaction
func (r *MeetingRepository) UpdateInvitationStatus(ctx context.Context, id int64, status models.InvitationStatus, notice *models.Notification) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.guardedTransition(ctx, tx, id, status, nil); err != nil {
			return err
		}
		return insertNotification(ctx, tx, r.sb, notice)
	})
	if err != nil && !errors.Is(err, apperrors.ErrConflict) {
		logger.Error().Err(err).Int64("invitationID", id).Str("status", string(status)).Msg("Error updating invitation status")
	}
	return err
}

// AcceptInvitation stores the meeting created for inv, adds the receiver as
// participant, marks the invitation accepted and notifies the sender, all in
// one transaction. meeting.ID and meeting.CreatedAt are set on success.
func (r *MeetingRepository) AcceptInvitation(ctx context.Context, inv *models.MeetingInvitation, meeting *models.Meeting, notice *models.Notification) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("meetings").
			Columns("webex_id", "title", "start_time", "end_time", "web_link", "password", "creator_id").
			Values(meeting.WebexID, meeting.Title, meeting.StartTime, meeting.EndTime, meeting.WebLink, meeting.Password, meeting.CreatorID).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create meeting query: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&meeting.ID, &meeting.CreatedAt); err != nil {
			return fmt.Errorf("error creating meeting: %w", err)
		}

		sql, args, err = r.sb.Insert("meeting_participants").
			Columns("meeting_id", "profile_id").
			Values(meeting.ID, inv.ReceiverProfileID).
			Suffix("ON CONFLICT DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build add participant query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error adding meeting participant: %w", err)
		}

		if err := r.guardedTransition(ctx, tx, inv.ID, models.InvitationAccepted, &meeting.ID); err != nil {
			return err
		}
		return insertNotification(ctx, tx, r.sb, notice)
	})
	if err != nil && !errors.Is(err, apperrors.ErrConflict) {
		logger.Error().Err(err).Int64("invitationID", inv.ID).Msg("Error accepting invitation")
	}
	return err
}

func (r *MeetingRepository) meetingSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"m.id", "m.webex_id", "m.title", "m.start_time", "m.end_time", "m.web_link", "m.password",
		"m.creator_id", "m.created_at", "c.name", "c.account_id",
	).
		From("meetings m").
		Join("profiles c ON c.id = m.creator_id")
}

func scanMeeting(row pgx.Row) (*models.Meeting, error) {
	var m models.Meeting
	err := row.Scan(
		&m.ID, &m.WebexID, &m.Title, &m.StartTime, &m.EndTime, &m.WebLink, &m.Password,
		&m.CreatorID, &m.CreatedAt, &m.CreatorName, &m.CreatorAccountID,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMeeting retrieves a meeting with its creator's name and account
func (r *MeetingRepository) GetMeeting(ctx context.Context, id int64) (*models.Meeting, error) {
	sql, args, err := r.meetingSelect().Where(squirrel.Eq{"m.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get meeting SQL")
		return nil, fmt.Errorf("failed to build get meeting query: %w", err)
	}

	m, err := scanMeeting(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("meeting not found")
		}
		logger.Error().Err(err).Int64("meetingID", id).Msg("Error scanning meeting row")
		return nil, fmt.Errorf("error retrieving meeting: %w", err)
	}
	return m, nil
}

// IsParticipant reports whether one of the account's profiles participates in the meeting
func (r *MeetingRepository) IsParticipant(ctx context.Context, meetingID, accountID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("meeting_participants mp").
		Join("profiles p ON p.id = mp.profile_id").
		Where(squirrel.Eq{"mp.meeting_id": meetingID, "p.account_id": accountID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building is participant SQL")
		return false, fmt.Errorf("failed to build is participant query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Int64("meetingID", meetingID).Msg("Error executing is participant query")
		return false, fmt.Errorf("error checking participant: %w", err)
	}
	return exists, nil
}

// UpdateMeetingTimes persists a reschedule
func (r *MeetingRepository) UpdateMeetingTimes(ctx context.Context, id int64, start, end time.Time) error {
	sql, args, err := r.sb.Update("meetings").
		Set("start_time", start).
		Set("end_time", end).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update meeting SQL")
		return fmt.Errorf("failed to build update meeting query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("meetingID", id).Msg("Error executing update meeting query")
		return fmt.Errorf("error updating meeting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("meeting not found")
	}
	return nil
}

// DeleteMeeting removes a meeting. Participants cascade and invitations keep
// their history with meeting_id cleared.
func (r *MeetingRepository) DeleteMeeting(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("meetings").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete meeting SQL")
		return fmt.Errorf("failed to build delete meeting query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("meetingID", id).Msg("Error executing delete meeting query")
		return fmt.Errorf("error deleting meeting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("meeting not found")
	}
	return nil
}

// ListUpcoming returns meetings starting at or after from that the account's
// profiles created or joined, each once, earliest first
func (r *MeetingRepository) ListUpcoming(ctx context.Context, accountID int64, from time.Time) ([]*models.Meeting, error) {
	sql, args, err := r.meetingSelect().
		Where(squirrel.GtOrEq{"m.start_time": from}).
		Where(squirrel.Or{
			squirrel.Eq{"c.account_id": accountID},
			squirrel.Expr(`EXISTS (SELECT 1 FROM meeting_participants mp
				JOIN profiles pp ON pp.id = mp.profile_id
				WHERE mp.meeting_id = m.id AND pp.account_id = ?)`, accountID),
		}).
		OrderBy("m.start_time ASC", "m.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list upcoming meetings SQL")
		return nil, fmt.Errorf("failed to build list upcoming meetings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("accountID", accountID).Msg("Error executing list upcoming meetings query")
		return nil, fmt.Errorf("error listing meetings: %w", err)
	}
	defer rows.Close()

	meetings := []*models.Meeting{}
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning meeting row")
			return nil, fmt.Errorf("error scanning meeting: %w", err)
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meetings: %w", err)
	}
	return meetings, nil
}
