package repositories

import (
	"context"
	"time"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
)

// IAccountRepository defines account persistence
type IAccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	UpdateWebexTokens(ctx context.Context, accountID int64, tokens models.WebexTokens) error
	ClearWebexTokens(ctx context.Context, accountID int64) error
}

// ITokenRepository defines refresh token persistence
type ITokenRepository interface {
	CreateToken(ctx context.Context, token string, accountID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllAccountTokens(ctx context.Context, accountID int64) error
}

// IProfileRepository defines classroom profile persistence
type IProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
	ListByAccount(ctx context.Context, accountID int64) ([]*models.Profile, error)
	FirstByAccount(ctx context.Context, accountID int64) (*models.Profile, error)
	Update(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.Profile, error)
	Delete(ctx context.Context, id int64) error
}

// IFriendRepository defines the social graph persistence
type IFriendRepository interface {
	AreFriends(ctx context.Context, a, b int64) (bool, error)
	PendingRequestID(ctx context.Context, senderID, receiverID int64) (*int64, error)
	GetRequestByID(ctx context.Context, id int64) (*models.FriendRequest, error)
	CreatePendingRequest(ctx context.Context, senderID, receiverID int64, notice *models.Notification) (*models.FriendRequest, error)
	AcceptRequest(ctx context.Context, requestID int64, notice *models.Notification) error
	RejectRequest(ctx context.Context, requestID int64) error
	ListFriends(ctx context.Context, profileID int64) ([]*models.Friend, error)
	ListPendingReceived(ctx context.Context, profileID int64) ([]*models.FriendRequest, error)
	DeleteFriendship(ctx context.Context, a, b int64) error
}

// INotificationRepository defines notification persistence
type INotificationRepository interface {
	ListByAccount(ctx context.Context, accountID int64) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, accountID int64) error
	Delete(ctx context.Context, id, accountID int64) error
}

// IPostRepository defines feed persistence
type IPostRepository interface {
	List(ctx context.Context, viewerID *int64) ([]*models.Post, error)
	GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	SetLike(ctx context.Context, postID, accountID int64, want bool) (int, error)
	Delete(ctx context.Context, id int64) error
}

// IMeetingRepository defines invitation and meeting persistence
type IMeetingRepository interface {
	CreateInvitation(ctx context.Context, inv *models.MeetingInvitation, notice *models.Notification) error
	GetInvitation(ctx context.Context, id int64) (*models.MeetingInvitation, error)
	ListPendingReceived(ctx context.Context, accountID int64) ([]*models.MeetingInvitation, error)
	ListPendingSent(ctx context.Context, accountID int64) ([]*models.MeetingInvitation, error)
	UpdateInvitationStatus(ctx context.Context, id int64, status models.InvitationStatus, notice *models.Notification) error
	AcceptInvitation(ctx context.Context, inv *models.MeetingInvitation, meeting *models.Meeting, notice *models.Notification) error
	GetMeeting(ctx context.Context, id int64) (*models.Meeting, error)
	IsParticipant(ctx context.Context, meetingID, accountID int64) (bool, error)
	UpdateMeetingTimes(ctx context.Context, id int64, start, end time.Time) error
	DeleteMeeting(ctx context.Context, id int64) error
	ListUpcoming(ctx context.Context, accountID int64, from time.Time) ([]*models.Meeting, error)
}

var (
	_ IAccountRepository      = (*AccountRepository)(nil)
	_ ITokenRepository        = (*TokenRepository)(nil)
	_ IProfileRepository      = (*ProfileRepository)(nil)
	_ IFriendRepository       = (*FriendRepository)(nil)
	_ INotificationRepository = (*NotificationRepository)(nil)
	_ IPostRepository         = (*PostRepository)(nil)
	_ IMeetingRepository      = (*MeetingRepository)(nil)
)
