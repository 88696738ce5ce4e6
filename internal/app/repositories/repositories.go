package repositories

import (
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	AccountRepository      *AccountRepository
	TokenRepository        *TokenRepository
	ProfileRepository      *ProfileRepository
	FriendRepository       *FriendRepository
	NotificationRepository *NotificationRepository
	PostRepository         *PostRepository
	MeetingRepository      *MeetingRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AccountRepository:      NewAccountRepository(db),
		TokenRepository:        NewTokenRepository(db),
		ProfileRepository:      NewProfileRepository(db),
		FriendRepository:       NewFriendRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		PostRepository:         NewPostRepository(db),
		MeetingRepository:      NewMeetingRepository(db),
	}
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
