package models

import "time"

// Notification types emitted by the social and scheduling workflows
const (
	NotificationInfo                  = "info"
	NotificationSuccess               = "success"
	NotificationWarning               = "warning"
	NotificationFriendRequestReceived = "friend_request_received"
	NotificationMeetingInvitation     = "meeting_invitation"
)

// Notification is an account-scoped message
type Notification struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"accountId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	RelatedID *string   `json:"relatedId"`
	CreatedAt time.Time `json:"createdAt"`
}
