package models

import "time"

// InvitationStatus is the state of a meeting invitation
type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationDeclined  InvitationStatus = "declined"
	InvitationCancelled InvitationStatus = "cancelled"
)

// MeetingInvitation proposes a meeting between two profiles
type MeetingInvitation struct {
	ID                int64            `json:"id"`
	SenderProfileID   int64            `json:"senderProfileId"`
	ReceiverProfileID int64            `json:"receiverProfileId"`
	Title             string           `json:"title"`
	StartTime         time.Time        `json:"startTime"`
	EndTime           time.Time        `json:"endTime"`
	Status            InvitationStatus `json:"status"`
	MeetingID         *int64           `json:"meetingId"`
	CreatedAt         time.Time        `json:"createdAt"`

	// Populated by lookups
	SenderName        string `json:"senderName,omitempty"`
	SenderAccountID   int64  `json:"-"`
	ReceiverName      string `json:"receiverName,omitempty"`
	ReceiverAccountID int64  `json:"-"`
}

// Meeting is a scheduled video call created from an accepted invitation
type Meeting struct {
	ID        int64     `json:"id"`
	WebexID   *string   `json:"webexId"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	WebLink   *string   `json:"webLink"`
	Password  *string   `json:"password"`
	CreatorID int64     `json:"creatorId"`
	CreatedAt time.Time `json:"createdAt"`

	// Populated by lookups
	CreatorName      string `json:"creatorName,omitempty"`
	CreatorAccountID int64  `json:"-"`
}
