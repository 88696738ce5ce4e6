package models

import "time"

// FriendRequestStatus is the state of a friend request
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// RelationAccepted is the only status relations are created with
const RelationAccepted = "accepted"

// Relation is one direction of a confirmed friendship
type Relation struct {
	ID            int64     `json:"id"`
	FromProfileID int64     `json:"fromProfileId"`
	ToProfileID   int64     `json:"toProfileId"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FriendRequest is a friendship proposal between two profiles
type FriendRequest struct {
	ID                int64               `json:"id"`
	SenderProfileID   int64               `json:"senderProfileId"`
	ReceiverProfileID int64               `json:"receiverProfileId"`
	Status            FriendRequestStatus `json:"status"`
	CreatedAt         time.Time           `json:"createdAt"`

	// Populated by listing queries
	SenderName     string  `json:"senderName,omitempty"`
	SenderLocation *string `json:"senderLocation,omitempty"`
}

// Friend is a profile reachable through an accepted relation
type Friend struct {
	RelationID int64     `json:"relationId"`
	ProfileID  int64     `json:"profileId"`
	Name       string    `json:"name"`
	Location   *string   `json:"location"`
	Since      time.Time `json:"since"`
}
