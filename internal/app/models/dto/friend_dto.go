package dto

// FriendRequestCreate submits a friend request to a classroom
type FriendRequestCreate struct {
	ClassroomID int64  `json:"classroomId" binding:"required,min=1"`
	ProfileID   *int64 `json:"profileId" binding:"omitempty,min=1"`
}

// FriendRequestResult reports how a submitted friend request resolved
type FriendRequestResult struct {
	Status    string `json:"status"`
	RequestID *int64 `json:"requestId,omitempty"`
}

// FriendData is a confirmed friend of a classroom
type FriendData struct {
	ID               int64   `json:"id"`
	ClassroomID      int64   `json:"classroomId"`
	ClassroomName    string  `json:"classroomName"`
	Location         *string `json:"location"`
	AddedDate        string  `json:"addedDate"`
	FriendshipStatus string  `json:"friendshipStatus"`
}

// FriendRequestData is a pending request addressed to a classroom
type FriendRequestData struct {
	ID         int64   `json:"id"`
	SenderID   int64   `json:"senderId"`
	SenderName string  `json:"senderName"`
	Location   *string `json:"location"`
	SentDate   string  `json:"sentDate"`
}

// FriendListResponse lists a classroom's friends
type FriendListResponse struct {
	Friends []FriendData `json:"friends"`
}
