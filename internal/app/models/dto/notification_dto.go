package dto

// NotificationResponse represents a notification
type NotificationResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Type      string  `json:"type"`
	Read      bool    `json:"read"`
	RelatedID *string `json:"relatedId,omitempty"`
	Timestamp string  `json:"timestamp"`
}

// NotificationListResponse lists the caller's notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}
