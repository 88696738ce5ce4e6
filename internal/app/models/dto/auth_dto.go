package dto

// RegisterRequest represents an account registration
type RegisterRequest struct {
	Email        string  `json:"email" binding:"required,email,max=255"`
	Password     string  `json:"password" binding:"required,strongpassword"`
	Organization *string `json:"organization" binding:"omitempty,max=255"`
}

// RegisterResponse carries the new account's ID
type RegisterResponse struct {
	AccountID int64 `json:"account_id"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries a refresh token for rotation
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest revokes a refresh token, or every session of its account
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
	AllDevices   bool   `json:"all_devices"`
}

// TokenResponse represents an issued token pair
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type" example:"Bearer"`
	ExpiresIn    int    `json:"expires_in"`
	AccountID    int64  `json:"account_id"`
}

// MeResponse is the caller's account with every classroom it owns
type MeResponse struct {
	Account    AccountData     `json:"account"`
	Classrooms []ClassroomData `json:"classrooms"`
}

// AccountData is the account section of MeResponse
type AccountData struct {
	ID            int64                  `json:"id"`
	Email         string                 `json:"email"`
	Organization  *string                `json:"organization"`
	Notifications []NotificationResponse `json:"notifications"`
	RecentCalls   []RecentCallData       `json:"recentCalls"`
}

// ClassroomData is one owned classroom with its friends and incoming requests
type ClassroomData struct {
	ID                     int64                  `json:"id"`
	Name                   string                 `json:"name"`
	Location               *string                `json:"location"`
	Latitude               *float64               `json:"latitude"`
	Longitude              *float64               `json:"longitude"`
	ClassSize              *int                   `json:"class_size"`
	Interests              []string               `json:"interests"`
	Availability           map[string]interface{} `json:"availability"`
	Friends                []FriendData           `json:"friends"`
	ReceivedFriendRequests []FriendRequestData    `json:"receivedFriendRequests"`
	RecentCalls            []RecentCallData       `json:"recent_calls"`
}

// RecentCallData is a call log entry. No call history is recorded, so the
// list is always empty.
type RecentCallData struct {
	ID            string `json:"id"`
	ClassroomID   string `json:"classroomId"`
	ClassroomName string `json:"classroomName"`
	Timestamp     string `json:"timestamp"`
	Duration      int    `json:"duration"`
	Type          string `json:"type"`
}
