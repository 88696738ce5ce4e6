package dto

import (
	"bytes"
	"encoding/json"
)

// CreateInvitationRequest invites a classroom to a meeting. classroom_id may
// arrive as a number or a string.
type CreateInvitationRequest struct {
	ClassroomID json.RawMessage `json:"classroom_id"`
	Title       *string         `json:"title" binding:"omitempty,max=255"`
	StartTime   *string         `json:"start_time"`
	EndTime     *string         `json:"end_time"`
	ProfileID   *int64          `json:"profileId" binding:"omitempty,min=1"`
}

// ClassroomRef returns classroom_id as text, unquoting JSON strings. It is
// empty when the field is absent or null.
func (r *CreateInvitationRequest) ClassroomRef() string {
	raw := bytes.TrimSpace(r.ClassroomID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// InvitationCreatedResponse is returned when an invitation is created
type InvitationCreatedResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

// InvitationResponse is an invitation in a list
type InvitationResponse struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SenderName   string `json:"sender_name,omitempty"`
	ReceiverName string `json:"receiver_name,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// InvitationListResponse lists invitations received
type InvitationListResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
}

// SentInvitationListResponse lists invitations sent
type SentInvitationListResponse struct {
	SentInvitations []InvitationResponse `json:"sent_invitations"`
}

// InvitationStatusResponse reports an invitation's status after a decline or cancel
type InvitationStatusResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// MeetingSummary is the meeting created by an accepted invitation
type MeetingSummary struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	WebLink   *string `json:"web_link"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Password  *string `json:"password"`
}

// AcceptInvitationResponse wraps the created meeting
type AcceptInvitationResponse struct {
	Meeting MeetingSummary `json:"meeting"`
}

// MeetingResponse is a meeting as seen by one of its parties
type MeetingResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	WebLink     *string `json:"web_link"`
	Password    *string `json:"password"`
	CreatorName string  `json:"creator_name"`
	IsCreator   bool    `json:"is_creator"`
}

// MeetingListResponse lists upcoming meetings
type MeetingListResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
}

// UpdateMeetingRequest reschedules a meeting; absent times are unchanged
type UpdateMeetingRequest struct {
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// WebexAuthURLResponse carries the OAuth authorize URL
type WebexAuthURLResponse struct {
	URL string `json:"url"`
}

// WebexConnectRequest carries the OAuth authorization code
type WebexConnectRequest struct {
	Code string `json:"code" binding:"required"`
}

// WebexStatusResponse reports whether Webex is connected
type WebexStatusResponse struct {
	Connected bool `json:"connected"`
}
