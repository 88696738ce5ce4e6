package models

import "time"

// Account is a login identity. It owns zero or more classroom profiles and
// optionally holds the Webex OAuth tokens used to schedule meetings.
type Account struct {
	ID                  int64      `json:"id"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	Organization        *string    `json:"organization"`
	WebexAccessToken    *string    `json:"-"`
	WebexRefreshToken   *string    `json:"-"`
	WebexTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// HasWebexToken reports whether the account has connected Webex
func (a *Account) HasWebexToken() bool {
	return a.WebexAccessToken != nil && *a.WebexAccessToken != ""
}

// WebexTokenExpired reports whether the stored access token is past its expiry.
// A token without a recorded expiry is treated as valid.
func (a *Account) WebexTokenExpired(now time.Time) bool {
	return a.WebexTokenExpiresAt != nil && a.WebexTokenExpiresAt.Before(now)
}

// WebexTokens is the token triple persisted after a code exchange or refresh
type WebexTokens struct {
	AccessToken  string
	RefreshToken *string
	ExpiresAt    *time.Time
}
