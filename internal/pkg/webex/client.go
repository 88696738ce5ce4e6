// Package webex is a small client for the Webex OAuth and meetings REST API.
package webex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Webex expects meeting times without fractional seconds
const timeLayout = "2006-01-02T15:04:05Z"

// Config holds the OAuth client registration and endpoints
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthURL      string
	APIBaseURL   string
	Scopes       string
	Timeout      time.Duration
}

// TokenGrant is the token payload returned by code exchange and refresh.
// RefreshToken may be empty when the provider keeps the previous one valid.
type TokenGrant struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Meeting is the subset of the Webex meeting resource the backend stores
type Meeting struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	WebLink  string `json:"webLink"`
	Password string `json:"password"`
}

// APIError is a non-2xx answer from Webex
type APIError struct {
	StatusCode int
	Message    string
	TrackingID string
}

func (e *APIError) Error() string {
	if e.TrackingID != "" {
		return fmt.Sprintf("webex api error %d: %s (trackingId %s)", e.StatusCode, e.Message, e.TrackingID)
	}
	return fmt.Sprintf("webex api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the Webex REST API
type Client struct {
	cfg    Config
	http   *http.Client
	logger zerolog.Logger
}

// NewClient creates a Webex client. A zero Timeout means 15 seconds.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger.With().Str("component", "webex").Logger(),
	}
}

// AuthURL builds the OAuth authorize URL users are redirected to
func (c *Client) AuthURL() string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("scope", c.cfg.Scopes)
	return c.cfg.AuthURL + "?" + q.Encode()
}

// ExchangeCode trades an authorization code for tokens
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenGrant, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)
	return c.requestToken(ctx, form)
}

// RefreshToken obtains a new access token from a refresh token
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenGrant, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("refresh_token", refreshToken)
	return c.requestToken(ctx, form)
}

func (c *Client) requestToken(ctx context.Context, form url.Values) (*TokenGrant, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIBaseURL+"/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var grant TokenGrant
	if err := c.do(req, &grant); err != nil {
		return nil, err
	}
	if grant.AccessToken == "" {
		return nil, fmt.Errorf("webex token response missing access_token")
	}
	return &grant, nil
}

type meetingRequest struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// CreateMeeting schedules a meeting on behalf of the token's owner
func (c *Client) CreateMeeting(ctx context.Context, accessToken, title string, start, end time.Time) (*Meeting, error) {
	req, err := c.jsonRequest(ctx, http.MethodPost, "/meetings", accessToken, meetingRequest{
		Title: title,
		Start: start.UTC().Format(timeLayout),
		End:   end.UTC().Format(timeLayout),
	})
	if err != nil {
		return nil, err
	}

	var meeting Meeting
	if err := c.do(req, &meeting); err != nil {
		return nil, err
	}
	c.logger.Debug().Str("meetingId", meeting.ID).Msg("Webex meeting created")
	return &meeting, nil
}

// UpdateMeeting reschedules an existing meeting
func (c *Client) UpdateMeeting(ctx context.Context, accessToken, meetingID, title string, start, end time.Time) error {
	req, err := c.jsonRequest(ctx, http.MethodPut, "/meetings/"+url.PathEscape(meetingID), accessToken, meetingRequest{
		Title: title,
		Start: start.UTC().Format(timeLayout),
		End:   end.UTC().Format(timeLayout),
	})
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// DeleteMeeting removes a meeting. A meeting that is already gone counts as deleted.
func (c *Client) DeleteMeeting(ctx context.Context, accessToken, meetingID string) error {
	req, err := c.jsonRequest(ctx, http.MethodDelete, "/meetings/"+url.PathEscape(meetingID), accessToken, nil)
	if err != nil {
		return err
	}

	err = c.do(req, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		c.logger.Warn().Str("meetingId", meetingID).Msg("Webex meeting already deleted")
		return nil
	}
	return err
}

func (c *Client) jsonRequest(ctx context.Context, method, path, accessToken string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode webex request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIBaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build webex request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("webex request %s %s failed: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			TrackingID: resp.Header.Get("TrackingID"),
		}
		var body struct {
			Message          string `json:"message"`
			ErrorDescription string `json:"error_description"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, &body) == nil {
			apiErr.Message = body.Message
			if apiErr.Message == "" {
				apiErr.Message = body.ErrorDescription
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		c.logger.Warn().Int("status", resp.StatusCode).Str("path", req.URL.Path).Str("trackingId", apiErr.TrackingID).Msg("Webex request rejected")
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode webex response: %w", err)
	}
	return nil
}
