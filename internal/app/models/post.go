package models

import "time"

// Post is a feed item authored by a profile
type Post struct {
	ID            int64     `json:"id"`
	ProfileID     int64     `json:"profileId"`
	Content       string    `json:"content"`
	ImageURL      *string   `json:"imageUrl"`
	Likes         int       `json:"likes"`
	CommentsCount int       `json:"comments"`
	QuotedPostID  *int64    `json:"quotedPostId"`
	CreatedAt     time.Time `json:"createdAt"`

	// Populated by feed queries
	AuthorName string      `json:"authorName"`
	IsLiked    bool        `json:"isLiked"`
	QuotedPost *QuotedPost `json:"quotedPost,omitempty"`
}

// QuotedPost is the shallow summary embedded in a quoting post
type QuotedPost struct {
	ID         int64   `json:"id"`
	AuthorName string  `json:"authorName"`
	Content    string  `json:"content"`
	ImageURL   *string `json:"imageUrl"`
}
