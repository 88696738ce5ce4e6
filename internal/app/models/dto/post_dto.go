package dto

// CreatePostRequest creates a feed post
type CreatePostRequest struct {
	Content      string  `json:"content" binding:"required"`
	ImageURL     *string `json:"imageUrl" binding:"omitempty,url"`
	QuotedPostID *int64  `json:"quotedPostId" binding:"omitempty,min=1"`
	ProfileID    *int64  `json:"profileId" binding:"omitempty,min=1"`
}

// PostResponse is a feed item
type PostResponse struct {
	ID         int64               `json:"id"`
	AuthorID   int64               `json:"authorId"`
	AuthorName string              `json:"authorName"`
	Content    string              `json:"content"`
	ImageURL   *string             `json:"imageUrl"`
	Timestamp  string              `json:"timestamp"`
	Likes      int                 `json:"likes"`
	Comments   int                 `json:"comments"`
	IsLiked    bool                `json:"isLiked"`
	QuotedPost *QuotedPostResponse `json:"quotedPost,omitempty"`
}

// QuotedPostResponse is the summary of a quoted post
type QuotedPostResponse struct {
	ID         int64   `json:"id"`
	AuthorName string  `json:"authorName"`
	Content    string  `json:"content"`
	ImageURL   *string `json:"imageUrl"`
}

// PostListResponse is the feed
type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
}

// LikeResponse reports a post's like count after a like or unlike
type LikeResponse struct {
	Likes int `json:"likes"`
}
