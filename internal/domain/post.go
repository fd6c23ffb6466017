package domain

import "time"

// Post is a member submission inside a community.
type Post struct {
	ID          string
	CommunityID string
	AuthorID    string
	Title       string
	Body        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Comment is a reply to a post, optionally nested under another comment.
type Comment struct {
	ID        string
	PostID    string
	ParentID  *string
	AuthorID  string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
