package domain

import "time"

// Community is a topic space members create posts in.
type Community struct {
	ID          string
	Name        string
	CategoryID  string
	Description string
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Category is a fixed classification a community belongs to.
type Category struct {
	ID          string
	Name        string
	DisplayName string
	SortOrder   int
}
