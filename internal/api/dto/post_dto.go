package dto

// PostCreateRequest payload for submitting a post.
type PostCreateRequest struct {
	CommunityID string `json:"community_id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}

// PostUpdateRequest payload for editing a post.
type PostUpdateRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CommentCreateRequest payload for replying to a post.
type CommentCreateRequest struct {
	ParentID *string `json:"parent_id,omitempty"`
	Body     string  `json:"body"`
}

// VoteRequest payload for casting a vote.
type VoteRequest struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Value      int    `json:"value"`
}
