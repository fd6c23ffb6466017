package dto

// CommunityCreateRequest payload for creating a community.
type CommunityCreateRequest struct {
	Name        string `json:"name"`
	CategoryID  string `json:"category_id"`
	Description string `json:"description"`
}

// CommunityUpdateRequest payload for editing a community.
type CommunityUpdateRequest struct {
	Description string `json:"description"`
}
