package events

import (
	"time"

	"github.com/spec-kit/community-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventGuestJoined      EventType = "guest_joined"
	EventMemberRegistered EventType = "member_registered"
	EventSessionOpened    EventType = "session_opened"
	EventSessionRevoked   EventType = "session_revoked"
	EventCommunityCreated EventType = "community_created"
	EventCommunityDeleted EventType = "community_deleted"
	EventPostCreated      EventType = "post_created"
	EventPostDeleted      EventType = "post_deleted"
	EventCommentCreated   EventType = "comment_created"
	EventCommentDeleted   EventType = "comment_deleted"
	EventVoteCast         EventType = "vote_cast"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role domain.ActorRole `json:"role"`
	ID   string           `json:"id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Actor      Actor     `json:"actor"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// PostCreatedPayload payload.
type PostCreatedPayload struct {
	CommunityID string `json:"community_id"`
	Title       string `json:"title"`
}

// CommentCreatedPayload payload.
type CommentCreatedPayload struct {
	PostID   string  `json:"post_id"`
	ParentID *string `json:"parent_id,omitempty"`
}

// VoteCastPayload payload.
type VoteCastPayload struct {
	TargetType domain.VoteTarget `json:"target_type"`
	Value      domain.VoteValue  `json:"value"`
}

// CommunityCreatedPayload payload.
type CommunityCreatedPayload struct {
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

// SessionPayload payload for session open/revoke events.
type SessionPayload struct {
	SessionID string `json:"session_id"`
}
