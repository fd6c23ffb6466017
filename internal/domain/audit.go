package domain

import "time"

// AuditEntry is an append-only record of a platform action.
type AuditEntry struct {
	ID         string
	Action     string
	ActorRole  ActorRole
	ActorID    string
	TargetType string
	TargetID   string
	Detail     map[string]any
	CreatedAt  time.Time
}
