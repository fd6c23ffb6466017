package domain

import "time"

// Session tracks one issued token. Revoking the session invalidates the
// token ahead of its natural expiry.
type Session struct {
	ID        string
	ActorRole ActorRole
	ActorID   string
	TokenHash string
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Live reports whether the session is usable at the given instant.
func (s *Session) Live(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
