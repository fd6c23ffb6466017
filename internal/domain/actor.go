package domain

import "time"

// ActorRole is the discriminator carried inside issued tokens.
type ActorRole string

const (
	RoleGuestUser  ActorRole = "guestUser"
	RoleMemberUser ActorRole = "memberUser"
	RoleAdminUser  ActorRole = "adminUser"
)

// Valid reports whether the role is one of the known discriminators.
func (r ActorRole) Valid() bool {
	switch r {
	case RoleGuestUser, RoleMemberUser, RoleAdminUser:
		return true
	}
	return false
}

// Label returns the human-readable form used in rejection messages.
func (r ActorRole) Label() string {
	switch r {
	case RoleGuestUser:
		return "guest user"
	case RoleMemberUser:
		return "member user"
	case RoleAdminUser:
		return "admin user"
	}
	return string(r)
}

// AuthorizedPayload is the validated identity a guard hands to handlers.
// It lives only for the request that produced it.
type AuthorizedPayload struct {
	ID   string    `json:"id"`
	Type ActorRole `json:"type"`
}

// GuestUser is an anonymous browsing account created on first visit.
type GuestUser struct {
	ID        string
	CreatedAt time.Time
	DeletedAt *time.Time
}

// MemberUser is a registered account that can create content and vote.
type MemberUser struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// AdminUser operates moderation and platform administration.
type AdminUser struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
