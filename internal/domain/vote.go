package domain

import "time"

// VoteTarget distinguishes what a vote applies to.
type VoteTarget string

const (
	VoteTargetPost    VoteTarget = "POST"
	VoteTargetComment VoteTarget = "COMMENT"
)

// VoteValue is the member's stance: -1, 0 (retracted), or +1.
type VoteValue int

const (
	VoteDown VoteValue = -1
	VoteNone VoteValue = 0
	VoteUp   VoteValue = 1
)

// Vote records one member's current stance on one target.
// A member has at most one vote per target; casting again overwrites.
type Vote struct {
	ID         string
	MemberID   string
	TargetType VoteTarget
	TargetID   string
	Value      VoteValue
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
