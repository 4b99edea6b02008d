// Package domain defines conversation membership entities and role ordering.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/devsync/internal/errors"
)

// Role is a per-conversation membership role.
type Role string

// Membership roles, ordered ADMIN > MEMBER > GUEST.
const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
	RoleGuest  Role = "GUEST"
)

// roleLevels drives the "minimum role" ordering. Unknown roles map to zero
// and never satisfy any requirement.
var roleLevels = map[Role]int{
	RoleGuest:  1,
	RoleMember: 2,
	RoleAdmin:  3,
}

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Meets reports whether the role satisfies a minimum role requirement.
// ADMIN meets every requirement; GUEST meets only GUEST.
func (r Role) Meets(min Role) bool {
	level, ok := roleLevels[r]
	if !ok {
		return false
	}
	minLevel, ok := roleLevels[min]
	if !ok {
		return false
	}
	return level >= minLevel
}

// Membership assigns a role to a user on a conversation.
// Identity is the (ConversationID, UserID) pair: at most one membership
// per user per conversation.
type Membership struct {
	ConversationID uuid.UUID
	UserID         uuid.UUID
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Membership errors.
var (
	// ErrMembershipNotFound indicates no membership exists for the
	// (conversation, user) pair.
	ErrMembershipNotFound = errors.Wrap(errors.ErrNotFound, "membership not found")

	// ErrMembershipAlreadyExists indicates the user is already a member of
	// the conversation.
	ErrMembershipAlreadyExists = errors.Wrap(errors.ErrConflict, "membership already exists")

	// ErrInvalidRole indicates a role outside the enumerated set.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid membership role")
)
