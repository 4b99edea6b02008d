// Package domain defines the core authentication domain entities and types.
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Global role names assigned to users at the workspace level.
// These are distinct from per-conversation membership roles.
const (
	GlobalRoleAdmin  = "ADMIN"
	GlobalRoleMember = "MEMBER"
)

// User represents an authenticated principal in the system.
// Username and Email are both unique identifiers; login accepts either.
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	Password       string
	Roles          []string
	IsActive       bool
	FailedAttempts int
	LockedUntil    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasGlobalRole reports whether the user holds the given global role.
func (u *User) HasGlobalRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// IsLocked reports whether the account is locked at the given instant.
// A nil LockedUntil or one in the past means the account is not locked.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}
