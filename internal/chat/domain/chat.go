// Package domain defines the chat domain entities: conversations, channels, and messages.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/devsync/internal/errors"
)

// Conversation is a private discussion with explicit per-user memberships.
// Access is governed by membership roles, not global roles.
type Conversation struct {
	ID        uuid.UUID
	Name      string
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Channel is a workspace-level discussion surface. Channel administration is
// gated on global roles, unlike conversations.
type Channel struct {
	ID        uuid.UUID
	Name      string
	Topic     string
	IsPrivate bool
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is a single post in a conversation.
type Message struct {
	ID             uuid.UUID
	ConversationID uuid.UUID
	SenderID       uuid.UUID
	Content        string
	CreatedAt      time.Time
}

// Chat errors.
var (
	// ErrConversationNotFound indicates the requested conversation does not exist.
	ErrConversationNotFound = errors.Wrap(errors.ErrNotFound, "conversation not found")

	// ErrChannelNotFound indicates the requested channel does not exist.
	ErrChannelNotFound = errors.Wrap(errors.ErrNotFound, "channel not found")

	// ErrChannelAlreadyExists indicates a channel with the same name already exists.
	ErrChannelAlreadyExists = errors.Wrap(errors.ErrConflict, "channel already exists")

	// ErrMessageNotFound indicates the requested message does not exist.
	ErrMessageNotFound = errors.Wrap(errors.ErrNotFound, "message not found")
)
