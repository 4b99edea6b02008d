package dto

import (
	"time"

	chatDomain "github.com/allisson/devsync/internal/chat/domain"
	membershipDomain "github.com/allisson/devsync/internal/membership/domain"
)

// ConversationResponse represents a conversation in API responses.
type ConversationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapConversationToResponse converts a domain conversation to an API response.
func MapConversationToResponse(conversation *chatDomain.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:        conversation.ID.String(),
		Name:      conversation.Name,
		CreatedBy: conversation.CreatedBy.String(),
		CreatedAt: conversation.CreatedAt,
		UpdatedAt: conversation.UpdatedAt,
	}
}

// MapConversationsToResponse converts a list of domain conversations to API responses.
func MapConversationsToResponse(conversations []*chatDomain.Conversation) []ConversationResponse {
	responses := make([]ConversationResponse, len(conversations))
	for i, conversation := range conversations {
		responses[i] = MapConversationToResponse(conversation)
	}
	return responses
}

// MemberResponse represents a conversation member in API responses.
type MemberResponse struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// MapMembersToResponse converts domain memberships to API responses.
func MapMembersToResponse(members []*membershipDomain.Membership) []MemberResponse {
	responses := make([]MemberResponse, len(members))
	for i, member := range members {
		responses[i] = MemberResponse{
			UserID:    member.UserID.String(),
			Role:      string(member.Role),
			CreatedAt: member.CreatedAt,
		}
	}
	return responses
}

// MessageResponse represents a message in API responses.
type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// MapMessageToResponse converts a domain message to an API response.
func MapMessageToResponse(message *chatDomain.Message) MessageResponse {
	return MessageResponse{
		ID:             message.ID.String(),
		ConversationID: message.ConversationID.String(),
		SenderID:       message.SenderID.String(),
		Content:        message.Content,
		CreatedAt:      message.CreatedAt,
	}
}

// MapMessagesToResponse converts a list of domain messages to API responses.
func MapMessagesToResponse(messages []*chatDomain.Message) []MessageResponse {
	responses := make([]MessageResponse, len(messages))
	for i, message := range messages {
		responses[i] = MapMessageToResponse(message)
	}
	return responses
}

// ChannelResponse represents a channel in API responses.
type ChannelResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Topic     string    `json:"topic"`
	IsPrivate bool      `json:"is_private"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// MapChannelToResponse converts a domain channel to an API response.
func MapChannelToResponse(channel *chatDomain.Channel) ChannelResponse {
	return ChannelResponse{
		ID:        channel.ID.String(),
		Name:      channel.Name,
		Topic:     channel.Topic,
		IsPrivate: channel.IsPrivate,
		CreatedBy: channel.CreatedBy.String(),
		CreatedAt: channel.CreatedAt,
	}
}

// MapChannelsToResponse converts a list of domain channels to API responses.
func MapChannelsToResponse(channels []*chatDomain.Channel) []ChannelResponse {
	responses := make([]ChannelResponse, len(channels))
	for i, channel := range channels {
		responses[i] = MapChannelToResponse(channel)
	}
	return responses
}
