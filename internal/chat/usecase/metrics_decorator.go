package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/devsync/internal/chat/domain"
	membershipDomain "github.com/allisson/devsync/internal/membership/domain"
	"github.com/allisson/devsync/internal/metrics"
)

// conversationUseCaseWithMetrics decorates ConversationUseCase with metrics instrumentation.
type conversationUseCaseWithMetrics struct {
	next    ConversationUseCase
	metrics metrics.BusinessMetrics
}

// NewConversationUseCaseWithMetrics wraps a ConversationUseCase with metrics recording.
func NewConversationUseCaseWithMetrics(useCase ConversationUseCase, m metrics.BusinessMetrics) ConversationUseCase {
	return &conversationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record reports one operation outcome with its duration.
func (c *conversationUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordOperation(ctx, "chat", operation, status)
	c.metrics.RecordDuration(ctx, "chat", operation, time.Since(start), status)
}

func (c *conversationUseCaseWithMetrics) Create(ctx context.Context, creatorID uuid.UUID, input CreateConversationInput) (*domain.Conversation, error) {
	start := time.Now()
	conversation, err := c.next.Create(ctx, creatorID, input)
	c.record(ctx, "conversation_create", start, err)
	return conversation, err
}

func (c *conversationUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	start := time.Now()
	conversation, err := c.next.Get(ctx, id)
	c.record(ctx, "conversation_get", start, err)
	return conversation, err
}

func (c *conversationUseCaseWithMetrics) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error) {
	start := time.Now()
	conversations, err := c.next.ListForUser(ctx, userID)
	c.record(ctx, "conversation_list", start, err)
	return conversations, err
}

func (c *conversationUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := c.next.Delete(ctx, id)
	c.record(ctx, "conversation_delete", start, err)
	return err
}

func (c *conversationUseCaseWithMetrics) Join(ctx context.Context, conversationID, userID uuid.UUID) error {
	start := time.Now()
	err := c.next.Join(ctx, conversationID, userID)
	c.record(ctx, "conversation_join", start, err)
	return err
}

func (c *conversationUseCaseWithMetrics) Leave(ctx context.Context, conversationID, userID uuid.UUID) error {
	start := time.Now()
	err := c.next.Leave(ctx, conversationID, userID)
	c.record(ctx, "conversation_leave", start, err)
	return err
}

func (c *conversationUseCaseWithMetrics) ListMembers(ctx context.Context, conversationID uuid.UUID) ([]*membershipDomain.Membership, error) {
	start := time.Now()
	members, err := c.next.ListMembers(ctx, conversationID)
	c.record(ctx, "member_list", start, err)
	return members, err
}

func (c *conversationUseCaseWithMetrics) ChangeMemberRole(ctx context.Context, conversationID, userID uuid.UUID, role membershipDomain.Role) error {
	start := time.Now()
	err := c.next.ChangeMemberRole(ctx, conversationID, userID, role)
	c.record(ctx, "member_role_change", start, err)
	return err
}

func (c *conversationUseCaseWithMetrics) PostMessage(ctx context.Context, conversationID, senderID uuid.UUID, input PostMessageInput) (*domain.Message, error) {
	start := time.Now()
	message, err := c.next.PostMessage(ctx, conversationID, senderID, input)
	c.record(ctx, "message_post", start, err)
	return message, err
}

func (c *conversationUseCaseWithMetrics) ListMessages(ctx context.Context, conversationID uuid.UUID, offset, limit int) ([]*domain.Message, error) {
	start := time.Now()
	messages, err := c.next.ListMessages(ctx, conversationID, offset, limit)
	c.record(ctx, "message_list", start, err)
	return messages, err
}

// channelUseCaseWithMetrics decorates ChannelUseCase with metrics instrumentation.
type channelUseCaseWithMetrics struct {
	next    ChannelUseCase
	metrics metrics.BusinessMetrics
}

// NewChannelUseCaseWithMetrics wraps a ChannelUseCase with metrics recording.
func NewChannelUseCaseWithMetrics(useCase ChannelUseCase, m metrics.BusinessMetrics) ChannelUseCase {
	return &channelUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record reports one operation outcome with its duration.
func (c *channelUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordOperation(ctx, "chat", operation, status)
	c.metrics.RecordDuration(ctx, "chat", operation, time.Since(start), status)
}

func (c *channelUseCaseWithMetrics) Create(ctx context.Context, creatorID uuid.UUID, input CreateChannelInput) (*domain.Channel, error) {
	start := time.Now()
	channel, err := c.next.Create(ctx, creatorID, input)
	c.record(ctx, "channel_create", start, err)
	return channel, err
}

func (c *channelUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.Channel, error) {
	start := time.Now()
	channel, err := c.next.Get(ctx, id)
	c.record(ctx, "channel_get", start, err)
	return channel, err
}

func (c *channelUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*domain.Channel, error) {
	start := time.Now()
	channels, err := c.next.List(ctx, offset, limit)
	c.record(ctx, "channel_list", start, err)
	return channels, err
}

func (c *channelUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := c.next.Delete(ctx, id)
	c.record(ctx, "channel_delete", start, err)
	return err
}
