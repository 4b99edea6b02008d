// Package usecase implements the chat business logic.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/devsync/internal/chat/domain"
	"github.com/allisson/devsync/internal/database"
	membershipDomain "github.com/allisson/devsync/internal/membership/domain"
	appValidation "github.com/allisson/devsync/internal/validation"
)

// CreateConversationInput contains the input data for conversation creation.
type CreateConversationInput struct {
	Name string `json:"name"`
}

// PostMessageInput contains the input data for posting a message.
type PostMessageInput struct {
	Content string `json:"content"`
}

// ConversationUseCase defines the conversation business logic operations.
// Role checks happen at the route layer; the operations here assume the
// caller has already been authorized, except where the operation itself is
// membership-defining (join, leave).
type ConversationUseCase interface {
	// Create creates a conversation and makes the creator its ADMIN member
	// atomically. A conversation can never exist without an admin.
	Create(ctx context.Context, creatorID uuid.UUID, input CreateConversationInput) (*domain.Conversation, error)

	// Get retrieves a conversation by ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)

	// ListForUser retrieves the conversations the user is a member of.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error)

	// Delete removes a conversation with its memberships and messages.
	Delete(ctx context.Context, id uuid.UUID) error

	// Join adds the user as a MEMBER of the conversation.
	Join(ctx context.Context, conversationID, userID uuid.UUID) error

	// Leave removes the user's membership.
	Leave(ctx context.Context, conversationID, userID uuid.UUID) error

	// ListMembers retrieves the memberships of a conversation.
	ListMembers(ctx context.Context, conversationID uuid.UUID) ([]*membershipDomain.Membership, error)

	// ChangeMemberRole updates a member's role.
	ChangeMemberRole(ctx context.Context, conversationID, userID uuid.UUID, role membershipDomain.Role) error

	// PostMessage appends a message to the conversation.
	PostMessage(ctx context.Context, conversationID, senderID uuid.UUID, input PostMessageInput) (*domain.Message, error)

	// ListMessages retrieves conversation messages newest first.
	ListMessages(ctx context.Context, conversationID uuid.UUID, offset, limit int) ([]*domain.Message, error)
}

// ConversationRepository defines conversation persistence operations.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *domain.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MessageRepository defines message persistence operations.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID, offset, limit int) ([]*domain.Message, error)
}

// MembershipRepository defines membership persistence operations.
type MembershipRepository interface {
	Create(ctx context.Context, membership *membershipDomain.Membership) error
	Get(ctx context.Context, conversationID, userID uuid.UUID) (*membershipDomain.Membership, error)
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*membershipDomain.Membership, error)
	UpdateRole(ctx context.Context, conversationID, userID uuid.UUID, role membershipDomain.Role) error
	Delete(ctx context.Context, conversationID, userID uuid.UUID) error
}

// ChatConversationUseCase handles conversation-related business logic.
type ChatConversationUseCase struct {
	txManager        database.TxManager
	conversationRepo ConversationRepository
	membershipRepo   MembershipRepository
	messageRepo      MessageRepository
}

// NewConversationUseCase creates a new ChatConversationUseCase.
func NewConversationUseCase(
	txManager database.TxManager,
	conversationRepo ConversationRepository,
	membershipRepo MembershipRepository,
	messageRepo MessageRepository,
) ConversationUseCase {
	return &ChatConversationUseCase{
		txManager:        txManager,
		conversationRepo: conversationRepo,
		membershipRepo:   membershipRepo,
		messageRepo:      messageRepo,
	}
}

// validateCreateConversationInput validates the conversation creation input.
func (uc *ChatConversationUseCase) validateCreateConversationInput(input CreateConversationInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create creates the conversation and the creator's ADMIN membership in a
// single transaction.
func (uc *ChatConversationUseCase) Create(
	ctx context.Context,
	creatorID uuid.UUID,
	input CreateConversationInput,
) (*domain.Conversation, error) {
	if err := uc.validateCreateConversationInput(input); err != nil {
		return nil, err
	}

	conversation := &domain.Conversation{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      strings.TrimSpace(input.Name),
		CreatedBy: creatorID,
	}

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
			return err
		}
		return uc.membershipRepo.Create(ctx, &membershipDomain.Membership{
			ConversationID: conversation.ID,
			UserID:         creatorID,
			Role:           membershipDomain.RoleAdmin,
		})
	})
	if err != nil {
		return nil, err
	}

	return conversation, nil
}

// Get retrieves a conversation by ID.
func (uc *ChatConversationUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	return uc.conversationRepo.GetByID(ctx, id)
}

// ListForUser retrieves the conversations the user is a member of.
func (uc *ChatConversationUseCase) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error) {
	return uc.conversationRepo.ListByUser(ctx, userID)
}

// Delete removes a conversation.
func (uc *ChatConversationUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.conversationRepo.Delete(ctx, id)
}

// Join adds the user as a MEMBER. Joining an unknown conversation fails with
// not-found; joining twice fails with conflict from the membership store.
func (uc *ChatConversationUseCase) Join(ctx context.Context, conversationID, userID uuid.UUID) error {
	if _, err := uc.conversationRepo.GetByID(ctx, conversationID); err != nil {
		return err
	}

	return uc.membershipRepo.Create(ctx, &membershipDomain.Membership{
		ConversationID: conversationID,
		UserID:         userID,
		Role:           membershipDomain.RoleMember,
	})
}

// Leave removes the user's membership.
func (uc *ChatConversationUseCase) Leave(ctx context.Context, conversationID, userID uuid.UUID) error {
	return uc.membershipRepo.Delete(ctx, conversationID, userID)
}

// ListMembers retrieves the memberships of a conversation.
func (uc *ChatConversationUseCase) ListMembers(ctx context.Context, conversationID uuid.UUID) ([]*membershipDomain.Membership, error) {
	return uc.membershipRepo.ListByConversation(ctx, conversationID)
}

// ChangeMemberRole updates a member's role after validating it.
func (uc *ChatConversationUseCase) ChangeMemberRole(
	ctx context.Context,
	conversationID, userID uuid.UUID,
	role membershipDomain.Role,
) error {
	if !role.Valid() {
		return membershipDomain.ErrInvalidRole
	}
	return uc.membershipRepo.UpdateRole(ctx, conversationID, userID, role)
}

// validatePostMessageInput validates the message input.
func (uc *ChatConversationUseCase) validatePostMessageInput(input PostMessageInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Content,
			validation.Required.Error("content is required"),
			appValidation.NotBlank,
			validation.Length(1, 4000).Error("content must be between 1 and 4000 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// PostMessage appends a message to the conversation.
func (uc *ChatConversationUseCase) PostMessage(
	ctx context.Context,
	conversationID, senderID uuid.UUID,
	input PostMessageInput,
) (*domain.Message, error) {
	if err := uc.validatePostMessageInput(input); err != nil {
		return nil, err
	}

	message := &domain.Message{
		ID:             uuid.Must(uuid.NewV7()),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        input.Content,
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

// ListMessages retrieves conversation messages newest first.
func (uc *ChatConversationUseCase) ListMessages(
	ctx context.Context,
	conversationID uuid.UUID,
	offset, limit int,
) ([]*domain.Message, error) {
	return uc.messageRepo.ListByConversation(ctx, conversationID, offset, limit)
}
