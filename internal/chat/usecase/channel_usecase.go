package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/devsync/internal/chat/domain"
	appValidation "github.com/allisson/devsync/internal/validation"
)

// CreateChannelInput contains the input data for channel creation.
type CreateChannelInput struct {
	Name      string `json:"name"`
	Topic     string `json:"topic"`
	IsPrivate bool   `json:"is_private"`
}

// ChannelUseCase defines the channel business logic operations.
// Channel administration is gated on global roles at the route layer.
type ChannelUseCase interface {
	// Create creates a workspace channel.
	Create(ctx context.Context, creatorID uuid.UUID, input CreateChannelInput) (*domain.Channel, error)

	// Get retrieves a channel by ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.Channel, error)

	// List retrieves channels with pagination.
	List(ctx context.Context, offset, limit int) ([]*domain.Channel, error)

	// Delete removes a channel.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ChannelRepository defines channel persistence operations.
type ChannelRepository interface {
	Create(ctx context.Context, channel *domain.Channel) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Channel, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// WorkspaceChannelUseCase handles channel-related business logic.
type WorkspaceChannelUseCase struct {
	channelRepo ChannelRepository
}

// NewChannelUseCase creates a new WorkspaceChannelUseCase.
func NewChannelUseCase(channelRepo ChannelRepository) ChannelUseCase {
	return &WorkspaceChannelUseCase{
		channelRepo: channelRepo,
	}
}

// validateCreateChannelInput validates the channel creation input.
func (uc *WorkspaceChannelUseCase) validateCreateChannelInput(input CreateChannelInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("name must be between 1 and 100 characters"),
		),
		validation.Field(&input.Topic,
			validation.Length(0, 255).Error("topic must be at most 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create creates a workspace channel.
func (uc *WorkspaceChannelUseCase) Create(
	ctx context.Context,
	creatorID uuid.UUID,
	input CreateChannelInput,
) (*domain.Channel, error) {
	if err := uc.validateCreateChannelInput(input); err != nil {
		return nil, err
	}

	channel := &domain.Channel{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      strings.TrimSpace(input.Name),
		Topic:     strings.TrimSpace(input.Topic),
		IsPrivate: input.IsPrivate,
		CreatedBy: creatorID,
	}

	if err := uc.channelRepo.Create(ctx, channel); err != nil {
		return nil, err
	}

	return channel, nil
}

// Get retrieves a channel by ID.
func (uc *WorkspaceChannelUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Channel, error) {
	return uc.channelRepo.GetByID(ctx, id)
}

// List retrieves channels with pagination.
func (uc *WorkspaceChannelUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Channel, error) {
	return uc.channelRepo.List(ctx, offset, limit)
}

// Delete removes a channel.
func (uc *WorkspaceChannelUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.channelRepo.Delete(ctx, id)
}
