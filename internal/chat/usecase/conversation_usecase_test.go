package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/devsync/internal/chat/domain"
	apperrors "github.com/allisson/devsync/internal/errors"
	membershipDomain "github.com/allisson/devsync/internal/membership/domain"
)

// MockConversationRepository is a mock implementation of ConversationRepository.
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Create(ctx context.Context, conversation *domain.Conversation) error {
	args := m.Called(ctx, conversation)
	return args.Error(0)
}

func (m *MockConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockConversationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Conversation), args.Error(1)
}

func (m *MockConversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMembershipRepository is a mock implementation of MembershipRepository.
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Create(ctx context.Context, membership *membershipDomain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) Get(ctx context.Context, conversationID, userID uuid.UUID) (*membershipDomain.Membership, error) {
	args := m.Called(ctx, conversationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membershipDomain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*membershipDomain.Membership, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*membershipDomain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) UpdateRole(ctx context.Context, conversationID, userID uuid.UUID, role membershipDomain.Role) error {
	args := m.Called(ctx, conversationID, userID, role)
	return args.Error(0)
}

func (m *MockMembershipRepository) Delete(ctx context.Context, conversationID, userID uuid.UUID) error {
	args := m.Called(ctx, conversationID, userID)
	return args.Error(0)
}

// MockMessageRepository is a mock implementation of MessageRepository.
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID, offset, limit int) ([]*domain.Message, error) {
	args := m.Called(ctx, conversationID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

// MockTxManager executes the function directly without a real transaction.
type MockTxManager struct{}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type conversationFixture struct {
	conversationRepo *MockConversationRepository
	membershipRepo   *MockMembershipRepository
	messageRepo      *MockMessageRepository
	useCase          ConversationUseCase
}

func newConversationFixture() *conversationFixture {
	f := &conversationFixture{
		conversationRepo: new(MockConversationRepository),
		membershipRepo:   new(MockMembershipRepository),
		messageRepo:      new(MockMessageRepository),
	}
	f.useCase = NewConversationUseCase(&MockTxManager{}, f.conversationRepo, f.membershipRepo, f.messageRepo)
	return f
}

func TestChatConversationUseCase_Create(t *testing.T) {
	creatorID := uuid.Must(uuid.NewV7())

	t.Run("Success_CreatorBecomesAdmin", func(t *testing.T) {
		f := newConversationFixture()

		f.conversationRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Conversation) bool {
			return c.Name == "backend sync" && c.CreatedBy == creatorID
		})).Return(nil)
		f.membershipRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *membershipDomain.Membership) bool {
			return m.UserID == creatorID && m.Role == membershipDomain.RoleAdmin
		})).Return(nil)

		conversation, err := f.useCase.Create(context.Background(), creatorID, CreateConversationInput{Name: "backend sync"})

		require.NoError(t, err)
		assert.Equal(t, "backend sync", conversation.Name)
		f.conversationRepo.AssertExpectations(t)
		f.membershipRepo.AssertExpectations(t)
	})

	t.Run("Error_MembershipFailureAbortsCreate", func(t *testing.T) {
		f := newConversationFixture()
		memberErr := apperrors.New("membership insert failed")

		f.conversationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.membershipRepo.On("Create", mock.Anything, mock.Anything).Return(memberErr)

		_, err := f.useCase.Create(context.Background(), creatorID, CreateConversationInput{Name: "backend sync"})

		assert.ErrorIs(t, err, memberErr)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		f := newConversationFixture()

		_, err := f.useCase.Create(context.Background(), creatorID, CreateConversationInput{Name: "   "})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		f.conversationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestChatConversationUseCase_Join(t *testing.T) {
	conversationID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success_JoinsAsMember", func(t *testing.T) {
		f := newConversationFixture()

		f.conversationRepo.On("GetByID", mock.Anything, conversationID).
			Return(&domain.Conversation{ID: conversationID}, nil)
		f.membershipRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *membershipDomain.Membership) bool {
			return m.ConversationID == conversationID &&
				m.UserID == userID &&
				m.Role == membershipDomain.RoleMember
		})).Return(nil)

		err := f.useCase.Join(context.Background(), conversationID, userID)

		assert.NoError(t, err)
		f.membershipRepo.AssertExpectations(t)
	})

	t.Run("Error_UnknownConversation", func(t *testing.T) {
		f := newConversationFixture()

		f.conversationRepo.On("GetByID", mock.Anything, conversationID).
			Return(nil, domain.ErrConversationNotFound)

		err := f.useCase.Join(context.Background(), conversationID, userID)

		assert.ErrorIs(t, err, domain.ErrConversationNotFound)
		f.membershipRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_AlreadyMember", func(t *testing.T) {
		f := newConversationFixture()

		f.conversationRepo.On("GetByID", mock.Anything, conversationID).
			Return(&domain.Conversation{ID: conversationID}, nil)
		f.membershipRepo.On("Create", mock.Anything, mock.Anything).
			Return(membershipDomain.ErrMembershipAlreadyExists)

		err := f.useCase.Join(context.Background(), conversationID, userID)

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestChatConversationUseCase_ChangeMemberRole(t *testing.T) {
	conversationID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		f := newConversationFixture()

		f.membershipRepo.On("UpdateRole", mock.Anything, conversationID, userID, membershipDomain.RoleAdmin).
			Return(nil)

		err := f.useCase.ChangeMemberRole(context.Background(), conversationID, userID, membershipDomain.RoleAdmin)

		assert.NoError(t, err)
	})

	t.Run("Error_InvalidRole", func(t *testing.T) {
		f := newConversationFixture()

		err := f.useCase.ChangeMemberRole(context.Background(), conversationID, userID, membershipDomain.Role("OWNER"))

		assert.ErrorIs(t, err, membershipDomain.ErrInvalidRole)
		f.membershipRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestChatConversationUseCase_Messages(t *testing.T) {
	conversationID := uuid.Must(uuid.NewV7())
	senderID := uuid.Must(uuid.NewV7())

	t.Run("Success_PostMessage", func(t *testing.T) {
		f := newConversationFixture()

		f.messageRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
			return m.ConversationID == conversationID &&
				m.SenderID == senderID &&
				m.Content == "hello"
		})).Return(nil)

		message, err := f.useCase.PostMessage(context.Background(), conversationID, senderID, PostMessageInput{Content: "hello"})

		require.NoError(t, err)
		assert.Equal(t, "hello", message.Content)
	})

	t.Run("Error_BlankContent", func(t *testing.T) {
		f := newConversationFixture()

		_, err := f.useCase.PostMessage(context.Background(), conversationID, senderID, PostMessageInput{Content: " "})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		f.messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Success_ListMessages", func(t *testing.T) {
		f := newConversationFixture()
		expected := []*domain.Message{{ID: uuid.Must(uuid.NewV7()), Content: "hello"}}

		f.messageRepo.On("ListByConversation", mock.Anything, conversationID, 0, 50).
			Return(expected, nil)

		messages, err := f.useCase.ListMessages(context.Background(), conversationID, 0, 50)

		require.NoError(t, err)
		assert.Equal(t, expected, messages)
	})
}

func TestChatConversationUseCase_Leave(t *testing.T) {
	conversationID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		f := newConversationFixture()

		f.membershipRepo.On("Delete", mock.Anything, conversationID, userID).Return(nil)

		err := f.useCase.Leave(context.Background(), conversationID, userID)

		assert.NoError(t, err)
	})

	t.Run("Error_NotAMember", func(t *testing.T) {
		f := newConversationFixture()

		f.membershipRepo.On("Delete", mock.Anything, conversationID, userID).
			Return(membershipDomain.ErrMembershipNotFound)

		err := f.useCase.Leave(context.Background(), conversationID, userID)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestWorkspaceChannelUseCase(t *testing.T) {
	creatorID := uuid.Must(uuid.NewV7())

	t.Run("Success_Create", func(t *testing.T) {
		repo := new(MockChannelRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(ch *domain.Channel) bool {
			return ch.Name == "general" && ch.CreatedBy == creatorID && !ch.IsPrivate
		})).Return(nil)

		useCase := NewChannelUseCase(repo)
		channel, err := useCase.Create(context.Background(), creatorID, CreateChannelInput{Name: "general"})

		require.NoError(t, err)
		assert.Equal(t, "general", channel.Name)
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		repo := new(MockChannelRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrChannelAlreadyExists)

		useCase := NewChannelUseCase(repo)
		_, err := useCase.Create(context.Background(), creatorID, CreateChannelInput{Name: "general"})

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		repo := new(MockChannelRepository)

		useCase := NewChannelUseCase(repo)
		_, err := useCase.Create(context.Background(), creatorID, CreateChannelInput{Name: "  "})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Success_List", func(t *testing.T) {
		repo := new(MockChannelRepository)
		expected := []*domain.Channel{{ID: uuid.Must(uuid.NewV7()), Name: "general"}}
		repo.On("List", mock.Anything, 0, 50).Return(expected, nil)

		useCase := NewChannelUseCase(repo)
		channels, err := useCase.List(context.Background(), 0, 50)

		require.NoError(t, err)
		assert.Equal(t, expected, channels)
	})
}

// MockChannelRepository is a mock implementation of ChannelRepository.
type MockChannelRepository struct {
	mock.Mock
}

func (m *MockChannelRepository) Create(ctx context.Context, channel *domain.Channel) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

func (m *MockChannelRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Channel), args.Error(1)
}

func (m *MockChannelRepository) List(ctx context.Context, offset, limit int) ([]*domain.Channel, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Channel), args.Error(1)
}

func (m *MockChannelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
