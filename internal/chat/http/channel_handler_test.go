package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/devsync/internal/auth/domain"
	authHTTP "github.com/allisson/devsync/internal/auth/http"
	"github.com/allisson/devsync/internal/chat/domain"
	chatUseCase "github.com/allisson/devsync/internal/chat/usecase"
)

// MockChannelUseCase is a mock implementation of chatUseCase.ChannelUseCase.
type MockChannelUseCase struct {
	mock.Mock
}

func (m *MockChannelUseCase) Create(ctx context.Context, creatorID uuid.UUID, input chatUseCase.CreateChannelInput) (*domain.Channel, error) {
	args := m.Called(ctx, creatorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Channel), args.Error(1)
}

func (m *MockChannelUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Channel), args.Error(1)
}

func (m *MockChannelUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Channel, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Channel), args.Error(1)
}

func (m *MockChannelUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testAdminUser() *authDomain.User {
	return &authDomain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Username: "root",
		Email:    "root@example.com",
		Roles:    []string{authDomain.GlobalRoleAdmin},
		IsActive: true,
	}
}

func setupChannelRouter(useCase *MockChannelUseCase, user *authDomain.User) *gin.Engine {
	handler := NewChannelHandler(useCase, testLogger())

	router := gin.New()
	if user != nil {
		router.Use(authenticateAs(user))
	}
	channels := router.Group("/v1/channels")
	{
		channels.POST("", authHTTP.RequireGlobalRole(authDomain.GlobalRoleAdmin, testLogger()), handler.CreateChannelHandler)
		channels.GET("", authHTTP.RequireAuthenticated(testLogger()), handler.ListChannelsHandler)
		channels.GET("/:id", authHTTP.RequireAuthenticated(testLogger()), handler.GetChannelHandler)
		channels.DELETE("/:id", authHTTP.RequireGlobalRole(authDomain.GlobalRoleAdmin, testLogger()), handler.DeleteChannelHandler)
	}
	return router
}

func TestChannelHandler_Create(t *testing.T) {
	t.Run("Success_GlobalAdmin", func(t *testing.T) {
		useCase := new(MockChannelUseCase)
		admin := testAdminUser()
		channel := &domain.Channel{
			ID:        uuid.Must(uuid.NewV7()),
			Name:      "general",
			Topic:     "workspace chat",
			CreatedBy: admin.ID,
		}
		useCase.On("Create", mock.Anything, admin.ID, chatUseCase.CreateChannelInput{
			Name:  "general",
			Topic: "workspace chat",
		}).Return(channel, nil)

		router := setupChannelRouter(useCase, admin)
		w := doJSON(router, http.MethodPost, "/v1/channels", gin.H{"name": "general", "topic": "workspace chat"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), channel.ID.String())
	})

	t.Run("Error_GlobalMemberForbidden", func(t *testing.T) {
		useCase := new(MockChannelUseCase)

		router := setupChannelRouter(useCase, testChatUser())
		w := doJSON(router, http.MethodPost, "/v1/channels", gin.H{"name": "general"})

		assert.Equal(t, http.StatusForbidden, w.Code)
		useCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		useCase := new(MockChannelUseCase)
		useCase.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domain.ErrChannelAlreadyExists)

		router := setupChannelRouter(useCase, testAdminUser())
		w := doJSON(router, http.MethodPost, "/v1/channels", gin.H{"name": "general"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		useCase := new(MockChannelUseCase)

		router := setupChannelRouter(useCase, testAdminUser())
		w := doJSON(router, http.MethodPost, "/v1/channels", gin.H{"name": " "})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		useCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestChannelHandler_GetAndList(t *testing.T) {
	t.Run("Success_Get", func(t *testing.T) {
		useCase := new(MockChannelUseCase)
		channel := &domain.Channel{ID: uuid.Must(uuid.NewV7()), Name: "general"}
		useCase.On("Get", mock.Anything, channel.ID).Return(channel, nil)

		router := setupChannelRouter(useCase, testChatUser())
		w := doJSON(router, http.MethodGet, "/v1/channels/"+channel.ID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "general")
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		useCase := new(MockChannelUseCase)
		useCase.On("Get", mock.Anything, mock.Anything).Return(nil, domain.ErrChannelNotFound)

		router := setupChannelRouter(useCase, testChatUser())
		w := doJSON(router, http.MethodGet, "/v1/channels/"+uuid.Must(uuid.NewV7()).String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Success_List", func(t *testing.T) {
		useCase := new(MockChannelUseCase)
		useCase.On("List", mock.Anything, 0, 50).Return([]*domain.Channel{
			{ID: uuid.Must(uuid.NewV7()), Name: "general"},
			{ID: uuid.Must(uuid.NewV7()), Name: "random"},
		}, nil)

		router := setupChannelRouter(useCase, testChatUser())
		w := doJSON(router, http.MethodGet, "/v1/channels", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response["channels"], 2)
	})

	t.Run("Error_Unauthenticated", func(t *testing.T) {
		useCase := new(MockChannelUseCase)

		router := setupChannelRouter(useCase, nil)
		w := doJSON(router, http.MethodGet, "/v1/channels", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		useCase.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestChannelHandler_Delete(t *testing.T) {
	t.Run("Success_GlobalAdmin", func(t *testing.T) {
		useCase := new(MockChannelUseCase)
		id := uuid.Must(uuid.NewV7())
		useCase.On("Delete", mock.Anything, id).Return(nil)

		router := setupChannelRouter(useCase, testAdminUser())
		w := doJSON(router, http.MethodDelete, "/v1/channels/"+id.String(), nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_GlobalMemberForbidden", func(t *testing.T) {
		useCase := new(MockChannelUseCase)

		router := setupChannelRouter(useCase, testChatUser())
		w := doJSON(router, http.MethodDelete, "/v1/channels/"+uuid.Must(uuid.NewV7()).String(), nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		useCase.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
