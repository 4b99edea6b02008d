package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/devsync/internal/chat/domain"
	apperrors "github.com/allisson/devsync/internal/errors"
)

var conversationColumns = []string{"id", "name", "created_by", "created_at", "updated_at"}

func TestPostgreSQLConversationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	conversation := &domain.Conversation{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      "backend sync",
		CreatedBy: uuid.Must(uuid.NewV7()),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO conversations")).
		WithArgs(conversation.ID, conversation.Name, conversation.CreatedBy).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewPostgreSQLConversationRepository(db)
	err = repo.Create(context.Background(), conversation)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLConversationRepository_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.Must(uuid.NewV7())
		now := time.Now()
		mock.ExpectQuery(regexp.QuoteMeta("FROM conversations WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(conversationColumns).
				AddRow(id, "backend sync", uuid.Must(uuid.NewV7()), now, now))

		repo := NewPostgreSQLConversationRepository(db)
		conversation, err := repo.GetByID(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, "backend sync", conversation.Name)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("FROM conversations WHERE id = $1")).
			WillReturnRows(sqlmock.NewRows(conversationColumns))

		repo := NewPostgreSQLConversationRepository(db)
		_, err = repo.GetByID(context.Background(), uuid.Must(uuid.NewV7()))

		assert.ErrorIs(t, err, domain.ErrConversationNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLConversationRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	userID := uuid.Must(uuid.NewV7())
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("JOIN conversation_members m ON m.conversation_id = c.id")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(conversationColumns).
			AddRow(uuid.Must(uuid.NewV7()), "one", userID, now, now).
			AddRow(uuid.Must(uuid.NewV7()), "two", userID, now, now))

	repo := NewPostgreSQLConversationRepository(db)
	conversations, err := repo.ListByUser(context.Background(), userID)

	require.NoError(t, err)
	assert.Len(t, conversations, 2)
}

func TestPostgreSQLConversationRepository_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.Must(uuid.NewV7())
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM conversations WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLConversationRepository(db)
		err = repo.Delete(context.Background(), id)

		assert.NoError(t, err)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM conversations WHERE id = $1")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostgreSQLConversationRepository(db)
		err = repo.Delete(context.Background(), uuid.Must(uuid.NewV7()))

		assert.ErrorIs(t, err, domain.ErrConversationNotFound)
	})
}

func TestPostgreSQLMessageRepository(t *testing.T) {
	conversationID := uuid.Must(uuid.NewV7())

	t.Run("Create", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		message := &domain.Message{
			ID:             uuid.Must(uuid.NewV7()),
			ConversationID: conversationID,
			SenderID:       uuid.Must(uuid.NewV7()),
			Content:        "hello",
		}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO messages")).
			WithArgs(message.ID, message.ConversationID, message.SenderID, message.Content).
			WillReturnResult(sqlmock.NewResult(1, 1))

		repo := NewPostgreSQLMessageRepository(db)
		err = repo.Create(context.Background(), message)

		assert.NoError(t, err)
	})

	t.Run("ListByConversation", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		now := time.Now()
		messageColumns := []string{"id", "conversation_id", "sender_id", "content", "created_at"}
		mock.ExpectQuery(regexp.QuoteMeta("FROM messages WHERE conversation_id = $1")).
			WithArgs(conversationID, 0, 50).
			WillReturnRows(sqlmock.NewRows(messageColumns).
				AddRow(uuid.Must(uuid.NewV7()), conversationID, uuid.Must(uuid.NewV7()), "newest", now).
				AddRow(uuid.Must(uuid.NewV7()), conversationID, uuid.Must(uuid.NewV7()), "older", now.Add(-time.Minute)))

		repo := NewPostgreSQLMessageRepository(db)
		messages, err := repo.ListByConversation(context.Background(), conversationID, 0, 50)

		require.NoError(t, err)
		assert.Len(t, messages, 2)
		assert.Equal(t, "newest", messages[0].Content)
	})
}

func TestPostgreSQLChannelRepository(t *testing.T) {
	channelColumns := []string{"id", "name", "topic", "is_private", "created_by", "created_at", "updated_at"}

	t.Run("Create_Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		channel := &domain.Channel{
			ID:        uuid.Must(uuid.NewV7()),
			Name:      "general",
			Topic:     "workspace chat",
			CreatedBy: uuid.Must(uuid.NewV7()),
		}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO channels")).
			WithArgs(channel.ID, channel.Name, channel.Topic, channel.IsPrivate, channel.CreatedBy).
			WillReturnResult(sqlmock.NewResult(1, 1))

		repo := NewPostgreSQLChannelRepository(db)
		err = repo.Create(context.Background(), channel)

		assert.NoError(t, err)
	})

	t.Run("Create_DuplicateName", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO channels")).
			WillReturnError(apperrors.New(`pq: duplicate key value violates unique constraint "channels_name_key"`))

		repo := NewPostgreSQLChannelRepository(db)
		err = repo.Create(context.Background(), &domain.Channel{
			ID:   uuid.Must(uuid.NewV7()),
			Name: "general",
		})

		assert.ErrorIs(t, err, domain.ErrChannelAlreadyExists)
	})

	t.Run("List", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		now := time.Now()
		mock.ExpectQuery(regexp.QuoteMeta("FROM channels ORDER BY name")).
			WithArgs(0, 50).
			WillReturnRows(sqlmock.NewRows(channelColumns).
				AddRow(uuid.Must(uuid.NewV7()), "general", "", false, uuid.Must(uuid.NewV7()), now, now))

		repo := NewPostgreSQLChannelRepository(db)
		channels, err := repo.List(context.Background(), 0, 50)

		require.NoError(t, err)
		assert.Len(t, channels, 1)
	})
}
