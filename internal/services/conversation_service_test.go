package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	apperrors "chatbot_go_backend/internal/errors"
	"chatbot_go_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test. The database name
// is derived from the test so parallel tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{}))
	return db
}

func seedConversation(t *testing.T, svc ConversationServiceDB) (*models.User, *models.Conversation) {
	t.Helper()

	user, err := svc.GetOrCreateUser("alice", "")
	require.NoError(t, err)

	conversation, err := svc.CreateConversation(user.ID, "")
	require.NoError(t, err)

	return user, conversation
}

func TestGetOrCreateUser(t *testing.T) {
	svc := NewConversationServiceDB(setupTestDB(t))

	t.Run("creates with defaulted display name", func(t *testing.T) {
		user, err := svc.GetOrCreateUser("alice", "")
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice", user.DisplayName)
		assert.True(t, user.IsActive)
	})

	t.Run("second call returns the same record unchanged", func(t *testing.T) {
		first, err := svc.GetOrCreateUser("bob", "Bob")
		require.NoError(t, err)

		second, err := svc.GetOrCreateUser("bob", "Robert")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "Bob", second.DisplayName)
	})

	t.Run("usernames are case-sensitive", func(t *testing.T) {
		lower, err := svc.GetOrCreateUser("carol", "")
		require.NoError(t, err)

		upper, err := svc.GetOrCreateUser("Carol", "")
		require.NoError(t, err)

		assert.NotEqual(t, lower.ID, upper.ID)
	})
}

func TestCreateConversation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewConversationServiceDB(db)

	t.Run("defaults the title", func(t *testing.T) {
		user, err := svc.GetOrCreateUser("alice", "")
		require.NoError(t, err)

		conversation, err := svc.CreateConversation(user.ID, "")
		require.NoError(t, err)
		assert.Equal(t, models.DefaultConversationTitle, conversation.Title)
		assert.Equal(t, user.ID, conversation.UserID)
		assert.True(t, conversation.IsActive)
	})

	t.Run("unknown user creates nothing", func(t *testing.T) {
		_, err := svc.CreateConversation(99999, "orphan")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))

		var count int64
		require.NoError(t, db.Model(&models.Conversation{}).Where("title = ?", "orphan").Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestCreateMessage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewConversationServiceDB(db)
	_, conversation := seedConversation(t, svc)

	t.Run("round-trips content exactly", func(t *testing.T) {
		content := "Hello,  with   spacing & symbols <>!"
		message, err := svc.CreateMessage(content, models.MessageTypeUser, conversation.ID, nil, nil)
		require.NoError(t, err)
		assert.NotZero(t, message.ID)
		assert.Equal(t, content, message.Content)
		assert.Equal(t, models.MessageTypeUser, message.MessageType)
		assert.Nil(t, message.ResponseTimeMS)
		assert.Nil(t, message.ModelUsed)

		messages, err := svc.ListConversationMessages(conversation.ID, 0)
		require.NoError(t, err)
		require.NotEmpty(t, messages)
		assert.Equal(t, content, messages[len(messages)-1].Content)
	})

	t.Run("stores bot metadata", func(t *testing.T) {
		responseTime := 12
		model := "simple-chatbot-v1.0"
		message, err := svc.CreateMessage("reply", models.MessageTypeBot, conversation.ID, &responseTime, &model)
		require.NoError(t, err)
		require.NotNil(t, message.ResponseTimeMS)
		assert.Equal(t, 12, *message.ResponseTimeMS)
		require.NotNil(t, message.ModelUsed)
		assert.Equal(t, model, *message.ModelUsed)
	})

	t.Run("touches the conversation timestamp", func(t *testing.T) {
		before, err := svc.GetConversation(conversation.ID)
		require.NoError(t, err)

		message, err := svc.CreateMessage("touch me", models.MessageTypeUser, conversation.ID, nil, nil)
		require.NoError(t, err)

		after, err := svc.GetConversation(conversation.ID)
		require.NoError(t, err)

		assert.False(t, after.UpdatedAt.Before(before.UpdatedAt))
		assert.False(t, after.UpdatedAt.Before(message.CreatedAt))
	})

	t.Run("rejects blank content before writing", func(t *testing.T) {
		for _, content := range []string{"", "   ", "\n\t"} {
			_, err := svc.CreateMessage(content, models.MessageTypeUser, conversation.ID, nil, nil)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		}
	})

	t.Run("rejects oversized content", func(t *testing.T) {
		_, err := svc.CreateMessage(strings.Repeat("a", models.MaxMessageContentLength+1), models.MessageTypeUser, conversation.ID, nil, nil)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("unknown conversation creates nothing", func(t *testing.T) {
		_, err := svc.CreateMessage("lost", models.MessageTypeUser, 99999, nil, nil)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))

		var count int64
		require.NoError(t, db.Model(&models.Message{}).Where("content = ?", "lost").Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestListConversationMessagesOrdering(t *testing.T) {
	svc := NewConversationServiceDB(setupTestDB(t))
	_, conversation := seedConversation(t, svc)

	// Insert quickly so created_at values are likely to collide; the
	// insertion order must still be preserved.
	contents := []string{"first", "second", "third", "fourth", "fifth"}
	for _, content := range contents {
		_, err := svc.CreateMessage(content, models.MessageTypeUser, conversation.ID, nil, nil)
		require.NoError(t, err)
	}

	messages, err := svc.ListConversationMessages(conversation.ID, 0)
	require.NoError(t, err)
	require.Len(t, messages, len(contents))

	for i, message := range messages {
		assert.Equal(t, contents[i], message.Content)
		if i > 0 {
			assert.False(t, message.CreatedAt.Before(messages[i-1].CreatedAt))
			assert.Greater(t, message.ID, messages[i-1].ID)
		}
	}

	t.Run("limit caps the count", func(t *testing.T) {
		limited, err := svc.ListConversationMessages(conversation.ID, 2)
		require.NoError(t, err)
		require.Len(t, limited, 2)
		assert.Equal(t, "first", limited[0].Content)
		assert.Equal(t, "second", limited[1].Content)
	})
}

func TestUpdatedAtMonotonicAcrossAppends(t *testing.T) {
	svc := NewConversationServiceDB(setupTestDB(t))
	_, conversation := seedConversation(t, svc)

	previous := conversation.UpdatedAt
	for i := 0; i < 5; i++ {
		message, err := svc.CreateMessage(fmt.Sprintf("message %d", i), models.MessageTypeUser, conversation.ID, nil, nil)
		require.NoError(t, err)

		current, err := svc.GetConversation(conversation.ID)
		require.NoError(t, err)

		assert.False(t, current.UpdatedAt.Before(previous))
		assert.False(t, current.UpdatedAt.Before(message.CreatedAt))
		previous = current.UpdatedAt
	}
}

func TestListUserConversations(t *testing.T) {
	svc := NewConversationServiceDB(setupTestDB(t))
	user, err := svc.GetOrCreateUser("alice", "")
	require.NoError(t, err)

	first, err := svc.CreateConversation(user.ID, "first")
	require.NoError(t, err)
	second, err := svc.CreateConversation(user.ID, "second")
	require.NoError(t, err)

	// Touch the first conversation so it becomes the most recently active.
	time.Sleep(5 * time.Millisecond)
	_, err = svc.CreateMessage("bump", models.MessageTypeUser, first.ID, nil, nil)
	require.NoError(t, err)

	conversations, err := svc.ListUserConversations(user.ID, true)
	require.NoError(t, err)
	require.Len(t, conversations, 2)
	assert.Equal(t, first.ID, conversations[0].ID)
	assert.Equal(t, second.ID, conversations[1].ID)
}

func TestSoftDeleteConversation(t *testing.T) {
	svc := NewConversationServiceDB(setupTestDB(t))
	user, conversation := seedConversation(t, svc)

	_, err := svc.CreateMessage("keep me", models.MessageTypeUser, conversation.ID, nil, nil)
	require.NoError(t, err)

	deleted, err := svc.SoftDeleteConversation(conversation.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	t.Run("record remains readable", func(t *testing.T) {
		got, err := svc.GetConversation(conversation.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("excluded from active listings only", func(t *testing.T) {
		active, err := svc.ListUserConversations(user.ID, true)
		require.NoError(t, err)
		assert.Empty(t, active)

		all, err := svc.ListUserConversations(user.ID, false)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, conversation.ID, all[0].ID)
	})

	t.Run("messages are not cascaded", func(t *testing.T) {
		messages, err := svc.ListConversationMessages(conversation.ID, 0)
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, "keep me", messages[0].Content)
	})

	t.Run("unknown id reports false", func(t *testing.T) {
		deleted, err := svc.SoftDeleteConversation(99999)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestUpdateConversationTitle(t *testing.T) {
	svc := NewConversationServiceDB(setupTestDB(t))
	_, conversation := seedConversation(t, svc)

	updated, err := svc.UpdateConversationTitle(conversation.ID, "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.False(t, updated.UpdatedAt.Before(conversation.UpdatedAt))

	t.Run("unknown conversation", func(t *testing.T) {
		_, err := svc.UpdateConversationTitle(99999, "nope")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestGetConversationWithMessages(t *testing.T) {
	svc := NewConversationServiceDB(setupTestDB(t))
	user, conversation := seedConversation(t, svc)

	_, err := svc.CreateMessage("hello bot", models.MessageTypeUser, conversation.ID, nil, nil)
	require.NoError(t, err)
	responseTime := 3
	model := "simple-chatbot-v1.0"
	_, err = svc.CreateMessage("hello human", models.MessageTypeBot, conversation.ID, &responseTime, &model)
	require.NoError(t, err)

	view, err := svc.GetConversationWithMessages(conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, conversation.ID, view.ID)
	assert.Equal(t, user.ID, view.UserID)
	require.Len(t, view.Messages, 2)
	assert.Equal(t, "hello bot", view.Messages[0].Content)
	assert.Equal(t, models.MessageTypeBot, view.Messages[1].MessageType)

	// Timestamps serialize to a fixed RFC 3339 form.
	for _, raw := range []string{view.CreatedAt, view.UpdatedAt, view.Messages[0].CreatedAt} {
		_, err := time.Parse(time.RFC3339, raw)
		assert.NoError(t, err, "timestamp %q should be RFC 3339", raw)
	}

	t.Run("absent conversation", func(t *testing.T) {
		_, err := svc.GetConversationWithMessages(99999)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
