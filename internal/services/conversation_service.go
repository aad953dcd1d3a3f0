package services

import (
	"errors"
	"strings"
	"time"

	apperrors "chatbot_go_backend/internal/errors"
	"chatbot_go_backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ConversationServiceDB defines the persistence operations for users,
// conversations and messages. Every operation runs in its own transaction
// and returns value snapshots rather than live store handles.
type ConversationServiceDB interface {
	GetOrCreateUser(username, displayName string) (*models.User, error)
	CreateConversation(userID uint, title string) (*models.Conversation, error)
	GetConversation(conversationID uint) (*models.Conversation, error)
	ListUserConversations(userID uint, activeOnly bool) ([]models.Conversation, error)
	CreateMessage(content string, messageType models.MessageType, conversationID uint, responseTimeMS *int, modelUsed *string) (*models.Message, error)
	ListConversationMessages(conversationID uint, limit int) ([]models.Message, error)
	GetConversationWithMessages(conversationID uint) (*models.ConversationWithMessages, error)
	UpdateConversationTitle(conversationID uint, title string) (*models.Conversation, error)
	SoftDeleteConversation(conversationID uint) (bool, error)
}

// DefaultConversationService implements ConversationServiceDB
type DefaultConversationService struct {
	db *gorm.DB
}

// NewConversationServiceDB creates a new DefaultConversationService
func NewConversationServiceDB(db *gorm.DB) ConversationServiceDB {
	return &DefaultConversationService{db: db}
}

// GetOrCreateUser looks up a user by exact username and creates one when
// missing. An existing record is returned verbatim: a differing displayName
// argument never overwrites the stored display name.
func (s *DefaultConversationService) GetOrCreateUser(username, displayName string) (*models.User, error) {
	if displayName == "" {
		displayName = username
	}

	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err == nil {
		snapshot := user
		return &snapshot, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewPersistenceError(err)
	}

	user = models.User{
		Username:    username,
		DisplayName: displayName,
		IsActive:    true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	log.Info().Str("username", username).Msg("Created new user")

	snapshot := user
	return &snapshot, nil
}

// CreateConversation creates a conversation for an existing user. The title
// defaults when empty. A missing user is reported as not found, never as a
// raw foreign-key fault.
func (s *DefaultConversationService) CreateConversation(userID uint, title string) (*models.Conversation, error) {
	if title == "" {
		title = models.DefaultConversationTitle
	}

	conversation := models.Conversation{
		Title:    title,
		UserID:   userID,
		IsActive: true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		return tx.Create(&conversation).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	log.Info().Uint("conversationID", conversation.ID).Uint("userID", userID).Msg("Created new conversation")

	snapshot := conversation
	snapshot.User = models.User{}
	return &snapshot, nil
}

// GetConversation retrieves a conversation by ID. Soft-deleted conversations
// are still returned, with IsActive false.
func (s *DefaultConversationService) GetConversation(conversationID uint) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := s.db.First(&conversation, conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("conversation not found")
		}
		return nil, apperrors.NewPersistenceError(err)
	}
	return &conversation, nil
}

// ListUserConversations returns a user's conversations sorted by most recent
// activity. With activeOnly, soft-deleted conversations are excluded.
func (s *DefaultConversationService) ListUserConversations(userID uint, activeOnly bool) ([]models.Conversation, error) {
	query := s.db.Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var conversations []models.Conversation
	if err := query.Order("updated_at DESC").Find(&conversations).Error; err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return conversations, nil
}

// CreateMessage validates and inserts a message and touches the parent
// conversation's updated_at in the same transaction. Nothing is written when
// validation fails or the conversation does not exist.
func (s *DefaultConversationService) CreateMessage(content string, messageType models.MessageType, conversationID uint, responseTimeMS *int, modelUsed *string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("message content cannot be empty")
	}
	if len(content) > models.MaxMessageContentLength {
		return nil, apperrors.NewValidationError("message content exceeds maximum length")
	}

	message := models.Message{
		Content:        content,
		MessageType:    messageType,
		ConversationID: conversationID,
		ResponseTimeMS: responseTimeMS,
		ModelUsed:      modelUsed,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var conversation models.Conversation
		if err := tx.First(&conversation, conversationID).Error; err != nil {
			return err
		}
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", conversationID).
			Update("updated_at", time.Now().UTC()).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("conversation not found")
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	snapshot := message
	snapshot.Conversation = models.Conversation{}
	return &snapshot, nil
}

// ListConversationMessages returns the messages of a conversation in creation
// order. The auto-increment ID breaks created_at ties so insertion order is
// stable under coarse timestamp resolution. A limit <= 0 means no limit.
func (s *DefaultConversationService) ListConversationMessages(conversationID uint, limit int) ([]models.Message, error) {
	query := s.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []models.Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return messages, nil
}

// GetConversationWithMessages returns a conversation and its full ordered
// message list as a snapshot with RFC 3339 timestamps.
func (s *DefaultConversationService) GetConversationWithMessages(conversationID uint) (*models.ConversationWithMessages, error) {
	conversation, err := s.GetConversation(conversationID)
	if err != nil {
		return nil, err
	}

	messages, err := s.ListConversationMessages(conversationID, 0)
	if err != nil {
		return nil, err
	}

	messageResponses := make([]models.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		messageResponses = append(messageResponses, models.MessageResponse{
			ID:             msg.ID,
			Content:        msg.Content,
			MessageType:    msg.MessageType,
			ConversationID: msg.ConversationID,
			CreatedAt:      msg.CreatedAt.UTC().Format(time.RFC3339),
			ResponseTimeMS: msg.ResponseTimeMS,
			ModelUsed:      msg.ModelUsed,
		})
	}

	return &models.ConversationWithMessages{
		ID:        conversation.ID,
		Title:     conversation.Title,
		UserID:    conversation.UserID,
		CreatedAt: conversation.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: conversation.UpdatedAt.UTC().Format(time.RFC3339),
		IsActive:  conversation.IsActive,
		Messages:  messageResponses,
	}, nil
}

// UpdateConversationTitle renames a conversation and touches updated_at.
func (s *DefaultConversationService) UpdateConversationTitle(conversationID uint, title string) (*models.Conversation, error) {
	var conversation models.Conversation

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&conversation, conversationID).Error; err != nil {
			return err
		}
		if err := tx.Model(&conversation).Updates(map[string]interface{}{
			"title":      title,
			"updated_at": time.Now().UTC(),
		}).Error; err != nil {
			return err
		}
		return tx.First(&conversation, conversationID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("conversation not found")
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	snapshot := conversation
	snapshot.User = models.User{}
	return &snapshot, nil
}

// SoftDeleteConversation marks a conversation inactive and touches
// updated_at. The row and its messages are never removed. Returns false
// when the conversation does not exist.
func (s *DefaultConversationService) SoftDeleteConversation(conversationID uint) (bool, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var conversation models.Conversation
		if err := tx.First(&conversation, conversationID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", conversationID).
			Updates(map[string]interface{}{
				"is_active":  false,
				"updated_at": time.Now().UTC(),
			}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apperrors.NewPersistenceError(err)
	}

	log.Info().Uint("conversationID", conversationID).Msg("Marked conversation as inactive")
	return true, nil
}
