package services

import (
	"strings"
	"time"

	apperrors "chatbot_go_backend/internal/errors"
	"chatbot_go_backend/internal/models"

	"github.com/rs/zerolog/log"
)

// ChatService runs one turn of the exchange: persist the user message,
// generate a reply, persist the bot message. The three steps are separate
// transactions; a fault after the user message is saved leaves it in place
// with no reply, which callers treat as "no reply produced".
type ChatService struct {
	conversations ConversationServiceDB
	responder     Responder
}

// NewChatService creates a new ChatService
func NewChatService(conversations ConversationServiceDB, responder Responder) *ChatService {
	return &ChatService{
		conversations: conversations,
		responder:     responder,
	}
}

// ProcessUserMessage persists the trimmed user message, generates a timed
// reply and persists it as a bot message tagged with the generator version.
// Returns the stored bot message snapshot.
func (s *ChatService) ProcessUserMessage(conversationID uint, userText string) (*models.Message, error) {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return nil, apperrors.NewValidationError("message content cannot be empty")
	}

	if _, err := s.conversations.CreateMessage(userText, models.MessageTypeUser, conversationID, nil, nil); err != nil {
		return nil, err
	}

	start := time.Now()
	responseContent := s.responder.GenerateResponse(userText)
	responseTimeMS := int(time.Since(start).Milliseconds())

	modelUsed := s.responder.ModelName()
	botMessage, err := s.conversations.CreateMessage(responseContent, models.MessageTypeBot, conversationID, &responseTimeMS, &modelUsed)
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("conversationID", conversationID).
		Int("responseTimeMS", responseTimeMS).
		Msg("Generated bot response")

	return botMessage, nil
}

// CreateBotMessage stores a bot message that was not produced by a timed
// turn, such as the welcome message of a fresh conversation.
func (s *ChatService) CreateBotMessage(content string, conversationID uint) (*models.Message, error) {
	modelUsed := s.responder.ModelName()
	return s.conversations.CreateMessage(content, models.MessageTypeBot, conversationID, nil, &modelUsed)
}
