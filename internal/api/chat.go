package api

import (
	"fmt"
	"net/http"
	"strconv"

	"chatbot_go_backend/cmd/api/config"
	apperrors "chatbot_go_backend/internal/errors"
	"chatbot_go_backend/internal/models"
	"chatbot_go_backend/internal/services"
	"chatbot_go_backend/internal/utils/titles"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const sessionCookieName = "chat_username"

// resolveSessionUser finds or creates the user for the current request. The
// username comes from the X-Username header or the session cookie; anonymous
// visitors get a generated one pinned in the cookie.
func resolveSessionUser(c *gin.Context, conversationService services.ConversationServiceDB, cfg *config.Config) (*models.User, error) {
	username := c.GetHeader("X-Username")
	if username == "" {
		if cookie, err := c.Cookie(sessionCookieName); err == nil {
			username = cookie
		}
	}
	if username == "" {
		username = "user_" + uuid.New().String()
		c.SetCookie(sessionCookieName, username, int(cfg.SessionCookieAge.Seconds()), "/", "", false, true)
	}

	return conversationService.GetOrCreateUser(username, fmt.Sprintf("User %s", username))
}

// loadOwnedConversation parses the :id param and returns the conversation
// when it belongs to the session user. Conversations of other users are
// reported as not found.
func loadOwnedConversation(c *gin.Context, conversationService services.ConversationServiceDB, user *models.User) (*models.Conversation, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid conversation id")
	}

	conversation, err := conversationService.GetConversation(uint(id))
	if err != nil {
		return nil, err
	}
	if conversation.UserID != user.ID {
		return nil, apperrors.NewNotFoundError("conversation not found")
	}
	return conversation, nil
}

func createConversationHandler(conversationService services.ConversationServiceDB, chatService *services.ChatService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveSessionUser(c, conversationService, cfg)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		var req struct {
			Title string `json:"title"`
		}
		// Body is optional; a missing or empty title falls back to the
		// new-chat default.
		_ = c.ShouldBindJSON(&req)
		title := req.Title
		if title == "" {
			title = cfg.NewChatTitle
		}

		conversation, err := conversationService.CreateConversation(user.ID, title)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		if _, err := chatService.CreateBotMessage(cfg.WelcomeMessage, conversation.ID); err != nil {
			log.Error().Err(err).Uint("conversationID", conversation.ID).Msg("Failed to seed welcome message")
		}

		c.JSON(http.StatusCreated, conversation)
	}
}

func listConversationsHandler(conversationService services.ConversationServiceDB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveSessionUser(c, conversationService, cfg)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		activeOnly := c.Query("include_inactive") != "true"
		conversations, err := conversationService.ListUserConversations(user.ID, activeOnly)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"conversations": conversations})
	}
}

func getConversationHandler(conversationService services.ConversationServiceDB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveSessionUser(c, conversationService, cfg)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		conversation, err := loadOwnedConversation(c, conversationService, user)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		view, err := conversationService.GetConversationWithMessages(conversation.ID)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, view)
	}
}

func listMessagesHandler(conversationService services.ConversationServiceDB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveSessionUser(c, conversationService, cfg)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		conversation, err := loadOwnedConversation(c, conversationService, user)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apperrors.HandleError(c, apperrors.NewValidationError("invalid limit"))
				return
			}
			limit = parsed
		}

		messages, err := conversationService.ListConversationMessages(conversation.ID, limit)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"messages": messages})
	}
}

func sendMessageHandler(conversationService services.ConversationServiceDB, chatService *services.ChatService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveSessionUser(c, conversationService, cfg)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		conversation, err := loadOwnedConversation(c, conversationService, user)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		var req struct {
			Content string `json:"content" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.NewValidationError("message content is required"))
			return
		}

		botMessage, err := chatService.ProcessUserMessage(conversation.ID, req.Content)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		// First successful exchange in a still-untitled conversation names
		// it after the user's opening words.
		if conversation.Title == cfg.NewChatTitle || conversation.Title == models.DefaultConversationTitle {
			if newTitle := titles.Derive(req.Content); newTitle != "" {
				if _, err := conversationService.UpdateConversationTitle(conversation.ID, newTitle); err != nil {
					log.Error().Err(err).Uint("conversationID", conversation.ID).Msg("Failed to auto-name conversation")
				}
			}
		}

		c.JSON(http.StatusCreated, botMessage)
	}
}

func renameConversationHandler(conversationService services.ConversationServiceDB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveSessionUser(c, conversationService, cfg)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		conversation, err := loadOwnedConversation(c, conversationService, user)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		var req struct {
			Title string `json:"title" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.NewValidationError("title is required"))
			return
		}

		updated, err := conversationService.UpdateConversationTitle(conversation.ID, req.Title)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func deleteConversationHandler(conversationService services.ConversationServiceDB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveSessionUser(c, conversationService, cfg)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		conversation, err := loadOwnedConversation(c, conversationService, user)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		deleted, err := conversationService.SoftDeleteConversation(conversation.ID)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		if !deleted {
			apperrors.HandleError(c, apperrors.NewNotFoundError("conversation not found"))
			return
		}

		c.Status(http.StatusNoContent)
	}
}
