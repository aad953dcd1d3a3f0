package api

import (
	"chatbot_go_backend/cmd/api/config"
	"chatbot_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, conversationService services.ConversationServiceDB, chatService *services.ChatService, cfg *config.Config) {
	api := r.Group("/api")
	{
		api.POST("/conversations", createConversationHandler(conversationService, chatService, cfg))
		api.GET("/conversations", listConversationsHandler(conversationService, cfg))
		api.GET("/conversations/:id", getConversationHandler(conversationService, cfg))
		api.GET("/conversations/:id/messages", listMessagesHandler(conversationService, cfg))
		api.POST("/conversations/:id/messages", sendMessageHandler(conversationService, chatService, cfg))
		api.PATCH("/conversations/:id", renameConversationHandler(conversationService, cfg))
		api.DELETE("/conversations/:id", deleteConversationHandler(conversationService, cfg))
	}
}
