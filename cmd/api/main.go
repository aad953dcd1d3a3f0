package main

import (
	"log"
	"os"
	"strings"
	"time"

	"chatbot_go_backend/cmd/api/config"
	"chatbot_go_backend/internal/api"
	"chatbot_go_backend/internal/database"
	"chatbot_go_backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := database.Connect(database.DSNFromEnv())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	cfg := config.NewConfig()

	// Initialize internal services
	conversationService := services.NewConversationServiceDB(db)
	responderService := services.NewResponderService(nil)
	chatService := services.NewChatService(conversationService, responderService)

	r := gin.Default()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173" // Default to your local frontend
	}

	// CORS middleware configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(allowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Username"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, conversationService, chatService, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
