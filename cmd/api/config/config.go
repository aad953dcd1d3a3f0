package config

import "time"

// Config carries the static application knobs. Runtime settings (database
// DSN, port, CORS origins) come from the environment in main.
type Config struct {
	NewChatTitle     string
	WelcomeMessage   string
	SessionCookieAge time.Duration
}

func NewConfig() *Config {
	return &Config{
		NewChatTitle:     "New Chat",
		WelcomeMessage:   "Hello! I'm your AI chatbot assistant. I'm here to chat with you about anything you'd like to discuss. How can I help you today?",
		SessionCookieAge: 30 * 24 * time.Hour,
	}
}
