package database

import (
	"fmt"
	"os"
	"time"

	"chatbot_go_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DSNFromEnv builds the postgres connection string from the DB_* environment
// variables.
func DSNFromEnv() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
}

// Connect opens the database and migrates the chat schema. The returned
// handle is passed to the service constructors; this package holds no
// global state.
func Connect(dsn string) (*gorm.DB, error) {
	// All timestamps are written in UTC so updated_at ordering is stable
	// across the store's encoding.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies the schema for all persisted chat entities.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{}); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}
