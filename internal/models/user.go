package models

import (
	"time"
)

// User owns conversations. Users are created lazily on first contact,
// keyed by their unique username.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username    string    `json:"username" gorm:"type:varchar(100);unique;not null"`
	DisplayName string    `json:"display_name" gorm:"type:varchar(200);not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
}

func (User) TableName() string { return "users" }
