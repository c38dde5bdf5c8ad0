package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenType enumerates the kinds of opaque tokens stored for a user.
type TokenType string

const (
	TokenRefresh TokenType = "REFRESH"
	TokenReset   TokenType = "RESET"
	TokenVerify  TokenType = "VERIFY"
)

// Token stores the bcrypt hash of an opaque token, never the raw value.
type Token struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"userId"`
	Type      TokenType `gorm:"size:20;not null" json:"type"`
	TokenHash string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *Token) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
