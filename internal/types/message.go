package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message rows are append-only; conversations render them ordered by
// creation time.
type Message struct {
	gorm.Model
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ConversationID uuid.UUID  `gorm:"index;not null" json:"conversationID"`
	UserID         *uuid.UUID `gorm:"index" json:"userID,omitempty"`

	Role    string `gorm:"column:role" json:"role"`
	Content string `gorm:"column:content" json:"content"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Message) TableName() string {
	return "message"
}
