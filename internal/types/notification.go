package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationTypeMedication = "medication"
	NotificationTypeRefill     = "refill"
)

// Notification rows are write-once by producers (the reminder sweep); readers
// only flip is_read.
type Notification struct {
	gorm.Model
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"index;not null" json:"userID"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

	Type    string `gorm:"not null;column:type" json:"type"`
	Title   string `gorm:"not null;column:title" json:"title"`
	Message string `gorm:"column:message" json:"message"`
	IsRead  bool   `gorm:"not null;default:false;column:is_read" json:"isRead"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Notification) TableName() string {
	return "notification"
}
