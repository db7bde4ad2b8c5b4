package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vital struct {
	gorm.Model
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"index;not null" json:"userID"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

	Type       string    `gorm:"not null;column:type" json:"type"`
	Value      string    `gorm:"not null;column:value" json:"value"`
	Unit       string    `gorm:"column:unit" json:"unit"`
	Notes      string    `gorm:"column:notes" json:"notes,omitempty"`
	RecordedAt time.Time `gorm:"not null;column:recorded_at" json:"recordedAt"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Vital) TableName() string {
	return "vital"
}
