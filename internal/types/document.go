package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	gorm.Model
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"index;not null" json:"userID"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

	Name        string `gorm:"not null;column:name" json:"name"`
	ContentType string `gorm:"column:content_type" json:"contentType"`
	SizeBytes   int64  `gorm:"column:size_bytes" json:"sizeBytes"`
	BucketKey   string `gorm:"not null;column:bucket_key" json:"bucketKey"`
	URL         string `gorm:"column:url" json:"url"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Document) TableName() string {
	return "document"
}
