package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Email       string  `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PhoneNumber *string `gorm:"column:phone_number" json:"phoneNumber,omitempty"`
	Password    string  `gorm:"not null;column:password" json:"-"`
	FirstName   string  `gorm:"not null;column:first_name" json:"firstName"`
	LastName    string  `gorm:"not null;column:last_name" json:"lastName"`

	// Region selects the locale-specific guidance block for the AI chat
	// ("uk", "us", "india"); anything else falls back to global guidance.
	Region string `gorm:"column:region;default:global" json:"region"`

	AvatarBucketKey string `gorm:"column:avatar_bucket_key" json:"avatarBucketKey"`
	AvatarURL       string `gorm:"column:avatar_url" json:"avatarURL"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (User) TableName() string {
	return "user"
}
