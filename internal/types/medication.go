package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BucketMorning   = "morning"
	BucketAfternoon = "afternoon"
	BucketEvening   = "evening"
	BucketNight     = "night"
)

type Medication struct {
	gorm.Model
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"index;not null" json:"userID"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

	Name      string `gorm:"not null;column:name" json:"name"`
	Dosage    string `gorm:"column:dosage" json:"dosage"`
	Frequency string `gorm:"column:frequency" json:"frequency"`

	// TimeOfDay holds a set of dose buckets: morning, afternoon, evening, night.
	TimeOfDay datatypes.JSONSlice[string] `gorm:"column:time_of_day" json:"timeOfDay"`

	StartDate          time.Time  `gorm:"type:date;not null" json:"startDate"`
	EndDate            *time.Time `gorm:"type:date" json:"endDate,omitempty"`
	RefillReminderDate *time.Time `gorm:"type:date" json:"refillReminderDate,omitempty"`

	// Deactivated medications stay on record; the reminder sweep never
	// hard-deletes rows.
	IsActive bool `gorm:"not null;default:true;column:is_active" json:"isActive"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Medication) TableName() string {
	return "medication"
}

func (m *Medication) HasBucket(bucket string) bool {
	for _, b := range m.TimeOfDay {
		if b == bucket {
			return true
		}
	}
	return false
}
