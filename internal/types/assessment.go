package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DiseaseAssessment struct {
	gorm.Model
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"index;not null" json:"userID"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

	DiseaseType string `gorm:"not null;column:disease_type" json:"diseaseType"`

	// InputData is the raw metric map the caller submitted; it is stored
	// as-is and only interpreted by the model prompt.
	InputData datatypes.JSONMap `gorm:"column:input_data" json:"inputData"`

	RiskLevel       string                      `gorm:"column:risk_level" json:"riskLevel"`
	RiskScore       float64                     `gorm:"column:risk_score" json:"riskScore"`
	AiAnalysis      string                      `gorm:"column:ai_analysis" json:"aiAnalysis"`
	Recommendations datatypes.JSONSlice[string] `gorm:"column:recommendations" json:"recommendations"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (DiseaseAssessment) TableName() string {
	return "disease_assessment"
}
