package models

import (
	"time"

	"gorm.io/datatypes"
)

type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// AnswerSet maps question id (1..8) to the integer response value (1..5).
type AnswerSet map[int]int

// Assessment is a scored self-assessment submission. It is immutable after
// creation except for the Shared flag, which flips when the owner shares it
// with a psychologist.
type Assessment struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"not null;index"`

	Answers           datatypes.JSONType[AnswerSet]      `json:"answers" gorm:"type:jsonb;not null"`
	TotalScore        int                                `json:"total_score" gorm:"not null"`
	RiskTier          RiskTier                           `json:"risk_tier" gorm:"not null;size:20" validate:"omitempty,risk_tier"`
	CategoryBreakdown datatypes.JSONType[map[string]int] `json:"category_breakdown" gorm:"type:jsonb"`
	Recommendations   datatypes.JSONType[[]string]       `json:"recommendations" gorm:"type:jsonb"`

	Shared    bool      `json:"shared" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`

	Shares []Share `json:"-" gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE"`
}

func (Assessment) TableName() string {
	return "assessments"
}
