package models

import "time"

// Share grants one psychologist visibility of one assessment. At most one
// share exists per (assessment, psychologist) pair.
type Share struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	AssessmentID   uint `json:"assessment_id" gorm:"not null;index;uniqueIndex:idx_shares_assessment_psych"`
	StudentID      uint `json:"student_id" gorm:"not null;index"`
	PsychologistID uint `json:"psychologist_id" gorm:"not null;index;uniqueIndex:idx_shares_assessment_psych"`

	Viewed   bool       `json:"viewed" gorm:"default:false"`
	ViewedAt *time.Time `json:"viewed_at,omitempty"`

	// Psychologist-entered notes about the shared assessment.
	Observations *string `json:"observations,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
}

func (Share) TableName() string {
	return "shares"
}

// MarkViewed records the first time the psychologist opened the share.
func (s *Share) MarkViewed(now time.Time) {
	s.Viewed = true
	s.ViewedAt = &now
}
