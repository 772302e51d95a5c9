package model

import "time"

// CombinedTestAttempt is one submission of a combined test by its owner.
// It is created with a zero score, written once by the grader (score and
// CompletedAt), and never mutated again. An attempt with a nil CompletedAt
// must not be surfaced by result or statistics queries.
type CombinedTestAttempt struct {
	ID             uint                 `gorm:"primarykey" json:"id"`
	CombinedTestID uint                 `json:"combined_test_id" gorm:"not null;index"`
	CombinedTest   CombinedTest         `json:"-" gorm:"foreignKey:CombinedTestID"`
	UserID         LearnerID            `json:"user_id" gorm:"type:varchar(36);not null;index"`
	Score          int                  `json:"score" gorm:"not null;default:0"`
	TotalQuestions int                  `json:"total_questions" gorm:"not null"`
	StartedAt      time.Time            `json:"started_at"`
	CompletedAt    *time.Time           `json:"completed_at,omitempty"`
	Answers        []CombinedTestAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
