package model

import "time"

// CombinedTest is a learner-generated assessment drawn from several source
// tests. It is immutable once created; only creation and deletion exist.
type CombinedTest struct {
	ID             uint                   `gorm:"primarykey" json:"id"`
	UserID         LearnerID              `json:"user_id" gorm:"type:varchar(36);not null;index"`
	Title          string                 `json:"title" gorm:"not null"`
	TotalQuestions int                    `json:"total_questions" gorm:"not null"`
	CreatedAt      time.Time              `json:"created_at"`
	Sources        []CombinedTestSource   `json:"sources,omitempty" gorm:"foreignKey:CombinedTestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Questions      []CombinedTestQuestion `json:"questions,omitempty" gorm:"foreignKey:CombinedTestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Attempts       []CombinedTestAttempt  `json:"attempts,omitempty" gorm:"foreignKey:CombinedTestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CombinedTestSource records how many questions one source test contributed.
type CombinedTestSource struct {
	ID             uint `gorm:"primarykey" json:"id"`
	CombinedTestID uint `json:"combined_test_id" gorm:"not null;index"`
	SourceTestID   uint `json:"source_test_id" gorm:"not null"`
	SourceTest     Test `json:"-" gorm:"foreignKey:SourceTestID"`
	QuestionsCount int  `json:"questions_count" gorm:"not null"`
}

// CombinedTestQuestion links an original question into a combined test at a
// fixed position. OrderIndex values form the permutation 0..TotalQuestions-1.
type CombinedTestQuestion struct {
	ID             uint     `gorm:"primarykey" json:"id"`
	CombinedTestID uint     `json:"combined_test_id" gorm:"not null;index"`
	QuestionID     uint     `json:"question_id" gorm:"not null"`
	Question       Question `json:"-" gorm:"foreignKey:QuestionID"`
	OrderIndex     int      `json:"order_index" gorm:"not null"`
}
