package model

// CombinedTestAnswer is one graded answer within an attempt. Selected option
// ids are stored as a JSON array string, matching the wire shape. Rows are
// written during grading and never updated.
type CombinedTestAnswer struct {
	ID                uint     `gorm:"primarykey" json:"id"`
	AttemptID         uint     `json:"attempt_id" gorm:"not null;index"`
	QuestionID        uint     `json:"question_id" gorm:"not null"`
	Question          Question `json:"-" gorm:"foreignKey:QuestionID"`
	SelectedOptionIDs *string  `json:"selected_option_ids,omitempty" gorm:"type:text"`
	TextAnswer        *string  `json:"text_answer,omitempty" gorm:"type:text"`
	IsCorrect         bool     `json:"is_correct" gorm:"not null;default:false"`
	PointsEarned      int      `json:"points_earned" gorm:"not null;default:0"`
}
