package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionTypeSingleChoice   = "single_choice"
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeText           = "text"
)

type Question struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	TestID      uint             `json:"test_id" gorm:"not null;index"`
	Test        Test             `json:"-" gorm:"foreignKey:TestID"`
	Text        string           `json:"text" gorm:"type:text;not null"`
	Type        string           `json:"type" gorm:"not null"` // "single_choice", "multiple_choice", "text"
	Points      int              `json:"points" gorm:"not null;default:1"`
	OrderInTest int              `json:"order_in_test"`
	Options     []QuestionOption `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

type QuestionOption struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	Text       string `json:"text" gorm:"type:text;not null"`
	IsCorrect  bool   `json:"is_correct" gorm:"not null;default:false"`
	OrderIndex int    `json:"order_index"`
}
