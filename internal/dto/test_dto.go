package dto

import "time"

// QuestionOptionCreateDTO is used within QuestionCreateDTO for admin authoring.
type QuestionOptionCreateDTO struct {
	Text       string `json:"text" binding:"required"`
	IsCorrect  bool   `json:"is_correct"`
	OrderIndex int    `json:"order_index"`
}

// QuestionCreateDTO is used within TestCreateDTO for admin test creation.
type QuestionCreateDTO struct {
	Text    string                    `json:"text" binding:"required"`
	Type    string                    `json:"type" binding:"required,oneof=single_choice multiple_choice text"`
	Points  int                       `json:"points" binding:"omitempty,min=1"`
	Options []QuestionOptionCreateDTO `json:"options" binding:"omitempty,dive"`
}

// TestCreateDTO is for admin to create a new source test with all its questions.
type TestCreateDTO struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description,omitempty"`
	Questions   []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// QuestionOptionDTO is an answer option as shown to learners. Correctness is
// intentionally not exposed here.
type QuestionOptionDTO struct {
	ID         uint   `json:"id"`
	Text       string `json:"text"`
	OrderIndex int    `json:"order_index"`
}

// QuestionResponseDTO is used for displaying question details to learners.
type QuestionResponseDTO struct {
	ID      uint                `json:"id"`
	TestID  uint                `json:"test_id"`
	Text    string              `json:"text"`
	Type    string              `json:"type"`
	Points  int                 `json:"points"`
	Options []QuestionOptionDTO `json:"options,omitempty"`
}

// TestResponseDTO is used for displaying full source-test details.
type TestResponseDTO struct {
	ID          uint                  `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Questions   []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// TestSummaryDTO is used for listing source tests available as banks.
type TestSummaryDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}
