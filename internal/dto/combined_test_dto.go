package dto

import "time"

// --- Generation ---

// CombinedTestGenerateRequest asks for a new combined test drawn from the
// given source tests.
type CombinedTestGenerateRequest struct {
	UserID         string `json:"user_id" binding:"required"`
	SourceTestIDs  []uint `json:"source_test_ids" binding:"required,min=1,max=10"`
	QuestionsCount int    `json:"questions_count" binding:"required,min=1,max=40"`
}

// CombinedTestSourceDTO reports one source test's contribution.
type CombinedTestSourceDTO struct {
	SourceTestID    uint   `json:"source_test_id"`
	SourceTestTitle string `json:"source_test_title"`
	QuestionsCount  int    `json:"questions_count"`
}

// CombinedTestResponse is the summary view of a generated combined test.
type CombinedTestResponse struct {
	ID             uint                    `json:"id"`
	UserID         string                  `json:"user_id"`
	Title          string                  `json:"title"`
	TotalQuestions int                     `json:"total_questions"`
	CreatedAt      time.Time               `json:"created_at"`
	SourceTests    []CombinedTestSourceDTO `json:"source_tests"`
}

// CombinedTestQuestionDTO is one question of a combined test in its shuffled
// position, with everything a learner needs to answer it.
type CombinedTestQuestionDTO struct {
	ID              uint                `json:"id"`
	QuestionID      uint                `json:"question_id"`
	OrderIndex      int                 `json:"order_index"`
	QuestionText    string              `json:"question_text"`
	QuestionType    string              `json:"question_type"`
	Points          int                 `json:"points"`
	SourceTestTitle string              `json:"source_test_title"`
	Options         []QuestionOptionDTO `json:"options,omitempty"`
}

// CombinedTestDetailResponse is a combined test with its full question list.
type CombinedTestDetailResponse struct {
	ID             uint                      `json:"id"`
	UserID         string                    `json:"user_id"`
	Title          string                    `json:"title"`
	TotalQuestions int                       `json:"total_questions"`
	CreatedAt      time.Time                 `json:"created_at"`
	SourceTests    []CombinedTestSourceDTO   `json:"source_tests"`
	Questions      []CombinedTestQuestionDTO `json:"questions"`
}

// --- Submission ---

// CombinedAnswerSubmitDTO is a learner's answer to a single question.
type CombinedAnswerSubmitDTO struct {
	QuestionID        uint    `json:"question_id" binding:"required"`
	SelectedOptionIDs []uint  `json:"selected_option_ids,omitempty"`
	TextAnswer        *string `json:"text_answer,omitempty"`
}

// CombinedTestSubmission is the full answer set for one attempt.
type CombinedTestSubmission struct {
	UserID  string                    `json:"user_id" binding:"required"`
	Answers []CombinedAnswerSubmitDTO `json:"answers" binding:"required,dive"`
}

// CombinedAnswerResultDTO is the graded outcome for one answer.
type CombinedAnswerResultDTO struct {
	QuestionID        uint    `json:"question_id"`
	QuestionText      string  `json:"question_text"`
	SourceTestTitle   string  `json:"source_test_title"`
	SelectedOptionIDs []uint  `json:"selected_option_ids,omitempty"`
	TextAnswer        *string `json:"text_answer,omitempty"`
	IsCorrect         bool    `json:"is_correct"`
	PointsEarned      int     `json:"points_earned"`
	PointsPossible    int     `json:"points_possible"`
}

// CombinedTestResult is the response to a submission once grading finished.
// Percentage is score over question count, not over the points-possible sum;
// downstream consumers depend on that exact ratio.
type CombinedTestResult struct {
	AttemptID      uint                      `json:"attempt_id"`
	CombinedTestID uint                      `json:"combined_test_id"`
	Score          int                       `json:"score"`
	TotalQuestions int                       `json:"total_questions"`
	Percentage     float64                   `json:"percentage"`
	StartedAt      time.Time                 `json:"started_at"`
	CompletedAt    time.Time                 `json:"completed_at"`
	Answers        []CombinedAnswerResultDTO `json:"answers"`
}

// --- Attempt history ---

// CombinedTestAttemptSummaryDTO lists one completed attempt.
type CombinedTestAttemptSummaryDTO struct {
	ID                uint       `json:"id"`
	CombinedTestID    uint       `json:"combined_test_id"`
	CombinedTestTitle string     `json:"combined_test_title"`
	UserID            string     `json:"user_id"`
	Score             int        `json:"score"`
	TotalQuestions    int        `json:"total_questions"`
	Percentage        float64    `json:"percentage"`
	StartedAt         time.Time  `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// CombinedTestAttemptDetailDTO is a completed attempt with all its answers.
type CombinedTestAttemptDetailDTO struct {
	ID                uint                      `json:"id"`
	CombinedTestID    uint                      `json:"combined_test_id"`
	CombinedTestTitle string                    `json:"combined_test_title"`
	UserID            string                    `json:"user_id"`
	Score             int                       `json:"score"`
	TotalQuestions    int                       `json:"total_questions"`
	Percentage        float64                   `json:"percentage"`
	StartedAt         time.Time                 `json:"started_at"`
	CompletedAt       *time.Time                `json:"completed_at,omitempty"`
	Answers           []CombinedAnswerResultDTO `json:"answers"`
	SourceTests       []CombinedTestSourceDTO   `json:"source_tests"`
}

// --- Statistics ---

// TopicStatisticsDTO summarizes performance on questions from one source test.
type TopicStatisticsDTO struct {
	TestID                 uint    `json:"test_id"`
	TestTitle              string  `json:"test_title"`
	TotalQuestionsAnswered int     `json:"total_questions_answered"`
	CorrectAnswers         int     `json:"correct_answers"`
	Percentage             float64 `json:"percentage"`
}

// AttemptTopicStatistics is the per-topic breakdown of a single attempt.
type AttemptTopicStatistics struct {
	AttemptID         uint                 `json:"attempt_id"`
	CombinedTestTitle string               `json:"combined_test_title"`
	StartedAt         time.Time            `json:"started_at"`
	CompletedAt       *time.Time           `json:"completed_at,omitempty"`
	Topics            []TopicStatisticsDTO `json:"topics"`
}

// OverallStatistics aggregates all of a learner's completed attempts. Best and
// worst scores are nil when there are no completed attempts.
type OverallStatistics struct {
	TotalAttempts          int                  `json:"total_attempts"`
	TotalQuestionsAnswered int                  `json:"total_questions_answered"`
	TotalCorrectAnswers    int                  `json:"total_correct_answers"`
	OverallPercentage      float64              `json:"overall_percentage"`
	BestAttemptScore       *int                 `json:"best_attempt_score"`
	WorstAttemptScore      *int                 `json:"worst_attempt_score"`
	AverageScore           float64              `json:"average_score"`
	Topics                 []TopicStatisticsDTO `json:"topics"`
}
