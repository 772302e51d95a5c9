package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/is-richmond/course-v1/internal/apperr"
	"github.com/is-richmond/course-v1/internal/dto"
	"github.com/is-richmond/course-v1/internal/model"
	"github.com/is-richmond/course-v1/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService grades answer submissions against a combined test and
// serves attempt history. Grading is deterministic; randomness only ever
// affects generation.
type SubmissionService interface {
	Submit(testID uint, req dto.CombinedTestSubmission) (*dto.CombinedTestResult, error)
	GetAttemptDetails(attemptID uint, userID model.LearnerID) (*dto.CombinedTestAttemptDetailDTO, error)
	GetUserAttempts(userID model.LearnerID, skip, limit int) ([]dto.CombinedTestAttemptSummaryDTO, error)
}

type submissionService struct {
	combinedRepo repository.CombinedTestRepository
	attemptRepo  repository.CombinedTestAttemptRepository
	db           *gorm.DB // transaction scope for attempt + answers
}

func NewSubmissionService(
	combinedRepo repository.CombinedTestRepository,
	attemptRepo repository.CombinedTestAttemptRepository,
	db *gorm.DB,
) SubmissionService {
	return &submissionService{
		combinedRepo: combinedRepo,
		attemptRepo:  attemptRepo,
		db:           db,
	}
}

// Submit grades the answer set in one transaction: the attempt row is created
// first with a zero score, one answer row is written per graded answer, and
// the final score together with the completion timestamp lands last. Nothing
// becomes visible to other readers until the transaction commits, so a
// half-graded attempt can never be observed.
func (s *submissionService) Submit(testID uint, req dto.CombinedTestSubmission) (*dto.CombinedTestResult, error) {
	combined, err := s.combinedRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: combined test with id %d", apperr.ErrNotFound, testID)
		}
		log.Error().Err(err).Uint("testID", testID).Msg("Submit: failed to load combined test")
		return nil, fmt.Errorf("error loading combined test %d: %w", testID, err)
	}
	if combined.UserID != model.LearnerID(req.UserID) {
		return nil, apperr.ErrForbidden
	}

	questionMap := make(map[uint]model.Question, len(combined.Questions))
	for _, ctq := range combined.Questions {
		questionMap[ctq.QuestionID] = ctq.Question
	}

	attempt := model.CombinedTestAttempt{
		CombinedTestID: combined.ID,
		UserID:         combined.UserID,
		Score:          0,
		TotalQuestions: combined.TotalQuestions,
		StartedAt:      time.Now().UTC(),
	}

	var (
		answerModels  []model.CombinedTestAnswer
		answerResults []dto.CombinedAnswerResultDTO
		score         int
	)
	for _, submitted := range req.Answers {
		question, ok := questionMap[submitted.QuestionID]
		if !ok {
			// Answers for questions outside the composition are ignored,
			// neither persisted nor scored.
			log.Warn().Uint("questionID", submitted.QuestionID).Uint("testID", testID).
				Msg("Submit: answer for a question not part of this combined test, skipping")
			continue
		}

		isCorrect, pointsEarned := scoreAnswer(question, submitted.SelectedOptionIDs)
		score += pointsEarned

		var selectedJSON *string
		if len(submitted.SelectedOptionIDs) > 0 {
			raw, marshalErr := json.Marshal(submitted.SelectedOptionIDs)
			if marshalErr != nil {
				return nil, fmt.Errorf("failed to encode selected options: %w", marshalErr)
			}
			encoded := string(raw)
			selectedJSON = &encoded
		}

		answerModels = append(answerModels, model.CombinedTestAnswer{
			QuestionID:        question.ID,
			SelectedOptionIDs: selectedJSON,
			TextAnswer:        submitted.TextAnswer,
			IsCorrect:         isCorrect,
			PointsEarned:      pointsEarned,
		})
		answerResults = append(answerResults, dto.CombinedAnswerResultDTO{
			QuestionID:        question.ID,
			QuestionText:      question.Text,
			SourceTestTitle:   question.Test.Title,
			SelectedOptionIDs: submitted.SelectedOptionIDs,
			TextAnswer:        submitted.TextAnswer,
			IsCorrect:         isCorrect,
			PointsEarned:      pointsEarned,
			PointsPossible:    question.Points,
		})
	}

	completedAt := time.Now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&attempt).Error; err != nil {
			return fmt.Errorf("failed to create attempt record: %w", err)
		}
		for i := range answerModels {
			answerModels[i].AttemptID = attempt.ID
		}
		if len(answerModels) > 0 {
			if err := tx.Create(&answerModels).Error; err != nil {
				return fmt.Errorf("failed to persist answers: %w", err)
			}
		}
		return tx.Model(&attempt).
			Updates(map[string]interface{}{"score": score, "completed_at": completedAt}).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Submit: transaction failed, attempt rolled back")
		return nil, err
	}

	log.Info().Uint("attemptID", attempt.ID).Uint("testID", testID).Int("score", score).
		Int("answers", len(answerModels)).Msg("Combined test attempt graded")

	return &dto.CombinedTestResult{
		AttemptID:      attempt.ID,
		CombinedTestID: combined.ID,
		Score:          score,
		TotalQuestions: combined.TotalQuestions,
		Percentage:     percentage(score, combined.TotalQuestions),
		StartedAt:      attempt.StartedAt,
		CompletedAt:    completedAt,
		Answers:        answerResults,
	}, nil
}

func (s *submissionService) GetAttemptDetails(attemptID uint, userID model.LearnerID) (*dto.CombinedTestAttemptDetailDTO, error) {
	attempt, err := findCompletedAttempt(s.attemptRepo, attemptID, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CombinedTestAttemptDetailDTO{
		ID:                attempt.ID,
		CombinedTestID:    attempt.CombinedTestID,
		CombinedTestTitle: attempt.CombinedTest.Title,
		UserID:            string(attempt.UserID),
		Score:             attempt.Score,
		TotalQuestions:    attempt.TotalQuestions,
		Percentage:        percentage(attempt.Score, attempt.TotalQuestions),
		StartedAt:         attempt.StartedAt,
		CompletedAt:       attempt.CompletedAt,
		Answers:           answerResultDTOs(attempt.Answers),
		SourceTests:       sourceDTOs(attempt.CombinedTest.Sources),
	}
	return resp, nil
}

func (s *submissionService) GetUserAttempts(userID model.LearnerID, skip, limit int) ([]dto.CombinedTestAttemptSummaryDTO, error) {
	if limit <= 0 {
		limit = 100
	}
	attempts, err := s.attemptRepo.FindCompletedByUser(userID, skip, limit)
	if err != nil {
		log.Error().Err(err).Str("userID", string(userID)).Msg("GetUserAttempts: failed to list attempts")
		return nil, fmt.Errorf("error fetching attempts: %w", err)
	}

	summaries := make([]dto.CombinedTestAttemptSummaryDTO, 0, len(attempts))
	for _, attempt := range attempts {
		summaries = append(summaries, dto.CombinedTestAttemptSummaryDTO{
			ID:                attempt.ID,
			CombinedTestID:    attempt.CombinedTestID,
			CombinedTestTitle: attempt.CombinedTest.Title,
			UserID:            string(attempt.UserID),
			Score:             attempt.Score,
			TotalQuestions:    attempt.TotalQuestions,
			Percentage:        percentage(attempt.Score, attempt.TotalQuestions),
			StartedAt:         attempt.StartedAt,
			CompletedAt:       attempt.CompletedAt,
		})
	}
	return summaries, nil
}

// findCompletedAttempt loads an attempt with its answers and enforces the
// visibility rules shared by result and statistics queries: unknown or
// still-incomplete attempts read as not found, foreign attempts as forbidden.
func findCompletedAttempt(attemptRepo repository.CombinedTestAttemptRepository, attemptID uint, userID model.LearnerID) (*model.CombinedTestAttempt, error) {
	attempt, err := attemptRepo.FindByIDWithAnswers(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attempt with id %d", apperr.ErrNotFound, attemptID)
		}
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("failed to load attempt")
		return nil, fmt.Errorf("error loading attempt %d: %w", attemptID, err)
	}
	if attempt.UserID != userID {
		return nil, apperr.ErrForbidden
	}
	if attempt.CompletedAt == nil {
		return nil, fmt.Errorf("%w: attempt with id %d", apperr.ErrNotFound, attemptID)
	}
	return attempt, nil
}

func answerResultDTOs(answers []model.CombinedTestAnswer) []dto.CombinedAnswerResultDTO {
	results := make([]dto.CombinedAnswerResultDTO, 0, len(answers))
	for _, answer := range answers {
		var selected []uint
		if answer.SelectedOptionIDs != nil {
			// Stored as a JSON array; a decode failure leaves the list empty
			// rather than failing the whole read.
			if err := json.Unmarshal([]byte(*answer.SelectedOptionIDs), &selected); err != nil {
				log.Warn().Err(err).Uint("answerID", answer.ID).Msg("could not decode stored option ids")
			}
		}
		results = append(results, dto.CombinedAnswerResultDTO{
			QuestionID:        answer.QuestionID,
			QuestionText:      answer.Question.Text,
			SourceTestTitle:   answer.Question.Test.Title,
			SelectedOptionIDs: selected,
			TextAnswer:        answer.TextAnswer,
			IsCorrect:         answer.IsCorrect,
			PointsEarned:      answer.PointsEarned,
			PointsPossible:    answer.Question.Points,
		})
	}
	return results
}

// percentage is score over the question count, not over the points-possible
// sum. Consumers depend on this exact ratio even when point values vary.
func percentage(score, totalQuestions int) float64 {
	if totalQuestions <= 0 {
		return 0
	}
	return float64(score) / float64(totalQuestions) * 100
}
