package service

import (
	"fmt"

	"github.com/is-richmond/course-v1/internal/dto"
	"github.com/is-richmond/course-v1/internal/model"
	"github.com/is-richmond/course-v1/internal/repository"
	"github.com/rs/zerolog/log"
)

// StatisticsService aggregates a learner's completed attempts into per-topic
// and overall performance summaries. The topic of an answer is the source
// test its question originated from.
type StatisticsService interface {
	AttemptStatistics(attemptID uint, userID model.LearnerID) (*dto.AttemptTopicStatistics, error)
	OverallStatistics(userID model.LearnerID) (*dto.OverallStatistics, error)
}

type statisticsService struct {
	attemptRepo repository.CombinedTestAttemptRepository
}

func NewStatisticsService(attemptRepo repository.CombinedTestAttemptRepository) StatisticsService {
	return &statisticsService{attemptRepo: attemptRepo}
}

func (s *statisticsService) AttemptStatistics(attemptID uint, userID model.LearnerID) (*dto.AttemptTopicStatistics, error) {
	attempt, err := findCompletedAttempt(s.attemptRepo, attemptID, userID)
	if err != nil {
		return nil, err
	}

	acc := newTopicAccumulator()
	for _, answer := range attempt.Answers {
		acc.add(answer)
	}

	return &dto.AttemptTopicStatistics{
		AttemptID:         attempt.ID,
		CombinedTestTitle: attempt.CombinedTest.Title,
		StartedAt:         attempt.StartedAt,
		CompletedAt:       attempt.CompletedAt,
		Topics:            acc.topics(),
	}, nil
}

// OverallStatistics covers completed attempts only. With no completed
// attempts it returns the zero summary with nil best and worst scores rather
// than an error.
func (s *statisticsService) OverallStatistics(userID model.LearnerID) (*dto.OverallStatistics, error) {
	attempts, err := s.attemptRepo.FindCompletedByUserWithAnswers(userID)
	if err != nil {
		log.Error().Err(err).Str("userID", string(userID)).Msg("OverallStatistics: failed to load attempts")
		return nil, fmt.Errorf("error loading attempts: %w", err)
	}

	if len(attempts) == 0 {
		return &dto.OverallStatistics{Topics: []dto.TopicStatisticsDTO{}}, nil
	}

	totalQuestions := 0
	totalCorrect := 0
	scoreSum := 0
	best := attempts[0].Score
	worst := attempts[0].Score
	acc := newTopicAccumulator()

	for _, attempt := range attempts {
		totalQuestions += attempt.TotalQuestions
		scoreSum += attempt.Score
		if attempt.Score > best {
			best = attempt.Score
		}
		if attempt.Score < worst {
			worst = attempt.Score
		}
		for _, answer := range attempt.Answers {
			acc.add(answer)
			if answer.IsCorrect {
				totalCorrect++
			}
		}
	}

	overallPercentage := 0.0
	if totalQuestions > 0 {
		overallPercentage = float64(totalCorrect) / float64(totalQuestions) * 100
	}

	return &dto.OverallStatistics{
		TotalAttempts:          len(attempts),
		TotalQuestionsAnswered: totalQuestions,
		TotalCorrectAnswers:    totalCorrect,
		OverallPercentage:      overallPercentage,
		BestAttemptScore:       &best,
		WorstAttemptScore:      &worst,
		AverageScore:           float64(scoreSum) / float64(len(attempts)),
		Topics:                 acc.topics(),
	}, nil
}

// topicAccumulator groups answers by origin source test, preserving
// first-seen order for stable output.
type topicAccumulator struct {
	order []uint
	stats map[uint]*dto.TopicStatisticsDTO
}

func newTopicAccumulator() *topicAccumulator {
	return &topicAccumulator{stats: make(map[uint]*dto.TopicStatisticsDTO)}
}

func (a *topicAccumulator) add(answer model.CombinedTestAnswer) {
	testID := answer.Question.TestID
	entry, ok := a.stats[testID]
	if !ok {
		entry = &dto.TopicStatisticsDTO{
			TestID:    testID,
			TestTitle: answer.Question.Test.Title,
		}
		a.stats[testID] = entry
		a.order = append(a.order, testID)
	}
	entry.TotalQuestionsAnswered++
	if answer.IsCorrect {
		entry.CorrectAnswers++
	}
}

func (a *topicAccumulator) topics() []dto.TopicStatisticsDTO {
	topics := make([]dto.TopicStatisticsDTO, 0, len(a.order))
	for _, testID := range a.order {
		entry := *a.stats[testID]
		if entry.TotalQuestionsAnswered > 0 {
			entry.Percentage = float64(entry.CorrectAnswers) / float64(entry.TotalQuestionsAnswered) * 100
		}
		topics = append(topics, entry)
	}
	return topics
}
