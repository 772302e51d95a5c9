package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/is-richmond/course-v1/internal/apperr"
	"github.com/is-richmond/course-v1/internal/dto"
	"github.com/is-richmond/course-v1/internal/model"
	"github.com/is-richmond/course-v1/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CombinedTestService generates combined tests from source banks and serves
// the composition read models. Compositions are immutable after creation.
type CombinedTestService interface {
	Generate(req dto.CombinedTestGenerateRequest) (*dto.CombinedTestResponse, error)
	GetTestDetails(testID uint, userID model.LearnerID) (*dto.CombinedTestDetailResponse, error)
	GetUserTests(userID model.LearnerID) ([]dto.CombinedTestResponse, error)
	Delete(testID uint, userID model.LearnerID) error
}

type combinedTestService struct {
	testRepo     repository.TestRepository
	combinedRepo repository.CombinedTestRepository
	sampler      *Sampler
}

func NewCombinedTestService(
	testRepo repository.TestRepository,
	combinedRepo repository.CombinedTestRepository,
	sampler *Sampler,
) CombinedTestService {
	return &combinedTestService{
		testRepo:     testRepo,
		combinedRepo: combinedRepo,
		sampler:      sampler,
	}
}

// Generate verifies the source tests, plans the per-source allocation,
// samples and shuffles the questions, and persists the whole composition
// atomically.
func (s *combinedTestService) Generate(req dto.CombinedTestGenerateRequest) (*dto.CombinedTestResponse, error) {
	sources := make([]model.Test, 0, len(req.SourceTestIDs))
	capacities := make([]SourceCapacity, 0, len(req.SourceTestIDs))
	for _, testID := range req.SourceTestIDs {
		test, err := s.testRepo.FindByIDWithQuestions(testID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: test with id %d", apperr.ErrNotFound, testID)
			}
			log.Error().Err(err).Uint("testID", testID).Msg("Generate: failed to load source test")
			return nil, fmt.Errorf("error loading source test %d: %w", testID, err)
		}
		if len(test.Questions) == 0 {
			return nil, fmt.Errorf("%w: test %q", ErrEmptySource, test.Title)
		}
		sources = append(sources, *test)
		capacities = append(capacities, SourceCapacity{TestID: test.ID, Available: len(test.Questions)})
	}

	plan, err := PlanAllocation(req.QuestionsCount, capacities)
	if err != nil {
		return nil, err
	}

	selected := s.sampler.Sample(sources, plan)

	titles := make([]string, len(sources))
	combined := model.CombinedTest{
		UserID:         model.LearnerID(req.UserID),
		TotalQuestions: req.QuestionsCount,
	}
	for i, test := range sources {
		titles[i] = test.Title
		combined.Sources = append(combined.Sources, model.CombinedTestSource{
			SourceTestID:   test.ID,
			QuestionsCount: plan[test.ID],
		})
	}
	combined.Title = "Combined Test: " + strings.Join(titles, " + ")
	for idx, question := range selected {
		combined.Questions = append(combined.Questions, model.CombinedTestQuestion{
			QuestionID: question.ID,
			OrderIndex: idx,
		})
	}

	if err := s.combinedRepo.Create(&combined); err != nil {
		log.Error().Err(err).Str("userID", req.UserID).Msg("Generate: failed to persist combined test")
		return nil, fmt.Errorf("failed to create combined test: %w", err)
	}
	log.Info().Uint("combinedTestID", combined.ID).Str("userID", req.UserID).
		Int("totalQuestions", combined.TotalQuestions).Msg("Combined test generated")

	titleByID := make(map[uint]string, len(sources))
	for _, test := range sources {
		titleByID[test.ID] = test.Title
	}
	resp := &dto.CombinedTestResponse{
		ID:             combined.ID,
		UserID:         string(combined.UserID),
		Title:          combined.Title,
		TotalQuestions: combined.TotalQuestions,
		CreatedAt:      combined.CreatedAt,
		SourceTests:    make([]dto.CombinedTestSourceDTO, 0, len(combined.Sources)),
	}
	for _, src := range combined.Sources {
		resp.SourceTests = append(resp.SourceTests, dto.CombinedTestSourceDTO{
			SourceTestID:    src.SourceTestID,
			SourceTestTitle: titleByID[src.SourceTestID],
			QuestionsCount:  src.QuestionsCount,
		})
	}
	return resp, nil
}

func (s *combinedTestService) GetTestDetails(testID uint, userID model.LearnerID) (*dto.CombinedTestDetailResponse, error) {
	combined, err := s.combinedRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: combined test with id %d", apperr.ErrNotFound, testID)
		}
		log.Error().Err(err).Uint("testID", testID).Msg("GetTestDetails: failed to load combined test")
		return nil, fmt.Errorf("error loading combined test %d: %w", testID, err)
	}
	if combined.UserID != userID {
		return nil, apperr.ErrForbidden
	}

	resp := &dto.CombinedTestDetailResponse{
		ID:             combined.ID,
		UserID:         string(combined.UserID),
		Title:          combined.Title,
		TotalQuestions: combined.TotalQuestions,
		CreatedAt:      combined.CreatedAt,
		SourceTests:    sourceDTOs(combined.Sources),
		Questions:      make([]dto.CombinedTestQuestionDTO, 0, len(combined.Questions)),
	}
	for _, ctq := range combined.Questions {
		questionDTO := dto.CombinedTestQuestionDTO{
			ID:              ctq.ID,
			QuestionID:      ctq.QuestionID,
			OrderIndex:      ctq.OrderIndex,
			QuestionText:    ctq.Question.Text,
			QuestionType:    ctq.Question.Type,
			Points:          ctq.Question.Points,
			SourceTestTitle: ctq.Question.Test.Title,
		}
		for _, opt := range ctq.Question.Options {
			questionDTO.Options = append(questionDTO.Options, dto.QuestionOptionDTO{
				ID:         opt.ID,
				Text:       opt.Text,
				OrderIndex: opt.OrderIndex,
			})
		}
		resp.Questions = append(resp.Questions, questionDTO)
	}
	return resp, nil
}

func (s *combinedTestService) GetUserTests(userID model.LearnerID) ([]dto.CombinedTestResponse, error) {
	tests, err := s.combinedRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Str("userID", string(userID)).Msg("GetUserTests: failed to list combined tests")
		return nil, fmt.Errorf("error fetching combined tests: %w", err)
	}

	responses := make([]dto.CombinedTestResponse, 0, len(tests))
	for _, test := range tests {
		responses = append(responses, dto.CombinedTestResponse{
			ID:             test.ID,
			UserID:         string(test.UserID),
			Title:          test.Title,
			TotalQuestions: test.TotalQuestions,
			CreatedAt:      test.CreatedAt,
			SourceTests:    sourceDTOs(test.Sources),
		})
	}
	return responses, nil
}

func (s *combinedTestService) Delete(testID uint, userID model.LearnerID) error {
	combined, err := s.combinedRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: combined test with id %d", apperr.ErrNotFound, testID)
		}
		return fmt.Errorf("error loading combined test %d: %w", testID, err)
	}
	if combined.UserID != userID {
		return apperr.ErrForbidden
	}
	if err := s.combinedRepo.Delete(testID); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Delete: failed to delete combined test")
		return fmt.Errorf("failed to delete combined test %d: %w", testID, err)
	}
	return nil
}

func sourceDTOs(sources []model.CombinedTestSource) []dto.CombinedTestSourceDTO {
	dtos := make([]dto.CombinedTestSourceDTO, 0, len(sources))
	for _, src := range sources {
		dtos = append(dtos, dto.CombinedTestSourceDTO{
			SourceTestID:    src.SourceTestID,
			SourceTestTitle: src.SourceTest.Title,
			QuestionsCount:  src.QuestionsCount,
		})
	}
	return dtos
}
