package service

import (
	"fmt"

	"github.com/is-richmond/course-v1/internal/apperr"
	"github.com/is-richmond/course-v1/internal/dto"
	"github.com/is-richmond/course-v1/internal/model"
	"github.com/is-richmond/course-v1/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// AdminTestService authors source tests, the question banks combined tests
// draw from.
type AdminTestService interface {
	CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
}

type adminTestService struct {
	testRepo repository.TestRepository
}

func NewAdminTestService(testRepo repository.TestRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo}
}

func (s *adminTestService) CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	questions := make([]model.Question, 0, len(req.Questions))
	for i, qDto := range req.Questions {
		if err := validateQuestion(qDto); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}

		points := qDto.Points
		if points == 0 {
			points = 1
		}
		question := model.Question{
			Text:        qDto.Text,
			Type:        qDto.Type,
			Points:      points,
			OrderInTest: i,
		}
		for j, oDto := range qDto.Options {
			question.Options = append(question.Options, model.QuestionOption{
				Text:       oDto.Text,
				IsCorrect:  oDto.IsCorrect,
				OrderIndex: j,
			})
		}
		questions = append(questions, question)
	}

	testModel := model.Test{
		Title:       req.Title,
		Description: req.Description,
		Questions:   questions,
	}
	if err := s.testRepo.Create(&testModel); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create source test")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}

	created, err := s.testRepo.FindByIDWithQuestions(testModel.ID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testModel.ID).Msg("Failed to reload created test for response")
		var fallback dto.TestResponseDTO
		copier.Copy(&fallback, &testModel)
		return &fallback, nil
	}

	resp := testResponseDTO(created)
	return &resp, nil
}

func validateQuestion(q dto.QuestionCreateDTO) error {
	switch q.Type {
	case model.QuestionTypeSingleChoice, model.QuestionTypeMultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: choice questions need at least two options", apperr.ErrInvalidRequest)
		}
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct == 0 {
			return fmt.Errorf("%w: choice questions need at least one correct option", apperr.ErrInvalidRequest)
		}
		if q.Type == model.QuestionTypeSingleChoice && correct != 1 {
			return fmt.Errorf("%w: single choice questions need exactly one correct option", apperr.ErrInvalidRequest)
		}
	case model.QuestionTypeText:
		if len(q.Options) > 0 {
			return fmt.Errorf("%w: text questions cannot have options", apperr.ErrInvalidRequest)
		}
	}
	return nil
}
