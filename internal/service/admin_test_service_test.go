package service

import (
	"errors"
	"testing"

	"github.com/is-richmond/course-v1/internal/apperr"
	"github.com/is-richmond/course-v1/internal/dto"
	"github.com/is-richmond/course-v1/internal/model"
	"github.com/is-richmond/course-v1/internal/repository"
)

func TestCreateTestPersistsQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminTestService(repository.NewTestRepository(db))

	resp, err := svc.CreateTest(dto.TestCreateDTO{
		Title:       "Biology",
		Description: "Cell structure basics",
		Questions: []dto.QuestionCreateDTO{
			{
				Text: "Pick the organelle",
				Type: model.QuestionTypeSingleChoice,
				Options: []dto.QuestionOptionCreateDTO{
					{Text: "Mitochondrion", IsCorrect: true},
					{Text: "Chlorophyll", IsCorrect: false},
				},
			},
			{
				Text:   "Pick all membranes",
				Type:   model.QuestionTypeMultipleChoice,
				Points: 2,
				Options: []dto.QuestionOptionCreateDTO{
					{Text: "Plasma", IsCorrect: true},
					{Text: "Nuclear", IsCorrect: true},
					{Text: "Ribosome", IsCorrect: false},
				},
			},
			{
				Text: "Describe osmosis",
				Type: model.QuestionTypeText,
			},
		},
	})
	if err != nil {
		t.Fatalf("CreateTest() error = %v", err)
	}

	if resp.Title != "Biology" {
		t.Errorf("title = %q, want Biology", resp.Title)
	}
	if len(resp.Questions) != 3 {
		t.Fatalf("created %d questions, want 3", len(resp.Questions))
	}
	if resp.Questions[0].Points != 1 {
		t.Errorf("default points = %d, want 1", resp.Questions[0].Points)
	}
	if resp.Questions[1].Points != 2 {
		t.Errorf("explicit points = %d, want 2", resp.Questions[1].Points)
	}
	if got := len(resp.Questions[1].Options); got != 3 {
		t.Errorf("second question has %d options, want 3", got)
	}
	if got := len(resp.Questions[2].Options); got != 0 {
		t.Errorf("text question has %d options, want 0", got)
	}
}

func TestCreateTestValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminTestService(repository.NewTestRepository(db))

	tests := []struct {
		name     string
		question dto.QuestionCreateDTO
	}{
		{
			name: "choice with one option",
			question: dto.QuestionCreateDTO{
				Text:    "q",
				Type:    model.QuestionTypeSingleChoice,
				Options: []dto.QuestionOptionCreateDTO{{Text: "only", IsCorrect: true}},
			},
		},
		{
			name: "choice without a correct option",
			question: dto.QuestionCreateDTO{
				Text: "q",
				Type: model.QuestionTypeMultipleChoice,
				Options: []dto.QuestionOptionCreateDTO{
					{Text: "a", IsCorrect: false},
					{Text: "b", IsCorrect: false},
				},
			},
		},
		{
			name: "single choice with two correct options",
			question: dto.QuestionCreateDTO{
				Text: "q",
				Type: model.QuestionTypeSingleChoice,
				Options: []dto.QuestionOptionCreateDTO{
					{Text: "a", IsCorrect: true},
					{Text: "b", IsCorrect: true},
				},
			},
		},
		{
			name: "text question with options",
			question: dto.QuestionCreateDTO{
				Text:    "q",
				Type:    model.QuestionTypeText,
				Options: []dto.QuestionOptionCreateDTO{{Text: "a", IsCorrect: true}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTest(dto.TestCreateDTO{
				Title:     "Invalid",
				Questions: []dto.QuestionCreateDTO{tt.question},
			})
			if !errors.Is(err, apperr.ErrInvalidRequest) {
				t.Errorf("CreateTest() error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}
