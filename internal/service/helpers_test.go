package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/is-richmond/course-v1/internal/dto"
	"github.com/is-richmond/course-v1/internal/model"
	"github.com/is-richmond/course-v1/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database and migrates the full schema.
// The DSN carries the test name so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&model.Test{},
		&model.Question{},
		&model.QuestionOption{},
		&model.CombinedTest{},
		&model.CombinedTestSource{},
		&model.CombinedTestQuestion{},
		&model.CombinedTestAttempt{},
		&model.CombinedTestAnswer{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

// seedBank creates a source test with n single choice questions worth one
// point each. The first option of every question is the correct one.
func seedBank(t *testing.T, db *gorm.DB, title string, n int) *model.Test {
	t.Helper()
	questions := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, model.Question{
			Text:        fmt.Sprintf("%s question %d", title, i+1),
			Type:        model.QuestionTypeSingleChoice,
			Points:      1,
			OrderInTest: i,
			Options: []model.QuestionOption{
				{Text: "right", IsCorrect: true, OrderIndex: 0},
				{Text: "wrong", IsCorrect: false, OrderIndex: 1},
			},
		})
	}
	return seedTest(t, db, &model.Test{Title: title, Questions: questions})
}

// seedTest persists the given test and reloads it with questions and options.
func seedTest(t *testing.T, db *gorm.DB, test *model.Test) *model.Test {
	t.Helper()
	if err := db.Create(test).Error; err != nil {
		t.Fatalf("failed to seed test %q: %v", test.Title, err)
	}
	reloaded, err := repository.NewTestRepository(db).FindByIDWithQuestions(test.ID)
	if err != nil {
		t.Fatalf("failed to reload test %q: %v", test.Title, err)
	}
	return reloaded
}

func newCombinedService(db *gorm.DB, rng Random) CombinedTestService {
	return NewCombinedTestService(
		repository.NewTestRepository(db),
		repository.NewCombinedTestRepository(db),
		NewSampler(rng),
	)
}

func newSubmissionServiceForTest(db *gorm.DB) SubmissionService {
	return NewSubmissionService(
		repository.NewCombinedTestRepository(db),
		repository.NewCombinedTestAttemptRepository(db),
		db,
	)
}

func correctSelection(q model.Question) []uint {
	var ids []uint
	for _, opt := range q.Options {
		if opt.IsCorrect {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

func wrongSelection(q model.Question) []uint {
	for _, opt := range q.Options {
		if !opt.IsCorrect {
			return []uint{opt.ID}
		}
	}
	return nil
}

// answersFor builds a full submission for the combined test, answering each
// question correctly or incorrectly according to the predicate.
func answersFor(t *testing.T, db *gorm.DB, combinedTestID uint, correct func(q model.Question) bool) []dto.CombinedAnswerSubmitDTO {
	t.Helper()
	combined, err := repository.NewCombinedTestRepository(db).FindByIDWithQuestions(combinedTestID)
	if err != nil {
		t.Fatalf("failed to load combined test %d: %v", combinedTestID, err)
	}
	answers := make([]dto.CombinedAnswerSubmitDTO, 0, len(combined.Questions))
	for _, ctq := range combined.Questions {
		answer := dto.CombinedAnswerSubmitDTO{QuestionID: ctq.QuestionID}
		if ctq.Question.Type == model.QuestionTypeText {
			text := "free form answer"
			answer.TextAnswer = &text
		} else if correct(ctq.Question) {
			answer.SelectedOptionIDs = correctSelection(ctq.Question)
		} else {
			answer.SelectedOptionIDs = wrongSelection(ctq.Question)
		}
		answers = append(answers, answer)
	}
	return answers
}
