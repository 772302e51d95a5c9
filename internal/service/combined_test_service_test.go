package service

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/is-richmond/course-v1/internal/apperr"
	"github.com/is-richmond/course-v1/internal/dto"
	"github.com/is-richmond/course-v1/internal/model"
	"github.com/is-richmond/course-v1/internal/repository"
)

func TestGenerateCombinedTest(t *testing.T) {
	db := newTestDB(t)
	algebra := seedBank(t, db, "Algebra", 6)
	geometry := seedBank(t, db, "Geometry", 4)
	svc := newCombinedService(db, rand.New(rand.NewSource(1)))

	resp, err := svc.Generate(dto.CombinedTestGenerateRequest{
		UserID:         "learner-1",
		SourceTestIDs:  []uint{algebra.ID, geometry.ID},
		QuestionsCount: 5,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if resp.Title != "Combined Test: Algebra + Geometry" {
		t.Errorf("title = %q, want %q", resp.Title, "Combined Test: Algebra + Geometry")
	}
	if resp.TotalQuestions != 5 {
		t.Errorf("total questions = %d, want 5", resp.TotalQuestions)
	}
	if len(resp.SourceTests) != 2 {
		t.Fatalf("source tests = %d, want 2", len(resp.SourceTests))
	}
	sum := 0
	for _, src := range resp.SourceTests {
		if src.QuestionsCount < 1 {
			t.Errorf("source %d contributed %d questions, want at least 1", src.SourceTestID, src.QuestionsCount)
		}
		sum += src.QuestionsCount
	}
	if sum != 5 {
		t.Errorf("source contributions sum to %d, want 5", sum)
	}

	detail, err := svc.GetTestDetails(resp.ID, "learner-1")
	if err != nil {
		t.Fatalf("GetTestDetails() error = %v", err)
	}
	if len(detail.Questions) != 5 {
		t.Fatalf("detail has %d questions, want 5", len(detail.Questions))
	}
	seen := make(map[uint]bool)
	for i, q := range detail.Questions {
		if q.OrderIndex != i {
			t.Errorf("question at position %d has order index %d", i, q.OrderIndex)
		}
		if seen[q.QuestionID] {
			t.Errorf("question %d appears more than once", q.QuestionID)
		}
		seen[q.QuestionID] = true
		if q.SourceTestTitle != "Algebra" && q.SourceTestTitle != "Geometry" {
			t.Errorf("question %d carries unknown source title %q", q.QuestionID, q.SourceTestTitle)
		}
		for _, opt := range q.Options {
			if opt.Text == "" {
				t.Errorf("question %d has an option without text", q.QuestionID)
			}
		}
	}
}

func TestGenerateUnknownSource(t *testing.T) {
	db := newTestDB(t)
	algebra := seedBank(t, db, "Algebra", 3)
	svc := newCombinedService(db, rand.New(rand.NewSource(1)))

	_, err := svc.Generate(dto.CombinedTestGenerateRequest{
		UserID:         "learner-1",
		SourceTestIDs:  []uint{algebra.ID, 9999},
		QuestionsCount: 2,
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Generate() error = %v, want ErrNotFound", err)
	}
}

func TestGenerateEmptySourceRejected(t *testing.T) {
	db := newTestDB(t)
	empty := &model.Test{Title: "Empty"}
	if err := db.Create(empty).Error; err != nil {
		t.Fatalf("failed to seed empty test: %v", err)
	}
	svc := newCombinedService(db, rand.New(rand.NewSource(1)))

	_, err := svc.Generate(dto.CombinedTestGenerateRequest{
		UserID:         "learner-1",
		SourceTestIDs:  []uint{empty.ID},
		QuestionsCount: 1,
	})
	if !errors.Is(err, apperr.ErrInvalidRequest) {
		t.Fatalf("Generate() error = %v, want ErrInvalidRequest", err)
	}
}

func TestGenerateOverCapacityRejected(t *testing.T) {
	db := newTestDB(t)
	algebra := seedBank(t, db, "Algebra", 6)
	geometry := seedBank(t, db, "Geometry", 4)
	svc := newCombinedService(db, rand.New(rand.NewSource(1)))

	_, err := svc.Generate(dto.CombinedTestGenerateRequest{
		UserID:         "learner-1",
		SourceTestIDs:  []uint{algebra.ID, geometry.ID},
		QuestionsCount: 11,
	})
	if !errors.Is(err, ErrInsufficientQuestions) {
		t.Fatalf("Generate() error = %v, want ErrInsufficientQuestions", err)
	}
}

func TestGetTestDetailsAccessControl(t *testing.T) {
	db := newTestDB(t)
	algebra := seedBank(t, db, "Algebra", 3)
	svc := newCombinedService(db, rand.New(rand.NewSource(1)))

	resp, err := svc.Generate(dto.CombinedTestGenerateRequest{
		UserID:         "owner",
		SourceTestIDs:  []uint{algebra.ID},
		QuestionsCount: 2,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := svc.GetTestDetails(resp.ID, "someone-else"); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("GetTestDetails() as non-owner error = %v, want ErrForbidden", err)
	}
	if _, err := svc.GetTestDetails(9999, "owner"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("GetTestDetails() for unknown id error = %v, want ErrNotFound", err)
	}
}

func TestGetUserTests(t *testing.T) {
	db := newTestDB(t)
	algebra := seedBank(t, db, "Algebra", 4)
	svc := newCombinedService(db, rand.New(rand.NewSource(1)))

	for _, userID := range []string{"alice", "alice", "bob"} {
		_, err := svc.Generate(dto.CombinedTestGenerateRequest{
			UserID:         userID,
			SourceTestIDs:  []uint{algebra.ID},
			QuestionsCount: 2,
		})
		if err != nil {
			t.Fatalf("Generate() for %s error = %v", userID, err)
		}
	}

	tests, err := svc.GetUserTests("alice")
	if err != nil {
		t.Fatalf("GetUserTests() error = %v", err)
	}
	if len(tests) != 2 {
		t.Fatalf("alice sees %d tests, want 2", len(tests))
	}
	for _, ct := range tests {
		if ct.UserID != "alice" {
			t.Errorf("listed test %d belongs to %q", ct.ID, ct.UserID)
		}
		if len(ct.SourceTests) != 1 || ct.SourceTests[0].SourceTestTitle != "Algebra" {
			t.Errorf("listed test %d has unexpected sources %+v", ct.ID, ct.SourceTests)
		}
	}
}

func TestDeleteCombinedTest(t *testing.T) {
	db := newTestDB(t)
	algebra := seedBank(t, db, "Algebra", 4)
	svc := newCombinedService(db, rand.New(rand.NewSource(1)))
	submissions := newSubmissionServiceForTest(db)

	resp, err := svc.Generate(dto.CombinedTestGenerateRequest{
		UserID:         "owner",
		SourceTestIDs:  []uint{algebra.ID},
		QuestionsCount: 3,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	answers := answersFor(t, db, resp.ID, func(model.Question) bool { return true })
	if _, err := submissions.Submit(resp.ID, dto.CombinedTestSubmission{UserID: "owner", Answers: answers}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if err := svc.Delete(resp.ID, "someone-else"); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("Delete() as non-owner error = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(resp.ID, "owner"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(resp.ID, "owner"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}

	for _, target := range []interface{}{
		&model.CombinedTest{},
		&model.CombinedTestSource{},
		&model.CombinedTestQuestion{},
		&model.CombinedTestAttempt{},
		&model.CombinedTestAnswer{},
	} {
		var count int64
		if err := db.Model(target).Count(&count).Error; err != nil {
			t.Fatalf("count after delete failed: %v", err)
		}
		if count != 0 {
			t.Errorf("%T rows remaining after delete: %d", target, count)
		}
	}

	// Source material is untouched by combined test deletion.
	if _, err := repository.NewTestRepository(db).FindByIDWithQuestions(algebra.ID); err != nil {
		t.Errorf("source test lost after delete: %v", err)
	}
}
