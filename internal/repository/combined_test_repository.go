package repository

import (
	"github.com/is-richmond/course-v1/internal/model"
	"gorm.io/gorm"
)

type CombinedTestRepository interface {
	Create(test *model.CombinedTest) error
	FindByID(id uint) (*model.CombinedTest, error)
	FindByIDWithQuestions(id uint) (*model.CombinedTest, error)
	FindAllByUser(userID model.LearnerID) ([]model.CombinedTest, error)
	Delete(id uint) error
}

type combinedTestRepository struct {
	db *gorm.DB
}

func NewCombinedTestRepository(db *gorm.DB) CombinedTestRepository {
	return &combinedTestRepository{db: db}
}

func (r *combinedTestRepository) Create(test *model.CombinedTest) error {
	// Sources and questions are created together with the parent row inside
	// the implicit GORM transaction, so the composition becomes visible as a
	// whole or not at all.
	return r.db.Create(test).Error
}

func (r *combinedTestRepository) FindByID(id uint) (*model.CombinedTest, error) {
	var test model.CombinedTest
	if err := r.db.First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

// FindByIDWithQuestions loads the full composition read model in one pass:
// sources with their titles, and questions with their option sets and origin
// test, ordered by position.
func (r *combinedTestRepository) FindByIDWithQuestions(id uint) (*model.CombinedTest, error) {
	var test model.CombinedTest
	err := r.db.
		Preload("Sources.SourceTest").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("combined_test_questions.order_index ASC")
		}).
		Preload("Questions.Question.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.order_index ASC")
		}).
		Preload("Questions.Question.Test").
		First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *combinedTestRepository) FindAllByUser(userID model.LearnerID) ([]model.CombinedTest, error) {
	var tests []model.CombinedTest
	err := r.db.
		Preload("Sources.SourceTest").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tests).Error
	return tests, err
}

// Delete removes the combined test and everything owned by it. Children are
// deleted explicitly inside one transaction so the behavior does not depend on
// database-level cascade support.
func (r *combinedTestRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		attemptIDs := tx.Session(&gorm.Session{NewDB: true}).
			Model(&model.CombinedTestAttempt{}).
			Select("id").
			Where("combined_test_id = ?", id)
		if err := tx.Where("attempt_id IN (?)", attemptIDs).Delete(&model.CombinedTestAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("combined_test_id = ?", id).Delete(&model.CombinedTestAttempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("combined_test_id = ?", id).Delete(&model.CombinedTestQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("combined_test_id = ?", id).Delete(&model.CombinedTestSource{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.CombinedTest{}, id).Error
	})
}
