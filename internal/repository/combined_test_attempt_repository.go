package repository

import (
	"github.com/is-richmond/course-v1/internal/model"
	"gorm.io/gorm"
)

type CombinedTestAttemptRepository interface {
	FindByIDWithAnswers(id uint) (*model.CombinedTestAttempt, error)
	FindCompletedByUser(userID model.LearnerID, skip, limit int) ([]model.CombinedTestAttempt, error)
	FindCompletedByUserWithAnswers(userID model.LearnerID) ([]model.CombinedTestAttempt, error)
}

type combinedTestAttemptRepository struct {
	db *gorm.DB
}

func NewCombinedTestAttemptRepository(db *gorm.DB) CombinedTestAttemptRepository {
	return &combinedTestAttemptRepository{db: db}
}

func (r *combinedTestAttemptRepository) FindByIDWithAnswers(id uint) (*model.CombinedTestAttempt, error) {
	var attempt model.CombinedTestAttempt
	err := r.db.
		Preload("CombinedTest.Sources.SourceTest").
		Preload("Answers.Question.Test").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *combinedTestAttemptRepository) FindCompletedByUser(userID model.LearnerID, skip, limit int) ([]model.CombinedTestAttempt, error) {
	var attempts []model.CombinedTestAttempt
	err := r.db.
		Preload("CombinedTest").
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Order("started_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

// FindCompletedByUserWithAnswers feeds the statistics aggregation. Attempts
// that never finished grading are excluded here, not downstream.
func (r *combinedTestAttemptRepository) FindCompletedByUserWithAnswers(userID model.LearnerID) ([]model.CombinedTestAttempt, error) {
	var attempts []model.CombinedTestAttempt
	err := r.db.
		Preload("Answers.Question.Test").
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Find(&attempts).Error
	return attempts, err
}
