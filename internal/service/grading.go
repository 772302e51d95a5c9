package service

import "github.com/is-richmond/course-v1/internal/model"

// scoreAnswer grades one submitted answer against its question. Choice
// questions require exact set equality between the selected option ids and
// the correct option ids; supersets, subsets and empty selections all earn
// zero. Text answers are stored but never auto-graded, so they always come
// back incorrect with zero points.
func scoreAnswer(question model.Question, selectedOptionIDs []uint) (isCorrect bool, pointsEarned int) {
	switch question.Type {
	case model.QuestionTypeSingleChoice, model.QuestionTypeMultipleChoice:
		if len(selectedOptionIDs) == 0 {
			return false, 0
		}
		correct := make(map[uint]struct{})
		for _, opt := range question.Options {
			if opt.IsCorrect {
				correct[opt.ID] = struct{}{}
			}
		}
		selected := make(map[uint]struct{}, len(selectedOptionIDs))
		for _, id := range selectedOptionIDs {
			selected[id] = struct{}{}
		}
		if len(selected) != len(correct) {
			return false, 0
		}
		for id := range selected {
			if _, ok := correct[id]; !ok {
				return false, 0
			}
		}
		return true, question.Points
	default:
		return false, 0
	}
}
