package service

import (
	"github.com/is-richmond/course-v1/internal/model"
)

// Sampler draws the planned number of questions from each source test and
// produces one globally shuffled sequence.
type Sampler struct {
	rng Random
}

func NewSampler(rng Random) *Sampler {
	return &Sampler{rng: rng}
}

// Sample selects plan[test.ID] questions uniformly at random without
// replacement from each source, then shuffles the combined list so the final
// ordering is not grouped by source. The caller assigns position indices from
// the returned order.
func (s *Sampler) Sample(sources []model.Test, plan map[uint]int) []model.Question {
	var selected []model.Question
	for _, test := range sources {
		count := plan[test.ID]
		perm := s.rng.Perm(len(test.Questions))
		for _, idx := range perm[:count] {
			selected = append(selected, test.Questions[idx])
		}
	}

	s.rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	return selected
}
