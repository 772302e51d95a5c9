package service

import (
	"fmt"

	"github.com/is-richmond/course-v1/internal/apperr"
)

var (
	// ErrInsufficientQuestions is returned when the requested question count
	// exceeds the combined capacity of all chosen source tests.
	ErrInsufficientQuestions = fmt.Errorf("%w: not enough questions available", apperr.ErrInvalidRequest)
	// ErrEmptySource is returned when a chosen source test has no questions.
	ErrEmptySource = fmt.Errorf("%w: source test has no questions", apperr.ErrInvalidRequest)
)

// SourceCapacity is one source test's available question count, in request order.
type SourceCapacity struct {
	TestID    uint
	Available int
}

// PlanAllocation decides how many questions to draw from each source so that
// the counts sum to requested and never exceed a source's capacity.
//
// Every source except the last gets the floor of its proportional share of
// the request, clamped by its own capacity and by what is still unassigned.
// The last source absorbs the remainder up to its capacity. Because floor
// shares under-allocate, any leftover is then handed out one question at a
// time, cycling through the sources in order and skipping full ones. The loop
// terminates because the capacity check guarantees feasibility.
func PlanAllocation(requested int, sources []SourceCapacity) (map[uint]int, error) {
	totalAvailable := 0
	for _, src := range sources {
		if src.Available == 0 {
			return nil, fmt.Errorf("%w (test %d)", ErrEmptySource, src.TestID)
		}
		totalAvailable += src.Available
	}
	if requested > totalAvailable {
		return nil, fmt.Errorf("%w: available %d, requested %d", ErrInsufficientQuestions, totalAvailable, requested)
	}

	counts := make(map[uint]int, len(sources))
	remaining := requested

	for i, src := range sources {
		var count int
		if i == len(sources)-1 {
			count = min(remaining, src.Available)
		} else {
			proportion := float64(src.Available) / float64(totalAvailable)
			count = min(int(float64(requested)*proportion), src.Available, remaining)
		}
		counts[src.TestID] = count
		remaining -= count
	}

	for remaining > 0 {
		for _, src := range sources {
			if remaining == 0 {
				break
			}
			if counts[src.TestID] < src.Available {
				counts[src.TestID]++
				remaining--
			}
		}
	}

	return counts, nil
}
