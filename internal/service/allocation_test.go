package service

import (
	"errors"
	"testing"

	"github.com/is-richmond/course-v1/internal/apperr"
)

func TestPlanAllocation(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		sources   []SourceCapacity
		want      map[uint]int
	}{
		{
			name:      "proportional two sources",
			requested: 9,
			sources:   []SourceCapacity{{TestID: 1, Available: 10}, {TestID: 2, Available: 5}},
			want:      map[uint]int{1: 6, 2: 3},
		},
		{
			name:      "even sources with remainder redistributed",
			requested: 8,
			sources:   []SourceCapacity{{TestID: 1, Available: 3}, {TestID: 2, Available: 3}, {TestID: 3, Available: 3}},
			want:      map[uint]int{1: 3, 2: 2, 3: 3},
		},
		{
			name:      "request equals total capacity",
			requested: 15,
			sources:   []SourceCapacity{{TestID: 1, Available: 10}, {TestID: 2, Available: 5}},
			want:      map[uint]int{1: 10, 2: 5},
		},
		{
			name:      "single source",
			requested: 4,
			sources:   []SourceCapacity{{TestID: 7, Available: 9}},
			want:      map[uint]int{7: 4},
		},
		{
			name:      "small first source clamped by capacity",
			requested: 9,
			sources:   []SourceCapacity{{TestID: 1, Available: 8}, {TestID: 2, Available: 1}},
			want:      map[uint]int{1: 8, 2: 1},
		},
		{
			name:      "last source absorbs the bulk",
			requested: 10,
			sources:   []SourceCapacity{{TestID: 1, Available: 2}, {TestID: 2, Available: 10}},
			want:      map[uint]int{1: 1, 2: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlanAllocation(tt.requested, tt.sources)
			if err != nil {
				t.Fatalf("PlanAllocation() error = %v", err)
			}
			sum := 0
			for _, src := range tt.sources {
				count := got[src.TestID]
				if count < 0 || count > src.Available {
					t.Errorf("source %d allocated %d, capacity %d", src.TestID, count, src.Available)
				}
				sum += count
			}
			if sum != tt.requested {
				t.Errorf("allocated %d questions in total, want %d", sum, tt.requested)
			}
			for testID, want := range tt.want {
				if got[testID] != want {
					t.Errorf("source %d allocated %d, want %d", testID, got[testID], want)
				}
			}
		})
	}
}

func TestPlanAllocationInsufficientCapacity(t *testing.T) {
	_, err := PlanAllocation(10, []SourceCapacity{
		{TestID: 1, Available: 5},
		{TestID: 2, Available: 3},
	})
	if !errors.Is(err, ErrInsufficientQuestions) {
		t.Fatalf("PlanAllocation() error = %v, want ErrInsufficientQuestions", err)
	}
	if !errors.Is(err, apperr.ErrInvalidRequest) {
		t.Errorf("error should map to an invalid request, got %v", err)
	}
}

func TestPlanAllocationEmptySource(t *testing.T) {
	_, err := PlanAllocation(3, []SourceCapacity{
		{TestID: 1, Available: 5},
		{TestID: 2, Available: 0},
	})
	if !errors.Is(err, ErrEmptySource) {
		t.Fatalf("PlanAllocation() error = %v, want ErrEmptySource", err)
	}
	if !errors.Is(err, apperr.ErrInvalidRequest) {
		t.Errorf("error should map to an invalid request, got %v", err)
	}
}
