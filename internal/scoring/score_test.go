package scoring

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		mines      int
		start, end int64
		want       int64
	}{
		{"fifty nine seconds", 100, 1000, 60_000, 16949},
		{"seventeen minutes", 100, 1000, 1_060_000, 944},
		{"one second small board", 5, 1, 1001, 50_000},
		{"exact division", 10, 500, 1500, 100_000},
		{"zero elapsed counts as one ms", 3, 42, 42, 30_000_000},
		{"long game floors to zero", 1, 1, 20_000_001, 0},
		{"saturates instead of wrapping", math.MaxInt, 1, 2, math.MaxInt64},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Score(tc.mines, tc.start, tc.end)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Score(%d, %d, %d) = %d, want %d", tc.mines, tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestScoreInvalidState(t *testing.T) {
	tests := []struct {
		name       string
		mines      int
		start, end int64
	}{
		{"no mines", 0, 1, 2},
		{"negative mines", -1, 1, 2},
		{"start unset", 5, 0, 100},
		{"end unset", 5, 100, 0},
		{"end before start", 5, 200, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Score(tc.mines, tc.start, tc.end)
			if !errors.Is(err, ErrInvalidState) {
				t.Errorf("Score() error = %v, want ErrInvalidState", err)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name                         string
		score, personalBest, highest int64
		want                         Category
	}{
		{"beats both", 300, 50, 200, HighScore},
		{"beats personal best only", 150, 50, 200, PersonalBest},
		{"beats neither", 40, 50, 200, Regular},
		{"ties highest", 200, 50, 200, PersonalBest},
		{"ties personal best", 50, 50, 200, Regular},
		{"first game on empty board", 1, 0, 0, HighScore},
		{"zero score on empty board", 0, 0, 0, Regular},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.score, tc.personalBest, tc.highest)
			if got != tc.want {
				t.Errorf("Classify(%d, %d, %d) = %v, want %v",
					tc.score, tc.personalBest, tc.highest, got, tc.want)
			}
		})
	}
}

func TestCategoryMessage(t *testing.T) {
	if HighScore.Message() != "HIGH SCORE! Congratulations!" {
		t.Errorf("HighScore.Message() = %q", HighScore.Message())
	}
	if PersonalBest.Message() != "This is your current personal best! Keep up!" {
		t.Errorf("PersonalBest.Message() = %q", PersonalBest.Message())
	}
	if Regular.Message() != "Congratulations, you won!" {
		t.Errorf("Regular.Message() = %q", Regular.Message())
	}
	if Category(99).String() != "Unknown" {
		t.Errorf("Category(99).String() = %q, want Unknown", Category(99).String())
	}
}

func ExampleScore() {
	score, _ := Score(100, 1000, 60_000)
	fmt.Println(score)
	// Output: 16949
}

func ExampleClassify() {
	fmt.Println(Classify(150, 50, 200))
	// Output: PersonalBest
}
