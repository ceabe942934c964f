package services

import (
	"testing"

	"github.com/Vladyslav2123/triply-sub001/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeOverallRating_AllFives(t *testing.T) {
	got := ComputeOverallRating([6]int{5, 5, 5, 5, 5, 5})
	assert.Equal(t, 5.0, got)
}

func TestComputeOverallRating_RoundsHalfUp(t *testing.T) {
	// sum=20, 20/6=3.333... -> 3.3
	got := ComputeOverallRating([6]int{1, 2, 3, 4, 5, 5})
	assert.Equal(t, 3.3, got)
}

func TestComputeOverallRating_MixedStay(t *testing.T) {
	// sum=27, 27/6=4.5
	got := ComputeOverallRating([6]int{5, 4, 5, 4, 5, 4})
	assert.Equal(t, 4.5, got)
}

func TestRoundHalfUp1(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{3.333333, 3.3},
		{3.35, 3.4},
		{4.449, 4.4},
		{4.45, 4.5},
		{0, 0},
		{5, 5},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RoundHalfUp1(tc.in), "input %v", tc.in)
	}
}

func reviewsWithOverall(overalls ...float64) []models.Review {
	reviews := make([]models.Review, 0, len(overalls))
	for _, o := range overalls {
		reviews = append(reviews, models.Review{OverallRating: o})
	}
	return reviews
}

func TestRecomputeRating_Empty(t *testing.T) {
	agg := RecomputeRating(nil)
	assert.Equal(t, RatingAggregate{Overall: 0, Count: 0}, agg)
}

func TestRecomputeRating_Bounds(t *testing.T) {
	sets := [][]float64{
		{1, 1, 1},
		{5, 5, 5, 5},
		{1, 5},
		{3.3, 4.7, 2.1, 4.9},
		{2.5},
	}
	for _, set := range sets {
		agg := RecomputeRating(reviewsWithOverall(set...))
		assert.GreaterOrEqual(t, agg.Overall, 0.0)
		assert.LessOrEqual(t, agg.Overall, 5.0)
		assert.Equal(t, len(set), agg.Count)
	}
}

func TestRecomputeRating_Mean(t *testing.T) {
	agg := RecomputeRating(reviewsWithOverall(4.0, 5.0))
	assert.Equal(t, 4.5, agg.Overall)
	assert.Equal(t, 2, agg.Count)
}

func TestApplyIncremental_Add(t *testing.T) {
	cur := RecomputeRating(reviewsWithOverall(4.0, 5.0))
	added := models.Review{OverallRating: 2.0}

	got := ApplyIncremental(cur, &added, nil)
	want := RecomputeRating(reviewsWithOverall(4.0, 5.0, 2.0))

	assert.Equal(t, want.Count, got.Count)
	assert.InDelta(t, want.Overall, got.Overall, 0.1)
}

func TestApplyIncremental_Remove(t *testing.T) {
	cur := RecomputeRating(reviewsWithOverall(4.0, 5.0, 2.0))
	removed := models.Review{OverallRating: 2.0}

	got := ApplyIncremental(cur, nil, &removed)
	want := RecomputeRating(reviewsWithOverall(4.0, 5.0))

	assert.Equal(t, want.Count, got.Count)
	assert.InDelta(t, want.Overall, got.Overall, 0.1)
}

func TestApplyIncremental_RemoveLast(t *testing.T) {
	cur := RatingAggregate{Overall: 4.0, Count: 1}
	removed := models.Review{OverallRating: 4.0}

	got := ApplyIncremental(cur, nil, &removed)
	assert.Equal(t, RatingAggregate{}, got)
}

func TestIsTransientConflict(t *testing.T) {
	assert.False(t, isTransientConflict(nil))
	assert.False(t, isTransientConflict(assert.AnError))
	assert.True(t, isTransientConflict(errDeadlock{}))
}

type errDeadlock struct{}

func (errDeadlock) Error() string {
	return "Error 1213: Deadlock found when trying to get lock; try restarting transaction"
}
