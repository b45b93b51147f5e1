package curation

import (
	"fmt"
	"math"

	"pasarKarya/domain"
)

const (
	// Inclusive pass threshold on the rounded average.
	passingThreshold = 2.80

	minQuestionScore = 1
	maxQuestionScore = 4
)

// AverageScore returns the arithmetic mean of the eight question scores,
// rounded to 2 decimals. Fails when the count or any score is out of
// range.
func AverageScore(scores []int) (float64, error) {
	if len(scores) != domain.ReviewQuestionCount {
		return 0, fmt.Errorf("%w: expected %d scores, got %d",
			domain.ErrInvalidInput, domain.ReviewQuestionCount, len(scores))
	}

	total := 0
	for i, s := range scores {
		if s < minQuestionScore || s > maxQuestionScore {
			return 0, fmt.Errorf("%w: score %d at position %d out of range %d-%d",
				domain.ErrInvalidInput, s, i+1, minQuestionScore, maxQuestionScore)
		}
		total += s
	}

	avg := float64(total) / float64(domain.ReviewQuestionCount)
	return math.Round(avg*100) / 100, nil
}

// TotalScore sums the question scores without validating them; callers
// run AverageScore first.
func TotalScore(scores []int) int {
	total := 0
	for _, s := range scores {
		total += s
	}
	return total
}

// IsPassing reports whether the average clears the (inclusive) threshold.
func IsPassing(average float64) bool {
	return average >= passingThreshold
}
