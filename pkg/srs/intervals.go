// Package srs implements the spaced-repetition interval schedule used by the
// review feed. Unlike SM-2 style engines there is no ease factor: the gap is
// read from a fixed ladder indexed by how many times the question has already
// been reviewed, clamping to the last rung once the ladder is exhausted.
package srs

import "time"

// ReviewIntervals is the ladder of gaps, in days, between consecutive reviews.
var ReviewIntervals = []int{1, 3, 7, 14, 30, 60, 90}

// IntervalDays returns the gap for the upcoming review given the number of
// reviews completed so far.
func IntervalDays(reviewCount int) int {
	if reviewCount < 0 {
		reviewCount = 0
	}
	idx := reviewCount
	if idx > len(ReviewIntervals)-1 {
		idx = len(ReviewIntervals) - 1
	}
	return ReviewIntervals[idx]
}

// NextReviewDate computes the calendar date of the next review. The result
// carries no time-of-day component so that date-typed columns and <= today
// comparisons behave the same regardless of when in the day the review
// happened.
func NextReviewDate(reviewCount int, today time.Time) time.Time {
	d := today.AddDate(0, 0, IntervalDays(reviewCount))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// Truncate normalizes a timestamp to its calendar date in UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
