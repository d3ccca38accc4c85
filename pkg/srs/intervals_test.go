package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalDaysLadder(t *testing.T) {
	cases := []struct {
		reviewCount int
		want        int
	}{
		{0, 1},
		{1, 3},
		{2, 7},
		{3, 14},
		{4, 30},
		{5, 60},
		{6, 90},
		{7, 90},
		{100, 90},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, IntervalDays(c.reviewCount), "reviewCount=%d", c.reviewCount)
	}
}

func TestIntervalDaysNegativeClampsToFirstRung(t *testing.T) {
	assert.Equal(t, 1, IntervalDays(-5))
}

func TestIntervalsAreMonotonic(t *testing.T) {
	for i := 1; i < len(ReviewIntervals); i++ {
		assert.Greater(t, ReviewIntervals[i], ReviewIntervals[i-1])
	}
}

func TestNextReviewDate(t *testing.T) {
	today := time.Date(2025, 3, 10, 17, 45, 12, 0, time.UTC)

	got := NextReviewDate(0, today)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), got)

	got = NextReviewDate(4, today)
	assert.Equal(t, time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC), got)
}

func TestNextReviewDateDropsTimeOfDay(t *testing.T) {
	late := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
	got := NextReviewDate(0, late)
	assert.Zero(t, got.Hour())
	assert.Zero(t, got.Minute())
}

func TestTruncate(t *testing.T) {
	ts := time.Date(2025, 6, 1, 13, 5, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Truncate(ts))
}
