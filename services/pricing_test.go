package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNights(t *testing.T) {
	assert.Equal(t, 3, Nights(mustDate("2024-12-01"), mustDate("2024-12-04")))
	assert.Equal(t, 1, Nights(mustDate("2024-12-01"), mustDate("2024-12-02")))

	// same day and sub-day spans still bill a night
	ci := mustDate("2024-12-01")
	assert.Equal(t, 1, Nights(ci, ci))
	assert.Equal(t, 1, Nights(ci, ci.Add(3*time.Hour)))

	// partial days round up
	assert.Equal(t, 2, Nights(ci, ci.Add(25*time.Hour)))

	// inverted ranges floor to one night
	assert.Equal(t, 1, Nights(mustDate("2024-12-04"), mustDate("2024-12-01")))
}

func TestNightsAtLeastOneForValidRanges(t *testing.T) {
	start := mustDate("2024-01-01")
	for h := 1; h < 24*30; h += 7 {
		assert.GreaterOrEqual(t, Nights(start, start.Add(time.Duration(h)*time.Hour)), 1)
	}
}

func TestTotalPrice(t *testing.T) {
	assert.Equal(t, 299.97, TotalPrice(99.99, mustDate("2024-12-01"), mustDate("2024-12-04")))
	assert.Equal(t, 400.0, TotalPrice(100, mustDate("2024-12-01"), mustDate("2024-12-05")))
	assert.Equal(t, 149.99, TotalPrice(149.99, mustDate("2024-12-01"), mustDate("2024-12-01")))

	// rounds rather than truncates
	assert.Equal(t, 0.67, TotalPrice(0.335, mustDate("2024-12-01"), mustDate("2024-12-03")))
	assert.Equal(t, 10.01, TotalPrice(3.3355, mustDate("2024-12-01"), mustDate("2024-12-04")))
}
