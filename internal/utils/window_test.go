package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustWindow(startHour, endHour int) TimeWindow {
	day := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	return TimeWindow{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestTimeWindow_Validate(t *testing.T) {
	t.Run("Well formed", func(t *testing.T) {
		assert.NoError(t, mustWindow(10, 14).Validate("party"))
	})

	t.Run("End before start", func(t *testing.T) {
		w := TimeWindow{Start: mustWindow(14, 15).Start, End: mustWindow(10, 11).Start}
		err := w.Validate("party")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "party window")
	})

	t.Run("Zero length", func(t *testing.T) {
		start := mustWindow(10, 11).Start
		w := TimeWindow{Start: start, End: start}
		assert.Error(t, w.Validate("setup"))
	})

	t.Run("Missing bound", func(t *testing.T) {
		w := TimeWindow{End: mustWindow(10, 11).End}
		assert.Error(t, w.Validate("cleaning"))
	})
}

func TestTimeWindow_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     TimeWindow
		expected bool
	}{
		{"Disjoint", mustWindow(8, 10), mustWindow(12, 14), false},
		{"Overlapping", mustWindow(8, 12), mustWindow(10, 14), true},
		{"Contained", mustWindow(8, 16), mustWindow(10, 12), true},
		// Half-open intervals: touching windows are back-to-back bookings.
		{"Touching at boundary", mustWindow(8, 12), mustWindow(12, 16), false},
		{"Identical", mustWindow(8, 12), mustWindow(8, 12), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.expected, tt.b.Overlaps(tt.a))
		})
	}
}

func TestBlockedSpan(t *testing.T) {
	t.Run("Setup and party only", func(t *testing.T) {
		span := BlockedSpan(mustWindow(8, 10), mustWindow(10, 14), nil)
		assert.Equal(t, mustWindow(8, 14), span)
	})

	t.Run("Cleaning extends the span", func(t *testing.T) {
		cleaning := mustWindow(14, 16)
		span := BlockedSpan(mustWindow(8, 10), mustWindow(10, 14), &cleaning)
		assert.Equal(t, mustWindow(8, 16), span)
	})

	t.Run("Cleaning past midnight stays one span", func(t *testing.T) {
		cleaning := mustWindow(22, 26) // ends 02:00 the next day
		span := BlockedSpan(mustWindow(16, 18), mustWindow(18, 22), &cleaning)
		assert.Equal(t, mustWindow(16, 18).Start, span.Start)
		assert.Equal(t, cleaning.End, span.End)
		assert.Equal(t, 21, span.End.Day())
	})
}

func TestTimeWindow_Shift(t *testing.T) {
	shifted := mustWindow(10, 14).Shift(48 * time.Hour)
	assert.Equal(t, 22, shifted.Start.Day())
	assert.Equal(t, 4*time.Hour, shifted.End.Sub(shifted.Start))
}
