package utils

import (
	"fmt"
	"time"
)

// TimeWindow is a half-open interval [Start, End). Windows that merely touch
// (one ends exactly when the other starts) do not overlap, so back-to-back
// bookings are permitted.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate checks that the window is well formed.
func (w TimeWindow) Validate(label string) error {
	if w.Start.IsZero() || w.End.IsZero() {
		return fmt.Errorf("%s window is missing a bound", label)
	}
	if !w.End.After(w.Start) {
		return fmt.Errorf("%s window must end after it starts", label)
	}
	return nil
}

// Overlaps reports whether two half-open intervals intersect.
func (w TimeWindow) Overlaps(o TimeWindow) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Union returns the smallest window covering w and o. The result may span
// midnight; comparisons always use the full timestamps, never date fields.
func (w TimeWindow) Union(o TimeWindow) TimeWindow {
	out := w
	if o.Start.Before(out.Start) {
		out.Start = o.Start
	}
	if o.End.After(out.End) {
		out.End = o.End
	}
	return out
}

// BlockedSpan computes the full unavailability span of a booking: setup and
// party windows plus the cleaning window when one is attached.
func BlockedSpan(setup, party TimeWindow, cleaning *TimeWindow) TimeWindow {
	span := setup.Union(party)
	if cleaning != nil {
		span = span.Union(*cleaning)
	}
	return span
}

// Shift moves the window by d, preserving its length.
func (w TimeWindow) Shift(d time.Duration) TimeWindow {
	return TimeWindow{Start: w.Start.Add(d), End: w.End.Add(d)}
}
