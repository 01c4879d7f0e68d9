package domain

import (
	"strings"
	"time"
)

type Amenity struct {
	ID          int32  `json:"id"`
	CommunityID int32  `json:"community_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int32  `json:"capacity"`
	// Pricing in cents. Deposit doubles as the damage charge ceiling.
	ReservationFeeCents int32 `json:"reservation_fee_cents"`
	DepositCents        int32 `json:"deposit_cents"`
	// Operating schedule: comma-joined weekday names plus HH:MM clock bounds.
	OperatingDays string `json:"operating_days"`
	OpensAt       string `json:"opens_at"`
	ClosesAt      string `json:"closes_at"`
	// Approval routing flags.
	JanitorialRequired bool `json:"janitorial_required"`
	ApprovalRequired   bool `json:"approval_required"`
	// Fee policy flags.
	CancellationFeeEnabled bool   `json:"cancellation_fee_enabled"`
	ModificationFeeEnabled bool   `json:"modification_fee_enabled"`
	CreatedOn              string `json:"created_on"`
	UpdatedOn              string `json:"updated_on"`
}

// WithinOperatingHours reports whether the clock times of [start, end) fall
// inside the amenity's daily operating hours. Unset bounds mean no limit.
func (a *Amenity) WithinOperatingHours(start, end time.Time) bool {
	if a.OpensAt == "" && a.ClosesAt == "" {
		return true
	}
	opens, err := time.Parse("15:04", a.OpensAt)
	if a.OpensAt != "" && err != nil {
		return false
	}
	closes, err := time.Parse("15:04", a.ClosesAt)
	if a.ClosesAt != "" && err != nil {
		return false
	}
	minutes := func(t time.Time) int { return t.Hour()*60 + t.Minute() }
	if !start.Truncate(24 * time.Hour).Equal(end.Add(-time.Minute).Truncate(24 * time.Hour)) {
		// A window crossing midnight cannot fit inside daily hours.
		return false
	}
	if a.OpensAt != "" && minutes(start) < minutes(opens) {
		return false
	}
	if a.ClosesAt != "" {
		endMinutes := minutes(end)
		if endMinutes == 0 {
			endMinutes = 24 * 60
		}
		if endMinutes > minutes(closes) {
			return false
		}
	}
	return true
}

// IsOpenOn reports whether the amenity operates on the given weekday.
// An empty OperatingDays list means open every day.
func (a *Amenity) IsOpenOn(day time.Weekday) bool {
	if strings.TrimSpace(a.OperatingDays) == "" {
		return true
	}
	name := strings.ToUpper(day.String())
	for _, d := range strings.Split(a.OperatingDays, ",") {
		if strings.ToUpper(strings.TrimSpace(d)) == name {
			return true
		}
	}
	return false
}
