package utils

import "time"

// Fee schedule constants, in cents and whole days before the party start.
const (
	CancellationAdminFeeCents = 5000
	ModificationFeeCents      = 2500

	FreeCancellationDays = 14
	LateCancellationDays = 7
	FreeModificationDays = 7
)

// FeeQuote is what the requester sees before confirming: an amount and a
// stable human-readable reason derived solely from the inputs.
type FeeQuote struct {
	AmountCents int32  `json:"amount_cents"`
	Reason      string `json:"reason"`
}

// DaysUntil returns the number of whole days between now and the party
// start, rounding down. A past start yields a negative count.
func DaysUntil(now, partyStart time.Time) int {
	diff := partyStart.Sub(now)
	days := int(diff.Hours() / 24)
	if diff < 0 && diff.Hours()/24 != float64(days) {
		days--
	}
	return days
}

// CalculateCancellationFee applies the tiered cancellation schedule:
// more than 14 days out is a full refund, 7-14 days carries a fixed admin
// fee, under 7 days forfeits the reservation fee and deposit, and a
// reservation whose date already passed forfeits the reservation fee.
func CalculateCancellationFee(now, partyStart time.Time, reservationFeeCents, depositCents int32, enabled bool) FeeQuote {
	if !enabled {
		return FeeQuote{AmountCents: 0, Reason: "Cancellation fees are disabled for this amenity; full refund."}
	}
	if !partyStart.After(now) {
		return FeeQuote{
			AmountCents: reservationFeeCents,
			Reason:      "The reservation date has passed; the reservation fee is forfeited.",
		}
	}
	days := DaysUntil(now, partyStart)
	switch {
	case days > FreeCancellationDays:
		return FeeQuote{AmountCents: 0, Reason: "Cancelled more than 14 days before the event; full refund, no fee."}
	case days >= LateCancellationDays:
		return FeeQuote{
			AmountCents: CancellationAdminFeeCents,
			Reason:      "Cancelled between 7 and 14 days before the event; a $50 administrative fee applies.",
		}
	default:
		return FeeQuote{
			AmountCents: reservationFeeCents + depositCents,
			Reason:      "Cancelled less than 7 days before the event; the reservation fee and deposit are forfeited.",
		}
	}
}

// CalculateModificationFee applies the change-fee schedule: the first
// date/time change requested more than 7 days before the event is free,
// every other change costs $25.
func CalculateModificationFee(now, partyStart time.Time, modificationCount int32, enabled bool) FeeQuote {
	if !enabled {
		return FeeQuote{AmountCents: 0, Reason: "Modification fees are disabled for this amenity."}
	}
	days := DaysUntil(now, partyStart)
	if modificationCount == 0 && days > FreeModificationDays {
		return FeeQuote{AmountCents: 0, Reason: "First change requested more than 7 days before the event; no fee."}
	}
	if modificationCount >= 1 {
		return FeeQuote{
			AmountCents: ModificationFeeCents,
			Reason:      "Each change after the first carries a $25 fee.",
		}
	}
	return FeeQuote{
		AmountCents: ModificationFeeCents,
		Reason:      "Changes requested within 7 days of the event carry a $25 fee.",
	}
}
