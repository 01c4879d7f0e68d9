package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		partyStart time.Time
		expected   int
	}{
		{"Exactly 14 days", now.AddDate(0, 0, 14), 14},
		{"14 days plus hours rounds down", now.AddDate(0, 0, 14).Add(6 * time.Hour), 14},
		{"Just under a day", now.Add(23 * time.Hour), 0},
		{"Already started", now.Add(-2 * time.Hour), -1},
		{"Same instant", now, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysUntil(now, tt.partyStart))
		})
	}
}

func TestCalculateCancellationFee(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	fee := int32(10000)
	deposit := int32(25000)

	t.Run("More than 14 days: free", func(t *testing.T) {
		quote := CalculateCancellationFee(now, now.AddDate(0, 0, 20), fee, deposit, true)
		assert.Equal(t, int32(0), quote.AmountCents)
	})

	t.Run("Exactly 15 days is still in the admin-fee band", func(t *testing.T) {
		// 14 whole days plus an hour counts as 14 days out.
		quote := CalculateCancellationFee(now, now.AddDate(0, 0, 14).Add(time.Hour), fee, deposit, true)
		assert.Equal(t, int32(CancellationAdminFeeCents), quote.AmountCents)
	})

	t.Run("Between 7 and 14 days: admin fee", func(t *testing.T) {
		quote := CalculateCancellationFee(now, now.AddDate(0, 0, 10), fee, deposit, true)
		assert.Equal(t, int32(CancellationAdminFeeCents), quote.AmountCents)
	})

	t.Run("Boundary at exactly 7 days keeps the admin fee", func(t *testing.T) {
		quote := CalculateCancellationFee(now, now.AddDate(0, 0, 7), fee, deposit, true)
		assert.Equal(t, int32(CancellationAdminFeeCents), quote.AmountCents)
	})

	t.Run("Under 7 days: fee plus deposit", func(t *testing.T) {
		quote := CalculateCancellationFee(now, now.AddDate(0, 0, 3), fee, deposit, true)
		assert.Equal(t, fee+deposit, quote.AmountCents)
	})

	t.Run("Date already passed: reservation fee only", func(t *testing.T) {
		quote := CalculateCancellationFee(now, now.AddDate(0, 0, -1), fee, deposit, true)
		assert.Equal(t, fee, quote.AmountCents)
	})

	t.Run("Disabled policy: always free", func(t *testing.T) {
		quote := CalculateCancellationFee(now, now.AddDate(0, 0, 3), fee, deposit, false)
		assert.Equal(t, int32(0), quote.AmountCents)
	})
}

func TestCalculateModificationFee(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("First change more than 7 days out is free", func(t *testing.T) {
		quote := CalculateModificationFee(now, now.AddDate(0, 0, 10), 0, true)
		assert.Equal(t, int32(0), quote.AmountCents)
	})

	t.Run("First change within 7 days pays", func(t *testing.T) {
		quote := CalculateModificationFee(now, now.AddDate(0, 0, 5), 0, true)
		assert.Equal(t, int32(ModificationFeeCents), quote.AmountCents)
	})

	t.Run("Second change always pays", func(t *testing.T) {
		quote := CalculateModificationFee(now, now.AddDate(0, 0, 30), 1, true)
		assert.Equal(t, int32(ModificationFeeCents), quote.AmountCents)
	})

	t.Run("Disabled policy: always free", func(t *testing.T) {
		quote := CalculateModificationFee(now, now.AddDate(0, 0, 2), 3, false)
		assert.Equal(t, int32(0), quote.AmountCents)
	})
}
