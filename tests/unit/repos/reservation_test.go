package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/repository/postgres"
)

func newReservation() *domain.Reservation {
	partyStart := time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)
	return &domain.Reservation{
		CommunityID:        3,
		AmenityID:          5,
		ResidentID:         1,
		Date:               "2026-06-20",
		SetupStart:         partyStart.Add(-2 * time.Hour),
		SetupEnd:           partyStart,
		PartyStart:         partyStart,
		PartyEnd:           partyStart.Add(4 * time.Hour),
		GuestCount:         30,
		Status:             domain.ReservationStatusNew,
		ModificationStatus: domain.ModificationStatusNone,
		TotalFeeCents:      10000,
		TotalDepositCents:  25000,
	}
}

func TestReservationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()

	t.Run("Database failure bubbles unchanged", func(t *testing.T) {
		rv := newReservation()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM amenities WHERE id = \\$1 FOR UPDATE").
			WithArgs(rv.AmenityID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
		mock.ExpectQuery("SELECT id FROM reservations").
			WithArgs(rv.AmenityID, int32(0), rv.BlockedFrom(), rv.BlockedUntil()).
			WillReturnError(sqlmock.ErrCancelled)
		mock.ExpectRollback()

		err := repo.Create(ctx, rv)
		assert.Error(t, err)
		var conflict *domain.ConflictError
		assert.False(t, errors.As(err, &conflict))
	})

	t.Run("Overlap returns ConflictError", func(t *testing.T) {
		rv := newReservation()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM amenities WHERE id = \\$1 FOR UPDATE").
			WithArgs(rv.AmenityID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
		mock.ExpectQuery("SELECT id FROM reservations").
			WithArgs(rv.AmenityID, int32(0), rv.BlockedFrom(), rv.BlockedUntil()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(77))
		mock.ExpectRollback()

		err := repo.Create(ctx, rv)
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.Equal(t, int32(77), conflict.ConflictingReservationID)
	})

	t.Run("Free window inserts and commits", func(t *testing.T) {
		rv2 := newReservation()
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM amenities WHERE id = \\$1 FOR UPDATE").
			WithArgs(rv2.AmenityID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
		mock.ExpectQuery("SELECT id FROM reservations").
			WithArgs(rv2.AmenityID, int32(0), rv2.BlockedFrom(), rv2.BlockedUntil()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery("INSERT INTO reservations").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		mock.ExpectCommit()

		err := repo.Create(ctx, rv2)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), rv2.ID)
	})
}

func TestReservationRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()

	t.Run("Guarded update succeeds", func(t *testing.T) {
		rv := newReservation()
		rv.ID = 42
		rv.Status = domain.ReservationStatusJanitorialApproved

		mock.ExpectExec("UPDATE reservations SET").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, rv, domain.ReservationStatusNew)
		assert.NoError(t, err)
	})

	t.Run("Zero rows means a lost race", func(t *testing.T) {
		rv := newReservation()
		rv.ID = 42
		rv.Status = domain.ReservationStatusCancelled

		mock.ExpectExec("UPDATE reservations SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, rv, domain.ReservationStatusNew)
		assert.ErrorIs(t, err, domain.ErrStaleState)
	})
}

func TestReservationRepository_FindConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()
	from := time.Date(2026, 6, 20, 16, 0, 0, 0, time.UTC)
	until := time.Date(2026, 6, 20, 22, 0, 0, 0, time.UTC)

	t.Run("Free window returns zero", func(t *testing.T) {
		mock.ExpectQuery("SELECT id FROM reservations").
			WithArgs(int32(5), int32(42), from, until).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		id, err := repo.FindConflict(ctx, 5, from, until, 42)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), id)
	})

	t.Run("Overlap returns the blocking id", func(t *testing.T) {
		mock.ExpectQuery("SELECT id FROM reservations").
			WithArgs(int32(5), int32(42), from, until).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(88))

		id, err := repo.FindConflict(ctx, 5, from, until, 42)
		assert.NoError(t, err)
		assert.Equal(t, int32(88), id)
	})
}

func TestReservationRepository_UpdateDamage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()

	t.Run("Second review fails the guard", func(t *testing.T) {
		rv := newReservation()
		rv.ID = 42
		rv.Status = domain.ReservationStatusCompleted
		rv.DamageStatus = domain.DamageStatusApproved

		mock.ExpectExec("UPDATE reservations SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateDamage(ctx, rv, domain.DamageStatusPending)
		assert.ErrorIs(t, err, domain.ErrStaleState)
	})
}
