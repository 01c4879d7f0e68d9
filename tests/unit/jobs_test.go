package unit

import (
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"amenibook-backend/internal/config"
	"amenibook-backend/internal/jobs"
	"amenibook-backend/internal/repository/postgres"
)

func newJobRunner(t *testing.T) (*jobs.JobRunner, sqlmock.Sqlmock, *MockEmailService) {
	db, dbMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	emailSvc := new(MockEmailService)
	return jobs.NewJobRunner(db, postgres.NewStore(db), emailSvc, &config.Config{}), dbMock, emailSvc
}

func TestJobRunner_SendUpcomingReservationReminders(t *testing.T) {
	jr, dbMock, emailSvc := newJobRunner(t)
	eventDate := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)

	dbMock.ExpectQuery("SELECT r.id, r.resident_id, r.community_id, r.date").
		WillReturnRows(sqlmock.NewRows([]string{"id", "resident_id", "community_id", "date", "email", "resident_name", "amenity_name"}).
			AddRow(42, 1, 3, eventDate, "res@test.com", "Resident", "Clubhouse"))
	dbMock.ExpectQuery("INSERT INTO notifications").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	emailSvc.On("SendStaffDigest", mock.Anything, "res@test.com", "Reminder: Clubhouse tomorrow",
		mock.MatchedBy(func(body string) bool {
			// The event date renders as a calendar day, not a timestamp.
			return strings.Contains(body, "on 2026-06-20 is tomorrow")
		})).Return(nil)

	jr.SendUpcomingReservationReminders()

	emailSvc.AssertExpectations(t)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestJobRunner_SendCompletionReminders(t *testing.T) {
	jr, dbMock, emailSvc := newJobRunner(t)
	eventDate := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)

	dbMock.ExpectQuery("SELECT r.id, r.date").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "amenity_name", "contact_email"}).
			AddRow(42, eventDate, "Clubhouse", "hoa@test.com"))

	emailSvc.On("SendStaffDigest", mock.Anything, "hoa@test.com", "Reservation 42 needs a completion check",
		mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "on 2026-06-20 has passed")
		})).Return(nil)

	jr.SendCompletionReminders()

	emailSvc.AssertExpectations(t)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
