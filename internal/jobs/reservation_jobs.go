package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/logger"
)

// SendUpcomingReservationReminders emails residents whose fully approved
// reservation takes place tomorrow.
func (jr *JobRunner) SendUpcomingReservationReminders() {
	jr.runWithRecovery("SendUpcomingReservationReminders", func() {
		ctx := context.Background()
		tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

		query := `
			SELECT r.id, r.resident_id, r.community_id, r.date, u.email, u.name, a.name
			FROM reservations r
			JOIN users u ON u.id = r.resident_id
			JOIN amenities a ON a.id = r.amenity_id
			WHERE r.status = 'FULLY_APPROVED'
			  AND r.date = $1
		`

		rows, err := jr.db.QueryContext(ctx, query, tomorrow)
		if err != nil {
			logger.Error("Failed to load upcoming reservations", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id, residentID, communityID int32
				date                        time.Time
				email, name, amenityName    string
			)
			if err := rows.Scan(&id, &residentID, &communityID, &date, &email, &name, &amenityName); err != nil {
				logger.Error("Failed to scan upcoming reservation", "error", err)
				continue
			}
			day := date.Format("2006-01-02")
			subject := fmt.Sprintf("Reminder: %s tomorrow", amenityName)
			body := fmt.Sprintf("Hi %s, your reservation for %s on %s is tomorrow.", name, amenityName, day)
			_ = jr.emailSvc.SendStaffDigest(ctx, email, subject, body)
			note := &domain.Notification{
				EventID:     uuid.New().String(),
				UserID:      residentID,
				CommunityID: communityID,
				Title:       "Upcoming Reservation",
				Message:     fmt.Sprintf("Your reservation for %s on %s is tomorrow", amenityName, day),
				Attributes:  map[string]string{"type": "RESERVATION_REMINDER", "reservation_id": fmt.Sprintf("%d", id)},
			}
			_ = jr.store.NotificationRepository.Create(ctx, note)
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating upcoming reservations", "error", err)
			return
		}

		logger.Info("Sent upcoming reservation reminders", "count", count)
	})
}

// SendPendingApprovalDigest emails each community contact a count of
// reservations still waiting on an approval decision.
func (jr *JobRunner) SendPendingApprovalDigest() {
	jr.runWithRecovery("SendPendingApprovalDigest", func() {
		ctx := context.Background()

		query := `
			SELECT c.id, c.name, c.contact_email,
			       COUNT(*) FILTER (WHERE r.status = 'NEW') AS awaiting_first,
			       COUNT(*) FILTER (WHERE r.status = 'JANITORIAL_APPROVED') AS awaiting_admin
			FROM communities c
			JOIN reservations r ON r.community_id = c.id
			WHERE r.status IN ('NEW', 'JANITORIAL_APPROVED')
			  AND c.contact_email <> ''
			GROUP BY c.id, c.name, c.contact_email
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to load pending approval counts", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				communityID                  int32
				name, contactEmail           string
				awaitingFirst, awaitingAdmin int32
			)
			if err := rows.Scan(&communityID, &name, &contactEmail, &awaitingFirst, &awaitingAdmin); err != nil {
				logger.Error("Failed to scan pending approval row", "error", err)
				continue
			}
			subject := fmt.Sprintf("%s: %d reservations awaiting approval", name, awaitingFirst+awaitingAdmin)
			body := fmt.Sprintf("%d reservations await a first approval and %d await the final admin decision.",
				awaitingFirst, awaitingAdmin)
			_ = jr.emailSvc.SendStaffDigest(ctx, contactEmail, subject, body)
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating pending approval counts", "error", err)
			return
		}

		logger.Info("Sent pending approval digests", "count", count)
	})
}

// SendCompletionReminders nudges community staff about approved
// reservations whose event date has passed without a completion record.
// The reminder never completes the reservation itself; that stays a
// staff decision.
func (jr *JobRunner) SendCompletionReminders() {
	jr.runWithRecovery("SendCompletionReminders", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format("2006-01-02")

		query := `
			SELECT r.id, r.date, a.name, c.contact_email
			FROM reservations r
			JOIN amenities a ON a.id = r.amenity_id
			JOIN communities c ON c.id = r.community_id
			WHERE r.status IN ('FULLY_APPROVED', 'JANITORIAL_APPROVED')
			  AND r.date < $1
			  AND c.contact_email <> ''
			ORDER BY r.date
		`

		rows, err := jr.db.QueryContext(ctx, query, today)
		if err != nil {
			logger.Error("Failed to load overdue completions", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id                        int32
				date                      time.Time
				amenityName, contactEmail string
			)
			if err := rows.Scan(&id, &date, &amenityName, &contactEmail); err != nil {
				logger.Error("Failed to scan overdue completion", "error", err)
				continue
			}
			subject := fmt.Sprintf("Reservation %d needs a completion check", id)
			body := fmt.Sprintf("The %s reservation on %s has passed but was never marked complete. Please inspect and close it out.",
				amenityName, date.Format("2006-01-02"))
			_ = jr.emailSvc.SendStaffDigest(ctx, contactEmail, subject, body)
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue completions", "error", err)
			return
		}

		logger.Info("Sent completion reminders", "count", count)
	})
}
