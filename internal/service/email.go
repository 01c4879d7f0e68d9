package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"amenibook-backend/internal/logger"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(ctx context.Context, to, subject, plainText string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func (s *sendGridEmailService) SendReservationRequested(ctx context.Context, to, residentName, amenityName, date string) error {
	subject := fmt.Sprintf("Reservation requested: %s on %s", amenityName, date)
	body := fmt.Sprintf("%s requested %s for %s. The reservation is awaiting approval.", residentName, amenityName, date)
	return s.send(ctx, to, subject, body)
}

func (s *sendGridEmailService) SendReservationApproved(ctx context.Context, to, amenityName, date, stage string) error {
	subject := fmt.Sprintf("Reservation approved: %s on %s", amenityName, date)
	body := fmt.Sprintf("Your reservation for %s on %s cleared the %s approval step.", amenityName, date, stage)
	return s.send(ctx, to, subject, body)
}

func (s *sendGridEmailService) SendReservationRejected(ctx context.Context, to, amenityName, date, reason string) error {
	subject := fmt.Sprintf("Reservation rejected: %s on %s", amenityName, date)
	body := fmt.Sprintf("Your reservation for %s on %s was rejected. Reason: %s", amenityName, date, reason)
	return s.send(ctx, to, subject, body)
}

func (s *sendGridEmailService) SendReservationCancelled(ctx context.Context, to, amenityName, date string, feeCents int32, feeReason string) error {
	subject := fmt.Sprintf("Reservation cancelled: %s on %s", amenityName, date)
	body := fmt.Sprintf("Your reservation for %s on %s was cancelled. Cancellation fee: $%.2f. %s",
		amenityName, date, float64(feeCents)/100, feeReason)
	return s.send(ctx, to, subject, body)
}

func (s *sendGridEmailService) SendModificationProposed(ctx context.Context, to, amenityName, proposedDate, reason string) error {
	subject := fmt.Sprintf("Schedule change proposed for %s", amenityName)
	body := fmt.Sprintf("Community staff proposed moving your %s reservation to %s. Reason: %s. Please accept or decline the change.",
		amenityName, proposedDate, reason)
	return s.send(ctx, to, subject, body)
}

func (s *sendGridEmailService) SendModificationResolved(ctx context.Context, to, amenityName string, accepted bool) error {
	outcome := "declined"
	if accepted {
		outcome = "accepted"
	}
	subject := fmt.Sprintf("Schedule change %s for %s", outcome, amenityName)
	body := fmt.Sprintf("The proposed schedule change for your %s reservation was %s.", amenityName, outcome)
	return s.send(ctx, to, subject, body)
}

func (s *sendGridEmailService) SendReservationCompleted(ctx context.Context, to, amenityName, date string, damagesFound bool) error {
	subject := fmt.Sprintf("Reservation completed: %s on %s", amenityName, date)
	body := fmt.Sprintf("Your reservation for %s on %s is complete.", amenityName, date)
	if damagesFound {
		body += " Damages were noted during inspection; a damage assessment will follow."
	}
	return s.send(ctx, to, subject, body)
}

func (s *sendGridEmailService) SendDamageAssessmentSubmitted(ctx context.Context, to, amenityName string, amountCents int32, description string) error {
	subject := fmt.Sprintf("Damage assessment for your %s reservation", amenityName)
	body := fmt.Sprintf("A damage charge of $%.2f was assessed: %s. The charge is awaiting admin review.",
		float64(amountCents)/100, description)
	return s.send(ctx, to, subject, body)
}

func (s *sendGridEmailService) SendDamageAssessmentReviewed(ctx context.Context, to, amenityName, outcome string, chargeCents *int32) error {
	subject := fmt.Sprintf("Damage assessment %s for your %s reservation", outcome, amenityName)
	body := fmt.Sprintf("The damage assessment for your %s reservation was %s.", amenityName, outcome)
	if chargeCents != nil && *chargeCents > 0 {
		body += fmt.Sprintf(" $%.2f will be withheld from your deposit.", float64(*chargeCents)/100)
	}
	return s.send(ctx, to, subject, body)
}

func (s *sendGridEmailService) SendStaffDigest(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, body)
}
