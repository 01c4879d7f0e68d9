package service

import (
	"context"
	"fmt"
	"time"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/repository"
)

type damageService struct {
	reservationRepo repository.ReservationRepository
	amenityRepo     repository.AmenityRepository
	userRepo        repository.UserRepository
	emailSvc        EmailService
	noteRepo        repository.NotificationRepository
	now             func() time.Time
}

func NewDamageService(
	reservationRepo repository.ReservationRepository,
	amenityRepo repository.AmenityRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
	now func() time.Time,
) DamageService {
	if now == nil {
		now = time.Now
	}
	return &damageService{
		reservationRepo: reservationRepo,
		amenityRepo:     amenityRepo,
		userRepo:        userRepo,
		emailSvc:        emailSvc,
		noteRepo:        noteRepo,
		now:             now,
	}
}

func (s *damageService) AssessDamages(ctx context.Context, actorID, reservationID, amountCents int32, description, notes string) (*domain.Reservation, error) {
	rv, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	m, err := activeMembership(ctx, s.userRepo, actorID, rv.CommunityID)
	if err != nil {
		return nil, err
	}
	if err := requireJanitorial(m); err != nil {
		return nil, err
	}

	if rv.Status != domain.ReservationStatusCompleted {
		return nil, domain.NewInvalidStateError("damages can only be assessed on a completed reservation")
	}
	if !rv.DamageAssessmentPending {
		return nil, domain.NewInvalidStateError("this reservation was completed without damages flagged")
	}
	if rv.DamageAssessed {
		return nil, domain.NewInvalidStateError("a damage assessment has already been submitted")
	}
	if amountCents <= 0 {
		return nil, domain.NewValidationError("damage charge must be positive")
	}
	if description == "" {
		return nil, domain.NewValidationError("a damage description is required")
	}
	// The deposit snapshot caps what janitorial can charge.
	if amountCents > rv.TotalDepositCents {
		return nil, domain.NewPolicyError(fmt.Sprintf("damage charge exceeds the deposit of %d cents", rv.TotalDepositCents))
	}

	stamp := s.now()
	observed := rv.DamageStatus
	rv.DamageAssessed = true
	rv.DamageStatus = domain.DamageStatusPending
	rv.DamageChargeAmountCents = &amountCents
	rv.DamageDescription = description
	rv.DamageNotes = notes
	rv.AssessedBy = &actorID
	rv.AssessedOn = &stamp

	if err := s.reservationRepo.UpdateDamage(ctx, rv, observed); err != nil {
		return nil, err
	}

	amenity, _ := s.amenityRepo.GetByID(ctx, rv.AmenityID)
	if resident, _ := s.userRepo.GetByID(ctx, rv.ResidentID); resident != nil && amenity != nil {
		_ = s.emailSvc.SendDamageAssessmentSubmitted(ctx, resident.Email, amenity.Name, amountCents, description)
		s.notify(ctx, rv.ResidentID, rv.CommunityID, "Damage Assessment Submitted",
			fmt.Sprintf("A damage charge of %d cents was assessed for your %s reservation and is awaiting admin review", amountCents, amenity.Name),
			map[string]string{"type": "DAMAGE_ASSESSED", "reservation_id": fmt.Sprintf("%d", rv.ID)})
	}

	return rv, nil
}

func (s *damageService) ReviewDamageAssessment(ctx context.Context, adminID, reservationID int32, action DamageReviewAction, adjustedAmountCents *int32, adminNotes string) (*domain.Reservation, error) {
	rv, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	m, err := activeMembership(ctx, s.userRepo, adminID, rv.CommunityID)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(m); err != nil {
		return nil, err
	}

	if rv.DamageStatus != domain.DamageStatusPending {
		return nil, domain.NewInvalidStateError("no damage assessment is awaiting review")
	}

	stamp := s.now()
	rv.ReviewedBy = &adminID
	rv.ReviewedOn = &stamp
	rv.AdminDamageNotes = adminNotes

	var outcome string
	switch action {
	case DamageReviewApprove:
		rv.DamageStatus = domain.DamageStatusApproved
		rv.DamageChargeCents = rv.DamageChargeAmountCents
		outcome = "approved"
	case DamageReviewAdjust:
		if adjustedAmountCents == nil || *adjustedAmountCents <= 0 {
			return nil, domain.NewValidationError("an adjusted charge amount is required")
		}
		if *adjustedAmountCents > rv.TotalDepositCents {
			return nil, domain.NewPolicyError(fmt.Sprintf("adjusted charge exceeds the deposit of %d cents", rv.TotalDepositCents))
		}
		rv.DamageStatus = domain.DamageStatusAdjusted
		rv.DamageChargeAdjustedCents = adjustedAmountCents
		rv.DamageChargeCents = adjustedAmountCents
		outcome = "adjusted"
	case DamageReviewDeny:
		rv.DamageStatus = domain.DamageStatusDenied
		zero := int32(0)
		rv.DamageChargeCents = &zero
		outcome = "denied"
	default:
		return nil, domain.NewValidationError("unknown damage review action: " + string(action))
	}

	if err := s.reservationRepo.UpdateDamage(ctx, rv, domain.DamageStatusPending); err != nil {
		return nil, err
	}

	amenity, _ := s.amenityRepo.GetByID(ctx, rv.AmenityID)
	if resident, _ := s.userRepo.GetByID(ctx, rv.ResidentID); resident != nil && amenity != nil {
		_ = s.emailSvc.SendDamageAssessmentReviewed(ctx, resident.Email, amenity.Name, outcome, rv.DamageChargeCents)
		msg := fmt.Sprintf("The damage assessment for your %s reservation was %s", amenity.Name, outcome)
		if rv.DamageChargeCents != nil && *rv.DamageChargeCents > 0 {
			msg += fmt.Sprintf("; %d cents will be withheld from your deposit", *rv.DamageChargeCents)
		}
		s.notify(ctx, rv.ResidentID, rv.CommunityID, "Damage Assessment Reviewed", msg,
			map[string]string{"type": "DAMAGE_REVIEWED", "reservation_id": fmt.Sprintf("%d", rv.ID)})
	}

	return rv, nil
}

func (s *damageService) notify(ctx context.Context, userID, communityID int32, title, message string, attrs map[string]string) {
	note := &domain.Notification{
		EventID:     newEventID(),
		UserID:      userID,
		CommunityID: communityID,
		Title:       title,
		Message:     message,
		Attributes:  attrs,
	}
	_ = s.noteRepo.Create(ctx, note)
}
