package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/repository"
	"amenibook-backend/internal/utils"
)

type reservationService struct {
	reservationRepo repository.ReservationRepository
	amenityRepo     repository.AmenityRepository
	communityRepo   repository.CommunityRepository
	userRepo        repository.UserRepository
	emailSvc        EmailService
	noteRepo        repository.NotificationRepository
	now             func() time.Time
}

// NewReservationService wires the booking lifecycle. now may be nil, in
// which case the wall clock is used; tests inject a fixed clock.
func NewReservationService(
	reservationRepo repository.ReservationRepository,
	amenityRepo repository.AmenityRepository,
	communityRepo repository.CommunityRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
	now func() time.Time,
) ReservationService {
	if now == nil {
		now = time.Now
	}
	return &reservationService{
		reservationRepo: reservationRepo,
		amenityRepo:     amenityRepo,
		communityRepo:   communityRepo,
		userRepo:        userRepo,
		emailSvc:        emailSvc,
		noteRepo:        noteRepo,
		now:             now,
	}
}

func (s *reservationService) Create(ctx context.Context, residentID, communityID int32, in CreateReservationInput) (*domain.Reservation, error) {
	if _, err := activeMembership(ctx, s.userRepo, residentID, communityID); err != nil {
		return nil, err
	}

	amenity, err := s.amenityRepo.GetByID(ctx, in.AmenityID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewValidationError("amenity not found")
	}
	if err != nil {
		return nil, err
	}
	if amenity.CommunityID != communityID {
		return nil, domain.NewValidationError("amenity does not belong to this community")
	}

	if err := validateBookingWindows(amenity, in.Setup, in.Party, in.GuestCount); err != nil {
		return nil, err
	}

	rv := &domain.Reservation{
		CommunityID:        communityID,
		AmenityID:          in.AmenityID,
		ResidentID:         residentID,
		Date:               in.Party.Start.UTC().Format("2006-01-02"),
		SetupStart:         in.Setup.Start,
		SetupEnd:           in.Setup.End,
		PartyStart:         in.Party.Start,
		PartyEnd:           in.Party.End,
		GuestCount:         in.GuestCount,
		Status:             domain.ReservationStatusNew,
		ModificationStatus: domain.ModificationStatusNone,
		// Snapshot pricing at booking time; later fee math never re-reads
		// the amenity.
		TotalFeeCents:     amenity.ReservationFeeCents,
		TotalDepositCents: amenity.DepositCents,
	}

	if err := s.reservationRepo.Create(ctx, rv); err != nil {
		return nil, err
	}

	resident, _ := s.userRepo.GetByID(ctx, residentID)
	community, _ := s.communityRepo.GetByID(ctx, communityID)
	if resident != nil {
		_ = s.emailSvc.SendReservationRequested(ctx, resident.Email, resident.Name, amenity.Name, rv.Date)
		if community != nil && community.ContactEmail != "" {
			_ = s.emailSvc.SendReservationRequested(ctx, community.ContactEmail, resident.Name, amenity.Name, rv.Date)
		}
		s.notify(ctx, residentID, communityID, "Reservation Requested",
			fmt.Sprintf("Your reservation for %s on %s was received and is awaiting approval", amenity.Name, rv.Date),
			map[string]string{"type": "RESERVATION_REQUESTED", "reservation_id": fmt.Sprintf("%d", rv.ID)})
	}

	return rv, nil
}

func (s *reservationService) Get(ctx context.Context, userID, reservationID int32) (*domain.Reservation, error) {
	rv, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	m, err := activeMembership(ctx, s.userRepo, userID, rv.CommunityID)
	if err != nil {
		return nil, err
	}
	if rv.ResidentID != userID && !m.Role.CanActAsJanitorial() {
		return nil, domain.NewPermissionError("you may only view your own reservations")
	}
	return rv, nil
}

func (s *reservationService) ListByResident(ctx context.Context, userID, communityID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	if _, err := activeMembership(ctx, s.userRepo, userID, communityID); err != nil {
		return nil, 0, err
	}
	if err := validateStatusFilter(status); err != nil {
		return nil, 0, err
	}
	return s.reservationRepo.ListByResident(ctx, userID, communityID, status, page, pageSize)
}

func (s *reservationService) ListByCommunity(ctx context.Context, userID, communityID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	m, err := activeMembership(ctx, s.userRepo, userID, communityID)
	if err != nil {
		return nil, 0, err
	}
	if err := requireJanitorial(m); err != nil {
		return nil, 0, err
	}
	if err := validateStatusFilter(status); err != nil {
		return nil, 0, err
	}
	return s.reservationRepo.ListByCommunity(ctx, communityID, status, page, pageSize)
}

func (s *reservationService) Approve(ctx context.Context, actorID, reservationID int32, cleaning *utils.TimeWindow) (*domain.Reservation, error) {
	rv, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	amenity, err := s.amenityRepo.GetByID(ctx, rv.AmenityID)
	if err != nil {
		return nil, err
	}
	m, err := activeMembership(ctx, s.userRepo, actorID, rv.CommunityID)
	if err != nil {
		return nil, err
	}

	observed := rv.Status
	stage := ""
	stamp := s.now()

	switch rv.Status {
	case domain.ReservationStatusNew:
		if !amenity.JanitorialRequired {
			// Janitorial step is switched off: the admin decision is the
			// only gate, but an attached cleaning window still blocks the
			// amenity the same way.
			if err := requireAdmin(m); err != nil {
				return nil, err
			}
			if err := s.attachCleaning(ctx, rv, cleaning); err != nil {
				return nil, err
			}
			rv.AdminApprovedBy = &actorID
			rv.AdminApprovedOn = &stamp
			rv.Status = domain.ReservationStatusFullyApproved
			stage = "admin"
			break
		}
		if err := requireJanitorial(m); err != nil {
			return nil, err
		}
		if err := s.attachCleaning(ctx, rv, cleaning); err != nil {
			return nil, err
		}
		rv.JanitorialApprovedBy = &actorID
		rv.JanitorialApprovedOn = &stamp
		rv.Status = domain.ReservationStatusJanitorialApproved
		stage = "janitorial"
		if !amenity.ApprovalRequired {
			// No separate admin step configured; the booking is done.
			rv.Status = domain.ReservationStatusFullyApproved
			stage = "final"
		}
	case domain.ReservationStatusJanitorialApproved:
		if err := requireAdmin(m); err != nil {
			return nil, err
		}
		rv.AdminApprovedBy = &actorID
		rv.AdminApprovedOn = &stamp
		rv.Status = domain.ReservationStatusFullyApproved
		stage = "admin"
	default:
		return nil, domain.NewInvalidStateError("reservation is not awaiting approval")
	}

	if err := s.reservationRepo.UpdateStatus(ctx, rv, observed); err != nil {
		return nil, err
	}

	if resident, _ := s.userRepo.GetByID(ctx, rv.ResidentID); resident != nil {
		_ = s.emailSvc.SendReservationApproved(ctx, resident.Email, amenity.Name, rv.Date, stage)
		s.notify(ctx, rv.ResidentID, rv.CommunityID, "Reservation Approved",
			fmt.Sprintf("Your reservation for %s on %s moved to %s", amenity.Name, rv.Date, rv.Status),
			map[string]string{"type": "RESERVATION_APPROVED", "reservation_id": fmt.Sprintf("%d", rv.ID)})
	}

	return rv, nil
}

func (s *reservationService) Reject(ctx context.Context, actorID, reservationID int32, reason string) (*domain.Reservation, error) {
	if reason == "" {
		return nil, domain.NewValidationError("a rejection reason is required")
	}
	rv, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	m, err := activeMembership(ctx, s.userRepo, actorID, rv.CommunityID)
	if err != nil {
		return nil, err
	}

	switch rv.Status {
	case domain.ReservationStatusNew:
		if err := requireJanitorial(m); err != nil {
			return nil, err
		}
	case domain.ReservationStatusJanitorialApproved:
		if err := requireAdmin(m); err != nil {
			return nil, err
		}
	default:
		return nil, domain.NewInvalidStateError("reservation is not awaiting approval")
	}

	observed := rv.Status
	rv.Status = domain.ReservationStatusCancelled
	rv.RejectionReason = reason
	if err := s.reservationRepo.UpdateStatus(ctx, rv, observed); err != nil {
		return nil, err
	}

	amenity, _ := s.amenityRepo.GetByID(ctx, rv.AmenityID)
	if resident, _ := s.userRepo.GetByID(ctx, rv.ResidentID); resident != nil && amenity != nil {
		_ = s.emailSvc.SendReservationRejected(ctx, resident.Email, amenity.Name, rv.Date, reason)
		s.notify(ctx, rv.ResidentID, rv.CommunityID, "Reservation Rejected",
			fmt.Sprintf("Your reservation for %s on %s was rejected: %s", amenity.Name, rv.Date, reason),
			map[string]string{"type": "RESERVATION_REJECTED", "reservation_id": fmt.Sprintf("%d", rv.ID)})
	}

	return rv, nil
}

func (s *reservationService) Cancel(ctx context.Context, actorID, reservationID int32) (*domain.Reservation, *utils.FeeQuote, error) {
	rv, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	m, err := activeMembership(ctx, s.userRepo, actorID, rv.CommunityID)
	if err != nil {
		return nil, nil, err
	}
	if rv.ResidentID != actorID && m.Role != domain.CommunityRoleAdmin {
		return nil, nil, domain.NewPermissionError("only the resident or an admin may cancel a reservation")
	}
	if !isOpen(rv.Status) {
		return nil, nil, domain.NewInvalidStateError("reservation can no longer be cancelled")
	}

	amenity, err := s.amenityRepo.GetByID(ctx, rv.AmenityID)
	if err != nil {
		return nil, nil, err
	}

	quote := utils.CalculateCancellationFee(s.now(), rv.PartyStart, rv.TotalFeeCents, rv.TotalDepositCents, amenity.CancellationFeeEnabled)

	observed := rv.Status
	rv.Status = domain.ReservationStatusCancelled
	rv.CancellationFeeCents = &quote.AmountCents
	rv.CancellationFeeReason = quote.Reason
	rv.CancelledBy = &actorID
	if err := s.reservationRepo.UpdateStatus(ctx, rv, observed); err != nil {
		return nil, nil, err
	}

	if resident, _ := s.userRepo.GetByID(ctx, rv.ResidentID); resident != nil {
		_ = s.emailSvc.SendReservationCancelled(ctx, resident.Email, amenity.Name, rv.Date, quote.AmountCents, quote.Reason)
		s.notify(ctx, rv.ResidentID, rv.CommunityID, "Reservation Cancelled",
			fmt.Sprintf("Your reservation for %s on %s was cancelled. %s", amenity.Name, rv.Date, quote.Reason),
			map[string]string{"type": "RESERVATION_CANCELLED", "reservation_id": fmt.Sprintf("%d", rv.ID)})
	}

	return rv, &quote, nil
}

func (s *reservationService) Complete(ctx context.Context, actorID, reservationID int32, damagesFound bool) (*domain.Reservation, error) {
	rv, err := s.loadReservation(ctx, reservationID)
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

	switch rv.Status {
	case domain.ReservationStatusFullyApproved, domain.ReservationStatusJanitorialApproved:
	default:
		return nil, domain.NewInvalidStateError("only an approved reservation can be completed")
	}
	if rv.Date > s.now().UTC().Format("2006-01-02") {
		return nil, domain.NewPolicyError("a reservation cannot be completed before its event date")
	}

	observed := rv.Status
	rv.Status = domain.ReservationStatusCompleted
	rv.CompletedBy = &actorID
	rv.DamageAssessmentPending = damagesFound
	if err := s.reservationRepo.UpdateStatus(ctx, rv, observed); err != nil {
		return nil, err
	}

	amenity, _ := s.amenityRepo.GetByID(ctx, rv.AmenityID)
	if resident, _ := s.userRepo.GetByID(ctx, rv.ResidentID); resident != nil && amenity != nil {
		_ = s.emailSvc.SendReservationCompleted(ctx, resident.Email, amenity.Name, rv.Date, damagesFound)
		msg := fmt.Sprintf("Your reservation for %s on %s is complete", amenity.Name, rv.Date)
		if damagesFound {
			msg += "; a damage assessment will follow"
		}
		s.notify(ctx, rv.ResidentID, rv.CommunityID, "Reservation Completed", msg,
			map[string]string{"type": "RESERVATION_COMPLETED", "reservation_id": fmt.Sprintf("%d", rv.ID)})
	}

	return rv, nil
}

func (s *reservationService) Modify(ctx context.Context, residentID, reservationID int32, in ModifyReservationInput) (*domain.Reservation, *utils.FeeQuote, error) {
	rv, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := activeMembership(ctx, s.userRepo, residentID, rv.CommunityID); err != nil {
		return nil, nil, err
	}
	if rv.ResidentID != residentID {
		return nil, nil, domain.NewPermissionError("only the resident may modify their reservation")
	}
	if !isOpen(rv.Status) {
		return nil, nil, domain.NewInvalidStateError("reservation can no longer be modified")
	}
	if !rv.PartyStart.After(s.now()) {
		return nil, nil, domain.NewPolicyError("a reservation cannot be modified once the event has started")
	}

	amenity, err := s.amenityRepo.GetByID(ctx, rv.AmenityID)
	if err != nil {
		return nil, nil, err
	}
	if err := validateBookingWindows(amenity, in.Setup, in.Party, in.GuestCount); err != nil {
		return nil, nil, err
	}

	// The fee is quoted against the schedule in force before the change.
	quote := utils.CalculateModificationFee(s.now(), rv.PartyStart, rv.ModificationCount, amenity.ModificationFeeEnabled)

	if rv.ModificationStatus == domain.ModificationStatusPending {
		// The resident's direct change supersedes the open staff proposal;
		// its windows were computed against a schedule that no longer
		// exists and must not be accepted later.
		rv.ModificationStatus = domain.ModificationStatusRejected
		rv.ProposedDate = nil
		rv.ProposedPartyStart = nil
		rv.ProposedPartyEnd = nil
		if err := s.reservationRepo.UpdateModification(ctx, rv, domain.ModificationStatusPending); err != nil {
			return nil, nil, err
		}
	}

	observed := rv.Status
	delta := in.Party.Start.Sub(rv.PartyStart)
	rv.Date = in.Party.Start.UTC().Format("2006-01-02")
	rv.SetupStart = in.Setup.Start
	rv.SetupEnd = in.Setup.End
	rv.PartyStart = in.Party.Start
	rv.PartyEnd = in.Party.End
	rv.GuestCount = in.GuestCount
	if rv.CleaningStart != nil && rv.CleaningEnd != nil {
		cs := rv.CleaningStart.Add(delta)
		ce := rv.CleaningEnd.Add(delta)
		rv.CleaningStart = &cs
		rv.CleaningEnd = &ce
	}
	if err := s.ensureFree(ctx, rv); err != nil {
		return nil, nil, err
	}
	rv.ModificationCount++

	if err := s.reservationRepo.UpdateStatus(ctx, rv, observed); err != nil {
		return nil, nil, err
	}

	if community, _ := s.communityRepo.GetByID(ctx, rv.CommunityID); community != nil && community.ContactEmail != "" {
		_ = s.emailSvc.SendStaffDigest(ctx, community.ContactEmail, "Reservation rescheduled",
			fmt.Sprintf("Reservation %d for %s moved to %s", rv.ID, amenity.Name, rv.Date))
	}
	s.notify(ctx, rv.ResidentID, rv.CommunityID, "Reservation Updated",
		fmt.Sprintf("Your reservation for %s moved to %s. %s", amenity.Name, rv.Date, quote.Reason),
		map[string]string{"type": "RESERVATION_MODIFIED", "reservation_id": fmt.Sprintf("%d", rv.ID)})

	return rv, &quote, nil
}

func (s *reservationService) PreviewModificationFee(ctx context.Context, userID, reservationID int32) (*utils.FeeQuote, error) {
	rv, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	m, err := activeMembership(ctx, s.userRepo, userID, rv.CommunityID)
	if err != nil {
		return nil, err
	}
	if rv.ResidentID != userID && !m.Role.CanActAsJanitorial() {
		return nil, domain.NewPermissionError("you may only view your own reservations")
	}
	amenity, err := s.amenityRepo.GetByID(ctx, rv.AmenityID)
	if err != nil {
		return nil, err
	}
	quote := utils.CalculateModificationFee(s.now(), rv.PartyStart, rv.ModificationCount, amenity.ModificationFeeEnabled)
	return &quote, nil
}

func (s *reservationService) ProposeModification(ctx context.Context, staffID, reservationID int32, in ProposeModificationInput) (*domain.Reservation, error) {
	if in.Reason == "" {
		return nil, domain.NewValidationError("a proposal reason is required")
	}
	rv, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	m, err := activeMembership(ctx, s.userRepo, staffID, rv.CommunityID)
	if err != nil {
		return nil, err
	}
	if err := requireJanitorial(m); err != nil {
		return nil, err
	}
	if rv.Status != domain.ReservationStatusNew {
		return nil, domain.NewInvalidStateError("change proposals are only allowed while the reservation awaits approval")
	}
	if rv.ModificationStatus == domain.ModificationStatusPending {
		return nil, domain.NewInvalidStateError("a change proposal is already pending on this reservation")
	}
	if err := in.Party.Validate("proposed party"); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	observed := rv.ModificationStatus
	proposedDate := in.Party.Start.UTC().Format("2006-01-02")
	rv.ModificationStatus = domain.ModificationStatusPending
	rv.ProposedDate = &proposedDate
	rv.ProposedPartyStart = &in.Party.Start
	rv.ProposedPartyEnd = &in.Party.End
	rv.ModificationReason = in.Reason

	if err := s.reservationRepo.UpdateModification(ctx, rv, observed); err != nil {
		return nil, err
	}

	amenity, _ := s.amenityRepo.GetByID(ctx, rv.AmenityID)
	if resident, _ := s.userRepo.GetByID(ctx, rv.ResidentID); resident != nil && amenity != nil {
		_ = s.emailSvc.SendModificationProposed(ctx, resident.Email, amenity.Name, proposedDate, in.Reason)
		s.notify(ctx, rv.ResidentID, rv.CommunityID, "Schedule Change Proposed",
			fmt.Sprintf("Staff proposed moving your %s reservation to %s: %s", amenity.Name, proposedDate, in.Reason),
			map[string]string{"type": "MODIFICATION_PROPOSED", "reservation_id": fmt.Sprintf("%d", rv.ID)})
	}

	return rv, nil
}

func (s *reservationService) AcceptModification(ctx context.Context, userID, reservationID int32) (*domain.Reservation, error) {
	rv, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	m, err := activeMembership(ctx, s.userRepo, userID, rv.CommunityID)
	if err != nil {
		return nil, err
	}
	if rv.ResidentID != userID && m.Role != domain.CommunityRoleAdmin {
		return nil, domain.NewPermissionError("only the resident or an admin may accept a change proposal")
	}
	if rv.ModificationStatus != domain.ModificationStatusPending {
		return nil, domain.NewInvalidStateError("no change proposal is pending on this reservation")
	}
	if rv.ProposedPartyStart == nil || rv.ProposedPartyEnd == nil || rv.ProposedDate == nil {
		return nil, domain.NewInvalidStateError("the pending proposal is incomplete")
	}

	// Shift every window by the same offset so setup and cleaning keep
	// their positions relative to the party.
	delta := rv.ProposedPartyStart.Sub(rv.PartyStart)
	rv.Date = *rv.ProposedDate
	rv.SetupStart = rv.SetupStart.Add(delta)
	rv.SetupEnd = rv.SetupEnd.Add(delta)
	rv.PartyStart = *rv.ProposedPartyStart
	rv.PartyEnd = *rv.ProposedPartyEnd
	if rv.CleaningStart != nil && rv.CleaningEnd != nil {
		cs := rv.CleaningStart.Add(delta)
		ce := rv.CleaningEnd.Add(delta)
		rv.CleaningStart = &cs
		rv.CleaningEnd = &ce
	}
	if err := s.ensureFree(ctx, rv); err != nil {
		return nil, err
	}
	rv.ModificationStatus = domain.ModificationStatusAccepted
	rv.ModificationCount++

	if err := s.reservationRepo.UpdateModification(ctx, rv, domain.ModificationStatusPending); err != nil {
		return nil, err
	}

	s.resolveProposalNotices(ctx, rv, true)
	return rv, nil
}

func (s *reservationService) RejectModification(ctx context.Context, userID, reservationID int32) (*domain.Reservation, error) {
	rv, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	m, err := activeMembership(ctx, s.userRepo, userID, rv.CommunityID)
	if err != nil {
		return nil, err
	}
	// The resident can decline, and staff can withdraw their own proposal.
	if rv.ResidentID != userID && !m.Role.CanActAsJanitorial() {
		return nil, domain.NewPermissionError("only the resident or staff may resolve a change proposal")
	}
	if rv.ModificationStatus != domain.ModificationStatusPending {
		return nil, domain.NewInvalidStateError("no change proposal is pending on this reservation")
	}

	rv.ModificationStatus = domain.ModificationStatusRejected
	if err := s.reservationRepo.UpdateModification(ctx, rv, domain.ModificationStatusPending); err != nil {
		return nil, err
	}

	s.resolveProposalNotices(ctx, rv, false)
	return rv, nil
}

func (s *reservationService) resolveProposalNotices(ctx context.Context, rv *domain.Reservation, accepted bool) {
	amenity, _ := s.amenityRepo.GetByID(ctx, rv.AmenityID)
	if amenity == nil {
		return
	}
	if resident, _ := s.userRepo.GetByID(ctx, rv.ResidentID); resident != nil {
		_ = s.emailSvc.SendModificationResolved(ctx, resident.Email, amenity.Name, accepted)
	}
	outcome := "declined"
	noteType := "MODIFICATION_REJECTED"
	if accepted {
		outcome = "accepted"
		noteType = "MODIFICATION_ACCEPTED"
	}
	s.notify(ctx, rv.ResidentID, rv.CommunityID, "Schedule Change Resolved",
		fmt.Sprintf("The proposed change for your %s reservation was %s", amenity.Name, outcome),
		map[string]string{"type": noteType, "reservation_id": fmt.Sprintf("%d", rv.ID)})
}

func (s *reservationService) loadReservation(ctx context.Context, id int32) (*domain.Reservation, error) {
	rv, err := s.reservationRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewValidationError("reservation not found")
	}
	if err != nil {
		return nil, err
	}
	return rv, nil
}

// attachCleaning validates an optional cleaning window, stores it on the
// reservation, and re-checks the widened blocked span for conflicts.
func (s *reservationService) attachCleaning(ctx context.Context, rv *domain.Reservation, cleaning *utils.TimeWindow) error {
	if cleaning == nil {
		return nil
	}
	if err := cleaning.Validate("cleaning"); err != nil {
		return domain.NewValidationError(err.Error())
	}
	if cleaning.Start.Before(rv.PartyEnd) {
		return domain.NewValidationError("cleaning window must not begin before the party ends")
	}
	rv.CleaningStart = &cleaning.Start
	rv.CleaningEnd = &cleaning.End
	return s.ensureFree(ctx, rv)
}

// ensureFree re-runs the overlap check for the reservation's current
// blocked span, excluding itself.
func (s *reservationService) ensureFree(ctx context.Context, rv *domain.Reservation) error {
	conflictID, err := s.reservationRepo.FindConflict(ctx, rv.AmenityID, rv.BlockedFrom(), rv.BlockedUntil(), rv.ID)
	if err != nil {
		return err
	}
	if conflictID != 0 {
		return &domain.ConflictError{ConflictingReservationID: conflictID}
	}
	return nil
}

func (s *reservationService) notify(ctx context.Context, userID, communityID int32, title, message string, attrs map[string]string) {
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

func isOpen(status domain.ReservationStatus) bool {
	for _, s := range domain.OpenStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

func validateStatusFilter(status string) error {
	if status == "" {
		return nil
	}
	_, err := domain.ParseReservationStatus(status)
	return err
}

// validateBookingWindows applies the shape and policy checks shared by
// booking and resident modification: well-formed windows, capacity, and the
// amenity's operating calendar.
func validateBookingWindows(a *domain.Amenity, setup, party utils.TimeWindow, guestCount int32) error {
	if err := setup.Validate("setup"); err != nil {
		return domain.NewValidationError(err.Error())
	}
	if err := party.Validate("party"); err != nil {
		return domain.NewValidationError(err.Error())
	}
	if party.Start.Before(setup.Start) {
		return domain.NewValidationError("party window must not begin before the setup window")
	}
	if guestCount <= 0 {
		return domain.NewValidationError("guest count must be positive")
	}
	if guestCount > a.Capacity {
		return domain.NewPolicyError(fmt.Sprintf("guest count %d exceeds the amenity capacity of %d", guestCount, a.Capacity))
	}
	if !a.IsOpenOn(party.Start.UTC().Weekday()) {
		return domain.NewPolicyError("the amenity is closed on the requested day")
	}
	if !a.WithinOperatingHours(party.Start.UTC(), party.End.UTC()) {
		return domain.NewPolicyError("the party window falls outside the amenity's operating hours")
	}
	return nil
}
