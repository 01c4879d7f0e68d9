package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/logger"
	"amenibook-backend/internal/repository"
)

type amenityService struct {
	amenityRepo     repository.AmenityRepository
	reservationRepo repository.ReservationRepository
	userRepo        repository.UserRepository
	emailSvc        EmailService
	noteRepo        repository.NotificationRepository
}

func NewAmenityService(
	amenityRepo repository.AmenityRepository,
	reservationRepo repository.ReservationRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
) AmenityService {
	return &amenityService{
		amenityRepo:     amenityRepo,
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		emailSvc:        emailSvc,
		noteRepo:        noteRepo,
	}
}

func (s *amenityService) CreateAmenity(ctx context.Context, adminID int32, a *domain.Amenity) error {
	m, err := activeMembership(ctx, s.userRepo, adminID, a.CommunityID)
	if err != nil {
		return err
	}
	if err := requireAdmin(m); err != nil {
		return err
	}
	if err := validateAmenity(a); err != nil {
		return err
	}
	return s.amenityRepo.Create(ctx, a)
}

func (s *amenityService) GetAmenity(ctx context.Context, userID, amenityID int32) (*domain.Amenity, error) {
	a, err := s.amenityRepo.GetByID(ctx, amenityID)
	if err != nil {
		return nil, err
	}
	if _, err := activeMembership(ctx, s.userRepo, userID, a.CommunityID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *amenityService) ListAmenities(ctx context.Context, userID, communityID int32) ([]domain.Amenity, error) {
	if _, err := activeMembership(ctx, s.userRepo, userID, communityID); err != nil {
		return nil, err
	}
	return s.amenityRepo.ListByCommunity(ctx, communityID)
}

// UpdateAmenity persists the edit and reconciles in-flight reservations when
// an approval flag changed. Relaxing a flag advances reservations whose
// remaining gates are already satisfied; re-enabling one rolls back
// reservations that skipped the step, so it gets a real decision.
func (s *amenityService) UpdateAmenity(ctx context.Context, adminID int32, a *domain.Amenity) (*PolicyChangeSummary, error) {
	m, err := activeMembership(ctx, s.userRepo, adminID, a.CommunityID)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(m); err != nil {
		return nil, err
	}
	if err := validateAmenity(a); err != nil {
		return nil, err
	}

	before, err := s.amenityRepo.GetByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if before.CommunityID != a.CommunityID {
		return nil, domain.NewValidationError("amenity does not belong to this community")
	}

	if err := s.amenityRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	summary := &PolicyChangeSummary{}
	approvalFlagsChanged := before.JanitorialRequired != a.JanitorialRequired ||
		before.ApprovalRequired != a.ApprovalRequired
	if !approvalFlagsChanged {
		return summary, nil
	}

	open, err := s.reservationRepo.ListByAmenity(ctx, a.ID, domain.OpenStatuses())
	if err != nil {
		return nil, err
	}

	statusRank := map[domain.ReservationStatus]int{
		domain.ReservationStatusNew:                0,
		domain.ReservationStatusJanitorialApproved: 1,
		domain.ReservationStatusFullyApproved:      2,
	}

	for i := range open {
		rv := &open[i]
		settled := rv.SettledStatus(a)
		if settled == rv.Status {
			continue
		}
		observed := rv.Status
		rv.Status = settled
		if err := s.reservationRepo.UpdateStatus(ctx, rv, observed); err != nil {
			// A concurrent transition won the race; the reservation is
			// already consistent with some decision, leave it alone.
			logger.Warn("skipping policy reconcile for reservation", "reservation_id", rv.ID, "error", err)
			continue
		}
		forward := statusRank[settled] > statusRank[observed]
		if forward {
			summary.AutoApprovedCount++
		} else {
			summary.UnconfirmedCount++
		}
		s.notifyPolicyMove(ctx, rv, a, forward)
	}

	return summary, nil
}

func (s *amenityService) DeleteAmenity(ctx context.Context, adminID, communityID, amenityID int32) error {
	m, err := activeMembership(ctx, s.userRepo, adminID, communityID)
	if err != nil {
		return err
	}
	if err := requireAdmin(m); err != nil {
		return err
	}
	a, err := s.amenityRepo.GetByID(ctx, amenityID)
	if err != nil {
		return err
	}
	if a.CommunityID != communityID {
		return domain.NewValidationError("amenity does not belong to this community")
	}
	open, err := s.reservationRepo.ListByAmenity(ctx, amenityID, domain.OpenStatuses())
	if err != nil {
		return err
	}
	if len(open) > 0 {
		return domain.NewPolicyError(fmt.Sprintf("the amenity still has %d open reservations; cancel or complete them first", len(open)))
	}
	return s.amenityRepo.Delete(ctx, amenityID)
}

func (s *amenityService) notifyPolicyMove(ctx context.Context, rv *domain.Reservation, a *domain.Amenity, forward bool) {
	resident, _ := s.userRepo.GetByID(ctx, rv.ResidentID)
	if resident == nil {
		return
	}
	if forward {
		_ = s.emailSvc.SendReservationApproved(ctx, resident.Email, a.Name, rv.Date, "policy")
		s.notify(ctx, rv.ResidentID, rv.CommunityID, "Reservation Auto-Approved",
			fmt.Sprintf("A policy change on %s advanced your reservation on %s to %s", a.Name, rv.Date, rv.Status),
			map[string]string{"type": "POLICY_AUTO_APPROVED", "reservation_id": fmt.Sprintf("%d", rv.ID)})
		return
	}
	s.notify(ctx, rv.ResidentID, rv.CommunityID, "Reservation Needs Re-Approval",
		fmt.Sprintf("A policy change on %s moved your reservation on %s back to %s pending a new approval", a.Name, rv.Date, rv.Status),
		map[string]string{"type": "POLICY_UNCONFIRMED", "reservation_id": fmt.Sprintf("%d", rv.ID)})
}

func (s *amenityService) notify(ctx context.Context, userID, communityID int32, title, message string, attrs map[string]string) {
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

func validateAmenity(a *domain.Amenity) error {
	if strings.TrimSpace(a.Name) == "" {
		return domain.NewValidationError("amenity name is required")
	}
	if a.Capacity <= 0 {
		return domain.NewValidationError("amenity capacity must be positive")
	}
	if a.ReservationFeeCents < 0 || a.DepositCents < 0 {
		return domain.NewValidationError("fees must not be negative")
	}
	for _, bound := range []string{a.OpensAt, a.ClosesAt} {
		if bound == "" {
			continue
		}
		if _, err := time.Parse("15:04", bound); err != nil {
			return domain.NewValidationError("operating hours must use HH:MM format")
		}
	}
	if strings.TrimSpace(a.OperatingDays) != "" {
		for _, d := range strings.Split(a.OperatingDays, ",") {
			if !validWeekday(strings.TrimSpace(d)) {
				return domain.NewValidationError("unknown operating day: " + strings.TrimSpace(d))
			}
		}
	}
	return nil
}

func validWeekday(name string) bool {
	switch strings.ToUpper(name) {
	case "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY":
		return true
	}
	return false
}
