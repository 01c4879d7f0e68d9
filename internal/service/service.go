package service

import (
	"context"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/utils"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type CommunityService interface {
	CreateCommunity(ctx context.Context, userID int32, c *domain.Community) error
	GetCommunity(ctx context.Context, userID, communityID int32) (*domain.Community, error)
	AddMember(ctx context.Context, adminID, communityID int32, email string, role domain.CommunityRole) (*domain.Membership, error)
	ListMembers(ctx context.Context, userID, communityID int32) ([]domain.User, []domain.Membership, error)
	DeactivateMember(ctx context.Context, adminID, communityID, userID int32) error
}

// PolicyChangeSummary reports how many in-flight reservations an amenity
// policy edit moved: forward (auto-approved past a now-unnecessary step) or
// backward (re-opened for a re-enabled step).
type PolicyChangeSummary struct {
	AutoApprovedCount int32 `json:"auto_approved_count"`
	UnconfirmedCount  int32 `json:"unconfirmed_count"`
}

type AmenityService interface {
	CreateAmenity(ctx context.Context, adminID int32, a *domain.Amenity) error
	GetAmenity(ctx context.Context, userID, amenityID int32) (*domain.Amenity, error)
	ListAmenities(ctx context.Context, userID, communityID int32) ([]domain.Amenity, error)
	// UpdateAmenity applies the edit and, when an approval flag changed,
	// advances or rolls back in-flight reservations accordingly.
	UpdateAmenity(ctx context.Context, adminID int32, a *domain.Amenity) (*PolicyChangeSummary, error)
	// DeleteAmenity removes the amenity; refused while open reservations
	// still reference it.
	DeleteAmenity(ctx context.Context, adminID, communityID, amenityID int32) error
}

type CreateReservationInput struct {
	AmenityID  int32            `json:"amenity_id"`
	Setup      utils.TimeWindow `json:"setup"`
	Party      utils.TimeWindow `json:"party"`
	GuestCount int32            `json:"guest_count"`
}

type ModifyReservationInput struct {
	Setup      utils.TimeWindow `json:"setup"`
	Party      utils.TimeWindow `json:"party"`
	GuestCount int32            `json:"guest_count"`
}

type ProposeModificationInput struct {
	Party  utils.TimeWindow `json:"party"`
	Reason string           `json:"reason"`
}

type ReservationService interface {
	Create(ctx context.Context, residentID, communityID int32, in CreateReservationInput) (*domain.Reservation, error)
	Get(ctx context.Context, userID, reservationID int32) (*domain.Reservation, error)
	ListByResident(ctx context.Context, userID, communityID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error)
	ListByCommunity(ctx context.Context, userID, communityID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error)

	// Resident-initiated modification: conflict-checked, fee-charged.
	Modify(ctx context.Context, residentID, reservationID int32, in ModifyReservationInput) (*domain.Reservation, *utils.FeeQuote, error)
	// PreviewModificationFee quotes the fee a Modify call would charge right
	// now, without side effects.
	PreviewModificationFee(ctx context.Context, userID, reservationID int32) (*utils.FeeQuote, error)

	// Staff-initiated change proposal, resolved by the resident.
	ProposeModification(ctx context.Context, staffID, reservationID int32, in ProposeModificationInput) (*domain.Reservation, error)
	AcceptModification(ctx context.Context, userID, reservationID int32) (*domain.Reservation, error)
	RejectModification(ctx context.Context, userID, reservationID int32) (*domain.Reservation, error)

	Approve(ctx context.Context, actorID, reservationID int32, cleaning *utils.TimeWindow) (*domain.Reservation, error)
	Reject(ctx context.Context, actorID, reservationID int32, reason string) (*domain.Reservation, error)
	Cancel(ctx context.Context, actorID, reservationID int32) (*domain.Reservation, *utils.FeeQuote, error)
	Complete(ctx context.Context, actorID, reservationID int32, damagesFound bool) (*domain.Reservation, error)
}

type DamageReviewAction string

const (
	DamageReviewApprove DamageReviewAction = "approve"
	DamageReviewAdjust  DamageReviewAction = "adjust"
	DamageReviewDeny    DamageReviewAction = "deny"
)

type DamageService interface {
	AssessDamages(ctx context.Context, actorID, reservationID, amountCents int32, description, notes string) (*domain.Reservation, error)
	ReviewDamageAssessment(ctx context.Context, adminID, reservationID int32, action DamageReviewAction, adjustedAmountCents *int32, adminNotes string) (*domain.Reservation, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendReservationRequested(ctx context.Context, to, residentName, amenityName, date string) error
	SendReservationApproved(ctx context.Context, to, amenityName, date, stage string) error
	SendReservationRejected(ctx context.Context, to, amenityName, date, reason string) error
	SendReservationCancelled(ctx context.Context, to, amenityName, date string, feeCents int32, feeReason string) error
	SendModificationProposed(ctx context.Context, to, amenityName, proposedDate, reason string) error
	SendModificationResolved(ctx context.Context, to, amenityName string, accepted bool) error
	SendReservationCompleted(ctx context.Context, to, amenityName, date string, damagesFound bool) error
	SendDamageAssessmentSubmitted(ctx context.Context, to, amenityName string, amountCents int32, description string) error
	SendDamageAssessmentReviewed(ctx context.Context, to, amenityName, outcome string, chargeCents *int32) error
	SendStaffDigest(ctx context.Context, to, subject, body string) error
}
