package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusNew                ReservationStatus = "NEW"
	ReservationStatusJanitorialApproved ReservationStatus = "JANITORIAL_APPROVED"
	ReservationStatusFullyApproved      ReservationStatus = "FULLY_APPROVED"
	ReservationStatusCancelled          ReservationStatus = "CANCELLED"
	ReservationStatusCompleted          ReservationStatus = "COMPLETED"
)

// ParseReservationStatus rejects unknown status strings at the boundary.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(s) {
	case ReservationStatusNew, ReservationStatusJanitorialApproved,
		ReservationStatusFullyApproved, ReservationStatusCancelled,
		ReservationStatusCompleted:
		return ReservationStatus(s), nil
	}
	return "", NewValidationError("unknown reservation status: " + s)
}

type ModificationStatus string

const (
	ModificationStatusNone     ModificationStatus = "NONE"
	ModificationStatusPending  ModificationStatus = "PENDING"
	ModificationStatusAccepted ModificationStatus = "ACCEPTED"
	ModificationStatusRejected ModificationStatus = "REJECTED"
)

type DamageStatus string

const (
	// DamageStatusNone means no assessment has been submitted yet.
	DamageStatusNone     DamageStatus = ""
	DamageStatusPending  DamageStatus = "PENDING"
	DamageStatusApproved DamageStatus = "APPROVED"
	DamageStatusAdjusted DamageStatus = "ADJUSTED"
	DamageStatusDenied   DamageStatus = "DENIED"
)

type Reservation struct {
	ID          int32 `json:"id"`
	CommunityID int32 `json:"community_id"`
	AmenityID   int32 `json:"amenity_id"`
	ResidentID  int32 `json:"resident_id"`

	// Date is the party's calendar date (yyyy-mm-dd). The window fields are
	// full UTC timestamps; cleaning may finish on the next calendar day.
	Date          string     `json:"date"`
	SetupStart    time.Time  `json:"setup_start"`
	SetupEnd      time.Time  `json:"setup_end"`
	PartyStart    time.Time  `json:"party_start"`
	PartyEnd      time.Time  `json:"party_end"`
	CleaningStart *time.Time `json:"cleaning_start,omitempty"`
	CleaningEnd   *time.Time `json:"cleaning_end,omitempty"`
	GuestCount    int32      `json:"guest_count"`

	Status ReservationStatus `json:"status"`

	// Approver stamps. A nil stamp on an approved reservation means the step
	// was skipped under the policy in force at the time, which is what the
	// policy-change rollback logic keys on.
	JanitorialApprovedBy *int32     `json:"janitorial_approved_by,omitempty"`
	JanitorialApprovedOn *time.Time `json:"janitorial_approved_on,omitempty"`
	AdminApprovedBy      *int32     `json:"admin_approved_by,omitempty"`
	AdminApprovedOn      *time.Time `json:"admin_approved_on,omitempty"`

	// Staff-initiated change proposal, layered on top of the primary status.
	ModificationStatus ModificationStatus `json:"modification_status"`
	ProposedDate       *string            `json:"proposed_date,omitempty"`
	ProposedPartyStart *time.Time         `json:"proposed_party_start,omitempty"`
	ProposedPartyEnd   *time.Time         `json:"proposed_party_end,omitempty"`
	ModificationReason string             `json:"modification_reason"`
	ModificationCount  int32              `json:"modification_count"`

	// Damage assessment sub-state, opened at completion.
	DamageAssessmentPending   bool         `json:"damage_assessment_pending"`
	DamageAssessed            bool         `json:"damage_assessed"`
	DamageStatus              DamageStatus `json:"damage_assessment_status,omitempty"`
	DamageChargeAmountCents   *int32       `json:"damage_charge_amount_cents,omitempty"`
	DamageChargeAdjustedCents *int32       `json:"damage_charge_adjusted_cents,omitempty"`
	DamageChargeCents         *int32       `json:"damage_charge_cents,omitempty"`
	DamageDescription         string       `json:"damage_description"`
	DamageNotes               string       `json:"damage_notes"`
	AdminDamageNotes          string       `json:"admin_damage_notes"`
	AssessedBy                *int32       `json:"assessed_by,omitempty"`
	AssessedOn                *time.Time   `json:"assessed_on,omitempty"`
	ReviewedBy                *int32       `json:"reviewed_by,omitempty"`
	ReviewedOn                *time.Time   `json:"reviewed_on,omitempty"`

	// Price snapshot fields, captured from the amenity at booking time.
	// Fee calculations use these snapshots, not live amenity prices.
	TotalFeeCents     int32 `json:"total_fee_cents"`
	TotalDepositCents int32 `json:"total_deposit_cents"`

	CancellationFeeCents  *int32 `json:"cancellation_fee_cents,omitempty"`
	CancellationFeeReason string `json:"cancellation_fee_reason,omitempty"`
	CancelledBy           *int32 `json:"cancelled_by,omitempty"`
	RejectionReason       string `json:"rejection_reason,omitempty"`
	CompletedBy           *int32 `json:"completed_by,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// OpenStatuses are the statuses from which the primary lifecycle can still
// move: not yet cancelled or completed.
func OpenStatuses() []ReservationStatus {
	return []ReservationStatus{
		ReservationStatusNew,
		ReservationStatusJanitorialApproved,
		ReservationStatusFullyApproved,
	}
}

// BlockedFrom returns the start of the reservation's full unavailability
// span: the union of setup, party and cleaning windows.
func (r *Reservation) BlockedFrom() time.Time {
	from := r.SetupStart
	if r.PartyStart.Before(from) {
		from = r.PartyStart
	}
	return from
}

// BlockedUntil returns the end of the reservation's full unavailability span.
func (r *Reservation) BlockedUntil() time.Time {
	until := r.PartyEnd
	if r.SetupEnd.After(until) {
		until = r.SetupEnd
	}
	if r.CleaningEnd != nil && r.CleaningEnd.After(until) {
		until = *r.CleaningEnd
	}
	return until
}

// SettledStatus returns the furthest approval status the reservation is
// entitled to under the given policy, based on which approval stamps it
// already carries. Used when an amenity's approval flags change: a forward
// move is an auto-approval, a backward move re-opens a skipped step.
func (r *Reservation) SettledStatus(a *Amenity) ReservationStatus {
	switch r.Status {
	case ReservationStatusNew, ReservationStatusJanitorialApproved, ReservationStatusFullyApproved:
	default:
		return r.Status
	}
	janitorialDone := r.JanitorialApprovedBy != nil || !a.JanitorialRequired
	adminDone := r.AdminApprovedBy != nil || !a.ApprovalRequired
	if !janitorialDone {
		return ReservationStatusNew
	}
	if !adminDone {
		return ReservationStatusJanitorialApproved
	}
	return ReservationStatusFullyApproved
}
