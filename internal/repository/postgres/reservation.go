package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/repository"

	"github.com/lib/pq"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, community_id, amenity_id, resident_id, date,
	setup_start, setup_end, party_start, party_end, cleaning_start, cleaning_end,
	blocked_from, blocked_until, guest_count, status,
	janitorial_approved_by, janitorial_approved_on, admin_approved_by, admin_approved_on,
	modification_status, proposed_date, proposed_party_start, proposed_party_end,
	COALESCE(modification_reason, ''), modification_count,
	damage_assessment_pending, damage_assessed, COALESCE(damage_assessment_status, ''),
	damage_charge_amount_cents, damage_charge_adjusted_cents, damage_charge_cents,
	COALESCE(damage_description, ''), COALESCE(damage_notes, ''), COALESCE(admin_damage_notes, ''),
	assessed_by, assessed_on, reviewed_by, reviewed_on,
	total_fee_cents, total_deposit_cents,
	cancellation_fee_cents, COALESCE(cancellation_fee_reason, ''), cancelled_by,
	COALESCE(rejection_reason, ''), completed_by, created_on, updated_on`

func scanReservation(row interface{ Scan(...any) error }) (*domain.Reservation, error) {
	rv := &domain.Reservation{}
	var (
		date                 time.Time
		cleaningStart        sql.NullTime
		cleaningEnd          sql.NullTime
		blockedFrom          time.Time
		blockedUntil         time.Time
		janitorialApprovedBy sql.NullInt32
		janitorialApprovedOn sql.NullTime
		adminApprovedBy      sql.NullInt32
		adminApprovedOn      sql.NullTime
		proposedDate         sql.NullTime
		proposedPartyStart   sql.NullTime
		proposedPartyEnd     sql.NullTime
		damageAmount         sql.NullInt32
		damageAdjusted       sql.NullInt32
		damageCharge         sql.NullInt32
		assessedBy           sql.NullInt32
		assessedOn           sql.NullTime
		reviewedBy           sql.NullInt32
		reviewedOn           sql.NullTime
		cancellationFee      sql.NullInt32
		cancelledBy          sql.NullInt32
		completedBy          sql.NullInt32
	)
	err := row.Scan(&rv.ID, &rv.CommunityID, &rv.AmenityID, &rv.ResidentID, &date,
		&rv.SetupStart, &rv.SetupEnd, &rv.PartyStart, &rv.PartyEnd, &cleaningStart, &cleaningEnd,
		&blockedFrom, &blockedUntil, &rv.GuestCount, &rv.Status,
		&janitorialApprovedBy, &janitorialApprovedOn, &adminApprovedBy, &adminApprovedOn,
		&rv.ModificationStatus, &proposedDate, &proposedPartyStart, &proposedPartyEnd,
		&rv.ModificationReason, &rv.ModificationCount,
		&rv.DamageAssessmentPending, &rv.DamageAssessed, &rv.DamageStatus,
		&damageAmount, &damageAdjusted, &damageCharge,
		&rv.DamageDescription, &rv.DamageNotes, &rv.AdminDamageNotes,
		&assessedBy, &assessedOn, &reviewedBy, &reviewedOn,
		&rv.TotalFeeCents, &rv.TotalDepositCents,
		&cancellationFee, &rv.CancellationFeeReason, &cancelledBy,
		&rv.RejectionReason, &completedBy, &rv.CreatedOn, &rv.UpdatedOn)
	if err != nil {
		return nil, err
	}
	rv.Date = date.Format("2006-01-02")
	rv.CleaningStart = nullTimePtr(cleaningStart)
	rv.CleaningEnd = nullTimePtr(cleaningEnd)
	rv.JanitorialApprovedBy = nullInt32Ptr(janitorialApprovedBy)
	rv.JanitorialApprovedOn = nullTimePtr(janitorialApprovedOn)
	rv.AdminApprovedBy = nullInt32Ptr(adminApprovedBy)
	rv.AdminApprovedOn = nullTimePtr(adminApprovedOn)
	if proposedDate.Valid {
		d := proposedDate.Time.Format("2006-01-02")
		rv.ProposedDate = &d
	}
	rv.ProposedPartyStart = nullTimePtr(proposedPartyStart)
	rv.ProposedPartyEnd = nullTimePtr(proposedPartyEnd)
	rv.DamageChargeAmountCents = nullInt32Ptr(damageAmount)
	rv.DamageChargeAdjustedCents = nullInt32Ptr(damageAdjusted)
	rv.DamageChargeCents = nullInt32Ptr(damageCharge)
	rv.AssessedBy = nullInt32Ptr(assessedBy)
	rv.AssessedOn = nullTimePtr(assessedOn)
	rv.ReviewedBy = nullInt32Ptr(reviewedBy)
	rv.ReviewedOn = nullTimePtr(reviewedOn)
	rv.CancellationFeeCents = nullInt32Ptr(cancellationFee)
	rv.CancelledBy = nullInt32Ptr(cancelledBy)
	rv.CompletedBy = nullInt32Ptr(completedBy)
	return rv, nil
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func nullInt32Ptr(v sql.NullInt32) *int32 {
	if !v.Valid {
		return nil
	}
	n := v.Int32
	return &n
}

const conflictQuery = `SELECT id FROM reservations
	WHERE amenity_id = $1 AND status <> 'CANCELLED' AND id <> $2
	  AND blocked_from < $4 AND $3 < blocked_until
	ORDER BY blocked_from LIMIT 1`

// Create inserts the reservation inside one transaction: the amenity row is
// locked first so two concurrent bookings serialize, then the overlap check
// runs against the locked set before the insert.
func (r *reservationRepository) Create(ctx context.Context, rv *domain.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var amenityID int32
	if err := tx.QueryRowContext(ctx, `SELECT id FROM amenities WHERE id = $1 FOR UPDATE`, rv.AmenityID).Scan(&amenityID); err != nil {
		return fmt.Errorf("locking amenity %d: %w", rv.AmenityID, err)
	}

	blockedFrom := rv.BlockedFrom()
	blockedUntil := rv.BlockedUntil()

	var conflictID int32
	err = tx.QueryRowContext(ctx, conflictQuery, rv.AmenityID, int32(0), blockedFrom, blockedUntil).Scan(&conflictID)
	if err == nil {
		return &domain.ConflictError{ConflictingReservationID: conflictID}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	now := time.Now()
	rv.CreatedOn = now
	rv.UpdatedOn = now
	query := `INSERT INTO reservations (community_id, amenity_id, resident_id, date,
	            setup_start, setup_end, party_start, party_end, cleaning_start, cleaning_end,
	            blocked_from, blocked_until, guest_count, status, modification_status, modification_count,
	            damage_assessment_pending, damage_assessed, total_fee_cents, total_deposit_cents,
	            created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	          RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		rv.CommunityID, rv.AmenityID, rv.ResidentID, rv.Date,
		rv.SetupStart, rv.SetupEnd, rv.PartyStart, rv.PartyEnd, rv.CleaningStart, rv.CleaningEnd,
		blockedFrom, blockedUntil, rv.GuestCount, rv.Status, rv.ModificationStatus, rv.ModificationCount,
		rv.DamageAssessmentPending, rv.DamageAssessed, rv.TotalFeeCents, rv.TotalDepositCents,
		now, now).Scan(&rv.ID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *reservationRepository) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	return scanReservation(r.db.QueryRowContext(ctx, query, id))
}

// UpdateStatus persists the lifecycle fields, but only when the row still
// holds the expected status. A lost race matches zero rows and surfaces as
// domain.ErrStaleState, so stale double-clicks never apply twice.
func (r *reservationRepository) UpdateStatus(ctx context.Context, rv *domain.Reservation, expected domain.ReservationStatus) error {
	query := `UPDATE reservations SET
	            date=$1, setup_start=$2, setup_end=$3, party_start=$4, party_end=$5,
	            cleaning_start=$6, cleaning_end=$7, blocked_from=$8, blocked_until=$9,
	            guest_count=$10, status=$11,
	            janitorial_approved_by=$12, janitorial_approved_on=$13,
	            admin_approved_by=$14, admin_approved_on=$15,
	            modification_count=$16, damage_assessment_pending=$17,
	            cancellation_fee_cents=$18, cancellation_fee_reason=$19, cancelled_by=$20,
	            rejection_reason=$21, completed_by=$22, updated_on=$23
	          WHERE id=$24 AND status=$25`
	now := time.Now()
	rv.UpdatedOn = now
	res, err := r.db.ExecContext(ctx, query,
		rv.Date, rv.SetupStart, rv.SetupEnd, rv.PartyStart, rv.PartyEnd,
		rv.CleaningStart, rv.CleaningEnd, rv.BlockedFrom(), rv.BlockedUntil(),
		rv.GuestCount, rv.Status,
		rv.JanitorialApprovedBy, rv.JanitorialApprovedOn,
		rv.AdminApprovedBy, rv.AdminApprovedOn,
		rv.ModificationCount, rv.DamageAssessmentPending,
		rv.CancellationFeeCents, rv.CancellationFeeReason, rv.CancelledBy,
		rv.RejectionReason, rv.CompletedBy, now,
		rv.ID, expected)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

// UpdateModification persists the proposal fields plus the live window
// fields (acceptance applies the proposed values), guarded on both the
// expected modification status and the reservation's current primary status.
func (r *reservationRepository) UpdateModification(ctx context.Context, rv *domain.Reservation, expected domain.ModificationStatus) error {
	query := `UPDATE reservations SET
	            modification_status=$1, proposed_date=$2, proposed_party_start=$3, proposed_party_end=$4,
	            modification_reason=$5, modification_count=$6,
	            date=$7, setup_start=$8, setup_end=$9, party_start=$10, party_end=$11,
	            cleaning_start=$12, cleaning_end=$13, blocked_from=$14, blocked_until=$15, updated_on=$16
	          WHERE id=$17 AND modification_status=$18 AND status=$19`
	now := time.Now()
	rv.UpdatedOn = now
	res, err := r.db.ExecContext(ctx, query,
		rv.ModificationStatus, rv.ProposedDate, rv.ProposedPartyStart, rv.ProposedPartyEnd,
		rv.ModificationReason, rv.ModificationCount,
		rv.Date, rv.SetupStart, rv.SetupEnd, rv.PartyStart, rv.PartyEnd,
		rv.CleaningStart, rv.CleaningEnd, rv.BlockedFrom(), rv.BlockedUntil(), now,
		rv.ID, expected, rv.Status)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

// UpdateDamage persists the damage assessment fields, guarded on the
// expected assessment status. Reviews are single-shot: a second review
// finds the status already moved and fails with domain.ErrStaleState.
func (r *reservationRepository) UpdateDamage(ctx context.Context, rv *domain.Reservation, expected domain.DamageStatus) error {
	query := `UPDATE reservations SET
	            damage_assessment_pending=$1, damage_assessed=$2, damage_assessment_status=$3,
	            damage_charge_amount_cents=$4, damage_charge_adjusted_cents=$5, damage_charge_cents=$6,
	            damage_description=$7, damage_notes=$8, admin_damage_notes=$9,
	            assessed_by=$10, assessed_on=$11, reviewed_by=$12, reviewed_on=$13, updated_on=$14
	          WHERE id=$15 AND COALESCE(damage_assessment_status, '')=$16 AND status='COMPLETED'`
	now := time.Now()
	rv.UpdatedOn = now
	res, err := r.db.ExecContext(ctx, query,
		rv.DamageAssessmentPending, rv.DamageAssessed, rv.DamageStatus,
		rv.DamageChargeAmountCents, rv.DamageChargeAdjustedCents, rv.DamageChargeCents,
		rv.DamageDescription, rv.DamageNotes, rv.AdminDamageNotes,
		rv.AssessedBy, rv.AssessedOn, rv.ReviewedBy, rv.ReviewedOn, now,
		rv.ID, expected)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrStaleState
	}
	return nil
}

func (r *reservationRepository) FindConflict(ctx context.Context, amenityID int32, from, until time.Time, excludeID int32) (int32, error) {
	var id int32
	err := r.db.QueryRowContext(ctx, conflictQuery, amenityID, excludeID, from, until).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *reservationRepository) ListByAmenity(ctx context.Context, amenityID int32, statuses []domain.ReservationStatus) ([]domain.Reservation, error) {
	vals := make([]string, len(statuses))
	for i, s := range statuses {
		vals[i] = string(s)
	}
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE amenity_id = $1 AND status = ANY($2) ORDER BY blocked_from`
	rows, err := r.db.QueryContext(ctx, query, amenityID, pq.Array(vals))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *reservationRepository) ListByResident(ctx context.Context, residentID, communityID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	return r.list(ctx, `resident_id`, residentID, communityID, status, page, pageSize)
}

func (r *reservationRepository) ListByCommunity(ctx context.Context, communityID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	offset := (page - 1) * pageSize
	base := `FROM reservations WHERE community_id = $1`
	args := []interface{}{communityID}
	argIdx := 2
	if status != "" {
		base += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) `+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + reservationColumns + ` ` + base +
		fmt.Sprintf(" ORDER BY party_start DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reservations, err := collectReservations(rows)
	return reservations, count, err
}

func (r *reservationRepository) list(ctx context.Context, ownerCol string, ownerID, communityID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	offset := (page - 1) * pageSize
	base := `FROM reservations WHERE ` + ownerCol + ` = $1 AND community_id = $2`
	args := []interface{}{ownerID, communityID}
	argIdx := 3
	if status != "" {
		base += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) `+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + reservationColumns + ` ` + base +
		fmt.Sprintf(" ORDER BY party_start DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reservations, err := collectReservations(rows)
	return reservations, count, err
}

func collectReservations(rows *sql.Rows) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	for rows.Next() {
		rv, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *rv)
	}
	return reservations, rows.Err()
}
