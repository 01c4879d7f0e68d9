package postgres

import (
	"context"
	"database/sql"
	"time"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/repository"
)

type amenityRepository struct {
	db *sql.DB
}

func NewAmenityRepository(db *sql.DB) repository.AmenityRepository {
	return &amenityRepository{db: db}
}

const amenityColumns = `id, community_id, name, description, capacity, reservation_fee_cents, deposit_cents,
	operating_days, opens_at, closes_at, janitorial_required, approval_required,
	cancellation_fee_enabled, modification_fee_enabled, created_on, updated_on`

func scanAmenity(row interface{ Scan(...any) error }) (*domain.Amenity, error) {
	a := &domain.Amenity{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&a.ID, &a.CommunityID, &a.Name, &a.Description, &a.Capacity,
		&a.ReservationFeeCents, &a.DepositCents,
		&a.OperatingDays, &a.OpensAt, &a.ClosesAt,
		&a.JanitorialRequired, &a.ApprovalRequired,
		&a.CancellationFeeEnabled, &a.ModificationFeeEnabled,
		&createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	a.CreatedOn = createdOn.Format("2006-01-02")
	a.UpdatedOn = updatedOn.Format("2006-01-02")
	return a, nil
}

func (r *amenityRepository) Create(ctx context.Context, a *domain.Amenity) error {
	query := `INSERT INTO amenities (community_id, name, description, capacity, reservation_fee_cents, deposit_cents,
	            operating_days, opens_at, closes_at, janitorial_required, approval_required,
	            cancellation_fee_enabled, modification_fee_enabled, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	now := time.Now()
	a.CreatedOn = now.Format("2006-01-02")
	a.UpdatedOn = a.CreatedOn
	return r.db.QueryRowContext(ctx, query,
		a.CommunityID, a.Name, a.Description, a.Capacity, a.ReservationFeeCents, a.DepositCents,
		a.OperatingDays, a.OpensAt, a.ClosesAt, a.JanitorialRequired, a.ApprovalRequired,
		a.CancellationFeeEnabled, a.ModificationFeeEnabled, now, now).Scan(&a.ID)
}

func (r *amenityRepository) GetByID(ctx context.Context, id int32) (*domain.Amenity, error) {
	query := `SELECT ` + amenityColumns + ` FROM amenities WHERE id = $1`
	return scanAmenity(r.db.QueryRowContext(ctx, query, id))
}

func (r *amenityRepository) Update(ctx context.Context, a *domain.Amenity) error {
	query := `UPDATE amenities SET name=$1, description=$2, capacity=$3, reservation_fee_cents=$4, deposit_cents=$5,
	            operating_days=$6, opens_at=$7, closes_at=$8, janitorial_required=$9, approval_required=$10,
	            cancellation_fee_enabled=$11, modification_fee_enabled=$12, updated_on=$13
	          WHERE id=$14`
	now := time.Now()
	a.UpdatedOn = now.Format("2006-01-02")
	_, err := r.db.ExecContext(ctx, query,
		a.Name, a.Description, a.Capacity, a.ReservationFeeCents, a.DepositCents,
		a.OperatingDays, a.OpensAt, a.ClosesAt, a.JanitorialRequired, a.ApprovalRequired,
		a.CancellationFeeEnabled, a.ModificationFeeEnabled, now, a.ID)
	return err
}

func (r *amenityRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM amenities WHERE id = $1`, id)
	return err
}

func (r *amenityRepository) ListByCommunity(ctx context.Context, communityID int32) ([]domain.Amenity, error) {
	query := `SELECT ` + amenityColumns + ` FROM amenities WHERE community_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, communityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var amenities []domain.Amenity
	for rows.Next() {
		a, err := scanAmenity(rows)
		if err != nil {
			return nil, err
		}
		amenities = append(amenities, *a)
	}
	return amenities, rows.Err()
}
