package repository

import (
	"context"
	"time"

	"amenibook-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error

	// Community memberships
	AddMembership(ctx context.Context, m *domain.Membership) error
	GetMembership(ctx context.Context, userID, communityID int32) (*domain.Membership, error)
	ListMemberships(ctx context.Context, userID int32) ([]domain.Membership, error)
	UpdateMembership(ctx context.Context, m *domain.Membership) error
	ListMembersByCommunity(ctx context.Context, communityID int32) ([]domain.User, []domain.Membership, error)
}

type CommunityRepository interface {
	Create(ctx context.Context, c *domain.Community) error
	GetByID(ctx context.Context, id int32) (*domain.Community, error)
	List(ctx context.Context) ([]domain.Community, error)
	Update(ctx context.Context, c *domain.Community) error
}

type AmenityRepository interface {
	Create(ctx context.Context, a *domain.Amenity) error
	GetByID(ctx context.Context, id int32) (*domain.Amenity, error)
	Update(ctx context.Context, a *domain.Amenity) error
	Delete(ctx context.Context, id int32) error
	ListByCommunity(ctx context.Context, communityID int32) ([]domain.Amenity, error)
}

type ReservationRepository interface {
	// Create inserts the reservation inside a single transaction that locks
	// the amenity row and re-runs the overlap check, so two concurrent
	// bookings for the same slot cannot both succeed. Returns
	// *domain.ConflictError when the window is taken.
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)

	// The conditional updates below persist the reservation's mutable fields
	// only when the guarded column still holds the expected value, and
	// return domain.ErrStaleState when zero rows match.
	UpdateStatus(ctx context.Context, r *domain.Reservation, expected domain.ReservationStatus) error
	UpdateModification(ctx context.Context, r *domain.Reservation, expected domain.ModificationStatus) error
	UpdateDamage(ctx context.Context, r *domain.Reservation, expected domain.DamageStatus) error

	// FindConflict returns the id of a non-cancelled reservation whose
	// blocked span overlaps [from, until), or 0 when the window is free.
	FindConflict(ctx context.Context, amenityID int32, from, until time.Time, excludeID int32) (int32, error)

	ListByAmenity(ctx context.Context, amenityID int32, statuses []domain.ReservationStatus) ([]domain.Reservation, error)
	ListByResident(ctx context.Context, residentID, communityID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error)
	ListByCommunity(ctx context.Context, communityID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
