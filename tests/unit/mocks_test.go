package unit

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"amenibook-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) AddMembership(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}
func (m *MockUserRepo) GetMembership(ctx context.Context, userID, communityID int32) (*domain.Membership, error) {
	args := m.Called(ctx, userID, communityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}
func (m *MockUserRepo) ListMemberships(ctx context.Context, userID int32) ([]domain.Membership, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Membership), args.Error(1)
}
func (m *MockUserRepo) UpdateMembership(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}
func (m *MockUserRepo) ListMembersByCommunity(ctx context.Context, communityID int32) ([]domain.User, []domain.Membership, error) {
	args := m.Called(ctx, communityID)
	return args.Get(0).([]domain.User), args.Get(1).([]domain.Membership), args.Error(2)
}

// MockCommunityRepo
type MockCommunityRepo struct {
	mock.Mock
}

func (m *MockCommunityRepo) Create(ctx context.Context, c *domain.Community) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCommunityRepo) GetByID(ctx context.Context, id int32) (*domain.Community, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Community), args.Error(1)
}
func (m *MockCommunityRepo) List(ctx context.Context) ([]domain.Community, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Community), args.Error(1)
}
func (m *MockCommunityRepo) Update(ctx context.Context, c *domain.Community) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockAmenityRepo
type MockAmenityRepo struct {
	mock.Mock
}

func (m *MockAmenityRepo) Create(ctx context.Context, a *domain.Amenity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAmenityRepo) GetByID(ctx context.Context, id int32) (*domain.Amenity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Amenity), args.Error(1)
}
func (m *MockAmenityRepo) Update(ctx context.Context, a *domain.Amenity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAmenityRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAmenityRepo) ListByCommunity(ctx context.Context, communityID int32) ([]domain.Amenity, error) {
	args := m.Called(ctx, communityID)
	return args.Get(0).([]domain.Amenity), args.Error(1)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) UpdateStatus(ctx context.Context, r *domain.Reservation, expected domain.ReservationStatus) error {
	args := m.Called(ctx, r, expected)
	return args.Error(0)
}
func (m *MockReservationRepo) UpdateModification(ctx context.Context, r *domain.Reservation, expected domain.ModificationStatus) error {
	args := m.Called(ctx, r, expected)
	return args.Error(0)
}
func (m *MockReservationRepo) UpdateDamage(ctx context.Context, r *domain.Reservation, expected domain.DamageStatus) error {
	args := m.Called(ctx, r, expected)
	return args.Error(0)
}
func (m *MockReservationRepo) FindConflict(ctx context.Context, amenityID int32, from, until time.Time, excludeID int32) (int32, error) {
	args := m.Called(ctx, amenityID, from, until, excludeID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockReservationRepo) ListByAmenity(ctx context.Context, amenityID int32, statuses []domain.ReservationStatus) ([]domain.Reservation, error) {
	args := m.Called(ctx, amenityID, statuses)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListByResident(ctx context.Context, residentID, communityID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, residentID, communityID, status, page, pageSize)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}
func (m *MockReservationRepo) ListByCommunity(ctx context.Context, communityID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, communityID, status, page, pageSize)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReservationRequested(ctx context.Context, to, residentName, amenityName, date string) error {
	args := m.Called(ctx, to, residentName, amenityName, date)
	return args.Error(0)
}
func (m *MockEmailService) SendReservationApproved(ctx context.Context, to, amenityName, date, stage string) error {
	args := m.Called(ctx, to, amenityName, date, stage)
	return args.Error(0)
}
func (m *MockEmailService) SendReservationRejected(ctx context.Context, to, amenityName, date, reason string) error {
	args := m.Called(ctx, to, amenityName, date, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendReservationCancelled(ctx context.Context, to, amenityName, date string, feeCents int32, feeReason string) error {
	args := m.Called(ctx, to, amenityName, date, feeCents, feeReason)
	return args.Error(0)
}
func (m *MockEmailService) SendModificationProposed(ctx context.Context, to, amenityName, proposedDate, reason string) error {
	args := m.Called(ctx, to, amenityName, proposedDate, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendModificationResolved(ctx context.Context, to, amenityName string, accepted bool) error {
	args := m.Called(ctx, to, amenityName, accepted)
	return args.Error(0)
}
func (m *MockEmailService) SendReservationCompleted(ctx context.Context, to, amenityName, date string, damagesFound bool) error {
	args := m.Called(ctx, to, amenityName, date, damagesFound)
	return args.Error(0)
}
func (m *MockEmailService) SendDamageAssessmentSubmitted(ctx context.Context, to, amenityName string, amountCents int32, description string) error {
	args := m.Called(ctx, to, amenityName, amountCents, description)
	return args.Error(0)
}
func (m *MockEmailService) SendDamageAssessmentReviewed(ctx context.Context, to, amenityName, outcome string, chargeCents *int32) error {
	args := m.Called(ctx, to, amenityName, outcome, chargeCents)
	return args.Error(0)
}
func (m *MockEmailService) SendStaffDigest(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
