package unit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/service"
)

type amenityFixture struct {
	amenityRepo     *MockAmenityRepo
	reservationRepo *MockReservationRepo
	userRepo        *MockUserRepo
	emailSvc        *MockEmailService
	noteRepo        *MockNotificationRepo
	svc             service.AmenityService
}

func newAmenityFixture() *amenityFixture {
	f := &amenityFixture{
		amenityRepo:     new(MockAmenityRepo),
		reservationRepo: new(MockReservationRepo),
		userRepo:        new(MockUserRepo),
		emailSvc:        new(MockEmailService),
		noteRepo:        new(MockNotificationRepo),
	}
	f.svc = service.NewAmenityService(
		f.amenityRepo, f.reservationRepo, f.userRepo, f.emailSvc, f.noteRepo,
	)
	return f
}

func (f *amenityFixture) admin(userID, communityID int32) {
	f.userRepo.On("GetMembership", mock.Anything, userID, communityID).
		Return(&domain.Membership{UserID: userID, CommunityID: communityID, Role: domain.CommunityRoleAdmin, Active: true}, nil)
}

func openReservation(id int32, status domain.ReservationStatus, janitorialBy, adminBy *int32) domain.Reservation {
	start := time.Date(2026, 7, 10, 18, 0, 0, 0, time.UTC)
	return domain.Reservation{
		ID:                   id,
		CommunityID:          3,
		AmenityID:            5,
		ResidentID:           1,
		Date:                 "2026-07-10",
		SetupStart:           start.Add(-time.Hour),
		SetupEnd:             start,
		PartyStart:           start,
		PartyEnd:             start.Add(3 * time.Hour),
		Status:               status,
		JanitorialApprovedBy: janitorialBy,
		AdminApprovedBy:      adminBy,
	}
}

func TestAmenityService_CreateAmenity(t *testing.T) {
	t.Run("Admin only", func(t *testing.T) {
		f := newAmenityFixture()
		f.userRepo.On("GetMembership", mock.Anything, int32(7), int32(3)).
			Return(&domain.Membership{UserID: 7, CommunityID: 3, Role: domain.CommunityRoleJanitorial, Active: true}, nil)

		err := f.svc.CreateAmenity(context.Background(), 7, testAmenity())
		var permErr *domain.PermissionError
		assert.ErrorAs(t, err, &permErr)
	})

	t.Run("Rejects bad operating hours", func(t *testing.T) {
		f := newAmenityFixture()
		f.admin(8, 3)
		bad := testAmenity()
		bad.OpensAt = "9am"

		err := f.svc.CreateAmenity(context.Background(), 8, bad)
		var valErr *domain.ValidationError
		assert.ErrorAs(t, err, &valErr)
	})

	t.Run("Success", func(t *testing.T) {
		f := newAmenityFixture()
		f.admin(8, 3)
		f.amenityRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Amenity")).Return(nil)

		assert.NoError(t, f.svc.CreateAmenity(context.Background(), 8, testAmenity()))
	})
}

func TestAmenityService_DeleteAmenity(t *testing.T) {
	t.Run("Admin only", func(t *testing.T) {
		f := newAmenityFixture()
		f.userRepo.On("GetMembership", mock.Anything, int32(7), int32(3)).
			Return(&domain.Membership{UserID: 7, CommunityID: 3, Role: domain.CommunityRoleJanitorial, Active: true}, nil)

		err := f.svc.DeleteAmenity(context.Background(), 7, 3, 5)
		var permErr *domain.PermissionError
		assert.ErrorAs(t, err, &permErr)
	})

	t.Run("Open reservations block deletion", func(t *testing.T) {
		f := newAmenityFixture()
		f.admin(8, 3)
		jan := int32(7)
		f.amenityRepo.On("GetByID", mock.Anything, int32(5)).Return(testAmenity(), nil)
		f.reservationRepo.On("ListByAmenity", mock.Anything, int32(5), domain.OpenStatuses()).Return([]domain.Reservation{
			openReservation(101, domain.ReservationStatusJanitorialApproved, &jan, nil),
		}, nil)

		err := f.svc.DeleteAmenity(context.Background(), 8, 3, 5)
		var policyErr *domain.PolicyError
		assert.ErrorAs(t, err, &policyErr)
		f.amenityRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Success once the calendar is clear", func(t *testing.T) {
		f := newAmenityFixture()
		f.admin(8, 3)
		f.amenityRepo.On("GetByID", mock.Anything, int32(5)).Return(testAmenity(), nil)
		f.reservationRepo.On("ListByAmenity", mock.Anything, int32(5), domain.OpenStatuses()).Return([]domain.Reservation{}, nil)
		f.amenityRepo.On("Delete", mock.Anything, int32(5)).Return(nil)

		assert.NoError(t, f.svc.DeleteAmenity(context.Background(), 8, 3, 5))
		f.amenityRepo.AssertCalled(t, "Delete", mock.Anything, int32(5))
	})

	t.Run("Wrong community rejected", func(t *testing.T) {
		f := newAmenityFixture()
		f.admin(8, 4)
		elsewhere := testAmenity() // belongs to community 3
		f.amenityRepo.On("GetByID", mock.Anything, int32(5)).Return(elsewhere, nil)

		err := f.svc.DeleteAmenity(context.Background(), 8, 4, 5)
		var valErr *domain.ValidationError
		assert.ErrorAs(t, err, &valErr)
	})
}

func TestAmenityService_UpdateAmenity_PolicyChanges(t *testing.T) {
	jan := int32(7)

	t.Run("Disabling admin approval auto-approves waiting reservations", func(t *testing.T) {
		f := newAmenityFixture()
		f.admin(8, 3)

		before := testAmenity() // both approval steps on
		after := testAmenity()
		after.ApprovalRequired = false

		f.amenityRepo.On("GetByID", mock.Anything, int32(5)).Return(before, nil)
		f.amenityRepo.On("Update", mock.Anything, after).Return(nil)
		f.reservationRepo.On("ListByAmenity", mock.Anything, int32(5), domain.OpenStatuses()).Return([]domain.Reservation{
			openReservation(101, domain.ReservationStatusJanitorialApproved, &jan, nil),
			openReservation(102, domain.ReservationStatusJanitorialApproved, &jan, nil),
			openReservation(103, domain.ReservationStatusJanitorialApproved, &jan, nil),
			openReservation(104, domain.ReservationStatusNew, nil, nil),
		}, nil)
		f.reservationRepo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("*domain.Reservation"), domain.ReservationStatusJanitorialApproved).Return(nil)
		f.userRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.User{ID: 1, Email: "res@test.com"}, nil)
		f.emailSvc.On("SendReservationApproved", mock.Anything, "res@test.com", "Clubhouse", "2026-07-10", "policy").Return(nil)
		f.noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

		summary, err := f.svc.UpdateAmenity(context.Background(), 8, after)
		assert.NoError(t, err)
		// The three janitorial-approved reservations advance; the NEW one
		// still needs its janitorial decision.
		assert.Equal(t, int32(3), summary.AutoApprovedCount)
		assert.Equal(t, int32(0), summary.UnconfirmedCount)
		f.reservationRepo.AssertNumberOfCalls(t, "UpdateStatus", 3)
	})

	t.Run("Re-enabling janitorial rolls back stampless approvals", func(t *testing.T) {
		f := newAmenityFixture()
		f.admin(8, 3)

		before := testAmenity()
		before.JanitorialRequired = false
		after := testAmenity() // janitorial back on

		adminID := int32(8)
		f.amenityRepo.On("GetByID", mock.Anything, int32(5)).Return(before, nil)
		f.amenityRepo.On("Update", mock.Anything, after).Return(nil)
		f.reservationRepo.On("ListByAmenity", mock.Anything, int32(5), domain.OpenStatuses()).Return([]domain.Reservation{
			// Approved while janitorial was off: no janitorial stamp.
			openReservation(201, domain.ReservationStatusFullyApproved, nil, &adminID),
			// Carries both stamps, stays put.
			openReservation(202, domain.ReservationStatusFullyApproved, &jan, &adminID),
		}, nil)
		f.reservationRepo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("*domain.Reservation"), domain.ReservationStatusFullyApproved).Return(nil)
		f.noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
		f.userRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.User{ID: 1, Email: "res@test.com"}, nil)

		summary, err := f.svc.UpdateAmenity(context.Background(), 8, after)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), summary.AutoApprovedCount)
		assert.Equal(t, int32(1), summary.UnconfirmedCount)
	})

	t.Run("Lost race leaves the reservation alone", func(t *testing.T) {
		f := newAmenityFixture()
		f.admin(8, 3)

		before := testAmenity()
		after := testAmenity()
		after.ApprovalRequired = false

		f.amenityRepo.On("GetByID", mock.Anything, int32(5)).Return(before, nil)
		f.amenityRepo.On("Update", mock.Anything, after).Return(nil)
		f.reservationRepo.On("ListByAmenity", mock.Anything, int32(5), domain.OpenStatuses()).Return([]domain.Reservation{
			openReservation(101, domain.ReservationStatusJanitorialApproved, &jan, nil),
		}, nil)
		f.reservationRepo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("*domain.Reservation"), domain.ReservationStatusJanitorialApproved).
			Return(domain.ErrStaleState)

		summary, err := f.svc.UpdateAmenity(context.Background(), 8, after)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), summary.AutoApprovedCount)
		assert.Equal(t, int32(0), summary.UnconfirmedCount)
	})

	t.Run("No approval flags changed: no reconcile", func(t *testing.T) {
		f := newAmenityFixture()
		f.admin(8, 3)

		before := testAmenity()
		after := testAmenity()
		after.ReservationFeeCents = 12000

		f.amenityRepo.On("GetByID", mock.Anything, int32(5)).Return(before, nil)
		f.amenityRepo.On("Update", mock.Anything, after).Return(nil)

		summary, err := f.svc.UpdateAmenity(context.Background(), 8, after)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), summary.AutoApprovedCount)
		f.reservationRepo.AssertNotCalled(t, "ListByAmenity", mock.Anything, mock.Anything, mock.Anything)
	})
}
