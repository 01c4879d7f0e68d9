package postgres

import (
	"database/sql"

	"amenibook-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CommunityRepository
	repository.AmenityRepository
	repository.ReservationRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		CommunityRepository:    NewCommunityRepository(db),
		AmenityRepository:      NewAmenityRepository(db),
		ReservationRepository:  NewReservationRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
