package repository

import (
	"hotel-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Room        RoomRepository
	Reservation ReservationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Room:        NewRoomRepository(db, log),
		Reservation: NewReservationRepository(db, log),
	}
}
