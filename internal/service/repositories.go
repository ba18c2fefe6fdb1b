package service

import (
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/repository"
	"gorm.io/gorm"
)

type Repositories struct {
	Trains    repository.TrainRepository
	Routes    repository.RouteRepository
	Stations  repository.StationRepository
	Schedules repository.ScheduleRepository
	Bookings  repository.BookingRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Trains:    repository.NewTrainRepository(db),
		Routes:    repository.NewRouteRepository(db),
		Stations:  repository.NewStationRepository(db),
		Schedules: repository.NewScheduleRepository(db),
		Bookings:  repository.NewBookingRepository(db),
	}
}
