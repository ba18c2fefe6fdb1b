package service

import (
	"errors"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/network"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/session"
)

var (
	ErrInvalidStation       = errors.New("invalid station")
	ErrInvalidDate          = errors.New("invalid journey date")
	ErrNotOperating         = errors.New("train does not run on the selected date")
	ErrRouteDirection       = network.ErrRouteDirection
	ErrInvalidRoute         = network.ErrInvalidRoute
	ErrNoSeatsAvailable     = errors.New("no seats available")
	ErrTrainNotFound        = errors.New("train not found")
	ErrStopNotFound         = errors.New("train does not stop at the selected station")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrSessionNotFound      = session.ErrNotFound
	ErrAlreadyPaid          = errors.New("booking is already paid")
	ErrPaymentRequired      = errors.New("complete payment before downloading the ticket")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrReferenceGeneration  = errors.New("could not generate a unique reference")
	ErrInvalidTrain         = errors.New("invalid train")
	ErrTrainHasBookings     = errors.New("train has bookings, archive it instead")
	ErrDuplicate            = errors.New("already exists")
)
