package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/calendar"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/fare"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/network"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	RoutingBookingCreated = "booking.created"
	RoutingBookingPaid    = "booking.paid"
)

type ConfirmRequest struct {
	UserID          string
	TrainID         uint
	OriginCode      string
	DestinationCode string
	JourneyDate     string
}

type PayRequest struct {
	UserID string
	PNR    string
	Method string
}

type BookingService interface {
	Confirm(ctx context.Context, req ConfirmRequest) (*models.Booking, error)
	Pay(ctx context.Context, req PayRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, userID, pnr string) (*models.Booking, error)
	ListBookings(ctx context.Context, userID string) ([]models.Booking, error)
	Ticket(ctx context.Context, userID, pnr string) (*models.Booking, error)
}

// EventPublisher is satisfied by *rabbitmq.Publisher.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type BookingOptions struct {
	Window     BookingWindow
	Attempts   int
	References ReferenceGenerator
	Publisher  EventPublisher
}

type bookingService struct {
	repos    Repositories
	window   BookingWindow
	attempts int
	refs     ReferenceGenerator
	events   EventPublisher
}

func NewBookingService(repos Repositories, opts BookingOptions) BookingService {
	if opts.Attempts < 1 {
		opts.Attempts = defaultTries
	}
	if opts.References == nil {
		opts.References = RandomReferences()
	}
	if opts.Window.Clock == nil {
		opts.Window.Clock = SystemClock(nil)
	}
	return &bookingService{
		repos:    repos,
		window:   opts.Window,
		attempts: opts.Attempts,
		refs:     opts.References,
		events:   opts.Publisher,
	}
}

func (s *bookingService) Confirm(ctx context.Context, req ConfirmRequest) (*models.Booking, error) {
	date, err := s.window.Parse(req.JourneyDate)
	if err != nil {
		return nil, err
	}
	origin, err := lookupStation(ctx, s.repos.Stations, req.OriginCode)
	if err != nil {
		return nil, err
	}
	dest, err := lookupStation(ctx, s.repos.Stations, req.DestinationCode)
	if err != nil {
		return nil, err
	}
	if origin.Code == dest.Code {
		return nil, ErrRouteDirection
	}

	var result *models.Booking

	err = s.repos.Bookings.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the train row; concurrent confirms for the same train queue here
		train, err := s.repos.Trains.FindByIDForUpdate(ctx, tx, req.TrainID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTrainNotFound
			}
			return err
		}
		if train.Archived {
			return ErrTrainNotFound
		}

		// 2. Calendar, with overrides as of now
		overrides, err := s.repos.Schedules.FindForTrainAndDate(ctx, tx, train.ID, date)
		if err != nil {
			return err
		}
		if !calendar.New(overrides).IsOperating(*train, date) {
			return fmt.Errorf("%w: %s on %s", ErrNotOperating, train.Number, date.Weekday())
		}

		// 3. Seats
		if train.AvailableSeats < 1 {
			return ErrNoSeatsAvailable
		}

		// 4. Recompute distance and fare from the current route
		stops, err := s.repos.Routes.FindByTrain(ctx, tx, train.ID)
		if err != nil {
			return err
		}
		route, err := network.New([]models.Train{*train}, stops, nil)
		if err != nil {
			return err
		}
		from, ok := route.FindStop(train.ID, origin.Code)
		if !ok {
			return fmt.Errorf("%w: %s", ErrStopNotFound, origin.Code)
		}
		to, ok := route.FindStop(train.ID, dest.Code)
		if !ok {
			return fmt.Errorf("%w: %s", ErrStopNotFound, dest.Code)
		}
		distance, err := route.DistanceBetween(from, to)
		if err != nil {
			return err
		}
		breakdown, err := fare.Compute(distance, 1)
		if err != nil {
			return err
		}

		// 5. Take the seat
		taken, err := s.repos.Trains.DecrementSeat(ctx, tx, train.ID)
		if err != nil {
			return err
		}
		if !taken {
			return ErrNoSeatsAvailable
		}

		// 6. Persist with a fresh PNR
		booking := &models.Booking{
			UserID:            req.UserID,
			TrainID:           train.ID,
			OriginCode:        origin.Code,
			DestinationCode:   dest.Code,
			JourneyDate:       date,
			DistanceKm:        breakdown.DistanceKm,
			BaseFare:          breakdown.Base,
			ReservationCharge: breakdown.ReservationCharge,
			Tax:               breakdown.Tax,
			TotalFare:         breakdown.Total,
			PaymentStatus:     models.PaymentPending,
		}
		if err := s.createWithPNR(ctx, tx, booking); err != nil {
			return err
		}

		train.AvailableSeats--
		booking.Train = train
		booking.Origin = origin
		booking.Destination = dest
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"pnr":     result.PNR,
		"train":   result.Train.Number,
		"user_id": result.UserID,
		"seats":   result.Train.AvailableSeats,
		"total":   result.TotalFare,
		"journey": date.Format(calendar.DateLayout),
		"route":   origin.Code + "-" + dest.Code,
	}).Info("booking confirmed")
	s.publish(RoutingBookingCreated, result)

	return result, nil
}

// createWithPNR retries on PNR collisions. Each attempt runs under a
// savepoint so a unique violation does not abort the outer transaction.
func (s *bookingService) createWithPNR(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	for attempt := 1; attempt <= s.attempts; attempt++ {
		booking.PNR = s.refs.PNR()
		err := tx.Transaction(func(sp *gorm.DB) error {
			return s.repos.Bookings.Create(ctx, sp, booking)
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		logrus.WithField("attempt", attempt).Warn("pnr collision, regenerating")
	}
	return ErrReferenceGeneration
}

func (s *bookingService) Pay(ctx context.Context, req PayRequest) (*models.Booking, error) {
	var result *models.Booking

	err := s.repos.Bookings.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.repos.Bookings.FindByPNRForUpdate(ctx, tx, req.PNR)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.UserID != req.UserID {
			return ErrBookingNotFound
		}
		if booking.Paid() {
			return ErrAlreadyPaid
		}
		method, ok := models.ParsePaymentMethod(req.Method)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.Method)
		}

		paidAt := s.window.Clock.Now()
		for attempt := 1; attempt <= s.attempts; attempt++ {
			txnID := s.refs.TransactionID()
			err := tx.Transaction(func(sp *gorm.DB) error {
				return s.repos.Bookings.MarkPaid(ctx, sp, booking.PNR, method, txnID, paidAt)
			})
			if err == nil {
				booking.PaymentStatus = models.PaymentSuccess
				booking.PaymentMethod = &method
				booking.TransactionID = &txnID
				booking.PaymentDate = &paidAt
				result = booking
				return nil
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
			logrus.WithField("attempt", attempt).Warn("transaction id collision, regenerating")
		}
		return ErrReferenceGeneration
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"pnr":            result.PNR,
		"transaction_id": *result.TransactionID,
		"method":         *result.PaymentMethod,
	}).Info("payment recorded")
	s.publish(RoutingBookingPaid, result)

	return result, nil
}

// GetBooking hides other users' bookings behind ErrBookingNotFound.
func (s *bookingService) GetBooking(ctx context.Context, userID, pnr string) (*models.Booking, error) {
	booking, err := s.repos.Bookings.FindByPNR(ctx, pnr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.repos.Bookings.FindByUser(ctx, userID)
}

func (s *bookingService) Ticket(ctx context.Context, userID, pnr string) (*models.Booking, error) {
	booking, err := s.GetBooking(ctx, userID, pnr)
	if err != nil {
		return nil, err
	}
	if !booking.Paid() {
		return nil, ErrPaymentRequired
	}
	return booking, nil
}

func (s *bookingService) publish(routingKey string, booking *models.Booking) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(routingKey, booking); err != nil {
		logrus.WithError(err).WithField("pnr", booking.PNR).Warnf("failed to publish %s", routingKey)
	}
}

func lookupStation(ctx context.Context, stations repository.StationRepository, code string) (*models.Station, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: station code is required", ErrInvalidStation)
	}
	station, err := stations.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStation, code)
		}
		return nil, err
	}
	return station, nil
}
