package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/calendar"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/network"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TrainUpdate struct {
	Name       *string
	TotalSeats *int
	Coaches    *int
	Classes    []string
	OffDays    []string
	Suspended  *bool
}

type OverrideRequest struct {
	TrainID      uint
	JourneyDate  string
	Status       models.ScheduleStatus
	DelayMinutes int
}

// TrainService backs the admin screens. Callers are authorized before reaching it.
type TrainService interface {
	CreateStation(ctx context.Context, station *models.Station) error
	CreateTrain(ctx context.Context, train *models.Train) error
	UpdateTrain(ctx context.Context, id uint, update TrainUpdate) (*models.Train, error)
	ListTrains(ctx context.Context, includeArchived bool) ([]models.Train, error)
	ReplaceRoute(ctx context.Context, trainID uint, stops []models.RouteStop) (*models.Train, error)
	SetOverride(ctx context.Context, req OverrideRequest) (*models.ScheduleOverride, error)
	ArchiveTrain(ctx context.Context, id uint) (*models.Train, error)
	DeleteTrain(ctx context.Context, id uint) error
}

type trainService struct {
	repos Repositories
}

func NewTrainService(repos Repositories) TrainService {
	return &trainService{repos: repos}
}

func (s *trainService) CreateStation(ctx context.Context, station *models.Station) error {
	station.Code = strings.ToUpper(strings.TrimSpace(station.Code))
	station.Name = strings.TrimSpace(station.Name)
	if station.Code == "" || len(station.Code) > 10 || station.Name == "" {
		return fmt.Errorf("%w: code (max 10 chars) and name are required", ErrInvalidStation)
	}
	if err := s.repos.Stations.Create(ctx, station); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("station %s: %w", station.Code, ErrDuplicate)
		}
		return fmt.Errorf("create station: %w", err)
	}
	return nil
}

func (s *trainService) CreateTrain(ctx context.Context, train *models.Train) error {
	train.Number = strings.TrimSpace(train.Number)
	train.Name = strings.TrimSpace(train.Name)
	if train.Number == "" || train.Name == "" {
		return fmt.Errorf("%w: number and name are required", ErrInvalidTrain)
	}
	if train.TotalSeats < 1 {
		return fmt.Errorf("%w: total seats must be positive", ErrInvalidTrain)
	}
	offDays, err := calendar.NormalizeOffDays(train.OffDays)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTrain, err)
	}
	train.OffDays = offDays
	train.AvailableSeats = train.TotalSeats
	train.Archived = false
	train.Stops = nil

	if err := s.repos.Trains.Create(ctx, train); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("train %s: %w", train.Number, ErrDuplicate)
		}
		return fmt.Errorf("create train: %w", err)
	}

	logrus.WithField("train", train.Number).Info("train created")
	return nil
}

func (s *trainService) UpdateTrain(ctx context.Context, id uint, update TrainUpdate) (*models.Train, error) {
	var result *models.Train

	err := s.repos.Trains.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		train, err := s.lockTrain(ctx, tx, id)
		if err != nil {
			return err
		}

		if update.Name != nil {
			name := strings.TrimSpace(*update.Name)
			if name == "" {
				return fmt.Errorf("%w: name is required", ErrInvalidTrain)
			}
			train.Name = name
		}
		if update.TotalSeats != nil {
			// seats already sold stay sold
			sold := train.TotalSeats - train.AvailableSeats
			if *update.TotalSeats < 1 || *update.TotalSeats < sold {
				return fmt.Errorf("%w: total seats must cover the %d seats already booked", ErrInvalidTrain, sold)
			}
			train.TotalSeats = *update.TotalSeats
			train.AvailableSeats = *update.TotalSeats - sold
		}
		if update.Coaches != nil {
			if *update.Coaches < 0 {
				return fmt.Errorf("%w: coaches cannot be negative", ErrInvalidTrain)
			}
			train.Coaches = *update.Coaches
		}
		if update.Classes != nil {
			train.Classes = update.Classes
		}
		if update.OffDays != nil {
			offDays, err := calendar.NormalizeOffDays(update.OffDays)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidTrain, err)
			}
			train.OffDays = offDays
		}
		if update.Suspended != nil {
			train.Suspended = *update.Suspended
		}

		if err := s.repos.Trains.Save(ctx, tx, train); err != nil {
			return err
		}
		result = train
		return nil
	})

	return result, err
}

func (s *trainService) ListTrains(ctx context.Context, includeArchived bool) ([]models.Train, error) {
	return s.repos.Trains.FindAll(ctx, includeArchived)
}

// ReplaceRoute swaps a train's stop list. Bookings keep their own copy of
// stations and fare, so existing tickets are unaffected.
func (s *trainService) ReplaceRoute(ctx context.Context, trainID uint, stops []models.RouteStop) (*models.Train, error) {
	codes := make([]string, 0, len(stops))
	for i := range stops {
		stops[i].StationCode = strings.ToUpper(strings.TrimSpace(stops[i].StationCode))
		stops[i].TrainID = trainID
		if c, ok := network.ClockTime(stops[i].DepartureTime); ok {
			stops[i].DepartureTime = c
		}
		if stops[i].ArrivalTime != nil {
			if c, ok := network.ClockTime(*stops[i].ArrivalTime); ok {
				stops[i].ArrivalTime = &c
			}
		}
		codes = append(codes, stops[i].StationCode)
	}
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Sequence < stops[j].Sequence })
	if len(stops) < 2 {
		return nil, fmt.Errorf("%w: a route needs at least two stops", ErrInvalidRoute)
	}
	if err := network.ValidateStops(stops); err != nil {
		return nil, err
	}
	known, err := s.repos.Stations.CountByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	if int(known) != len(codes) {
		return nil, fmt.Errorf("%w: route references unknown stations", ErrInvalidStation)
	}

	err = s.repos.Trains.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.lockTrain(ctx, tx, trainID); err != nil {
			return err
		}
		return s.repos.Routes.ReplaceForTrain(ctx, tx, trainID, stops)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"train_id": trainID, "stops": len(stops)}).Info("route replaced")
	return s.repos.Trains.FindByID(ctx, trainID)
}

func (s *trainService) SetOverride(ctx context.Context, req OverrideRequest) (*models.ScheduleOverride, error) {
	date, err := calendar.ParseDate(req.JourneyDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, req.JourneyDate)
	}
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown schedule status %q", ErrInvalidTrain, req.Status)
	}
	if req.DelayMinutes < 0 || (req.Status != models.ScheduleDelayed && req.DelayMinutes != 0) {
		return nil, fmt.Errorf("%w: delay minutes only apply to delayed trains", ErrInvalidTrain)
	}
	if _, err := s.repos.Trains.FindByID(ctx, req.TrainID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainNotFound
		}
		return nil, err
	}

	override := &models.ScheduleOverride{
		TrainID:      req.TrainID,
		JourneyDate:  date,
		Status:       req.Status,
		DelayMinutes: req.DelayMinutes,
	}
	if err := s.repos.Schedules.Upsert(ctx, override); err != nil {
		return nil, fmt.Errorf("upsert schedule override: %w", err)
	}
	return override, nil
}

// ArchiveTrain hides a train from search and booking while keeping its history.
func (s *trainService) ArchiveTrain(ctx context.Context, id uint) (*models.Train, error) {
	var result *models.Train

	err := s.repos.Trains.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		train, err := s.lockTrain(ctx, tx, id)
		if err != nil {
			return err
		}
		train.Archived = true
		if err := s.repos.Trains.Save(ctx, tx, train); err != nil {
			return err
		}
		result = train
		return nil
	})

	return result, err
}

// DeleteTrain removes a train that was never booked.
func (s *trainService) DeleteTrain(ctx context.Context, id uint) error {
	return s.repos.Trains.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.lockTrain(ctx, tx, id); err != nil {
			return err
		}
		count, err := s.repos.Bookings.CountByTrain(ctx, tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrTrainHasBookings
		}
		if err := s.repos.Routes.ReplaceForTrain(ctx, tx, id, nil); err != nil {
			return err
		}
		return s.repos.Trains.Delete(ctx, tx, id)
	})
}

func (s *trainService) lockTrain(ctx context.Context, tx *gorm.DB, id uint) (*models.Train, error) {
	train, err := s.repos.Trains.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainNotFound
		}
		return nil, err
	}
	return train, nil
}
