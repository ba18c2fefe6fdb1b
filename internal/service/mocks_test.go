package service

import (
	"context"
	"time"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"gorm.io/gorm"
)

// --- Mock TrainRepository ---

type mockTrainRepo struct {
	createFn   func(ctx context.Context, train *models.Train) error
	findByIDFn func(ctx context.Context, id uint) (*models.Train, error)
	findAllFn  func(ctx context.Context, includeArchived bool) ([]models.Train, error)
}

func (m *mockTrainRepo) Create(ctx context.Context, train *models.Train) error {
	return m.createFn(ctx, train)
}
func (m *mockTrainRepo) Save(ctx context.Context, tx *gorm.DB, train *models.Train) error {
	return nil
}
func (m *mockTrainRepo) FindByID(ctx context.Context, id uint) (*models.Train, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockTrainRepo) FindByNumber(ctx context.Context, number string) (*models.Train, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockTrainRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Train, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockTrainRepo) FindAll(ctx context.Context, includeArchived bool) ([]models.Train, error) {
	return m.findAllFn(ctx, includeArchived)
}
func (m *mockTrainRepo) DecrementSeat(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	return false, nil
}
func (m *mockTrainRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return nil
}
func (m *mockTrainRepo) GetDB() *gorm.DB { return nil }

// --- Mock RouteRepository ---

type mockRouteRepo struct {
	findAllFn func(ctx context.Context) ([]models.RouteStop, error)
}

func (m *mockRouteRepo) FindAll(ctx context.Context) ([]models.RouteStop, error) {
	return m.findAllFn(ctx)
}
func (m *mockRouteRepo) FindByTrain(ctx context.Context, tx *gorm.DB, trainID uint) ([]models.RouteStop, error) {
	return nil, nil
}
func (m *mockRouteRepo) ReplaceForTrain(ctx context.Context, tx *gorm.DB, trainID uint, stops []models.RouteStop) error {
	return nil
}

// --- Mock StationRepository ---

type mockStationRepo struct {
	stations map[string]models.Station
	createFn func(ctx context.Context, station *models.Station) error
}

func (m *mockStationRepo) Create(ctx context.Context, station *models.Station) error {
	return m.createFn(ctx, station)
}
func (m *mockStationRepo) FindAll(ctx context.Context) ([]models.Station, error) {
	out := make([]models.Station, 0, len(m.stations))
	for _, s := range m.stations {
		out = append(out, s)
	}
	return out, nil
}
func (m *mockStationRepo) FindByCode(ctx context.Context, code string) (*models.Station, error) {
	s, ok := m.stations[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}
func (m *mockStationRepo) CountByCodes(ctx context.Context, codes []string) (int64, error) {
	var n int64
	for _, c := range codes {
		if _, ok := m.stations[c]; ok {
			n++
		}
	}
	return n, nil
}

// --- Mock ScheduleRepository ---

type mockScheduleRepo struct {
	overrides []models.ScheduleOverride
	upsertFn  func(ctx context.Context, override *models.ScheduleOverride) error
}

func (m *mockScheduleRepo) FindForDate(ctx context.Context, date time.Time) ([]models.ScheduleOverride, error) {
	var out []models.ScheduleOverride
	for _, o := range m.overrides {
		if o.JourneyDate.Equal(date) {
			out = append(out, o)
		}
	}
	return out, nil
}
func (m *mockScheduleRepo) FindForTrainAndDate(ctx context.Context, tx *gorm.DB, trainID uint, date time.Time) ([]models.ScheduleOverride, error) {
	return nil, nil
}
func (m *mockScheduleRepo) Upsert(ctx context.Context, override *models.ScheduleOverride) error {
	return m.upsertFn(ctx, override)
}
func (m *mockScheduleRepo) DeleteBefore(ctx context.Context, date time.Time) (int64, error) {
	return 0, nil
}

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	findByPNRFn func(ctx context.Context, pnr string) (*models.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return nil
}
func (m *mockBookingRepo) FindByPNR(ctx context.Context, pnr string) (*models.Booking, error) {
	return m.findByPNRFn(ctx, pnr)
}
func (m *mockBookingRepo) FindByPNRForUpdate(ctx context.Context, tx *gorm.DB, pnr string) (*models.Booking, error) {
	return m.findByPNRFn(ctx, pnr)
}
func (m *mockBookingRepo) FindByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) CountByTrain(ctx context.Context, tx *gorm.DB, trainID uint) (int64, error) {
	return 0, nil
}
func (m *mockBookingRepo) MarkPaid(ctx context.Context, tx *gorm.DB, pnr string, method models.PaymentMethod, transactionID string, paidAt time.Time) error {
	return nil
}
func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }

// --- Fixed clock ---

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

// Monday 2026-10-19, 09:00 in Dhaka.
var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.FixedZone("BDT", 6*3600))

func testWindow() BookingWindow {
	return BookingWindow{Clock: fixedClock(testNow), Days: 10}
}

// T1 runs A -> B -> C; T2 runs A -> B and is off on Fridays.
func fixtureRepos() Repositories {
	stations := map[string]models.Station{
		"A": {Code: "A", Name: "Station A", City: "Alpha"},
		"B": {Code: "B", Name: "Station B", City: "Beta"},
		"C": {Code: "C", Name: "Station C", City: "Gamma"},
		"D": {Code: "D", Name: "Station D", City: "Delta"},
	}
	trains := []models.Train{
		{ID: 1, Number: "T1", Name: "First", TotalSeats: 1, AvailableSeats: 1},
		{ID: 2, Number: "T2", Name: "Second", TotalSeats: 50, AvailableSeats: 50, OffDays: []string{"Friday"}},
	}
	stops := []models.RouteStop{
		{ID: 1, TrainID: 1, Sequence: 1, StationCode: "A", DistanceKm: 0, DepartureTime: "08:00"},
		{ID: 2, TrainID: 1, Sequence: 2, StationCode: "B", DistanceKm: 100, DepartureTime: "09:00"},
		{ID: 3, TrainID: 1, Sequence: 3, StationCode: "C", DistanceKm: 250, DepartureTime: "11:00"},
		{ID: 4, TrainID: 2, Sequence: 1, StationCode: "A", DistanceKm: 0, DepartureTime: "06:30"},
		{ID: 5, TrainID: 2, Sequence: 2, StationCode: "B", DistanceKm: 90, DepartureTime: "08:00"},
	}

	return Repositories{
		Trains: &mockTrainRepo{
			findAllFn: func(ctx context.Context, includeArchived bool) ([]models.Train, error) {
				return trains, nil
			},
			findByIDFn: func(ctx context.Context, id uint) (*models.Train, error) {
				for _, t := range trains {
					if t.ID == id {
						return &t, nil
					}
				}
				return nil, gorm.ErrRecordNotFound
			},
		},
		Routes: &mockRouteRepo{
			findAllFn: func(ctx context.Context) ([]models.RouteStop, error) {
				out := make([]models.RouteStop, len(stops))
				copy(out, stops)
				return out, nil
			},
		},
		Stations:  &mockStationRepo{stations: stations},
		Schedules: &mockScheduleRepo{},
		Bookings:  &mockBookingRepo{},
	}
}
