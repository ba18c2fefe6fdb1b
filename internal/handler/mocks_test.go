package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/middleware"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/service"
	"github.com/labstack/echo/v4"
)

// --- Mock BookingService ---

type mockBookingService struct {
	confirmFn func(ctx context.Context, req service.ConfirmRequest) (*models.Booking, error)
	payFn     func(ctx context.Context, req service.PayRequest) (*models.Booking, error)
	getFn     func(ctx context.Context, userID, pnr string) (*models.Booking, error)
	listFn    func(ctx context.Context, userID string) ([]models.Booking, error)
	ticketFn  func(ctx context.Context, userID, pnr string) (*models.Booking, error)
}

func (m *mockBookingService) Confirm(ctx context.Context, req service.ConfirmRequest) (*models.Booking, error) {
	return m.confirmFn(ctx, req)
}
func (m *mockBookingService) Pay(ctx context.Context, req service.PayRequest) (*models.Booking, error) {
	return m.payFn(ctx, req)
}
func (m *mockBookingService) GetBooking(ctx context.Context, userID, pnr string) (*models.Booking, error) {
	return m.getFn(ctx, userID, pnr)
}
func (m *mockBookingService) ListBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return m.listFn(ctx, userID)
}
func (m *mockBookingService) Ticket(ctx context.Context, userID, pnr string) (*models.Booking, error) {
	return m.ticketFn(ctx, userID, pnr)
}

// --- Mock SearchService ---

type mockSearchService struct {
	stationsFn func(ctx context.Context) ([]models.Station, error)
	trainFn    func(ctx context.Context, id uint) (*models.Train, error)
	searchFn   func(ctx context.Context, req service.SearchRequest) (*service.SearchResult, error)
	deepFn     func(ctx context.Context, sessionID string) (*service.DeepSearchResult, error)
}

func (m *mockSearchService) Stations(ctx context.Context) ([]models.Station, error) {
	return m.stationsFn(ctx)
}
func (m *mockSearchService) TrainDetail(ctx context.Context, id uint) (*models.Train, error) {
	return m.trainFn(ctx, id)
}
func (m *mockSearchService) Search(ctx context.Context, req service.SearchRequest) (*service.SearchResult, error) {
	return m.searchFn(ctx, req)
}
func (m *mockSearchService) DeepSearch(ctx context.Context, sessionID string) (*service.DeepSearchResult, error) {
	return m.deepFn(ctx, sessionID)
}

// --- Mock TrainService ---

type mockTrainService struct {
	createStationFn func(ctx context.Context, station *models.Station) error
	createTrainFn   func(ctx context.Context, train *models.Train) error
	updateFn        func(ctx context.Context, id uint, update service.TrainUpdate) (*models.Train, error)
	listFn          func(ctx context.Context, includeArchived bool) ([]models.Train, error)
	routeFn         func(ctx context.Context, trainID uint, stops []models.RouteStop) (*models.Train, error)
	overrideFn      func(ctx context.Context, req service.OverrideRequest) (*models.ScheduleOverride, error)
	archiveFn       func(ctx context.Context, id uint) (*models.Train, error)
	deleteFn        func(ctx context.Context, id uint) error
}

func (m *mockTrainService) CreateStation(ctx context.Context, station *models.Station) error {
	return m.createStationFn(ctx, station)
}
func (m *mockTrainService) CreateTrain(ctx context.Context, train *models.Train) error {
	return m.createTrainFn(ctx, train)
}
func (m *mockTrainService) UpdateTrain(ctx context.Context, id uint, update service.TrainUpdate) (*models.Train, error) {
	return m.updateFn(ctx, id, update)
}
func (m *mockTrainService) ListTrains(ctx context.Context, includeArchived bool) ([]models.Train, error) {
	return m.listFn(ctx, includeArchived)
}
func (m *mockTrainService) ReplaceRoute(ctx context.Context, trainID uint, stops []models.RouteStop) (*models.Train, error) {
	return m.routeFn(ctx, trainID, stops)
}
func (m *mockTrainService) SetOverride(ctx context.Context, req service.OverrideRequest) (*models.ScheduleOverride, error) {
	return m.overrideFn(ctx, req)
}
func (m *mockTrainService) ArchiveTrain(ctx context.Context, id uint) (*models.Train, error) {
	return m.archiveFn(ctx, id)
}
func (m *mockTrainService) DeleteTrain(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// --- Helpers ---

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = middleware.NewValidator()
	return e
}

// newContext builds a request context, JSON-typed when body is non-nil, with
// the caller's identity set when userID is non-empty.
func newContext(e *echo.Echo, method, target string, body io.Reader, userID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		middleware.WithIdentity(c, middleware.Identity{UserID: userID, Role: middleware.RoleUser})
	}
	return c, rec
}

func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}
