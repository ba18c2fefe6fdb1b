package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/fare"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/middleware"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/service"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service errors to status codes. Anything unrecognised is
// a 500 and its text stays in the logs.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidStation),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrRouteDirection),
		errors.Is(err, service.ErrInvalidRoute),
		errors.Is(err, service.ErrStopNotFound),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidTrain),
		errors.Is(err, fare.ErrInvalidDistance):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTrainNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoSeatsAvailable),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrDuplicate),
		errors.Is(err, service.ErrTrainHasBookings):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotOperating),
		errors.Is(err, service.ErrPaymentRequired):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(req)
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

func identity(c echo.Context) (middleware.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok || id.UserID == "" {
		return middleware.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}
