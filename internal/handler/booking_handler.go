package handler

import (
	"net/http"
	"strings"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/dto"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// RegisterRoutes expects g to already carry the auth middleware.
func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.ConfirmBooking)
	g.GET("", h.ListBookings)
	g.GET("/:pnr", h.GetBooking)
	g.POST("/:pnr/pay", h.PayBooking)
	g.GET("/:pnr/ticket", h.GetTicket)
	g.POST("/:pnr/cancel", h.CancelBooking)
}

func (h *BookingHandler) ConfirmBooking(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.ConfirmBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.svc.Confirm(c.Request().Context(), service.ConfirmRequest{
		UserID:          id.UserID,
		TrainID:         req.TrainID,
		OriginCode:      req.Origin,
		DestinationCode: req.Destination,
		JourneyDate:     req.JourneyDate,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) PayBooking(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.PayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Method = strings.ToLower(strings.TrimSpace(req.Method))
	if err := c.Validate(&req); err != nil {
		return err
	}

	booking, err := h.svc.Pay(c.Request().Context(), service.PayRequest{
		UserID: id.UserID,
		PNR:    c.Param("pnr"),
		Method: req.Method,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), id.UserID, c.Param("pnr"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), id.UserID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *BookingHandler) GetTicket(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.Ticket(c.Request().Context(), id.UserID, c.Param("pnr"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToTicketResponse(booking))
}

// CancelBooking is reserved; cancellation and refunds are not offered yet.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	return echo.NewHTTPError(http.StatusNotImplemented, "booking cancellation is not available")
}
