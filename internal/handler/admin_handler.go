package handler

import (
	"net/http"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/dto"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/service"
	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	svc service.TrainService
}

func NewAdminHandler(svc service.TrainService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// RegisterRoutes expects g to already require the admin role.
func (h *AdminHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/stations", h.CreateStation)

	g.GET("/trains", h.ListTrains)
	g.POST("/trains", h.CreateTrain)
	g.PUT("/trains/:id", h.UpdateTrain)
	g.PUT("/trains/:id/route", h.ReplaceRoute)
	g.PUT("/trains/:id/schedule", h.SetScheduleOverride)
	g.POST("/trains/:id/archive", h.ArchiveTrain)
	g.DELETE("/trains/:id", h.DeleteTrain)
}

func (h *AdminHandler) CreateStation(c echo.Context) error {
	var req dto.CreateStationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	station := &models.Station{Code: req.Code, Name: req.Name, City: req.City}
	if err := h.svc.CreateStation(c.Request().Context(), station); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToStationResponse(*station))
}

func (h *AdminHandler) ListTrains(c echo.Context) error {
	includeArchived := c.QueryParam("include_archived") == "true"

	trains, err := h.svc.ListTrains(c.Request().Context(), includeArchived)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToTrainResponses(trains))
}

func (h *AdminHandler) CreateTrain(c echo.Context) error {
	var req dto.CreateTrainRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	train := &models.Train{
		Number:     req.Number,
		Name:       req.Name,
		TotalSeats: req.TotalSeats,
		Coaches:    req.Coaches,
		Classes:    req.Classes,
		OffDays:    req.OffDays,
	}
	if err := h.svc.CreateTrain(c.Request().Context(), train); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToTrainResponse(train))
}

func (h *AdminHandler) UpdateTrain(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateTrainRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	train, err := h.svc.UpdateTrain(c.Request().Context(), id, service.TrainUpdate{
		Name:       req.Name,
		TotalSeats: req.TotalSeats,
		Coaches:    req.Coaches,
		Classes:    req.Classes,
		OffDays:    req.OffDays,
		Suspended:  req.Suspended,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToTrainResponse(train))
}

func (h *AdminHandler) ReplaceRoute(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.ReplaceRouteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	stops := make([]models.RouteStop, len(req.Stops))
	for i, s := range req.Stops {
		stops[i] = models.RouteStop{
			Sequence:      s.Sequence,
			StationCode:   s.StationCode,
			DistanceKm:    s.DistanceKm,
			DepartureTime: s.DepartureTime,
			ArrivalTime:   s.ArrivalTime,
			DayOffset:     s.DayOffset,
		}
	}

	train, err := h.svc.ReplaceRoute(c.Request().Context(), id, stops)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToTrainResponse(train))
}

func (h *AdminHandler) SetScheduleOverride(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.ScheduleOverrideRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	override, err := h.svc.SetOverride(c.Request().Context(), service.OverrideRequest{
		TrainID:      id,
		JourneyDate:  req.JourneyDate,
		Status:       models.ScheduleStatus(req.Status),
		DelayMinutes: req.DelayMinutes,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToScheduleOverrideResponse(override))
}

func (h *AdminHandler) ArchiveTrain(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	train, err := h.svc.ArchiveTrain(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToTrainResponse(train))
}

func (h *AdminHandler) DeleteTrain(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteTrain(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
