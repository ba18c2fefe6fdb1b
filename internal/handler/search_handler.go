package handler

import (
	"net/http"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/dto"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/service"
	"github.com/labstack/echo/v4"
)

type SearchHandler struct {
	svc service.SearchService
}

func NewSearchHandler(svc service.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// RegisterRoutes mounts the public routes. limiter guards the search endpoints.
func (h *SearchHandler) RegisterRoutes(g *echo.Group, limiter echo.MiddlewareFunc) {
	g.GET("/stations", h.ListStations)
	g.GET("/trains/:id", h.GetTrain)

	g.POST("/search", h.Search, limiter)
	g.POST("/search/:session/deep", h.DeepSearch, limiter)
}

func (h *SearchHandler) ListStations(c echo.Context) error {
	stations, err := h.svc.Stations(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToStationResponses(stations))
}

func (h *SearchHandler) GetTrain(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	train, err := h.svc.TrainDetail(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToTrainResponse(train))
}

func (h *SearchHandler) Search(c echo.Context) error {
	var req dto.SearchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.svc.Search(c.Request().Context(), service.SearchRequest{
		Origin:      req.Origin,
		Destination: req.Destination,
		JourneyDate: req.JourneyDate,
		Class:       req.Class,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToSearchResponse(result))
}

func (h *SearchHandler) DeepSearch(c echo.Context) error {
	sessionID := c.Param("session")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session id is required")
	}

	result, err := h.svc.DeepSearch(c.Request().Context(), sessionID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToDeepSearchResponse(result))
}
