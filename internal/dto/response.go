package dto

import (
	"time"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/calendar"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/fare"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/search"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/service"
)

type StationResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}

type RouteStopResponse struct {
	Sequence      int             `json:"sequence"`
	Station       StationResponse `json:"station"`
	DistanceKm    float64         `json:"distance_km"`
	ArrivalTime   *string         `json:"arrival_time,omitempty"`
	DepartureTime string          `json:"departure_time"`
	DayOffset     int             `json:"day_offset"`
}

type TrainResponse struct {
	ID             uint                `json:"id"`
	Number         string              `json:"number"`
	Name           string              `json:"name"`
	TotalSeats     int                 `json:"total_seats"`
	AvailableSeats int                 `json:"available_seats"`
	Coaches        int                 `json:"coaches"`
	Classes        []string            `json:"classes"`
	OffDays        []string            `json:"off_days"`
	Suspended      bool                `json:"suspended"`
	Archived       bool                `json:"archived"`
	Stops          []RouteStopResponse `json:"stops,omitempty"`
}

type CandidateResponse struct {
	TrainID        uint                  `json:"train_id"`
	TrainNumber    string                `json:"train_number"`
	TrainName      string                `json:"train_name"`
	Departure      string                `json:"departure_time"`
	Arrival        string                `json:"arrival_time"`
	DayOffset      int                   `json:"day_offset"`
	AvailableSeats int                   `json:"available_seats"`
	Classes        []string              `json:"classes"`
	Status         models.ScheduleStatus `json:"status"`
	DelayMinutes   int                   `json:"delay_minutes,omitempty"`
	Fare           fare.Breakdown        `json:"fare"`
}

type SearchResponse struct {
	SessionID           string              `json:"session_id"`
	Origin              StationResponse     `json:"origin"`
	Destination         StationResponse     `json:"destination"`
	JourneyDate         string              `json:"journey_date"`
	Trains              []CandidateResponse `json:"trains"`
	DeepSearchAvailable bool                `json:"deep_search_available"`
}

type DeepSearchResponse struct {
	SessionID           string              `json:"session_id"`
	Outcome             search.Outcome      `json:"outcome"`
	Origin              StationResponse     `json:"origin"`
	Destination         StationResponse     `json:"destination"`
	RelaxedDestination  *StationResponse    `json:"relaxed_destination,omitempty"`
	JourneyDate         string              `json:"journey_date"`
	Trains              []CandidateResponse `json:"trains"`
	DeepSearchAvailable bool                `json:"deep_search_available"`
}

type BookingResponse struct {
	PNR               string                `json:"pnr"`
	TrainID           uint                  `json:"train_id"`
	TrainNumber       string                `json:"train_number,omitempty"`
	TrainName         string                `json:"train_name,omitempty"`
	Origin            string                `json:"origin"`
	Destination       string                `json:"destination"`
	JourneyDate       string                `json:"journey_date"`
	DistanceKm        float64               `json:"distance_km"`
	BaseFare          float64               `json:"base_fare"`
	ReservationCharge float64               `json:"reservation_charge"`
	Tax               float64               `json:"tax"`
	TotalFare         float64               `json:"total_fare"`
	PaymentStatus     models.PaymentStatus  `json:"payment_status"`
	PaymentMethod     *models.PaymentMethod `json:"payment_method,omitempty"`
	TransactionID     *string               `json:"transaction_id,omitempty"`
	PaymentDate       *time.Time            `json:"payment_date,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
}

type TicketResponse struct {
	PNR           string               `json:"pnr"`
	TransactionID string               `json:"transaction_id"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	PaymentDate   time.Time            `json:"payment_date"`
	TrainNumber   string               `json:"train_number"`
	TrainName     string               `json:"train_name"`
	Origin        StationResponse      `json:"origin"`
	Destination   StationResponse      `json:"destination"`
	JourneyDate   string               `json:"journey_date"`
	DistanceKm    float64              `json:"distance_km"`
	TotalFare     float64              `json:"total_fare"`
}

type ScheduleOverrideResponse struct {
	TrainID      uint                  `json:"train_id"`
	JourneyDate  string                `json:"journey_date"`
	Status       models.ScheduleStatus `json:"status"`
	DelayMinutes int                   `json:"delay_minutes"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToStationResponse(s models.Station) StationResponse {
	return StationResponse{Code: s.Code, Name: s.Name, City: s.City}
}

func ToStationResponses(stations []models.Station) []StationResponse {
	resp := make([]StationResponse, len(stations))
	for i, s := range stations {
		resp[i] = ToStationResponse(s)
	}
	return resp
}

func ToTrainResponse(t *models.Train) TrainResponse {
	resp := TrainResponse{
		ID:             t.ID,
		Number:         t.Number,
		Name:           t.Name,
		TotalSeats:     t.TotalSeats,
		AvailableSeats: t.AvailableSeats,
		Coaches:        t.Coaches,
		Classes:        nonNil(t.Classes),
		OffDays:        nonNil(t.OffDays),
		Suspended:      t.Suspended,
		Archived:       t.Archived,
	}
	for _, st := range t.Stops {
		stop := RouteStopResponse{
			Sequence:      st.Sequence,
			Station:       StationResponse{Code: st.StationCode},
			DistanceKm:    st.DistanceKm,
			ArrivalTime:   st.ArrivalTime,
			DepartureTime: st.DepartureTime,
			DayOffset:     st.DayOffset,
		}
		if st.Station != nil {
			stop.Station = ToStationResponse(*st.Station)
		}
		resp.Stops = append(resp.Stops, stop)
	}
	return resp
}

func ToTrainResponses(trains []models.Train) []TrainResponse {
	resp := make([]TrainResponse, len(trains))
	for i := range trains {
		resp[i] = ToTrainResponse(&trains[i])
	}
	return resp
}

func ToCandidateResponses(candidates []search.Candidate) []CandidateResponse {
	resp := make([]CandidateResponse, len(candidates))
	for i, c := range candidates {
		arrival := c.Destination.DepartureTime
		if c.Destination.ArrivalTime != nil {
			arrival = *c.Destination.ArrivalTime
		}
		resp[i] = CandidateResponse{
			TrainID:        c.Train.ID,
			TrainNumber:    c.Train.Number,
			TrainName:      c.Train.Name,
			Departure:      c.Origin.DepartureTime,
			Arrival:        arrival,
			DayOffset:      c.Origin.DayOffset,
			AvailableSeats: c.Train.AvailableSeats,
			Classes:        nonNil(c.Train.Classes),
			Status:         c.Status,
			DelayMinutes:   c.DelayMinutes,
			Fare:           c.Fare,
		}
	}
	return resp
}

func ToSearchResponse(r *service.SearchResult) SearchResponse {
	return SearchResponse{
		SessionID:           r.SessionID,
		Origin:              ToStationResponse(r.Origin),
		Destination:         ToStationResponse(r.Destination),
		JourneyDate:         r.JourneyDate.Format(calendar.DateLayout),
		Trains:              ToCandidateResponses(r.Candidates),
		DeepSearchAvailable: r.DeepSearchAvailable,
	}
}

func ToDeepSearchResponse(r *service.DeepSearchResult) DeepSearchResponse {
	resp := DeepSearchResponse{
		SessionID:           r.SessionID,
		Outcome:             r.Outcome,
		Origin:              ToStationResponse(r.Origin),
		Destination:         ToStationResponse(r.Destination),
		JourneyDate:         r.JourneyDate.Format(calendar.DateLayout),
		Trains:              ToCandidateResponses(r.Candidates),
		DeepSearchAvailable: r.DeepSearchAvailable,
	}
	if r.RelaxedDestination != nil {
		st := ToStationResponse(*r.RelaxedDestination)
		resp.RelaxedDestination = &st
	}
	return resp
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		PNR:               b.PNR,
		TrainID:           b.TrainID,
		Origin:            b.OriginCode,
		Destination:       b.DestinationCode,
		JourneyDate:       b.JourneyDate.Format(calendar.DateLayout),
		DistanceKm:        b.DistanceKm,
		BaseFare:          b.BaseFare,
		ReservationCharge: b.ReservationCharge,
		Tax:               b.Tax,
		TotalFare:         b.TotalFare,
		PaymentStatus:     b.PaymentStatus,
		PaymentMethod:     b.PaymentMethod,
		TransactionID:     b.TransactionID,
		PaymentDate:       b.PaymentDate,
		CreatedAt:         b.CreatedAt,
	}
	if b.Train != nil {
		resp.TrainNumber = b.Train.Number
		resp.TrainName = b.Train.Name
	}
	return resp
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}

// ToTicketResponse expects a paid booking.
func ToTicketResponse(b *models.Booking) TicketResponse {
	resp := TicketResponse{
		PNR:         b.PNR,
		Origin:      StationResponse{Code: b.OriginCode},
		Destination: StationResponse{Code: b.DestinationCode},
		JourneyDate: b.JourneyDate.Format(calendar.DateLayout),
		DistanceKm:  b.DistanceKm,
		TotalFare:   b.TotalFare,
	}
	if b.TransactionID != nil {
		resp.TransactionID = *b.TransactionID
	}
	if b.PaymentMethod != nil {
		resp.PaymentMethod = *b.PaymentMethod
	}
	if b.PaymentDate != nil {
		resp.PaymentDate = *b.PaymentDate
	}
	if b.Train != nil {
		resp.TrainNumber = b.Train.Number
		resp.TrainName = b.Train.Name
	}
	if b.Origin != nil {
		resp.Origin = ToStationResponse(*b.Origin)
	}
	if b.Destination != nil {
		resp.Destination = ToStationResponse(*b.Destination)
	}
	return resp
}

func ToScheduleOverrideResponse(o *models.ScheduleOverride) ScheduleOverrideResponse {
	return ScheduleOverrideResponse{
		TrainID:      o.TrainID,
		JourneyDate:  o.JourneyDate.Format(calendar.DateLayout),
		Status:       o.Status,
		DelayMinutes: o.DelayMinutes,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
