package dto

type SearchRequest struct {
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	JourneyDate string `json:"journey_date" validate:"required"`
	Class       string `json:"class"`
}

type ConfirmBookingRequest struct {
	TrainID     uint   `json:"train_id" validate:"required"`
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	JourneyDate string `json:"journey_date" validate:"required"`
}

type PayRequest struct {
	Method string `json:"method" validate:"required,oneof=bkash nagad card cash"`
}

type CreateStationRequest struct {
	Code string `json:"code" validate:"required,max=10"`
	Name string `json:"name" validate:"required"`
	City string `json:"city"`
}

type CreateTrainRequest struct {
	Number     string   `json:"number" validate:"required"`
	Name       string   `json:"name" validate:"required"`
	TotalSeats int      `json:"total_seats" validate:"required,gt=0"`
	Coaches    int      `json:"coaches" validate:"gte=0"`
	Classes    []string `json:"classes"`
	OffDays    []string `json:"off_days"`
}

// UpdateTrainRequest leaves fields that are absent from the body untouched.
type UpdateTrainRequest struct {
	Name       *string  `json:"name"`
	TotalSeats *int     `json:"total_seats"`
	Coaches    *int     `json:"coaches" validate:"omitempty,gte=0"`
	Classes    []string `json:"classes"`
	OffDays    []string `json:"off_days"`
	Suspended  *bool    `json:"suspended"`
}

type RouteStopRequest struct {
	Sequence      int     `json:"sequence" validate:"required,gt=0"`
	StationCode   string  `json:"station_code" validate:"required"`
	DistanceKm    float64 `json:"distance_km" validate:"gte=0"`
	DepartureTime string  `json:"departure_time" validate:"required"`
	ArrivalTime   *string `json:"arrival_time"`
	DayOffset     int     `json:"day_offset" validate:"gte=0"`
}

type ReplaceRouteRequest struct {
	Stops []RouteStopRequest `json:"stops" validate:"required,min=2,dive"`
}

type ScheduleOverrideRequest struct {
	JourneyDate  string `json:"journey_date" validate:"required"`
	Status       string `json:"status" validate:"required,oneof=running cancelled delayed"`
	DelayMinutes int    `json:"delay_minutes" validate:"gte=0"`
}
