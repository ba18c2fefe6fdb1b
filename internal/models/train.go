package models

import (
	"time"

	"github.com/lib/pq"
)

type Train struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Number         string         `gorm:"size:10;uniqueIndex;not null" json:"number"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	TotalSeats     int            `gorm:"not null;default:100" json:"total_seats"`
	AvailableSeats int            `gorm:"not null;default:100;check:chk_trains_available_seats,available_seats >= 0 AND available_seats <= total_seats" json:"available_seats"`
	Coaches        int            `gorm:"not null;default:10" json:"coaches"`
	Classes        pq.StringArray `gorm:"type:text[]" json:"classes"`
	OffDays        pq.StringArray `gorm:"type:text[]" json:"off_days"`
	Suspended      bool           `gorm:"not null;default:false" json:"suspended"`
	Archived       bool           `gorm:"not null;default:false;index" json:"archived"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	Stops []RouteStop `gorm:"foreignKey:TrainID;constraint:OnDelete:CASCADE" json:"stops,omitempty"`
}

// RouteStop is one call of a train at a station. Sequence is 1-based and
// DistanceKm is cumulative from the train's first stop.
type RouteStop struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	TrainID       uint    `gorm:"not null;uniqueIndex:idx_route_train_seq;uniqueIndex:idx_route_train_station" json:"train_id"`
	Sequence      int     `gorm:"not null;uniqueIndex:idx_route_train_seq" json:"sequence"`
	StationCode   string  `gorm:"size:10;not null;uniqueIndex:idx_route_train_station;index" json:"station_code"`
	DistanceKm    float64 `gorm:"type:numeric(8,2);not null;default:0" json:"distance_km"`
	DepartureTime string  `gorm:"size:5;not null" json:"departure_time"`
	ArrivalTime   *string `gorm:"size:5" json:"arrival_time,omitempty"`
	DayOffset     int     `gorm:"not null;default:0" json:"day_offset"`

	Station *Station `gorm:"foreignKey:StationCode;references:Code;constraint:OnDelete:RESTRICT" json:"station,omitempty"`
}
