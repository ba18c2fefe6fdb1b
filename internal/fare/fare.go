package fare

import (
	"errors"
	"math"
)

const (
	PerKm             = 2.0
	ReservationCharge = 50.0
	TaxRate           = 0.05
)

var (
	ErrInvalidDistance   = errors.New("distance must be positive")
	ErrInvalidPassengers = errors.New("passenger count must be at least 1")
)

type Breakdown struct {
	DistanceKm        float64 `json:"distance_km"`
	Passengers        int     `json:"passengers"`
	Base              float64 `json:"base_fare"`
	ReservationCharge float64 `json:"reservation_charge"`
	Tax               float64 `json:"tax"`
	Total             float64 `json:"total_fare"`
}

// Compute prices a journey. The reservation charge is per booking, not per passenger.
func Compute(distanceKm float64, passengers int) (Breakdown, error) {
	if distanceKm <= 0 || math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return Breakdown{}, ErrInvalidDistance
	}
	if passengers < 1 {
		return Breakdown{}, ErrInvalidPassengers
	}

	base := round2(distanceKm * PerKm * float64(passengers))
	tax := round2((base + ReservationCharge) * TaxRate)

	return Breakdown{
		DistanceKm:        distanceKm,
		Passengers:        passengers,
		Base:              base,
		ReservationCharge: ReservationCharge,
		Tax:               tax,
		Total:             round2(base + ReservationCharge + tax),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
