// Package network holds an immutable snapshot of trains, stations and the
// ordered stops each train calls at.
package network

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
)

var (
	ErrRouteDirection = errors.New("origin must come before destination on the train's route")
	ErrInvalidRoute   = errors.New("invalid route")
)

// Call is a train stopping at a station.
type Call struct {
	Train models.Train
	Stop  models.RouteStop
}

type Network struct {
	stations  map[string]models.Station
	trains    map[uint]models.Train
	trainIDs  []uint
	stops     map[uint][]models.RouteStop
	byStation map[string][]Call
}

// New builds a snapshot and checks every train's stop list. A nil station list
// skips the station reference check.
func New(trains []models.Train, stops []models.RouteStop, stations []models.Station) (*Network, error) {
	n := &Network{
		stations:  make(map[string]models.Station, len(stations)),
		trains:    make(map[uint]models.Train, len(trains)),
		stops:     make(map[uint][]models.RouteStop),
		byStation: make(map[string][]Call),
	}
	for _, s := range stations {
		n.stations[s.Code] = s
	}
	for _, t := range trains {
		t.Stops = nil
		n.trains[t.ID] = t
		n.trainIDs = append(n.trainIDs, t.ID)
	}
	sort.Slice(n.trainIDs, func(i, j int) bool { return n.trainIDs[i] < n.trainIDs[j] })

	for _, s := range stops {
		if _, ok := n.trains[s.TrainID]; !ok {
			return nil, fmt.Errorf("%w: stop %d references unknown train %d", ErrInvalidRoute, s.ID, s.TrainID)
		}
		if stations != nil {
			if _, ok := n.stations[s.StationCode]; !ok {
				return nil, fmt.Errorf("%w: stop %d references unknown station %s", ErrInvalidRoute, s.ID, s.StationCode)
			}
		}
		s.Station = nil
		n.stops[s.TrainID] = append(n.stops[s.TrainID], s)
	}

	for _, id := range n.trainIDs {
		list := n.stops[id]
		sort.Slice(list, func(i, j int) bool { return list[i].Sequence < list[j].Sequence })
		if err := ValidateStops(list); err != nil {
			return nil, fmt.Errorf("train %s: %w", n.trains[id].Number, err)
		}
		for _, s := range list {
			n.byStation[s.StationCode] = append(n.byStation[s.StationCode], Call{Train: n.trains[id], Stop: s})
		}
	}

	return n, nil
}

// ClockTime returns raw as a zero-padded "HH:MM" time of day.
func ClockTime(raw string) (string, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return t.Format("15:04"), true
}

// Departures are compared as strings, so only the padded form is accepted.
func isClockTime(raw string) bool {
	c, ok := ClockTime(raw)
	return ok && c == raw
}

// ValidateStops checks a single train's stop list, which must already be
// ordered by sequence.
func ValidateStops(stops []models.RouteStop) error {
	seen := make(map[string]bool, len(stops))
	for i, s := range stops {
		if s.Sequence < 1 {
			return fmt.Errorf("%w: sequence %d must be positive", ErrInvalidRoute, s.Sequence)
		}
		if s.DistanceKm < 0 {
			return fmt.Errorf("%w: negative distance at sequence %d", ErrInvalidRoute, s.Sequence)
		}
		if seen[s.StationCode] {
			return fmt.Errorf("%w: station %s appears twice", ErrInvalidRoute, s.StationCode)
		}
		seen[s.StationCode] = true
		if !isClockTime(s.DepartureTime) {
			return fmt.Errorf("%w: departure time %q at sequence %d", ErrInvalidRoute, s.DepartureTime, s.Sequence)
		}
		if s.ArrivalTime != nil {
			if !isClockTime(*s.ArrivalTime) {
				return fmt.Errorf("%w: arrival time %q at sequence %d", ErrInvalidRoute, *s.ArrivalTime, s.Sequence)
			}
		}
		if i == 0 {
			continue
		}
		prev := stops[i-1]
		if s.Sequence <= prev.Sequence {
			return fmt.Errorf("%w: sequence %d follows %d", ErrInvalidRoute, s.Sequence, prev.Sequence)
		}
		if s.DistanceKm < prev.DistanceKm {
			return fmt.Errorf("%w: distance decreases at sequence %d", ErrInvalidRoute, s.Sequence)
		}
	}
	return nil
}

// Trains returns every train in id order.
func (n *Network) Trains() []models.Train {
	out := make([]models.Train, 0, len(n.trainIDs))
	for _, id := range n.trainIDs {
		out = append(out, n.trains[id])
	}
	return out
}

func (n *Network) Train(id uint) (models.Train, bool) {
	t, ok := n.trains[id]
	return t, ok
}

func (n *Network) Station(code string) (models.Station, bool) {
	s, ok := n.stations[code]
	return s, ok
}

// StopsFor returns the train's stops ordered by sequence.
func (n *Network) StopsFor(trainID uint) []models.RouteStop {
	list := n.stops[trainID]
	out := make([]models.RouteStop, len(list))
	copy(out, list)
	return out
}

func (n *Network) FindStop(trainID uint, stationCode string) (models.RouteStop, bool) {
	for _, s := range n.stops[trainID] {
		if s.StationCode == stationCode {
			return s, true
		}
	}
	return models.RouteStop{}, false
}

func (n *Network) StopAt(trainID uint, sequence int) (models.RouteStop, bool) {
	for _, s := range n.stops[trainID] {
		if s.Sequence == sequence {
			return s, true
		}
	}
	return models.RouteStop{}, false
}

// DistanceBetween is the distance travelled from origin to dest on one train.
func (n *Network) DistanceBetween(origin, dest models.RouteStop) (float64, error) {
	if origin.TrainID != dest.TrainID {
		return 0, fmt.Errorf("%w: stops belong to different trains", ErrInvalidRoute)
	}
	if dest.Sequence <= origin.Sequence {
		return 0, ErrRouteDirection
	}
	d := dest.DistanceKm - origin.DistanceKm
	if d <= 0 {
		return 0, ErrRouteDirection
	}
	return d, nil
}

// TrainsServing lists every call at the station, ordered by train id.
func (n *Network) TrainsServing(stationCode string) []Call {
	calls := n.byStation[stationCode]
	out := make([]Call, len(calls))
	copy(out, calls)
	return out
}
