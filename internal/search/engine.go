// Package search finds direct trains between two stations and runs the
// bounded deep search that relaxes the destination to a neighbouring stop.
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/calendar"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/fare"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/network"
)

type Query struct {
	Origin      string
	Destination string
	Date        time.Time
	// Class optionally restricts results to trains offering that class.
	Class string
}

type Candidate struct {
	Train        models.Train
	Origin       models.RouteStop
	Destination  models.RouteStop
	Fare         fare.Breakdown
	Status       models.ScheduleStatus
	DelayMinutes int
}

type Engine struct {
	net *network.Network
	cal *calendar.Calendar
}

func NewEngine(net *network.Network, cal *calendar.Calendar) *Engine {
	return &Engine{net: net, cal: cal}
}

// Direct returns every operating, non-archived train that calls at origin
// before destination, ordered by departure from origin and then train number.
// No match yields an empty slice.
func (e *Engine) Direct(q Query) []Candidate {
	out := []Candidate{}
	for _, train := range e.net.Trains() {
		if train.Archived || !offersClass(train, q.Class) {
			continue
		}
		from, ok := e.net.FindStop(train.ID, q.Origin)
		if !ok {
			continue
		}
		to, ok := e.net.FindStop(train.ID, q.Destination)
		if !ok || from.Sequence >= to.Sequence {
			continue
		}
		if !e.cal.IsOperating(train, q.Date) {
			continue
		}
		dist, err := e.net.DistanceBetween(from, to)
		if err != nil {
			continue
		}
		breakdown, err := fare.Compute(dist, 1)
		if err != nil {
			continue
		}
		status, delay := e.cal.Status(train.ID, q.Date)
		out = append(out, Candidate{
			Train:        train,
			Origin:       from,
			Destination:  to,
			Fare:         breakdown,
			Status:       status,
			DelayMinutes: delay,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Origin.DayOffset != b.Origin.DayOffset {
			return a.Origin.DayOffset < b.Origin.DayOffset
		}
		if a.Origin.DepartureTime != b.Origin.DepartureTime {
			return a.Origin.DepartureTime < b.Origin.DepartureTime
		}
		return a.Train.Number < b.Train.Number
	})
	return out
}

func offersClass(train models.Train, class string) bool {
	if class == "" {
		return true
	}
	for _, c := range train.Classes {
		if strings.EqualFold(c, class) {
			return true
		}
	}
	return false
}
