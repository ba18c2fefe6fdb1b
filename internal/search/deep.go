package search

import (
	"time"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
)

// MaxRelaxations bounds how many times deep search moves the destination.
const MaxRelaxations = 2

type Outcome string

const (
	OutcomeRelaxed           Outcome = "relaxed"
	OutcomeNoNextStation     Outcome = "no_next_station"
	OutcomeNoPreviousStation Outcome = "no_previous_station"
	OutcomeLimitReached      Outcome = "limit_reached"
	OutcomeNoRouteInfo       Outcome = "no_route_info"
)

// Session is the state of one traveller's search. Relaxations counts
// completed deep search steps; Exhausted is set once no further step is possible.
type Session struct {
	ID          string
	Origin      string
	Destination string
	Date        time.Time
	Class       string
	Relaxations int
	Exhausted   bool
}

// CanDeepen reports whether another deep search step may relax the destination.
func (s Session) CanDeepen() bool {
	return !s.Exhausted && s.Relaxations < MaxRelaxations
}

type DeepResult struct {
	Outcome            Outcome
	RelaxedDestination *models.Station
	Candidates         []Candidate
}

// Deep runs one step of the deep search state machine and returns the
// advanced session. The first step moves the destination one stop further
// along the reference train, the second one stop back, both measured from
// the original destination. The reference train is the lowest-id active train
// calling at the original destination.
func (e *Engine) Deep(s Session) (Session, DeepResult) {
	if !s.CanDeepen() {
		s.Exhausted = true
		return s, DeepResult{Outcome: OutcomeLimitReached, Candidates: []Candidate{}}
	}

	var ref *models.RouteStop
	for _, call := range e.net.TrainsServing(s.Destination) {
		if !call.Train.Archived {
			stop := call.Stop
			ref = &stop
			break
		}
	}
	if ref == nil {
		s.Exhausted = true
		return s, DeepResult{Outcome: OutcomeNoRouteInfo, Candidates: []Candidate{}}
	}

	offset, missing := 1, OutcomeNoNextStation
	if s.Relaxations == 1 {
		offset, missing = -1, OutcomeNoPreviousStation
	}
	next, ok := e.net.StopAt(ref.TrainID, ref.Sequence+offset)
	if !ok {
		s.Exhausted = true
		return s, DeepResult{Outcome: missing, Candidates: []Candidate{}}
	}

	s.Relaxations++
	relaxed, ok := e.net.Station(next.StationCode)
	if !ok {
		relaxed = models.Station{Code: next.StationCode}
	}
	candidates := e.Direct(Query{
		Origin:      s.Origin,
		Destination: next.StationCode,
		Date:        s.Date,
		Class:       s.Class,
	})
	return s, DeepResult{
		Outcome:            OutcomeRelaxed,
		RelaxedDestination: &relaxed,
		Candidates:         candidates,
	}
}
