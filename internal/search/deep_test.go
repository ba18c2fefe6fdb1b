package search

import (
	"testing"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/calendar"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A -> B -> C -> D on the reference train; a second train only runs A -> B.
func deepNetwork(t *testing.T) *network.Network {
	t.Helper()
	net, err := network.New(
		[]models.Train{
			{ID: 1, Number: "T1"},
			{ID: 2, Number: "T2"},
		},
		[]models.RouteStop{
			{TrainID: 1, Sequence: 1, StationCode: "A", DistanceKm: 0, DepartureTime: "08:00"},
			{TrainID: 1, Sequence: 2, StationCode: "B", DistanceKm: 100, DepartureTime: "09:00"},
			{TrainID: 1, Sequence: 3, StationCode: "C", DistanceKm: 250, DepartureTime: "11:00"},
			{TrainID: 1, Sequence: 4, StationCode: "D", DistanceKm: 300, DepartureTime: "12:00"},
			{TrainID: 2, Sequence: 1, StationCode: "A", DistanceKm: 0, DepartureTime: "10:00"},
			{TrainID: 2, Sequence: 2, StationCode: "B", DistanceKm: 90, DepartureTime: "11:30"},
		},
		testStations,
	)
	require.NoError(t, err)
	return net
}

func TestDeep_StateMachine(t *testing.T) {
	e := NewEngine(deepNetwork(t), calendar.New(nil))
	s := Session{ID: "s1", Origin: "A", Destination: "C", Date: journey}
	require.True(t, s.CanDeepen())

	// first step: one stop past the original destination
	s, res := e.Deep(s)
	assert.Equal(t, OutcomeRelaxed, res.Outcome)
	require.NotNil(t, res.RelaxedDestination)
	assert.Equal(t, "D", res.RelaxedDestination.Code)
	assert.Equal(t, "Station D", res.RelaxedDestination.Name)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, 300.0, res.Candidates[0].Fare.DistanceKm)
	assert.Equal(t, 1, s.Relaxations)
	assert.Equal(t, "C", s.Destination)

	// second step: one stop before the original destination, not before D
	s, res = e.Deep(s)
	assert.Equal(t, OutcomeRelaxed, res.Outcome)
	require.NotNil(t, res.RelaxedDestination)
	assert.Equal(t, "B", res.RelaxedDestination.Code)
	assert.Len(t, res.Candidates, 2)
	assert.Equal(t, 2, s.Relaxations)
	assert.False(t, s.CanDeepen())

	// third step: terminal
	s, res = e.Deep(s)
	assert.Equal(t, OutcomeLimitReached, res.Outcome)
	assert.Nil(t, res.RelaxedDestination)
	assert.Empty(t, res.Candidates)
	assert.True(t, s.Exhausted)
}

func TestDeep_NoNextStation(t *testing.T) {
	e := NewEngine(deepNetwork(t), calendar.New(nil))

	s, res := e.Deep(Session{Origin: "A", Destination: "D", Date: journey})

	assert.Equal(t, OutcomeNoNextStation, res.Outcome)
	assert.Nil(t, res.RelaxedDestination)
	assert.True(t, s.Exhausted)
	assert.Zero(t, s.Relaxations)

	_, res = e.Deep(s)
	assert.Equal(t, OutcomeLimitReached, res.Outcome)
}

func TestDeep_NoPreviousStation(t *testing.T) {
	net, err := network.New(
		[]models.Train{{ID: 1, Number: "T1"}},
		[]models.RouteStop{
			{TrainID: 1, Sequence: 1, StationCode: "B", DistanceKm: 0, DepartureTime: "08:00"},
			{TrainID: 1, Sequence: 2, StationCode: "C", DistanceKm: 40, DepartureTime: "09:00"},
		},
		testStations,
	)
	require.NoError(t, err)
	e := NewEngine(net, calendar.New(nil))

	s, res := e.Deep(Session{Origin: "A", Destination: "B", Date: journey})
	assert.Equal(t, OutcomeRelaxed, res.Outcome)
	assert.Equal(t, "C", res.RelaxedDestination.Code)
	assert.Empty(t, res.Candidates)

	s, res = e.Deep(s)
	assert.Equal(t, OutcomeNoPreviousStation, res.Outcome)
	assert.True(t, s.Exhausted)
	assert.Equal(t, 1, s.Relaxations)
}

func TestDeep_NoRouteInfo(t *testing.T) {
	e := NewEngine(deepNetwork(t), calendar.New(nil))

	s, res := e.Deep(Session{Origin: "A", Destination: "E", Date: journey})

	assert.Equal(t, OutcomeNoRouteInfo, res.Outcome)
	assert.True(t, s.Exhausted)
}

func TestDeep_SessionsAreIndependent(t *testing.T) {
	e := NewEngine(deepNetwork(t), calendar.New(nil))
	first := Session{ID: "u1", Origin: "A", Destination: "C", Date: journey}
	second := Session{ID: "u2", Origin: "A", Destination: "C", Date: journey}

	first, _ = e.Deep(first)
	first, _ = e.Deep(first)

	_, res := e.Deep(second)
	assert.Equal(t, OutcomeRelaxed, res.Outcome)
	assert.Equal(t, "D", res.RelaxedDestination.Code)
	assert.False(t, first.CanDeepen())
}
