package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/calendar"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/network"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/search"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/session"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SearchRequest struct {
	Origin      string
	Destination string
	JourneyDate string
	Class       string
}

type SearchResult struct {
	SessionID           string
	Origin              models.Station
	Destination         models.Station
	JourneyDate         time.Time
	Candidates          []search.Candidate
	DeepSearchAvailable bool
}

type DeepSearchResult struct {
	SessionID           string
	Outcome             search.Outcome
	Origin              models.Station
	Destination         models.Station
	RelaxedDestination  *models.Station
	JourneyDate         time.Time
	Candidates          []search.Candidate
	DeepSearchAvailable bool
}

type SearchService interface {
	Stations(ctx context.Context) ([]models.Station, error)
	TrainDetail(ctx context.Context, id uint) (*models.Train, error)
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
	DeepSearch(ctx context.Context, sessionID string) (*DeepSearchResult, error)
}

type searchService struct {
	repos    Repositories
	window   BookingWindow
	sessions *session.Store
}

func NewSearchService(repos Repositories, window BookingWindow, sessions *session.Store) SearchService {
	if window.Clock == nil {
		window.Clock = SystemClock(nil)
	}
	return &searchService{repos: repos, window: window, sessions: sessions}
}

func (s *searchService) Stations(ctx context.Context) ([]models.Station, error) {
	return s.repos.Stations.FindAll(ctx)
}

func (s *searchService) TrainDetail(ctx context.Context, id uint) (*models.Train, error) {
	train, err := s.repos.Trains.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainNotFound
		}
		return nil, err
	}
	return train, nil
}

func (s *searchService) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	origin, err := lookupStation(ctx, s.repos.Stations, req.Origin)
	if err != nil {
		return nil, err
	}
	dest, err := lookupStation(ctx, s.repos.Stations, req.Destination)
	if err != nil {
		return nil, err
	}
	date, err := s.window.Parse(req.JourneyDate)
	if err != nil {
		return nil, err
	}

	engine, err := s.engine(ctx, date)
	if err != nil {
		return nil, err
	}
	candidates := engine.Direct(search.Query{
		Origin:      origin.Code,
		Destination: dest.Code,
		Date:        date,
		Class:       strings.TrimSpace(req.Class),
	})

	sess := s.sessions.Open(search.Session{
		Origin:      origin.Code,
		Destination: dest.Code,
		Date:        date,
		Class:       strings.TrimSpace(req.Class),
	})

	logrus.WithFields(logrus.Fields{
		"session": sess.ID,
		"route":   origin.Code + "-" + dest.Code,
		"date":    date.Format(calendar.DateLayout),
		"found":   len(candidates),
	}).Debug("direct search")

	return &SearchResult{
		SessionID:           sess.ID,
		Origin:              *origin,
		Destination:         *dest,
		JourneyDate:         date,
		Candidates:          candidates,
		DeepSearchAvailable: len(candidates) == 0,
	}, nil
}

func (s *searchService) DeepSearch(ctx context.Context, sessionID string) (*DeepSearchResult, error) {
	current, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	engine, err := s.engine(ctx, current.Date)
	if err != nil {
		return nil, err
	}

	var res search.DeepResult
	next, err := s.sessions.Update(sessionID, func(sess search.Session) search.Session {
		var advanced search.Session
		advanced, res = engine.Deep(sess)
		return advanced
	})
	if err != nil {
		return nil, err
	}

	origin, _ := engine.Station(next.Origin)
	dest, _ := engine.Station(next.Destination)

	logrus.WithFields(logrus.Fields{
		"session":     next.ID,
		"outcome":     res.Outcome,
		"relaxations": next.Relaxations,
	}).Debug("deep search")

	return &DeepSearchResult{
		SessionID:           next.ID,
		Outcome:             res.Outcome,
		Origin:              origin,
		Destination:         dest,
		RelaxedDestination:  res.RelaxedDestination,
		JourneyDate:         next.Date,
		Candidates:          res.Candidates,
		DeepSearchAvailable: next.CanDeepen(),
	}, nil
}

// engine loads a fresh network snapshot plus the overrides for date.
func (s *searchService) engine(ctx context.Context, date time.Time) (*searchEngine, error) {
	trains, err := s.repos.Trains.FindAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("load trains: %w", err)
	}
	stops, err := s.repos.Routes.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	stations, err := s.repos.Stations.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stations: %w", err)
	}
	overrides, err := s.repos.Schedules.FindForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load schedule overrides: %w", err)
	}

	// archived trains are not loaded, so drop their stops too
	active := make(map[uint]bool, len(trains))
	for _, t := range trains {
		active[t.ID] = true
	}
	kept := stops[:0]
	for _, st := range stops {
		if active[st.TrainID] {
			kept = append(kept, st)
		}
	}

	net, err := network.New(trains, kept, stations)
	if err != nil {
		return nil, err
	}
	return &searchEngine{Engine: search.NewEngine(net, calendar.New(overrides)), net: net}, nil
}

type searchEngine struct {
	*search.Engine
	net *network.Network
}

func (e *searchEngine) Station(code string) (models.Station, bool) {
	return e.net.Station(code)
}
