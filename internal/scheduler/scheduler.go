// Package scheduler runs housekeeping jobs on cron schedules.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SessionSweeper is satisfied by *session.Store.
type SessionSweeper interface {
	Sweep() int
}

// OverridePurger is satisfied by repository.ScheduleRepository.
type OverridePurger interface {
	DeleteBefore(ctx context.Context, date time.Time) (int64, error)
}

type Config struct {
	SessionSweep  string
	OverridePurge string
	Location      *time.Location
}

type Scheduler struct {
	cron      *cron.Cron
	cfg       Config
	sessions  SessionSweeper
	overrides OverridePurger
	now       func() time.Time
	isRunning bool
}

func New(cfg Config, sessions SessionSweeper, overrides OverridePurger) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(cfg.Location)),
		cfg:       cfg,
		sessions:  sessions,
		overrides: overrides,
		now:       time.Now,
	}
}

// Start registers the jobs with a non-empty schedule and starts the cron runner.
func (s *Scheduler) Start() error {
	if s.cfg.SessionSweep != "" {
		if _, err := s.cron.AddFunc(s.cfg.SessionSweep, s.SweepSessions); err != nil {
			return err
		}
	}
	if s.cfg.OverridePurge != "" {
		if _, err := s.cron.AddFunc(s.cfg.OverridePurge, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			s.PurgeOverrides(ctx)
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.isRunning = true
	logrus.WithFields(logrus.Fields{
		"session_sweep":  s.cfg.SessionSweep,
		"override_purge": s.cfg.OverridePurge,
	}).Info("scheduler started")
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	if !s.isRunning {
		return
	}
	<-s.cron.Stop().Done()
	s.isRunning = false
	logrus.Info("scheduler stopped")
}

func (s *Scheduler) SweepSessions() {
	if n := s.sessions.Sweep(); n > 0 {
		logrus.WithField("removed", n).Debug("expired search sessions swept")
	}
}

// PurgeOverrides drops schedule overrides for dates before today.
func (s *Scheduler) PurgeOverrides(ctx context.Context) {
	now := s.now().In(s.cfg.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	n, err := s.overrides.DeleteBefore(ctx, today)
	if err != nil {
		logrus.WithError(err).Error("failed to purge past schedule overrides")
		return
	}
	logrus.WithField("removed", n).Info("past schedule overrides purged")
}
