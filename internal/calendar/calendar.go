// Package calendar decides whether a train runs on a given journey date.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
)

const DateLayout = "2006-01-02"

type key struct {
	trainID uint
	day     string
}

// Calendar is read-only after New and safe for concurrent use.
type Calendar struct {
	overrides map[key]models.ScheduleOverride
}

func New(overrides []models.ScheduleOverride) *Calendar {
	c := &Calendar{overrides: make(map[key]models.ScheduleOverride, len(overrides))}
	for _, o := range overrides {
		c.overrides[key{o.TrainID, o.JourneyDate.Format(DateLayout)}] = o
	}
	return c
}

// Day truncates t to its civil date, expressed as midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// IsOperating reports whether the train runs on date: not suspended, not on
// one of its off-days, and not cancelled for that date.
func (c *Calendar) IsOperating(train models.Train, date time.Time) bool {
	if train.Suspended {
		return false
	}
	wd := date.Weekday()
	for _, name := range train.OffDays {
		if off, err := ParseWeekday(name); err == nil && off == wd {
			return false
		}
	}
	status, _ := c.Status(train.ID, date)
	return status != models.ScheduleCancelled
}

// Status returns the override for (train, date), or running with no delay.
func (c *Calendar) Status(trainID uint, date time.Time) (models.ScheduleStatus, int) {
	if c == nil {
		return models.ScheduleRunning, 0
	}
	o, ok := c.overrides[key{trainID, date.Format(DateLayout)}]
	if !ok {
		return models.ScheduleRunning, 0
	}
	return o.Status, o.DelayMinutes
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts full or three-letter English day names in any case.
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if wd, ok := weekdays[n]; ok {
		return wd, nil
	}
	if len(n) == 3 {
		for full, wd := range weekdays {
			if strings.HasPrefix(full, n) {
				return wd, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// NormalizeOffDays validates day names and rewrites them in canonical form.
func NormalizeOffDays(days []string) ([]string, error) {
	out := make([]string, 0, len(days))
	seen := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		wd, err := ParseWeekday(d)
		if err != nil {
			return nil, err
		}
		if seen[wd] {
			continue
		}
		seen[wd] = true
		out = append(out, wd.String())
	}
	return out, nil
}
