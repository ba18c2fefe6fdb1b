package service

import (
	"fmt"
	"time"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/calendar"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// SystemClock reads wall time in loc; journey dates are civil dates in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// BookingWindow accepts journey dates from today up to Days days ahead.
type BookingWindow struct {
	Clock Clock
	Days  int
}

// Parse turns a YYYY-MM-DD string into a civil date inside the window.
func (w BookingWindow) Parse(raw string) (time.Time, error) {
	date, err := calendar.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, raw)
	}
	if err := w.Check(date); err != nil {
		return time.Time{}, err
	}
	return date, nil
}

func (w BookingWindow) Check(date time.Time) error {
	today := calendar.Day(w.Clock.Now())
	date = calendar.Day(date)
	if date.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date.Format(calendar.DateLayout))
	}
	if date.After(today.AddDate(0, 0, w.Days)) {
		return fmt.Errorf("%w: tickets can be booked at most %d days in advance", ErrInvalidDate, w.Days)
	}
	return nil
}
