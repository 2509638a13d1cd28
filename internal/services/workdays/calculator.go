package workdays

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWeekendConfig is returned when the configured weekend set marks
// all seven weekdays as non-working, which would make a due-date walk
// non-terminating.
var ErrInvalidWeekendConfig = errors.New("weekend configuration marks all seven days as non-working")

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Calendar is an immutable working-day calendar: a holiday set plus the
// weekdays treated as weekends. Safe for concurrent use.
type Calendar struct {
	holidays map[time.Time]struct{}
	weekends map[time.Weekday]struct{}
}

func NewCalendar(holidays []time.Time, weekendDays []string) (*Calendar, error) {
	c := &Calendar{
		holidays: make(map[time.Time]struct{}, len(holidays)),
		weekends: make(map[time.Weekday]struct{}, len(weekendDays)),
	}
	for _, h := range holidays {
		c.holidays[Truncate(h)] = struct{}{}
	}
	for _, name := range weekendDays {
		wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday name %q", name)
		}
		c.weekends[wd] = struct{}{}
	}
	if len(c.weekends) == 7 {
		return nil, ErrInvalidWeekendConfig
	}
	return c, nil
}

// Truncate drops the time-of-day component, normalizing to midnight UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (c *Calendar) IsWorkingDay(t time.Time) bool {
	d := Truncate(t)
	if _, off := c.weekends[d.Weekday()]; off {
		return false
	}
	_, holiday := c.holidays[d]
	return !holiday
}

// DueDate walks forward from the day after start until tatDays working days
// have elapsed and returns the date of the last one. tatDays <= 0 returns
// start unchanged. The walk is uncapped; termination is guaranteed because
// NewCalendar rejects all-weekend configurations.
func (c *Calendar) DueDate(start time.Time, tatDays int) time.Time {
	d := Truncate(start)
	if tatDays <= 0 {
		return d
	}
	counted := 0
	for {
		d = d.AddDate(0, 0, 1)
		if !c.IsWorkingDay(d) {
			continue
		}
		counted++
		if counted == tatDays {
			return d
		}
	}
}

// WorkingDaysBetween counts working days in (from, to]. Returns a negative
// count when to precedes from.
func (c *Calendar) WorkingDaysBetween(from, to time.Time) int {
	a, b := Truncate(from), Truncate(to)
	sign := 1
	if b.Before(a) {
		a, b = b, a
		sign = -1
	}
	n := 0
	for d := a.AddDate(0, 0, 1); !d.After(b); d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d) {
			n++
		}
	}
	return sign * n
}

// Urgency labels for a computed deadline relative to today.
const (
	UrgencyOverdue  = "overdue"
	UrgencyCritical = "critical" // 2 working days or fewer
	UrgencyDueSoon  = "due_soon" // 5 working days or fewer
	UrgencyOnTrack  = "on_track"
)

// Classify returns the working days remaining until deadline (negative once
// past) and the matching urgency label.
func (c *Calendar) Classify(deadline, today time.Time) (int, string) {
	remaining := c.WorkingDaysBetween(today, deadline)
	switch {
	case Truncate(deadline).Before(Truncate(today)):
		return remaining, UrgencyOverdue
	case remaining <= 2:
		return remaining, UrgencyCritical
	case remaining <= 5:
		return remaining, UrgencyDueSoon
	default:
		return remaining, UrgencyOnTrack
	}
}

// DueDate is the one-shot form: builds a calendar and computes the deadline
// in a single call.
func DueDate(start time.Time, tatDays int, holidays []time.Time, weekendDays []string) (time.Time, error) {
	cal, err := NewCalendar(holidays, weekendDays)
	if err != nil {
		return time.Time{}, err
	}
	return cal.DueDate(start, tatDays), nil
}
