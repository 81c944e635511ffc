package clock

import (
	"time"

	"github.com/thatsimonsguy/icom-clocksync/internal/model"
)

// Lead is how far ahead of now the captured target lies.
const Lead = 60 * time.Second

// Calendar supplies the current instant and the zone used for local
// breakdowns.
type Calendar interface {
	Now() time.Time
	Location() *time.Location
}

type Sleeper interface {
	Sleep(d time.Duration)
}

// System reads the host clock and zone database.
type System struct{}

func (System) Now() time.Time           { return time.Now() }
func (System) Location() *time.Location { return time.Local }
func (System) Sleep(d time.Duration)    { time.Sleep(d) }

// Capture reads the calendar exactly once and derives every field the
// radio needs for the minute that starts after the next boundary.
func Capture(cal Calendar, useUTC bool) model.Capture {
	now := cal.Now()
	future := now.Add(Lead)

	loc := cal.Location()
	if useUTC || loc == nil {
		loc = time.UTC
	}
	broken := future.In(loc)

	offset := 0
	if !useUTC {
		_, offset = broken.Zone()
	}

	deadline := Deadline(now)

	return model.Capture{
		Now:      now,
		Target:   now.Add(deadline),
		Deadline: deadline,
		Time: model.TimeSpec{
			Hour:   broken.Hour(),
			Minute: broken.Minute(),
		},
		Date: model.DateSpec{
			Century: broken.Year() / 100,
			Year:    broken.Year() % 100,
			Month:   int(broken.Month()),
			Day:     broken.Day(),
		},
		Zone: Zone(offset),
	}
}

// Deadline is the wait from now until the next top of minute. A capture
// taken exactly on second zero waits a full minute.
func Deadline(now time.Time) time.Duration {
	minute := int64(time.Minute)
	into := now.UnixNano() % minute
	if into < 0 {
		into += minute
	}
	return time.Duration(minute - into)
}

// Zone splits a UTC offset in seconds east into the radio's magnitude
// and sign fields. The radio only holds whole 5 minute steps.
func Zone(offsetSeconds int) model.ZoneSpec {
	sign := model.SignEast
	abs := offsetSeconds
	if offsetSeconds < 0 {
		sign = model.SignWest
		abs = -offsetSeconds
	}

	minutes := (abs % 3600) / 60
	return model.ZoneSpec{
		OffsetHours:   abs / 3600,
		OffsetMinutes: minutes - minutes%5,
		Sign:          sign,
	}
}
