package model

import "time"

// Sign is the hemisphere flag the radio stores alongside its UTC offset.
type Sign int

const (
	SignEast Sign = 0 // offset >= 0
	SignWest Sign = 1 // offset < 0
)

func (s Sign) String() string {
	if s == SignWest {
		return "west"
	}
	return "east"
}

// TimeSpec is the wall-clock hour and minute of the target minute.
type TimeSpec struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

type DateSpec struct {
	Century int `json:"century"` // year / 100
	Year    int `json:"year"`    // year % 100
	Month   int `json:"month"`
	Day     int `json:"day"`
}

// FullYear reassembles the four digit year.
func (d DateSpec) FullYear() int {
	return d.Century*100 + d.Year
}

type ZoneSpec struct {
	OffsetHours   int  `json:"offset_hours"`
	OffsetMinutes int  `json:"offset_minutes"` // multiple of 5
	Sign          Sign `json:"sign"`
}

// OffsetSeconds returns the signed offset the zone describes.
func (z ZoneSpec) OffsetSeconds() int {
	secs := z.OffsetHours*3600 + z.OffsetMinutes*60
	if z.Sign == SignWest {
		return -secs
	}
	return secs
}

// Capture holds every value derived from a single reading of the clock.
type Capture struct {
	Now      time.Time     // instant the clock was read
	Target   time.Time     // top of the minute the TIME frame must hit
	Deadline time.Duration // wait from Now until Target
	Time     TimeSpec
	Date     DateSpec
	Zone     ZoneSpec
}
