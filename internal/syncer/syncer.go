package syncer

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/icom-clocksync/internal/civ"
	"github.com/thatsimonsguy/icom-clocksync/internal/clock"
	"github.com/thatsimonsguy/icom-clocksync/internal/model"
	"github.com/thatsimonsguy/icom-clocksync/internal/transport"
)

type State int

const (
	StateIdle State = iota
	StateCaptured
	StateAligned // TIME frame sent
	StateDateSent
	StateZoneSent
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCaptured:
		return "captured"
	case StateAligned:
		return "aligned"
	case StateDateSent:
		return "date_sent"
	case StateZoneSent:
		return "zone_sent"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Metrics interface {
	Gauge(name string, value float64, tags ...string)
	Count(name string, value int64, tags ...string)
}

type noopMetrics struct{}

func (noopMetrics) Gauge(string, float64, ...string) {}
func (noopMetrics) Count(string, int64, ...string)   {}

type Options struct {
	UseUTC bool
}

// Syncer runs one capture, wait and send sequence against a radio.
type Syncer struct {
	opts    Options
	cal     clock.Calendar
	sleeper clock.Sleeper
	metrics Metrics
	state   State
}

func New(opts Options, cal clock.Calendar, sleeper clock.Sleeper, metrics Metrics) *Syncer {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Syncer{
		opts:    opts,
		cal:     cal,
		sleeper: sleeper,
		metrics: metrics,
	}
}

// State reports how far the last Run got.
func (s *Syncer) State() State {
	return s.state
}

type frame struct {
	sub   civ.Subcommand
	bytes []byte
}

// Run captures the target minute, waits for it, then sends the TIME,
// DATE and ZONE frames. It takes ownership of conn and always closes it.
// The first error stops the sequence.
func (s *Syncer) Run(conn io.WriteCloser) (capture model.Capture, err error) {
	w := transport.NewWriter(conn, s.sleeper.Sleep)
	s.state = StateIdle

	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			s.metrics.Count("sync_failure", 1, "state:"+s.state.String())
			return
		}
		s.state = StateDone
		s.metrics.Count("sync_success", 1)
		log.Info().Msg("Radio clock synchronized")
	}()

	// nothing may run between the clock read and the capture
	capture = clock.Capture(s.cal, s.opts.UseUTC)
	s.state = StateCaptured

	frames, err := encode(capture)
	if err != nil {
		return capture, err
	}

	log.Info().
		Str("state", s.state.String()).
		Time("target", capture.Target).
		Int64("deadline_ms", capture.Deadline.Milliseconds()).
		Interface("time", capture.Time).
		Interface("date", capture.Date).
		Interface("zone", capture.Zone).
		Msg("Captured target minute")

	s.sleeper.Sleep(capture.Deadline)
	woke := s.cal.Now()

	next := []State{StateAligned, StateDateSent, StateZoneSent}
	for i, f := range frames {
		if err := w.Send(f.bytes); err != nil {
			return capture, fmt.Errorf("send %s frame: %w", f.sub, err)
		}
		s.state = next[i]
		s.metrics.Count("frames_sent", 1, "subcommand:"+f.sub.String())

		log.Info().
			Str("state", s.state.String()).
			Str("subcommand", f.sub.String()).
			Str("frame", hex.EncodeToString(f.bytes)).
			Msg("Frame sent")

		if f.sub == civ.SubcmdTime {
			overshoot := woke.Sub(capture.Target)
			s.metrics.Gauge("alignment_overshoot_ms", float64(overshoot.Microseconds())/1000)
			log.Debug().
				Dur("overshoot", overshoot).
				Msg("Alignment wait finished")
		}
	}

	return capture, nil
}

// encode builds all three frames up front so an encoding bug surfaces
// before anything is written.
func encode(c model.Capture) ([]frame, error) {
	timeFrame, err := civ.TimeFrame(c.Time)
	if err != nil {
		return nil, err
	}
	dateFrame, err := civ.DateFrame(c.Date)
	if err != nil {
		return nil, err
	}
	zoneFrame, err := civ.ZoneFrame(c.Zone)
	if err != nil {
		return nil, err
	}
	return []frame{
		{civ.SubcmdTime, timeFrame},
		{civ.SubcmdDate, dateFrame},
		{civ.SubcmdZone, zoneFrame},
	}, nil
}

// Frames returns the encoded TIME, DATE and ZONE frames for a capture.
func Frames(c model.Capture) (timeFrame, dateFrame, zoneFrame []byte, err error) {
	frames, err := encode(c)
	if err != nil {
		return nil, nil, nil, err
	}
	return frames[0].bytes, frames[1].bytes, frames[2].bytes, nil
}
