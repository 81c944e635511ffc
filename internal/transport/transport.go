package transport

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
)

// SettleDelay is the pause after each frame so the radio can process it
// before the next one arrives.
const SettleDelay = 100 * time.Millisecond

// TransportError wraps a failed write or close. It is never retried.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Writer sends whole frames over an exclusively owned connection.
type Writer struct {
	conn  io.WriteCloser
	sleep func(time.Duration)
}

func NewWriter(conn io.WriteCloser, sleep func(time.Duration)) *Writer {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Writer{conn: conn, sleep: sleep}
}

// Send writes the full frame, then waits SettleDelay.
func (w *Writer) Send(frame []byte) error {
	n, err := w.conn.Write(frame)
	if err == nil && n != len(frame) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &TransportError{Op: "write", Err: err}
	}

	log.Debug().
		Str("frame", hex.EncodeToString(frame)).
		Msg("Frame written")

	w.sleep(SettleDelay)
	return nil
}

func (w *Writer) Close() error {
	if err := w.conn.Close(); err != nil {
		return &TransportError{Op: "close", Err: err}
	}
	return nil
}

// DryRun is a connection that logs frames instead of writing them.
type DryRun struct {
	Frames [][]byte
}

func (d *DryRun) Write(p []byte) (int, error) {
	d.Frames = append(d.Frames, append([]byte(nil), p...))
	log.Info().
		Str("frame", hex.EncodeToString(p)).
		Msg("DRY RUN: frame not sent")
	return len(p), nil
}

func (d *DryRun) Close() error { return nil }
