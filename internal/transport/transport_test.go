package transport

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	buf      bytes.Buffer
	writeErr error
	short    bool
	closeErr error
	closed   bool
}

func (f *fakeConn) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	if f.short {
		return f.buf.Write(p[:len(p)-1])
	}
	return f.buf.Write(p)
}

func (f *fakeConn) Close() error {
	f.closed = true
	return f.closeErr
}

func TestSend_WritesThenSettles(t *testing.T) {
	conn := &fakeConn{}
	var slept []time.Duration
	w := NewWriter(conn, func(d time.Duration) { slept = append(slept, d) })

	frame := []byte{0xFE, 0xFE, 0x94, 0xE0, 0x1A, 0x05, 0x00, 0x95, 0x12, 0x00, 0xFD}
	require.NoError(t, w.Send(frame))

	assert.Equal(t, frame, conn.buf.Bytes())
	assert.Equal(t, []time.Duration{SettleDelay}, slept)
	assert.Equal(t, 100*time.Millisecond, SettleDelay)
}

func TestSend_WriteErrorSkipsSettle(t *testing.T) {
	ioErr := errors.New("device disconnected")
	conn := &fakeConn{writeErr: ioErr}
	slept := 0
	w := NewWriter(conn, func(time.Duration) { slept++ })

	err := w.Send([]byte{0x01})
	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, "write", tErr.Op)
	assert.ErrorIs(t, err, ioErr)
	assert.Zero(t, slept)
}

func TestSend_ShortWrite(t *testing.T) {
	w := NewWriter(&fakeConn{short: true}, func(time.Duration) {})
	err := w.Send([]byte{0x01, 0x02})
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

func TestClose(t *testing.T) {
	conn := &fakeConn{}
	require.NoError(t, NewWriter(conn, nil).Close())
	assert.True(t, conn.closed)

	closeErr := errors.New("ebadf")
	err := NewWriter(&fakeConn{closeErr: closeErr}, nil).Close()
	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, "close", tErr.Op)
}

func TestDryRun_RecordsFrames(t *testing.T) {
	d := &DryRun{}
	w := NewWriter(d, func(time.Duration) {})

	frame := []byte{0xAA, 0xBB}
	require.NoError(t, w.Send(frame))
	frame[0] = 0x00

	require.Len(t, d.Frames, 1)
	assert.Equal(t, []byte{0xAA, 0xBB}, d.Frames[0])
	assert.NoError(t, w.Close())
}
