package serialport

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
)

// SupportedBaudRates are the CI-V speeds the radio can be set to.
var SupportedBaudRates = []int{300, 1200, 4800, 9600, 19200, 38400, 57600, 115200}

var (
	ErrEmptyPath       = errors.New("serial port path is empty")
	ErrUnsupportedBaud = errors.New("unsupported baud rate")
)

// ConfigurationError reports a port that could not be opened with the
// requested settings.
type ConfigurationError struct {
	Path string
	Baud int
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("open %s at %d baud: %v", e.Path, e.Baud, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// openPort is swapped out in tests.
var openPort = func(path string, mode *serial.Mode) (io.WriteCloser, error) {
	return serial.Open(path, mode)
}

// Open opens path as 8N1 at baud. The caller owns the returned handle.
func Open(path string, baud int) (io.WriteCloser, error) {
	if path == "" {
		return nil, &ConfigurationError{Path: path, Baud: baud, Err: ErrEmptyPath}
	}
	if !supported(baud) {
		return nil, &ConfigurationError{Path: path, Baud: baud, Err: ErrUnsupportedBaud}
	}

	port, err := openPort(path, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, &ConfigurationError{Path: path, Baud: baud, Err: err}
	}

	log.Debug().
		Str("port", path).
		Int("baud", baud).
		Msg("Serial port opened")

	return port, nil
}

func supported(baud int) bool {
	for _, b := range SupportedBaudRates {
		if b == baud {
			return true
		}
	}
	return false
}
