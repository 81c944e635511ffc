// Package civ encodes the Icom CI-V clock setting commands.
//
// Every field travels as one byte whose hex digits spell the decimal
// value, so 23 goes out as 0x23.
package civ

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/thatsimonsguy/icom-clocksync/internal/model"
)

// Subcommand selects which clock setting a frame addresses.
type Subcommand int

const (
	SubcmdDate Subcommand = 94
	SubcmdTime Subcommand = 95
	SubcmdZone Subcommand = 96
)

func (s Subcommand) String() string {
	switch s {
	case SubcmdDate:
		return "date"
	case SubcmdTime:
		return "time"
	case SubcmdZone:
		return "zone"
	default:
		return fmt.Sprintf("subcmd(%d)", int(s))
	}
}

// Terminator ends every frame.
const Terminator byte = 0xFD

// preamble addresses the radio (0x94) from the controller (0xE0) with
// command 1A 05 00.
var preamble = [...]byte{0xFE, 0xFE, 0x94, 0xE0, 0x1A, 0x05, 0x00}

// Preamble returns a copy of the fixed frame header.
func Preamble() []byte {
	p := preamble
	return p[:]
}

var (
	ErrFieldRange = errors.New("field outside 0-99")
	ErrMalformed  = errors.New("malformed frame")
	ErrNotDecimal = errors.New("byte is not decimal-as-hex")
)

// EncodingError reports a value that cannot be represented on the wire.
type EncodingError struct {
	Subcommand Subcommand
	Index      int // position in the field list, -1 for the subcommand
	Value      int
	Err        error
}

func (e *EncodingError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("encode %s: subcommand value %d: %v", e.Subcommand, e.Value, e.Err)
	}
	return fmt.Sprintf("encode %s: field %d value %d: %v", e.Subcommand, e.Index, e.Value, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// EncodeField maps 0-99 onto the byte with the same hex digits.
func EncodeField(v int) (byte, error) {
	if v < 0 || v > 99 {
		return 0, ErrFieldRange
	}
	b, err := strconv.ParseUint(fmt.Sprintf("%02d", v), 16, 8)
	if err != nil {
		return 0, err
	}
	return byte(b), nil
}

// DecodeField is the inverse of EncodeField.
func DecodeField(b byte) (int, error) {
	hi, lo := int(b>>4), int(b&0x0F)
	if hi > 9 || lo > 9 {
		return 0, fmt.Errorf("0x%02X: %w", b, ErrNotDecimal)
	}
	return hi*10 + lo, nil
}

// Encode builds preamble ++ subcommand ++ fields ++ terminator.
func Encode(sub Subcommand, fields ...int) ([]byte, error) {
	frame := make([]byte, 0, len(preamble)+len(fields)+2)
	frame = append(frame, preamble[:]...)

	sb, err := EncodeField(int(sub))
	if err != nil {
		return nil, &EncodingError{Subcommand: sub, Index: -1, Value: int(sub), Err: err}
	}
	frame = append(frame, sb)

	for i, v := range fields {
		b, err := EncodeField(v)
		if err != nil {
			return nil, &EncodingError{Subcommand: sub, Index: i, Value: v, Err: err}
		}
		frame = append(frame, b)
	}

	return append(frame, Terminator), nil
}

// Decode strips the preamble and terminator and returns the subcommand
// and field values.
func Decode(frame []byte) (Subcommand, []int, error) {
	if len(frame) < len(preamble)+2 {
		return 0, nil, fmt.Errorf("%d bytes: %w", len(frame), ErrMalformed)
	}
	for i, b := range preamble {
		if frame[i] != b {
			return 0, nil, fmt.Errorf("preamble byte %d is 0x%02X: %w", i, frame[i], ErrMalformed)
		}
	}
	if frame[len(frame)-1] != Terminator {
		return 0, nil, fmt.Errorf("missing terminator: %w", ErrMalformed)
	}

	body := frame[len(preamble) : len(frame)-1]
	sub, err := DecodeField(body[0])
	if err != nil {
		return 0, nil, fmt.Errorf("subcommand: %w", err)
	}

	fields := make([]int, 0, len(body)-1)
	for i, b := range body[1:] {
		v, err := DecodeField(b)
		if err != nil {
			return 0, nil, fmt.Errorf("field %d: %w", i, err)
		}
		fields = append(fields, v)
	}
	return Subcommand(sub), fields, nil
}

func TimeFrame(t model.TimeSpec) ([]byte, error) {
	return Encode(SubcmdTime, t.Hour, t.Minute)
}

func DateFrame(d model.DateSpec) ([]byte, error) {
	return Encode(SubcmdDate, d.Century, d.Year, d.Month, d.Day)
}

func ZoneFrame(z model.ZoneSpec) ([]byte, error) {
	return Encode(SubcmdZone, z.OffsetHours, z.OffsetMinutes, int(z.Sign))
}
