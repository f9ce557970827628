package grounding

import (
	"errors"
	"fmt"
)

// ErrUnknownMode marks a mode value outside the closed set.
var ErrUnknownMode = errors.New("unrecognized mode")

// Mode is the caller-selected presentation policy. It controls terminology
// level and disclaimer injection, never retrieval.
type Mode string

const (
	ModePatient Mode = "patient"
	ModeDoctor  Mode = "doctor"
)

// ParseMode rejects unrecognized values instead of defaulting; a silent
// patient default would mask transport-layer bugs.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePatient, ModeDoctor:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w %q (want %q or %q)", ErrUnknownMode, s, ModePatient, ModeDoctor)
	}
}
