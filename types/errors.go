package types

import (
	"errors"
	"fmt"
)

// ConnectionError reports a fatal transport-level failure: unreachable host,
// authentication failure, session setup failure. Never retried internally.
type ConnectionError struct {
	Device string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.Device, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ParseError reports a structural violation in device output: a line matched
// the table fingerprint but is missing fields the format contract requires.
// Field positions are tied to the firmware output format, so this usually
// means the device speaks a format revision the parser does not know.
type ParseError struct {
	Table string
	Line  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed %s row: %q", e.Table, e.Line)
}

// ArgumentError reports an invalid caller-supplied argument, raised at the
// boundary before any transport interaction is attempted.
type ArgumentError struct {
	Arg    string
	Value  interface{}
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Arg, e.Value, e.Reason)
}

// IsArgumentError reports whether err is an ArgumentError
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}

// IsParseError reports whether err is a ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
