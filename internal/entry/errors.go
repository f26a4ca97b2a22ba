package entry

import (
	"errors"
	"fmt"
)

var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// Reasons reported by MalformedEntryError.
const (
	ReasonMissingTimestamp   = "missing timestamp"
	ReasonMissingVersion     = "missing version"
	ReasonMissingDataSegment = "missing data segment"
	ReasonBadDataSegment     = "bad data segment"
)

type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

type ParseDateError struct {
	Text string
	Err  error
}

func (e *ParseDateError) Error() string {
	return fmt.Sprintf("invalid timestamp %q: %v", e.Text, e.Err)
}

func (e *ParseDateError) Unwrap() error {
	return e.Err
}

type ParseIntError struct {
	Text string
	Err  error
}

func (e *ParseIntError) Error() string {
	return fmt.Sprintf("invalid integer %q: %v", e.Text, e.Err)
}

func (e *ParseIntError) Unwrap() error {
	return e.Err
}

type MalformedEntryError struct {
	Reason string
}

func (e *MalformedEntryError) Error() string {
	return "malformed entry: " + e.Reason
}

// LineError attaches the 1-based line number to a parse failure.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
