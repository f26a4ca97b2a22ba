// Package entry parses pipe-delimited report lines into model entries.
package entry

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/archer884/roll-report/internal/model"
)

// TimestampLayout is the only accepted timestamp form, e.g. "2021-06-15 14:30".
const TimestampLayout = "2006-01-02 15:04"

var errTimestampWidth = errors.New("timestamp must be YYYY-MM-DD HH:MM")

const (
	segmentSeparator = "|"
	dataSeparator    = ":"
	valueSeparator   = ","
)

type segments struct {
	parts []string
	next  int
}

func (s *segments) take() (string, bool) {
	if s.next >= len(s.parts) {
		return "", false
	}
	part := s.parts[s.next]
	s.next++
	return part, true
}

// Parse converts one line into an Entry. The returned error is one of
// *ParseDateError, *ParseIntError or *MalformedEntryError.
func Parse(line string) (model.Entry, error) {
	parts := &segments{parts: strings.Split(line, segmentSeparator)}

	rawTimestamp, ok := parts.take()
	if !ok {
		return model.Entry{}, &MalformedEntryError{Reason: ReasonMissingTimestamp}
	}
	timestamp, err := parseTimestamp(rawTimestamp)
	if err != nil {
		return model.Entry{}, &ParseDateError{Text: rawTimestamp, Err: err}
	}

	version, ok := parts.take()
	if !ok {
		return model.Entry{}, &MalformedEntryError{Reason: ReasonMissingVersion}
	}

	data, ok := parts.take()
	if !ok {
		return model.Entry{}, &MalformedEntryError{Reason: ReasonMissingDataSegment}
	}
	rawMax, rawValues, found := strings.Cut(data, dataSeparator)
	if !found {
		return model.Entry{}, &MalformedEntryError{Reason: ReasonBadDataSegment}
	}

	key, err := parseInt32(rawMax)
	if err != nil {
		return model.Entry{}, err
	}

	tokens := strings.Split(rawValues, valueSeparator)
	values := make([]int32, 0, len(tokens))
	for _, token := range tokens {
		value, err := parseInt32(token)
		if err != nil {
			return model.Entry{}, err
		}
		values = append(values, value)
	}

	return model.Entry{
		Timestamp: timestamp,
		Version:   version,
		Max:       key,
		Values:    values,
	}, nil
}

// Format renders an entry back into the line grammar.
func Format(e model.Entry) string {
	var builder strings.Builder
	builder.WriteString(e.Timestamp.UTC().Format(TimestampLayout))
	builder.WriteString(segmentSeparator)
	builder.WriteString(e.Version)
	builder.WriteString(segmentSeparator)
	builder.WriteString(strconv.FormatInt(int64(e.Max), 10))
	builder.WriteString(dataSeparator)
	for i, value := range e.Values {
		if i > 0 {
			builder.WriteString(valueSeparator)
		}
		builder.WriteString(strconv.FormatInt(int64(value), 10))
	}
	return builder.String()
}

// parseTimestamp requires every field at full width; the "15" hour verb
// alone would also accept a single digit.
func parseTimestamp(text string) (time.Time, error) {
	if len(text) != len(TimestampLayout) {
		return time.Time{}, errTimestampWidth
	}
	return time.ParseInLocation(TimestampLayout, text, time.UTC)
}

func parseInt32(text string) (int32, error) {
	value, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok {
			err = numErr.Err
		}
		return 0, &ParseIntError{Text: text, Err: err}
	}
	return int32(value), nil
}
