// Package codec holds scalar codecs shared by schema types.
package codec

import (
	"context"
	"strings"
	"time"

	chatskema "github.com/reoring/chatskema"
)

// TimestampLayout is the wire layout for timestamps: microsecond precision
// with a numeric UTC offset.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// TimestampLayoutNano is used instead of TimestampLayout when a time carries
// sub-microsecond digits.
const TimestampLayoutNano = "2006-01-02T15:04:05.000000000-07:00"

// Timestamp returns a Codec that converts between ISO-8601 strings with a
// mandatory offset and time.Time.
func Timestamp() chatskema.Codec[string, time.Time] { return timestampCodec{} }

type timestampCodec struct{}

func (timestampCodec) Decode(_ context.Context, a string) (time.Time, error) {
	t, err := ParseTimestamp(a)
	if err != nil {
		it := chatskema.NewIssue("", chatskema.CodeInvalidTimestampFormat, a, map[string]any{"raw": a})
		it.Cause = err
		return time.Time{}, chatskema.Issues{it}
	}
	return t, nil
}

func (timestampCodec) Encode(_ context.Context, b time.Time) (string, error) {
	return FormatTimestamp(b), nil
}

// ParseTimestamp parses RFC 3339 text (fractional seconds optional). The
// offset is mandatory; a zero offset normalizes to UTC and any other offset
// to a fixed zone, so equal text always yields equal values.
func ParseTimestamp(s string) (time.Time, error) {
	// time.Parse tolerates a lowercase "t"/"z" in some layouts; the wire does not.
	if strings.ContainsAny(s, "tz ") {
		return time.Time{}, &time.ParseError{Layout: time.RFC3339Nano, Value: s, Message: ": not an ISO-8601 timestamp with offset"}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return normalize(t), nil
}

// FormatTimestamp renders t in TimestampLayout, or TimestampLayoutNano when
// microseconds would drop digits.
func FormatTimestamp(t time.Time) string {
	if t.Nanosecond()%1000 != 0 {
		return t.Format(TimestampLayoutNano)
	}
	return t.Format(TimestampLayout)
}

func normalize(t time.Time) time.Time {
	_, off := t.Zone()
	if off == 0 {
		return t.UTC()
	}
	return t.In(time.FixedZone("", off))
}
