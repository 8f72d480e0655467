// Package record defines the error record value type and its field bounds.
package record

import (
	"time"
	"unicode/utf8"
)

// Width bounds for the indexed scalar fields, in characters. The detail text
// is unbounded and stored separately from the indexed columns.
const (
	MaxApplication = 60
	MaxHost        = 30
	MaxType        = 100
	MaxSource      = 60
	MaxMessage     = 500
	MaxUser        = 50
)

// ErrorRecord is a single captured application error. It is constructed fully
// formed by the caller and never mutated after logging.
type ErrorRecord struct {
	Application string    // owning application name
	Host        string    // machine the error occurred on
	Type        string    // error type or class name
	Source      string    // component that raised the error
	Message     string    // short human-readable message
	User        string    // acting user, if any
	StatusCode  int       // HTTP or process status code
	Time        time.Time // when the error occurred, compared in UTC
	Detail      string    // full detail text (stack trace, context); unbounded
}

// Normalized returns a copy with the timestamp converted to UTC.
// All stored and compared timestamps are UTC.
func (r ErrorRecord) Normalized() ErrorRecord {
	r.Time = r.Time.UTC()
	return r
}

// Clip truncates s to at most max characters. Rune-aware so a multi-byte
// character is never split.
func Clip(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
