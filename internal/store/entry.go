package store

import "time"

// Entry is the row shape of one persisted error.
//
// ID is the 32-char hex storage key. TimeUTC is the error instant in UTC;
// it is persisted as integer nanoseconds so that descending sort order is
// exact. AllDetails carries the encoded detail document verbatim.
type Entry struct {
	ID          string
	Application string
	Host        string
	Type        string
	Source      string
	Message     string
	User        string
	StatusCode  int
	TimeUTC     time.Time
	AllDetails  string
}
