// Package errlog is the public face of the error log: a paginated,
// application-isolated, durable store of application error records.
//
// A Log is constructed once per application namespace and is safe for
// concurrent use. Every operation is scoped to the configured namespace:
// writes stamp the application name onto the record, and reads never return
// an entry belonging to another namespace even if identities collide.
//
// The log holds no in-memory state and performs no background work; all
// state lives in the backend. Operations take a context and may block on
// backend I/O; cancellation before commit leaves no visible write.
package errlog
