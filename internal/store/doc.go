// Package store provides SQLite-backed durable storage for error log entries.
//
// The store implements a flat error table with:
//   - an atomic single-transaction write per entry (all-or-nothing)
//   - point reads keyed by (application, identity)
//   - reverse-chronological page reads scoped to one application, with the
//     namespace total computed in the same round trip via a window aggregate
//
// Indexed scalar columns have hard width limits; the adapter truncates
// oversize values to the documented widths before binding. The detail
// document column is unbounded TEXT and is stored and returned verbatim.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Connections are drawn from the database/sql pool per operation and released
// on every exit path; no session is shared across concurrent operations.
//
// The optional schema qualifier becomes a prefix on the table name, standing
// in for the schema-owner qualifier of server-class backends. It is fixed at
// Init and cannot change for the lifetime of the store.
package store
