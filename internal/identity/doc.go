// Package identity allocates and parses the 128-bit identifiers assigned to
// logged errors.
//
// Identities are random (no coordination between writers) and are never reused.
// Collisions are not checked against existing data; the birthday bound on a
// 128-bit random value is accepted. The store's composite primary key turns an
// actual collision within a namespace into a write failure instead of silent
// corruption.
//
// Two textual renderings exist for the same logical identity:
//   - storage form: 32 lowercase hex characters, no separators
//   - external form: canonical hyphenated GUID (8-4-4-4-12)
//
// Parse accepts both and must round-trip either into the same identity.
package identity
