// Package codec serializes error records to and from the opaque detail
// document persisted in the store's unbounded text column.
//
// The encoding is a single self-describing JSON object with a fixed field
// order and HTML escaping disabled, so the same record always encodes to the
// same bytes. Decode is the exact inverse: Decode(Encode(r)) == r for every
// valid record, including empty optional fields, embedded control characters,
// and multi-kilobyte detail text.
package codec
