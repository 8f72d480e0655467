package identity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID is the 128-bit identity assigned to a logged error.
type ID struct {
	u uuid.UUID
}

// New allocates a fresh random identity.
func New() ID {
	return ID{u: uuid.New()}
}

// Parse accepts either the 32-char hex storage form or the hyphenated
// external form. Both render back to the same logical identity.
func Parse(s string) (ID, error) {
	if s == "" {
		return ID{}, fmt.Errorf("empty identity")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("parse identity %q: %w", s, err)
	}
	return ID{u: u}, nil
}

// StorageKey returns the 32-char lowercase hex form used as the store key.
func (id ID) StorageKey() string {
	return strings.ReplaceAll(id.u.String(), "-", "")
}

// String returns the canonical hyphenated form for external exposure.
func (id ID) String() string {
	return id.u.String()
}

// IsZero reports whether the identity is the all-zero value.
func (id ID) IsZero() bool {
	return id.u == uuid.UUID{}
}
