// Package namespace validates the two identity-bounding strings attached to an
// error log: the application name and the optional schema qualifier.
//
// Both are normalized to Unicode NFC before validation so that two spellings
// of the same name land in the same namespace. The qualifier may be set at
// most once and is frozen at first successful store initialization; changing
// it afterwards is a programming error, not a runtime condition.
package namespace

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Character bounds for the namespace strings.
const (
	MaxApplication = 60
	MaxQualifier   = 30
)

// Guard holds the validated (application, qualifier) pair for one log
// instance. Safe for concurrent reads once frozen.
type Guard struct {
	application string

	mu        sync.Mutex
	qualifier string
	set       bool
	frozen    bool
}

// New validates and normalizes the application name. An empty name selects
// the single shared namespace.
func New(application string) (*Guard, error) {
	application = norm.NFC.String(application)
	if n := utf8.RuneCountInString(application); n > MaxApplication {
		return nil, fmt.Errorf("application name is %d characters, limit is %d", n, MaxApplication)
	}
	return &Guard{application: application}, nil
}

// Application returns the normalized application name.
func (g *Guard) Application() string {
	return g.application
}

// Qualifier returns the schema qualifier, or "" for the backend default.
func (g *Guard) Qualifier() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.qualifier
}

// ErrQualifierSet is returned when the schema qualifier is assigned a second
// time, or after the guard has been frozen by first use.
var ErrQualifierSet = fmt.Errorf("schema qualifier is already set")

// SetQualifier assigns the schema qualifier. It may be called once, before
// first use. The qualifier becomes part of the backing table name, so it is
// restricted to identifier characters.
func (g *Guard) SetQualifier(q string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.set || g.frozen {
		return ErrQualifierSet
	}

	q = norm.NFC.String(q)
	if n := utf8.RuneCountInString(q); n > MaxQualifier {
		return fmt.Errorf("schema qualifier is %d characters, limit is %d", n, MaxQualifier)
	}
	if !validQualifier(q) {
		return fmt.Errorf("schema qualifier %q: only letters, digits and underscore are allowed", q)
	}

	g.qualifier = q
	g.set = true
	return nil
}

// Freeze locks the guard after first successful initialization. Subsequent
// SetQualifier calls fail with ErrQualifierSet even if none succeeded before.
func (g *Guard) Freeze() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.frozen = true
}

// validQualifier reports whether q is safe to splice into an identifier.
// Empty is valid and means "use the backend default".
func validQualifier(q string) bool {
	for i, r := range q {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
