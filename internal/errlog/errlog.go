package errlog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/roach88/faultlog/internal/codec"
	"github.com/roach88/faultlog/internal/identity"
	"github.com/roach88/faultlog/internal/namespace"
	"github.com/roach88/faultlog/internal/record"
	"github.com/roach88/faultlog/internal/store"
)

// Options configures a Log at construction time.
// Values are validated once; a Log whose construction failed is not usable.
type Options struct {
	// Path is the backend connection descriptor (the SQLite database path).
	// Required.
	Path string

	// Application is the namespace all operations are scoped to, at most 60
	// characters. Empty selects the single shared namespace.
	Application string

	// SchemaQualifier optionally qualifies the backing table, at most 30
	// characters. Empty means the backend default. Once set, here or via
	// SetSchemaQualifier, it cannot change.
	SchemaQualifier string
}

// Entry pairs an assigned identity with its error record.
type Entry struct {
	ID     identity.ID
	Record record.ErrorRecord
}

// Log is an error log scoped to one application namespace.
type Log struct {
	ns    *namespace.Guard
	store *store.Store

	initMu      sync.Mutex
	initialized bool
}

// Open validates the options and connects to the backend. The schema itself
// is created lazily on first use, so the schema qualifier may still be
// assigned after Open via SetSchemaQualifier.
func Open(opts Options) (*Log, error) {
	if opts.Path == "" {
		return nil, newError(CodeConfiguration, "connection descriptor is required")
	}

	ns, err := namespace.New(opts.Application)
	if err != nil {
		return nil, wrapError(CodeConfiguration, err, "invalid application name")
	}
	if opts.SchemaQualifier != "" {
		if err := ns.SetQualifier(opts.SchemaQualifier); err != nil {
			return nil, wrapError(CodeConfiguration, err, "invalid schema qualifier")
		}
	}

	st, err := store.Open(opts.Path)
	if err != nil {
		return nil, wrapError(CodeStoreUnavailable, err, "cannot open backend at %q", opts.Path)
	}

	return &Log{ns: ns, store: st}, nil
}

// SetSchemaQualifier assigns the schema qualifier after Open. Allowed at most
// once, and only before the first logged or read error; a second assignment
// is an InvalidOperation programming error.
func (l *Log) SetSchemaQualifier(q string) error {
	err := l.ns.SetQualifier(q)
	switch {
	case errors.Is(err, namespace.ErrQualifierSet):
		return wrapError(CodeInvalidOperation, err, "schema qualifier cannot change after it is set")
	case err != nil:
		return wrapError(CodeConfiguration, err, "invalid schema qualifier")
	}
	return nil
}

// Close releases the backend connection.
func (l *Log) Close() error {
	return l.store.Close()
}

// ensure freezes the namespace and creates the schema on first use.
// A transient failure here leaves the log retryable; the qualifier is frozen
// by the first attempt regardless of its outcome.
func (l *Log) ensure(ctx context.Context) error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	if l.initialized {
		return nil
	}

	l.ns.Freeze()
	if err := l.store.Init(ctx, l.ns.Qualifier()); err != nil {
		return wrapError(CodeStoreUnavailable, err, "cannot initialize backend schema")
	}

	l.initialized = true
	return nil
}

// Log assigns a fresh identity to the record, encodes it, and persists it in
// one atomic write. The record becomes visible to reads in this namespace
// only after the write commits. The record's application name is overwritten
// with the configured namespace; a zero timestamp is stamped with the current
// UTC time.
func (l *Log) Log(ctx context.Context, r record.ErrorRecord) (identity.ID, error) {
	if err := l.ensure(ctx); err != nil {
		return identity.ID{}, err
	}

	r = r.Normalized()
	r.Application = l.ns.Application()
	if r.Time.IsZero() {
		r.Time = time.Now().UTC()
	}

	id := identity.New()

	text, err := codec.Encode(r)
	if err != nil {
		return identity.ID{}, wrapError(CodeCodec, err, "cannot encode error record")
	}

	err = l.store.WriteEntry(ctx, store.Entry{
		ID:          id.StorageKey(),
		Application: r.Application,
		Host:        r.Host,
		Type:        r.Type,
		Source:      r.Source,
		Message:     r.Message,
		User:        r.User,
		StatusCode:  r.StatusCode,
		TimeUTC:     r.Time,
		AllDetails:  text,
	})
	if err != nil {
		return identity.ID{}, wrapError(CodeWriteFailed, err, "error record was not committed")
	}

	return id, nil
}

// GetError retrieves a single entry by identity. Either textual identity form
// parses; an empty or malformed identity is InvalidIdentity.
//
// Returns (nil, nil) when no matching entry exists in this namespace — which
// includes an entry stored under a different namespace and an entry whose
// payload is empty. Callers cannot distinguish those cases, by design.
func (l *Log) GetError(ctx context.Context, idText string) (*Entry, error) {
	id, err := identity.Parse(idText)
	if err != nil {
		return nil, wrapError(CodeInvalidIdentity, err, "invalid error identity %q", idText)
	}

	if err := l.ensure(ctx); err != nil {
		return nil, err
	}

	row, found, err := l.store.ReadEntry(ctx, l.ns.Application(), id.StorageKey())
	if err != nil {
		return nil, wrapError(CodeStoreUnavailable, err, "cannot read error %s", id)
	}
	if !found || row.AllDetails == "" {
		return nil, nil
	}

	rec, err := codec.Decode(row.AllDetails)
	if err != nil {
		return nil, wrapError(CodeCodec, err, "stored payload for error %s is malformed", id)
	}

	return &Entry{ID: id, Record: rec}, nil
}

// GetErrors appends one page of entries, most recent first, to sink and
// returns the total number of entries in the namespace independent of the
// page slice. A nil sink requests only the total. Listing is served from the
// indexed columns alone; Record.Detail is empty in listed entries — use
// GetError for the full document.
//
// Negative pageIndex or pageSize fail with InvalidArgument before the backend
// is touched.
func (l *Log) GetErrors(ctx context.Context, pageIndex, pageSize int, sink *[]Entry) (int, error) {
	if pageIndex < 0 {
		return 0, newError(CodeInvalidArgument, "pageIndex %d is negative", pageIndex)
	}
	if pageSize < 0 {
		return 0, newError(CodeInvalidArgument, "pageSize %d is negative", pageSize)
	}

	if err := l.ensure(ctx); err != nil {
		return 0, err
	}

	if sink == nil {
		total, err := l.store.Count(ctx, l.ns.Application())
		if err != nil {
			return 0, wrapError(CodeStoreUnavailable, err, "cannot count errors")
		}
		return total, nil
	}

	rows, total, err := l.store.ReadPage(ctx, l.ns.Application(), pageIndex*pageSize, pageSize)
	if err != nil {
		return 0, wrapError(CodeStoreUnavailable, err, "cannot read error page %d", pageIndex)
	}

	for _, row := range rows {
		id, err := identity.Parse(row.ID)
		if err != nil {
			return 0, wrapError(CodeCodec, err, "stored identity %q is malformed", row.ID)
		}
		*sink = append(*sink, Entry{
			ID: id,
			Record: record.ErrorRecord{
				Application: row.Application,
				Host:        row.Host,
				Type:        row.Type,
				Source:      row.Source,
				Message:     row.Message,
				User:        row.User,
				StatusCode:  row.StatusCode,
				Time:        row.TimeUTC,
			},
		})
	}

	return total, nil
}
