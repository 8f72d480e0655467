// Package ingest watches a spool directory for dropped error report files
// and logs them through the error log facade.
//
// Host processes that cannot or do not want to link the library write one
// JSON report per file into the spool. The watcher picks each report up,
// logs it, and renames the file to .done on success or .err on failure so a
// report is never ingested twice.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/roach88/faultlog/internal/identity"
	"github.com/roach88/faultlog/internal/record"
)

const (
	// DefaultDebounceInterval is how long to wait after the last change to a
	// report file before ingesting it, so a writer can finish the file.
	DefaultDebounceInterval = 100 * time.Millisecond

	// ingestTimeout bounds the backend write for one report.
	ingestTimeout = 10 * time.Second
)

// Logger is the narrow capability the watcher needs from the error log.
type Logger interface {
	Log(ctx context.Context, r record.ErrorRecord) (identity.ID, error)
}

// LogFunc is called for diagnostic messages.
type LogFunc func(format string, args ...any)

// report is the JSON shape of one spooled error report file.
type report struct {
	Host       string    `json:"host"`
	Type       string    `json:"type"`
	Source     string    `json:"source"`
	Message    string    `json:"message"`
	User       string    `json:"user"`
	StatusCode int       `json:"statusCode"`
	Time       time.Time `json:"time"`
	Detail     string    `json:"detail"`
}

// Watcher monitors a spool directory and ingests dropped error reports.
type Watcher struct {
	dir              string
	log              Logger
	logFn            LogFunc
	debounceInterval time.Duration

	watcher   *fsnotify.Watcher
	stopChan  chan struct{}
	doneChan  chan struct{}
	closeOnce sync.Once

	// debounce state per report file
	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewWatcher creates a watcher over the given spool directory.
// logFn may be nil for no diagnostics.
func NewWatcher(dir string, log Logger, logFn LogFunc) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logFn == nil {
		logFn = func(format string, args ...any) {} // no-op
	}

	return &Watcher{
		dir:              dir,
		log:              log,
		logFn:            logFn,
		debounceInterval: DefaultDebounceInterval,
		watcher:          fsWatcher,
		stopChan:         make(chan struct{}),
		doneChan:         make(chan struct{}),
		pending:          make(map[string]*time.Timer),
	}, nil
}

// Start sweeps reports already in the spool, then begins watching for new
// ones. Returns an error if the spool directory cannot be watched.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch spool %s: %w", w.dir, err)
	}

	// Reports dropped before the watcher started
	if err := w.sweepExisting(); err != nil {
		w.logFn("Warning: could not sweep spool %s: %v", w.dir, err)
	}

	go w.processEvents()

	return nil
}

// Close stops the watcher and waits for event processing to finish.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.stopChan)
		w.watcher.Close()

		// Cancel any pending debounce timers
		w.mu.Lock()
		for _, timer := range w.pending {
			timer.Stop()
		}
		w.pending = nil
		w.mu.Unlock()

		<-w.doneChan
	})
}

// sweepExisting ingests report files that predate the watcher.
func (w *Watcher) sweepExisting() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() && isReportFile(entry.Name()) {
			w.scheduleIngest(filepath.Join(w.dir, entry.Name()))
		}
	}
	return nil
}

// processEvents handles filesystem events.
func (w *Watcher) processEvents() {
	defer close(w.doneChan)

	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logFn("Watch error: %v", err)
		}
	}
}

// handleEvent processes a single filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !isReportFile(filepath.Base(event.Name)) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	w.scheduleIngest(event.Name)
}

// scheduleIngest debounces per file so a report being written in several
// chunks is ingested once, after the last write.
func (w *Watcher) scheduleIngest(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil { // closed
		return
	}
	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounceInterval, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		w.ingestFile(path)
	})
}

// ingestFile reads one report, logs it, and renames the file out of the
// spool. A report that cannot be read, parsed, or logged is renamed to .err
// and left for the operator.
func (w *Watcher) ingestFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return // already ingested or removed
		}
		w.logFn("Cannot read report %s: %v", path, err)
		return
	}

	var rep report
	if err := json.Unmarshal(data, &rep); err != nil {
		w.logFn("Malformed report %s: %v", path, err)
		w.setAside(path, ".err")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	id, err := w.log.Log(ctx, record.ErrorRecord{
		Host:       rep.Host,
		Type:       rep.Type,
		Source:     rep.Source,
		Message:    rep.Message,
		User:       rep.User,
		StatusCode: rep.StatusCode,
		Time:       rep.Time,
		Detail:     rep.Detail,
	})
	if err != nil {
		w.logFn("Cannot log report %s: %v", path, err)
		w.setAside(path, ".err")
		return
	}

	w.logFn("Ingested report %s as %s", filepath.Base(path), id)
	w.setAside(path, ".done")
}

// setAside renames an ingested or failed report so it is not picked up again.
func (w *Watcher) setAside(path, suffix string) {
	if err := os.Rename(path, path+suffix); err != nil {
		w.logFn("Cannot rename report %s: %v", path, err)
	}
}

// isReportFile reports whether a spool entry is an unprocessed report.
func isReportFile(name string) bool {
	return strings.HasSuffix(name, ".json")
}
