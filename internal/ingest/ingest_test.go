package ingest

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/faultlog/internal/identity"
	"github.com/roach88/faultlog/internal/record"
)

// stubLogger records logged error records in memory.
type stubLogger struct {
	mu      sync.Mutex
	records []record.ErrorRecord
}

func (s *stubLogger) Log(_ context.Context, r record.ErrorRecord) (identity.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return identity.New(), nil
}

func (s *stubLogger) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *stubLogger) last() record.ErrorRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[len(s.records)-1]
}

func startWatcher(t *testing.T, dir string, log Logger) *Watcher {
	t.Helper()
	w, err := NewWatcher(dir, log, t.Logf)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(w.Close)
	return w
}

const sampleReport = `{
	"host": "web-01",
	"type": "ValueError",
	"source": "cart",
	"message": "quantity must be positive",
	"user": "alice",
	"statusCode": 500,
	"time": "2024-03-14T09:26:53Z",
	"detail": "stack trace"
}`

func TestWatcher_IngestsDroppedReport(t *testing.T) {
	dir := t.TempDir()
	log := &stubLogger{}
	startWatcher(t, dir, log)

	path := filepath.Join(dir, "report-1.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleReport), 0o644))

	require.Eventually(t, func() bool { return log.count() == 1 },
		5*time.Second, 10*time.Millisecond, "report was not ingested")

	got := log.last()
	assert.Equal(t, "ValueError", got.Type)
	assert.Equal(t, "quantity must be positive", got.Message)
	assert.Equal(t, 500, got.StatusCode)

	require.Eventually(t, func() bool {
		_, err := os.Stat(path + ".done")
		return err == nil
	}, 5*time.Second, 10*time.Millisecond, "report was not renamed to .done")
}

func TestWatcher_SweepsPreexistingReports(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "early.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleReport), 0o644))

	log := &stubLogger{}
	startWatcher(t, dir, log)

	require.Eventually(t, func() bool { return log.count() == 1 },
		5*time.Second, 10*time.Millisecond, "pre-existing report was not ingested")
}

func TestWatcher_MalformedReportSetAside(t *testing.T) {
	dir := t.TempDir()
	log := &stubLogger{}
	startWatcher(t, dir, log)

	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	require.Eventually(t, func() bool {
		_, err := os.Stat(path + ".err")
		return err == nil
	}, 5*time.Second, 10*time.Millisecond, "malformed report was not set aside")
	assert.Equal(t, 0, log.count())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	log := &stubLogger{}
	startWatcher(t, dir, log)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.json.done"), []byte(sampleReport), 0o644))

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 0, log.count())
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir, &stubLogger{})
	w.Close()
	w.Close()
}
