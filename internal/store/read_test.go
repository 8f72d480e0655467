package store

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// seedEntries writes n entries one minute apart, oldest first.
// IDs are zero-padded so descending id order matches descending insert order.
func seedEntries(t *testing.T, s *Store, application string, n int) {
	t.Helper()
	base := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		e := testEntry(fmt.Sprintf("%032d", i), application, base.Add(time.Duration(i)*time.Minute))
		if err := s.WriteEntry(context.Background(), e); err != nil {
			t.Fatalf("seed write %d failed: %v", i, err)
		}
	}
}

func TestReadEntry_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, found, err := s.ReadEntry(context.Background(), "app", "missing")
	if err != nil {
		t.Fatalf("ReadEntry() failed: %v", err)
	}
	if found {
		t.Error("found = true for missing entry")
	}
}

func TestReadEntry_ScopedToApplication(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := testEntry("shared-id", "app-a", time.Now().UTC())
	if err := s.WriteEntry(ctx, e); err != nil {
		t.Fatalf("WriteEntry() failed: %v", err)
	}

	_, found, err := s.ReadEntry(ctx, "app-b", "shared-id")
	if err != nil {
		t.Fatalf("ReadEntry() failed: %v", err)
	}
	if found {
		t.Error("entry leaked across application namespaces")
	}
}

func TestReadPage_DescendingOrderWithTotal(t *testing.T) {
	s := newTestStore(t)
	seedEntries(t, s, "app", 5)

	entries, total, err := s.ReadPage(context.Background(), "app", 0, 5)
	if err != nil {
		t.Fatalf("ReadPage() failed: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(entries) != 5 {
		t.Fatalf("len(entries) = %d, want 5", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].TimeUTC.After(entries[i-1].TimeUTC) {
			t.Errorf("entries[%d] is newer than entries[%d]", i, i-1)
		}
	}
}

func TestReadPage_OffsetAndLimit(t *testing.T) {
	s := newTestStore(t)
	seedEntries(t, s, "app", 7)

	entries, total, err := s.ReadPage(context.Background(), "app", 3, 3)
	if err != nil {
		t.Fatalf("ReadPage() failed: %v", err)
	}
	if total != 7 {
		t.Errorf("total = %d, want 7", total)
	}
	if len(entries) != 3 {
		t.Errorf("len(entries) = %d, want 3", len(entries))
	}

	// Tail page has fewer entries but the same total.
	entries, total, err = s.ReadPage(context.Background(), "app", 6, 3)
	if err != nil {
		t.Fatalf("ReadPage() tail failed: %v", err)
	}
	if total != 7 {
		t.Errorf("tail total = %d, want 7", total)
	}
	if len(entries) != 1 {
		t.Errorf("tail len(entries) = %d, want 1", len(entries))
	}
}

func TestReadPage_BeyondTail(t *testing.T) {
	s := newTestStore(t)
	seedEntries(t, s, "app", 4)

	entries, total, err := s.ReadPage(context.Background(), "app", 40, 10)
	if err != nil {
		t.Fatalf("ReadPage() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d beyond tail, want 0", len(entries))
	}
	if entries == nil {
		t.Error("entries should be an empty slice, not nil")
	}
	if total != 4 {
		t.Errorf("total = %d, want 4", total)
	}
}

func TestReadPage_EmptyNamespace(t *testing.T) {
	s := newTestStore(t)
	seedEntries(t, s, "other", 3)

	entries, total, err := s.ReadPage(context.Background(), "app", 0, 10)
	if err != nil {
		t.Fatalf("ReadPage() failed: %v", err)
	}
	if len(entries) != 0 || total != 0 {
		t.Errorf("got %d entries, total %d for empty namespace", len(entries), total)
	}
}

func TestReadPage_ScopedToApplication(t *testing.T) {
	s := newTestStore(t)
	seedEntries(t, s, "app-a", 3)
	seedEntries(t, s, "app-b", 2)

	entries, total, err := s.ReadPage(context.Background(), "app-a", 0, 10)
	if err != nil {
		t.Fatalf("ReadPage() failed: %v", err)
	}
	if total != 3 || len(entries) != 3 {
		t.Errorf("got %d entries, total %d, want 3/3", len(entries), total)
	}
	for _, e := range entries {
		if e.Application != "app-a" {
			t.Errorf("entry %s belongs to %q", e.ID, e.Application)
		}
	}
}

func TestReadPage_TimestampTieBreaksOnID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)

	for _, id := range []string{"aaa", "ccc", "bbb"} {
		if err := s.WriteEntry(ctx, testEntry(id, "app", at)); err != nil {
			t.Fatalf("WriteEntry(%s) failed: %v", id, err)
		}
	}

	entries, _, err := s.ReadPage(ctx, "app", 0, 3)
	if err != nil {
		t.Fatalf("ReadPage() failed: %v", err)
	}
	want := []string{"ccc", "bbb", "aaa"}
	for i, e := range entries {
		if e.ID != want[i] {
			t.Errorf("entries[%d].ID = %q, want %q", i, e.ID, want[i])
		}
	}
}

func TestCount(t *testing.T) {
	s := newTestStore(t)
	seedEntries(t, s, "app", 6)
	seedEntries(t, s, "other", 2)

	count, err := s.Count(context.Background(), "app")
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 6 {
		t.Errorf("count = %d, want 6", count)
	}
}
