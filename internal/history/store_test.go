package history

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/neurosafe/neurosafe/internal/domain"
	"github.com/neurosafe/neurosafe/internal/store"
)

func newTestStore(t *testing.T, limit int) (*Store, store.Repository) {
	t.Helper()
	repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return NewStore(repo, limit), repo
}

func entry(id string) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:        id,
		Date:      time.Now().UTC(),
		Preview:   "Some agreement text...",
		RiskLevel: domain.RiskLow,
		Risks:     []string{},
		Warning:   "Nothing notable",
	}
}

func TestEmptyLogReadsAsEmpty(t *testing.T) {
	s, _ := newTestStore(t, 0)

	entries, err := s.Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty log, got %d entries", len(entries))
	}
}

func TestAppendPrepends(t *testing.T) {
	s, _ := newTestStore(t, 0)
	ctx := context.Background()

	if err := s.Append(ctx, entry("first")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ctx, entry("second")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := s.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "second" || entries[1].ID != "first" {
		t.Errorf("Expected most-recent-first order, got [%s, %s]", entries[0].ID, entries[1].ID)
	}
}

func TestReadAfterWrite(t *testing.T) {
	s, _ := newTestStore(t, 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.Append(ctx, entry(fmt.Sprintf("e%d", i))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	before, err := s.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}

	e := entry("new")
	if err := s.Append(ctx, e); err != nil {
		t.Fatalf("Append: %v", err)
	}

	after, err := s.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("Expected %d entries, got %d", len(before)+1, len(after))
	}
	if after[0].ID != e.ID {
		t.Errorf("Expected new entry first, got %s", after[0].ID)
	}
	for i, prev := range before {
		if after[i+1].ID != prev.ID {
			t.Errorf("Expected pre-append sequence preserved at %d: got %s, want %s", i, after[i+1].ID, prev.ID)
		}
	}
}

func TestCapEvictsOldest(t *testing.T) {
	s, _ := newTestStore(t, 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.Append(ctx, entry(fmt.Sprintf("e%d", i))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	entries, err := s.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected log capped at 3, got %d", len(entries))
	}
	if entries[0].ID != "e4" || entries[2].ID != "e2" {
		t.Errorf("Expected newest retained and oldest evicted, got [%s..%s]", entries[0].ID, entries[2].ID)
	}
}

func TestCorruptLogReadsAsEmpty(t *testing.T) {
	s, repo := newTestStore(t, 0)
	ctx := context.Background()

	if err := repo.Put(ctx, StorageKey, []byte("not an array")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	entries, err := s.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected corrupt log to read as empty, got %d entries", len(entries))
	}

	// Appends after corruption start from a clean log.
	if err := s.Append(ctx, entry("fresh")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	entries, err = s.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "fresh" {
		t.Errorf("Expected a single fresh entry, got %+v", entries)
	}
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	s, _ := newTestStore(t, 0)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.Append(ctx, entry(fmt.Sprintf("c%d", i)))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	entries, err := s.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != n {
		t.Errorf("Expected all %d concurrent appends retained, got %d", n, len(entries))
	}
}
