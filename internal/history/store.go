// Package history maintains the append-only local log of completed analyses.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/neurosafe/neurosafe/internal/domain"
	"github.com/neurosafe/neurosafe/internal/shared"
	"github.com/neurosafe/neurosafe/internal/store"
)

// StorageKey is the key the full history log persists under, as one JSON
// array, most-recent-first.
const StorageKey = "neurosafe_history"

// DefaultLimit caps the log length. When an append would exceed the cap,
// the oldest entries are evicted.
const DefaultLimit = 200

const (
	writeRetries   = 3
	writeBaseDelay = 100 * time.Millisecond
)

// Store owns the persisted history log. Append is a read-modify-write over
// the whole log; the mutex makes it single-writer so concurrent appends
// cannot lose updates.
type Store struct {
	repo  store.Repository
	limit int
	mu    sync.Mutex
}

// NewStore creates a history store backed by repo. A limit <= 0 falls back
// to DefaultLimit.
func NewStore(repo store.Repository, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{repo: repo, limit: limit}
}

// Entries returns the persisted log, most-recent-first. A missing or
// unparsable stored value reads as an empty log; a corrupt value is
// discarded so later appends start clean.
func (s *Store) Entries(ctx context.Context) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx)
}

// Append prepends entry to the log and writes the full log back as one
// unit, evicting the oldest entries beyond the cap.
func (s *Store) Append(ctx context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(ctx)
	if err != nil {
		return err
	}

	entries = append([]domain.HistoryEntry{entry}, entries...)
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	return s.write(ctx, raw)
}

func (s *Store) read(ctx context.Context) ([]domain.HistoryEntry, error) {
	raw, err := s.repo.Get(ctx, StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		slog.Warn("Discarding corrupt history log", "error", err)
		if delErr := s.repo.Delete(ctx, StorageKey); delErr != nil {
			return nil, fmt.Errorf("discard corrupt history: %w", delErr)
		}
		return nil, nil
	}

	return entries, nil
}

// write persists the serialized log, retrying SQLite concurrency conflicts
// with exponential backoff.
func (s *Store) write(ctx context.Context, raw []byte) error {
	var err error
	for i := 0; i < writeRetries; i++ {
		err = s.repo.Put(ctx, StorageKey, raw)
		if err == nil {
			return nil
		}
		if !shared.IsSQLiteConflictError(err) {
			break
		}
		if i < writeRetries-1 {
			delay := writeBaseDelay * time.Duration(1<<i)
			slog.Debug("History write conflict, retrying", "attempt", i+1, "delay", delay)
			time.Sleep(delay)
		}
	}
	return fmt.Errorf("persist history: %w", err)
}
