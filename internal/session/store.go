// Package session manages the locally persisted login identity.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/neurosafe/neurosafe/internal/domain"
	"github.com/neurosafe/neurosafe/internal/store"
)

// StorageKey is the key the session record persists under.
const StorageKey = "neurosafe_user"

// Store reads and writes the single session record. At most one session is
// live per installation; Login overwrites, never merges.
type Store struct {
	repo store.Repository
}

// NewStore creates a session store backed by repo.
func NewStore(repo store.Repository) *Store {
	return &Store{repo: repo}
}

// Get returns the persisted session, or nil if none exists. A stored record
// that fails to parse is discarded so a subsequent read sees a clean absent
// state.
func (s *Store) Get(ctx context.Context) (*domain.Session, error) {
	raw, err := s.repo.Get(ctx, StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		slog.Warn("Discarding corrupt session record", "error", err)
		if delErr := s.repo.Delete(ctx, StorageKey); delErr != nil {
			return nil, fmt.Errorf("discard corrupt session: %w", delErr)
		}
		return nil, nil
	}

	return &sess, nil
}

// Login constructs a new session and persists it, overwriting any prior
// record. The store boundary rejects an empty name or unknown role rather
// than trusting the surrounding form to have validated.
func (s *Store) Login(ctx context.Context, name string, role domain.Role) (*domain.Session, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("login: display name must not be empty")
	}
	if !role.Valid() {
		return nil, fmt.Errorf("login: unknown role %q", role)
	}

	sess := &domain.Session{Name: name, Role: role}
	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.repo.Put(ctx, StorageKey, raw); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return sess, nil
}

// Logout removes the persisted session record. Logging out with no live
// session is not an error.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.repo.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
