// Package memory provides an in-process transactional store implementing the
// unit of work ports. It backs the engine and use case tests and can serve
// embedded deployments that do not need durability.
//
// Transactions are serialized: Begin takes an exclusive token and works on a
// private copy of the table, Commit swaps the copy in. Writes outside a
// transaction take the same token for the duration of the write, so they never
// interleave with an open transaction. Reads outside a transaction see the last
// committed state.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sortable/internal/core/domain/model/sortable"
)

// DefaultKey is the key attribute used when the config leaves Key empty.
const DefaultKey = "id"

var (
	ErrNoTransaction = errors.New("memory: no active transaction")
	ErrDuplicateKey  = errors.New("memory: duplicate key")
)

// Store holds one table of records.
type Store struct {
	cfg sortable.Config

	// token is held by whoever is writing: an open transaction or a single
	// autocommit write.
	token chan struct{}

	mu   sync.RWMutex
	rows map[string]sortable.Attributes
}

// NewStore creates an empty table ordered per cfg.
func NewStore(cfg sortable.Config) (*Store, error) {
	cfg = cfg.WithDefaults()
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Store{
		cfg:   cfg,
		token: make(chan struct{}, 1),
		rows:  make(map[string]sortable.Attributes),
	}, nil
}

// Config returns the effective config, with the key resolved.
func (s *Store) Config() sortable.Config {
	return s.cfg
}

// Seed inserts raw rows outside any transaction. Rows must carry the key attribute.
func (s *Store) Seed(ctx context.Context, rows ...sortable.Attributes) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range rows {
		key, ok := s.cfg.KeyOf(row)
		if !ok {
			return fmt.Errorf("memory: row without `%s`", s.cfg.Key)
		}
		k := sortable.CanonicalKey(key)
		if _, exists := s.rows[k]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, k)
		}
		s.rows[k] = row.Clone()
	}
	return nil
}

// Len returns the number of committed rows.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.token <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.token
}

func (s *Store) snapshot() map[string]sortable.Attributes {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]sortable.Attributes, len(s.rows))
	for k, row := range s.rows {
		out[k] = row.Clone()
	}
	return out
}

func (s *Store) replace(rows map[string]sortable.Attributes) {
	s.mu.Lock()
	s.rows = rows
	s.mu.Unlock()
}
