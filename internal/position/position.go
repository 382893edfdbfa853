// Package position persists the last-viewed question index as a single
// string-encoded integer in a small key/value slot.
package position

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// IndexKey is the slot key holding the current question index.
const IndexKey = "currentQuestionIndex"

// ErrMalformedIndex is returned when the stored value is not an integer.
var ErrMalformedIndex = errors.New("malformed persisted index")

// Store is a string key/value slot.
type Store interface {
	GetValue(ctx context.Context, key string) (value string, ok bool, err error)
	SetValue(ctx context.Context, key, value string) error
}

// Slot reads and writes one integer under a fixed key.
type Slot struct {
	store Store
	key   string
}

// NewSlot returns a Slot for key; an empty key means IndexKey.
func NewSlot(s Store, key string) *Slot {
	if key == "" {
		key = IndexKey
	}
	return &Slot{store: s, key: key}
}

// Load returns the stored index. A missing value is 0 with no error; a
// value that does not parse is 0 with ErrMalformedIndex.
func (s *Slot) Load(ctx context.Context) (int, error) {
	v, ok, err := s.store.GetValue(ctx, s.key)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", s.key, err)
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedIndex, v)
	}
	return n, nil
}

// Save writes index as a base-10 string.
func (s *Slot) Save(ctx context.Context, index int) error {
	if err := s.store.SetValue(ctx, s.key, strconv.Itoa(index)); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

// Memory is a Store backed by a map.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) GetValue(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) SetValue(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
