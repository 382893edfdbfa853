package store

import (
	"context"
	"sync"

	"github.com/idilsaglam/qotd/internal/model"
)

// Memory is a Store held in process memory. Nothing survives Close.
type Memory struct {
	mu    sync.Mutex
	order []int
	byID  map[int]model.Question
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{byID: make(map[int]model.Question)}
}

// OpenMemory adapts NewMemory to an OpenFunc.
func OpenMemory() OpenFunc {
	return func(context.Context) (Store, error) { return NewMemory(), nil }
}

func (m *Memory) Get(_ context.Context, id int) (model.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.byID[id]
	if !ok {
		return model.Question{}, ErrNotFound
	}
	return q, nil
}

func (m *Memory) GetAll(_ context.Context) ([]model.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Question, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out, nil
}

func (m *Memory) Put(_ context.Context, q model.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(q)
	return nil
}

func (m *Memory) PutAll(_ context.Context, qs []model.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range qs {
		m.put(q)
	}
	return nil
}

func (m *Memory) put(q model.Question) {
	if _, ok := m.byID[q.ID]; !ok {
		m.order = append(m.order, q.ID)
	}
	m.byID[q.ID] = q
}

func (m *Memory) Update(_ context.Context, id int, fn func(q *model.Question) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	if err := fn(&q); err != nil {
		return err
	}
	q.ID = id
	m.byID[id] = q
	return nil
}

func (m *Memory) Close() error { return nil }
