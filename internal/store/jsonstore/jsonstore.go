package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/idilsaglam/qotd/internal/model"
	"github.com/idilsaglam/qotd/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// Every write rewrites the whole file; fine for a local single-user deck.

const DefaultFileName = "questions.json"

// Store keeps questions as a JSON array in one file. Array order is
// insertion order.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open prepares the file at path, creating its directory. A missing file
// is an empty store; an unreadable one is an error.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	s := &Store{path: path}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Opener returns a store.OpenFunc for path.
func Opener(path string) store.OpenFunc {
	return func(context.Context) (store.Store, error) {
		return Open(path)
	}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

func (s *Store) load() ([]model.Question, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Question{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(b) == 0 {
		return []model.Question{}, nil
	}
	var items []model.Question
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return items, nil
}

func (s *Store) save(items []model.Question) error {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	// write-then-rename so a crash never leaves half a file behind
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id int) (model.Question, error) {
	if err := ctx.Err(); err != nil {
		return model.Question{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return model.Question{}, err
	}
	if i := indexOf(items, id); i >= 0 {
		return items[i], nil
	}
	return model.Question{}, store.ErrNotFound
}

func (s *Store) GetAll(ctx context.Context) ([]model.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Put(ctx context.Context, q model.Question) error {
	return s.PutAll(ctx, []model.Question{q})
}

func (s *Store) PutAll(ctx context.Context, qs []model.Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return err
	}
	for _, q := range qs {
		if i := indexOf(items, q.ID); i >= 0 {
			items[i] = q
			continue
		}
		items = append(items, q)
	}
	return s.save(items)
}

func (s *Store) Update(ctx context.Context, id int, fn func(q *model.Question) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(items, id)
	if i < 0 {
		return store.ErrNotFound
	}
	q := items[i]
	if err := fn(&q); err != nil {
		return err
	}
	q.ID = id
	items[i] = q
	return s.save(items)
}

func (s *Store) Close() error { return nil }

func indexOf(items []model.Question, id int) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
