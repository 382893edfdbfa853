// Package app ties the repository, the navigation controller and the
// position slot together behind one lock.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/idilsaglam/qotd/internal/logging"
	"github.com/idilsaglam/qotd/internal/model"
	"github.com/idilsaglam/qotd/internal/navigator"
	"github.com/idilsaglam/qotd/internal/position"
	"github.com/idilsaglam/qotd/internal/questions"
	"github.com/idilsaglam/qotd/internal/store"
)

// State is everything the viewer needs between interactions. Methods are
// safe to call from Bubble Tea commands.
type State struct {
	mu        sync.RWMutex
	repo      *questions.Repository
	nav       *navigator.Controller
	slot      *position.Slot
	completed int
	loaded    bool
	log       *logging.Logger
}

func New(repo *questions.Repository, slot *position.Slot, log *logging.Logger) *State {
	if log == nil {
		log = logging.Nop()
	}
	return &State{
		repo: repo,
		nav:  navigator.New(nil),
		slot: slot,
		log:  log.WithComponent("app"),
	}
}

// Load seeds when empty, fetches the list, restores the saved position and
// counts completed records.
func (s *State) Load(ctx context.Context, seed []model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.SeedIfEmpty(ctx, seed); err != nil {
		return err
	}
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	s.nav.SetItems(items)

	saved, err := s.slot.Load(ctx)
	switch {
	case errors.Is(err, position.ErrMalformedIndex):
		s.log.WithError(err).Warn("ignoring saved position")
		saved = 0
	case err != nil:
		return err
	}
	s.nav.Restore(saved)
	if saved != s.nav.Index() {
		s.log.Infow("saved position out of range", "saved", saved, "length", s.nav.Len())
	}
	if s.nav.Len() > 0 {
		if err := s.nav.Persist(ctx, s.slot); err != nil {
			return err
		}
	}

	s.completed = model.CountCompleted(items)
	s.loaded = true
	return nil
}

// Next moves forward and persists the new position.
func (s *State) Next(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.nav.Next() {
		return nil
	}
	return s.nav.Persist(ctx, s.slot)
}

// Previous moves backward and persists the new position.
func (s *State) Previous(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.nav.Previous() {
		return nil
	}
	return s.nav.Persist(ctx, s.slot)
}

// Goto moves to a 0-based position and persists it.
func (s *State) Goto(ctx context.Context, i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.nav.Goto(i); err != nil {
		return err
	}
	return s.nav.Persist(ctx, s.slot)
}

// Toggle flips completion of the current question and recounts. A record
// that vanished from the store is logged and skipped.
func (s *State) Toggle(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.nav.Current()
	if !ok {
		return false, nil
	}
	return s.mark(ctx, q, !q.Completed)
}

// SetCompleted sets the completion flag of any listed question by id.
func (s *State) SetCompleted(ctx context.Context, id int, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, q := range s.nav.Items() {
		if q.ID == id {
			_, err := s.mark(ctx, q, completed)
			return err
		}
	}
	return fmt.Errorf("question %d: %w", id, store.ErrNotFound)
}

func (s *State) mark(ctx context.Context, q model.Question, want bool) (bool, error) {
	if err := s.repo.SetCompleted(ctx, q.ID, want); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.log.WithError(err).Warnw("toggle of missing question ignored", "id", q.ID)
			return q.Completed, nil
		}
		return q.Completed, err
	}
	s.nav.SetCompleted(q.ID, want)

	n, err := s.repo.CountCompleted(ctx)
	if err != nil {
		return want, fmt.Errorf("recount: %w", err)
	}
	s.completed = n
	return want, nil
}

// Current returns the question under the cursor.
func (s *State) Current() (model.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nav.Current()
}

// Items returns a copy of the ordered list.
func (s *State) Items() []model.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Question(nil), s.nav.Items()...)
}

func (s *State) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nav.Index()
}

func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nav.Len()
}

func (s *State) Completed() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completed
}

// Loaded reports whether Load finished successfully.
func (s *State) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
