// Package questions owns the question records: one-time seeding, listing,
// completion updates and the completed count.
package questions

import (
	"context"
	"errors"
	"fmt"

	"github.com/idilsaglam/qotd/internal/logging"
	"github.com/idilsaglam/qotd/internal/model"
	"github.com/idilsaglam/qotd/internal/store"
)

// Repository is the handle returned by Initialize.
type Repository struct {
	store store.Store
	log   *logging.Logger
}

// Initialize opens the store. Any failure is reported as
// store.ErrStorageUnavailable; there is no retry.
func Initialize(ctx context.Context, open store.OpenFunc, log *logging.Logger) (*Repository, error) {
	if log == nil {
		log = logging.Nop()
	}
	st, err := open(ctx)
	if err != nil {
		if errors.Is(err, store.ErrStorageUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", store.ErrStorageUnavailable, err)
	}
	return New(st, log), nil
}

// New wraps an already open store.
func New(st store.Store, log *logging.Logger) *Repository {
	if log == nil {
		log = logging.Nop()
	}
	return &Repository{store: st, log: log.WithComponent("questions")}
}

// Close closes the underlying store.
func (r *Repository) Close() error { return r.store.Close() }

// SeedIfEmpty writes seed with Completed=false when the store holds no
// records. Existing records are never touched, so it is safe on every start.
func (r *Repository) SeedIfEmpty(ctx context.Context, seed []model.Question) (bool, error) {
	existing, err := r.store.GetAll(ctx)
	if err != nil {
		return false, fmt.Errorf("read questions: %w", err)
	}
	if len(existing) > 0 {
		r.log.Debugw("seed skipped", "existing", len(existing))
		return false, nil
	}
	if len(seed) == 0 {
		return false, nil
	}

	fresh := make([]model.Question, len(seed))
	for i, q := range seed {
		q.Completed = false
		fresh[i] = q
	}
	if err := r.store.PutAll(ctx, fresh); err != nil {
		return false, fmt.Errorf("seed questions: %w", err)
	}
	r.log.Infow("seeded questions", "count", len(fresh))
	return true, nil
}

// GetAll returns all questions in seed order; empty when nothing is stored.
func (r *Repository) GetAll(ctx context.Context) ([]model.Question, error) {
	qs, err := r.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	if qs == nil {
		qs = []model.Question{}
	}
	return qs, nil
}

// SetCompleted sets the completion flag of one question and leaves its text
// as stored. Returns store.ErrNotFound for an unknown id.
func (r *Repository) SetCompleted(ctx context.Context, id int, completed bool) error {
	err := r.store.Update(ctx, id, func(q *model.Question) error {
		q.Completed = completed
		return nil
	})
	if err != nil {
		return fmt.Errorf("set completed %d: %w", id, err)
	}
	r.log.Debugw("completion updated", "id", id, "completed", completed)
	return nil
}

// CountCompleted scans every record and counts the completed ones.
func (r *Repository) CountCompleted(ctx context.Context) (int, error) {
	qs, err := r.store.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("read questions: %w", err)
	}
	return model.CountCompleted(qs), nil
}

// Reset clears every completion flag and returns how many changed.
func (r *Repository) Reset(ctx context.Context) (int, error) {
	qs, err := r.store.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("read questions: %w", err)
	}
	var changed []model.Question
	for _, q := range qs {
		if q.Completed {
			q.Completed = false
			changed = append(changed, q)
		}
	}
	if len(changed) == 0 {
		return 0, nil
	}
	if err := r.store.PutAll(ctx, changed); err != nil {
		return 0, fmt.Errorf("reset questions: %w", err)
	}
	r.log.Infow("progress reset", "count", len(changed))
	return len(changed), nil
}
