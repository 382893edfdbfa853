package questions

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/qotd/internal/model"
	"github.com/idilsaglam/qotd/internal/store"
	"github.com/idilsaglam/qotd/internal/store/jsonstore"
	"github.com/idilsaglam/qotd/internal/store/sqlitestore"
)

func twoQuestions() []model.Question {
	return []model.Question{
		{ID: 1, Question: "Q1", Answer: "A1"},
		{ID: 2, Question: "Q2", Answer: "A2"},
	}
}

// backends runs fn against every store implementation.
func backends(t *testing.T, fn func(t *testing.T, repo *Repository)) {
	t.Helper()
	openers := map[string]func(dir string) store.OpenFunc{
		"memory": func(string) store.OpenFunc { return store.OpenMemory() },
		"sqlite": func(dir string) store.OpenFunc { return sqlitestore.Opener(filepath.Join(dir, "q.db")) },
		"json":   func(dir string) store.OpenFunc { return jsonstore.Opener(filepath.Join(dir, "q.json")) },
	}
	for name, open := range openers {
		t.Run(name, func(t *testing.T) {
			repo, err := Initialize(context.Background(), open(t.TempDir()), nil)
			require.NoError(t, err)
			t.Cleanup(func() { _ = repo.Close() })
			fn(t, repo)
		})
	}
}

func TestInitializeStorageUnavailable(t *testing.T) {
	failing := func(context.Context) (store.Store, error) {
		return nil, errors.New("disk on fire")
	}
	_, err := Initialize(context.Background(), failing, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestSeedScenario(t *testing.T) {
	backends(t, func(t *testing.T, repo *Repository) {
		ctx := context.Background()

		seeded, err := repo.SeedIfEmpty(ctx, twoQuestions())
		require.NoError(t, err)
		assert.True(t, seeded)

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Question{
			{ID: 1, Question: "Q1", Answer: "A1", Completed: false},
			{ID: 2, Question: "Q2", Answer: "A2", Completed: false},
		}, all)

		n, err := repo.CountCompleted(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		require.NoError(t, repo.SetCompleted(ctx, 1, true))
		n, err = repo.CountCompleted(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestSeedIsIdempotent(t *testing.T) {
	backends(t, func(t *testing.T, repo *Repository) {
		ctx := context.Background()

		_, err := repo.SeedIfEmpty(ctx, twoQuestions())
		require.NoError(t, err)
		once, err := repo.GetAll(ctx)
		require.NoError(t, err)

		seeded, err := repo.SeedIfEmpty(ctx, twoQuestions())
		require.NoError(t, err)
		assert.False(t, seeded)

		twice, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	})
}

func TestSeedKeepsCompletionState(t *testing.T) {
	backends(t, func(t *testing.T, repo *Repository) {
		ctx := context.Background()
		_, err := repo.SeedIfEmpty(ctx, twoQuestions())
		require.NoError(t, err)
		require.NoError(t, repo.SetCompleted(ctx, 2, true))

		// A changed dataset on the next start must not overwrite anything.
		changed := []model.Question{{ID: 2, Question: "other", Answer: "other"}}
		_, err = repo.SeedIfEmpty(ctx, changed)
		require.NoError(t, err)

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Q2", all[1].Question)
		assert.True(t, all[1].Completed)
	})
}

func TestSeedForcesCompletedFalse(t *testing.T) {
	backends(t, func(t *testing.T, repo *Repository) {
		ctx := context.Background()
		seed := []model.Question{{ID: 1, Question: "Q1", Answer: "A1", Completed: true}}
		_, err := repo.SeedIfEmpty(ctx, seed)
		require.NoError(t, err)

		n, err := repo.CountCompleted(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.True(t, seed[0].Completed, "caller's slice must not be modified")
	})
}

func TestGetAllEmpty(t *testing.T) {
	backends(t, func(t *testing.T, repo *Repository) {
		all, err := repo.GetAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})
}

func TestSetCompletedNotFound(t *testing.T) {
	backends(t, func(t *testing.T, repo *Repository) {
		ctx := context.Background()
		_, err := repo.SeedIfEmpty(ctx, twoQuestions())
		require.NoError(t, err)

		err = repo.SetCompleted(ctx, 42, true)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestSetCompletedCountDelta(t *testing.T) {
	backends(t, func(t *testing.T, repo *Repository) {
		ctx := context.Background()
		_, err := repo.SeedIfEmpty(ctx, twoQuestions())
		require.NoError(t, err)

		before, err := repo.CountCompleted(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.SetCompleted(ctx, 2, true))
		after, err := repo.CountCompleted(ctx)
		require.NoError(t, err)
		assert.Equal(t, before+1, after)

		// Already completed: unchanged.
		require.NoError(t, repo.SetCompleted(ctx, 2, true))
		again, err := repo.CountCompleted(ctx)
		require.NoError(t, err)
		assert.Equal(t, after, again)
	})
}

func TestSetCompletedLeavesOthersUntouched(t *testing.T) {
	backends(t, func(t *testing.T, repo *Repository) {
		ctx := context.Background()
		_, err := repo.SeedIfEmpty(ctx, twoQuestions())
		require.NoError(t, err)
		before, err := repo.GetAll(ctx)
		require.NoError(t, err)

		require.NoError(t, repo.SetCompleted(ctx, 1, true))

		after, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, after, 2)
		assert.Equal(t, before[0].Question, after[0].Question)
		assert.Equal(t, before[0].Answer, after[0].Answer)
		assert.True(t, after[0].Completed)
		assert.Equal(t, before[1], after[1])
	})
}

func TestReset(t *testing.T) {
	backends(t, func(t *testing.T, repo *Repository) {
		ctx := context.Background()
		_, err := repo.SeedIfEmpty(ctx, twoQuestions())
		require.NoError(t, err)
		require.NoError(t, repo.SetCompleted(ctx, 1, true))
		require.NoError(t, repo.SetCompleted(ctx, 2, true))

		n, err := repo.Reset(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		count, err := repo.CountCompleted(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, []int{all[0].ID, all[1].ID})

		n, err = repo.Reset(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}
