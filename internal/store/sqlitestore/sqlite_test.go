package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/qotd/internal/model"
	"github.com/idilsaglam/qotd/internal/position"
	"github.com/idilsaglam/qotd/internal/store"
)

// Compile-time checks for the two capabilities the CLI wires up.
var (
	_ store.Store    = (*Store)(nil)
	_ position.Store = (*Store)(nil)
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestOpenInMemory(t *testing.T) {
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer s.Close()

	all, err := s.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestSeedOrderSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)

	require.NoError(t, s.PutAll(ctx, []model.Question{
		{ID: 20, Question: "Q20", Answer: "A20"},
		{ID: 5, Question: "Q5", Answer: "A5"},
		{ID: 11, Question: "Q11", Answer: "A11"},
	}))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	all, err := reopened.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{20, 5, 11}, []int{all[0].ID, all[1].ID, all[2].ID})
	assert.False(t, all[0].Completed)
}

func TestPutReplaceKeepsPosition(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	require.NoError(t, s.Put(ctx, model.Question{ID: 1, Question: "Q1", Answer: "A1"}))
	require.NoError(t, s.Put(ctx, model.Question{ID: 2, Question: "Q2", Answer: "A2"}))
	require.NoError(t, s.Put(ctx, model.Question{ID: 1, Question: "Q1", Answer: "A1", Completed: true}))

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].ID)
	assert.True(t, all[0].Completed)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)
	require.NoError(t, s.PutAll(ctx, []model.Question{
		{ID: 1, Question: "Q1", Answer: "A1"},
		{ID: 2, Question: "Q2", Answer: "A2"},
	}))

	require.NoError(t, s.Update(ctx, 2, func(q *model.Question) error {
		q.Completed = true
		return nil
	}))

	got, err := s.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, model.Question{ID: 2, Question: "Q2", Answer: "A2", Completed: true}, got)

	other, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, other.Completed)

	err = s.Update(ctx, 3, func(*model.Question) error { return nil })
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Get(ctx, 3)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	_, ok, err := s.GetValue(ctx, position.IndexKey)
	require.NoError(t, err)
	assert.False(t, ok)

	slot := position.NewSlot(s, "")
	require.NoError(t, slot.Save(ctx, 4))
	require.NoError(t, slot.Save(ctx, 1))

	n, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
