// Package sqlitestore persists questions and the position slot in a local
// SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/idilsaglam/qotd/internal/model"
	"github.com/idilsaglam/qotd/internal/store"
)

// Store implements store.Store and position.Store on SQLite.
type Store struct {
	db   *sqlx.DB
	path string
}

// Open opens (or creates) the database at path and applies the schema.
// The special path ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty database path")
	}
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer, and ":memory:" is per-connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

// Opener returns a store.OpenFunc for path.
func Opener(path string) store.OpenFunc {
	return func(ctx context.Context) (store.Store, error) {
		return Open(ctx, path)
	}
}

func (s *Store) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY,
		seq INTEGER NOT NULL,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_questions_completed ON questions(completed);
	CREATE INDEX IF NOT EXISTS idx_questions_seq ON questions(seq);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const selectQuestion = `SELECT id, question, answer, completed FROM questions`

// Get retrieves a question by id.
func (s *Store) Get(ctx context.Context, id int) (model.Question, error) {
	var q model.Question
	err := s.db.GetContext(ctx, &q, selectQuestion+` WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Question{}, store.ErrNotFound
	}
	if err != nil {
		return model.Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return q, nil
}

// GetAll returns every question in seed order.
func (s *Store) GetAll(ctx context.Context) ([]model.Question, error) {
	qs := []model.Question{}
	if err := s.db.SelectContext(ctx, &qs, selectQuestion+` ORDER BY seq ASC`); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return qs, nil
}

// upsert keeps the existing seq of a replaced row; new rows go last.
const upsertQuestion = `
	INSERT INTO questions (id, seq, question, answer, completed)
	VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM questions), ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		question = excluded.question,
		answer = excluded.answer,
		completed = excluded.completed`

// Put inserts or replaces a question.
func (s *Store) Put(ctx context.Context, q model.Question) error {
	if _, err := s.db.ExecContext(ctx, upsertQuestion, q.ID, q.Question, q.Answer, q.Completed); err != nil {
		return fmt.Errorf("put question %d: %w", q.ID, err)
	}
	return nil
}

// PutAll writes all questions in one transaction.
func (s *Store) PutAll(ctx context.Context, qs []model.Question) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range qs {
		if _, err := tx.ExecContext(ctx, upsertQuestion, q.ID, q.Question, q.Answer, q.Completed); err != nil {
			return fmt.Errorf("put question %d: %w", q.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Update applies fn to the stored question inside a transaction.
func (s *Store) Update(ctx context.Context, id int, fn func(q *model.Question) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var q model.Question
	err = tx.GetContext(ctx, &q, selectQuestion+` WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get question %d: %w", id, err)
	}

	if err := fn(&q); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE questions SET question = ?, answer = ?, completed = ? WHERE id = ?`,
		q.Question, q.Answer, q.Completed, id,
	)
	if err != nil {
		return fmt.Errorf("update question %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetValue reads a settings value.
func (s *Store) GetValue(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.GetContext(ctx, &v, `SELECT value FROM settings WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return v, true, nil
}

// SetValue writes a settings value.
func (s *Store) SetValue(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}
