package cli

import (
	"context"
	"fmt"

	"github.com/idilsaglam/qotd/internal/app"
	"github.com/idilsaglam/qotd/internal/config"
	"github.com/idilsaglam/qotd/internal/dataset"
	"github.com/idilsaglam/qotd/internal/logging"
	"github.com/idilsaglam/qotd/internal/model"
	"github.com/idilsaglam/qotd/internal/position"
	"github.com/idilsaglam/qotd/internal/questions"
	"github.com/idilsaglam/qotd/internal/store"
	"github.com/idilsaglam/qotd/internal/store/jsonstore"
	"github.com/idilsaglam/qotd/internal/store/sqlitestore"
	"github.com/idilsaglam/qotd/internal/ui"
)

// session is one opened store plus the state built on it.
type session struct {
	cfg   *config.Config
	log   *logging.Logger
	repo  *questions.Repository
	state *app.State
	seed  []model.Question
}

// openSession reads the deck and opens the configured backend. It does not
// seed; call load (or let the viewer do it).
func openSession(ctx context.Context, cfg *config.Config, log *logging.Logger) (*session, error) {
	seed, err := dataset.Load(cfg.Data.Path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	var (
		open store.OpenFunc
		pos  position.Store
	)
	switch cfg.Store.Driver {
	case config.DriverJSON:
		open = jsonstore.Opener(cfg.StorePath())
		pos = position.NewFileStore(cfg.State.Path)
	case config.DriverMemory:
		open = store.OpenMemory()
		pos = position.NewMemory()
	default:
		path := cfg.StorePath()
		open = func(ctx context.Context) (store.Store, error) {
			s, err := sqlitestore.Open(ctx, path)
			if err != nil {
				return nil, err
			}
			// settings live next to the questions
			pos = s
			return s, nil
		}
	}

	repo, err := questions.Initialize(ctx, open, log)
	if err != nil {
		return nil, err
	}
	log.Debugw("store opened", "driver", cfg.Store.Driver, "path", cfg.StorePath())

	return &session{
		cfg:   cfg,
		log:   log,
		repo:  repo,
		state: app.New(repo, position.NewSlot(pos, ""), log),
		seed:  seed,
	}, nil
}

// load seeds when needed and restores the saved position.
func (s *session) load(ctx context.Context) error {
	return s.state.Load(ctx, s.seed)
}

func (s *session) viewerOptions() ui.Options {
	return ui.Options{
		Theme:       s.cfg.UI.Theme,
		Markdown:    s.cfg.UI.Markdown,
		HideAnswers: s.cfg.UI.HideAnswers,
		Seed:        s.seed,
		Log:         s.log,
	}
}

func (s *session) Close() error {
	return s.repo.Close()
}
