package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/qotd/internal/config"
	"github.com/idilsaglam/qotd/internal/logging"
	"github.com/idilsaglam/qotd/internal/store"
	"github.com/idilsaglam/qotd/internal/ui"
)

// Options carry the process streams so commands can be exercised in tests.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// exitError carries a specific exit code (2 = usage / not found).
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

// Run executes the command line and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RunContext(ctx, args, Options{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr})
}

// RunContext is Run with explicit context and streams.
func RunContext(ctx context.Context, args []string, opt Options) int {
	root := NewRootCommand(opt)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	ui.Fail(opt.Stderr, err.Error())

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

// env is shared by every command of one invocation.
type env struct {
	opt        Options
	configPath string
}

// NewRootCommand builds the qotd command tree.
func NewRootCommand(opt Options) *cobra.Command {
	e := &env{opt: opt}

	root := &cobra.Command{
		Use:   "qotd",
		Short: "Question of the Day flashcards",
		Long: `qotd steps through a deck of questions and answers, remembering which
ones you marked completed and where you stopped.

Run without a subcommand to open the interactive viewer.`,
		Example: `  qotd
  qotd ls --group
  qotd done 2
  qotd goto 5
  qotd --data deck.xlsx --store json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runViewer(cmd)
		},
	}
	root.SetIn(opt.Stdin)
	root.SetOut(opt.Stdout)
	root.SetErr(opt.Stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: 2, err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&e.configPath, "config", "", "config file (default ~/.config/qotd/config.yaml)")
	pf.String("store", "", "store driver: sqlite, json or memory")
	pf.String("db", "", "path of the question store")
	pf.String("data", "", "seed deck: .yaml, .json, .csv or .xlsx (default: built-in deck)")
	pf.String("theme", "", "color theme: classic, neon or mono")

	root.AddCommand(
		e.newListCommand(),
		e.newDoneCommand(true),
		e.newDoneCommand(false),
		e.newStatsCommand(),
		e.newGotoCommand(),
		e.newResetCommand(),
		e.newBrowseCommand(),
	)
	return root
}

func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageErrorf("unknown subcommand: %s", args[0])
	}
	return nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("usage: %s", usage)
		}
		return nil
	}
}

// setup loads config and the logger and applies the print theme.
func (e *env) setup(cmd *cobra.Command) (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load(e.configPath, cmd.Flags())
	if err != nil {
		return nil, nil, &exitError{code: 2, err: err}
	}
	ui.SetTheme(cfg.UI.Theme)

	log, err := logging.New(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, log, nil
}

// withSession opens a session, runs fn and closes everything.
func (e *env) withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	cfg, log, err := e.setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	s, err := openSession(ctx, cfg, log)
	if err != nil {
		if errors.Is(err, store.ErrStorageUnavailable) {
			log.WithError(err).Error("cannot open store")
		}
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			log.WithError(cerr).Warn("close store")
		}
	}()
	return fn(ctx, s)
}

func (e *env) runViewer(cmd *cobra.Command) error {
	return e.withSession(cmd, func(ctx context.Context, s *session) error {
		s.log.Infow("viewer started", "driver", s.cfg.Store.Driver)
		return ui.Run(ctx, s.state, ui.Options{
			Theme:       s.cfg.UI.Theme,
			Markdown:    s.cfg.UI.Markdown,
			HideAnswers: s.cfg.UI.HideAnswers,
			Seed:        s.seed,
			Log:         s.log,
		})
	})
}
