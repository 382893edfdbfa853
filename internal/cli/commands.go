package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/idilsaglam/qotd/internal/model"
	"github.com/idilsaglam/qotd/internal/navigator"
	"github.com/idilsaglam/qotd/internal/store"
	"github.com/idilsaglam/qotd/internal/ui"
)

// -------------- subcommands ----------------

func (e *env) newListCommand() *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List questions with their completion state",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.load(ctx); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				items := s.state.Items()
				width := termWidth(out) - 14

				lines := []string{statsHeader(items), ui.Current().Muted.Render(ui.ProgressBar(model.CountCompleted(items), len(items), 28)), ""}
				if group {
					lines = append(lines, groupLines(items, s.state.Index(), width)...)
				} else {
					lines = append(lines, flatLines(items, s.state.Index(), width)...)
				}
				lines = append(lines, "", ui.Current().Muted.Render("Tip: mark one with `qotd done <id>`"))
				ui.Panel(out, lines)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func (e *env) newDoneCommand(completed bool) *cobra.Command {
	use, short, msg := "done <id>", "Mark a question completed", "marked completed"
	if !completed {
		use, short, msg = "undone <id>", "Clear the completed mark of a question", "marked not completed"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  exactArgs(1, "qotd "+use),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return usageErrorf("%s: not a number: %s", cmd.Name(), args[0])
			}
			return e.withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.load(ctx); err != nil {
					return err
				}
				if err := s.repo.SetCompleted(ctx, id, completed); err != nil {
					if errors.Is(err, store.ErrNotFound) {
						return usageErrorf("no question with id %d (run `qotd ls` to see ids)", id)
					}
					return err
				}
				n, err := s.repo.CountCompleted(ctx)
				if err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("%s (%d questions completed)", msg, n))
				return nil
			})
		},
	}
}

func (e *env) newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how many questions are completed",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.load(ctx); err != nil {
					return err
				}
				t := ui.Current()
				total, done := s.state.Len(), s.state.Completed()
				lines := []string{
					statsHeader(s.state.Items()),
					t.Muted.Render(ui.ProgressBar(done, total, 28)),
					fmt.Sprintf("%d questions completed", done),
				}
				if total > 0 {
					lines = append(lines, t.Muted.Render(fmt.Sprintf("current: %d/%d", s.state.Index()+1, total)))
				}
				ui.Panel(cmd.OutOrStdout(), lines)
				return nil
			})
		},
	}
}

func (e *env) newGotoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "goto <n>",
		Short: "Set the viewer position (1-based)",
		Args:  exactArgs(1, "qotd goto <n>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return usageErrorf("goto: not a number: %s", args[0])
			}
			return e.withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.load(ctx); err != nil {
					return err
				}
				if err := s.state.Goto(ctx, n-1); err != nil {
					if errors.Is(err, navigator.ErrOutOfRange) {
						return usageErrorf("index out of range: have %d, got %d", s.state.Len(), n)
					}
					return err
				}
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("now at question %d/%d", n, s.state.Len()))
				return nil
			})
		},
	}
}

// confirmReset asks before clearing progress. Swapped in tests.
var confirmReset = func(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Reset").
			Negative("Keep").
			Value(&ok),
	)).Run()
	return ok, err
}

func (e *env) newResetCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear every completed mark",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				if !isTerminal(cmd.InOrStdin()) {
					return usageErrorf("reset: stdin is not a terminal, pass --yes to confirm")
				}
				ok, err := confirmReset("Clear all completion marks?")
				if err != nil {
					return fmt.Errorf("confirm: %w", err)
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Current().Muted.Render("nothing changed"))
					return nil
				}
			}
			return e.withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.load(ctx); err != nil {
					return err
				}
				n, err := s.repo.Reset(ctx)
				if err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("reset %d questions", n))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (e *env) newBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Pick a question from a filterable list",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.load(ctx); err != nil {
					return err
				}
				opt := s.viewerOptions()
				jumped, err := ui.Browse(ctx, s.state, opt)
				if err != nil || !jumped {
					return err
				}
				return ui.Run(ctx, s.state, opt)
			})
		},
	}
}

// -------------- rendering helpers --------------

func statsHeader(items []model.Question) string {
	t := ui.Current()
	d := model.CountCompleted(items)
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Questions"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), len(items)-d,
		t.Accent.Render("Total"), len(items),
	)
}

func flatLines(items []model.Question, current, width int) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no questions")}
	}
	out := make([]string, 0, len(items))
	for i, q := range items {
		marker := "  "
		if i == current {
			marker = t.Accent.Render("> ")
		}
		id := t.Muted.Render(fmt.Sprintf("%3d.", q.ID))
		title := runewidth.Truncate(q.Question, width, "...")
		if q.Completed {
			title = t.Done.Render(title)
		}
		out = append(out, fmt.Sprintf("%s%s %s %s", marker, id, t.Box(q.Completed), title))
	}
	return out
}

// groupLines lists pending questions first, then completed ones. The
// current marker follows the question, not the printed row.
func groupLines(items []model.Question, current, width int) []string {
	t := ui.Current()
	var pend, done []model.Question
	pendCur, doneCur := -1, -1
	for i, q := range items {
		if q.Completed {
			if i == current {
				doneCur = len(done)
			}
			done = append(done, q)
		} else {
			if i == current {
				pendCur = len(pend)
			}
			pend = append(pend, q)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend, pendCur, width)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Completed"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done, doneCur, width)...)
	}
	return lines
}

// termWidth returns the terminal width behind w, or 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 20 {
			return cols
		}
	}
	return 80
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
