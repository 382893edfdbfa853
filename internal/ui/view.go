package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/qotd/internal/app"
	"github.com/idilsaglam/qotd/internal/logging"
	"github.com/idilsaglam/qotd/internal/model"
)

// Options configure the viewer.
type Options struct {
	Theme       string
	Markdown    bool
	HideAnswers bool
	Seed        []model.Question
	Log         *logging.Logger
}

type phase int

const (
	phaseLoading phase = iota
	phaseLoaded
	phaseFailed
)

// loadedMsg reports the end of State.Load.
type loadedMsg struct{ err error }

// actionMsg reports the end of a user action run as a command.
type actionMsg struct {
	err    error
	moved  bool
	notice string
}

// Model is the Bubble Tea model of the flashcard viewer.
type Model struct {
	ctx   context.Context
	state *app.State
	seed  []model.Question
	log   *logging.Logger

	theme   Theme
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	markdown bool
	md       *glamour.TermRenderer
	mdWidth  int

	phase       phase
	busy        bool // an action is in flight; input is ignored until it lands
	hideAnswers bool
	revealed    bool
	status      string
	statusErr   bool
	loadErr     error

	width, height int

	copyText func(string) error
}

// New builds the viewer for state. Load runs from Init.
func New(ctx context.Context, state *app.State, opt Options) Model {
	if opt.Log == nil {
		opt.Log = logging.Nop()
	}
	theme := ThemeFor(opt.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Accent

	h := help.New()
	h.Styles.ShortKey = theme.Muted
	h.Styles.ShortDesc = theme.Muted
	h.Styles.FullKey = theme.Muted
	h.Styles.FullDesc = theme.Muted

	return Model{
		ctx:         ctx,
		state:       state,
		seed:        opt.Seed,
		log:         opt.Log.WithComponent("ui"),
		theme:       theme,
		keys:        defaultKeys(),
		help:        h,
		spinner:     sp,
		markdown:    opt.Markdown,
		hideAnswers: opt.HideAnswers,
		copyText:    clipboard.WriteAll,
	}
}

// Run starts the viewer and blocks until the user quits.
func Run(ctx context.Context, state *app.State, opt Options) error {
	p := tea.NewProgram(New(ctx, state, opt), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.loadErr != nil {
		return fm.loadErr
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) load() tea.Cmd {
	state, ctx, seed := m.state, m.ctx, m.seed
	return func() tea.Msg {
		return loadedMsg{err: state.Load(ctx, seed)}
	}
}

// act runs fn as a command and marks the model busy until it lands.
func (m Model) act(fn func(ctx context.Context) actionMsg) (Model, tea.Cmd) {
	m.busy = true
	m.status = ""
	ctx := m.ctx
	return m, func() tea.Msg { return fn(ctx) }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ensureRenderer()
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		if msg.err != nil {
			m.phase = phaseFailed
			m.loadErr = msg.err
			m.log.WithError(msg.err).Error("load failed")
			return m, nil
		}
		m.phase = phaseLoaded
		return m, nil

	case actionMsg:
		m.busy = false
		if msg.moved {
			m.revealed = false
		}
		switch {
		case msg.err != nil:
			m.status, m.statusErr = msg.err.Error(), true
			m.log.WithError(msg.err).Warn("action failed")
		case msg.notice != "":
			m.status, m.statusErr = msg.notice, false
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.phase != phaseLoaded || m.busy {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.state
	switch {
	case key.Matches(msg, m.keys.Next):
		return m.act(func(ctx context.Context) actionMsg {
			return actionMsg{err: state.Next(ctx), moved: true}
		})
	case key.Matches(msg, m.keys.Previous):
		return m.act(func(ctx context.Context) actionMsg {
			return actionMsg{err: state.Previous(ctx), moved: true}
		})
	case key.Matches(msg, m.keys.Toggle):
		return m.act(func(ctx context.Context) actionMsg {
			_, err := state.Toggle(ctx)
			return actionMsg{err: err}
		})
	case key.Matches(msg, m.keys.Reveal):
		m.revealed = !m.revealed
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		q, ok := state.Current()
		if !ok {
			return m, nil
		}
		copyText := m.copyText
		return m.act(func(context.Context) actionMsg {
			if err := copyText(q.Answer); err != nil {
				return actionMsg{err: fmt.Errorf("copy: %w", err)}
			}
			return actionMsg{notice: "answer copied"}
		})
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

func (m *Model) ensureRenderer() {
	if !m.markdown {
		return
	}
	w := m.cardWidth() - 4
	if m.md != nil && m.mdWidth == w {
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme.Markdown),
		glamour.WithWordWrap(w),
	)
	if err != nil {
		m.log.WithError(err).Warn("markdown renderer unavailable")
		m.md = nil
		return
	}
	m.md, m.mdWidth = r, w
}

func (m Model) cardWidth() int {
	w := 72
	if m.width > 0 && m.width-2 < w {
		w = m.width - 2
	}
	if w < 24 {
		w = 24
	}
	return w
}

func (m Model) View() string {
	switch m.phase {
	case phaseLoading:
		return m.theme.Frame().Render(m.spinner.View() + " Loading questions...")
	case phaseFailed:
		return m.theme.Frame().Render(
			m.theme.Error.Render("Could not load questions") + "\n" +
				m.theme.Muted.Render(m.loadErr.Error()) + "\n\n" +
				m.theme.Muted.Render("press q to quit"))
	}

	q, ok := m.state.Current()
	if !ok {
		return m.theme.Frame().Render(m.theme.Muted.Render("No questions to show.") + "\n" + m.help.View(m.keys))
	}

	var b strings.Builder
	b.WriteString(m.card(q))
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) card(q model.Question) string {
	width := m.cardWidth()
	inner := width - 4

	title := m.theme.Title.Render("Question of the Day")
	check := m.theme.Box(q.Completed) + " Mark as Completed"
	gap := inner - lipgloss.Width(title) - lipgloss.Width(check)
	if gap < 1 {
		gap = 1
	}
	header := title + strings.Repeat(" ", gap) + check

	question := lipgloss.NewStyle().Bold(true).Width(inner).Render(q.Question)
	if q.Completed {
		question = m.theme.Done.Width(inner).Render(q.Question)
	}

	lines := []string{header, m.theme.Muted.Render(strings.Repeat("─", inner)), question, ""}
	lines = append(lines, m.answer(q, inner))

	return m.theme.Frame().Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) answer(q model.Question, width int) string {
	if m.hideAnswers && !m.revealed {
		return m.theme.Muted.Render("press enter to show the answer")
	}
	if m.md != nil {
		out, err := m.md.Render(q.Answer)
		if err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return lipgloss.NewStyle().Width(width).Render(q.Answer)
}

func (m Model) footer() string {
	total := m.state.Len()
	done := m.state.Completed()

	nav := fmt.Sprintf(" %s   %s   %s",
		m.theme.Accent.Render("← Previous"),
		m.theme.Muted.Render(fmt.Sprintf("%d/%d", m.state.Index()+1, total)),
		m.theme.Accent.Render("Next →"),
	)
	count := fmt.Sprintf(" %s  %s",
		m.theme.Success.Render(fmt.Sprintf("%d questions completed", done)),
		m.theme.Muted.Render(ProgressBar(done, total, 20)),
	)

	lines := []string{nav, count}
	if m.status != "" {
		style := m.theme.Muted
		if m.statusErr {
			style = m.theme.Error
		}
		lines = append(lines, " "+style.Render(m.status))
	}
	lines = append(lines, " "+m.help.View(m.keys))
	return strings.Join(lines, "\n")
}
