package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/idilsaglam/qotd/internal/app"
	"github.com/idilsaglam/qotd/internal/model"
)

// browseItem adapts a question to bubbles/list.Item. pos is its place in
// the ordered list, which survives filtering.
type browseItem struct {
	q   model.Question
	pos int
}

func (i browseItem) Title() string       { return i.q.Question }
func (i browseItem) Description() string { return i.q.Answer }
func (i browseItem) FilterValue() string { return i.q.Question }

// browseDelegate renders one line per question.
type browseDelegate struct {
	theme   Theme
	current func() int
}

func (d browseDelegate) Height() int                         { return 1 }
func (d browseDelegate) Spacing() int                        { return 0 }
func (d browseDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d browseDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(browseItem)
	if !ok {
		return
	}
	t := d.theme

	prefix := "  "
	if index == m.Index() {
		prefix = t.Accent.Render("> ")
	}
	text := runewidth.Truncate(it.q.Question, m.Width()-12, "...")
	if it.q.Completed {
		text = t.Done.Render(text)
	}
	here := " "
	if it.pos == d.current() {
		here = t.Accent.Render("•")
	}
	fmt.Fprintf(w, "%s%s %s %s %s", prefix, here, t.Muted.Render(fmt.Sprintf("%3d.", it.pos+1)), t.Box(it.q.Completed), text)
}

type browseKeys struct {
	Jump   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

// Browser is a filterable list of every question. Enter moves the viewer
// position there; space marks completion without moving.
type Browser struct {
	ctx    context.Context
	state  *app.State
	theme  Theme
	keys   browseKeys
	list   list.Model
	status string
	jumped bool
}

// NewBrowser builds the picker over an already loaded state.
func NewBrowser(ctx context.Context, state *app.State, opt Options) Browser {
	theme := ThemeFor(opt.Theme)
	keys := browseKeys{
		Jump:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open here")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "mark completed")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}

	l := list.New(browseItems(state.Items()), browseDelegate{theme: theme, current: state.Index}, 80, 20)
	l.Title = "Questions"
	l.Styles.Title = theme.Title
	l.Styles.HelpStyle = theme.Muted
	l.Styles.PaginationStyle = theme.Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("question", "questions")
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{keys.Jump, keys.Toggle} }
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys
	l.Select(state.Index())

	return Browser{ctx: ctx, state: state, theme: theme, keys: keys, list: l}
}

// Browse runs the picker and reports whether the position changed.
func Browse(ctx context.Context, state *app.State, opt Options) (bool, error) {
	p := tea.NewProgram(NewBrowser(ctx, state, opt), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	b, _ := final.(Browser)
	return b.jumped, nil
}

func browseItems(qs []model.Question) []list.Item {
	out := make([]list.Item, 0, len(qs))
	for i, q := range qs {
		out = append(out, browseItem{q: q, pos: i})
	}
	return out
}

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.list.SetSize(msg.Width-4, msg.Height-4)
		return b, nil
	case tea.KeyMsg:
		// While typing a filter every key belongs to the list.
		if b.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, b.keys.Quit) && b.list.FilterState() == list.Unfiltered:
			return b, tea.Quit
		case key.Matches(msg, b.keys.Jump):
			it, ok := b.list.SelectedItem().(browseItem)
			if !ok {
				return b, nil
			}
			if err := b.state.Goto(b.ctx, it.pos); err != nil {
				b.status = err.Error()
				return b, nil
			}
			b.jumped = true
			return b, tea.Quit
		case key.Matches(msg, b.keys.Toggle):
			it, ok := b.list.SelectedItem().(browseItem)
			if !ok {
				return b, nil
			}
			if err := b.state.SetCompleted(b.ctx, it.q.ID, !it.q.Completed); err != nil {
				b.status = err.Error()
				return b, nil
			}
			it.q.Completed = !it.q.Completed
			cmd := b.list.SetItem(it.pos, it)
			b.status = fmt.Sprintf("%d questions completed", b.state.Completed())
			return b, cmd
		}
	}
	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

func (b Browser) View() string {
	out := b.list.View()
	if b.status != "" {
		out += "\n" + b.theme.Muted.Render(b.status)
	}
	return b.theme.Frame().Render(out)
}
