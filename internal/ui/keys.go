package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Previous key.Binding
	Toggle   key.Binding
	Reveal   key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/n", "next")),
		Previous: key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/p", "previous")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "mark completed")),
		Reveal:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show answer")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy answer")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Previous, k.Next},
		{k.Toggle, k.Reveal, k.Copy},
		{k.Help, k.Quit},
	}
}
