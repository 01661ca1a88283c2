package main

import (
	"io"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type confirmKeyMap struct {
	Yes key.Binding
	No  key.Binding
}

var confirmKeys = confirmKeyMap{
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "enter", "esc", "ctrl+c"),
		key.WithHelp("n", "no"),
	),
}

// confirmModel asks a yes/no question. Anything but an explicit yes is a no.
type confirmModel struct {
	question  string
	confirmed bool
	answered  bool
}

func newConfirmModel(question string) confirmModel {
	return confirmModel{question: question}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, confirmKeys.Yes):
		m.confirmed = true
		m.answered = true
		return m, tea.Quit
	case key.Matches(keyMsg, confirmKeys.No):
		m.answered = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.answered {
		answer := "no"
		if m.confirmed {
			answer = "yes"
		}
		return headerStyle.Render(m.question) + " " + mutedStyle.Render(answer) + "\n"
	}
	return headerStyle.Render(m.question) + " " + mutedStyle.Render("(y/N)")
}

// confirm runs the prompt on the given terminal streams.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	p := tea.NewProgram(newConfirmModel(question), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(confirmModel)
	return ok && m.confirmed, nil
}
