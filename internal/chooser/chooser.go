// Package chooser presents an ordered list of labels in an
// interactive prompt and reports the one the user picks. It is used
// when a password search is ambiguous.
package chooser

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels the prompt. Callers
// treat it as a user-initiated abort, not a failure worth reporting.
var ErrAborted = errors.New("selection aborted")

type item string

func (i item) Title() string       { return string(i) }
func (i item) Description() string { return "" }
func (i item) FilterValue() string { return string(i) }

// Model is the Bubble Tea model behind the prompt. Exported so tests
// can drive Update directly.
type Model struct {
	list    list.Model
	choice  string
	chosen  bool
	aborted bool
}

// NewModel builds the prompt model over the given labels, in order.
// Duplicate labels are shown as separate choices.
func NewModel(labels []string) *Model {
	items := make([]list.Item, len(labels))
	for i, label := range labels {
		items[i] = item(label)
	}
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	height := len(labels) + 6
	if height > 20 {
		height = 20
	}
	l := list.New(items, delegate, 60, height)
	l.Title = "Select a password"
	l.Styles.Title = lipgloss.NewStyle().Bold(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	return &Model{list: l}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		if msg.Height < m.list.Height() {
			m.list.SetHeight(msg.Height)
		}
	case tea.KeyMsg:
		// Global keys are handled ahead of the list so they are not
		// swallowed while filtering is enabled; while a filter is
		// being typed only ctrl+c stays global.
		if msg.String() == "ctrl+c" {
			m.aborted = true
			return m, tea.Quit
		}
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "enter":
				if it, ok := m.list.SelectedItem().(item); ok {
					m.choice = string(it)
					m.chosen = true
				}
				return m, tea.Quit
			case "q", "esc":
				m.aborted = true
				return m, tea.Quit
			}
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	return m.list.View()
}

// Choice returns the chosen label, if any.
func (m *Model) Choice() (string, bool) {
	return m.choice, m.chosen
}

// Aborted reports whether the user cancelled the prompt.
func (m *Model) Aborted() bool {
	return m.aborted
}

// Chooser runs the prompt on the controlling terminal.
type Chooser struct{}

// New returns a terminal-backed chooser.
func New() *Chooser {
	return &Chooser{}
}

// Choose blocks for user input and returns the selected label. The
// prompt renders on stderr so stdout stays clean for entry output.
// Cancellation returns ErrAborted.
func (c *Chooser) Choose(labels []string) (string, error) {
	if len(labels) == 0 {
		return "", errors.New("no choices to present")
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("cannot prompt for a choice: stdin is not a terminal")
	}
	m := NewModel(labels)
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running chooser: %w", err)
	}
	fm := final.(*Model)
	if fm.aborted || !fm.chosen {
		return "", ErrAborted
	}
	return fm.choice, nil
}
