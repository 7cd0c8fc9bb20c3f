// Package tui is the interactive terminal front end. It owns no game rules:
// every key press that changes state goes through game.Session.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/ui"
)

type keyMap struct {
	Submit  key.Binding
	NewWord key.Binding
	Example key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NewWord, k.Example, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func defaultKeys() keyMap {
	return keyMap{
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		NewWord: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new word")),
		Example: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "example")),
		Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// Option customises New.
type Option func(*Model)

// WithDailyRoot is for sessions on the date-determined root. ctrl+n redraws
// the same word there, so it is labelled as a reset of the guesses.
func WithDailyRoot() Option {
	return func(m *Model) {
		m.keys.NewWord.SetHelp("ctrl+n", "reset")
	}
}

// Model is the Bubble Tea model wrapping one session.
type Model struct {
	session *game.Session
	input   textinput.Model
	keys    keyMap
	help    help.Model

	// Alert for the last rejected submission; cleared on the next edit.
	alertTitle string
	alertMsg   string

	width, height int
}

// New builds a model for s with the input focused.
func New(s *game.Session, opts ...Option) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter your word"
	ti.CharLimit = 64
	ti.Focus()

	h := help.New()
	h.Styles.ShortKey = ui.HelpStyle.Bold(true)
	h.Styles.ShortDesc = ui.HelpStyle
	h.Styles.ShortSeparator = ui.HelpStyle

	m := Model{
		session: s,
		input:   ti,
		keys:    defaultKeys(),
		help:    h,
		width:   80,
		height:  24,
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Run starts an alt-screen program over m and blocks until the player quits.
func Run(m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// Session returns the underlying session.
func (m Model) Session() *game.Session { return m.session }

// Alert returns the current alert title and message, empty when none is shown.
func (m Model) Alert() (title, message string) { return m.alertTitle, m.alertMsg }

// Input returns the text currently typed.
func (m Model) Input() string { return m.input.Value() }

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = msg.Width - 8
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit):
			res := m.session.Submit(m.input.Value())
			m.alertTitle, m.alertMsg = ui.Describe(res, m.session.RootWord())
			if res.Accepted() {
				m.input.SetValue("")
			}
			return m, nil

		case key.Matches(msg, m.keys.NewWord):
			if err := m.session.Restart(); err != nil {
				m.alertTitle, m.alertMsg = "Could not pick a new word", err.Error()
				return m, nil
			}
			m.input.SetValue("")
			m.clearAlert()
			return m, nil

		case key.Matches(msg, m.keys.Example):
			m.session.LoadExample()
			m.input.SetValue("")
			m.clearAlert()
			return m, nil
		}
		m.clearAlert()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) clearAlert() { m.alertTitle, m.alertMsg = "", "" }

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(ui.TitleStyle.Render(m.session.RootWord()))
	if m.session.OnFallback() {
		b.WriteString("\n" + ui.MutedStyle.Render(ui.FallbackNotice))
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.alertTitle != "" {
		b.WriteString(ui.ErrorStyle.Render(m.alertTitle) + "  " + ui.MutedStyle.Render(m.alertMsg))
	}
	b.WriteString("\n\n")

	guesses := m.session.Guesses()
	rows := m.height - 12
	if rows < 3 {
		rows = 3
	}
	if len(guesses) == 0 {
		b.WriteString(ui.MutedStyle.Render("no words yet"))
		b.WriteString("\n")
	}
	for i, g := range guesses {
		if i == rows {
			b.WriteString(ui.MutedStyle.Render(fmt.Sprintf("… %d more", len(guesses)-rows)))
			b.WriteString("\n")
			break
		}
		b.WriteString(ui.GuessLine(g))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(ui.AccentStyle.Render(fmt.Sprintf("Score: %d", m.session.Score())))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return ui.PanelStyle.Width(max(m.width-2, 20)).Render(b.String())
}
