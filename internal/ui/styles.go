package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	AccentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	CountStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Faint(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	HelpStyle    = lipgloss.NewStyle().Faint(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// OK prints a success line.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, SuccessStyle.Render("✔ "+msg))
}

// Fail prints an error line.
func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, ErrorStyle.Render("✖ "+msg))
}

// Panel prints lines inside a rounded border.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, PanelStyle.Render(strings.Join(lines, "\n")))
}

// GuessLine renders one accepted word with its letter count.
func GuessLine(word string) string {
	return fmt.Sprintf("%s %s", CountStyle.Render(fmt.Sprintf("%2d", len([]rune(word)))), word)
}
