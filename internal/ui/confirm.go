package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmPhrase is what the user must type to let a confirmed action proceed
const ConfirmPhrase = "yes"

// ConfirmAction displays a warning box on out and reads one line from in.
// Returns true only if the user typed ConfirmPhrase (case-insensitive).
func ConfirmAction(in io.Reader, out io.Writer, title string, warnings []string) bool {
	width := GetTerminalWidth()

	titleLine := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true).
		Render(fmt.Sprintf("   %s  CONFIRM  ─  %s", WarningMarker, title))
	lines := []string{"", titleLine, ""}

	bulletStyle := lipgloss.NewStyle().Foreground(TextColor)
	for _, warning := range warnings {
		lines = append(lines, bulletStyle.Render("   • "+warning))
	}
	lines = append(lines, "")

	_, _ = fmt.Fprintln(out, WarningBoxStyle(width).Render(strings.Join(lines, "\n")))
	_, _ = fmt.Fprintln(out)

	promptStyle := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true)
	_, _ = fmt.Fprint(out, promptStyle.Render(fmt.Sprintf("Type %q and press Enter to send: ", ConfirmPhrase)))

	input, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && input == "" {
		_, _ = fmt.Fprintln(out)
		return false
	}

	_, _ = fmt.Fprintln(out)
	if strings.EqualFold(strings.TrimSpace(input), ConfirmPhrase) {
		return true
	}

	cancelStyle := lipgloss.NewStyle().Foreground(MutedColor)
	_, _ = fmt.Fprintln(out, cancelStyle.Render("  Action cancelled."))
	return false
}
