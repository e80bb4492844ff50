package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const countdownInterval = 50 * time.Millisecond

type countdownTickMsg time.Time

// Countdown is a Bubble Tea model that fills a progress bar over the
// duration of an action and exits when it elapses.
type Countdown struct {
	label    string
	total    time.Duration
	start    time.Time
	elapsed  time.Duration
	bar      progress.Model
	finished bool
	aborted  bool
}

// NewCountdown creates a countdown for an action lasting d
func NewCountdown(label string, d time.Duration) Countdown {
	barWidth := min(max(GetTerminalWidth()-20, 20), 50)
	return Countdown{
		label: label,
		total: d,
		start: time.Now(),
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(barWidth),
		),
	}
}

func tickCountdown() tea.Cmd {
	return tea.Tick(countdownInterval, func(t time.Time) tea.Msg {
		return countdownTickMsg(t)
	})
}

// Init implements tea.Model
func (m Countdown) Init() tea.Cmd {
	return tickCountdown()
}

// Update implements tea.Model
func (m Countdown) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case countdownTickMsg:
		m.elapsed = time.Time(msg).Sub(m.start)
		if m.elapsed >= m.total {
			m.elapsed = m.total
			m.finished = true
			return m, tea.Quit
		}
		return m, tickCountdown()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// Percent returns the fraction of the action that has elapsed
func (m Countdown) Percent() float64 {
	if m.total <= 0 {
		return 1
	}
	return min(float64(m.elapsed)/float64(m.total), 1)
}

// Finished reports whether the full duration elapsed
func (m Countdown) Finished() bool {
	return m.finished
}

// View implements tea.Model
func (m Countdown) View() string {
	remaining := (m.total - m.elapsed).Round(100 * time.Millisecond)
	line := fmt.Sprintf("%s  %3.0f%%  %s left", m.bar.ViewAs(m.Percent()), m.Percent()*100, remaining)
	if m.finished {
		line = fmt.Sprintf("%s  %s", m.bar.ViewAs(1), SuccessTitleStyle.Render(SuccessMarker+" done"))
	}
	return ProgressLabelStyle.Render(m.label) + "\n\n" + ProgressLabelStyle.Render(line) + "\n"
}

// RunCountdown renders a countdown on out until d elapses, ctx is done, or
// the user presses q. Keyboard input is read from in when it is non-nil.
func RunCountdown(ctx context.Context, in io.Reader, out io.Writer, label string, d time.Duration) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(out), tea.WithInput(in)}
	_, err := tea.NewProgram(NewCountdown(label, d), opts...).Run()
	return err
}
