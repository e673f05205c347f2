package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/superchargejs/cli/internal/scaffold"
)

var (
	pendingMark = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Render("→")
	doneMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✔")
	failMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("✖")
)

// stepReporter prints one line per step transition.
type stepReporter struct {
	w io.Writer
}

func newStepReporter(w io.Writer) *stepReporter {
	return &stepReporter{w: w}
}

func (r *stepReporter) StepStarted(step scaffold.Step) {
	fmt.Fprintf(r.w, "  %s %s\n", pendingMark, step.Title)
}

func (r *stepReporter) StepSucceeded(step scaffold.Step) {
	fmt.Fprintf(r.w, "  %s %s\n", doneMark, step.Title)
}

func (r *stepReporter) StepFailed(step scaffold.Step, _ error) {
	fmt.Fprintf(r.w, "  %s %s\n", failMark, step.Title)
}
