package demo

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/dreamops/dreamops/internal/script"
)

// ANSI color constants.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
	colorBgBlue = "\033[44m"
)

// Renderer is a read-only consumer of the demo: it implements Router and
// Notifier against a terminal and renders state transitions as they arrive.
// It never mutates demo state.
type Renderer struct {
	mu    sync.Mutex
	out   io.Writer
	color bool

	lastStep       int
	lastAnalysis   int
	lastResolution int
}

// NewRenderer creates a renderer writing to out. Color is auto-detected when
// out is a terminal and forceColor is unset.
func NewRenderer(out io.Writer, noColor bool) *Renderer {
	color := false
	if !noColor {
		if f, ok := out.(*os.File); ok {
			color = isatty.IsTerminal(f.Fd())
		}
	}
	return &Renderer{out: out, color: color, lastStep: -1, lastAnalysis: -1, lastResolution: -1}
}

func (r *Renderer) colorize(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + colorReset
}

// Navigate implements Router: a terminal demo has no real router, so a
// navigation is rendered as a route-change line and always succeeds.
func (r *Renderer) Navigate(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "    %s\n", r.colorize(colorDim, "⇒ "+path))
	return nil
}

// Notify implements Notifier.
func (r *Renderer) Notify(message string, level Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch level {
	case LevelWarn:
		fmt.Fprintf(r.out, "    %s %s\n", r.colorize(colorYellow, "!"), r.colorize(colorYellow, message))
	default:
		fmt.Fprintf(r.out, "    %s %s\n", r.colorize(colorCyan, "◆"), r.colorize(colorWhite, message))
	}
}

// OnAction renders the action under the cursor.
func (r *Renderer) OnAction(step script.Step, action script.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var detail string
	switch a := action.(type) {
	case script.Click:
		detail = "click " + a.Selector
	case script.Type:
		detail = fmt.Sprintf("type %q into %s", a.Value, a.Selector)
	case script.Highlight:
		detail = "highlight " + a.Selector
	case script.TriggerIncident:
		detail = "incident fires"
	case script.ShowAnalysis:
		detail = "analysis view opens"
	case script.ShowResolution:
		detail = "resolution view opens"
	case script.StartAnalysis:
		detail = "agent begins analysis"
	case script.StartResolution:
		detail = "agent begins resolution"
	}
	if detail != "" {
		fmt.Fprintf(r.out, "    %s\n", r.colorize(colorDim, detail))
	}
}

// OnState renders step headers and phase progress as the state advances.
func (r *Renderer) OnState(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.Active && s.StepIndex != r.lastStep {
		r.lastStep = s.StepIndex
		header := fmt.Sprintf("  Step %d  (%.0f%%)  ", s.StepIndex+1, s.Progress)
		if r.color {
			fmt.Fprintf(r.out, "\n%s%s%s\n", colorBold+colorBgBlue+colorWhite, header, colorReset)
		} else {
			fmt.Fprintf(r.out, "\n=== Step %d (%.0f%%) ===\n", s.StepIndex+1, s.Progress)
		}
	}

	if s.Analyzing && s.AnalysisStep != r.lastAnalysis {
		r.lastAnalysis = s.AnalysisStep
		r.phaseTick("analyzing", s.AnalysisStep, maxAnalysisSteps)
	}
	if s.Resolving && s.ResolutionStep != r.lastResolution {
		r.lastResolution = s.ResolutionStep
		r.phaseTick("resolving", s.ResolutionStep, maxResolutionSteps)
	}

	if s.CompletedAt != nil {
		fmt.Fprintf(r.out, "\n  %s\n", r.colorize(colorBold+colorGreen, "✓ Demo complete"))
	}
}

func (r *Renderer) phaseTick(label string, step, max int) {
	bar := ""
	for i := 0; i < max; i++ {
		if i < step {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	fmt.Fprintf(r.out, "    %s %s %d/%d\n", r.colorize(colorGreen, bar), r.colorize(colorDim, label), step, max)
}
