package demo

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dreamops/dreamops/internal/script"
)

// Control-surface validation errors.
var (
	ErrNotActive     = errors.New("demo is not active")
	ErrAlreadyPaused = errors.New("demo is already paused")
	ErrNotPaused     = errors.New("demo is not paused")
	ErrInvalidSpeed  = errors.New("speed must be greater than zero")
)

// Level classifies a notification.
type Level string

// Notification levels.
const (
	LevelInfo Level = "info"
	LevelWarn Level = "warn"
)

// Router receives navigation requests from the demo. A navigation failure is
// never fatal to the demo: the driver reports it and keeps going.
type Router interface {
	Navigate(path string) error
}

// Notifier receives transient user-visible messages.
type Notifier interface {
	Notify(message string, level Level)
}

type noopRouter struct{}

func (noopRouter) Navigate(string) error { return nil }

type noopNotifier struct{}

func (noopNotifier) Notify(string, Level) {}

// Options configures a Driver. Zero-value fields get working defaults: real
// timers, no-op router and notifier, the default slog logger.
type Options struct {
	Scheduler Scheduler
	Router    Router
	Notifier  Notifier

	// OnAction is called exactly once per performed action, before the
	// action's advance timer is armed. Called with the driver lock held;
	// it must not call back into the Driver.
	OnAction func(step script.Step, action script.Action)

	// OnState receives a state snapshot after every transition. Same
	// re-entrance rule as OnAction.
	OnState func(State)

	Logger *slog.Logger
}

// timerLine is one of the driver's three independent timer slots. The
// generation counter makes a cancelled timer's callback a no-op even when
// Stop misses a callback already racing for the driver lock.
type timerLine struct {
	timer Timer
	gen   uint64
}

func (l *timerLine) cancel() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.gen++
}

func (l *timerLine) armed() bool { return l.timer != nil }

// Driver interprets a script into side effects and reducer events on a
// timer. All state mutation funnels through dispatch under one mutex, so the
// reducer is always invoked sequentially, and each timer line has at most
// one outstanding timer at any instant.
//
// The three lines are independent: the step/action line is cancelled and
// restarted whenever its inputs change (active, paused, cursor, speed), but
// a phase tick never restarts the action delay and an action advance never
// restarts a pending phase tick.
type Driver struct {
	mu    sync.Mutex
	sc    script.Script
	red   reducer
	sched Scheduler
	opts  Options
	log   *slog.Logger

	state State
	runID string

	done       chan struct{}
	doneClosed bool

	actionLine     timerLine
	analysisLine   timerLine
	resolutionLine timerLine

	// lastEffectStep/Action record the position whose side effect already
	// ran, so re-evaluations (pause/resume, speed change) never replay an
	// effect for the same position.
	lastEffectStep   int
	lastEffectAction int

	// resolutionHandoffDone stops the resolution line from dispatching the
	// outer-script advance more than once per resolution phase.
	resolutionHandoffDone bool

	// eventHook observes every dispatched event. Test seam; nil in
	// production.
	eventHook func(Event)
}

// NewDriver builds a driver for a validated script.
func NewDriver(sc script.Script, opts Options) (*Driver, error) {
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewScheduler()
	}
	if opts.Router == nil {
		opts.Router = noopRouter{}
	}
	if opts.Notifier == nil {
		opts.Notifier = noopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	closed := make(chan struct{})
	close(closed)

	return &Driver{
		sc:               sc,
		red:              reducer{stepCount: sc.StepCount()},
		sched:            opts.Scheduler,
		opts:             opts,
		log:              opts.Logger,
		state:            initialState(false),
		done:             closed,
		doneClosed:       true,
		lastEffectStep:   -1,
		lastEffectAction: -1,
	}, nil
}

// Start begins a fresh run, discarding any run in progress. It returns the
// new run's ID.
func (d *Driver) Start() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cancelAllLines()
	d.closeDoneLocked() // wake waiters of a discarded run

	d.runID = uuid.NewString()
	d.done = make(chan struct{})
	d.doneClosed = false
	d.lastEffectStep = -1
	d.lastEffectAction = -1
	d.resolutionHandoffDone = false

	d.dispatch(startEvent{})
	d.log.Info("demo started", "run_id", d.runID, "script", d.sc.Name, "steps", d.sc.StepCount())
	d.syncLines()
	return d.runID
}

// Stop ends the current run and resets state.
func (d *Driver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.state.Active {
		return ErrNotActive
	}
	d.dispatch(stopEvent{})
	d.cancelAllLines()
	d.closeDoneLocked()
	d.log.Info("demo stopped", "run_id", d.runID)
	return nil
}

// Pause suspends the step/action loop. The analysis and resolution phase
// loops keep ticking; only outer-script advancement halts.
func (d *Driver) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.state.Active {
		return ErrNotActive
	}
	if d.state.Paused {
		return ErrAlreadyPaused
	}
	d.dispatch(pauseEvent{})
	d.rearmActionLine()
	return nil
}

// Resume restarts the step/action loop. The pending per-action delay is not
// resumed at partial progress; it restarts in full.
func (d *Driver) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.state.Active {
		return ErrNotActive
	}
	if !d.state.Paused {
		return ErrNotPaused
	}
	d.dispatch(resumeEvent{})
	d.rearmActionLine()
	return nil
}

// SetSpeed replaces the playback speed multiplier (> 0, larger is faster).
// Outstanding delays on all three lines are cancelled and restarted in full
// at the new speed.
func (d *Driver) SetSpeed(v float64) error {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrInvalidSpeed
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dispatch(setSpeedEvent{speed: v})
	if d.state.Active {
		d.rearmActionLine()
		d.analysisLine.cancel()
		d.resolutionLine.cancel()
		d.ensureAnalysisLine()
		d.ensureResolutionLine()
	}
	return nil
}

// CurrentStep returns the step under the cursor, or false when no run is
// active.
func (d *Driver) CurrentStep() (script.Step, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.state.Active {
		return script.Step{}, false
	}
	return d.sc.Steps[d.state.StepIndex], true
}

// StepCount returns the script's step count.
func (d *Driver) StepCount() int { return d.sc.StepCount() }

// Snapshot returns an immutable copy of the current state.
func (d *Driver) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.clone()
}

// RunID returns the ID of the current (or most recent) run.
func (d *Driver) RunID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runID
}

// Done returns a channel closed when the current run completes or is
// stopped. Before any run it is already closed.
func (d *Driver) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

// dispatch applies one event through the reducer. Caller holds d.mu.
func (d *Driver) dispatch(ev Event) {
	if d.eventHook != nil {
		d.eventHook(ev)
	}
	d.state = d.red.apply(d.state, ev)
	if d.opts.OnState != nil {
		d.opts.OnState(d.state.clone())
	}
}

func (d *Driver) cancelAllLines() {
	d.actionLine.cancel()
	d.analysisLine.cancel()
	d.resolutionLine.cancel()
}

func (d *Driver) closeDoneLocked() {
	if !d.doneClosed {
		close(d.done)
		d.doneClosed = true
	}
}

// scaled converts a base millisecond delay into a speed-adjusted duration.
func (d *Driver) scaled(ms int) time.Duration {
	return time.Duration(float64(ms) / d.state.Speed * float64(time.Millisecond))
}

// onTimer runs a timer callback if its line generation is still current. A
// stale generation means the timer was cancelled or superseded after firing;
// absorbing it here is what guarantees at-most-one advancement per armed
// timer.
func (d *Driver) onTimer(line *timerLine, gen uint64, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if line.gen != gen {
		return
	}
	line.timer = nil
	fn()
}

// syncLines restarts the step/action line and brings the phase lines in
// sync with the phase flags without disturbing a pending phase tick. Used
// after transitions that may have moved the cursor or started a phase.
func (d *Driver) syncLines() {
	d.rearmActionLine()
	d.ensureAnalysisLine()
	d.ensureResolutionLine()
}

// rearmActionLine re-evaluates the step/action loop: cancel any pending
// advance, then look at the cursor and either perform the current action and
// arm its advance, arm a step advance, or complete the demo. Caller holds
// d.mu.
func (d *Driver) rearmActionLine() {
	d.actionLine.cancel()
	if !d.state.Active || d.state.Paused {
		return
	}

	step := d.sc.Steps[d.state.StepIndex]
	if d.state.ActionIndex >= len(step.Actions) {
		if d.state.StepIndex < d.sc.StepCount()-1 {
			gen := d.actionLine.gen
			d.actionLine.timer = d.sched.AfterFunc(d.scaled(stepAdvanceDelayMS), func() {
				d.onTimer(&d.actionLine, gen, func() {
					d.dispatch(nextStepEvent{})
					d.syncLines()
				})
			})
			return
		}
		d.completeLocked()
		return
	}

	action := step.Actions[d.state.ActionIndex]
	d.performEffect(step, action)

	delayMS := action.DelayMS()
	if delayMS == 0 {
		delayMS = script.DefaultActionDelayMS
	}
	gen := d.actionLine.gen
	d.actionLine.timer = d.sched.AfterFunc(d.scaled(delayMS), func() {
		d.onTimer(&d.actionLine, gen, func() {
			d.dispatch(nextActionEvent{})
			d.syncLines()
		})
	})
}

// performEffect runs an action's side effect exactly once per script
// position. Navigation failure is reported and swallowed; the loop proceeds
// as if it succeeded.
func (d *Driver) performEffect(step script.Step, action script.Action) {
	if d.lastEffectStep == d.state.StepIndex && d.lastEffectAction == d.state.ActionIndex {
		return
	}
	d.lastEffectStep = d.state.StepIndex
	d.lastEffectAction = d.state.ActionIndex

	if d.opts.OnAction != nil {
		d.opts.OnAction(step, action)
	}

	switch a := action.(type) {
	case script.Navigate:
		if err := d.opts.Router.Navigate(a.Path); err != nil {
			d.log.Warn("navigation failed", "run_id", d.runID, "path", a.Path, "error", err)
			d.opts.Notifier.Notify(fmt.Sprintf("navigation to %s failed: %v", a.Path, err), LevelWarn)
		}
	case script.Toast:
		d.opts.Notifier.Notify(a.Message, LevelInfo)
		if a.Integration != "" {
			d.dispatch(enableIntegrationEvent{name: a.Integration})
		}
	case script.TriggerIncident:
		d.dispatch(triggerIncidentEvent{})
	case script.StartAnalysis:
		d.dispatch(startAnalysisEvent{})
	case script.StartResolution:
		d.resolutionHandoffDone = false
		d.dispatch(startResolutionEvent{})
	default:
		// wait, click, type, highlight, show_analysis, show_resolution:
		// presentation only, no dispatch beyond the generic advance.
	}
}

// ensureAnalysisLine arms the analysis tick when the phase is running and no
// tick is pending, and cancels it when the phase is over. A pending tick is
// left untouched so unrelated transitions never stretch the phase cadence.
// Caller holds d.mu.
func (d *Driver) ensureAnalysisLine() {
	if !d.state.Active || !d.state.Analyzing {
		d.analysisLine.cancel()
		return
	}
	if d.analysisLine.armed() {
		return
	}
	gen := d.analysisLine.gen
	d.analysisLine.timer = d.sched.AfterFunc(d.scaled(analysisTickMS), func() {
		d.onTimer(&d.analysisLine, gen, func() {
			if d.state.AnalysisStep < maxAnalysisSteps {
				d.dispatch(nextAnalysisStepEvent{})
			} else {
				d.resolutionHandoffDone = false
				d.dispatch(startResolutionEvent{})
			}
			d.ensureAnalysisLine()
			d.ensureResolutionLine()
		})
	})
}

// ensureResolutionLine mirrors ensureAnalysisLine for the resolution phase.
// Its terminal tick nudges the outer script forward exactly once per
// resolution phase. Caller holds d.mu.
func (d *Driver) ensureResolutionLine() {
	if !d.state.Active || !d.state.Resolving || d.resolutionHandoffDone {
		d.resolutionLine.cancel()
		return
	}
	if d.resolutionLine.armed() {
		return
	}
	gen := d.resolutionLine.gen
	d.resolutionLine.timer = d.sched.AfterFunc(d.scaled(resolutionTickMS), func() {
		d.onTimer(&d.resolutionLine, gen, func() {
			if d.state.ResolutionStep < maxResolutionSteps {
				d.dispatch(nextResolutionStepEvent{})
				d.ensureResolutionLine()
				return
			}
			d.resolutionHandoffDone = true
			d.dispatch(nextStepEvent{})
			d.syncLines()
		})
	})
}

// completeLocked performs the terminal transition: stamp the completion
// time, cancel everything, release waiters. Caller holds d.mu.
func (d *Driver) completeLocked() {
	d.dispatch(completeEvent{at: d.sched.Now()})
	d.cancelAllLines()
	d.closeDoneLocked()
	d.log.Info("demo complete", "run_id", d.runID, "script", d.sc.Name)
}
