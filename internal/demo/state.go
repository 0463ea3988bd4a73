// Package demo implements the demo sequencing engine: a pure reducer over a
// demo state value, and a timer-driven driver that interprets a script table
// into side effects (navigation, toasts) and reducer events. The driver's
// control surface (Start/Stop/Pause/Resume/SetSpeed plus read-only
// snapshots) is the only way other code interacts with a running demo.
package demo

import "time"

// IntegrationState is the mock connection state of one integration while a
// demo runs. Real integration config lives in the store; this map exists
// only so the walkthrough can light integrations up one by one.
type IntegrationState struct {
	Enabled     bool   `json:"enabled"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// State is the full demo state. It is a value: the reducer replaces it on
// every event, and consumers only ever see copies.
type State struct {
	Active      bool
	StepIndex   int
	ActionIndex int
	Paused      bool
	Speed       float64
	Progress    float64 // 0..100, derived from StepIndex

	Integrations map[string]IntegrationState
	Incident     bool

	Analyzing      bool
	Resolving      bool
	AnalysisStep   int // 0..maxAnalysisSteps
	ResolutionStep int // 0..maxResolutionSteps

	CompletedAt *time.Time
}

// Phase sub-step bounds and base delays. The analysis phase walks six
// sub-steps at 1.5s each (before speed scaling), then hands off to
// resolution; resolution walks four at 2s each, then advances the outer
// script.
const (
	maxAnalysisSteps   = 6
	maxResolutionSteps = 4

	analysisTickMS   = 1500
	resolutionTickMS = 2000
)

// stepAdvanceDelayMS is the short delay between exhausting a step's actions
// and advancing to the next step.
const stepAdvanceDelayMS = 300

func defaultIntegrations() map[string]IntegrationState {
	return map[string]IntegrationState{
		"pagerduty":  {Kind: "alerting", Description: "On-call paging and escalation"},
		"slack":      {Kind: "chat", Description: "Incident channel updates"},
		"datadog":    {Kind: "monitoring", Description: "Metrics, monitors, and dashboards"},
		"kubernetes": {Kind: "infrastructure", Description: "Cluster state and rollbacks"},
		"github":     {Kind: "source", Description: "Deploys and recent changes"},
	}
}

// initialState returns a fresh state. Every start discards the prior run and
// rebuilds from here; there is no carry-over between runs.
func initialState(active bool) State {
	return State{
		Active:       active,
		Speed:        1.0,
		Integrations: defaultIntegrations(),
	}
}

// clone deep-copies the state so snapshots can escape the driver's lock.
func (s State) clone() State {
	out := s
	out.Integrations = make(map[string]IntegrationState, len(s.Integrations))
	for k, v := range s.Integrations {
		out.Integrations[k] = v
	}
	if s.CompletedAt != nil {
		at := *s.CompletedAt
		out.CompletedAt = &at
	}
	return out
}
