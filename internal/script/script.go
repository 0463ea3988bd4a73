// Package script defines the demo script table: the static ordered list of
// steps and typed actions that a guided product walkthrough executes. Leaf
// data only; the engine that interprets it lives in internal/demo.
package script

import (
	"errors"
	"fmt"
)

// Step is one titled segment of a demo script with an ordered action list.
// Steps are immutable once built.
type Step struct {
	ID       string
	Title    string
	Page     string // optional target route, display only
	Duration int    // nominal duration in ms, display only
	Actions  []Action
}

// Script is an ordered list of steps plus a display name.
type Script struct {
	Name  string
	Steps []Step
}

// StepCount returns the number of steps.
func (s Script) StepCount() int { return len(s.Steps) }

// Validate checks structural rules: at least one step, every step has an ID,
// IDs are unique, no negative delays.
func (s Script) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New("script has no steps")
	}
	seen := make(map[string]bool, len(s.Steps))
	for i, st := range s.Steps {
		if st.ID == "" {
			return fmt.Errorf("step %d has no id", i)
		}
		if seen[st.ID] {
			return fmt.Errorf("duplicate step id %q", st.ID)
		}
		seen[st.ID] = true
		if st.Duration < 0 {
			return fmt.Errorf("step %q has negative duration", st.ID)
		}
		for j, a := range st.Actions {
			if a.DelayMS() < 0 {
				return fmt.Errorf("step %q action %d has negative delay", st.ID, j)
			}
		}
	}
	return nil
}
