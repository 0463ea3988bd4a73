package demo

// reducer is the pure state-transition function for a demo session. It is
// total: unrecognized events return the state unchanged, and no transition
// panics. The step count is fixed at construction because NEXT_STEP clamps
// to the last valid index and recomputes progress from it.
type reducer struct {
	stepCount int
}

// apply returns the next state for an event. It never mutates s's shared
// references except through copy-on-write of the integrations map.
func (r reducer) apply(s State, ev Event) State {
	switch e := ev.(type) {
	case startEvent:
		next := initialState(true)
		next.Progress = r.progressAt(0)
		return next

	case stopEvent:
		next := initialState(false)
		next.Progress = r.progressAt(0)
		return next

	case pauseEvent:
		s.Paused = true
		return s

	case resumeEvent:
		s.Paused = false
		return s

	case setSpeedEvent:
		s.Speed = e.speed
		return s

	case nextStepEvent:
		if s.StepIndex < r.stepCount-1 {
			s.StepIndex++
		}
		s.ActionIndex = 0
		s.Progress = r.progressAt(s.StepIndex)
		return s

	case nextActionEvent:
		// Unclamped: an index past the step's action list is how the driver
		// learns the step is exhausted.
		s.ActionIndex++
		return s

	case enableIntegrationEvent:
		cur, ok := s.Integrations[e.name]
		if !ok {
			return s
		}
		cur.Enabled = true
		integrations := make(map[string]IntegrationState, len(s.Integrations))
		for k, v := range s.Integrations {
			integrations[k] = v
		}
		integrations[e.name] = cur
		s.Integrations = integrations
		return s

	case triggerIncidentEvent:
		s.Incident = true
		return s

	case startAnalysisEvent:
		s.Analyzing = true
		s.Resolving = false
		s.AnalysisStep = 0
		return s

	case nextAnalysisStepEvent:
		s.AnalysisStep++
		return s

	case startResolutionEvent:
		s.Analyzing = false
		s.Resolving = true
		s.ResolutionStep = 0
		return s

	case nextResolutionStepEvent:
		s.ResolutionStep++
		return s

	case completeEvent:
		s.Active = false
		s.Analyzing = false
		s.Resolving = false
		at := e.at
		s.CompletedAt = &at
		return s

	default:
		return s
	}
}

// progressAt maps a step index to an overall percentage. A single-step
// script is always at 100.
func (r reducer) progressAt(stepIndex int) float64 {
	if r.stepCount <= 1 {
		return 100
	}
	return float64(stepIndex) / float64(r.stepCount-1) * 100
}
