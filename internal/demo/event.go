package demo

import "time"

// Event is a discrete state transition request. Events are internal: the
// driver is the only dispatcher, and the reducer is the only consumer. Each
// variant carries exactly the payload its transition needs.
type Event interface {
	isEvent()
}

type startEvent struct{}
type stopEvent struct{}
type pauseEvent struct{}
type resumeEvent struct{}

// setSpeedEvent replaces the playback speed multiplier. The control surface
// validates v > 0 before dispatching; the reducer does not clamp.
type setSpeedEvent struct{ speed float64 }

type nextStepEvent struct{}
type nextActionEvent struct{}

type enableIntegrationEvent struct{ name string }
type triggerIncidentEvent struct{}

type startAnalysisEvent struct{}
type nextAnalysisStepEvent struct{}
type startResolutionEvent struct{}
type nextResolutionStepEvent struct{}

// completeEvent carries the completion timestamp so the reducer stays a pure
// function of (state, event); the driver stamps it from its scheduler clock.
type completeEvent struct{ at time.Time }

func (startEvent) isEvent()              {}
func (stopEvent) isEvent()               {}
func (pauseEvent) isEvent()              {}
func (resumeEvent) isEvent()             {}
func (setSpeedEvent) isEvent()           {}
func (nextStepEvent) isEvent()           {}
func (nextActionEvent) isEvent()         {}
func (enableIntegrationEvent) isEvent()  {}
func (triggerIncidentEvent) isEvent()    {}
func (startAnalysisEvent) isEvent()      {}
func (nextAnalysisStepEvent) isEvent()   {}
func (startResolutionEvent) isEvent()    {}
func (nextResolutionStepEvent) isEvent() {}
func (completeEvent) isEvent()           {}
