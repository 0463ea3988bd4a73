package script

// Builtin returns the canonical DreamOps walkthrough: connect the monitoring
// stack, fire a simulated incident, watch the agent analyze and resolve it,
// then review the postmortem. Durations are nominal display values; actual
// pacing comes from per-action delays scaled by playback speed.
func Builtin() Script {
	return Script{
		Name: "dreamops-walkthrough",
		Steps: []Step{
			{
				ID:       "welcome",
				Title:    "Welcome to DreamOps",
				Page:     "/dashboard",
				Duration: 3000,
				Actions: []Action{
					Navigate{Path: "/dashboard", Delay: 800},
					Toast{Message: "Welcome! This demo walks through a full incident lifecycle."},
					Wait{Delay: 1200},
				},
			},
			{
				ID:       "connect-integrations",
				Title:    "Connect Your Stack",
				Page:     "/integrations",
				Duration: 6000,
				Actions: []Action{
					Navigate{Path: "/integrations", Delay: 800},
					Highlight{Selector: "#integration-pagerduty"},
					Toast{Message: "PagerDuty connected — alerts will page the agent first.", Integration: "pagerduty"},
					Toast{Message: "Slack connected — updates post to #incidents.", Integration: "slack"},
					Toast{Message: "Datadog connected — metrics and monitors are now visible.", Integration: "datadog"},
					Toast{Message: "Kubernetes connected — cluster state is queryable.", Integration: "kubernetes"},
				},
			},
			{
				ID:       "trigger",
				Title:    "An Incident Fires",
				Page:     "/incidents",
				Duration: 4000,
				Actions: []Action{
					Navigate{Path: "/incidents", Delay: 800},
					TriggerIncident{Delay: 700},
					Toast{Message: "P1: checkout-service error rate above 5% — paging on-call."},
					Wait{Delay: 1000},
				},
			},
			{
				ID:       "analysis",
				Title:    "The Agent Investigates",
				Page:     "/incidents/demo-1",
				Duration: 12000,
				Actions: []Action{
					Navigate{Path: "/incidents/demo-1", Delay: 800},
					ShowAnalysis{},
					StartAnalysis{Delay: 11000},
				},
			},
			{
				ID:       "resolution",
				Title:    "Root Cause to Rollback",
				Page:     "/incidents/demo-1",
				Duration: 10000,
				Actions: []Action{
					// The analysis loop hands off to resolution on its own;
					// this step only keeps the outer script parked on the
					// resolution surface while the phase plays out.
					ShowResolution{},
					Wait{Delay: 9500},
				},
			},
			{
				ID:       "postmortem",
				Title:    "Postmortem, Already Drafted",
				Page:     "/postmortems/demo-1",
				Duration: 4000,
				Actions: []Action{
					Navigate{Path: "/postmortems/demo-1", Delay: 800},
					Highlight{Selector: "#timeline"},
					Toast{Message: "Timeline, root cause, and action items were drafted automatically."},
					Wait{Delay: 1200},
				},
			},
			{
				ID:       "wrap-up",
				Title:    "That's DreamOps",
				Page:     "/dashboard",
				Duration: 3000,
				Actions: []Action{
					Navigate{Path: "/dashboard", Delay: 800},
					Toast{Message: "Incident resolved in minutes, not hours. Start your free trial to try it live."},
					Wait{Delay: 1000},
				},
			},
		},
	}
}
