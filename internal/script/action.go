package script

// Kind identifies the variant of a demo action.
type Kind string

// Action kind constants.
const (
	KindNavigate        Kind = "navigate"
	KindClick           Kind = "click"
	KindType            Kind = "type"
	KindWait            Kind = "wait"
	KindHighlight       Kind = "highlight"
	KindToast           Kind = "toast"
	KindTriggerIncident Kind = "trigger_incident"
	KindShowAnalysis    Kind = "show_analysis"
	KindShowResolution  Kind = "show_resolution"
	KindStartAnalysis   Kind = "start_analysis"
	KindStartResolution Kind = "start_resolution"
)

// DefaultActionDelayMS is the per-action advance delay used when an action
// does not carry its own.
const DefaultActionDelayMS = 500

// Action is one discrete effect within a demo step. Each variant is its own
// struct so a variant can only carry the fields that make sense for it.
type Action interface {
	// Kind returns the variant tag.
	Kind() Kind
	// DelayMS returns the per-action advance delay override in
	// milliseconds. Zero means "use DefaultActionDelayMS".
	DelayMS() int
}

// Navigate pushes a route change to the hosting application's router.
type Navigate struct {
	Path  string
	Delay int
}

func (Navigate) Kind() Kind     { return KindNavigate }
func (a Navigate) DelayMS() int { return a.Delay }

// Click simulates a click on a UI element. Presentation only; the driver
// performs no dispatch beyond the generic advance.
type Click struct {
	Selector string
	Delay    int
}

func (Click) Kind() Kind     { return KindClick }
func (a Click) DelayMS() int { return a.Delay }

// Type simulates typing a value into a UI element.
type Type struct {
	Selector string
	Value    string
	Delay    int
}

func (Type) Kind() Kind     { return KindType }
func (a Type) DelayMS() int { return a.Delay }

// Wait is a pure delay with no side effect.
type Wait struct {
	Delay int
}

func (Wait) Kind() Kind     { return KindWait }
func (a Wait) DelayMS() int { return a.Delay }

// Highlight draws attention to a UI element.
type Highlight struct {
	Selector string
	Delay    int
}

func (Highlight) Kind() Kind     { return KindHighlight }
func (a Highlight) DelayMS() int { return a.Delay }

// Toast emits a transient user-visible message. When Integration is set, the
// named mock integration is also flipped to enabled.
type Toast struct {
	Message     string
	Integration string
	Delay       int
}

func (Toast) Kind() Kind     { return KindToast }
func (a Toast) DelayMS() int { return a.Delay }

// TriggerIncident marks the simulated incident as fired.
type TriggerIncident struct {
	Delay int
}

func (TriggerIncident) Kind() Kind     { return KindTriggerIncident }
func (a TriggerIncident) DelayMS() int { return a.Delay }

// ShowAnalysis focuses the analysis surface without starting the phase.
type ShowAnalysis struct {
	Delay int
}

func (ShowAnalysis) Kind() Kind     { return KindShowAnalysis }
func (a ShowAnalysis) DelayMS() int { return a.Delay }

// ShowResolution focuses the resolution surface without starting the phase.
type ShowResolution struct {
	Delay int
}

func (ShowResolution) Kind() Kind     { return KindShowResolution }
func (a ShowResolution) DelayMS() int { return a.Delay }

// StartAnalysis begins the simulated analysis phase.
type StartAnalysis struct {
	Delay int
}

func (StartAnalysis) Kind() Kind     { return KindStartAnalysis }
func (a StartAnalysis) DelayMS() int { return a.Delay }

// StartResolution begins the simulated resolution phase. Ends any running
// analysis phase.
type StartResolution struct {
	Delay int
}

func (StartResolution) Kind() Kind     { return KindStartResolution }
func (a StartResolution) DelayMS() int { return a.Delay }
