package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// stepDoc and actionDoc are the YAML wire shapes. Actions are flattened into
// a single struct on disk; Load converts them into the typed variants and
// rejects fields that don't belong to the declared action kind.
type scriptDoc struct {
	Name  string    `yaml:"name"`
	Steps []stepDoc `yaml:"steps"`
}

type stepDoc struct {
	ID       string      `yaml:"id"`
	Title    string      `yaml:"title"`
	Page     string      `yaml:"page"`
	Duration int         `yaml:"duration"`
	Actions  []actionDoc `yaml:"actions"`
}

type actionDoc struct {
	Action      string `yaml:"action"`
	Target      string `yaml:"target"`
	Value       string `yaml:"value"`
	Message     string `yaml:"message"`
	Integration string `yaml:"integration"`
	Delay       int    `yaml:"delay"`
}

// Load reads a demo script from a YAML file and validates it.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes into a validated Script.
func Parse(data []byte) (Script, error) {
	var doc scriptDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}

	s := Script{Name: doc.Name}
	if s.Name == "" {
		s.Name = "custom"
	}
	for _, sd := range doc.Steps {
		step := Step{
			ID:       sd.ID,
			Title:    sd.Title,
			Page:     sd.Page,
			Duration: sd.Duration,
		}
		for j, ad := range sd.Actions {
			a, err := ad.toAction()
			if err != nil {
				return Script{}, fmt.Errorf("step %q action %d: %w", sd.ID, j, err)
			}
			step.Actions = append(step.Actions, a)
		}
		s.Steps = append(s.Steps, step)
	}

	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

func (d actionDoc) toAction() (Action, error) {
	switch Kind(d.Action) {
	case KindNavigate:
		if d.Target == "" {
			return nil, fmt.Errorf("navigate requires target")
		}
		return Navigate{Path: d.Target, Delay: d.Delay}, nil
	case KindClick:
		if d.Target == "" {
			return nil, fmt.Errorf("click requires target")
		}
		return Click{Selector: d.Target, Delay: d.Delay}, nil
	case KindType:
		if d.Target == "" {
			return nil, fmt.Errorf("type requires target")
		}
		return Type{Selector: d.Target, Value: d.Value, Delay: d.Delay}, nil
	case KindWait:
		return Wait{Delay: d.Delay}, nil
	case KindHighlight:
		if d.Target == "" {
			return nil, fmt.Errorf("highlight requires target")
		}
		return Highlight{Selector: d.Target, Delay: d.Delay}, nil
	case KindToast:
		if d.Message == "" {
			return nil, fmt.Errorf("toast requires message")
		}
		return Toast{Message: d.Message, Integration: d.Integration, Delay: d.Delay}, nil
	case KindTriggerIncident:
		return TriggerIncident{Delay: d.Delay}, nil
	case KindShowAnalysis:
		return ShowAnalysis{Delay: d.Delay}, nil
	case KindShowResolution:
		return ShowResolution{Delay: d.Delay}, nil
	case KindStartAnalysis:
		return StartAnalysis{Delay: d.Delay}, nil
	case KindStartResolution:
		return StartResolution{Delay: d.Delay}, nil
	case "":
		return nil, fmt.Errorf("missing action kind")
	default:
		return nil, fmt.Errorf("unknown action kind %q", d.Action)
	}
}
