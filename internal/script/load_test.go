package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
name: smoke
steps:
  - id: intro
    title: Intro
    page: /dashboard
    duration: 2000
    actions:
      - action: navigate
        target: /dashboard
        delay: 600
      - action: toast
        message: hello
        integration: slack
      - action: wait
        delay: 400
  - id: outro
    title: Outro
    actions:
      - action: trigger_incident
`

func TestParse_Sample(t *testing.T) {
	s, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "smoke", s.Name)
	require.Len(t, s.Steps, 2)

	intro := s.Steps[0]
	require.Len(t, intro.Actions, 3)

	nav, ok := intro.Actions[0].(Navigate)
	require.True(t, ok)
	assert.Equal(t, "/dashboard", nav.Path)
	assert.Equal(t, 600, nav.DelayMS())

	toast, ok := intro.Actions[1].(Toast)
	require.True(t, ok)
	assert.Equal(t, "hello", toast.Message)
	assert.Equal(t, "slack", toast.Integration)

	_, ok = s.Steps[1].Actions[0].(TriggerIncident)
	assert.True(t, ok)
}

func TestParse_UnknownActionKind(t *testing.T) {
	_, err := Parse([]byte("steps:\n  - id: a\n    actions:\n      - action: explode\n"))
	assert.ErrorContains(t, err, "unknown action kind")
}

func TestParse_MissingActionKind(t *testing.T) {
	_, err := Parse([]byte("steps:\n  - id: a\n    actions:\n      - delay: 100\n"))
	assert.ErrorContains(t, err, "missing action kind")
}

func TestParse_NavigateWithoutTarget(t *testing.T) {
	_, err := Parse([]byte("steps:\n  - id: a\n    actions:\n      - action: navigate\n"))
	assert.ErrorContains(t, err, "navigate requires target")
}

func TestParse_NoSteps(t *testing.T) {
	_, err := Parse([]byte("name: hollow\n"))
	assert.ErrorContains(t, err, "no steps")
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.StepCount())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
