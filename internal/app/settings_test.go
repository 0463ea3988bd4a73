package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSettings_PrefersUserConfigOverLocal(t *testing.T) {
	resetSettingsStateForTest()
	t.Cleanup(resetSettingsStateForTest)

	home := t.TempDir()
	t.Setenv("HOME", home)

	workdir := t.TempDir()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(workdir))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })

	userConfigPath := filepath.Join(home, ".config", "dreamops", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(userConfigPath), 0o755))
	require.NoError(t, os.WriteFile(userConfigPath, []byte("db_path: /tmp/from-user.db\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(workdir, "config.yaml"), []byte("db_path: /tmp/from-local.db\n"), 0o600))

	s, err := LoadSettings()
	require.NoError(t, err)
	require.Equal(t, "/tmp/from-user.db", s.DBPath)
}

func TestLoadSettings_FallsBackToLocalConfig(t *testing.T) {
	resetSettingsStateForTest()
	t.Cleanup(resetSettingsStateForTest)

	home := t.TempDir()
	t.Setenv("HOME", home)

	workdir := t.TempDir()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(workdir))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })

	require.NoError(t, os.WriteFile(filepath.Join(workdir, "config.yaml"), []byte("db_path: /tmp/from-local.db\n"), 0o600))

	s, err := LoadSettings()
	require.NoError(t, err)
	require.Equal(t, "/tmp/from-local.db", s.DBPath)
}

func TestLoadSettings_InvalidYAMLReturnsError(t *testing.T) {
	resetSettingsStateForTest()
	t.Cleanup(resetSettingsStateForTest)

	home := t.TempDir()
	t.Setenv("HOME", home)

	userConfigPath := filepath.Join(home, ".config", "dreamops", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(userConfigPath), 0o755))
	require.NoError(t, os.WriteFile(userConfigPath, []byte("db_path: ["), 0o600))

	_, err := LoadSettings()
	require.Error(t, err)
}

func TestLoadSettingsFile_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "db_path: /tmp/read.db\n" +
		"backend_url: http://backend:9000\n" +
		"demo_speed: 2.5\n" +
		"demo_script: /tmp/demo.yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := loadSettingsFile(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/read.db", s.DBPath)
	require.Equal(t, "http://backend:9000", s.BackendURL)
	require.Equal(t, 2.5, s.DemoSpeed)
	require.Equal(t, "/tmp/demo.yaml", s.DemoScript)
}

func TestEffectiveDemoSettings_DefaultsAndClamp(t *testing.T) {
	resetSettingsStateForTest()
	t.Cleanup(resetSettingsStateForTest)

	home := t.TempDir()
	t.Setenv("HOME", home)

	// No config file: defaults
	cfg := EffectiveDemoSettings()
	require.Equal(t, 1.0, cfg.Speed)
	require.Empty(t, cfg.Script)

	// Out-of-range config values should be clamped/sanitized
	userConfigPath := filepath.Join(home, ".config", "dreamops", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(userConfigPath), 0o755))
	require.NoError(t, os.WriteFile(userConfigPath, []byte("demo_speed: 999\n"), 0o600))

	resetSettingsStateForTest()
	cfg = EffectiveDemoSettings()
	require.Equal(t, 10.0, cfg.Speed)
}

func TestEffectiveBackendURL_Precedence(t *testing.T) {
	resetSettingsStateForTest()
	t.Cleanup(resetSettingsStateForTest)

	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, "http://localhost:8080", EffectiveBackendURL())

	userConfigPath := filepath.Join(home, ".config", "dreamops", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(userConfigPath), 0o755))
	require.NoError(t, os.WriteFile(userConfigPath, []byte("backend_url: http://cfg:9000\n"), 0o600))
	resetSettingsStateForTest()
	require.Equal(t, "http://cfg:9000", EffectiveBackendURL())

	t.Setenv("DREAMOPS_BACKEND_URL", "http://env:9000")
	require.Equal(t, "http://env:9000", EffectiveBackendURL())
}
