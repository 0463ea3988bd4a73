package app

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Settings represents configuration loaded from config.yaml.
// Field names match snake_case YAML keys.
type Settings struct {
	DBPath     string  `yaml:"db_path"`
	BackendURL string  `yaml:"backend_url"`
	DemoSpeed  float64 `yaml:"demo_speed"`
	DemoScript string  `yaml:"demo_script"`
}

// DemoSettings are effective runtime values for demo playback.
type DemoSettings struct {
	Speed  float64 `json:"speed"`
	Script string  `json:"script"`
}

const (
	defaultDemoSpeed  = 1.0
	maxDemoSpeed      = 10.0
	defaultBackendURL = "http://localhost:8080"
	backendURLEnvVar  = "DREAMOPS_BACKEND_URL"
)

// EffectiveDemoSettings returns validated demo defaults. Invalid or missing
// config values fall back to speed 1 and the built-in script.
func EffectiveDemoSettings() DemoSettings {
	cfg := DemoSettings{Speed: defaultDemoSpeed}

	s, err := LoadSettings()
	if err != nil {
		return cfg
	}

	if s.DemoSpeed > 0 {
		cfg.Speed = s.DemoSpeed
	}
	if cfg.Speed > maxDemoSpeed {
		cfg.Speed = maxDemoSpeed
	}
	cfg.Script = s.DemoScript
	return cfg
}

// EffectiveBackendURL resolves the backend base URL.
// Order of precedence: DREAMOPS_BACKEND_URL, config.yaml backend_url, default.
func EffectiveBackendURL() string {
	if v := os.Getenv(backendURLEnvVar); v != "" {
		return v
	}
	if s, err := LoadSettings(); err == nil && s.BackendURL != "" {
		return s.BackendURL
	}
	return defaultBackendURL
}

// settingsOnce, settings, settingsErr implement the sync.Once lazy-load singleton for config.
// dbPathOverrideMu and dbPathOverride implement a mutex-protected process-wide override for CLI --db-path.
//
//nolint:gochecknoglobals // sync.Once singleton + RWMutex override are intentional process-wide state
var (
	settingsOnce sync.Once
	settings     Settings
	settingsErr  error

	dbPathOverrideMu sync.RWMutex
	dbPathOverride   string
)

// SetDBPathOverride sets a process-wide database path override.
// Intended for CLI flag support (e.g. --db-path).
func SetDBPathOverride(path string) {
	dbPathOverrideMu.Lock()
	dbPathOverride = path
	dbPathOverrideMu.Unlock()
}

func getDBPathOverride() string {
	dbPathOverrideMu.RLock()
	v := dbPathOverride
	dbPathOverrideMu.RUnlock()
	return v
}

// LoadSettings loads configuration once using the documented lookup order.
// Lookup order (first found wins):
// 1) ~/.config/dreamops/config.yaml
// 2) /etc/dreamops/config.yaml
// 3) ./config.yaml (lowest priority; allows repo-local overrides if desired)
// Environment variables are handled separately.
func LoadSettings() (Settings, error) {
	settingsOnce.Do(func() {
		settings = Settings{}

		// 1) User config (~/.config/dreamops/config.yaml)
		dir, err := ConfigDir()
		if err != nil {
			settingsErr = err
			return
		}
		if s, err := loadSettingsFile(filepath.Join(dir, "config.yaml")); err == nil {
			settings = s
			return
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			settingsErr = err
			return
		}

		// 2) /etc
		if s, err := loadSettingsFile(filepath.Join(string(os.PathSeparator), "etc", "dreamops", "config.yaml")); err == nil {
			settings = s
			return
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			settingsErr = err
			return
		}

		// 3) Local ./config.yaml (lowest priority)
		if s, err := loadSettingsFile("config.yaml"); err == nil {
			settings = s
			return
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			settingsErr = err
			return
		}
	})

	return settings, settingsErr
}

func loadSettingsFile(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
