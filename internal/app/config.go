package app

import (
	"os"
	"path/filepath"
)

// ConfigDir returns ~/.config/dreamops/ on all platforms.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dreamops"), nil
}

// EnsureConfigDir creates the config directory and default config.yaml if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return os.WriteFile(configFile, []byte(defaultConfig), 0600)
	}
	return nil
}

const defaultConfig = `# dreamops configuration
# Run: dreamops --help

# Optional: override the SQLite database location.
# Can also be set via DREAMOPS_DB_PATH or --db-path.
# db_path: ~/.config/dreamops/dreamops.db

# Optional: backend API base URL used by analysis and health checks.
# backend_url: http://localhost:8080

# Optional: default speed multiplier for demo playback.
# demo_speed: 1

# Optional: path to a YAML demo script used when --script is not given.
# demo_script: ~/.config/dreamops/demo.yaml
`
