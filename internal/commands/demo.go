package commands

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dreamops/dreamops/internal/actions"
	"github.com/dreamops/dreamops/internal/app"
	"github.com/dreamops/dreamops/internal/demo"
	"github.com/dreamops/dreamops/internal/models"
	"github.com/dreamops/dreamops/internal/output"
	"github.com/dreamops/dreamops/internal/script"
)

// NewDemoCmd creates the demo command with subcommands.
func NewDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Play the scripted incident-response walkthrough",
	}

	cmd.AddCommand(newDemoRunCmd())
	cmd.AddCommand(newDemoStepsCmd())

	return cmd
}

// loadScript resolves the script to play: an explicit path, the configured
// default, or the built-in walkthrough.
func loadScript(scriptPath string) (script.Script, string, error) {
	if scriptPath == "" {
		scriptPath = app.EffectiveDemoSettings().Script
	}
	if scriptPath == "" {
		return script.Builtin(), "builtin", nil
	}
	sc, err := script.Load(scriptPath)
	if err != nil {
		return script.Script{}, "", err
	}
	return sc, scriptPath, nil
}

func newDemoRunCmd() *cobra.Command {
	var (
		speed      float64
		scriptPath string
		fast       bool
		noColor    bool
		noRecord   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demo from start to finish",
		Long: `Plays the demo script against the terminal. Rendering goes to stderr;
a JSON run summary goes to stdout. Ctrl-C stops the run and records it
as stopped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, scriptName, err := loadScript(scriptPath)
			if err != nil {
				return cmdErr(err)
			}

			if speed == 0 {
				speed = app.EffectiveDemoSettings().Speed
			}
			if fast {
				speed = 4
			}

			renderer := demo.NewRenderer(os.Stderr, noColor)
			driver, err := demo.NewDriver(sc, demo.Options{
				Router:   renderer,
				Notifier: renderer,
				OnAction: renderer.OnAction,
				OnState:  renderer.OnState,
			})
			if err != nil {
				return cmdErr(err)
			}

			start := time.Now()
			runID := driver.Start()
			if speed != 1 {
				if err := driver.SetSpeed(speed); err != nil {
					_ = driver.Stop()
					return cmdErr(err)
				}
			}

			// Run history is best-effort: a broken DB must not kill playback.
			var db *DB
			if !noRecord {
				opened, closeDB, err := openDB()
				if err != nil {
					slog.Warn("run history disabled", "error", err.Error())
				} else {
					defer closeDB()
					if _, err := actions.DemoRunRecord(opened, runID, scriptName, speed); err != nil {
						slog.Warn("failed to record demo run", "run_id", runID, "error", err.Error())
					} else {
						db = opened
					}
				}
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			status := models.DemoRunStatusCompleted
			select {
			case <-driver.Done():
			case <-sigCh:
				status = models.DemoRunStatusStopped
			}

			// Snapshot before Stop: stopping resets the cursor.
			snap := driver.Snapshot()
			stepsReached := snap.StepIndex + 1
			if status == models.DemoRunStatusStopped {
				_ = driver.Stop()
			}

			if db != nil {
				if _, err := actions.DemoRunFinalize(db, runID, status, stepsReached); err != nil {
					slog.Warn("failed to finalize demo run", "run_id", runID, "error", err.Error())
				}
			}

			type resp struct {
				RunID      string  `json:"run_id"`
				Script     string  `json:"script"`
				Speed      float64 `json:"speed"`
				Steps      int     `json:"steps"`
				StepsTotal int     `json:"steps_total"`
				Status     string  `json:"status"`
				DurationMS int64   `json:"duration_ms"`
			}
			return output.PrintSuccess(resp{
				RunID:      runID,
				Script:     scriptName,
				Speed:      speed,
				Steps:      stepsReached,
				StepsTotal: driver.StepCount(),
				Status:     string(status),
				DurationMS: time.Since(start).Milliseconds(),
			})
		},
	}

	cmd.Flags().Float64Var(&speed, "speed", 0, "Playback speed multiplier, larger is faster (default from config)")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Path to a YAML demo script (default: built-in walkthrough)")
	cmd.Flags().BoolVar(&fast, "fast", false, "Shortcut for --speed 4")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI colors in rendering")
	cmd.Flags().BoolVar(&noRecord, "no-record", false, "Skip writing the run to history")

	return cmd
}

func newDemoStepsCmd() *cobra.Command {
	var scriptPath string

	cmd := &cobra.Command{
		Use:   "steps",
		Short: "List the steps of a demo script without playing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, scriptName, err := loadScript(scriptPath)
			if err != nil {
				return cmdErr(err)
			}

			type stepInfo struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Page     string `json:"page,omitempty"`
				Duration int    `json:"duration_ms"`
				Actions  int    `json:"actions"`
			}
			steps := make([]stepInfo, 0, sc.StepCount())
			for _, st := range sc.Steps {
				steps = append(steps, stepInfo{
					ID:       st.ID,
					Title:    st.Title,
					Page:     st.Page,
					Duration: st.Duration,
					Actions:  len(st.Actions),
				})
			}

			type resp struct {
				Script string     `json:"script"`
				Name   string     `json:"name,omitempty"`
				Count  int        `json:"count"`
				Steps  []stepInfo `json:"steps"`
			}
			return output.PrintSuccess(resp{
				Script: scriptName,
				Name:   sc.Name,
				Count:  len(steps),
				Steps:  steps,
			})
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "Path to a YAML demo script (default: built-in walkthrough)")

	return cmd
}
