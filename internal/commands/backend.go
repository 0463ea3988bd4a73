package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/dreamops/dreamops/internal/app"
	"github.com/dreamops/dreamops/internal/backend"
	"github.com/dreamops/dreamops/internal/output"
)

// NewBackendCmd creates the backend command with subcommands.
func NewBackendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backend",
		Short: "Talk to the analysis backend",
	}

	cmd.AddCommand(newBackendHealthCmd())
	cmd.AddCommand(newBackendAnalyzeCmd())

	return cmd
}

func newBackendHealthCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check backend availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			baseURL := app.EffectiveBackendURL()
			client := backend.NewClient(baseURL)
			status, err := client.Health(ctx)
			if err != nil {
				return cmdErr(err)
			}

			type resp struct {
				URL     string `json:"url"`
				Status  string `json:"status"`
				Version string `json:"version,omitempty"`
				Healthy bool   `json:"healthy"`
			}
			return output.PrintSuccess(resp{
				URL:     baseURL,
				Status:  status.Status,
				Version: status.Version,
				Healthy: status.Healthy(),
			})
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Overall request timeout")

	return cmd
}

func newBackendAnalyzeCmd() *cobra.Command {
	var (
		incident string
		service  string
		summary  string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Request root-cause analysis for an incident",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client := backend.NewClient(app.EffectiveBackendURL())
			result, err := client.Analyze(ctx, backend.AnalysisRequest{
				IncidentID: incident,
				Service:    service,
				Summary:    summary,
			})
			if err != nil {
				return cmdErr(err)
			}
			return output.PrintSuccess(result)
		},
	}

	cmd.Flags().StringVar(&incident, "incident", "", "Incident ID (required)")
	cmd.Flags().StringVar(&service, "service", "", "Affected service (required)")
	cmd.Flags().StringVar(&summary, "summary", "", "Free-form incident summary")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Overall request timeout")
	_ = cmd.MarkFlagRequired("incident")
	_ = cmd.MarkFlagRequired("service")

	return cmd
}
