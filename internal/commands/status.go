package commands

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dreamops/dreamops/internal/app"
	"github.com/dreamops/dreamops/internal/output"
	"github.com/dreamops/dreamops/internal/store"
)

// NewStatusCmd creates the status command. Pass the root command so --schema
// can collect flag schemas; callers must add it after the root is fully wired.
func NewStatusCmd(root *cobra.Command) *cobra.Command {
	var (
		check      bool
		schemaMode bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show installation status and system overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			if schemaMode {
				return runSchemaMode(root)
			}
			return runStatus(check)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Run database connectivity check (SELECT 1)")
	cmd.Flags().BoolVar(&schemaMode, "schema", false, "Show command argument schemas")

	return cmd
}

func runSchemaMode(root *cobra.Command) error {
	type resp struct {
		Commands []commandArgSchema `json:"commands"`
	}
	schemas := make([]commandArgSchema, 0)
	collectCommandSchemas(root, &schemas)
	return output.PrintSuccess(resp{Commands: schemas})
}

type commandArgSchema struct {
	Command     string                 `json:"command"`
	Description string                 `json:"description,omitempty"`
	ArgsSchema  map[string]interface{} `json:"args_schema"`
}

func collectCommandSchemas(cmd *cobra.Command, out *[]commandArgSchema) {
	if cmd.Name() != "" && cmd.Name() != "dreamops" && !cmd.Hidden {
		*out = append(*out, buildCommandSchema(cmd))
	}

	for _, child := range cmd.Commands() {
		collectCommandSchemas(child, out)
	}
}

func buildCommandSchema(cmd *cobra.Command) commandArgSchema {
	properties := map[string]interface{}{}
	required := make([]string, 0)
	seen := map[string]bool{}

	addFlag := func(f *pflag.Flag) {
		if f.Hidden || seen[f.Name] {
			return
		}
		seen[f.Name] = true

		flagSchema := map[string]interface{}{
			"type":        normalizeFlagType(f.Value.Type()),
			"description": f.Usage,
		}
		if f.DefValue != "" {
			flagSchema["default"] = typedFlagDefault(f.Value.Type(), f.DefValue)
		}
		properties[f.Name] = flagSchema

		if isRequiredFlag(f) {
			required = append(required, f.Name)
		}
	}

	cmd.InheritedFlags().VisitAll(addFlag)
	cmd.NonInheritedFlags().VisitAll(addFlag)

	argsSchema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		argsSchema["required"] = required
	}

	return commandArgSchema{
		Command:     cmd.CommandPath(),
		Description: cmd.Short,
		ArgsSchema:  argsSchema,
	}
}

func normalizeFlagType(flagType string) string {
	switch flagType {
	case "int", "int64", "int32", "uint", "uint64", "uint32":
		return "integer"
	case "bool":
		return "boolean"
	case "float64", "float32":
		return "number"
	default:
		return "string"
	}
}

func typedFlagDefault(flagType, raw string) interface{} {
	switch flagType {
	case "bool":
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	case "int", "int64", "int32", "uint", "uint64", "uint32":
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	case "float64", "float32":
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return raw
}

func isRequiredFlag(f *pflag.Flag) bool {
	if f.Annotations != nil {
		if vals, ok := f.Annotations[cobra.BashCompOneRequiredFlag]; ok && len(vals) > 0 && vals[0] == "true" {
			return true
		}
	}

	usage := strings.ToLower(strings.TrimSpace(f.Usage))
	return strings.Contains(usage, "(required)")
}

func runStatus(check bool) error {
	dbPath, dbSource, err := app.ResolveDBPathDetailed()
	if err != nil {
		return cmdErr(err)
	}

	type dbInfo struct {
		Path      string `json:"path"`
		Source    string `json:"source"`
		OK        bool   `json:"ok"`
		SizeBytes *int64 `json:"size_bytes,omitempty"`
		Error     string `json:"error,omitempty"`
	}

	type schemaInfo struct {
		Current int64 `json:"current"`
		Latest  int64 `json:"latest"`
	}

	type resp struct {
		DB         dbInfo              `json:"db"`
		Schema     *schemaInfo         `json:"schema,omitempty"`
		Demo       app.DemoSettings    `json:"demo"`
		BackendURL string              `json:"backend_url"`
		Counts     *store.StatusCounts `json:"counts,omitempty"`
		QueryOK    *bool               `json:"query_ok,omitempty"`
		QueryError string              `json:"query_error,omitempty"`
		Hint       string              `json:"hint,omitempty"`
	}

	result := resp{
		DB:         dbInfo{Path: dbPath, Source: dbSource},
		Demo:       app.EffectiveDemoSettings(),
		BackendURL: app.EffectiveBackendURL(),
	}

	db, err := store.InitDBWithPath(dbPath)
	if err != nil {
		result.DB.OK = false
		result.DB.Error = err.Error()
		if check {
			qOK := false
			result.QueryOK = &qOK
			result.QueryError = "db not available"
			result.Hint = "If this is running in a sandboxed environment, set db_path to a writable location or use --db-path."
		}
		return output.PrintSuccess(result)
	}

	result.DB.OK = true
	defer func() { _ = db.Close() }()

	if stat, err := os.Stat(dbPath); err == nil {
		size := stat.Size()
		result.DB.SizeBytes = &size
	}

	if current, latest, err := store.SchemaVersion(db); err == nil {
		result.Schema = &schemaInfo{Current: current, Latest: latest}
	}

	if counts, err := store.GetStatusCounts(db); err == nil {
		result.Counts = counts
	}

	if check {
		var one int
		qErr := db.QueryRowContext(context.Background(), "SELECT 1").Scan(&one)
		qOK := qErr == nil
		result.QueryOK = &qOK
		if !qOK {
			result.QueryError = qErr.Error()
		}
	}

	return output.PrintSuccess(result)
}
