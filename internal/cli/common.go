package cli

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/config"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/logging"
)

// outputFormat returns --output, falling back to the configured default format.
func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON:
		return format, nil
	default:
		return "", calcerr.Invalid("output", format, "must be table, json or ndjson")
	}
}

// newEngine builds an engine from the configuration installed by the root command.
func newEngine() (*engine.Engine, error) {
	return engine.New(config.GetGlobalConfig())
}

// auditCommand writes an audit entry for the command when audit logging is enabled.
func auditCommand(cmd *cobra.Command, start time.Time, params map[string]string, evaluated int, err error) {
	ctx := cmd.Context()
	audit := logging.AuditLoggerFromContext(ctx)
	if !audit.Enabled() {
		return
	}

	entry := logging.NewAuditEntry(cmd.CommandPath(), logging.TraceIDFromContext(ctx)).
		WithParameters(params).
		WithDuration(start)
	if err != nil {
		entry = entry.WithError(err.Error())
	} else {
		entry = entry.WithSuccess(evaluated)
	}
	audit.Log(ctx, *entry)
}

// runSingle evaluates one request and renders the response.
func runSingle(cmd *cobra.Command, eng *engine.Engine, req engine.Request, params map[string]string) error {
	start := time.Now()

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	resp, err := eng.Evaluate(cmd.Context(), req)
	auditCommand(cmd, start, params, 1, err)
	if err != nil {
		return err
	}

	return newRenderer(cmd.OutOrStdout(), format).Response(resp)
}

// changedFloat returns a pointer to the flag's value when the flag was set.
func changedFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

// openInput opens path for reading; "-" reads standard input.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, calcerr.Invalid("input", "", "an input file is required (use - for stdin)")
	}
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, calcerr.Invalid("input", path, err.Error())
	}
	return f, nil
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
