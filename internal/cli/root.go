package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/config"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// skipConfigAnnotation marks commands that must run even when the configuration is invalid.
const skipConfigAnnotation = "esgcalc/skip-config-load"

// NewRootCmd creates the root Cobra command for the esgcalc CLI.
// It loads configuration, wires up logging, tracing and audit logging, and adds
// the calculator, batch and management subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "esgcalc",
		Short:         "ESG metric calculators",
		Long:          "esgcalc: score environmental aspects, safety frequency rates and CO2-equivalent emissions",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !skipConfigLoad(cmd) {
				if err := loadConfig(cmd); err != nil {
					return err
				}
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $ESGCALC_CONFIG or ~/.esgcalc/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding .esgcalc/config.yaml")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json or ndjson (default from config)")

	cmd.AddCommand(
		NewCO2eCmd(), NewLTIFRCmd(), NewSignificanceCmd(), NewCompareCmd(),
		NewBatchCmd(), NewInventoryCmd(), NewRescoreCmd(),
		newGWPCmd(), newFactorsCmd(), newConfigCmd(),
	)
	return cmd
}

const rootCmdExample = `  # CO2e of 100 L of diesel with the default (AR6) GWP table
  esgcalc co2e --factor diesel_l --quantity 100

  # Lost-time injury frequency rate from measured hours
  esgcalc ltifr --incidents 2 --hours 500000

  # Significance of an environmental aspect
  esgcalc significance --scope regional --severity medium --frequency high --legal

  # Evaluate a file of NDJSON requests and browse the results
  esgcalc batch --input requests.ndjson --interactive

  # Show the effective configuration
  esgcalc config show`

// newGWPCmd creates the gwp command group.
func newGWPCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "gwp", Short: "GWP reference table commands"}
	cmd.AddCommand(NewGWPListCmd())
	return cmd
}

// newFactorsCmd creates the factors command group.
func newFactorsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "factors", Short: "Emission factor registry commands"}
	cmd.AddCommand(NewFactorsListCmd())
	return cmd
}

// newConfigCmd creates the config command group. Its commands load the
// configuration themselves so that an invalid file can still be inspected.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Configuration management commands",
		Annotations: map[string]string{skipConfigAnnotation: "true"},
	}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd(), NewConfigShowCmd())
	return cmd
}

// skipConfigLoad reports whether cmd or one of its parents opted out of config loading.
func skipConfigLoad(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipConfigAnnotation] == "true" {
			return true
		}
	}
	return false
}

// loadConfig loads the global and project configuration and installs it globally.
func loadConfig(cmd *cobra.Command) error {
	cfg, _, err := loadConfigFromFlags(cmd)
	if err != nil {
		return err
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// loadConfigFromFlags resolves --config and --project-dir and loads the merged configuration.
// It also returns the resolved project directory, which is empty outside a project.
func loadConfigFromFlags(cmd *cobra.Command) (*config.Config, string, error) {
	configFlag, _ := cmd.Flags().GetString("config")
	projectFlag, _ := cmd.Flags().GetString("project-dir")

	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	projectDir := config.ResolveProjectDir(cmd.Context(), projectFlag, cwd)

	cfg, err := config.LoadWithProject(cmd.Context(), config.ResolvePath(configFlag), projectDir)
	if err != nil {
		return nil, projectDir, err
	}
	return cfg, projectDir, nil
}
