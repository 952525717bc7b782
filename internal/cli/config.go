package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/config"
)

const projectConfigDirPerm = 0o750

// NewConfigInitCmd creates the config init command for initializing configuration.
// With --project it creates a project-local .esgcalc/ directory with config.yaml and
// .gitignore; otherwise it writes the global configuration file.
func NewConfigInitCmd() *cobra.Command {
	var force, project bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

By default the global file (~/.esgcalc/config.yaml, or --config) is written.
With --project, a project-local .esgcalc/config.yaml is created in the current
directory (or --project-dir) together with a .gitignore that keeps logs and
records out of version control.`,
		Example: `  # Create the global configuration
  esgcalc config init

  # Create project-local configuration
  esgcalc config init --project

  # Overwrite an existing file
  esgcalc config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if project {
				return initProjectConfig(cmd, force)
			}
			configFlag, _ := cmd.Flags().GetString("config")
			return writeDefaultConfig(cmd, config.ResolvePath(configFlag), force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "create project-local configuration")

	return cmd
}

func initProjectConfig(cmd *cobra.Command, force bool) error {
	projectFlag, _ := cmd.Flags().GetString("project-dir")
	projectDir := config.ResolveProjectDir(cmd.Context(), projectFlag, "")
	if projectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		projectDir = filepath.Join(cwd, ".esgcalc")
	}

	if err := os.MkdirAll(projectDir, projectConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create project config directory: %w", err)
	}
	if err := writeDefaultConfig(cmd, filepath.Join(projectDir, "config.yaml"), force); err != nil {
		return err
	}

	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}
	if created {
		cmd.Printf("Created .gitignore to keep logs and records out of version control\n")
	}
	return nil
}

func writeDefaultConfig(cmd *cobra.Command, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if err := config.Default().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the global configuration merged with any project configuration.

This includes:
- YAML syntax
- output, logging and batch settings
- GWP tables, including the default table
- frequency-rate bands and data-quality grades
- significance scoring tables
- emission factor entries`,
		Example: `  # Validate current configuration
  esgcalc config validate

  # Validate and show the loaded tables
  esgcalc config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, projectDir, err := loadConfigFromFlags(cmd)
			if err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			cmd.Printf("Configuration is valid\n")
			if verbose {
				return printVerboseDetails(cmd, cfg, projectDir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")
	return cmd
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config, projectDir string) error {
	tables, err := cfg.GWP.TableSet()
	if err != nil {
		return err
	}
	scoring, err := cfg.Significance.ScoringTables()
	if err != nil {
		return err
	}
	registry, err := cfg.FactorRegistry()
	if err != nil {
		return err
	}

	cmd.Println()
	cmd.Println("Configuration details:")
	if projectDir != "" {
		cmd.Printf("  Project directory: %s\n", projectDir)
	}
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  GWP tables: %d (default %s)\n", len(tables.Tables()), tables.Default().ID())
	cmd.Printf("  Significance tables: %s\n", scoring.Version)
	cmd.Printf("  Standard exposure block: %.0f\n", cfg.Safety.StandardBlock)
	cmd.Printf("  Emission factors: %d\n", len(registry.Names()))
	cmd.Printf("  Batch concurrency: %d\n", cfg.Batch.Concurrency)
	return nil
}

// NewConfigShowCmd creates the config show command, which prints the effective configuration.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Prints the configuration after merging the global file, the project file and
environment overrides. YAML by default; -o json prints JSON.`,
		Example: `  esgcalc config show
  esgcalc config show -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfigFromFlags(cmd)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("output")
			if format == config.FormatJSON || format == config.FormatNDJSON {
				return newRenderer(cmd.OutOrStdout(), format).encode(cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshalling config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
