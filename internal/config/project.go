package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/logging"
)

// ResolveProjectDir determines the project-local .esgcalc directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. ESGCALC_PROJECT_DIR env var
//  3. a walk up from startDir looking for a .esgcalc directory with a config.yaml
//
// Returns the absolute path to the .esgcalc directory, or "" if none is found.
// The global ~/.esgcalc directory is never treated as a project directory.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	if startDir == "" {
		return ""
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	global, _ := filepath.Abs(Dir())

	for {
		candidate := filepath.Join(dir, dirName)
		if candidate != global {
			if _, statErr := os.Stat(filepath.Join(candidate, fileName)); statErr == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadWithProject loads the global config at path and shallow-merges the project
// config in projectDir on top. An empty projectDir behaves like Load.
//
// A project file that cannot be read or parsed is logged and skipped. A merged
// configuration that fails validation is an error.
func LoadWithProject(ctx context.Context, path, projectDir string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if projectDir == "" {
		return cfg, nil
	}

	overlayPath := filepath.Join(projectDir, fileName)
	if _, statErr := os.Stat(overlayPath); statErr != nil {
		// Missing project config is not an error; use global settings.
		return cfg, nil
	}

	merged := *cfg
	if err = ShallowMergeYAML(&merged, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global settings")
		return cfg, nil
	}

	merged.ApplyEnvOverrides()
	if err = merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// toAbsProjectDir converts dir to an absolute path and appends ".esgcalc".
// A path that already ends in ".esgcalc" is returned as-is after resolution.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == dirName {
		return abs
	}

	return filepath.Join(abs, dirName)
}
