package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/logging"
)

const outputTypeFile = "file"

// LoggingConfig is the logging section.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	// File sends logs to a file instead of stderr when set.
	File  string      `yaml:"file,omitempty" json:"file,omitempty"`
	Audit AuditConfig `yaml:"audit"          json:"audit"`
}

// AuditConfig controls the JSON-lines audit trail of CLI evaluations.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	File    string `yaml:"file"    json:"file"`
}

// ToLoggingConfig converts the section for logging.NewLoggerWithPath.
//
// The conversion applies these rules:
//   - Level, Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = outputTypeFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// EnsureLogDir creates the directories of the configured log and audit files.
func (lc *LoggingConfig) EnsureLogDir() error {
	for _, path := range []string{lc.File, lc.Audit.File} {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), configDirPerm); err != nil {
			return fmt.Errorf("creating log directory for %s: %w", path, err)
		}
	}
	return nil
}
