package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyLogging      = "logging"
	keyOutput       = "output"
	keyGWP          = "gwp"
	keySafety       = "safety"
	keySignificance = "significance"
	keyFactors      = "factors"
	keyBatch        = "batch"
	keyMetrics      = "metrics"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyLogging:      true,
	keyOutput:       true,
	keyGWP:          true,
	keySafety:       true,
	keySignificance: true,
	keyFactors:      true,
	keyBatch:        true,
	keyMetrics:      true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Keys present in the overlay replace entire sections
// in the target. Keys absent in the overlay are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]interface{}
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	for key, value := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		// Re-marshal the single section so it can be decoded onto the typed field.
		sectionBytes, marshalErr := yaml.Marshal(value)
		if marshalErr != nil {
			return fmt.Errorf("re-marshalling overlay section %q: %w", key, marshalErr)
		}

		if err = unmarshalSection(target, key, sectionBytes); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes data into a fresh value for the section named key and
// replaces that section of target. Decoding into a fresh value matters because
// yaml.Unmarshal merges into existing maps.
func unmarshalSection(target *Config, key string, data []byte) error {
	switch key {
	case keyLogging:
		return decodeInto(data, &target.Logging)
	case keyOutput:
		return decodeInto(data, &target.Output)
	case keyGWP:
		return decodeInto(data, &target.GWP)
	case keySafety:
		return decodeInto(data, &target.Safety)
	case keySignificance:
		return decodeInto(data, &target.Significance)
	case keyFactors:
		return decodeInto(data, &target.Factors)
	case keyBatch:
		return decodeInto(data, &target.Batch)
	case keyMetrics:
		return decodeInto(data, &target.Metrics)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

func decodeInto[T any](data []byte, field *T) error {
	var v T
	if err := yaml.Unmarshal(data, &v); err != nil {
		return err
	}
	*field = v
	return nil
}
