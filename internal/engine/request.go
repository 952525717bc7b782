package engine

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/benchmark"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/greenops"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/safety"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/significance"
)

// Kind names a calculator.
type Kind string

// Supported request kinds.
const (
	KindSignificance  Kind = "significance"
	KindFrequencyRate Kind = "frequency_rate"
	KindCO2e          Kind = "co2e"
	KindCompare       Kind = "compare"
)

// Kinds returns every supported kind.
func Kinds() []Kind {
	return []Kind{KindSignificance, KindFrequencyRate, KindCO2e, KindCompare}
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	switch k {
	case KindSignificance, KindFrequencyRate, KindCO2e, KindCompare:
		return true
	default:
		return false
	}
}

// Request is one calculator invocation. Exactly the input matching Kind must be set.
//
// Baseline attaches a benchmark comparison to the result; it is not accepted for
// compare requests, which carry their own baseline.
type Request struct {
	ID            string                        `json:"id,omitempty"`
	Kind          Kind                          `json:"kind"`
	Significance  *significance.AssessmentInput `json:"significance,omitempty"`
	FrequencyRate *safety.ExposureMetricInput   `json:"frequency_rate,omitempty"`
	CO2e          *CO2eInput                    `json:"co2e,omitempty"`
	Compare       *CompareInput                 `json:"compare,omitempty"`
	Baseline      *float64                      `json:"baseline,omitempty"`
}

// CO2eInput selects a factor set by registry name or inline, and optionally a quantity of activity.
type CO2eInput struct {
	Factor   string                 `json:"factor,omitempty"`
	Factors  *greenops.GasFactorSet `json:"factors,omitempty"`
	GWPTable string                 `json:"gwp_table,omitempty"`
	Quantity *float64               `json:"quantity,omitempty"`
}

// CompareInput is a direct benchmark comparison.
type CompareInput struct {
	Current       float64 `json:"current"`
	Baseline      float64 `json:"baseline"`
	LowerIsBetter bool    `json:"lower_is_better"`
}

// CO2eResult extends the per-unit equivalence result with the activity it was applied to.
type CO2eResult struct {
	greenops.CO2EquivalenceResult
	Factor   string   `json:"factor,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	// EmissionsKg is Quantity * TotalCO2e, set only when Quantity is.
	EmissionsKg *float64 `json:"emissions_kg,omitempty"`
}

// Response is the result of one Request. Exactly the result matching Kind is set.
type Response struct {
	ID            string                         `json:"id,omitempty"`
	Kind          Kind                           `json:"kind"`
	TableVersion  string                         `json:"table_version,omitempty"`
	Significance  *significance.AssessmentResult `json:"significance,omitempty"`
	FrequencyRate *safety.FrequencyRateResult    `json:"frequency_rate,omitempty"`
	CO2e          *CO2eResult                    `json:"co2e,omitempty"`
	Compare       *benchmark.Comparison          `json:"compare,omitempty"`
	Benchmark     *benchmark.Comparison          `json:"benchmark,omitempty"`
}

// Validate checks that the input matching Kind is present and no other is.
func (r Request) Validate() error {
	if !r.Kind.Valid() {
		return calcerr.Invalid("kind", string(r.Kind), "must be significance, frequency_rate, co2e or compare")
	}

	set := map[Kind]bool{
		KindSignificance:  r.Significance != nil,
		KindFrequencyRate: r.FrequencyRate != nil,
		KindCO2e:          r.CO2e != nil,
		KindCompare:       r.Compare != nil,
	}
	if !set[r.Kind] {
		return calcerr.Invalid(string(r.Kind), "", "input is required for this kind")
	}
	for _, k := range Kinds() {
		if k != r.Kind && set[k] {
			return calcerr.Invalid(string(k), "", fmt.Sprintf("input not allowed on a %s request", r.Kind))
		}
	}

	if r.Baseline != nil {
		if r.Kind == KindCompare {
			return calcerr.Invalid("baseline", "", "compare requests carry their own baseline")
		}
		if math.IsNaN(*r.Baseline) || math.IsInf(*r.Baseline, 0) {
			return calcerr.Invalidf("baseline", *r.Baseline, "must be a finite number")
		}
	}

	if r.CO2e != nil {
		return r.CO2e.validate()
	}
	return nil
}

func (in CO2eInput) validate() error {
	switch {
	case in.Factor != "" && in.Factors != nil:
		return calcerr.Invalid("co2e.factor", in.Factor, "set either a factor name or inline factors, not both")
	case in.Factor == "" && in.Factors == nil:
		return calcerr.Invalid("co2e.factor", "", "a factor name or inline factors is required")
	}
	if in.Quantity != nil {
		q := *in.Quantity
		if math.IsNaN(q) || math.IsInf(q, 0) || q < 0 {
			return calcerr.Invalidf("co2e.quantity", q, "must be a finite number >= 0")
		}
	}
	return nil
}

// Class returns the headline classification of the response: the significance
// category, the frequency-rate classification, the CO2e methodology or the
// comparison direction.
func (r Response) Class() string {
	switch {
	case r.Significance != nil:
		return string(r.Significance.Category)
	case r.FrequencyRate != nil:
		return string(r.FrequencyRate.Classification)
	case r.CO2e != nil:
		return string(r.CO2e.Methodology)
	case r.Compare != nil:
		return string(r.Compare.Direction)
	default:
		return ""
	}
}

// maxLineBytes bounds a single NDJSON request line.
const maxLineBytes = 1 << 20

// DecodeRequests reads newline-delimited JSON requests from r.
// Blank lines and lines starting with '#' are skipped. Unknown fields are rejected.
func DecodeRequests(r io.Reader) ([]Request, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)

	var reqs []Request
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		var req Request
		dec := json.NewDecoder(bytes.NewReader(line))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return nil, calcerr.Invalid("line "+strconv.Itoa(lineNo), "", err.Error())
		}
		if req.ID == "" {
			req.ID = strconv.Itoa(lineNo)
		}
		reqs = append(reqs, req)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, calcerr.Invalid("line "+strconv.Itoa(lineNo+1), "", "line exceeds 1 MiB")
		}
		return nil, fmt.Errorf("reading requests: %w", err)
	}
	return reqs, nil
}
