package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/config"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/greenops"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/safety"
)

// ltifrParams holds the flags of the ltifr command.
type ltifrParams struct {
	incidents      int
	hours          float64
	headcount      int
	hoursPerWorker float64
	source         string
	block          float64
	daysLost       float64
}

// NewLTIFRCmd creates the ltifr command, which computes a lost-time injury
// frequency rate per standard exposure block.
func NewLTIFRCmd() *cobra.Command {
	var p ltifrParams

	cmd := &cobra.Command{
		Use:   "ltifr",
		Short: "Compute a lost-time injury frequency rate",
		Long: `Computes incidents per standard block of exposure hours (1,000,000 by default)
and classifies the rate as excellent, good, attention or critical.

Exposure is either measured hours (--hours) or estimated from headcount
(--headcount, with --hours-per-worker defaulting to 2000). The exposure source
sets the data quality grade and confidence of the result.`,
		Example: `  # Measured hours
  esgcalc ltifr --incidents 2 --hours 500000

  # Estimated from headcount, with a severity rate
  esgcalc ltifr --incidents 3 --headcount 250 --days-lost 41

  # Rate per 200,000 hours
  esgcalc ltifr --incidents 1 --hours 180000 --block 200000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLTIFR(cmd, p)
		},
	}

	cmd.Flags().IntVar(&p.incidents, "incidents", 0, "number of lost-time incidents")
	cmd.Flags().Float64Var(&p.hours, "hours", 0, "measured exposure hours")
	cmd.Flags().IntVar(&p.headcount, "headcount", 0, "headcount used to estimate exposure hours")
	cmd.Flags().Float64Var(&p.hoursPerWorker, "hours-per-worker", safety.DefaultHoursPerWorker,
		"hours per worker when estimating from headcount")
	cmd.Flags().StringVar(&p.source, "source", "",
		"exposure source: measured, estimated_from_headcount or estimated_default (default from the exposure flags)")
	cmd.Flags().Float64Var(&p.block, "block", 0, "standard exposure block (default from config)")
	cmd.Flags().Float64Var(&p.daysLost, "days-lost", 0, "days lost; adds a severity rate to the output")
	cmd.Flags().Float64("baseline", 0, "baseline rate to benchmark against")
	_ = cmd.MarkFlagRequired("incidents")

	return cmd
}

func runLTIFR(cmd *cobra.Command, p ltifrParams) error {
	in, err := exposureInput(cmd, p)
	if err != nil {
		return err
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("block") {
		if eng, err = eng.WithStandardBlock(p.block); err != nil {
			return err
		}
	}

	req := engine.Request{
		Kind:          engine.KindFrequencyRate,
		FrequencyRate: &in,
		Baseline:      changedFloat(cmd, "baseline"),
	}
	params := map[string]string{
		"incidents":       strconv.Itoa(in.IncidentCount),
		"exposure_units":  strconv.FormatFloat(in.ExposureUnits, 'g', -1, 64),
		"exposure_source": string(in.ExposureSource),
	}
	if err = runSingle(cmd, eng, req, params); err != nil {
		return err
	}

	if cmd.Flags().Changed("days-lost") {
		calc := eng.SafetyCalculator()
		severity, err := calc.SeverityRate(p.daysLost, in.ExposureUnits)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if format, _ := outputFormat(cmd); format != config.FormatTable {
			w = cmd.ErrOrStderr()
		}
		fmt.Fprintf(w, "Severity rate: %s days lost per %s exposure units\n",
			greenops.FormatFloat(severity, 2), greenops.FormatFloat(calc.StandardBlock, 0))
	}
	return nil
}

// exposureInput builds the calculator input from either --hours or --headcount.
func exposureInput(cmd *cobra.Command, p ltifrParams) (safety.ExposureMetricInput, error) {
	hoursSet := cmd.Flags().Changed("hours")
	headcountSet := cmd.Flags().Changed("headcount")

	var in safety.ExposureMetricInput
	switch {
	case hoursSet && headcountSet:
		return in, calcerr.Invalid("hours", "", "use either --hours or --headcount, not both")
	case hoursSet:
		in = safety.ExposureMetricInput{
			IncidentCount:  p.incidents,
			ExposureUnits:  p.hours,
			ExposureSource: safety.SourceMeasured,
		}
	case headcountSet:
		var err error
		in, err = safety.EstimateExposureFromHeadcount(p.incidents, p.headcount, p.hoursPerWorker)
		if err != nil {
			return in, err
		}
	default:
		return in, calcerr.Invalid("hours", "", "either --hours or --headcount is required")
	}

	if p.source != "" {
		in.ExposureSource = safety.ExposureSource(p.source)
	}
	return in, nil
}

