package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/config"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/greenops"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/record"
)

// maxRecordLine bounds a single record line.
const maxRecordLine = 1 << 20

// NewRescoreCmd creates the rescore command, which re-evaluates stored records
// against the current tables.
func NewRescoreCmd() *cobra.Command {
	var input, gwpTable string

	cmd := &cobra.Command{
		Use:   "rescore",
		Short: "Re-evaluate stored records against current tables",
		Long: `Re-evaluates records written by 'esgcalc batch --records' with the tables of
the current configuration and reports which results changed. The stored records
are never modified.

Use --gwp-table to re-score CO2e records against a specific table, for example
after an IPCC assessment report revision.`,
		Example: `  # Re-score every CO2e record against AR6
  esgcalc rescore --input records.ndjson --gwp-table ar6

  # Only the changes, as NDJSON
  esgcalc rescore --input records.ndjson -o ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRescore(cmd, input, gwpTable)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "NDJSON record file (- for stdin)")
	cmd.Flags().StringVar(&gwpTable, "gwp-table", "", "GWP table name or version constraint for CO2e records")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runRescore(cmd *cobra.Command, input, gwpTable string) error {
	start := time.Now()
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	records, err := readRecords(cmd, input)
	if err != nil {
		return err
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	opts := record.RescoreOptions{GWPTable: gwpTable}
	out := make([]record.Rescored, 0, len(records))
	for _, rec := range records {
		res, err := record.Rescore(cmd.Context(), eng, rec, opts)
		if err != nil {
			auditCommand(cmd, start, map[string]string{"input": input, "gwp_table": gwpTable}, len(out), err)
			return err
		}
		out = append(out, res)
	}
	auditCommand(cmd, start, map[string]string{"input": input, "gwp_table": gwpTable}, len(out), nil)

	r := newRenderer(cmd.OutOrStdout(), format)
	switch format {
	case config.FormatJSON:
		return r.encode(out)
	case config.FormatNDJSON:
		for _, res := range out {
			if err := r.encode(res); err != nil {
				return err
			}
		}
		return nil
	}
	return renderRescored(cmd.OutOrStdout(), out, r.precision)
}

func readRecords(cmd *cobra.Command, path string) ([]record.Record, error) {
	in, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxRecordLine)

	var records []record.Record
	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		rec, err := record.Unmarshal(data)
		if err != nil {
			return nil, calcerr.Invalid("line "+strconv.Itoa(line), "", err.Error())
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	if len(records) == 0 {
		return nil, calcerr.Invalid("input", path, "no records found")
	}
	return records, nil
}

func renderRescored(w io.Writer, out []record.Rescored, precision int) error {
	rows := make([][]string, len(out))
	changed := 0
	for i, res := range out {
		status := "unchanged"
		if res.Changed {
			status = "changed"
			changed++
		}
		rows[i] = []string{
			res.Record.ID.String(),
			string(res.Record.Kind),
			tableText(res.Before.TableVersion) + " -> " + tableText(res.After.TableVersion),
			metricText(res.Before, precision),
			metricText(res.After, precision),
			string(res.TableChange),
			status,
		}
	}
	writeTable(w, []string{"RECORD", "KIND", "TABLES", "BEFORE", "AFTER", "TABLE CHANGE", "STATUS"}, rows)
	_, err := fmt.Fprintf(w, "\n%d records, %d changed\n", len(out), changed)
	return err
}

func metricText(resp engine.Response, precision int) string {
	v, _, ok := resp.Metric()
	if !ok {
		return "-"
	}
	return greenops.FormatFloat(v, precision)
}

func tableText(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
