package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/config"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine/batch"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/greenops"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/logging"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/metrics"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/record"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/tui"
)

// Batch row statuses.
const (
	statusOK    = "ok"
	statusError = "error"
)

// batchParams holds the flags of the batch command.
type batchParams struct {
	input       string
	records     string
	concurrency int
	interactive bool
	metricsFile string
}

// NewBatchCmd creates the batch command, which evaluates NDJSON requests concurrently.
func NewBatchCmd() *cobra.Command {
	var p batchParams

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate a file of calculator requests",
		Long: `Evaluates newline-delimited JSON requests concurrently. Each line is one
request with a "kind" of significance, frequency_rate, co2e or compare and the
matching input object. Blank lines and lines starting with # are skipped.

Results are reported in input order. A rejected request does not stop the run:
its error is reported in its row and the command exits 1 once every request has
been evaluated.

With --records, every successful evaluation is also written as an auditable
record (one JSON object per line) that 'esgcalc rescore' can re-evaluate later.`,
		Example: `  # Evaluate a file
  esgcalc batch --input requests.ndjson

  # Read from stdin, emit NDJSON and keep records
  cat requests.ndjson | esgcalc batch --input - -o ndjson --records records.ndjson

  # Browse the results interactively
  esgcalc batch --input requests.ndjson --interactive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, p)
		},
	}

	cmd.Flags().StringVarP(&p.input, "input", "i", "", "NDJSON request file (- for stdin)")
	cmd.Flags().StringVar(&p.records, "records", "", "write evaluation records to this NDJSON file")
	cmd.Flags().IntVar(&p.concurrency, "concurrency", 0, "concurrent evaluations (default from config)")
	cmd.Flags().BoolVar(&p.interactive, "interactive", false, "browse the results in an interactive table")
	cmd.Flags().StringVar(&p.metricsFile, "metrics-file", "",
		"write Prometheus metrics to this textfile after the run (default from config)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runBatch(cmd *cobra.Command, p batchParams) error {
	start := time.Now()
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	reqs, err := readRequests(cmd, p.input)
	if err != nil {
		return err
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	opts := batchOptions(cmd, p)
	if isWriterTerminal(cmd.ErrOrStderr()) && !p.interactive {
		opts.OnProgress = progressPrinter(cmd.ErrOrStderr())
	}

	results, runErr := eng.EvaluateBatch(ctx, reqs, opts)
	failed := engine.FailedCount(results)
	params := map[string]string{
		"input":       p.input,
		"requests":    strconv.Itoa(len(reqs)),
		"concurrency": strconv.Itoa(opts.Concurrency),
	}
	auditCommand(cmd, start, params, len(reqs)-failed, runErr)
	if runErr != nil {
		return runErr
	}

	if p.records != "" {
		if err := writeRecords(p.records, reqs, results); err != nil {
			return err
		}
		log.Info().Str("path", p.records).Int("records", len(reqs)-failed).Msg("records written")
	}

	if err := writeMetricsFile(p.metricsFile); err != nil {
		log.Warn().Err(err).Msg("metrics textfile not written")
	}

	if p.interactive {
		if err := tui.RunBatchBrowser(ctx, batchRows(reqs, results, true)); err != nil {
			return err
		}
	} else if err := renderBatch(cmd.OutOrStdout(), format, reqs, results); err != nil {
		return err
	}

	if failed > 0 {
		return &BatchExitError{Failed: failed, Total: len(reqs)}
	}
	return nil
}

func readRequests(cmd *cobra.Command, path string) ([]engine.Request, error) {
	in, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	reqs, err := engine.DecodeRequests(in)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, calcerr.Invalid("input", path, "no requests found")
	}
	return reqs, nil
}

// batchOptions resolves concurrency and batch size from flags and configuration.
func batchOptions(cmd *cobra.Command, p batchParams) batch.Options {
	cfg := config.GetGlobalConfig()
	opts := batch.Options{
		Concurrency: cfg.Batch.Concurrency,
		BatchSize:   cfg.Batch.BatchSize,
	}
	if cmd.Flags().Changed("concurrency") {
		opts.Concurrency = p.concurrency
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	return opts
}

// progressPrinter returns a progress callback that redraws one status line on w.
func progressPrinter(w io.Writer) batch.ProgressCallback {
	return func(s batch.ProgressSnapshot) {
		fmt.Fprintf(w, "\r%d/%d requests (%.0f%%)", s.ProcessedItems, s.TotalItems, s.PercentComplete)
		if s.IsComplete() {
			fmt.Fprintln(w)
		}
	}
}

func writeMetricsFile(flagValue string) error {
	path := flagValue
	if path == "" {
		path = config.GetGlobalConfig().Metrics.Textfile
	}
	if path == "" {
		return nil
	}
	return metrics.WriteTextfile(path)
}

// writeRecords writes one record per successful result to path.
func writeRecords(path string, reqs []engine.Request, results []batch.Result[engine.Response]) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating records file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	entropy := ulid.DefaultEntropy()
	now := time.Now()
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		rec, err := record.FromResponse(reqs[res.Index], res.Value, now, entropy)
		if err != nil {
			return err
		}
		data, err := rec.Marshal()
		if err != nil {
			return err
		}
		_, _ = w.Write(data)
		_ = w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing records file: %w", err)
	}
	return nil
}

// batchItem is the JSON shape of one batch result.
type batchItem struct {
	Index  int             `json:"index"`
	ID     string          `json:"id"`
	Kind   engine.Kind     `json:"kind"`
	Result *responseOutput `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func renderBatch(w io.Writer, format string, reqs []engine.Request, results []batch.Result[engine.Response]) error {
	r := newRenderer(w, format)
	switch format {
	case config.FormatJSON:
		items := make([]batchItem, len(results))
		for i, res := range results {
			items[i] = newBatchItem(reqs[i], res)
		}
		return r.encode(items)
	case config.FormatNDJSON:
		for i, res := range results {
			if err := r.encode(newBatchItem(reqs[i], res)); err != nil {
				return err
			}
		}
		return nil
	}

	rows := batchRows(reqs, results, false)
	table := make([][]string, len(rows))
	for i, row := range rows {
		table[i] = []string{
			strconv.Itoa(row.Index + 1), row.ID, row.Kind, row.Value, row.Class, row.Benchmark, row.Status,
		}
	}
	writeTable(w, []string{"#", "ID", "KIND", "VALUE", "CLASS", "BENCHMARK", "STATUS"}, table)

	failed := engine.FailedCount(results)
	_, err := fmt.Fprintf(w, "\n%d requests, %d ok, %d failed\n", len(results), len(results)-failed, failed)
	return err
}

func newBatchItem(req engine.Request, res batch.Result[engine.Response]) batchItem {
	item := batchItem{Index: res.Index, ID: req.ID, Kind: req.Kind}
	if res.Err != nil {
		item.Error = res.Err.Error()
		return item
	}
	item.Result = &responseOutput{Response: res.Value, Recommendation: Recommend(res.Value)}
	return item
}

// batchRows flattens results for the table and the interactive browser.
// withDetail renders each successful result as plain text for the detail pane.
func batchRows(reqs []engine.Request, results []batch.Result[engine.Response], withDetail bool) []tui.BatchRow {
	precision := config.GetOutputPrecision()
	rows := make([]tui.BatchRow, len(results))
	for i, res := range results {
		row := tui.BatchRow{Index: res.Index, ID: reqs[i].ID, Kind: string(reqs[i].Kind), Status: statusOK}
		if res.Err != nil {
			row.Status = statusError
			row.Err = res.Err.Error()
			row.Detail = "Error: " + row.Err
			rows[i] = row
			continue
		}

		resp := res.Value
		if value, _, ok := resp.Metric(); ok {
			row.Value = greenops.FormatFloat(value, precision)
		}
		row.Class = resp.Class()
		if b := resp.Benchmark; b != nil {
			row.Benchmark = fmt.Sprintf("%s (%+.*f%%)", b.Direction, precision, b.PercentChange)
		}
		if withDetail {
			var buf bytes.Buffer
			if err := newRenderer(&buf, config.FormatTable).Response(resp); err == nil {
				row.Detail = buf.String()
			}
		}
		rows[i] = row
	}
	return rows
}
