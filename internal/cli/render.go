package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/benchmark"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/config"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/greenops"
)

const (
	tabPadding      = 2
	defaultBoxWidth = 72
	minBoxWidth     = 40
	maxBoxWidth     = 100
	boxPaddingWidth = 4
	percentSign     = "%"
)

// boxBorderColor returns the lipgloss.Color used for result box borders.
func boxBorderColor() lipgloss.Color { return lipgloss.Color("240") }

// boxTitleColor returns the lipgloss.Color used for result box titles.
func boxTitleColor() lipgloss.Color { return lipgloss.Color("39") }

// classColors maps every classification string to its badge colour.
//
//nolint:gochecknoglobals // Constant lookup table.
var classColors = map[string]lipgloss.Color{
	"excellent":       "42",
	"good":            "39",
	"attention":       "214",
	"critical":        "196",
	"negligible":      "42",
	"moderate":        "214",
	"significant":     "196",
	"not_significant": "42",
	"improving":       "42",
	"worsening":       "196",
	"unchanged":       "246",
	"direct_gwp":      "141",
	"standard_gwp":    "39",
}

// classColor returns the badge colour for a class, grey when unknown.
func classColor(class string) lipgloss.Color {
	if c, ok := classColors[class]; ok {
		return c
	}
	return lipgloss.Color("246")
}

// isWriterTerminal reports whether w is an *os.File attached to a terminal.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// getTerminalWidth returns the width of w's terminal, or a default.
func getTerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultBoxWidth + boxPaddingWidth
}

// calculateBoxWidth clamps the box width to the terminal.
func calculateBoxWidth(termWidth int) int {
	return max(minBoxWidth, min(termWidth-boxPaddingWidth, maxBoxWidth))
}

// view is a renderer-neutral description of one result.
type view struct {
	Title string
	Class string
	Rows  [][2]string
	Table *tableBlock
	Notes []string
	Rec   *Recommendation
}

type tableBlock struct {
	Headers []string
	Rows    [][]string
}

// renderer writes results in one of the output formats. Table output is styled
// with Lip Gloss when the writer is a terminal and plain text otherwise.
type renderer struct {
	w         io.Writer
	format    string
	styled    bool
	precision int
}

func newRenderer(w io.Writer, format string) *renderer {
	return &renderer{
		w:         w,
		format:    format,
		styled:    format == config.FormatTable && isWriterTerminal(w),
		precision: config.GetOutputPrecision(),
	}
}

// encode writes v as indented JSON or as a single NDJSON line.
func (r *renderer) encode(v any) error {
	enc := json.NewEncoder(r.w)
	if r.format == config.FormatJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// Response renders a single evaluation.
func (r *renderer) Response(resp engine.Response) error {
	if r.format != config.FormatTable {
		return r.encode(responseOutput{Response: resp, Recommendation: Recommend(resp)})
	}
	return r.view(r.responseView(resp))
}

// responseOutput is the JSON shape of a single evaluation.
type responseOutput struct {
	engine.Response
	Recommendation *Recommendation `json:"recommendation,omitempty"`
}

func (r *renderer) responseView(resp engine.Response) view {
	var v view
	switch {
	case resp.Significance != nil:
		v = r.significanceView(resp)
	case resp.FrequencyRate != nil:
		v = r.rateView(resp)
	case resp.CO2e != nil:
		v = r.co2eView(resp)
	case resp.Compare != nil:
		v = view{Title: "COMPARISON", Rows: r.comparisonRows(*resp.Compare, "")}
	}
	v.Class = resp.Class()
	if resp.Benchmark != nil {
		v.Rows = append(v.Rows, r.comparisonRows(*resp.Benchmark, "Benchmark ")...)
	}
	v.Rec = Recommend(resp)
	return v
}

func (r *renderer) significanceView(resp engine.Response) view {
	s := resp.Significance
	return view{
		Title: "SIGNIFICANCE ASSESSMENT",
		Rows: [][2]string{
			{"Consequence score", strconv.Itoa(s.ConsequenceScore)},
			{"Likelihood score", strconv.Itoa(s.FrequencyProbabilityScore)},
			{"Total score", strconv.Itoa(s.TotalScore)},
			{"Category", string(s.Category)},
			{"Significance", string(s.Significance)},
			{"Scoring tables", resp.TableVersion},
		},
	}
}

func (r *renderer) rateView(resp engine.Response) view {
	f := resp.FrequencyRate
	return view{
		Title: "FREQUENCY RATE",
		Rows: [][2]string{
			{"Rate", fmt.Sprintf("%s per %s exposure units",
				greenops.FormatFloat(f.Rate, r.precision), greenops.FormatFloat(f.StandardBlock, 0))},
			{"Classification", string(f.Classification)},
			{"Data quality", fmt.Sprintf("%s (%d%s confidence)", f.DataQuality, f.ConfidenceLevel, percentSign)},
			{"Exposure source", string(f.ExposureSource)},
		},
	}
}

func (r *renderer) co2eView(resp engine.Response) view {
	c := resp.CO2e
	v := view{Title: "CO2 EQUIVALENCE"}

	if c.Factor != "" {
		factor := c.Factor
		if c.Unit != "" {
			factor += " (per " + c.Unit + ")"
		}
		v.Rows = append(v.Rows, [2]string{"Factor", factor})
	}
	v.Rows = append(v.Rows,
		[2]string{"Methodology", c.MethodologyLabel},
		[2]string{"CO2e per unit", c.FormattedTotal + " kg CO2e"},
	)
	if c.Methodology == greenops.MethodologyStandardGWP {
		v.Rows = append(v.Rows, [2]string{"GWP table", resp.TableVersion})
	}
	if c.Quantity != nil {
		v.Rows = append(v.Rows, [2]string{"Quantity", strings.TrimSpace(formatOptionalFloat(c.Quantity) + " " + c.Unit)})
	}
	if c.EmissionsKg != nil {
		v.Rows = append(v.Rows, [2]string{"Emissions", greenops.FormatCO2e(*c.EmissionsKg, c.Methodology) + " kg CO2e"})
		if eq, err := greenops.Equivalencies(*c.EmissionsKg); err == nil && !eq.IsEmpty {
			v.Notes = append(v.Notes, eq.DisplayText)
		}
	}
	if c.IgnoredPerGasFactors {
		v.Notes = append(v.Notes, "Per-gas factors were ignored: the direct GWP value takes precedence")
	}

	tb := &tableBlock{Headers: []string{"Gas", "Factor", "GWP", "Contribution"}}
	for _, g := range c.PerGasBreakdown {
		tb.Rows = append(tb.Rows, []string{
			g.Label,
			strconv.FormatFloat(g.Factor, 'g', -1, 64),
			greenops.FormatFloat(g.GWP, 0),
			greenops.FormatCO2e(g.ContributionCO2e, c.Methodology),
		})
	}
	v.Table = tb
	return v
}

func (r *renderer) comparisonRows(c benchmark.Comparison, prefix string) [][2]string {
	verdict := "worse"
	if c.IsBetter {
		verdict = "better"
	}
	if c.Direction == benchmark.Unchanged {
		verdict = "no material change"
	}
	return [][2]string{
		{prefix + "baseline", greenops.FormatFloat(c.Baseline, r.precision)},
		{prefix + "current", greenops.FormatFloat(c.Current, r.precision)},
		{prefix + "change", fmt.Sprintf("%+.*f (%+.*f%s)", r.precision, c.Delta, r.precision, c.PercentChange, percentSign)},
		{prefix + "direction", fmt.Sprintf("%s (%s)", c.Direction, verdict)},
	}
}

// view writes v as a styled box or as plain text.
func (r *renderer) view(v view) error {
	if r.styled {
		return r.styledView(v)
	}
	return r.plainView(v)
}

func (r *renderer) plainView(v view) error {
	var b strings.Builder
	b.WriteString(v.Title + "\n")
	b.WriteString(strings.Repeat("=", len(v.Title)) + "\n")
	writeBody(&b, v)
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *renderer) styledView(v view) error {
	boxWidth := calculateBoxWidth(getTerminalWidth(r.w))

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(boxTitleColor())
	badgeStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1).
		Foreground(lipgloss.Color("0")).Background(classColor(v.Class))
	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(boxBorderColor()).
		Padding(0, 1).
		Width(boxWidth)

	var content strings.Builder
	content.WriteString(titleStyle.Render(v.Title))
	if v.Class != "" {
		content.WriteString("  " + badgeStyle.Render(strings.ToUpper(v.Class)))
	}
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", boxWidth-boxPaddingWidth))
	content.WriteString("\n")
	writeBody(&content, v)

	_, err := fmt.Fprintln(r.w, borderStyle.Render(strings.TrimRight(content.String(), "\n")))
	return err
}

// writeBody writes the rows, the breakdown table, notes and recommendations.
func writeBody(b *strings.Builder, v view) {
	tw := tabwriter.NewWriter(b, 0, 0, tabPadding, ' ', 0)
	for _, row := range v.Rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	_ = tw.Flush()

	if v.Table != nil && len(v.Table.Rows) > 0 {
		b.WriteString("\n")
		writeTable(b, v.Table.Headers, v.Table.Rows)
	}

	if len(v.Notes) > 0 {
		b.WriteString("\n")
		for _, n := range v.Notes {
			b.WriteString(n + "\n")
		}
	}

	if v.Rec != nil {
		b.WriteString("\n" + v.Rec.Title + ":\n")
		for _, a := range v.Rec.Actions {
			b.WriteString("  - " + a + "\n")
		}
	}
}

// writeTable writes a tab-aligned table with a dashed header underline.
func writeTable(w io.Writer, headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	dashes := make([]string, len(headers))
	for i, h := range headers {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}
