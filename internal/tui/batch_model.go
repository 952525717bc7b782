package tui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	listview "github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/tui/list"
)

// ViewState is the screen the browser is showing.
type ViewState int

// Browser screens.
const (
	ViewStateList ViewState = iota
	ViewStateDetail
	ViewStateQuitting
)

// BatchSortField selects the row ordering.
type BatchSortField int

// Sort orders, cycled with the s key.
const (
	SortByIndex BatchSortField = iota
	SortByKind
	SortByStatus
	numBatchSortFields
)

func (f BatchSortField) String() string {
	switch f {
	case SortByKind:
		return "kind"
	case SortByStatus:
		return "status"
	default:
		return "input order"
	}
}

// Column widths.
const (
	colIndex     = 5
	colID        = 18
	colKind      = 15
	colValue     = 14
	colClass     = 16
	colBenchmark = 22
)

// BatchRow is one evaluated request as shown in the browser.
type BatchRow struct {
	Index     int
	ID        string
	Kind      string
	Value     string
	Class     string
	Benchmark string
	Status    string
	// Err is the rejection message; empty for successful rows.
	Err string
	// Detail is the full rendered result shown in the detail pane.
	Detail string
}

// Failed reports whether the request was rejected.
func (r BatchRow) Failed() bool {
	return r.Err != ""
}

// BatchSummary aggregates a set of rows.
type BatchSummary struct {
	Total   int
	OK      int
	Failed  int
	ByKind  map[string]int
	ByClass map[string]int
}

// NewBatchSummary counts rows by outcome, kind and class.
func NewBatchSummary(rows []BatchRow) BatchSummary {
	s := BatchSummary{
		Total:   len(rows),
		ByKind:  make(map[string]int),
		ByClass: make(map[string]int),
	}
	for _, r := range rows {
		s.ByKind[r.Kind]++
		if r.Failed() {
			s.Failed++
			continue
		}
		s.OK++
		if r.Class != "" {
			s.ByClass[r.Class]++
		}
	}
	return s
}

// BatchViewModel is the Bubble Tea model of the batch browser.
type BatchViewModel struct {
	state   ViewState
	allRows []BatchRow
	rows    []BatchRow

	list      *listview.VirtualListModel[BatchRow]
	textInput textinput.Model

	width      int
	height     int
	sortBy     BatchSortField
	showFilter bool
	errorsOnly bool

	summary BatchSummary
}

// NewBatchViewModel creates a browser over rows.
func NewBatchViewModel(rows []BatchRow) *BatchViewModel {
	m := &BatchViewModel{
		state:     ViewStateList,
		allRows:   rows,
		textInput: newFilterInput(),
		width:     defaultWidth,
		height:    defaultHeight,
		summary:   NewBatchSummary(rows),
	}
	m.applyView()
	return m
}

// RunBatchBrowser shows rows full-screen until the user quits or ctx is cancelled.
func RunBatchBrowser(ctx context.Context, rows []BatchRow) error {
	p := tea.NewProgram(NewBatchViewModel(rows), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running batch browser: %w", err)
	}
	return nil
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Filter by id, kind, class or error..."
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}

// State returns the current screen.
func (m *BatchViewModel) State() ViewState { return m.state }

// Rows returns the rows currently listed, after filtering and sorting.
func (m *BatchViewModel) Rows() []BatchRow { return m.rows }

// Summary returns the summary of all rows.
func (m *BatchViewModel) Summary() BatchSummary { return m.summary }

// SortBy returns the active sort order.
func (m *BatchViewModel) SortBy() BatchSortField { return m.sortBy }

// SelectedRow returns the highlighted row.
func (m *BatchViewModel) SelectedRow() (BatchRow, bool) {
	if m.list == nil || len(m.rows) == 0 {
		return BatchRow{}, false
	}
	i := m.list.Selected()
	if i < 0 || i >= len(m.rows) {
		return BatchRow{}, false
	}
	return m.rows[i], true
}

// Init implements tea.Model.
func (m *BatchViewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *BatchViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.rebuildList()
		return m, nil
	}

	if m.showFilter {
		return m.handleFilterInput(msg)
	}

	switch m.state {
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	default:
		return m, nil
	}
}

func (m *BatchViewModel) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showFilter = false
			m.textInput.Blur()
			m.applyView()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *BatchViewModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEnter:
			if len(m.rows) > 0 {
				m.state = ViewStateDetail
			}
			return m, nil
		case keySlash:
			m.showFilter = true
			return m, m.textInput.Focus()
		case keySort:
			m.sortBy = (m.sortBy + 1) % numBatchSortFields
			m.applyView()
			return m, nil
		case keyErrors:
			m.errorsOnly = !m.errorsOnly
			m.applyView()
			return m, nil
		case keyEsc:
			if m.textInput.Value() != "" {
				m.textInput.SetValue("")
				m.applyView()
			}
			return m, nil
		}
	}

	if m.list != nil {
		m.list.Update(msg)
	}
	return m, nil
}

func (m *BatchViewModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc, keyEnter:
			m.state = ViewStateList
		}
	}
	return m, nil
}

// applyView recomputes the listed rows from the filter, the errors toggle and the sort.
func (m *BatchViewModel) applyView() {
	query := strings.ToLower(strings.TrimSpace(m.textInput.Value()))

	rows := make([]BatchRow, 0, len(m.allRows))
	for _, r := range m.allRows {
		if m.errorsOnly && !r.Failed() {
			continue
		}
		if query != "" && !rowMatches(r, query) {
			continue
		}
		rows = append(rows, r)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch m.sortBy {
		case SortByKind:
			if a.Kind != b.Kind {
				return a.Kind < b.Kind
			}
		case SortByStatus:
			if a.Failed() != b.Failed() {
				return a.Failed()
			}
		default:
		}
		return a.Index < b.Index
	})

	m.rows = rows
	m.rebuildList()
}

func rowMatches(r BatchRow, query string) bool {
	for _, field := range []string{r.ID, r.Kind, r.Class, r.Status, r.Err} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (m *BatchViewModel) rebuildList() {
	selected := 0
	if m.list != nil {
		selected = m.list.Selected()
	}
	height := max(m.height-summaryHeight-chromeHeight, minHeight)
	m.list = listview.NewVirtualListModel(m.rows, height, m.width, renderBatchRow)
	m.list.SetSelected(selected)
}

func renderBatchRow(r BatchRow, selected bool) string {
	row := formatColumns(strconv.Itoa(r.Index+1), r.ID, r.Kind, r.Value, r.Class, r.Benchmark, r.Status)
	switch {
	case selected:
		return SelectedStyle.Render(row)
	case r.Failed():
		return ErrorStyle.Render(row)
	default:
		return row
	}
}

func formatColumns(index, id, kind, value, class, bench, status string) string {
	return fmt.Sprintf("%-*s %-*s %-*s %*s  %-*s %-*s %s",
		colIndex, index,
		colID, truncate(id, colID),
		colKind, kind,
		colValue, value,
		colClass, class,
		colBenchmark, truncate(bench, colBenchmark),
		status,
	)
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

// View implements tea.Model.
func (m *BatchViewModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return m.renderDetailView()
	default:
		return m.renderListView()
	}
}

func (m *BatchViewModel) renderListView() string {
	header := HeaderStyle.Render(formatColumns("#", "ID", "KIND", "VALUE", "CLASS", "BENCHMARK", "STATUS"))
	sections := []string{RenderBatchSummary(m.summary), header}

	if len(m.rows) == 0 {
		sections = append(sections, LabelStyle.Render("No rows match."))
	} else {
		sections = append(sections, m.list.View())
	}

	if m.showFilter {
		sections = append(sections, LabelStyle.Render("Filter: ")+m.textInput.View())
	}

	status := fmt.Sprintf("Sort: %s", m.sortBy)
	if m.errorsOnly {
		status += "  Errors only"
	}
	if q := m.textInput.Value(); q != "" {
		status += fmt.Sprintf("  Filter: %q", q)
	}
	sections = append(sections,
		HelpStyle.Render(status+"  [/] Filter  [s] Sort  [e] Errors  [↑↓/jk] Navigate  [Enter] Details  [q] Quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *BatchViewModel) renderDetailView() string {
	row, ok := m.SelectedRow()
	if !ok {
		return "No row selected."
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(fmt.Sprintf("REQUEST %d", row.Index+1)))
	if row.ID != "" {
		sb.WriteString("  " + LabelStyle.Render(row.ID))
	}
	sb.WriteString("\n\n")
	if row.Failed() {
		sb.WriteString(ErrorStyle.Render("Error: "+row.Err) + "\n")
	} else {
		sb.WriteString(row.Detail)
	}
	sb.WriteString("\n" + HelpStyle.Render("[Esc] Back to list  [q] Quit"))
	return sb.String()
}

// RenderBatchSummary renders the totals shown above the list.
func RenderBatchSummary(s BatchSummary) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("BATCH RESULTS") + "\n")
	sb.WriteString(fmt.Sprintf("Requests: %d  %s  %s\n",
		s.Total, OKStyle.Render(fmt.Sprintf("ok %d", s.OK)), ErrorStyle.Render(fmt.Sprintf("failed %d", s.Failed))))
	sb.WriteString("By kind:  " + formatCounts(s.ByKind) + "\n")
	sb.WriteString("By class: " + formatCounts(s.ByClass) + "\n")
	return sb.String()
}

// formatCounts renders a count map as "a 1, b 2" in key order.
func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %d", k, counts[k])
	}
	return strings.Join(parts, ", ")
}
