package tui

import "github.com/charmbracelet/lipgloss"

// Layout defaults used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
	minHeight     = 3

	// summaryHeight is the number of lines reserved above the list.
	summaryHeight = 6
	// chromeHeight covers the column header, the help line and the filter input.
	chromeHeight = 4

	filterInputCharLimit = 64
	filterInputWidth     = 40
)

// Key bindings.
const (
	keyQuit   = "q"
	keyCtrlC  = "ctrl+c"
	keyEnter  = "enter"
	keyEsc    = "esc"
	keySlash  = "/"
	keySort   = "s"
	keyErrors = "e"
)

//nolint:gochecknoglobals // Shared styles.
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	LabelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	HelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	SelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	OKStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true)
)
