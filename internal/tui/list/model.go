package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultBufferSize is the number of extra rows rendered above and below the viewport.
const defaultBufferSize = 5

// RenderFunc renders one item. selected is true for the highlighted row.
type RenderFunc[T any] func(item T, selected bool) string

// VirtualListModel is a scrollable list that renders only its visible window.
type VirtualListModel[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	selected    int
	visibleFrom int
	visibleTo   int // exclusive

	height     int
	width      int
	bufferSize int
}

// NewVirtualListModel creates a list over items with a viewport of height rows.
func NewVirtualListModel[T any](items []T, height, width int, renderFunc RenderFunc[T]) *VirtualListModel[T] {
	m := &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     max(height, 1),
		width:      width,
		bufferSize: defaultBufferSize,
	}
	m.updateVisibleRange()
	return m
}

// Init implements tea.Model.
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys and resizes.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.height = max(msg.Height, 1)
		m.width = msg.Width
		m.updateVisibleRange()
	}
	return m, nil
}

//nolint:exhaustive // Only navigation keys move the selection.
func (m *VirtualListModel[T]) handleKey(msg tea.KeyMsg) {
	if len(m.items) == 0 {
		return
	}

	switch msg.Type {
	case tea.KeyUp:
		m.SetSelected(m.selected - 1)
	case tea.KeyDown:
		m.SetSelected(m.selected + 1)
	case tea.KeyPgUp:
		m.SetSelected(m.selected - m.height)
	case tea.KeyPgDown:
		m.SetSelected(m.selected + m.height)
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.items) - 1)
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "k":
			m.SetSelected(m.selected - 1)
		case "j":
			m.SetSelected(m.selected + 1)
		case "g":
			m.SetSelected(0)
		case "G":
			m.SetSelected(len(m.items) - 1)
		}
	default:
	}
}

// updateVisibleRange keeps the selection inside the viewport, centred when possible.
func (m *VirtualListModel[T]) updateVisibleRange() {
	if len(m.items) == 0 {
		m.visibleFrom, m.visibleTo = 0, 0
		return
	}

	from := m.selected - m.height/2
	if from < 0 {
		from = 0
	}
	to := from + m.height
	if to > len(m.items) {
		to = len(m.items)
		from = max(to-m.height, 0)
	}
	m.visibleFrom, m.visibleTo = from, to
}

// View renders the visible window plus the buffer rows.
func (m *VirtualListModel[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	from := max(m.visibleFrom-m.bufferSize, 0)
	to := min(m.visibleTo+m.bufferSize, len(m.items))

	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// ItemCount returns the number of items.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the selected index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// VisibleRange returns the first and one-past-last visible indices.
func (m *VirtualListModel[T]) VisibleRange() (int, int) {
	return m.visibleFrom, m.visibleTo
}

// SetSelected moves the selection, clamped to the list bounds.
func (m *VirtualListModel[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		m.selected = 0
		return
	}
	m.selected = max(0, min(index, len(m.items)-1))
	m.updateVisibleRange()
}
