package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mlplay/internal/content"
	"github.com/abhisek/mlplay/internal/progress"
	"github.com/abhisek/mlplay/internal/router"
	"github.com/abhisek/mlplay/internal/screen"
	"github.com/abhisek/mlplay/internal/screens/lesson"
	"github.com/abhisek/mlplay/internal/screens/stats"
	"github.com/abhisek/mlplay/internal/ui/layout"
	"github.com/abhisek/mlplay/internal/ui/theme"
)

type rowKind int

const (
	rowTierHeader rowKind = iota
	rowModule
)

type row struct {
	kind   rowKind
	tierID string
	meta   *content.ModuleMetadata
}

// HomeScreen displays the curriculum organized by tier, with per-module
// status and completion.
type HomeScreen struct {
	store    *progress.Store
	registry *content.Registry

	rows         []row
	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(store *progress.Store, registry *content.Registry) *HomeScreen {
	h := &HomeScreen{
		store:    store,
		registry: registry,
	}
	h.buildRows()

	// Set cursor to first module row
	for i, r := range h.rows {
		if r.kind == rowModule {
			h.cursor = i
			break
		}
	}
	return h
}

func (h *HomeScreen) buildRows() {
	var rows []row
	for _, tierID := range h.registry.TierIDs() {
		rows = append(rows, row{kind: rowTierHeader, tierID: tierID})
		modules := h.registry.ModulesInTier(tierID)
		for i := range modules {
			rows = append(rows, row{kind: rowModule, tierID: tierID, meta: &modules[i]})
		}
	}
	h.rows = rows
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Refresh rebuilds status-derived rendering after a lesson pops back.
func (h *HomeScreen) Refresh() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			h.moveCursor(-1)
		case "down", "j":
			h.moveCursor(1)
		case "tab":
			h.nextTier()
		case "enter":
			return h, h.openModule()
		case "s":
			return h, func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(h.store, h.registry)}
			}
		case "q":
			return h, tea.Quit
		}
	}
	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	if len(h.rows) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No modules available.")
	}

	h.adjustScroll(height)

	var lines []string
	visible := 0
	for i, r := range h.rows {
		if i < h.scrollOffset {
			continue
		}
		if visible >= height {
			break
		}

		switch r.kind {
		case rowTierHeader:
			lines = append(lines, h.renderTierHeader(r.tierID, width))
		case rowModule:
			lines = append(lines, h.renderModuleRow(r, i == h.cursor, width))
		}
		visible++
	}

	return strings.Join(lines, "\n")
}

func (h *HomeScreen) Title() string {
	return "Learn"
}

// KeyHints returns the key binding hints for the footer.
func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Tier"},
		{Key: "Enter", Description: "Open"},
		{Key: "S", Description: "Stats"},
		{Key: "Q", Description: "Quit"},
	}
}

// moveCursor moves the cursor by delta, skipping tier headers.
func (h *HomeScreen) moveCursor(delta int) {
	next := h.cursor + delta
	for next >= 0 && next < len(h.rows) {
		if h.rows[next].kind == rowModule {
			h.cursor = next
			return
		}
		next += delta
	}
}

// nextTier jumps the cursor to the first module in the next tier,
// wrapping around at the end.
func (h *HomeScreen) nextTier() {
	currentTier := h.rows[h.cursor].tierID
	for i := h.cursor + 1; i < len(h.rows); i++ {
		if h.rows[i].kind == rowModule && h.rows[i].tierID != currentTier {
			h.cursor = i
			return
		}
	}
	for i, r := range h.rows {
		if r.kind == rowModule {
			h.cursor = i
			return
		}
	}
}

// adjustScroll ensures the cursor is visible within the viewport.
func (h *HomeScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := h.cursor
	for headerRow > 0 && h.rows[headerRow-1].kind == rowTierHeader {
		headerRow--
	}

	if headerRow < h.scrollOffset {
		h.scrollOffset = headerRow
	}
	if h.cursor >= h.scrollOffset+height {
		h.scrollOffset = h.cursor - height + 1
	}
}

// openModule handles enter on the current module row. Locked modules
// cannot be opened.
func (h *HomeScreen) openModule() tea.Cmd {
	r := h.rows[h.cursor]
	if r.kind != rowModule || r.meta == nil {
		return nil
	}
	if h.moduleStatus(r) == progress.StatusLocked {
		return nil
	}

	ls := lesson.New(h.store, h.registry, r.meta.ID)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: ls}
	}
}

// moduleStatus resolves the display status: a module in a locked tier is
// always shown locked regardless of its own record.
func (h *HomeScreen) moduleStatus(r row) progress.ModuleStatus {
	if !h.store.TierUnlocked(r.tierID) {
		return progress.StatusLocked
	}
	return h.store.ModuleStatusFor(r.meta.ID)
}

func statusIcon(s progress.ModuleStatus) string {
	switch s {
	case progress.StatusCompleted:
		return "●"
	case progress.StatusInProgress:
		return "◐"
	case progress.StatusAvailable:
		return "○"
	default:
		return "🔒"
	}
}

// renderTierHeader renders a tier section header with its completion.
func (h *HomeScreen) renderTierHeader(tierID string, width int) string {
	name := strings.ToUpper(strings.ReplaceAll(tierID, "-", " "))
	pct := int(h.store.CompletionFraction(tierID) * 100)

	label := fmt.Sprintf("%s  %d%%", name, pct)
	if !h.store.TierUnlocked(tierID) {
		prev := h.registry.PrecedingTier(tierID)
		label = fmt.Sprintf("%s  (locked: finish %s)", name, prev)
	}

	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(label)
}

// renderModuleRow renders a single module row.
func (h *HomeScreen) renderModuleRow(r row, selected bool, width int) string {
	if r.meta == nil {
		return ""
	}

	status := h.moduleStatus(r)
	icon := statusIcon(status)
	minutes := fmt.Sprintf("%d min", r.meta.EstimatedMinutes)

	padding := 4
	iconWidth := 3
	minutesWidth := 8
	statusWidth := 12
	spacing := 4
	nameWidth := width - padding - iconWidth - minutesWidth - statusWidth - spacing
	if nameWidth < 10 {
		nameWidth = 10
	}

	name := r.meta.Title
	if len(name) > nameWidth {
		name = name[:nameWidth-1] + "…"
	}

	var nameStyle, dimStyle, statusStyle lipgloss.Style
	if selected {
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		dimStyle = lipgloss.NewStyle().Foreground(theme.Primary)
		statusStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	} else {
		dimStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		switch status {
		case progress.StatusCompleted:
			nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
			statusStyle = lipgloss.NewStyle().Foreground(theme.Success)
		case progress.StatusInProgress:
			nameStyle = lipgloss.NewStyle().Foreground(theme.Text)
			statusStyle = lipgloss.NewStyle().Foreground(theme.Accent)
		case progress.StatusAvailable:
			nameStyle = lipgloss.NewStyle().Foreground(theme.Text)
			statusStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
		default:
			nameStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
			statusStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	namePadded := fmt.Sprintf("%-*s", nameWidth, name)
	return fmt.Sprintf("  %s%s %s  %s  %s",
		cursor,
		icon,
		nameStyle.Render(namePadded),
		dimStyle.Render(minutes),
		statusStyle.Render(fmt.Sprintf("%11s", string(status))),
	)
}
