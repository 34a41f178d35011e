package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mlplay/internal/challenge"
	"github.com/abhisek/mlplay/internal/ui/theme"
)

// CanvasPoint is a labeled point plotted on the plane.
type CanvasPoint struct {
	Label  rune
	Pos    challenge.Vec2
	Active bool
}

// Canvas renders a 2D coordinate plane as a character grid. Cells are taller
// than they are wide, so each world unit maps to two columns and one row.
type Canvas struct {
	// Extent is the half-range of both axes; the plane spans [-Extent, Extent].
	Extent float64

	// Target, when set, is drawn as a highlighted marker.
	Target  *challenge.Vec2
	Points  []CanvasPoint
	RaySums bool // draw the sum of all points as a separate marker
}

// View renders the plane at the given character dimensions.
func (c Canvas) View(width, height int) string {
	if width < 11 || height < 5 || c.Extent <= 0 {
		return ""
	}

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	midX, midY := width/2, height/2

	// Axes.
	for x := 0; x < width; x++ {
		grid[midY][x] = '─'
	}
	for y := 0; y < height; y++ {
		grid[y][midX] = '│'
	}
	grid[midY][midX] = '┼'

	styles := make(map[rune]lipgloss.Style)

	if c.Target != nil {
		tx, ty, ok := c.project(*c.Target, width, height)
		if ok {
			grid[ty][tx] = '◎'
			styles['◎'] = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		}
	}

	if c.RaySums && len(c.Points) > 1 {
		sum := challenge.Vec2{}
		for _, p := range c.Points {
			sum = sum.Add(p.Pos)
		}
		if sx, sy, ok := c.project(sum, width, height); ok {
			grid[sy][sx] = '◆'
			styles['◆'] = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
		}
	}

	for _, p := range c.Points {
		px, py, ok := c.project(p.Pos, width, height)
		if !ok {
			continue
		}
		grid[py][px] = p.Label
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if p.Active {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		styles[p.Label] = style
	}

	axisStyle := lipgloss.NewStyle().Foreground(theme.Border)
	var b strings.Builder
	for y, row := range grid {
		for _, r := range row {
			switch r {
			case '─', '│', '┼':
				b.WriteString(axisStyle.Render(string(r)))
			case ' ':
				b.WriteRune(' ')
			default:
				if s, ok := styles[r]; ok {
					b.WriteString(s.Render(string(r)))
				} else {
					b.WriteRune(r)
				}
			}
		}
		if y < len(grid)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// Legend renders the point coordinates below the plane.
func (c Canvas) Legend() string {
	parts := make([]string, 0, len(c.Points)+1)
	for _, p := range c.Points {
		entry := fmt.Sprintf("%c (%.1f, %.1f)", p.Label, p.Pos.X, p.Pos.Y)
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if p.Active {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		parts = append(parts, style.Render(entry))
	}
	if c.Target != nil {
		entry := fmt.Sprintf("◎ target (%.1f, %.1f)", c.Target.X, c.Target.Y)
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Accent).Render(entry))
	}
	return strings.Join(parts, "    ")
}

// project maps a world coordinate to grid indices. The bool is false when
// the point falls outside the plane.
func (c Canvas) project(v challenge.Vec2, width, height int) (int, int, bool) {
	x := width/2 + int(v.X/c.Extent*float64(width/2))
	y := height/2 - int(v.Y/c.Extent*float64(height/2))
	if x < 0 || x >= width || y < 0 || y >= height {
		return 0, 0, false
	}
	return x, y, true
}
