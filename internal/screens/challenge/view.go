package challenge

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mlplay/internal/challenge"
	"github.com/abhisek/mlplay/internal/ui/components"
	"github.com/abhisek/mlplay/internal/ui/theme"
)

func (s *ChallengeScreen) View(width, height int) string {
	var b strings.Builder

	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(max(width-4, 20)).
		PaddingLeft(2).
		Render(s.spec.Prompt)
	b.WriteString(prompt)
	b.WriteString("\n\n")

	canvasHeight := height - lipgloss.Height(prompt) - 6
	if canvasHeight < 7 {
		canvasHeight = 7
	}
	canvasWidth := width - 8
	if canvasWidth > 61 {
		canvasWidth = 61
	}

	if len(s.positions) > 0 {
		canvas := s.buildCanvas()
		plane := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			MarginLeft(2).
			Render(canvas.View(canvasWidth, canvasHeight))
		b.WriteString(plane)
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().PaddingLeft(3).Render(canvas.Legend()))
		b.WriteString("\n\n")
	} else {
		b.WriteString(s.renderScalarControls(width))
		b.WriteString("\n\n")
	}

	b.WriteString(s.renderDistance(width))

	if s.run.ShowBanner() {
		b.WriteString("\n\n")
		b.WriteString(s.renderBanner(width))
	}

	return b.String()
}

// buildCanvas maps current state onto the coordinate plane.
func (s *ChallengeScreen) buildCanvas() components.Canvas {
	c := components.Canvas{Extent: 6}

	switch s.spec.Kind {
	case challenge.KindVectorTarget:
		t := s.spec.Target
		c.Target = &t
		c.RaySums = true
	case challenge.KindProjection:
		t := s.spec.Target
		c.Target = &t
	}

	for i, name := range s.order {
		c.Points = append(c.Points, components.CanvasPoint{
			Label:  rune(name[0]),
			Pos:    s.positions[name],
			Active: i == s.active,
		})
	}
	return c
}

func (s *ChallengeScreen) renderScalarControls(width int) string {
	var parts []string
	for name, val := range s.params {
		parts = append(parts, fmt.Sprintf("%s = %.2f", name, val))
	}
	return lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		PaddingLeft(2).
		Render(strings.Join(parts, "    "))
}

// renderDistance shows how close the latest sample is to winning.
func (s *ChallengeScreen) renderDistance(width int) string {
	d := s.run.Distance()

	label := "distance"
	if s.spec.Kind == challenge.KindScalarMatch || s.spec.Kind == challenge.KindMagnitude ||
		s.spec.Kind == challenge.KindOrthogonal {
		label = "error"
	}

	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.run.Won() {
		style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	}

	if d >= challenge.UnknownDistance {
		return style.PaddingLeft(2).Render("make a move to start scoring")
	}
	return style.PaddingLeft(2).Render(fmt.Sprintf("%s: %.3f", label, d))
}

func (s *ChallengeScreen) renderBanner(width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Success).
		Bold(true).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Success).
		Padding(0, 2).
		MarginLeft(2).
		Render("★  Challenge complete!  ★")
}
