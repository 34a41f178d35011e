package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mlplay/internal/content"
	"github.com/abhisek/mlplay/internal/ui/components"
	"github.com/abhisek/mlplay/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.session.Loading() {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading module…")
	}

	var b strings.Builder
	b.WriteString(s.renderStepInfo(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	step := s.session.Current()

	title := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		PaddingLeft(2).
		Render(step.Title)
	b.WriteString(title)
	b.WriteString("\n\n")

	switch step.Kind {
	case content.StepQuiz:
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(s.mc.View()))
		if s.mc.Submitted {
			b.WriteString("\n")
			if s.mc.IsCorrect() {
				b.WriteString(theme.Correct.PaddingLeft(2).Render("Correct!"))
			} else {
				b.WriteString(theme.Incorrect.PaddingLeft(2).Render("Not quite. Press r to try again."))
			}
		}
	case content.StepChallenge:
		b.WriteString(s.renderBody(step.Body, width))
		b.WriteString("\n\n")
		done := s.session.IsCompleted(step.ID)
		if done {
			b.WriteString(theme.Correct.PaddingLeft(2).Render("✓ Challenge complete"))
		} else {
			b.WriteString(theme.Hint.PaddingLeft(2).Render("Press Enter to attempt the challenge."))
		}
	case content.StepPlayground:
		b.WriteString(s.renderBody(step.Body, width))
		b.WriteString("\n\n")
		b.WriteString(s.renderPlaygroundControls(width))
	default:
		b.WriteString(s.renderBody(step.Body, width))
	}

	return b.String()
}

// renderStepInfo renders the "step x of n" line with the progress bar.
func (s *LessonScreen) renderStepInfo(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Step %d of %d", s.session.Index()+1, s.session.Len()))

	barWidth := width / 3
	if barWidth < 10 {
		barWidth = 10
	}
	bar := components.NewProgressBar("", s.session.Progress(), true, barWidth)

	right := bar.View()
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func (s *LessonScreen) renderBody(body string, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(max(width-8, 20)).
		PaddingLeft(2).
		Render(body)
}

// renderPlaygroundControls renders the editable control list.
func (s *LessonScreen) renderPlaygroundControls(width int) string {
	if len(s.pg.names) == 0 {
		return ""
	}

	var lines []string
	for i, name := range s.pg.names {
		selected := i == s.pg.cursor
		if selected && s.pg.editing {
			lines = append(lines, fmt.Sprintf("  ▸ %s = %s", name, s.pg.input.View()))
			continue
		}

		cursor := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if selected {
			cursor = "▸ "
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		lines = append(lines, style.Render(fmt.Sprintf("  %s%s = %.2f", cursor, name, s.pg.values[name])))
	}

	lines = append(lines, "")
	lines = append(lines, theme.Hint.PaddingLeft(2).Render("Tweak the values, then press d when you're done exploring."))
	return strings.Join(lines, "\n")
}

func renderError(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("\n\n  " + msg + "\n\n  Press any key to go back.")
}
