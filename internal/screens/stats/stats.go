package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mlplay/internal/content"
	"github.com/abhisek/mlplay/internal/progress"
	"github.com/abhisek/mlplay/internal/router"
	"github.com/abhisek/mlplay/internal/screen"
	"github.com/abhisek/mlplay/internal/ui/components"
	"github.com/abhisek/mlplay/internal/ui/layout"
	"github.com/abhisek/mlplay/internal/ui/theme"
)

// activityWindow is how many trailing days the activity chart covers.
const activityWindow = 7

var badgeNames = map[string]string{
	progress.BadgeFirstModule:    "First Module Completed",
	progress.BadgeFirstChallenge: "First Challenge Won",
	progress.BadgeStreakWeek:     "Seven-Day Streak",
}

// StatsScreen displays streak, recent activity, badges, and tier completion.
type StatsScreen struct {
	store    *progress.Store
	registry *content.Registry
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(store *progress.Store, registry *content.Registry) *StatsScreen {
	return &StatsScreen{store: store, registry: registry}
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Progress"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "T", Description: "Theme"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "t":
			s.toggleTheme()
		}
	}
	return s, nil
}

// toggleTheme flips between the dark and light palettes and persists the
// choice in the learner's settings.
func (s *StatsScreen) toggleTheme() {
	settings := s.store.State().Settings
	if settings.Theme == "light" {
		settings.Theme = "dark"
	} else {
		settings.Theme = "light"
	}
	s.store.UpdateSettings(context.Background(), settings)
	theme.Use(settings.Theme)
}

func (s *StatsScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderStreak(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderActivity(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderTiers(width))

	badges := s.renderBadges(width)
	if badges != "" {
		b.WriteString("\n\n")
		b.WriteString(badges)
	}

	return b.String()
}

func (s *StatsScreen) renderStreak(width int) string {
	st := s.store.State()
	today := time.Now().Format(progress.DateLayout)

	current := st.Streak.EffectiveCurrent(today)
	flame := "⚡"
	style := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	if !st.Streak.Active(today) {
		style = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	line := fmt.Sprintf("%s %d day streak    longest: %d", flame, current, st.Streak.Longest)
	return style.PaddingLeft(2).Render(line)
}

// renderActivity draws a small bar chart of actions per day.
func (s *StatsScreen) renderActivity(width int) string {
	counts := s.store.ActivityCounts(activityWindow)

	maxCount := 1
	for _, dc := range counts {
		if dc.Count > maxCount {
			maxCount = dc.Count
		}
	}

	const barHeight = 4
	header := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		PaddingLeft(2).
		Render("LAST 7 DAYS")

	var rows []string
	for level := barHeight; level >= 1; level-- {
		var row strings.Builder
		row.WriteString("  ")
		for _, dc := range counts {
			filled := dc.Count*barHeight >= level*maxCount && dc.Count > 0
			if filled {
				row.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(" ██ "))
			} else {
				row.WriteString("    ")
			}
		}
		rows = append(rows, row.String())
	}

	var labels strings.Builder
	labels.WriteString("  ")
	for _, dc := range counts {
		day := dc.Date
		if t, err := time.Parse(progress.DateLayout, dc.Date); err == nil {
			day = t.Format("Mon")[:2]
		}
		labels.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %-3s", day)))
	}

	return header + "\n" + strings.Join(rows, "\n") + "\n" + labels.String()
}

func (s *StatsScreen) renderTiers(width int) string {
	header := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		PaddingLeft(2).
		Render("TIERS")

	barWidth := width / 2
	if barWidth < 20 {
		barWidth = 20
	}

	var lines []string
	for _, tierID := range s.registry.TierIDs() {
		name := strings.ReplaceAll(tierID, "-", " ")
		if !s.store.TierUnlocked(tierID) {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.TextDim).
				PaddingLeft(2).
				Render(fmt.Sprintf("🔒 %s", name)))
			continue
		}
		bar := components.NewProgressBar(fmt.Sprintf("%-14s", name), s.store.CompletionFraction(tierID), true, barWidth)
		lines = append(lines, "  "+bar.View())
	}

	return header + "\n" + strings.Join(lines, "\n")
}

func (s *StatsScreen) renderBadges(width int) string {
	st := s.store.State()
	if len(st.Badges) == 0 {
		return ""
	}

	header := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		PaddingLeft(2).
		Render("BADGES")

	var lines []string
	for _, id := range []string{progress.BadgeFirstModule, progress.BadgeFirstChallenge, progress.BadgeStreakWeek} {
		if !st.Badges[id] {
			continue
		}
		name := badgeNames[id]
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Accent).
			PaddingLeft(2).
			Render("🏅 "+name))
	}
	for _, tierID := range s.registry.TierIDs() {
		if !st.Badges[progress.BadgeTierPrefix+tierID] {
			continue
		}
		name := "Completed " + strings.ReplaceAll(tierID, "-", " ")
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Accent).
			PaddingLeft(2).
			Render("🏅 "+name))
	}
	if len(lines) == 0 {
		return ""
	}

	return header + "\n" + strings.Join(lines, "\n")
}
