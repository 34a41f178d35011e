package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, default dark theme
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Use switches the active palette. Unknown names keep the dark default.
// Must be called before any styles are built from the palette vars.
func Use(name string) {
	if name != "light" {
		return
	}
	Primary = lipgloss.Color("#4F46E5")
	Secondary = lipgloss.Color("#0D9488")
	Accent = lipgloss.Color("#D97706")
	Success = lipgloss.Color("#16A34A")
	Error = lipgloss.Color("#E11D48")
	Text = lipgloss.Color("#0F172A")
	TextDim = lipgloss.Color("#64748B")
	BgDark = lipgloss.Color("#F8FAFC")
	BgCard = lipgloss.Color("#E2E8F0")
	Border = lipgloss.Color("#CBD5E1")
	rebuildStyles()
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)

func rebuildStyles() {
	Title = Title.Foreground(Primary)
	Subtitle = Subtitle.Foreground(TextDim)
	Body = Body.Foreground(Text)
	Hint = Hint.Foreground(TextDim)
	Header = Header.Background(BgCard)
	Footer = Footer.Background(BgCard)
	Card = Card.Background(BgCard).BorderForeground(Border)
	Selected = Selected.Foreground(Primary)
	Unselected = Unselected.Foreground(Text)
	Correct = Correct.Foreground(Success)
	Incorrect = Incorrect.Foreground(Error)
	ProgressFilled = ProgressFilled.Background(Secondary)
	ProgressEmpty = ProgressEmpty.Background(Border)
}
