package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mlplay/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is an optional interface for screens that need to reload
// derived state when they become the active screen again after a pop.
type Refresher interface {
	Refresh() tea.Cmd
}

// EscInterceptor is an optional interface for screens with modal state,
// such as an open editor, that esc should close instead of popping the
// screen. InterceptEsc reports whether the key was consumed.
type EscInterceptor interface {
	InterceptEsc() bool
}
