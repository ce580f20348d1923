package tui

import (
	"fmt"

	"github.com/sadopc/kegelcoach/internal/engine"
	"github.com/sadopc/kegelcoach/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewLibrary
	viewProgress
	viewSettings
)

var viewNames = []string{"Today", "Library", "Progress", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// startSessionMsg asks the app to open the player on a session.
type startSessionMsg struct {
	sessionID string
}

// ledgerChangedMsg tells every view to reload after progress was recorded
// or reset.
type ledgerChangedMsg struct{}

type playerTickMsg struct {
	gen int
}

type playerClosedMsg struct {
	summary *engine.Summary
}

type onboardingDoneMsg struct{}

type profileLoadedMsg struct {
	profile store.Profile
	err     error
}

// --- Helpers ---

func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
