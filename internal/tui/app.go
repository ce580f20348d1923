package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/kegelcoach/internal/catalog"
	"github.com/sadopc/kegelcoach/internal/engine"
	"github.com/sadopc/kegelcoach/internal/export"
	"github.com/sadopc/kegelcoach/internal/progress"
	"github.com/sadopc/kegelcoach/internal/store"
)

// Services is everything the views read from or write to.
type Services struct {
	Catalog  *catalog.Catalog
	Store    *store.Store
	Ledger   *progress.Ledger
	Feedback engine.Feedback
	Log      *slog.Logger
	Now      func() time.Time
	// ExportDir defaults to the home directory.
	ExportDir string
}

// withDefaults fills in a discard logger so models built on their own can
// log without a nil check.
func (s Services) withDefaults() Services {
	if s.Log == nil {
		s.Log = slog.New(slog.DiscardHandler)
	}
	return s
}

func (s Services) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// App is the root Bubble Tea model.
type App struct {
	svc    Services
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	onboarding onboardingModel
	player     playerModel
	today      todayModel
	library    libraryModel
	stats      statsModel
	settings   settingsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(svc Services) App {
	svc = svc.withDefaults()
	h := help.New()
	h.ShowAll = false

	return App{
		svc:        svc,
		activeView: viewToday,
		onboarding: newOnboardingModel(svc),
		player:     newPlayerModel(svc),
		today:      newTodayModel(svc),
		library:    newLibraryModel(svc),
		stats:      newStatsModel(svc),
		settings:   newSettingsModel(svc),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.onboarding.check(),
		a.today.loadData(),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.onboarding.setSize(a.width, contentHeight)
		a.player.setSize(a.width, contentHeight)
		a.today.setSize(a.width, contentHeight)
		a.library.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.onboarding.active || a.player.active {
			return a.updateActiveView(msg)
		}
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewToday
			return a, a.today.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewLibrary
			return a, a.library.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewProgress
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case playerTickMsg:
		var cmd tea.Cmd
		a.player, cmd = a.player.update(msg)
		return a, cmd

	case startSessionMsg:
		return a.startSession(msg.sessionID)

	case playerClosedMsg:
		if msg.summary != nil {
			a.setStatus(fmt.Sprintf("Session complete: %s", formatClock(msg.summary.TotalElapsedSeconds)), false)
		} else {
			a.setStatus("Session ended early, progress not recorded", false)
		}
		return a, a.refreshAll()

	case ledgerChangedMsg:
		return a, tea.Batch(a.refreshAll(), a.onboarding.check())

	case profileLoadedMsg:
		var cmd tea.Cmd
		a.onboarding, cmd = a.onboarding.update(msg)
		return a, cmd

	// Data loads reach their view even when another one is showing.
	case todayDataMsg:
		a.today, _ = a.today.update(msg)
		return a, nil
	case libraryDataMsg:
		a.library, _ = a.library.update(msg)
		return a, nil
	case statsDataMsg:
		a.stats, _ = a.stats.update(msg)
		return a, nil
	case settingsDataMsg:
		a.settings, _ = a.settings.update(msg)
		return a, nil

	case onboardingDoneMsg:
		a.activeView = viewToday
		a.setStatus("Welcome! Your plan is ready", false)
		return a, a.refreshAll()

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case exportDoneMsg:
		a.setStatus("Exported to "+msg.path, false)
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.statusErr = isError
}

// startSession opens the player unless the session is behind the paywall.
// The demo session is always playable.
func (a App) startSession(sessionID string) (tea.Model, tea.Cmd) {
	if sessionID != catalog.DemoSessionID {
		profile, err := a.svc.Store.GetProfile(context.Background())
		if err != nil {
			a.svc.Log.Error("load profile", "error", err)
			a.setStatus(fmt.Sprintf("Error: %v", err), true)
			return a, nil
		}
		if progress.Locked(profile.Subscribed, a.svc.Ledger.State().SessionsCompleted) {
			a.setStatus("Subscribe to unlock more sessions (try the demo with d)", true)
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.player, cmd = a.player.start(sessionID)
	if a.player.active {
		a.status = ""
	}
	return a, cmd
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case a.onboarding.active:
		a.onboarding, cmd = a.onboarding.update(msg)
		return a, cmd
	case a.player.active:
		a.player, cmd = a.player.update(msg)
		return a, cmd
	}

	switch a.activeView {
	case viewToday:
		a.today, cmd = a.today.update(msg)
	case viewLibrary:
		a.library, cmd = a.library.update(msg)
	case viewProgress:
		a.stats, cmd = a.stats.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	if a.activeView == viewSettings {
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewToday:
		return a.today.loadData()
	case viewLibrary:
		return a.library.refresh()
	case viewProgress:
		return a.stats.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) refreshAll() tea.Cmd {
	return tea.Batch(
		a.today.loadData(),
		a.library.refresh(),
		a.stats.refresh(),
		a.settings.refresh(),
	)
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch {
	case a.onboarding.active:
		content = a.onboarding.view()
	case a.player.active:
		content = a.player.view()
	default:
		switch a.activeView {
		case viewToday:
			content = a.today.view()
		case viewLibrary:
			content = a.library.view()
		case viewProgress:
			content = a.stats.view()
		case viewSettings:
			content = a.settings.view()
		}
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker(contentHeight)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("kegelcoach")
	if a.onboarding.active || a.player.active {
		return headerStyle.Render(title)
	}

	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	var helpView string
	switch {
	case a.onboarding.active:
		helpView = mutedStyle.Render("ctrl+c: quit")
	case a.player.active:
		helpView = a.help.View(playerKeyMap{})
	default:
		helpView = a.help.View(keys)
	}

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	streak := ""
	if st := a.svc.Ledger.State(); st.Streak > 0 {
		streak = accentStyle.Render(fmt.Sprintf(" 🔥 %d", st.Streak))
	}

	left := footerStyle.Render(helpView)
	right := streak + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker(_ int) string {
	title := titleStyle.Render("Export Session History")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		runs, err := a.svc.Store.ListRuns(store.RunFilter{})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		titles := SessionTitles(a.svc.Catalog)

		dir := a.svc.ExportDir
		if dir == "" {
			dir, _ = os.UserHomeDir()
		}
		dateStr := a.svc.now().Format(progress.DateLayout)

		var path string
		if format == 0 {
			path = filepath.Join(dir, fmt.Sprintf("kegelcoach-export-%s.csv", dateStr))
			if err := export.ToCSV(runs, titles, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(dir, fmt.Sprintf("kegelcoach-export-%s.json", dateStr))
			if err := export.ToJSON(runs, titles, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}

// SessionTitles maps every session id in the catalog, demo included, to
// its title.
func SessionTitles(cat *catalog.Catalog) map[string]string {
	titles := make(map[string]string)
	for _, p := range cat.Plans() {
		for _, s := range p.Sessions {
			titles[s.ID] = s.Title
		}
	}
	demo := cat.Demo()
	titles[demo.ID] = demo.Title
	return titles
}

// currentPlan is the plan the user follows, or the recommendation for
// their experience when none was picked yet.
func currentPlan(cat *catalog.Catalog, st progress.State, experience string) catalog.Plan {
	if id := st.Progress.CurrentPlanID; id != "" {
		if p, err := cat.PlanByID(id); err == nil {
			return p
		}
	}
	return cat.RecommendedPlan(experience)
}
