package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/kegelcoach/internal/store"
)

type settingsForm int

const (
	formEdit settingsForm = iota
	formResetProgress
	formResetAll
)

type settingsModel struct {
	svc    Services
	width  int
	height int

	settings   store.Settings
	formActive bool
	form       *huh.Form
	formKind   settingsForm

	// Form values as pointers (survive value copies)
	sound        *bool
	vibration    *bool
	reminder     *bool
	reminderTime *string
	confirm      *bool
}

func newSettingsModel(svc Services) settingsModel {
	svc = svc.withDefaults()
	var sound, vibration, reminder, confirm bool
	reminderTime := ""
	return settingsModel{
		svc:          svc,
		settings:     store.DefaultSettings(),
		sound:        &sound,
		vibration:    &vibration,
		reminder:     &reminder,
		reminderTime: &reminderTime,
		confirm:      &confirm,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings store.Settings
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, err := s.svc.Store.GetSettings()
		if err != nil {
			s.svc.Log.Warn("load settings", "error", err)
			settings = store.DefaultSettings()
		}
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showEditForm()
		case key.Matches(msg, keys.Reset):
			return s.showConfirm(formResetProgress, "Reset progress?",
				"Streak, minutes and completed sessions are cleared. Settings and your profile stay.")
		case key.Matches(msg, keys.ResetAll):
			return s.showConfirm(formResetAll, "Reset everything?",
				"All data is erased and onboarding starts over.")
		}
	}
	return s, nil
}

func validateReminderTime(v string) error {
	if _, err := time.Parse("15:04", v); err != nil {
		return errors.New("use HH:MM, e.g. 09:00")
	}
	return nil
}

func (s settingsModel) showEditForm() (settingsModel, tea.Cmd) {
	*s.sound = s.settings.Sound
	*s.vibration = s.settings.Vibration
	*s.reminder = s.settings.Reminder
	*s.reminderTime = s.settings.ReminderTime

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("Sound cues").Affirmative("On").Negative("Off").Value(s.sound),
			huh.NewConfirm().Title("Vibration cues").Affirmative("On").Negative("Off").Value(s.vibration),
		).Title("Feedback"),
		huh.NewGroup(
			huh.NewConfirm().Title("Daily reminder").Affirmative("On").Negative("Off").Value(s.reminder),
			huh.NewInput().Title("Reminder time (HH:MM)").Value(s.reminderTime).Validate(validateReminderTime),
		).Title("Reminder"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formKind = formEdit
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showConfirm(kind settingsForm, title, description string) (settingsModel, tea.Cmd) {
	*s.confirm = false
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Description(description).
				Affirmative("Reset").Negative("Cancel").Value(s.confirm),
		),
	).WithShowHelp(true)

	s.formKind = kind
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateCompleted:
		s.formActive = false
		s.form = nil
		return s, s.apply()
	case huh.StateAborted:
		s.formActive = false
		s.form = nil
		return s, nil
	}

	return s, cmd
}

func (s settingsModel) apply() tea.Cmd {
	switch s.formKind {
	case formEdit:
		st := store.Settings{
			Sound:        *s.sound,
			Vibration:    *s.vibration,
			Reminder:     *s.reminder,
			ReminderTime: *s.reminderTime,
		}
		if err := s.svc.Store.SaveSettings(st); err != nil {
			s.svc.Log.Error("save settings", "error", err)
			return func() tea.Msg { return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true} }
		}
		return tea.Batch(s.refresh(), func() tea.Msg { return statusMsg{text: "Settings saved"} })

	case formResetProgress, formResetAll:
		if !*s.confirm {
			return nil
		}
		kind := s.formKind
		return func() tea.Msg {
			ctx := context.Background()
			var err error
			if kind == formResetAll {
				err = s.svc.Ledger.ResetAll(ctx)
			} else {
				err = s.svc.Ledger.ResetProgress(ctx)
			}
			if err != nil {
				s.svc.Log.Error("reset", "all", kind == formResetAll, "error", err)
				return statusMsg{text: fmt.Sprintf("Reset failed: %v", err), isError: true}
			}
			return ledgerChangedMsg{}
		}
	}
	return nil
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(20).Render(label), highlightStyle.Render(value))
	}
	reminder := "off"
	if s.settings.Reminder {
		reminder = "daily at " + s.settings.ReminderTime
	}

	rows := []string{
		title,
		"",
		row("Sound cues", onOff(s.settings.Sound)),
		row("Vibration cues", onOff(s.settings.Vibration)),
		row("Reminder", reminder),
		"",
		mutedStyle.Render("enter: edit  r: reset progress  R: reset everything"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
