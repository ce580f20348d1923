package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/kegelcoach/internal/catalog"
	"github.com/sadopc/kegelcoach/internal/store"
)

// onboardingModel asks first-run questions and picks the starting plan.
type onboardingModel struct {
	svc    Services
	width  int
	height int

	active bool
	form   *huh.Form

	adult      *bool
	goals      *[]string
	experience *string
}

func newOnboardingModel(svc Services) onboardingModel {
	svc = svc.withDefaults()
	adult := false
	goals := []string{}
	experience := string(catalog.LevelBeginner)
	return onboardingModel{
		svc:        svc,
		adult:      &adult,
		goals:      &goals,
		experience: &experience,
	}
}

func (o *onboardingModel) setSize(w, h int) {
	o.width = w
	o.height = h
}

func (o onboardingModel) check() tea.Cmd {
	return func() tea.Msg {
		p, err := o.svc.Store.GetProfile(context.Background())
		return profileLoadedMsg{profile: p, err: err}
	}
}

func (o onboardingModel) update(msg tea.Msg) (onboardingModel, tea.Cmd) {
	if msg, ok := msg.(profileLoadedMsg); ok {
		if msg.err != nil {
			o.svc.Log.Error("load profile", "error", msg.err)
			return o, nil
		}
		if msg.profile.OnboardingComplete || o.active {
			return o, nil
		}
		return o.start()
	}

	if !o.active || o.form == nil {
		return o, nil
	}

	form, cmd := o.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		o.form = f
	}

	switch o.form.State {
	case huh.StateCompleted:
		return o.finish()
	case huh.StateAborted:
		return o, tea.Quit
	}
	return o, cmd
}

func (o onboardingModel) start() (onboardingModel, tea.Cmd) {
	*o.adult = false
	*o.goals = []string{}
	*o.experience = string(catalog.LevelBeginner)

	o.form = huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Welcome to kegelcoach").
				Description("Short guided pelvic floor sessions with a plan that grows with you."),
			huh.NewConfirm().Title("Are you 18 or older?").Value(o.adult).
				Validate(func(ok bool) error {
					if !ok {
						return errors.New("kegelcoach is for adults only")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().Title("What are your goals?").
				Options(
					huh.NewOption("Build endurance", "endurance"),
					huh.NewOption("Improve control", "control"),
					huh.NewOption("Support recovery", "recovery"),
				).Value(o.goals),
			huh.NewSelect[string]().Title("How familiar are you with pelvic floor training?").
				Options(
					huh.NewOption("New to it", string(catalog.LevelBeginner)),
					huh.NewOption("Tried it before", string(catalog.LevelIntermediate)),
					huh.NewOption("Train regularly", string(catalog.LevelAdvanced)),
				).Value(o.experience),
		),
	).WithShowHelp(true).WithShowErrors(true)

	o.active = true
	return o, o.form.Init()
}

func (o onboardingModel) finish() (onboardingModel, tea.Cmd) {
	goals := store.Goals{
		Endurance: slices.Contains(*o.goals, "endurance"),
		Control:   slices.Contains(*o.goals, "control"),
		Recovery:  slices.Contains(*o.goals, "recovery"),
	}
	ctx := context.Background()
	if err := o.svc.Store.CompleteOnboarding(ctx, goals, *o.experience); err != nil {
		o.svc.Log.Error("complete onboarding", "error", err)
		return o.retry(err)
	}
	plan := o.svc.Catalog.RecommendedPlan(*o.experience)
	if err := o.svc.Ledger.SelectPlan(ctx, plan.ID); err != nil {
		o.svc.Log.Error("select plan", "plan", plan.ID, "error", err)
		return o.retry(err)
	}
	o.svc.Log.Info("onboarding complete", "experience", *o.experience, "plan", plan.ID)

	o.active = false
	o.form = nil
	return o, func() tea.Msg { return onboardingDoneMsg{} }
}

// retry shows a fresh form after a failed save.
func (o onboardingModel) retry(err error) (onboardingModel, tea.Cmd) {
	o, cmd := o.start()
	return o, tea.Batch(cmd, func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Could not save: %v", err), isError: true}
	})
}

func (o onboardingModel) view() string {
	if o.form == nil {
		return ""
	}
	w := o.width - 4
	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Getting started"), "", o.form.View()),
	)
}
