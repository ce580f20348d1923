// Package catalog holds the static training content: exercises, plans and
// their day-by-day sessions.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrPlanNotFound     = errors.New("plan not found")
	ErrInvalidStep      = errors.New("invalid step configuration")
)

//go:embed exercises.yaml
var exercisesYAML []byte

type exerciseFile struct {
	Exercises []Exercise `yaml:"exercises"`
}

// Catalog is read-only after New returns.
type Catalog struct {
	exercises []Exercise
	plans     []Plan
	demo      Session

	exerciseByID map[string]int
	sessionByID  map[string]Session
	planByID     map[string]int
}

// New decodes the embedded exercise list, builds the plans and validates
// every step against it.
func New() (*Catalog, error) {
	exercises, err := decodeExercises(exercisesYAML)
	if err != nil {
		return nil, err
	}
	return build(exercises, []Plan{beginnerPlan(), intermediatePlan(), advancedPlan()}, demoSession())
}

func decodeExercises(data []byte) ([]Exercise, error) {
	var f exerciseFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}
	for _, e := range f.Exercises {
		switch e.Intensity {
		case IntensityLow, IntensityMedium, IntensityHigh:
		default:
			return nil, fmt.Errorf("exercise %q: unknown intensity %q", e.ID, e.Intensity)
		}
	}
	return f.Exercises, nil
}

func build(exercises []Exercise, plans []Plan, demo Session) (*Catalog, error) {
	c := &Catalog{
		exercises:    exercises,
		plans:        plans,
		demo:         demo,
		exerciseByID: make(map[string]int, len(exercises)),
		sessionByID:  make(map[string]Session),
		planByID:     make(map[string]int, len(plans)),
	}
	for i, e := range exercises {
		if _, dup := c.exerciseByID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate exercise id %q", e.ID)
		}
		c.exerciseByID[e.ID] = i
	}

	add := func(s Session) error {
		if _, dup := c.sessionByID[s.ID]; dup {
			return fmt.Errorf("duplicate session id %q", s.ID)
		}
		if len(s.Steps) == 0 {
			return fmt.Errorf("session %q: %w: no steps", s.ID, ErrInvalidStep)
		}
		for _, step := range s.Steps {
			if err := ValidateStep(step); err != nil {
				return fmt.Errorf("session %q: %w", s.ID, err)
			}
			if _, ok := c.exerciseByID[step.ExerciseID]; !ok {
				return fmt.Errorf("session %q step %q: %w: %s", s.ID, step.ID, ErrExerciseNotFound, step.ExerciseID)
			}
		}
		c.sessionByID[s.ID] = s
		return nil
	}

	for i, p := range plans {
		c.planByID[p.ID] = i
		for _, s := range p.Sessions {
			if err := add(s); err != nil {
				return nil, err
			}
		}
	}
	if err := add(demo); err != nil {
		return nil, err
	}
	return c, nil
}

// ValidateStep rejects step definitions that cannot be played.
func ValidateStep(s SessionStep) error {
	switch {
	case s.ExerciseID == "":
		return fmt.Errorf("step %q: %w: missing exercise", s.ID, ErrInvalidStep)
	case s.Sets < 1:
		return fmt.Errorf("step %q: %w: sets %d < 1", s.ID, ErrInvalidStep, s.Sets)
	case s.Reps != nil && *s.Reps < 1:
		return fmt.Errorf("step %q: %w: reps %d < 1", s.ID, ErrInvalidStep, *s.Reps)
	case s.WorkSeconds < 0:
		return fmt.Errorf("step %q: %w: negative work seconds", s.ID, ErrInvalidStep)
	case s.RestSeconds < 0:
		return fmt.Errorf("step %q: %w: negative rest seconds", s.ID, ErrInvalidStep)
	}
	return nil
}

func (c *Catalog) SessionByID(id string) (Session, error) {
	s, ok := c.sessionByID[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return s, nil
}

func (c *Catalog) ExerciseByID(id string) (Exercise, error) {
	i, ok := c.exerciseByID[id]
	if !ok {
		return Exercise{}, fmt.Errorf("%w: %q", ErrExerciseNotFound, id)
	}
	return c.exercises[i], nil
}

func (c *Catalog) PlanByID(id string) (Plan, error) {
	i, ok := c.planByID[id]
	if !ok {
		return Plan{}, fmt.Errorf("%w: %q", ErrPlanNotFound, id)
	}
	return c.plans[i], nil
}

func (c *Catalog) Plans() []Plan {
	out := make([]Plan, len(c.plans))
	copy(out, c.plans)
	return out
}

func (c *Catalog) Exercises() []Exercise {
	out := make([]Exercise, len(c.exercises))
	copy(out, c.exercises)
	return out
}

func (c *Catalog) Demo() Session {
	return c.demo
}

// RecommendedPlan maps the experience picked during onboarding to a plan.
func (c *Catalog) RecommendedPlan(experience string) Plan {
	id := string(LevelBeginner)
	switch Level(experience) {
	case LevelAdvanced, LevelIntermediate:
		id = experience
	}
	p, err := c.PlanByID(id)
	if err != nil {
		return c.plans[0]
	}
	return p
}

// NextSession returns the plan's session for dayIndex, falling back to the
// demo session once the plan is finished.
func (c *Catalog) NextSession(plan Plan, dayIndex int) Session {
	for _, s := range plan.Sessions {
		if s.DayIndex == dayIndex {
			return s
		}
	}
	return c.demo
}
