package catalog

type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

type StepKind string

const (
	StepWarmup   StepKind = "warmup"
	StepMain     StepKind = "main"
	StepCooldown StepKind = "cooldown"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

type Exercise struct {
	ID             string    `yaml:"id"`
	Name           string    `yaml:"name"`
	Description    string    `yaml:"description"`
	TechniqueCues  []string  `yaml:"technique_cues"`
	CommonMistakes []string  `yaml:"common_mistakes"`
	SafetyNote     string    `yaml:"safety_note"`
	Intensity      Intensity `yaml:"intensity"`
}

// SessionStep is one instructable unit of a session. When Reps is set the
// step is rep-driven: every set repeats the work phase Reps times.
type SessionStep struct {
	ID          string
	ExerciseID  string
	Kind        StepKind
	WorkSeconds int
	RestSeconds int
	Sets        int
	Reps        *int
	Instruction string
}

// RepDriven reports whether the step progresses by reps rather than by sets alone.
func (s SessionStep) RepDriven() bool {
	return s.Reps != nil
}

// RepCount returns the number of work phases per set.
func (s SessionStep) RepCount() int {
	if s.Reps == nil {
		return 1
	}
	return *s.Reps
}

type Session struct {
	ID           string
	PlanID       string
	DayIndex     int // 1-based; 0 for the demo session
	Title        string
	Description  string
	TotalSeconds int
	Steps        []SessionStep
}

type Plan struct {
	ID           string
	Name         string
	Level        Level
	DurationDays int
	Description  string
	Sessions     []Session
}

func reps(n int) *int { return &n }
