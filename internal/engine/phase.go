package engine

// Phase is the playback phase of the active step.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhaseWork
	PhaseRest
	PhaseCompleted
)

var phaseNames = map[Phase]string{
	PhaseCountdown: "countdown",
	PhaseWork:      "work",
	PhaseRest:      "rest",
	PhaseCompleted: "completed",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// CountdownSeconds is the pre-roll before the first work phase of each step.
const CountdownSeconds = 3
