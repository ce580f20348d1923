package engine

// cursor describes what is left of the current step when a phase ends.
type cursor uint8

const (
	repLeft  cursor = 1 << iota // rep-driven step with reps remaining in this set
	setLeft                     // more sets after the current one
	stepLeft                    // more steps after the current one
	hasRest                     // step has a non-zero rest interval
)

// counterRule says how step/set/rep counters move on a transition.
type counterRule int

const (
	keepCounters counterRule = iota
	advanceRep               // rep++
	advanceSet               // set++, rep = 1
	advanceStep              // step++, set = 1, rep = 1
)

type transition struct {
	next Phase
	rule counterRule
}

// workTransitions covers every cursor value a work phase can end with.
// Counters advance when a work phase ends, so a following rest is already
// labelled with the upcoming rep/set and always resolves to work. The last
// work of a step is never followed by a rest.
var workTransitions = map[cursor]transition{
	0:                                      {PhaseCompleted, keepCounters},
	hasRest:                                {PhaseCompleted, keepCounters},
	stepLeft:                               {PhaseCountdown, advanceStep},
	stepLeft | hasRest:                     {PhaseCountdown, advanceStep},
	setLeft:                                {PhaseWork, advanceSet},
	setLeft | hasRest:                      {PhaseRest, advanceSet},
	setLeft | stepLeft:                     {PhaseWork, advanceSet},
	setLeft | stepLeft | hasRest:           {PhaseRest, advanceSet},
	repLeft:                                {PhaseWork, advanceRep},
	repLeft | hasRest:                      {PhaseRest, advanceRep},
	repLeft | stepLeft:                     {PhaseWork, advanceRep},
	repLeft | stepLeft | hasRest:           {PhaseRest, advanceRep},
	repLeft | setLeft:                      {PhaseWork, advanceRep},
	repLeft | setLeft | hasRest:            {PhaseRest, advanceRep},
	repLeft | setLeft | stepLeft:           {PhaseWork, advanceRep},
	repLeft | setLeft | stepLeft | hasRest: {PhaseRest, advanceRep},
}

func nextTransition(from Phase, c cursor) (transition, bool) {
	switch from {
	case PhaseCountdown, PhaseRest:
		return transition{PhaseWork, keepCounters}, true
	case PhaseWork:
		t, ok := workTransitions[c]
		return t, ok
	}
	return transition{}, false
}

// skipTransition jumps straight past the current step.
func skipTransition(c cursor) transition {
	if c&stepLeft != 0 {
		return transition{PhaseCountdown, advanceStep}
	}
	return transition{PhaseCompleted, keepCounters}
}
