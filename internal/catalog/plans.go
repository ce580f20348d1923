package catalog

import "fmt"

const (
	DemoSessionID = "demo-session"
	demoPlanID    = "demo"
)

func beginnerPlan() Plan {
	sessions := make([]Session, 14)
	for i := range sessions {
		day := i + 1
		title, desc := "Strengthening", "Build endurance and control"
		switch {
		case i < 5:
			title, desc = "Foundation", "Focus on proper technique and awareness"
		case i < 10:
			title, desc = "Building", "Increase duration and add variety"
		}
		pulses := "pulsed-contractions"
		if i >= 7 {
			pulses = "quick-flicks"
		}
		sessions[i] = Session{
			ID:           fmt.Sprintf("beginner-day-%d", day),
			PlanID:       string(LevelBeginner),
			DayIndex:     day,
			Title:        fmt.Sprintf("Day %d: %s", day, title),
			Description:  desc,
			TotalSeconds: 180 + i*15,
			Steps: []SessionStep{
				{
					ID:          fmt.Sprintf("beginner-%d-warmup", day),
					ExerciseID:  "breathing-coordination",
					Kind:        StepWarmup,
					WorkSeconds: 30,
					RestSeconds: 10,
					Sets:        2,
					Instruction: "Breathe deeply and connect with your pelvic floor",
				},
				{
					ID:          fmt.Sprintf("beginner-%d-main-1", day),
					ExerciseID:  "gentle-hold",
					Kind:        StepMain,
					WorkSeconds: 5 + i/3,
					RestSeconds: 10,
					Sets:        5 + i/5,
					Instruction: "Hold gently, then fully release",
				},
				{
					ID:          fmt.Sprintf("beginner-%d-main-2", day),
					ExerciseID:  pulses,
					Kind:        StepMain,
					WorkSeconds: 1,
					RestSeconds: 1,
					Sets:        1,
					Reps:        reps(10 + i),
					Instruction: "Quick pulses with full relaxation between each",
				},
				{
					ID:          fmt.Sprintf("beginner-%d-cooldown", day),
					ExerciseID:  "release-relax",
					Kind:        StepCooldown,
					WorkSeconds: 30,
					RestSeconds: 0,
					Sets:        1,
					Instruction: "Release all tension and breathe deeply",
				},
			},
		}
	}
	return Plan{
		ID:           string(LevelBeginner),
		Name:         "Beginner Program",
		Level:        LevelBeginner,
		DurationDays: len(sessions),
		Description:  "Perfect for those new to pelvic floor training. Build proper technique and foundational strength over 14 days.",
		Sessions:     sessions,
	}
}

func intermediatePlan() Plan {
	sessions := make([]Session, 30)
	for i := range sessions {
		day := i + 1
		title, desc := "Mastery", "Develop advanced control"
		switch {
		case i < 10:
			title, desc = "Progression", "Build on foundations with longer holds"
		case i < 20:
			title, desc = "Intensity", "Add intensity and complexity"
		}
		sessions[i] = Session{
			ID:           fmt.Sprintf("intermediate-day-%d", day),
			PlanID:       string(LevelIntermediate),
			DayIndex:     day,
			Title:        fmt.Sprintf("Day %d: %s", day, title),
			Description:  desc,
			TotalSeconds: 240 + i*10,
			Steps: []SessionStep{
				{
					ID:          fmt.Sprintf("intermediate-%d-warmup", day),
					ExerciseID:  "breathing-coordination",
					Kind:        StepWarmup,
					WorkSeconds: 30,
					RestSeconds: 10,
					Sets:        2,
					Instruction: "Center yourself with breath awareness",
				},
				{
					ID:          fmt.Sprintf("intermediate-%d-main-1", day),
					ExerciseID:  "stair-step-holds",
					Kind:        StepMain,
					WorkSeconds: 20 + i/5,
					RestSeconds: 15,
					Sets:        3,
					Instruction: "Build through intensity levels",
				},
				{
					ID:          fmt.Sprintf("intermediate-%d-main-2", day),
					ExerciseID:  "endurance-hold",
					Kind:        StepMain,
					WorkSeconds: 15 + i/3,
					RestSeconds: 20,
					Sets:        4,
					Instruction: "Maintain steady engagement",
				},
				{
					ID:          fmt.Sprintf("intermediate-%d-main-3", day),
					ExerciseID:  "core-integration",
					Kind:        StepMain,
					WorkSeconds: 10,
					RestSeconds: 10,
					Sets:        5,
					Instruction: "Connect pelvic floor with core",
				},
				{
					ID:          fmt.Sprintf("intermediate-%d-cooldown", day),
					ExerciseID:  "body-scan-cooldown",
					Kind:        StepCooldown,
					WorkSeconds: 60,
					RestSeconds: 0,
					Sets:        1,
					Instruction: "Full body relaxation and integration",
				},
			},
		}
	}
	return Plan{
		ID:           string(LevelIntermediate),
		Name:         "Intermediate Program",
		Level:        LevelIntermediate,
		DurationDays: len(sessions),
		Description:  "Take your training to the next level with increased intensity and duration. Build real endurance and control.",
		Sessions:     sessions,
	}
}

func advancedPlan() Plan {
	sessions := make([]Session, 60)
	for i := range sessions {
		day := i + 1
		title, desc := "Mastery Integration", "Integration and sustained excellence"
		switch {
		case i < 20:
			title, desc = "Elite Foundation", "High-intensity foundational work"
		case i < 40:
			title, desc = "Peak Performance", "Maximum control and endurance"
		}
		sessions[i] = Session{
			ID:           fmt.Sprintf("advanced-day-%d", day),
			PlanID:       string(LevelAdvanced),
			DayIndex:     day,
			Title:        fmt.Sprintf("Day %d: %s", day, title),
			Description:  desc,
			TotalSeconds: 360 + i*5,
			Steps: []SessionStep{
				{ID: fmt.Sprintf("advanced-%d-warmup-1", day), ExerciseID: "breathing-coordination", Kind: StepWarmup, WorkSeconds: 30, RestSeconds: 5, Sets: 2, Instruction: "Deep breath awareness"},
				{ID: fmt.Sprintf("advanced-%d-warmup-2", day), ExerciseID: "gentle-hold", Kind: StepWarmup, WorkSeconds: 10, RestSeconds: 5, Sets: 3, Instruction: "Activate and prepare"},
				{ID: fmt.Sprintf("advanced-%d-main-1", day), ExerciseID: "stair-step-holds", Kind: StepMain, WorkSeconds: 30 + i/10, RestSeconds: 15, Sets: 4, Instruction: "Full intensity progression"},
				{ID: fmt.Sprintf("advanced-%d-main-2", day), ExerciseID: "endurance-hold", Kind: StepMain, WorkSeconds: 30 + i/5, RestSeconds: 20, Sets: 5, Instruction: "Extended stamina challenge"},
				{ID: fmt.Sprintf("advanced-%d-main-3", day), ExerciseID: "quick-flicks", Kind: StepMain, WorkSeconds: 1, RestSeconds: 1, Sets: 1, Reps: reps(20 + i/3), Instruction: "Speed and precision work"},
				{ID: fmt.Sprintf("advanced-%d-main-4", day), ExerciseID: "core-integration", Kind: StepMain, WorkSeconds: 15, RestSeconds: 10, Sets: 6, Instruction: "Full-body coordination"},
				{ID: fmt.Sprintf("advanced-%d-cooldown-1", day), ExerciseID: "reverse-kegel", Kind: StepCooldown, WorkSeconds: 30, RestSeconds: 10, Sets: 2, Instruction: "Release and lengthen"},
				{ID: fmt.Sprintf("advanced-%d-cooldown-2", day), ExerciseID: "body-scan-cooldown", Kind: StepCooldown, WorkSeconds: 90, RestSeconds: 0, Sets: 1, Instruction: "Complete restoration"},
			},
		}
	}
	return Plan{
		ID:           string(LevelAdvanced),
		Name:         "Advanced Program",
		Level:        LevelAdvanced,
		DurationDays: len(sessions),
		Description:  "Elite-level training for maximum strength, endurance, and control. A comprehensive 60-day transformation.",
		Sessions:     sessions,
	}
}

func demoSession() Session {
	return Session{
		ID:           DemoSessionID,
		PlanID:       demoPlanID,
		DayIndex:     0,
		Title:        "Demo Session",
		Description:  "Try a short sample of what Kegel Coach offers",
		TotalSeconds: 120,
		Steps: []SessionStep{
			{ID: "demo-warmup", ExerciseID: "breathing-coordination", Kind: StepWarmup, WorkSeconds: 20, RestSeconds: 5, Sets: 1, Instruction: "Breathe deeply and connect with your body"},
			{ID: "demo-main", ExerciseID: "gentle-hold", Kind: StepMain, WorkSeconds: 5, RestSeconds: 5, Sets: 5, Instruction: "Gentle contraction, then full release"},
			{ID: "demo-cooldown", ExerciseID: "release-relax", Kind: StepCooldown, WorkSeconds: 20, RestSeconds: 0, Sets: 1, Instruction: "Release and relax completely"},
		},
	}
}
