package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/kegelcoach/internal/store"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Runs       []jsonRun `json:"runs"`
}

type jsonRun struct {
	ID         string `json:"id"`
	SessionID  string `json:"session_id"`
	Title      string `json:"title"`
	PlanID     string `json:"plan_id,omitempty"`
	Status     string `json:"status"`
	StartedAt  string `json:"started_at"`
	EndedAt    string `json:"ended_at,omitempty"`
	ElapsedSec int    `json:"elapsed_seconds"`
	Elapsed    string `json:"elapsed"`
	Minutes    int    `json:"minutes"`
}

func ToJSON(runs []store.Run, titles map[string]string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()
	return WriteJSON(f, runs, titles)
}

func WriteJSON(out io.Writer, runs []store.Run, titles map[string]string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(runs),
		Runs:       []jsonRun{},
	}

	for _, r := range runs {
		endStr := ""
		if r.EndedAt != nil {
			endStr = r.EndedAt.Local().Format(time.RFC3339)
		}
		export.Runs = append(export.Runs, jsonRun{
			ID:         r.ID,
			SessionID:  r.SessionID,
			Title:      titleFor(titles, r.SessionID),
			PlanID:     r.PlanID,
			Status:     string(r.Status),
			StartedAt:  r.StartedAt.Local().Format(time.RFC3339),
			EndedAt:    endStr,
			ElapsedSec: r.ElapsedSeconds,
			Elapsed:    formatDuration(r.ElapsedSeconds),
			Minutes:    r.Minutes,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
