// Package export writes the session run log as CSV or JSON.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/kegelcoach/internal/store"
)

// ToCSV writes runs to a CSV file at path. titles maps session ids to
// display titles.
func ToCSV(runs []store.Run, titles map[string]string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()
	return WriteCSV(f, runs, titles)
}

func WriteCSV(out io.Writer, runs []store.Run, titles map[string]string) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Session", "Title", "Plan", "Status", "Started", "Ended", "Elapsed (s)", "Elapsed", "Minutes"}); err != nil {
		return err
	}

	for _, r := range runs {
		endStr := ""
		if r.EndedAt != nil {
			endStr = r.EndedAt.Local().Format(time.RFC3339)
		}
		row := []string{
			r.ID,
			r.SessionID,
			titleFor(titles, r.SessionID),
			r.PlanID,
			string(r.Status),
			r.StartedAt.Local().Format(time.RFC3339),
			endStr,
			strconv.Itoa(r.ElapsedSeconds),
			formatDuration(r.ElapsedSeconds),
			strconv.Itoa(r.Minutes),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func titleFor(titles map[string]string, sessionID string) string {
	if t, ok := titles[sessionID]; ok {
		return t
	}
	return "Unknown"
}

func formatDuration(secs int) string {
	m := secs / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}
