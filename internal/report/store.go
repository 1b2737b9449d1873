package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrReportNotFound is returned when a report doesn't exist.
var ErrReportNotFound = errors.New("report not found")

// Store manages report persistence.
type Store struct {
	Dir string // base directory for reports
}

// NewStore creates a store with the given directory.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// DefaultDir returns the default report directory (~/.lastgood/runs).
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lastgood/runs"
	}
	return filepath.Join(home, ".lastgood", "runs")
}

// Save stores a report, returning the file path.
func (s *Store) Save(r RunReport) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", err
	}

	path := s.Path(r.RunID)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	return path, nil
}

// Load retrieves a report by run ID.
func (s *Store) Load(runID string) (RunReport, error) {
	data, err := os.ReadFile(s.Path(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return RunReport{}, ErrReportNotFound
		}
		return RunReport{}, err
	}

	var r RunReport
	if err := json.Unmarshal(data, &r); err != nil {
		return RunReport{}, err
	}

	return r, nil
}

// List returns summaries of all stored reports, newest first.
func (s *Store) List() ([]RunSummary, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunSummary{}, nil
		}
		return nil, err
	}

	var summaries []RunSummary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.Dir, entry.Name()))
		if err != nil {
			continue // skip unreadable files
		}

		var r RunReport
		if err := json.Unmarshal(data, &r); err != nil {
			continue // skip invalid JSON
		}

		summaries = append(summaries, RunSummary{
			RunID:     r.RunID,
			Target:    r.Target,
			Found:     r.Found,
			StartedAt: r.StartedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].StartedAt.After(summaries[j].StartedAt)
	})

	return summaries, nil
}

// Delete removes a report by run ID.
func (s *Store) Delete(runID string) error {
	err := os.Remove(s.Path(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrReportNotFound
		}
		return err
	}
	return nil
}

// Prune removes reports older than the given duration. Returns the
// number of reports deleted.
func (s *Store) Prune(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-olderThan)
	deleted := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(s.Dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var r RunReport
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}

		if r.StartedAt.Before(cutoff) {
			if err := os.Remove(path); err == nil {
				deleted++
			}
		}
	}

	return deleted, nil
}

// Path returns the file path for a run ID.
func (s *Store) Path(runID string) string {
	return filepath.Join(s.Dir, runID+".json")
}
