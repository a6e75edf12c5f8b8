package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// CompletedScenariosPath is where the completed-levels set lives, per §6.
const CompletedScenariosPath = "data/completed_levels.json"

// CompletedScenarios is the set of scenario/level names the player has
// finished, serialized as a JSON array of names (a set is more natural
// in Go as a map, but the array-of-names shape is what §6 names and
// keeps the file human-editable).
type CompletedScenarios map[string]bool

// LoadCompletedScenarios reads CompletedScenariosPath, returning an
// empty set (not an error) if the file does not exist yet -- the first
// run of a fresh install has no completions recorded.
func LoadCompletedScenarios() (CompletedScenarios, error) {
	data, err := os.ReadFile(CompletedScenariosPath)
	if err != nil {
		if os.IsNotExist(err) {
			return CompletedScenarios{}, nil
		}
		logger.Log("op", "load_completed", "err", err)
		return CompletedScenarios{}, nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		logger.Log("op", "load_completed", "err", err)
		return CompletedScenarios{}, nil
	}
	set := make(CompletedScenarios, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set, nil
}

// Save writes the set back out as a sorted JSON array of names.
func (c CompletedScenarios) Save() error {
	names := make([]string, 0, len(c))
	for n, done := range c {
		if done {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		logger.Log("op", "save_completed", "err", err)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(CompletedScenariosPath), 0o755); err != nil {
		logger.Log("op", "save_completed", "err", err)
		return err
	}
	if err := os.WriteFile(CompletedScenariosPath, data, 0o644); err != nil {
		logger.Log("op", "save_completed", "err", err)
		return err
	}
	return nil
}

// Mark records name as completed.
func (c CompletedScenarios) Mark(name string) {
	c[name] = true
}

// IsCompleted reports whether name has been completed.
func (c CompletedScenarios) IsCompleted(name string) bool {
	return c[name]
}
