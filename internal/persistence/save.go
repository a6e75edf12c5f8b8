package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LordIdra/transfer-window-sub001/internal/simulation"
)

// SavesDir is the directory saves live in, keyed by name, per §6.
const SavesDir = "saves"

// Save writes m's full state to saves/<name>.json. A write failure is
// logged and returned rather than panicking -- §7's persistence-failure
// kind degrades gracefully, it does not collapse the run.
func Save(m *simulation.Model, name string) error {
	if err := os.MkdirAll(SavesDir, 0o755); err != nil {
		logger.Log("op", "save", "name", name, "err", err)
		return fmt.Errorf("persistence: creating saves dir: %w", err)
	}
	data, err := json.MarshalIndent(ToDocument(m), "", "  ")
	if err != nil {
		logger.Log("op", "save", "name", name, "err", err)
		return fmt.Errorf("persistence: encoding save %q: %w", name, err)
	}
	target := filepath.Join(SavesDir, name+".json")
	if err := os.WriteFile(target, data, 0o644); err != nil {
		logger.Log("op", "save", "name", name, "err", err)
		return fmt.Errorf("persistence: writing save %q: %w", name, err)
	}
	return nil
}

// Load reads saves/<name>.json back into a fresh Model. On failure the
// error is logged and returned; callers are expected to fall back to a
// default/new model rather than propagate the failure to the player.
func Load(name string) (*simulation.Model, error) {
	target := filepath.Join(SavesDir, name+".json")
	data, err := os.ReadFile(target)
	if err != nil {
		logger.Log("op", "load", "name", name, "err", err)
		return nil, fmt.Errorf("persistence: reading save %q: %w", name, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Log("op", "load", "name", name, "err", err)
		return nil, fmt.Errorf("persistence: decoding save %q: %w", name, err)
	}
	return ToModel(&doc), nil
}

// ListSaves returns every save name present in SavesDir (without the
// .json extension), sorted by file name (the order os.ReadDir returns).
func ListSaves() ([]string, error) {
	entries, err := os.ReadDir(SavesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("persistence: listing saves: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".json" {
			continue
		}
		names = append(names, e.Name()[:len(e.Name())-len(ext)])
	}
	return names, nil
}
