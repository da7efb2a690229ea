// Package config holds the calibration knobs of the frequency model.
//
// The defaults reproduce the historical constants of the original tool;
// a stal.toml file discovered upward from the working directory (or passed
// explicitly via --config) overrides them per project.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// TuningFileName is the per-project override file discovered by FindTuningFile.
const TuningFileName = "stal.toml"

// Tuning collects every calibration knob of the model. The core takes it by
// value; a zero Tuning is not usable, start from Default.
type Tuning struct {
	// MinRating is the lower clamp of a computed token rating, and the fixed
	// rating assigned to tokens the model has never seen.
	MinRating float64 `toml:"min-rating"`

	// MaxRating is the upper clamp of a computed token rating.
	MaxRating float64 `toml:"max-rating"`

	// NoTokenRating is the neutral rating recorded when a known token has no
	// occurrences for an author, and the fallback wherever a rating cannot be
	// computed without dividing by zero.
	NoTokenRating float64 `toml:"no-token-rating"`

	// MaxSentenceLength caps a segmented sentence chunk, in code points.
	MaxSentenceLength int `toml:"max-sentence-length"`

	// TrimThreshold is the minimum rating-list size before outlier trimming
	// kicks in; TrimDrop ratings are then removed from each end.
	TrimThreshold int `toml:"trim-threshold"`
	TrimDrop      int `toml:"trim-drop"`

	// TailThreshold caps the post-trim rating list: when exceeded, only the
	// TailKeep lowest and TailKeep highest ratings are combined.
	TailThreshold int `toml:"tail-threshold"`
	TailKeep      int `toml:"tail-keep"`
}

// Default returns the historical calibration of the model.
func Default() Tuning {
	return Tuning{
		MinRating:         0.2,
		MaxRating:         0.7,
		NoTokenRating:     0.4,
		MaxSentenceLength: 96,
		TrimThreshold:     6,
		TrimDrop:          2,
		TailThreshold:     80,
		TailKeep:          40,
	}
}

// Validate rejects calibrations that would break the classifier's guarantees.
func (t Tuning) Validate() error {
	if t.MinRating <= 0 || t.MaxRating >= 1 || t.MinRating >= t.MaxRating {
		return fmt.Errorf("rating clamp must satisfy 0 < min < max < 1, got [%v, %v]", t.MinRating, t.MaxRating)
	}
	if t.NoTokenRating <= 0 || t.NoTokenRating >= 1 {
		return fmt.Errorf("no-token-rating must lie in (0, 1), got %v", t.NoTokenRating)
	}
	if t.MaxSentenceLength < 1 {
		return fmt.Errorf("max-sentence-length must be positive, got %d", t.MaxSentenceLength)
	}
	if t.TrimDrop < 0 || t.TrimThreshold < 2*t.TrimDrop {
		return fmt.Errorf("trim-threshold %d cannot be below twice trim-drop %d", t.TrimThreshold, t.TrimDrop)
	}
	if t.TailKeep < 1 || t.TailThreshold < 2*t.TailKeep {
		return fmt.Errorf("tail-threshold %d cannot be below twice tail-keep %d", t.TailThreshold, t.TailKeep)
	}
	return nil
}

// tuningFile is the on-disk shape of stal.toml.
type tuningFile struct {
	Tuning Tuning `toml:"tuning"`
}

// FindTuningFile walks upward from startDir looking for stal.toml.
func FindTuningFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, TuningFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads a tuning file at path, layering it over Default.
func Load(path string) (Tuning, error) {
	file := tuningFile{Tuning: Default()}
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return Tuning{}, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	if err := file.Tuning.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("invalid tuning in %q: %w", path, err)
	}
	return file.Tuning, nil
}

// Discover resolves the effective tuning: an explicit path wins, otherwise
// the nearest stal.toml above startDir, otherwise Default.
func Discover(explicitPath, startDir string) (Tuning, error) {
	if explicitPath != "" {
		return Load(explicitPath)
	}
	path, ok, err := FindTuningFile(startDir)
	if err != nil {
		return Tuning{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
