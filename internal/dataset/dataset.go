// Package dataset resolves a user-supplied dataset argument into the ordered
// (author, path) samples the trainer consumes.
//
// Two layouts are supported: a directory whose immediate subdirectories are
// authors (every .txt file below an author belongs to them), and a JSON
// manifest listing {"author", "text_path"} objects.
package dataset

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"stal/internal/bayes"
)

// manifestEntry is one record of a JSON manifest.
type manifestEntry struct {
	Author   string `json:"author"`
	TextPath string `json:"text_path"`
}

// Load resolves arg into samples: a path ending in .json is read as a
// manifest, anything else is walked as a directory tree.
func Load(arg string) ([]bayes.Sample, error) {
	if strings.HasSuffix(arg, ".json") {
		return LoadManifest(arg)
	}
	return LoadDir(arg)
}

// LoadManifest parses a JSON manifest, preserving its order.
func LoadManifest(path string) ([]bayes.Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	var entries []manifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}
	samples := make([]bayes.Sample, 0, len(entries))
	for i, e := range entries {
		if e.Author == "" || e.TextPath == "" {
			return nil, fmt.Errorf("manifest %q entry %d: author and text_path are required", path, i)
		}
		samples = append(samples, bayes.Sample{Author: e.Author, Path: e.TextPath})
	}
	return samples, nil
}

// LoadDir walks root treating each immediate subdirectory as an author and
// every .txt file below it (recursively, in lexical order) as one of their
// training texts. Files with a different extension are skipped; a file with
// no extension at all is rejected as an unsupported format.
func LoadDir(root string) ([]bayes.Sample, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset directory %q: %w", root, err)
	}

	var samples []bayes.Sample
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		author := entry.Name()
		authorDir := filepath.Join(root, author)
		err := filepath.WalkDir(authorDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			switch ext := filepath.Ext(path); ext {
			case ".txt":
				samples = append(samples, bayes.Sample{Author: author, Path: path})
				return nil
			case "":
				return fmt.Errorf("unsupported file format: %q", path)
			default:
				return nil
			}
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load author %q: %w", author, err)
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("dataset directory %q contains no author/*.txt files", root)
	}
	return samples, nil
}
