package bayes

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when modelPayload format changes.
const modelSchemaVersion uint16 = 1

// modelPayload is the on-disk shape of a trained model. Field order is not
// significant (msgpack maps are self-describing), but every field is
// required and the schema tag guards readers against format drift.
type modelPayload struct {
	Schema       uint16
	Authors      []string
	TokenCounts  map[string][]uint32
	AuthorTotals []uint32
	GrandTotal   uint32
}

// Save freezes the model to path. Missing parent directories are created.
// The payload is written to a temp file in the destination directory and
// renamed into place, so a partial write never corrupts an existing model.
func Save(m *Model, path string) error {
	payload := modelPayload{
		Schema:       modelSchemaVersion,
		Authors:      m.authors,
		TokenCounts:  m.tokenCounts,
		AuthorTotals: m.authorTotals,
		GrandTotal:   m.grandTotal,
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrWrite, path, err)
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrWrite, path, err)
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&payload); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrSerialize, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrWrite, path, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrWrite, path, err)
	}
	return nil
}

// Load revives a model frozen by Save. The bytes must decode to the current
// schema and satisfy the model invariants; anything else fails with
// ErrDeserialize. Loading reproduces the stored integers and orderings
// verbatim, so a loaded model classifies identically to the one saved.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrRead, path, err)
	}
	var payload modelPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrDeserialize, path, err)
	}
	if payload.Schema != modelSchemaVersion {
		return nil, fmt.Errorf("%w: %q: schema %d, want %d", ErrDeserialize, path, payload.Schema, modelSchemaVersion)
	}

	m := &Model{
		authors:      payload.Authors,
		authorIndex:  buildAuthorIndex(payload.Authors),
		tokenCounts:  payload.TokenCounts,
		authorTotals: payload.AuthorTotals,
		grandTotal:   payload.GrandTotal,
	}
	if m.tokenCounts == nil {
		m.tokenCounts = make(map[string][]uint32)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrDeserialize, path, err)
	}
	return m, nil
}
