// Package bayes implements the statistical core of stal: a smoothed,
// spam-filter-flavored naive Bayes model that attributes text to one of
// several candidate authors by their token-frequency fingerprints.
//
// A Model is produced once by Train, optionally frozen to disk by Save and
// revived by Load, and then consulted read-only by any number of Classify
// calls. Nothing in the package mutates a trained model, which makes a single
// loaded instance safe to share across concurrent classifications.
package bayes

import (
	"fmt"

	"fortio.org/safecast"
)

// Sample is one labeled training input: an author name and the path of a
// UTF-8 text file written by that author.
type Sample struct {
	Author string
	Path   string
}

// Model is the trained frequency artifact. It is immutable after training;
// all fields stay unexported so no caller can break the counting invariants.
type Model struct {
	authors      []string
	authorIndex  map[string]int
	tokenCounts  map[string][]uint32
	authorTotals []uint32
	grandTotal   uint32
}

// AuthorCount returns the number of authors the model was trained on.
func (m *Model) AuthorCount() int { return len(m.authors) }

// Authors returns a copy of the author list in the model's fixed order.
func (m *Model) Authors() []string {
	out := make([]string, len(m.authors))
	copy(out, m.authors)
	return out
}

// AuthorIndex resolves an author name to its position in the model's fixed
// ordering. The second result is false for authors the model has never seen.
func (m *Model) AuthorIndex(name string) (int, bool) {
	idx, ok := m.authorIndex[name]
	return idx, ok
}

// TokenCount returns how often token was seen in the given author's training
// texts. ErrUnknownAuthor is returned for names outside the model.
func (m *Model) TokenCount(token, author string) (uint32, error) {
	idx, ok := m.authorIndex[author]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAuthor, author)
	}
	counts, ok := m.tokenCounts[token]
	if !ok {
		return 0, nil
	}
	return counts[idx], nil
}

// TokenKinds returns the number of distinct tokens in the model.
func (m *Model) TokenKinds() int { return len(m.tokenCounts) }

// GrandTotal returns the total token count used to train the model.
func (m *Model) GrandTotal() uint32 { return m.grandTotal }

// String summarizes the model for logs.
func (m *Model) String() string {
	return fmt.Sprintf("bayesian model with %d authors and %d tokens", len(m.authors), m.grandTotal)
}

// Validate checks the counting invariants that every trained or loaded model
// must satisfy: per-token vectors match the author count, per-author totals
// equal the componentwise token sums, and the grand total equals the sum of
// author totals.
func (m *Model) Validate() error {
	if len(m.authorTotals) != len(m.authors) {
		return fmt.Errorf("author totals length %d does not match %d authors", len(m.authorTotals), len(m.authors))
	}
	if len(m.authorIndex) != len(m.authors) {
		return fmt.Errorf("author index has %d entries for %d authors", len(m.authorIndex), len(m.authors))
	}
	for i, name := range m.authors {
		idx, ok := m.authorIndex[name]
		if !ok || idx != i {
			return fmt.Errorf("author index out of sync for %q", name)
		}
	}

	sums := make([]uint64, len(m.authors))
	for token, counts := range m.tokenCounts {
		if len(counts) != len(m.authors) {
			return fmt.Errorf("token %q has %d counts for %d authors", token, len(counts), len(m.authors))
		}
		for i, c := range counts {
			sums[i] += uint64(c)
		}
	}
	var grand uint64
	for i, total := range m.authorTotals {
		if sums[i] != uint64(total) {
			return fmt.Errorf("author %q total %d does not match token sum %d", m.authors[i], total, sums[i])
		}
		grand += uint64(total)
	}
	if grand != uint64(m.grandTotal) {
		return fmt.Errorf("grand total %d does not match author totals sum %d", m.grandTotal, grand)
	}
	return nil
}

// buildAuthorIndex derives the name-to-position map from the author list.
func buildAuthorIndex(authors []string) map[string]int {
	idx := make(map[string]int, len(authors))
	for i, name := range authors {
		idx[name] = i
	}
	return idx
}

// finalizeTotals derives the per-author totals and grand total from the token
// table, with checked uint32 arithmetic.
func finalizeTotals(authors []string, tokenCounts map[string][]uint32) ([]uint32, uint32, error) {
	sums := make([]uint64, len(authors))
	for _, counts := range tokenCounts {
		for i, c := range counts {
			sums[i] += uint64(c)
		}
	}
	totals := make([]uint32, len(authors))
	var grand uint64
	for i, s := range sums {
		total, err := safecast.Conv[uint32](s)
		if err != nil {
			return nil, 0, fmt.Errorf("author %q token total overflow: %w", authors[i], err)
		}
		totals[i] = total
		grand += s
	}
	grandTotal, err := safecast.Conv[uint32](grand)
	if err != nil {
		return nil, 0, fmt.Errorf("grand token total overflow: %w", err)
	}
	return totals, grandTotal, nil
}
