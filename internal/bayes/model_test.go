package bayes

import (
	"errors"
	"testing"
)

// newTestModel builds a model directly from a token table, deriving totals
// the same way training does, and fails the test if the result is invalid.
func newTestModel(t *testing.T, authors []string, tokenCounts map[string][]uint32) *Model {
	t.Helper()
	totals, grand, err := finalizeTotals(authors, tokenCounts)
	if err != nil {
		t.Fatalf("finalizeTotals: %v", err)
	}
	m := &Model{
		authors:      authors,
		authorIndex:  buildAuthorIndex(authors),
		tokenCounts:  tokenCounts,
		authorTotals: totals,
		grandTotal:   grand,
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("test model invalid: %v", err)
	}
	return m
}

func TestModelInvariants(t *testing.T) {
	m := newTestModel(t, []string{"ann", "bob"}, map[string][]uint32{
		"wind":  {3, 1},
		"stone": {0, 4},
		"river": {2, 0},
	})

	if got := m.AuthorCount(); got != 2 {
		t.Errorf("AuthorCount = %d, want 2", got)
	}
	var sum uint32
	for _, name := range m.Authors() {
		idx, ok := m.AuthorIndex(name)
		if !ok {
			t.Fatalf("AuthorIndex(%q) not found", name)
		}
		sum += m.authorTotals[idx]
	}
	if sum != m.GrandTotal() {
		t.Errorf("author totals sum %d != grand total %d", sum, m.GrandTotal())
	}
	if m.GrandTotal() != 10 {
		t.Errorf("grand total = %d, want 10", m.GrandTotal())
	}
}

func TestAuthorIndexUnknown(t *testing.T) {
	m := newTestModel(t, []string{"ann"}, map[string][]uint32{"wind": {1}})
	if _, ok := m.AuthorIndex("nobody"); ok {
		t.Error("AuthorIndex reported an author the model never saw")
	}
	if _, err := m.TokenCount("wind", "nobody"); !errors.Is(err, ErrUnknownAuthor) {
		t.Errorf("TokenCount error = %v, want ErrUnknownAuthor", err)
	}
}

func TestTokenCount(t *testing.T) {
	m := newTestModel(t, []string{"ann", "bob"}, map[string][]uint32{"wind": {3, 1}})
	cases := []struct {
		token, author string
		want          uint32
	}{
		{"wind", "ann", 3},
		{"wind", "bob", 1},
		{"fog", "ann", 0}, // unseen token
	}
	for _, tc := range cases {
		got, err := m.TokenCount(tc.token, tc.author)
		if err != nil {
			t.Fatalf("TokenCount(%q, %q): %v", tc.token, tc.author, err)
		}
		if got != tc.want {
			t.Errorf("TokenCount(%q, %q) = %d, want %d", tc.token, tc.author, got, tc.want)
		}
	}
}

func TestValidateRejectsBrokenModels(t *testing.T) {
	base := func() *Model {
		return &Model{
			authors:      []string{"ann", "bob"},
			authorIndex:  map[string]int{"ann": 0, "bob": 1},
			tokenCounts:  map[string][]uint32{"wind": {3, 1}},
			authorTotals: []uint32{3, 1},
			grandTotal:   4,
		}
	}

	m := base()
	if err := m.Validate(); err != nil {
		t.Fatalf("base model should be valid: %v", err)
	}

	m = base()
	m.tokenCounts["odd"] = []uint32{1} // wrong vector length
	if err := m.Validate(); err == nil {
		t.Error("short token vector passed validation")
	}

	m = base()
	m.authorTotals[0] = 99
	if err := m.Validate(); err == nil {
		t.Error("wrong author total passed validation")
	}

	m = base()
	m.grandTotal = 1
	if err := m.Validate(); err == nil {
		t.Error("wrong grand total passed validation")
	}

	m = base()
	m.authorIndex = map[string]int{"ann": 1, "bob": 0}
	if err := m.Validate(); err == nil {
		t.Error("out-of-sync author index passed validation")
	}
}
