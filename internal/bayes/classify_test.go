package bayes

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"stal/internal/config"
)

func ratingLegal(r float64, tun config.Tuning) bool {
	if r == tun.MinRating || r == tun.NoTokenRating {
		return true
	}
	return r >= tun.MinRating && r <= tun.MaxRating
}

func TestRateTokensBounds(t *testing.T) {
	tun := config.Default()
	m := newTestModel(t, []string{"ann", "bob"}, map[string][]uint32{
		"wind":  {30, 1},
		"stone": {2, 25},
		"river": {7, 7},
	})
	perAuthor := m.rateTokens([]string{"wind", "stone", "river", "unseen"}, tun)
	if len(perAuthor) != 2 {
		t.Fatalf("got rating lists for %d authors, want 2", len(perAuthor))
	}
	for a, rs := range perAuthor {
		if len(rs) == 0 {
			t.Fatalf("author %d received no ratings", a)
		}
		for _, r := range rs {
			if !ratingLegal(r, tun) {
				t.Errorf("author %d rating %v outside [%v, %v] and not a fixed value", a, r, tun.MinRating, tun.MaxRating)
			}
		}
	}
}

func TestRateTokensUnseenToken(t *testing.T) {
	tun := config.Default()
	m := newTestModel(t, []string{"ann", "bob"}, map[string][]uint32{"wind": {3, 1}})
	perAuthor := m.rateTokens([]string{"never-seen"}, tun)
	for a, rs := range perAuthor {
		if !reflect.DeepEqual(rs, []float64{tun.MinRating}) {
			t.Errorf("author %d ratings = %v, want [%v]", a, rs, tun.MinRating)
		}
	}
}

// A known token with zero occurrences for an author records the neutral
// rating and then the computed one: two entries for a single token.
func TestRateTokensZeroCountDoubleEntry(t *testing.T) {
	tun := config.Default()
	m := newTestModel(t, []string{"ann", "bob"}, map[string][]uint32{
		"wind":  {3, 0},
		"stone": {1, 5},
	})
	perAuthor := m.rateTokens([]string{"wind"}, tun)

	bob := perAuthor[1]
	if len(bob) != 2 {
		t.Fatalf("bob ratings = %v, want exactly 2 entries", bob)
	}
	if bob[0] != tun.NoTokenRating {
		t.Errorf("first entry = %v, want neutral %v", bob[0], tun.NoTokenRating)
	}
	if bob[1] != tun.MinRating {
		// Computed rating with a zero numerator collapses to the lower clamp.
		t.Errorf("second entry = %v, want clamped %v", bob[1], tun.MinRating)
	}

	ann := perAuthor[0]
	if len(ann) != 1 {
		t.Fatalf("ann ratings = %v, want exactly 1 entry", ann)
	}
}

func TestRateTokensZeroTotalAuthor(t *testing.T) {
	tun := config.Default()
	// bob trained on zero tokens: every vector has a zero in his column.
	m := newTestModel(t, []string{"ann", "bob"}, map[string][]uint32{
		"wind":  {3, 0},
		"stone": {2, 0},
	})
	perAuthor := m.rateTokens([]string{"wind", "stone"}, tun)
	for _, r := range perAuthor[1] {
		if r != tun.NoTokenRating {
			t.Errorf("zero-total author rating = %v, want neutral %v", r, tun.NoTokenRating)
		}
		if math.IsNaN(r) || math.IsInf(r, 0) {
			t.Fatalf("zero-total author produced %v", r)
		}
	}
	// ann holds every token, so her "other" denominator is zero too.
	for _, r := range perAuthor[0] {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			t.Fatalf("degenerate model produced %v", r)
		}
	}
}

func TestTrimOutliers(t *testing.T) {
	tun := config.Default()

	short := []float64{0.2, 0.3, 0.4, 0.5, 0.6, 0.7}
	if got := trimOutliers(short, tun); len(got) != 6 {
		t.Errorf("6 ratings should not be trimmed, got %d", len(got))
	}

	seven := []float64{0.7, 0.2, 0.4, 0.5, 0.6, 0.3, 0.45}
	got := trimOutliers(seven, tun)
	if want := []float64{0.4, 0.45, 0.5}; !reflect.DeepEqual(got, want) {
		t.Errorf("trim of 7 ratings = %v, want %v", got, want)
	}
}

// A rating list above the tail threshold keeps exactly the 40 lowest and 40
// highest of the post-trim set.
func TestTrimOutliersTailKeep(t *testing.T) {
	tun := config.Default()
	rs := make([]float64, 100)
	for i := range rs {
		rs[i] = 0.2 + 0.005*float64(i) // strictly increasing, 0.2..0.695
	}
	got := trimOutliers(rs, tun)
	if len(got) != 80 {
		t.Fatalf("trimmed length = %d, want exactly 80", len(got))
	}
	// After dropping 2 from each end, the survivors are rs[2:98]; the kept
	// tails are the 40 lowest and 40 highest of that slice.
	for i := 0; i < 40; i++ {
		if got[i] != rs[2+i] {
			t.Fatalf("low tail[%d] = %v, want %v", i, got[i], rs[2+i])
		}
	}
	for i := 0; i < 40; i++ {
		if got[40+i] != rs[58+i] {
			t.Fatalf("high tail[%d] = %v, want %v", i, got[40+i], rs[58+i])
		}
	}
}

func TestCombine(t *testing.T) {
	if got := combine(nil); got != neutralScore {
		t.Errorf("combine(nil) = %v, want %v", got, neutralScore)
	}

	// Identical ratings are a fixed point of the transform.
	for _, r := range []float64{0.2, 0.4, 0.5, 0.7} {
		rs := []float64{r, r, r, r, r}
		if got := combine(rs); math.Abs(got-r) > 1e-9 {
			t.Errorf("combine of constant %v ratings = %v", r, got)
		}
	}

	// Any mix stays within [0, 1].
	mixed := []float64{0.2, 0.7, 0.4, 0.2, 0.7, 0.7, 0.65, 0.21}
	if got := combine(mixed); got < 0 || got > 1 || math.IsNaN(got) {
		t.Errorf("combine(%v) = %v, want a value in [0, 1]", mixed, got)
	}
}

func TestClassifyEmptyDocument(t *testing.T) {
	m := newTestModel(t, []string{"ann", "bob"}, map[string][]uint32{"wind": {3, 1}})
	result := Classify(m, "", config.Default())
	if len(result.Sentences) != 0 {
		t.Errorf("empty document yielded %d sentences", len(result.Sentences))
	}
	for author, score := range result.Aggregate {
		if math.IsNaN(score) || math.IsInf(score, 0) {
			t.Fatalf("aggregate for %q is %v", author, score)
		}
		if score != neutralScore {
			t.Errorf("aggregate for %q = %v, want neutral %v", author, score, neutralScore)
		}
	}
}

func TestClassifyUnknownVocabulary(t *testing.T) {
	m := newTestModel(t, []string{"ann", "bob", "eve"}, map[string][]uint32{
		"wind": {3, 1, 2},
	})
	result := Classify(m, "completely foreign vocabulary here", config.Default())
	if len(result.Sentences) == 0 {
		t.Fatal("expected at least one sentence")
	}
	for _, sentence := range result.Sentences {
		first := sentence.Scores["ann"]
		for author, score := range sentence.Scores {
			if score != first {
				t.Errorf("author %q score %v differs from %v on unknown-only text", author, score, first)
			}
		}
	}
}

func TestClassifyScoresInRange(t *testing.T) {
	m := newTestModel(t, []string{"ann", "bob"}, map[string][]uint32{
		"wind":  {30, 2},
		"stone": {1, 40},
		"river": {12, 11},
		"cloud": {7, 0},
	})
	text := "wind river stone cloud wind wind stone. river cloud wind stone stone."
	result := Classify(m, text, config.Default())
	for _, sentence := range result.Sentences {
		for author, score := range sentence.Scores {
			if score < 0 || score > 1 || math.IsNaN(score) {
				t.Errorf("sentence score for %q = %v, want [0, 1]", author, score)
			}
		}
	}
	for author, score := range result.Aggregate {
		if score < 0 || score > 1 || math.IsNaN(score) {
			t.Errorf("aggregate score for %q = %v, want [0, 1]", author, score)
		}
	}
}

func TestClassifyIdempotent(t *testing.T) {
	m := newTestModel(t, []string{"ann", "bob"}, map[string][]uint32{
		"wind":  {30, 2},
		"stone": {1, 40},
	})
	text := strings.Repeat("wind stone wind. ", 12)
	a := Classify(m, text, config.Default())
	b := Classify(m, text, config.Default())
	if !reflect.DeepEqual(a, b) {
		t.Fatal("repeated classification of identical input differs")
	}
}

func TestClassifyNeverMutatesModel(t *testing.T) {
	m := newTestModel(t, []string{"ann", "bob"}, map[string][]uint32{
		"wind":  {3, 1},
		"stone": {0, 4},
	})
	before := &Model{
		authors:      append([]string(nil), m.authors...),
		authorIndex:  map[string]int{"ann": 0, "bob": 1},
		tokenCounts:  map[string][]uint32{"wind": {3, 1}, "stone": {0, 4}},
		authorTotals: append([]uint32(nil), m.authorTotals...),
		grandTotal:   m.grandTotal,
	}
	Classify(m, "wind stone unseen words everywhere", config.Default())
	if !reflect.DeepEqual(m, before) {
		t.Fatal("classification mutated the model")
	}
}
