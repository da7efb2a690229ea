package bayes

import (
	"math"
	"slices"

	"stal/internal/config"
	"stal/internal/segment"
)

// neutralScore is the defined fallback for every degenerate-input case: a
// sentence that contributed no ratings, or a document with no sentences.
// It is the fixed point of the combination formula (no evidence either way).
const neutralScore = 0.5

// SentenceScores holds the per-author scores of one sentence, keyed by the
// sentence's byte offset in the classified document.
type SentenceScores struct {
	Offset uint32
	Scores map[string]float64
}

// Classification is the final, author-labeled result of classifying one
// document: a score per author for every sentence, plus a document-level
// aggregate normalized over the sentence count. All scores lie in [0, 1];
// no degenerate input can produce NaN or Inf.
type Classification struct {
	Sentences []SentenceScores
	Aggregate map[string]float64
}

// predication is the internal, unlabeled score form: one score vector per
// sentence, indexed by the model's author ordering.
type predication struct {
	offsets   []uint32
	sentences [][]float64
	total     []float64
}

// Classify scores text against the trained model, per sentence and in
// aggregate. It is a pure function of (model, text, tuning): the model is
// never mutated and repeated calls yield bit-identical results.
func Classify(m *Model, text string, tun config.Tuning) Classification {
	if tun == (config.Tuning{}) {
		tun = config.Default()
	}
	pred := m.predicate(text, tun)

	label := func(scores []float64) map[string]float64 {
		out := make(map[string]float64, len(m.authors))
		for i, name := range m.authors {
			out[name] = scores[i]
		}
		return out
	}

	sentences := make([]SentenceScores, len(pred.sentences))
	for i, scores := range pred.sentences {
		sentences[i] = SentenceScores{Offset: pred.offsets[i], Scores: label(scores)}
	}
	return Classification{
		Sentences: sentences,
		Aggregate: label(pred.total),
	}
}

// predicate segments the text and scores every sentence, then averages the
// per-sentence vectors into the document-level total.
func (m *Model) predicate(text string, tun config.Tuning) predication {
	sentences := segment.Split(text, tun.MaxSentenceLength)
	authorCount := len(m.authors)

	pred := predication{
		offsets:   make([]uint32, len(sentences)),
		sentences: make([][]float64, len(sentences)),
		total:     make([]float64, authorCount),
	}
	for i, sentence := range sentences {
		scores := m.scoreSentence(sentence.Tokens, tun)
		pred.offsets[i] = sentence.Offset
		pred.sentences[i] = scores
		for a, s := range scores {
			pred.total[a] += s
		}
	}

	if len(sentences) == 0 {
		// Empty document: a defined neutral aggregate, never a division.
		for a := range pred.total {
			pred.total[a] = neutralScore
		}
		return pred
	}
	for a := range pred.total {
		pred.total[a] /= float64(len(sentences))
	}
	return pred
}

// scoreSentence rates every token for every author, trims outliers, and
// combines the surviving ratings into one score per author.
func (m *Model) scoreSentence(tokens []string, tun config.Tuning) []float64 {
	ratings := m.rateTokens(tokens, tun)
	scores := make([]float64, len(ratings))
	for a, rs := range ratings {
		scores[a] = combine(trimOutliers(rs, tun))
	}
	return scores
}

// rateTokens builds the per-author rating lists for one sentence.
//
// A token absent from the model rates MinRating for every author. A known
// token with zero occurrences for an author records the neutral NoTokenRating
// and then the computed rating as well; keeping both entries reproduces the
// historical scoring exactly. Any rating whose denominator would be zero (an
// author trained on no tokens, or a model where one author holds every token)
// records the neutral fallback instead of dividing.
func (m *Model) rateTokens(tokens []string, tun config.Tuning) [][]float64 {
	perAuthor := make([][]float64, len(m.authors))
	for _, token := range tokens {
		counts, ok := m.tokenCounts[token]
		if !ok {
			for a := range perAuthor {
				perAuthor[a] = append(perAuthor[a], tun.MinRating)
			}
			continue
		}
		var count uint32
		for _, c := range counts {
			count += c
		}
		for a := range perAuthor {
			cnt := counts[a]
			if cnt == 0 {
				perAuthor[a] = append(perAuthor[a], tun.NoTokenRating)
			}
			authorTotal := m.authorTotals[a]
			otherTotal := m.grandTotal - authorTotal
			if authorTotal == 0 || otherTotal == 0 {
				if cnt != 0 {
					perAuthor[a] = append(perAuthor[a], tun.NoTokenRating)
				}
				continue
			}
			this := float64(cnt) / float64(authorTotal)
			other := float64(count-cnt) / float64(otherTotal)
			rating := this / (this + other)
			perAuthor[a] = append(perAuthor[a], clampRating(rating, tun))
		}
	}
	return perAuthor
}

// trimOutliers suppresses extreme single-token swings: lists longer than the
// trim threshold lose TrimDrop ratings from each end (sorted ascending), and
// if more than TailThreshold remain, only the TailKeep most extreme at each
// tail are kept, discarding the undiscriminating middle.
func trimOutliers(rs []float64, tun config.Tuning) []float64 {
	if len(rs) <= tun.TrimThreshold {
		return rs
	}
	sorted := slices.Clone(rs)
	slices.Sort(sorted)
	sorted = sorted[tun.TrimDrop : len(sorted)-tun.TrimDrop]
	if len(sorted) > tun.TailThreshold {
		tails := make([]float64, 0, 2*tun.TailKeep)
		tails = append(tails, sorted[:tun.TailKeep]...)
		tails = append(tails, sorted[len(sorted)-tun.TailKeep:]...)
		sorted = tails
	}
	return sorted
}

// combine maps a rating list into a single score in [0, 1] via the
// geometric-mean transform
//
//	p = 1 - (Π (1-r))^(1/n)
//	q = 1 - (Π r)^(1/n)
//	s = (p - q) / (p + q)
//	score = (1 + s) / 2
//
// symmetric around 0.5 for neutral evidence. An empty list is a defined
// neutral score rather than a division by zero.
func combine(rs []float64) float64 {
	n := len(rs)
	if n == 0 {
		return neutralScore
	}
	nth := 1.0 / float64(n)
	prod, prodComp := 1.0, 1.0
	for _, r := range rs {
		prod *= r
		prodComp *= 1.0 - r
	}
	p := 1.0 - math.Pow(prodComp, nth)
	q := 1.0 - math.Pow(prod, nth)
	if p+q == 0 {
		return neutralScore
	}
	s := (p - q) / (p + q)
	return (1.0 + s) / 2.0
}

// clampRating bounds a computed rating to the configured closed interval.
func clampRating(r float64, tun config.Tuning) float64 {
	return math.Min(math.Max(r, tun.MinRating), tun.MaxRating)
}
