package bayes

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"stal/internal/config"
	"stal/internal/segment"
	"stal/internal/trace"
)

// TrainOptions tunes a training run. The zero value trains sequentially with
// the default calibration.
type TrainOptions struct {
	// Jobs caps the number of files counted concurrently. Values below 2
	// train sequentially. The result is identical either way: author order is
	// fixed by a pre-scan and count merging is plain vector addition.
	Jobs int

	// Tuning supplies the segmentation length cap. A zero Tuning falls back
	// to config.Default.
	Tuning config.Tuning
}

// Train builds a frequency model from an ordered dataset of (author, path)
// samples. Each referenced file is read as UTF-8 text; any read failure
// aborts the whole run with ErrRead and no partial model is returned.
//
// The author ordering of the resulting model is the order of first discovery
// in the sample list and stays fixed for the model's lifetime.
func Train(ctx context.Context, samples []Sample, opts TrainOptions) (*Model, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyDataset
	}
	tun := opts.Tuning
	if tun == (config.Tuning{}) {
		tun = config.Default()
	}
	tr := trace.FromContext(ctx)

	// Fix the author ordering up front: first discovery wins.
	var authors []string
	seen := make(map[string]struct{})
	for _, s := range samples {
		if _, ok := seen[s.Author]; ok {
			continue
		}
		seen[s.Author] = struct{}{}
		authors = append(authors, s.Author)
	}
	index := buildAuthorIndex(authors)
	trace.Phasef(tr, "train", "%d samples, %d authors", len(samples), len(authors))

	var tokenCounts map[string][]uint32
	var err error
	if opts.Jobs > 1 {
		tokenCounts, err = countSharded(ctx, samples, index, len(authors), tun, opts.Jobs)
	} else {
		tokenCounts, err = countSequential(ctx, samples, index, len(authors), tun)
	}
	if err != nil {
		return nil, err
	}

	totals, grand, err := finalizeTotals(authors, tokenCounts)
	if err != nil {
		return nil, err
	}
	trace.Phasef(tr, "train", "%d distinct tokens, %d total", len(tokenCounts), grand)

	return &Model{
		authors:      authors,
		authorIndex:  index,
		tokenCounts:  tokenCounts,
		authorTotals: totals,
		grandTotal:   grand,
	}, nil
}

// countSequential walks the samples in order and increments the shared token
// table directly.
func countSequential(ctx context.Context, samples []Sample, index map[string]int, authorCount int, tun config.Tuning) (map[string][]uint32, error) {
	tr := trace.FromContext(ctx)
	tokenCounts := make(map[string][]uint32)
	for _, s := range samples {
		counts, err := countFile(s, tun)
		if err != nil {
			return nil, err
		}
		trace.Filef(tr, "file:"+s.Path, "author %q, %d distinct tokens", s.Author, len(counts))
		mergeCounts(tokenCounts, counts, index[s.Author], authorCount)
	}
	return tokenCounts, nil
}

// countSharded counts files concurrently and merges the per-file partial
// tables afterwards. Merging is vector addition, so the outcome matches
// countSequential exactly.
func countSharded(ctx context.Context, samples []Sample, index map[string]int, authorCount int, tun config.Tuning, jobs int) (map[string][]uint32, error) {
	partials := make([]map[string]uint32, len(samples))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, s := range samples {
		i, s := i, s
		g.Go(func() error {
			counts, err := countFile(s, tun)
			if err != nil {
				return err
			}
			partials[i] = counts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tokenCounts := make(map[string][]uint32)
	for i, s := range samples {
		mergeCounts(tokenCounts, partials[i], index[s.Author], authorCount)
	}
	return tokenCounts, nil
}

// countFile reads one training file and tallies its token occurrences.
func countFile(s Sample, tun config.Tuning) (map[string]uint32, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrRead, s.Path, err)
	}
	counts := make(map[string]uint32)
	for _, sentence := range segment.Split(string(data), tun.MaxSentenceLength) {
		for _, token := range sentence.Tokens {
			counts[token]++
		}
	}
	return counts, nil
}

// mergeCounts adds one file's tallies into the shared token table at the
// given author position.
func mergeCounts(tokenCounts map[string][]uint32, counts map[string]uint32, authorIdx, authorCount int) {
	for token, n := range counts {
		vec, ok := tokenCounts[token]
		if !ok {
			vec = make([]uint32, authorCount)
			tokenCounts[token] = vec
		}
		vec[authorIdx] += n
	}
}
