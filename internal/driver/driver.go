// Package driver wires the CLI surface to the core: dataset resolution,
// training, persistence and classification, with tracing and phase timing.
package driver

import (
	"context"
	"fmt"

	"stal/internal/bayes"
	"stal/internal/config"
	"stal/internal/dataset"
	"stal/internal/observ"
	"stal/internal/trace"
)

// Options carries the cross-cutting run settings resolved by the CLI.
type Options struct {
	Tuning config.Tuning
	Jobs   int
	Timer  *observ.Timer // nil disables phase timing
}

// TrainResult bundles the artifacts of a training run.
type TrainResult struct {
	Model   *bayes.Model
	Samples int
}

// TrainRun resolves datasetArg, trains a model and freezes it to savePath.
func TrainRun(ctx context.Context, datasetArg, savePath string, opts Options) (*TrainResult, error) {
	tr := trace.FromContext(ctx)
	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}

	phase := timer.Begin("dataset")
	samples, err := dataset.Load(datasetArg)
	if err != nil {
		return nil, err
	}
	timer.End(phase, fmt.Sprintf("%d samples", len(samples)))
	trace.Phasef(tr, "dataset", "resolved %d samples from %q", len(samples), datasetArg)

	phase = timer.Begin("train")
	model, err := bayes.Train(ctx, samples, bayes.TrainOptions{Jobs: opts.Jobs, Tuning: opts.Tuning})
	if err != nil {
		return nil, err
	}
	timer.End(phase, model.String())

	phase = timer.Begin("save")
	if err := bayes.Save(model, savePath); err != nil {
		return nil, err
	}
	timer.End(phase, savePath)
	trace.Phasef(tr, "save", "model saved to %q", savePath)

	return &TrainResult{Model: model, Samples: len(samples)}, nil
}

// ClassifyRun loads the model at modelPath and scores text against it.
// The returned author list carries the model's fixed ordering so callers can
// render the map-shaped scores deterministically.
func ClassifyRun(ctx context.Context, modelPath, text string, opts Options) (bayes.Classification, []string, error) {
	tr := trace.FromContext(ctx)
	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}

	phase := timer.Begin("load")
	model, err := bayes.Load(modelPath)
	if err != nil {
		return bayes.Classification{}, nil, err
	}
	timer.End(phase, model.String())
	trace.Phasef(tr, "load", "%s from %q", model, modelPath)

	phase = timer.Begin("classify")
	result := bayes.Classify(model, text, opts.Tuning)
	timer.End(phase, fmt.Sprintf("%d sentences", len(result.Sentences)))
	trace.Phasef(tr, "classify", "%d sentences scored", len(result.Sentences))

	return result, model.Authors(), nil
}
