package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stal/internal/driver"
	"stal/internal/observ"
	"stal/internal/trace"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestTrainRunThenClassifyRun(t *testing.T) {
	corpus := t.TempDir()
	writeFile(t, filepath.Join(corpus, "ann", "01.txt"),
		strings.Repeat("the wind carries stories over the river. ", 10))
	writeFile(t, filepath.Join(corpus, "bob", "01.txt"),
		strings.Repeat("ledger entries balance the quarterly accounts. ", 10))

	modelPath := filepath.Join(t.TempDir(), "out", "corpus.model")
	ctx := context.Background()

	result, err := driver.TrainRun(ctx, corpus, modelPath, driver.Options{})
	if err != nil {
		t.Fatalf("TrainRun: %v", err)
	}
	if result.Samples != 2 {
		t.Errorf("samples = %d, want 2", result.Samples)
	}
	if _, err := os.Stat(modelPath); err != nil {
		t.Fatalf("model file missing: %v", err)
	}

	classification, authors, err := driver.ClassifyRun(ctx, modelPath,
		"the wind carries stories", driver.Options{})
	if err != nil {
		t.Fatalf("ClassifyRun: %v", err)
	}
	if len(authors) != 2 {
		t.Fatalf("authors = %v, want 2 entries", authors)
	}
	if classification.Aggregate["ann"] <= classification.Aggregate["bob"] {
		t.Errorf("aggregate ann = %v, bob = %v; want ann to win on her own words",
			classification.Aggregate["ann"], classification.Aggregate["bob"])
	}
}

func TestTrainRunEmitsPhases(t *testing.T) {
	corpus := t.TempDir()
	writeFile(t, filepath.Join(corpus, "ann", "01.txt"), "wind over the river.")

	var buf strings.Builder
	ctx := trace.WithTracer(context.Background(), trace.New(&buf, trace.LevelPhase))
	timer := observ.NewTimer()

	modelPath := filepath.Join(t.TempDir(), "corpus.model")
	if _, err := driver.TrainRun(ctx, corpus, modelPath, driver.Options{Timer: timer}); err != nil {
		t.Fatalf("TrainRun: %v", err)
	}
	trace.FromContext(ctx).Flush()

	if !strings.Contains(buf.String(), "dataset") {
		t.Errorf("trace output missing dataset phase: %q", buf.String())
	}
	report := timer.Report()
	var names []string
	for _, p := range report.Phases {
		names = append(names, p.Name)
	}
	if got := strings.Join(names, ","); got != "dataset,train,save" {
		t.Errorf("timer phases = %q, want dataset,train,save", got)
	}
}

func TestTrainRunBadDataset(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "corpus.model")
	if _, err := driver.TrainRun(context.Background(), filepath.Join(t.TempDir(), "missing"), modelPath, driver.Options{}); err == nil {
		t.Fatal("missing dataset directory should fail")
	}
	if _, err := os.Stat(modelPath); !os.IsNotExist(err) {
		t.Fatal("no model file should be written on failure")
	}
}

func TestClassifyRunMissingModel(t *testing.T) {
	_, _, err := driver.ClassifyRun(context.Background(), filepath.Join(t.TempDir(), "nope.model"), "text", driver.Options{})
	if err == nil {
		t.Fatal("missing model should fail")
	}
}
