package trace

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"
)

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	// Level returns the current tracing level.
	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// nopTracer is a no-op implementation for zero overhead when tracing is disabled.
type nopTracer struct{}

func (nopTracer) Emit(Event)    {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is the package-level singleton nop tracer.
var Nop Tracer = nopTracer{}

// streamTracer writes events as text lines to an io.Writer as they arrive.
type streamTracer struct {
	mu    sync.Mutex
	w     *bufio.Writer
	level Level
}

// New creates a Tracer that streams events at the given level to w.
// A LevelOff level yields the Nop tracer.
func New(w io.Writer, level Level) Tracer {
	if level == LevelOff {
		return Nop
	}
	return &streamTracer{w: bufio.NewWriter(w), level: level}
}

// Emit writes the event if its scope is visible at the tracer's level.
func (t *streamTracer) Emit(ev Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if ev.Detail != "" {
		fmt.Fprintf(t.w, "%s [%s] %s: %s\n", ev.Time.Format("15:04:05.000"), ev.Scope, ev.Name, ev.Detail)
	} else {
		fmt.Fprintf(t.w, "%s [%s] %s\n", ev.Time.Format("15:04:05.000"), ev.Scope, ev.Name)
	}
}

// Flush writes out any buffered events.
func (t *streamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.w.Flush()
}

// Close flushes the stream. The underlying writer is not owned by the tracer.
func (t *streamTracer) Close() error {
	return t.Flush()
}

// Level returns the configured level.
func (t *streamTracer) Level() Level { return t.level }

// Enabled reports whether events are being recorded.
func (t *streamTracer) Enabled() bool { return t.level > LevelOff }

// Phasef emits a phase-scope event through tr with a formatted detail message.
func Phasef(tr Tracer, name, format string, args ...any) {
	if tr == nil || !tr.Enabled() {
		return
	}
	tr.Emit(Event{Scope: ScopePhase, Name: name, Detail: fmt.Sprintf(format, args...)})
}

// Filef emits a file-scope event through tr with a formatted detail message.
func Filef(tr Tracer, name, format string, args ...any) {
	if tr == nil || !tr.Enabled() {
		return
	}
	tr.Emit(Event{Scope: ScopeFile, Name: name, Detail: fmt.Sprintf(format, args...)})
}
