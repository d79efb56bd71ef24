package profiling

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Per-frame timing of simulation stages. Totals accumulate until ResetFrame.

// Sample is the accumulated time and call count for one tracked stage.
type Sample struct {
	Name  string
	Total time.Duration
	Calls int
}

var (
	enabled atomic.Bool
	mu      sync.Mutex
	frame   = make(map[string]*Sample)
)

// SetEnabled turns tracking on or off. Disabled tracking costs one atomic load.
func SetEnabled(on bool) { enabled.Store(on) }

// Enabled reports whether Track records anything.
func Enabled() bool { return enabled.Load() }

func noop() {}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("flight.Update")()
func Track(name string) func() {
	if !enabled.Load() {
		return noop
	}
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s, ok := frame[name]
		if !ok {
			s = &Sample{Name: name}
			frame[name] = s
		}
		s.Total += d
		s.Calls++
		mu.Unlock()
	}
}

// ResetFrame clears the current totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frame)
	mu.Unlock()
}

// Snapshot returns the current samples, slowest first.
func Snapshot() []Sample {
	mu.Lock()
	out := make([]Sample, 0, len(frame))
	for _, s := range frame {
		out = append(out, *s)
	}
	mu.Unlock()
	slices.SortFunc(out, func(a, b Sample) int {
		if a.Total != b.Total {
			return int(b.Total - a.Total)
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// TopN formats the n slowest stages.
// Example: "world.New:41.2ms, terrain.Generate:38.9ms"
func TopN(n int) string {
	samples := Snapshot()
	n = max(0, min(n, len(samples)))
	parts := make([]string, 0, n)
	for _, s := range samples[:n] {
		parts = append(parts, s.Name+":"+formatMs(s.Total))
	}
	return strings.Join(parts, ", ")
}

func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000
	s := strings.TrimSuffix(fmt.Sprintf("%.1f", ms), ".0")
	return s + "ms"
}
