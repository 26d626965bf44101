package chain

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Timing measures each event and logs a warning when it runs longer than
// threshold. A non-positive threshold or nil logger disables the warning.
func Timing[C any](threshold time.Duration, logger *log.Logger) Middleware[C] {
	return func(next Handler[C]) Handler[C] {
		return func(ev Event[C], ctx C) Result {
			start := time.Now()
			res := next(ev, ctx)
			elapsed := time.Since(start)

			if threshold > 0 && logger != nil && elapsed > threshold {
				logger.Warn("slow event",
					"event", ev.Name(),
					"elapsed", elapsed.Round(time.Microsecond),
					"threshold", threshold,
				)
			}
			return res
		}
	}
}

// Metrics accumulates event counts and durations across every chain it is
// installed in. It is intended for a single game loop and is not synchronised.
type Metrics struct {
	total     int
	succeeded int
	failed    int
	duration  time.Duration
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Total     int
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// Average returns the mean event duration.
func (s MetricsSnapshot) Average() time.Duration {
	if s.Total == 0 {
		return 0
	}
	return s.Duration / time.Duration(s.Total)
}

// NewMetrics creates an empty accumulator.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Measure returns a middleware that feeds m.
func Measure[C any](m *Metrics) Middleware[C] {
	return func(next Handler[C]) Handler[C] {
		return func(ev Event[C], ctx C) Result {
			m.total++

			start := time.Now()
			res := next(ev, ctx)
			m.duration += time.Since(start)

			if res.OK() {
				m.succeeded++
			} else {
				m.failed++
			}
			return res
		}
	}
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Total:     m.total,
		Succeeded: m.succeeded,
		Failed:    m.failed,
		Duration:  m.duration,
	}
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	*m = Metrics{}
}

// Report logs the counters at info level.
func (m *Metrics) Report(logger *log.Logger) {
	if logger == nil {
		return
	}
	s := m.Snapshot()
	logger.Info("chain metrics",
		"total", s.Total,
		"succeeded", s.Succeeded,
		"failed", s.Failed,
		"duration", s.Duration.Round(time.Microsecond),
		"average", s.Average().Round(time.Microsecond),
	)
}

// String formats the counters as a small report block.
func (m *Metrics) String() string {
	return m.Snapshot().String()
}

// String formats the snapshot as a small report block.
func (s MetricsSnapshot) String() string {
	rule := strings.Repeat("=", 40)

	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Chain Metrics")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Total Events:     %d\n", s.Total)
	fmt.Fprintf(&b, "Successful:       %d\n", s.Succeeded)
	fmt.Fprintf(&b, "Failed:           %d\n", s.Failed)
	fmt.Fprintf(&b, "Total Duration:   %s\n", s.Duration.Round(time.Microsecond))
	fmt.Fprintf(&b, "Average Duration: %s\n", s.Average().Round(time.Microsecond))
	fmt.Fprint(&b, rule)
	return b.String()
}
