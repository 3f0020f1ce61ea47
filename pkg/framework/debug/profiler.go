package debug

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

// Profiler collects timing statistics for named sections. It locks and
// is meant for offline rendering and tests, not a realtime audio thread.
type Profiler struct {
	mu           sync.Mutex
	measurements map[string]*Measurement
	maxSamples   int
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Name  string
	Count uint64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Last  time.Duration

	samples []time.Duration
	next    int
}

// NewProfiler creates a profiler keeping the last maxSamples timings of
// every section for percentiles.
func NewProfiler(maxSamples int) *Profiler {
	return &Profiler{
		measurements: make(map[string]*Measurement),
		maxSamples:   max(maxSamples, 1),
	}
}

// Start begins timing a named section; call the result to stop.
func (p *Profiler) Start(name string) func() {
	start := time.Now()
	return func() { p.Record(name, time.Since(start)) }
}

// Time measures the execution time of a function.
func (p *Profiler) Time(name string, fn func()) {
	stop := p.Start(name)
	defer stop()
	fn()
}

// Record stores one timing.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.measurements[name]
	if !ok {
		m = &Measurement{Name: name, Min: elapsed, Max: elapsed}
		p.measurements[name] = m
	}
	m.Count++
	m.Total += elapsed
	m.Last = elapsed
	m.Min = min(m.Min, elapsed)
	m.Max = max(m.Max, elapsed)
	if len(m.samples) < p.maxSamples {
		m.samples = append(m.samples, elapsed)
	} else {
		m.samples[m.next] = elapsed
		m.next = (m.next + 1) % p.maxSamples
	}
}

// Measurement returns a copy of the statistics of a section.
func (p *Profiler) Measurement(name string) (Measurement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.measurements[name]
	if !ok {
		return Measurement{}, false
	}
	c := *m
	c.samples = slices.Clone(m.samples)
	return c, true
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Report lists every section sorted by name. period, when positive, is the
// duration average timings are compared against.
func (p *Profiler) Report(period time.Duration) string {
	p.mu.Lock()
	names := make([]string, 0, len(p.measurements))
	for name := range p.measurements {
		names = append(names, name)
	}
	p.mu.Unlock()
	if len(names) == 0 {
		return "No measurements recorded"
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		m, _ := p.Measurement(name)
		fmt.Fprintf(&sb, "%s: count=%d avg=%v min=%v max=%v p99=%v", name,
			m.Count, m.Average(), m.Min, m.Max, m.Percentile(99))
		if period > 0 {
			fmt.Fprintf(&sb, " load=%.2f%%", float64(m.Average())/float64(period)*100)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Average returns the average time for this measurement.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// Percentile returns the p-th percentile of the retained timings.
func (m Measurement) Percentile(p float64) time.Duration {
	if len(m.samples) == 0 {
		return 0
	}
	sorted := slices.Clone(m.samples)
	slices.Sort(sorted)
	idx := int(float64(len(sorted)-1) * min(max(p, 0), 100) / 100)
	return sorted[idx]
}

// PeriodDuration returns how long frames frames last at rate.
func PeriodDuration(frames int, rate float64) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(frames) / rate * float64(time.Second))
}
