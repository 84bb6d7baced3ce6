package game

import (
	"sort"
	"time"
)

// Frame sections timed by PerfStats in windowed mode.
const (
	SectionInput    = "input"
	SectionSimulate = "simulate"
	SectionTextures = "textures"
	SectionDraw     = "draw"
)

// PerfStats tracks the recent duration of each named frame section.
type PerfStats struct {
	samples    map[string][]time.Duration
	next       map[string]int
	maxSamples int
}

// NewPerfStats creates a new performance stats tracker.
func NewPerfStats() *PerfStats {
	return &PerfStats{
		samples:    make(map[string][]time.Duration),
		next:       make(map[string]int),
		maxSamples: 120, // ~2 seconds of frames at 60fps
	}
}

// Record adds a duration sample for the named section.
func (p *PerfStats) Record(name string, d time.Duration) {
	s := p.samples[name]
	if len(s) < p.maxSamples {
		p.samples[name] = append(s, d)
		return
	}
	i := p.next[name]
	s[i] = d
	p.next[name] = (i + 1) % p.maxSamples
}

// Measure runs fn and records its duration under name.
func (p *PerfStats) Measure(name string, fn func()) {
	start := time.Now()
	fn()
	p.Record(name, time.Since(start))
}

// Avg returns the average duration for the named section.
func (p *PerfStats) Avg(name string) time.Duration {
	s := p.samples[name]
	if len(s) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total / time.Duration(len(s))
}

// Total returns the sum of all average durations.
func (p *PerfStats) Total() time.Duration {
	var total time.Duration
	for name := range p.samples {
		total += p.Avg(name)
	}
	return total
}

// SortedNames returns section names sorted by average duration (descending).
func (p *PerfStats) SortedNames() []string {
	names := make([]string, 0, len(p.samples))
	for name := range p.samples {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return p.Avg(names[i]) > p.Avg(names[j])
	})
	return names
}
