package game

import (
	"testing"
	"time"
)

func TestPerfStatsAverageAndOrder(t *testing.T) {
	p := NewPerfStats()
	p.Record(SectionDraw, 4*time.Millisecond)
	p.Record(SectionDraw, 2*time.Millisecond)
	p.Record(SectionInput, time.Millisecond)

	if got := p.Avg(SectionDraw); got != 3*time.Millisecond {
		t.Errorf("draw avg = %v, want 3ms", got)
	}
	if got := p.Total(); got != 4*time.Millisecond {
		t.Errorf("total = %v, want 4ms", got)
	}
	names := p.SortedNames()
	if len(names) != 2 || names[0] != SectionDraw {
		t.Errorf("sorted names = %v, draw should be first", names)
	}
	if p.Avg("missing") != 0 {
		t.Error("unknown section should average to zero")
	}
}

func TestPerfStatsWindowRollsOver(t *testing.T) {
	p := NewPerfStats()
	for i := 0; i < p.maxSamples; i++ {
		p.Record(SectionSimulate, time.Millisecond)
	}
	for i := 0; i < p.maxSamples; i++ {
		p.Record(SectionSimulate, 3*time.Millisecond)
	}
	if got := p.Avg(SectionSimulate); got != 3*time.Millisecond {
		t.Errorf("avg after rollover = %v, want 3ms", got)
	}
	if n := len(p.samples[SectionSimulate]); n != p.maxSamples {
		t.Errorf("kept %d samples, want %d", n, p.maxSamples)
	}
}

func TestPerfStatsMeasure(t *testing.T) {
	p := NewPerfStats()
	ran := false
	p.Measure(SectionTextures, func() { ran = true })
	if !ran {
		t.Fatal("Measure did not run fn")
	}
	if len(p.samples[SectionTextures]) != 1 {
		t.Error("Measure did not record a sample")
	}
}
