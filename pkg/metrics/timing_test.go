package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestTimingMetric_Record(t *testing.T) {
	SetEnabled(true)
	m := newTimingMetric("test")
	m.Record(2 * time.Millisecond)
	m.Record(4 * time.Millisecond)

	s := m.Stats()
	if s.Name != "test" || s.Count != 2 {
		t.Fatalf("stats = %+v", s)
	}
	if s.TotalMs != 6 || s.AvgMs != 3 || s.MaxMs != 4 || s.MinMs != 2 {
		t.Fatalf("stats = %+v, want total 6 avg 3 max 4 min 2", s)
	}

	m.Reset()
	if m.Count() != 0 || m.Stats().MaxMs != 0 {
		t.Fatalf("reset left %+v", m.Stats())
	}
}

func TestTimingMetric_Concurrent(t *testing.T) {
	SetEnabled(true)
	m := newTimingMetric("concurrent")
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(d time.Duration) {
			defer wg.Done()
			m.Record(d)
		}(time.Duration(i) * time.Microsecond)
	}
	wg.Wait()

	s := m.Stats()
	if s.Count != 50 {
		t.Fatalf("count = %d, want 50", s.Count)
	}
	if s.MinMs != 0.001 || s.MaxMs != 0.05 {
		t.Fatalf("min/max = %v/%v, want 0.001/0.05", s.MinMs, s.MaxMs)
	}
}

func TestTimer_Disabled(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(true)

	m := newTimingMetric("off")
	Timer(m)()
	m.Record(time.Millisecond)
	if m.Count() != 0 {
		t.Fatalf("disabled metric recorded %d samples", m.Count())
	}
}

func TestAllTimingStats_OnlyWithData(t *testing.T) {
	SetEnabled(true)
	ResetAll()
	Timer(TreeBuild)()

	stats := AllTimingStats()
	if len(stats) != 1 || stats[0].Name != "tree_build" {
		t.Fatalf("stats = %+v, want only tree_build", stats)
	}
	if len(AllTimingMetrics()) != 6 {
		t.Fatalf("registered %d metrics, want 6", len(AllTimingMetrics()))
	}
}
