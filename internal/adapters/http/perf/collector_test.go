package perf_test

import (
	"testing"
	"time"

	"gymdesk/internal/adapters/http/perf"
)

// TestCollectorRecordAndSnapshot tests basic recording and aggregation.
func TestCollectorRecordAndSnapshot(t *testing.T) {
	c := perf.NewCollector(16)
	now := time.Now()

	c.Record(perf.Entry{Kind: perf.KindRequest, Path: "/api/members", DurationMs: 10, Timestamp: now})
	c.Record(perf.Entry{Kind: perf.KindRequest, Path: "/api/members", DurationMs: 30, Timestamp: now})
	c.Record(perf.Entry{Kind: perf.KindQuery, Path: "QueryContext", DurationMs: 5, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Minute), 5)
	if snap.TotalRecorded != 3 {
		t.Errorf("TotalRecorded = %d, want 3", snap.TotalRecorded)
	}
	if len(snap.SlowestPaths) != 1 {
		t.Fatalf("SlowestPaths len = %d, want 1", len(snap.SlowestPaths))
	}
	ps := snap.SlowestPaths[0]
	if ps.Count != 2 || ps.AvgMs != 20 || ps.MaxMs != 30 {
		t.Errorf("path stat = %+v, want count=2 avg=20 max=30", ps)
	}
	if len(snap.SlowestQueries) != 1 {
		t.Errorf("SlowestQueries len = %d, want 1", len(snap.SlowestQueries))
	}
}

// TestCollectorRingOverwrite tests that the ring buffer overwrites oldest entries.
func TestCollectorRingOverwrite(t *testing.T) {
	c := perf.NewCollector(2)
	now := time.Now()
	for i := 0; i < 5; i++ {
		c.Record(perf.Entry{Kind: perf.KindRequest, Path: "/", DurationMs: float64(i), Timestamp: now})
	}
	snap := c.Snapshot(now.Add(-time.Minute), 5)
	if snap.TotalRecorded != 5 {
		t.Errorf("TotalRecorded = %d, want 5", snap.TotalRecorded)
	}
	// Only the last two entries survive in the ring.
	if snap.SlowestPaths[0].Count != 2 {
		t.Errorf("surviving count = %d, want 2", snap.SlowestPaths[0].Count)
	}
}

// TestCollectorSinceFilter tests that entries before the cutoff are excluded.
func TestCollectorSinceFilter(t *testing.T) {
	c := perf.NewCollector(8)
	old := time.Now().Add(-time.Hour)
	c.Record(perf.Entry{Kind: perf.KindRequest, Path: "/old", DurationMs: 1, Timestamp: old})

	snap := c.Snapshot(time.Now().Add(-time.Minute), 5)
	if len(snap.SlowestPaths) != 0 {
		t.Errorf("SlowestPaths len = %d, want 0 (entry is older than cutoff)", len(snap.SlowestPaths))
	}
}
