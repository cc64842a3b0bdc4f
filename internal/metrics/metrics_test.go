package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInitIsIdempotent(t *testing.T) {
	Init()
	Init()

	if httpRequestsTotal == nil || httpRequestDurationSeconds == nil ||
		upstreamFetchTotal == nil || upstreamFetchDurationSeconds == nil ||
		upstreamBytesTotal == nil || snapshotWritesTotal == nil || extractedRecords == nil {
		t.Fatal("Init() did not initialize metrics collectors")
	}
}

func TestObserveUpstreamFetch(t *testing.T) {
	Init()
	before := testutil.ToFloat64(upstreamFetchTotal.WithLabelValues("metrics-test", "ok"))
	ObserveUpstreamFetch("metrics-test", "ok", 512, 20*time.Millisecond)
	ObserveUpstreamFetch("metrics-test", "error", 0, time.Millisecond)

	if got := testutil.ToFloat64(upstreamFetchTotal.WithLabelValues("metrics-test", "ok")); got != before+1 {
		t.Errorf("expected ok counter %f, got %f", before+1, got)
	}
	if got := testutil.ToFloat64(upstreamBytesTotal.WithLabelValues("metrics-test")); got < 512 {
		t.Errorf("expected at least 512 bytes recorded, got %f", got)
	}
}

func TestObserveSnapshotWrite(t *testing.T) {
	Init()
	before := testutil.ToFloat64(snapshotWritesTotal.WithLabelValues("error"))
	ObserveSnapshotWrite("error")
	if got := testutil.ToFloat64(snapshotWritesTotal.WithLabelValues("error")); got != before+1 {
		t.Errorf("expected snapshot error counter %f, got %f", before+1, got)
	}
}

func TestObserveExtracted(t *testing.T) {
	ObserveExtracted("metrics-test", 12)
	if val := testutil.CollectAndCount(extractedRecords); val <= 0 {
		t.Errorf("expected extracted records histogram to be observed, got %d", val)
	}
}
