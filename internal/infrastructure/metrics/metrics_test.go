package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordSignoff_IncrementsByLabel(t *testing.T) {
	before := testutil.ToFloat64(signoffOutcomes.WithLabelValues("consume", "forbidden"))
	RecordSignoff("consume", "forbidden")
	RecordSignoff("consume", "forbidden")
	after := testutil.ToFloat64(signoffOutcomes.WithLabelValues("consume", "forbidden"))
	if after-before != 2 {
		t.Fatalf("delta = %v, want 2", after-before)
	}
}

func TestObserveHTTP_UnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404"))
	ObserveHTTP("get", "", 404, 3*time.Millisecond)
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404"))
	if after-before != 1 {
		t.Fatalf("delta = %v, want 1", after-before)
	}
}

func TestTrackInFlight_Balances(t *testing.T) {
	base := testutil.ToFloat64(httpInFlight)
	done := TrackInFlight()
	if got := testutil.ToFloat64(httpInFlight); got != base+1 {
		t.Fatalf("inflight = %v, want %v", got, base+1)
	}
	done()
	if got := testutil.ToFloat64(httpInFlight); got != base {
		t.Fatalf("inflight = %v, want %v", got, base)
	}
}

func TestHandler_ExposesCollectors(t *testing.T) {
	RecordSignoff("validate", "ok")

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(b), `seatime_signoff_outcomes_total{operation="validate",outcome="ok"}`) {
		t.Fatalf("outcome counter missing from exposition:\n%s", b)
	}
}
