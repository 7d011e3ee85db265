package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordContentWrite(t *testing.T) {
	before := testutil.ToFloat64(contentWrites.WithLabelValues("news", "create", "error"))
	RecordContentWrite("news", "create", errors.New("boom"))
	after := testutil.ToFloat64(contentWrites.WithLabelValues("news", "create", "error"))

	if after-before != 1 {
		t.Errorf("error write counter moved by %v, want 1", after-before)
	}
}

func TestHandlerExposesCounters(t *testing.T) {
	RecordRegistration("created")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "pitch_registrations_total") {
		t.Error("metrics output is missing pitch_registrations_total")
	}
}
