package serverrun

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsHandlerServesStorageCounters(t *testing.T) {
	storeMetrics{}.ObserveWrite(time.Millisecond, 64)
	storeMetrics{}.ObserveRead(2*time.Millisecond, 128)

	srv := newMetricsServer("127.0.0.1:0")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"wx_storage_writes_total",
		"wx_storage_reads_total",
		"wx_storage_write_bytes_total",
		"wx_storage_read_bytes_total",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %s", want)
		}
	}
}
