package serverrun

import (
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// storeMetrics feeds storage observations into the process metrics set.
type storeMetrics struct{}

func (storeMetrics) ObserveWrite(elapsed time.Duration, bytes int) {
	metrics.GetOrCreateCounter("wx_storage_writes_total").Inc()
	metrics.GetOrCreateCounter("wx_storage_write_bytes_total").Add(bytes)
	metrics.GetOrCreateHistogram("wx_storage_write_duration_seconds").Update(elapsed.Seconds())
}

func (storeMetrics) ObserveRead(elapsed time.Duration, bytes int) {
	metrics.GetOrCreateCounter("wx_storage_reads_total").Inc()
	metrics.GetOrCreateCounter("wx_storage_read_bytes_total").Add(bytes)
	metrics.GetOrCreateHistogram("wx_storage_read_duration_seconds").Update(elapsed.Seconds())
}

// newMetricsServer serves the process metrics set in Prometheus text
// format on /metrics.
func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		metrics.WritePrometheus(w, true)
	})
	return &http.Server{Addr: addr, Handler: mux}
}
