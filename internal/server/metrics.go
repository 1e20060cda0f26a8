package server

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

// Counters are created lazily per opcode label so the exposition only
// carries operations the server has actually seen.

func requestsTotal(op string) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`wx_requests_total{op=%q}`, op))
}

func errorsTotal(op string) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`wx_request_errors_total{op=%q}`, op))
}
