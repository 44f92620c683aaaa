package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"gymdesk/internal/adapters/http/perf"
)

// DefaultSlowRequestMs is the warn threshold for request duration.
const DefaultSlowRequestMs = 200

var requestSeq uint64

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// swPool reduces allocations on the hot path.
var swPool = sync.Pool{
	New: func() any { return &statusWriter{} },
}

// Timing returns middleware that logs request duration and feeds the perf
// collector when one is given. Requests above the slow threshold log at WARN,
// the rest at DEBUG. The threshold comes from GYMDESK_SLOW_REQUEST_MS.
func Timing(collector *perf.Collector) func(http.Handler) http.Handler {
	threshold := float64(DefaultSlowRequestMs)
	if v := os.Getenv("GYMDESK_SLOW_REQUEST_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			threshold = float64(n)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := atomic.AddUint64(&requestSeq, 1)

			sw := swPool.Get().(*statusWriter)
			sw.ResponseWriter = w
			sw.status = http.StatusOK

			// Deferred so timing is recorded even when the handler panics.
			defer func() {
				ms := float64(time.Since(start).Microseconds()) / 1000.0
				logRequest(r, reqID, sw.status, ms, threshold)
				if collector != nil {
					collector.Record(perf.Entry{
						Kind:       perf.KindRequest,
						Path:       r.Method + " " + r.URL.Path,
						StatusCode: sw.status,
						DurationMs: ms,
						Timestamp:  start,
					})
				}
				sw.ResponseWriter = nil
				swPool.Put(sw)
			}()

			next.ServeHTTP(sw, r)
		})
	}
}

func logRequest(r *http.Request, reqID uint64, status int, ms, threshold float64) {
	level := slog.LevelDebug
	msg := "request"
	if ms >= threshold {
		level = slog.LevelWarn
		msg = "slow_request"
	}
	slog.Log(r.Context(), level, msg,
		"request_id", reqID,
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"duration_ms", ms,
	)
}
