package middleware

import (
	"bufio"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"paste-swamp/internal/utils"

	"github.com/google/uuid"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack keeps websocket upgrades working behind the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}

// RequestLogger tags every request with a short request ID and records
// request/error counts in the metrics collector.
func RequestLogger(metrics *utils.MetricsCollector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()
			requestID := uuid.NewString()[:8]
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			metrics.IncrementRequests()
			next.ServeHTTP(recorder, r)

			if recorder.status >= 500 {
				metrics.IncrementErrors()
			}
			log.Printf("[%s] %s %s -> %d (%s)", requestID, r.Method, r.URL.Path, recorder.status, time.Since(startTime))
		})
	}
}
