package middleware

import (
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AccessLog пишет строку лога на каждый запрос
func AccessLog(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			id := GetRequestID(r.Context())
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("%s %s - status=%d, duration=%s, request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, id)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("%s %s - status=%d, duration=%s, request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, id)
			default:
				logger.Info("%s %s - status=%d, duration=%s, request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, id)
			}
		})
	}
}
