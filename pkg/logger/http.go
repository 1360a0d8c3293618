package logger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// HTTPFormatter writes chi access log entries through the global zap logger.
// Only the path is logged: the query string may carry a websocket token.
type HTTPFormatter struct{}

// RequestLogger is the access log middleware for the API router.
func RequestLogger() func(next http.Handler) http.Handler {
	return middleware.RequestLogger(&HTTPFormatter{})
}

func (f *HTTPFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &httpLogEntry{
		method:     r.Method,
		path:       r.URL.Path,
		remoteAddr: r.RemoteAddr,
		requestID:  middleware.GetReqID(r.Context()),
	}
}

type httpLogEntry struct {
	method     string
	path       string
	remoteAddr string
	requestID  string
}

func (e *httpLogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	fields := []zap.Field{
		zap.String("method", e.method),
		zap.String("path", e.path),
		zap.Int("status", status),
		zap.Int("bytes", bytes),
		zap.Duration("elapsed", elapsed),
		zap.String("remote_addr", e.remoteAddr),
	}
	if e.requestID != "" {
		fields = append(fields, zap.String("request_id", e.requestID))
	}
	zap.L().Info("http request", fields...)
}

func (e *httpLogEntry) Panic(v interface{}, stack []byte) {
	zap.L().Error("http handler panic",
		zap.String("method", e.method),
		zap.String("path", e.path),
		zap.Any("panic", v),
		zap.ByteString("stack", stack))
}
