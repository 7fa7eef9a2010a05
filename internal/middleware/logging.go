package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type loggingWriter struct {
	http.ResponseWriter
	statusCode int
	hijacked   bool
}

func (w *loggingWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *loggingWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	w.hijacked = true
	return h.Hijack()
}

func Logging(log *logrus.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Debug(r.Method + " " + r.URL.RequestURI())
			start := time.Now()

			wrapped := &loggingWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			log.WithFields(logrus.Fields{
				"statusCode":    wrapped.statusCode,
				"hijacked":      wrapped.hijacked,
				"remoteAddr":    r.RemoteAddr,
				"xffHeader":     r.Header.Get("X-Forwarded-For"),
				"method":        r.Method,
				"uri":           r.URL.RequestURI(),
				"duration (ms)": int64(time.Since(start) / time.Millisecond),
			}).Info("handled request")
		})
	}
}
