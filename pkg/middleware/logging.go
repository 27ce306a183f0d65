package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/peoplekit/teamcal/pkg/composables"
	"github.com/peoplekit/teamcal/pkg/configuration"
)

type statusWriter struct {
	http.ResponseWriter
	status        int
	statusWritten bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.status = code
		w.statusWritten = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func getRealIP(r *http.Request, conf *configuration.Configuration) string {
	if len(r.Header.Get(conf.RealIPHeader)) > 0 {
		return r.Header.Get(conf.RealIPHeader)
	}
	return r.RemoteAddr
}

func getRequestID(r *http.Request, conf *configuration.Configuration) string {
	if len(r.Header.Get(conf.RequestIDHeader)) > 0 {
		return r.Header.Get(conf.RequestIDHeader)
	}
	return uuid.New().String()
}

// RequestLogger puts a request-scoped logrus entry into the context and
// writes an access-log line once the handler returns.
func RequestLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conf := configuration.Use()
			start := time.Now()

			entry := logger.WithFields(logrus.Fields{
				"request-id": getRequestID(r, conf),
				"ip":         getRealIP(r, conf),
				"method":     r.Method,
				"path":       r.URL.Path,
			})

			sw := &statusWriter{ResponseWriter: w}
			ctx := composables.WithLogger(r.Context(), entry)
			next.ServeHTTP(sw, r.WithContext(ctx))

			entry.WithFields(logrus.Fields{
				"status":   sw.Status(),
				"duration": time.Since(start).String(),
			}).Info("request completed")
		})
	}
}
