package rest

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type RouteInitializer func(router *mux.Router, l logrus.FieldLogger)

func NewRouter(l logrus.FieldLogger, prefix string, initializers ...RouteInitializer) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware(l))
	r := router.PathPrefix(prefix).Subrouter()
	for _, initializer := range initializers {
		initializer(r, l)
	}
	return router
}

// CreateService serves the routes on address until ctx is cancelled. Both the listener and the shutdown
// watcher are registered with wg.
func CreateService(l logrus.FieldLogger, ctx context.Context, wg *sync.WaitGroup, address string, prefix string, initializers ...RouteInitializer) {
	srv := &http.Server{
		Addr:              address,
		Handler:           NewRouter(l, prefix, initializers...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		l.Infof("Starting HTTP server on [%s].", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.WithError(err).Errorf("HTTP server failed.")
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		l.Infof("Shutting down HTTP server.")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.WithError(err).Errorf("Unable to shut down HTTP server cleanly.")
		}
	}()
}

func HealthResource() RouteInitializer {
	return func(router *mux.Router, l logrus.FieldLogger) {
		router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			WriteJSON(l)(w)(http.StatusOK, map[string]string{"status": "ok"})
		}).Methods(http.MethodGet)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func LoggingMiddleware(l logrus.FieldLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			l.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start).String(),
			}).Debugf("Handled request.")
		})
	}
}
