package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mailcrest/mailcrest/pkg/usecase"
	"github.com/mailcrest/mailcrest/pkg/utils/logging"
)

// Server exposes the resolution engine over a narrow JSON API. The mail
// clients talk to this surface only; every route is stateless and safe to
// retry except the selection endpoint, which fills a consume-once slot.
type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/resolve", s.resolveHandler)

		r.Get("/actions", s.listActionsHandler)
		r.Get("/actions/{actionID}", s.getActionHandler)
		r.Get("/compound-actions", s.listCompoundActionsHandler)

		r.Post("/override", s.putOverrideHandler)
		r.Delete("/override", s.deleteOverrideHandler)
		r.Post("/selection", s.putSelectionHandler)

		r.Get("/registry", s.registryHandler)
		r.Delete("/registry/{userID}", s.invalidateRegistryHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck // health probe body
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
