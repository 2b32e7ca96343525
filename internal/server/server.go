package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rotisserie/eris"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"treemap/internal/geom"
	"treemap/internal/loader"
)

// Options configures rendering for HTTP responses.
type Options struct {
	Projection   geom.Projection
	CanvasWidth  int
	CanvasHeight int
	ZoomMin      float64
	ZoomMax      float64
}

// Server serves one loaded dataset. The dataset is never mutated after New,
// so handlers share it without locking.
type Server struct {
	data loader.Dataset
	opts Options
	log  *zap.Logger
	mux  *chi.Mux
}

// New builds the router for ds.
func New(ds loader.Dataset, opts Options) *Server {
	s := &Server{
		data: ds,
		opts: opts,
		log:  zap.L().With(zap.String("component", "server")),
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}).Handler)
	r.Use(s.requestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/map.svg", s.mapSVG)
	r.Get("/map.png", s.mapPNG)
	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.getSummary)
		r.Get("/trees", s.listTrees)
		r.Get("/trees/{id}", s.getTree)
		r.Get("/boroughs", s.listBoroughs)
	})
	s.mux = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return eris.Wrap(err, "server: listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("http server shutting down")
	return eris.Wrap(srv.Shutdown(shutdownCtx), "server: shutdown")
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)))
	})
}
