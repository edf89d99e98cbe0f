// Package api serves the parser and the completion engine over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/texls/latex/completion"
	"github.com/dhamidi/texls/project"
)

var log = commonlog.GetLogger("texls.api")

// maxSourceBytes bounds request bodies.
const maxSourceBytes = 8 << 20

// Server is the HTTP API server for texls.
type Server struct {
	router chi.Router
	engine *completion.Engine
	cfg    project.Config
}

func NewServer(cfg project.Config) *Server {
	s := &Server{
		engine: completion.NewEngine(cfg.PrefixWindow),
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/complete", s.handleComplete)
		r.Post("/tasks", s.handleTasks)
	})

	s.router = r
}

// Mount serves h below pattern, with the pattern stripped from the path.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, http.StripPrefix(pattern, h))
}

// ListenAndServe serves on the configured address until the listener fails.
func (s *Server) ListenAndServe() error {
	log.Infof("listening on %s", s.cfg.HTTP.Addr)
	return http.ListenAndServe(s.cfg.HTTP.Addr, s)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
