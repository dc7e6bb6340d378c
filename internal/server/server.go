// Package server exposes the interaction network viewer over HTTP.
//
// Each browser session gets its own simulation engine, identified by a
// session cookie. Clients step the simulation by polling GET /api/frame and
// mutate viewer state (thresholds, highlight, selection, drags) through the
// remaining endpoints. The server holds all engines in memory; session
// metadata goes through a pluggable session.Store so restarts can resume
// viewer state from Redis or disk.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lbartels/bionet/internal/config"
	"github.com/lbartels/bionet/pkg/bionet"
	"github.com/lbartels/bionet/pkg/session"
	"github.com/lbartels/bionet/pkg/sim"
)

// sessionCookie names the cookie that carries the session ID.
const sessionCookie = "bionet_session"

// =============================================================================
// Server
// =============================================================================

// Server serves the interaction network API.
type Server struct {
	cfg      *config.Config
	logger   *charmlog.Logger
	sessions session.Store

	mu        sync.Mutex
	graph     *bionet.Graph
	graphName string
	engines   map[string]*sim.Engine
}

// New creates a server for the given parsed graph. The graph must already
// have degrees computed.
func New(cfg *config.Config, logger *charmlog.Logger, sessions session.Store, graph *bionet.Graph, graphName string) *Server {
	if sessions == nil {
		sessions = session.NewMemoryStore()
	}
	return &Server{
		cfg:       cfg,
		logger:    logger,
		sessions:  sessions,
		graph:     graph,
		graphName: graphName,
		engines:   make(map[string]*sim.Engine),
	}
}

// SetGraph swaps in a new graph and discards every session engine so the
// next frame request rebuilds against the fresh data.
func (s *Server) SetGraph(graph *bionet.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = graph
	s.engines = make(map[string]*sim.Engine)
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/graph", s.handleGraph)
		r.Get("/frame", s.handleFrame)
		r.Put("/thresholds", s.handleThresholds)
		r.Put("/highlight", s.handleHighlight)
		r.Post("/select", s.handleSelect)
		r.Delete("/select", s.handleDeselect)

		r.Route("/drag", func(r chi.Router) {
			r.Post("/start", s.handleDragStart)
			r.Post("/move", s.handleDragMove)
			r.Post("/end", s.handleDragEnd)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// =============================================================================
// Session Handling
// =============================================================================

type sessionKeyType struct{}

var sessionKey sessionKeyType

// withSession resolves or creates the session for a request and stores it in
// the request context.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(r)
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID,
			Path:     "/",
			Expires:  sess.ExpiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

func (s *Server) resolveSession(r *http.Request) *session.Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, err := s.sessions.Get(r.Context(), c.Value); err == nil && sess != nil {
			return sess
		}
	}

	sess := session.New(s.graphName, session.DefaultTTL)
	sess.Thresholds = bionet.ClampThresholds(s.cfg.Thresholds)
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		s.logger.Warn("failed to persist session", "id", sess.ID, "error", err)
	}
	s.logger.Debug("session created", "id", sess.ID)
	return sess
}

func sessionFrom(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionKey).(*session.Session)
	return sess
}

// engineFor returns the simulation engine for a session, building one from
// the session's saved viewer state on first use.
func (s *Server) engineFor(sess *session.Session) *sim.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.engines[sess.ID]; ok {
		return e
	}

	e := sim.NewEngine(s.graph, sess.Thresholds, s.cfg.SimConfig())
	e.SetHighlight(bionet.ParseCategory(sess.Highlight))
	if sess.Selected != "" {
		e.ClickNode(sess.Selected)
	}
	s.engines[sess.ID] = e
	return e
}

// saveSession persists viewer state changes back to the session store.
func (s *Server) saveSession(ctx context.Context, sess *session.Session) {
	if err := s.sessions.Set(ctx, sess); err != nil {
		s.logger.Warn("failed to persist session", "id", sess.ID, "error", err)
	}
}
