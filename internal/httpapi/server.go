// Package httpapi serves Mystery Keyboard as a JSON API.
//
// Every POST /sessions creates an independent game session held in memory.
// Timing is left to the client: a wrong answer leaves the session in the
// "retrying" status with a suggested retryAfterMs, and the client calls
// /retry once its own animation is done.
//
// Routes:
//
//	GET  /health
//	GET  /levels
//	POST /sessions                 {"level": "3"}   level is optional (id or number)
//	GET  /sessions/{id}
//	POST /sessions/{id}/press      {"key": "P"}
//	POST /sessions/{id}/backspace
//	POST /sessions/{id}/retry
//	POST /sessions/{id}/restart
//	POST /sessions/{id}/next
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/mystery-keyboard/internal/config"
	"github.com/vovakirdan/mystery-keyboard/internal/core"
	"github.com/vovakirdan/mystery-keyboard/internal/game"
	"github.com/vovakirdan/mystery-keyboard/internal/levels"
)

// DefaultSessionTTL is the idle time after which a session is dropped.
const DefaultSessionTTL = 30 * time.Minute

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithSessionTTL sets how long a session may stay untouched before it is
// dropped. Zero keeps sessions forever.
func WithSessionTTL(d time.Duration) Option {
	return func(s *Server) { s.ttl = d }
}

// WithRecorder records every judged answer of every session.
func WithRecorder(r game.AttemptRecorder) Option {
	return func(s *Server) { s.recorder = r }
}

// Server bundles the router, the level set and the live sessions.
type Server struct {
	r        *chi.Mux
	levels   []levels.Level
	cfg      config.GameConfig
	sessions *sessions
	recorder game.AttemptRecorder
	logger   *log.Logger
	ttl      time.Duration
}

// New constructs a Server, installs middleware and registers routes.
func New(lvls []levels.Level, cfg config.GameConfig, opts ...Option) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		levels:   lvls,
		cfg:      cfg,
		sessions: newSessions(),
		ttl:      DefaultSessionTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(s.requestLogger)
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/levels", s.handleLevels)

	s.r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Post("/press", s.handlePress)
			r.Post("/backspace", s.handleBackspace)
			r.Post("/retry", s.handleRetry)
			r.Post("/restart", s.handleRestart)
			r.Post("/next", s.handleNext)
		})
	})

	return s
}

// Start runs the HTTP server on addr.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting HTTP server", "addr", addr)
	return http.ListenAndServe(addr, s.r)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

// writeError sends {"error": code} with status. Unlike http.Error it keeps
// the JSON content type.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": code})
}

// ------------------------------- levels ------------------------------------

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	out := make([]levelView, 0, len(s.levels))
	for i, lvl := range s.levels {
		out = append(out, s.levelView(i, lvl))
	}
	writeJSON(w, out)
}

// ------------------------------ sessions -----------------------------------

type newSessionReq struct {
	Level string `json:"level"`
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	start := 0
	if req.Level != "" {
		idx, ok := levels.Lookup(s.levels, req.Level)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown_level")
			return
		}
		start = idx
	}

	opts := []game.Option{game.WithLogger(s.logger)}
	if s.recorder != nil {
		opts = append(opts, game.WithRecorder(s.recorder))
	}
	sess, err := game.NewSession(s.levels, nil, s.cfg, opts...)
	if err != nil {
		s.logger.Error("new session", "err", err)
		writeError(w, http.StatusInternalServerError, "session_failed")
		return
	}
	if err := sess.Start(start); err != nil {
		writeError(w, http.StatusNotFound, "unknown_level")
		return
	}

	if s.ttl > 0 {
		if n := s.sessions.sweep(time.Now().Add(-s.ttl)); n > 0 {
			s.logger.Debug("idle sessions dropped", "count", n)
		}
	}
	e := s.sessions.add(sess)
	s.logger.Info("session created", "id", e.id, "level", sess.Level().ID, "live", s.sessions.len())

	e.mu.Lock()
	defer e.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, s.view(e))
}

// withEntry resolves the {id} parameter and runs fn under the entry lock.
func (s *Server) withEntry(w http.ResponseWriter, r *http.Request, fn func(e *entry)) {
	e, err := s.sessions.get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.withEntry(w, r, func(e *entry) {
		writeJSON(w, s.view(e))
	})
}

type pressReq struct {
	Key string `json:"key"`
}

func (s *Server) handlePress(w http.ResponseWriter, r *http.Request) {
	var req pressReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	s.withEntry(w, r, func(e *entry) {
		key, ok := s.normalizeKey(e.session.Level(), req.Key)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown_key")
			return
		}

		ctrl := e.session.Controller()
		if key == core.BackspaceKey {
			removed := ctrl.Backspace()
			if removed {
				e.feedback = ""
			}
			writeJSON(w, pressView{sessionView: s.view(e), Outcome: outcomeView{Accepted: removed}})
			return
		}

		res := ctrl.Press(key)
		if res.Accepted {
			e.feedback = s.cfg.Feedback.Message(res.Outcome.Feedback)
			switch res.Status {
			case core.StatusRetrying:
				e.feedback = s.cfg.Feedback.Wrong
			case core.StatusWon:
				e.feedback = s.cfg.Feedback.Win
			}
		}
		writeJSON(w, pressView{sessionView: s.view(e), Outcome: newOutcomeView(res)})
	})
}

func (s *Server) handleBackspace(w http.ResponseWriter, r *http.Request) {
	s.withEntry(w, r, func(e *entry) {
		if e.session.Controller().Backspace() {
			e.feedback = ""
		}
		writeJSON(w, s.view(e))
	})
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	s.withEntry(w, r, func(e *entry) {
		if !e.session.Controller().Retry() {
			writeError(w, http.StatusConflict, "not_retrying")
			return
		}
		e.feedback = ""
		writeJSON(w, s.view(e))
	})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.withEntry(w, r, func(e *entry) {
		e.session.Restart()
		e.feedback = ""
		writeJSON(w, s.view(e))
	})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.withEntry(w, r, func(e *entry) {
		e.session.Next()
		e.feedback = ""
		writeJSON(w, s.view(e))
	})
}

// normalizeKey maps a client key onto the level's keyboard. Letters are
// matched case-insensitively on letter keyboards; icon ids must match
// exactly. Backspace is accepted on every level.
func (s *Server) normalizeKey(lvl levels.Level, key string) (string, bool) {
	if strings.EqualFold(key, core.BackspaceKey) {
		return core.BackspaceKey, true
	}
	if lvl.Keyboard != levels.KeyboardIcons {
		key = strings.ToUpper(key)
	}
	for _, k := range s.keys(lvl) {
		if k == key {
			return key, true
		}
	}
	return "", false
}

// keys lists the level's keyboard in display order, backspace last.
func (s *Server) keys(lvl levels.Level) []string {
	var out []string
	if lvl.Keyboard == levels.KeyboardIcons {
		out = append(out, lvl.Icons...)
	} else {
		for _, row := range s.cfg.Keyboard.Keys() {
			out = append(out, row...)
		}
	}
	return append(out, core.BackspaceKey)
}
