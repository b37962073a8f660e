package web

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/Randidu/event-management-system/internal/chat"
	"github.com/Randidu/event-management-system/internal/config"
	"github.com/Randidu/event-management-system/internal/dashboard"
	"github.com/Randidu/event-management-system/internal/domain"
	"github.com/Randidu/event-management-system/internal/i18n"
	"github.com/Randidu/event-management-system/internal/metrics"
	"github.com/Randidu/event-management-system/internal/profile"
	"github.com/Randidu/event-management-system/internal/service"
	"github.com/Randidu/event-management-system/internal/tickets"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const (
	accessTokenCookie = "access_token"
	requestIDHeader   = "X-Request-ID"
	ticketsPath       = "/admin/tickets"
	dashboardPath     = "/admin/dashboard"
)

type Deps struct {
	Config    *config.Config
	Backend   domain.Backend
	Sessions  *service.SessionService
	Activity  *service.ActivityService
	Chat      *chat.Service
	Dashboard *dashboard.Service
	Bundle    *i18n.Bundle
	Resolver  *profile.Resolver
	Renderer  *tickets.Renderer
	Publisher tickets.Publisher
	Location  *time.Location
	// Ready reports whether the session store is reachable. Nil means always ready.
	Ready  func(ctx context.Context) error
	Logger *zerolog.Logger
	Clock  func() time.Time
}

// Server is the admin console HTTP surface.
type Server struct {
	Deps
	cfg      *config.Config
	router   *mux.Router
	server   *http.Server
	tmpl     *template.Template
	locks    *keyedMutex
	limiters *chatLimiter
	logger   zerolog.Logger
}

func NewServer(deps Deps) (*Server, error) {
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	logger := zerolog.Nop()
	if deps.Logger != nil {
		logger = deps.Logger.With().Str("component", "http").Logger()
	}

	s := &Server{
		Deps:     deps,
		cfg:      deps.Config,
		locks:    newKeyedMutex(),
		limiters: newChatLimiter(deps.Config.Chat.RPS, deps.Config.Chat.Burst),
		logger:   logger,
	}

	tmpl, err := parseTemplates(deps.Bundle)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.tmpl = tmpl
	s.router = s.routes()

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.HTTP.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)

	app := r.PathPrefix("/").Subrouter()
	app.Use(s.withSession)

	app.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, dashboardPath, http.StatusFound)
	}).Methods(http.MethodGet)

	app.HandleFunc(s.cfg.Backend.LoginPath, s.handleLoginPage).Methods(http.MethodGet)
	app.HandleFunc(s.cfg.Backend.LoginPath, s.handleLogin).Methods(http.MethodPost)
	app.HandleFunc("/admin/logout", s.handleLogout).Methods(http.MethodPost)

	app.HandleFunc(dashboardPath, s.handleDashboard).Methods(http.MethodGet)
	app.HandleFunc("/admin/activity", s.handleActivity).Methods(http.MethodGet)

	app.HandleFunc(ticketsPath, s.handleTickets).Methods(http.MethodGet)
	app.HandleFunc(ticketsPath+"/reload", s.handleTicketsReload).Methods(http.MethodPost)
	app.HandleFunc(ticketsPath+"/export.{format:csv|xlsx}", s.handleTicketsExport).Methods(http.MethodGet)
	app.HandleFunc(ticketsPath+"/{id:[0-9]+}/delete", s.handleDeleteConfirm).Methods(http.MethodGet)
	app.HandleFunc(ticketsPath+"/{id:[0-9]+}/delete", s.handleDelete).Methods(http.MethodPost)

	app.HandleFunc("/chat", s.handleChatTranscript).Methods(http.MethodGet)
	app.HandleFunc("/chat", s.handleChatSend).Methods(http.MethodPost)

	app.HandleFunc("/nav", s.handleNav).Methods(http.MethodGet)
	app.HandleFunc("/lang", s.handleLang).Methods(http.MethodPost)

	return r
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP console listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.Ready != nil {
		if err := s.Ready(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "session store unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		metrics.IncHTTP(route, strconv.Itoa(recorder.status))
		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("route", route).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
