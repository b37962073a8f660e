package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Randidu/event-management-system/internal/backend"
	"github.com/Randidu/event-management-system/internal/dashboard"
	"github.com/Randidu/event-management-system/internal/i18n"
	"github.com/Randidu/event-management-system/internal/models"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

type rangeOption struct {
	Value string
	Label string
}

type dashboardPage struct {
	View   *dashboard.View
	Ranges []rangeOption
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	tok := token(r)
	if tok == "" {
		s.redirectToLogin(w, r, session, backend.ErrAuthMissing)
		return
	}

	view, err := s.Dashboard.Load(r.Context(), tok, r.URL.Query().Get("days"))
	switch {
	case err == nil:
	case errors.Is(err, backend.ErrAuthMissing):
		s.redirectToLogin(w, r, session, err)
		return
	case backend.IsAuthError(err):
		if isForbidden(err) {
			s.notify(session, i18n.M(i18n.AccessDenied), true)
			http.Redirect(w, r, s.cfg.Backend.AccessDeniedPath, http.StatusSeeOther)
			return
		}
		s.redirectToLogin(w, r, session, err)
		return
	default:
		s.notify(session, i18n.M(i18n.ActionFailed, err.Error()), true)
	}

	s.render(w, r, http.StatusOK, "dashboard", dashboardPage{
		View:   view,
		Ranges: s.rangeOptions(session.Lang),
	})
}

func (s *Server) rangeOptions(lang string) []rangeOption {
	values := dashboard.Ranges()
	out := make([]rangeOption, 0, len(values))
	for _, v := range values {
		label := s.Bundle.T(lang, i18n.DashRangeAll)
		if v != dashboard.AllRange {
			_, days := dashboard.ParseRange(v)
			label = s.Bundle.Tf(lang, i18n.DashRange, days)
		}
		out = append(out, rangeOption{Value: v, Label: label})
	}
	return out
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	if token(r) == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	limit := defaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxActivityLimit)
	}

	entries, err := s.Activity.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("list activity failed")
		writeError(w, http.StatusInternalServerError, "activity unavailable")
		return
	}
	if entries == nil {
		entries = []*models.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// isForbidden tells a token without admin rights from one that is not valid.
func isForbidden(err error) bool {
	var apiErr *backend.APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden
}
