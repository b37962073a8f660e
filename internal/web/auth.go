package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Randidu/event-management-system/internal/backend"
	"github.com/Randidu/event-management-system/internal/i18n"
	"github.com/Randidu/event-management-system/internal/profile"
)

type loginPage struct {
	Email string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if token(r) != "" {
		http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "login", loginPage{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	tok, err := s.Backend.Login(r.Context(), email, password)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("login failed")
		var apiErr *backend.APIError
		switch {
		case errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized:
			s.notify(session, i18n.M(i18n.LoginFailed), true)
		case errors.As(err, &apiErr) && apiErr.Detail != "":
			s.notify(session, i18n.M(i18n.ActionFailed, apiErr.Detail), true)
		default:
			s.notify(session, i18n.M(i18n.ActionFailed, err.Error()), true)
		}
		s.render(w, r, http.StatusUnauthorized, "login", loginPage{Email: email})
		return
	}

	http.SetCookie(w, s.cookie(accessTokenCookie, tok, s.cfg.Session.TTL))
	session.User = nil
	session.Tickets = nil
	s.currentUser(r.Context(), session, tok)

	http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	http.SetCookie(w, s.cookie(accessTokenCookie, "", 0))
	session.User = nil
	session.Tickets = nil
	http.Redirect(w, r, s.cfg.Backend.LoginPath, http.StatusSeeOther)
}

func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	tok := token(r)
	user := s.currentUser(r.Context(), session, tok)
	writeJSON(w, http.StatusOK, profile.BuildNav(user, tok != "", s.Resolver, s.Clock()))
}

func (s *Server) handleLang(w http.ResponseWriter, r *http.Request) {
	lang := strings.ToLower(strings.TrimSpace(r.FormValue("lang")))
	if !s.Bundle.IsSupported(lang) {
		writeError(w, http.StatusBadRequest, "unsupported language")
		return
	}
	sessionFrom(r).Lang = lang
	http.Redirect(w, r, safeNext(r.FormValue("next"), r.Referer()), http.StatusSeeOther)
}

// safeNext only follows local paths.
func safeNext(candidates ...string) string {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if i := strings.Index(c, "://"); i >= 0 {
			rest := c[i+3:]
			slash := strings.Index(rest, "/")
			if slash < 0 {
				continue
			}
			c = rest[slash:]
		}
		if strings.HasPrefix(c, "/") && !strings.HasPrefix(c, "//") {
			return c
		}
	}
	return ticketsPath
}
