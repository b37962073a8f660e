package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Randidu/event-management-system/internal/backend"
	"github.com/Randidu/event-management-system/internal/i18n"
	"github.com/Randidu/event-management-system/internal/models"
)

type ctxKey int

const sessionKey ctxKey = iota

func sessionFrom(r *http.Request) *models.SessionState {
	if s, ok := r.Context().Value(sessionKey).(*models.SessionState); ok {
		return s
	}
	return &models.SessionState{}
}

// withSession loads the session named by the cookie, holds its lock for the
// whole request and saves it afterwards.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
			id = c.Value
		}
		if id != "" {
			unlock := s.locks.Lock(id)
			defer unlock()
		}

		session, created, err := s.Sessions.Load(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "session store unavailable")
			return
		}
		if created {
			session.Lang = s.Bundle.Negotiate("", r.Header.Get("Accept-Language"))
			http.SetCookie(w, s.cookie(s.cfg.Session.CookieName, session.ID, s.cfg.Session.TTL))
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, session)))

		if err := s.Sessions.Save(context.WithoutCancel(r.Context()), session); err != nil {
			s.logger.Error().Err(err).Str("session_id", session.ID).Msg("failed to save session")
		}
	})
}

func (s *Server) cookie(name, value string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   s.cfg.HTTP.CookieDomain,
		HttpOnly: true,
		Secure:   s.cfg.HTTP.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		c.MaxAge = int(ttl.Seconds())
	}
	if value == "" {
		c.MaxAge = -1
	}
	return c
}

func token(r *http.Request) string {
	if c, err := r.Cookie(accessTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// currentUser returns the cached profile, refreshing it from the backend once
// it is older than the profile TTL. A rejected token drops the profile.
func (s *Server) currentUser(ctx context.Context, session *models.SessionState, tok string) *models.User {
	if tok == "" {
		return nil
	}
	now := s.Clock()
	if session.User != nil && now.Sub(session.UserFetchedAt) < s.cfg.Backend.ProfileCacheTTL {
		return session.User
	}

	user, err := s.Backend.CurrentUser(ctx, tok)
	if err != nil {
		if backend.IsAuthError(err) {
			session.User = nil
			return nil
		}
		s.logger.Warn().Err(err).Msg("profile refresh failed")
		return session.User
	}
	session.User = user
	session.UserFetchedAt = now
	return user
}

func (s *Server) actor(session *models.SessionState) string {
	if session.User != nil {
		return session.User.Email
	}
	return ""
}

// notify stores a message for the next rendered page.
func (s *Server) notify(session *models.SessionState, m *i18n.Message, isError bool) {
	if m == nil {
		return
	}
	session.Notice = &models.Notice{Text: s.Bundle.Render(session.Lang, m), Error: isError}
}

// redirectToLogin sends the browser to the login page, clearing a token the
// backend no longer accepts.
func (s *Server) redirectToLogin(w http.ResponseWriter, r *http.Request, session *models.SessionState, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		http.SetCookie(w, s.cookie(accessTokenCookie, "", 0))
		session.User = nil
	}
	s.notify(session, i18n.M(i18n.AuthRequired), true)
	http.Redirect(w, r, s.cfg.Backend.LoginPath, http.StatusSeeOther)
}
