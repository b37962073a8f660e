package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/Randidu/event-management-system/internal/i18n"
	"github.com/Randidu/event-management-system/internal/models"
	"github.com/Randidu/event-management-system/internal/profile"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates(bundle *i18n.Bundle) (*template.Template, error) {
	funcs := template.FuncMap{
		// t accepts either a Key or its stable name
		"t": func(lang string, key any) string {
			switch k := key.(type) {
			case i18n.Key:
				return bundle.T(lang, k)
			case string:
				if parsed, ok := i18n.ParseKey(k); ok {
					return bundle.T(lang, parsed)
				}
				return k
			default:
				return fmt.Sprint(key)
			}
		},
		"tf": func(lang, key string, args ...any) string {
			parsed, ok := i18n.ParseKey(key)
			if !ok {
				return key
			}
			return bundle.Tf(lang, parsed, args...)
		},
		"eq64": func(a, b int64) bool { return a == b },
	}
	return template.New("console").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// page is the data every template gets.
type page struct {
	Lang      string
	Languages []string
	Nav       profile.Nav
	Notice    *models.Notice
	Data      any
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	session := sessionFrom(r)
	tok := token(r)
	p := page{
		Lang:      session.Lang,
		Languages: s.Bundle.Supported(),
		Nav:       profile.BuildNav(s.currentUser(r.Context(), session, tok), tok != "", s.Resolver, s.Clock()),
		Notice:    session.TakeNotice(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, name, p); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("template exec error")
	}
}
