package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrAuthMissing is returned before any request when a bearer call has no token.
	ErrAuthMissing = errors.New("auth credential missing")
	// ErrEmptyReply means the chat endpoint answered without a response field.
	ErrEmptyReply = errors.New("empty reply from assistant")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Method     string
	Path       string
	Status     int
	StatusText string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: http %d: %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: http %d", e.Method, e.Path, e.Status)
}

// StatusLine is the "404 Not Found" form used in fallback messages.
func (e *APIError) StatusLine() string {
	text := e.StatusText
	if text == "" {
		text = http.StatusText(e.Status)
	}
	return strings.TrimSpace(fmt.Sprintf("%d %s", e.Status, text))
}

// IsAuthError reports a missing credential or a 401/403 answer.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthMissing) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	return false
}

const maxPlainDetail = 200

// parseDetail extracts FastAPI's detail, which is a string or a list of
// validation errors, and falls back to a short plain text body.
func parseDetail(body []byte) string {
	var wrap struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &wrap); err == nil && len(wrap.Detail) > 0 {
		var s string
		if err := json.Unmarshal(wrap.Detail, &s); err == nil {
			return s
		}
		var list []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(wrap.Detail, &list); err == nil && len(list) > 0 {
			return list[0].Msg
		}
		return ""
	}

	text := strings.TrimSpace(string(body))
	if text == "" || strings.HasPrefix(text, "{") || strings.HasPrefix(text, "<") || len(text) > maxPlainDetail {
		return ""
	}
	return text
}
