package profile

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	placeholderAvatarBase = "https://i.pravatar.cc"
	EventPosterFallback   = "https://placehold.co/80x80?text=Event"
)

// Resolver turns backend-relative asset paths into absolute URLs.
type Resolver struct {
	origin string
}

func NewResolver(origin string) *Resolver {
	return &Resolver{origin: strings.TrimRight(origin, "/")}
}

func (r *Resolver) Origin() string { return r.origin }

// Asset resolves an uploaded file path. Absolute URLs pass through unchanged,
// Windows separators are normalized and leading slashes collapse to one.
func (r *Resolver) Asset(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if isAbsolute(path) {
		return path
	}
	path = strings.ReplaceAll(path, `\`, "/")
	path = "/" + strings.TrimLeft(path, "/")
	return r.origin + path
}

// Avatar picks the profile image, then an email keyed placeholder, then the generic one.
func (r *Resolver) Avatar(image *string, email string, size int) string {
	if image != nil {
		if u := r.Asset(*image); u != "" {
			return u
		}
	}
	if size <= 0 {
		size = 32
	}
	base := placeholderAvatarBase + "/" + strconv.Itoa(size)
	if email = strings.TrimSpace(email); email != "" {
		return base + "?u=" + url.QueryEscape(email)
	}
	return base + "?img=1"
}

// FallbackAvatar is shown when an avatar fails to load in the browser.
func FallbackAvatar(size int) string {
	if size <= 0 {
		size = 32
	}
	return placeholderAvatarBase + "/" + strconv.Itoa(size) + "?img=1"
}

func (r *Resolver) Poster(poster *string) string {
	if poster != nil {
		if u := r.Asset(*poster); u != "" {
			return u
		}
	}
	return EventPosterFallback
}

// CacheBust appends a t parameter so a freshly uploaded image replaces the cached one.
func CacheBust(rawURL string, at time.Time) string {
	if rawURL == "" {
		return ""
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "t=" + strconv.FormatInt(at.UnixMilli(), 10)
}

func isAbsolute(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "data:")
}
