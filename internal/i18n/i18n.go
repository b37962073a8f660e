package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Message is a key plus its format arguments, rendered once the language is known.
type Message struct {
	Key  Key
	Args []any
}

func M(key Key, args ...any) *Message {
	return &Message{Key: key, Args: args}
}

// Bundle holds the supported languages and negotiates between them.
type Bundle struct {
	def       string
	supported []string
	matcher   language.Matcher
}

func NewBundle(def string, supported []string) (*Bundle, error) {
	if len(supported) == 0 {
		supported = []string{def}
	}
	tags := make([]language.Tag, 0, len(supported))
	codes := make([]string, 0, len(supported))
	// the default goes first so that the matcher falls back to it
	ordered := append([]string{def}, supported...)
	seen := make(map[string]bool)
	for _, code := range ordered {
		code = strings.ToLower(strings.TrimSpace(code))
		if seen[code] {
			continue
		}
		seen[code] = true
		if _, ok := catalogs[code]; !ok {
			return nil, fmt.Errorf("no translations for language %q", code)
		}
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("parse language %q: %w", code, err)
		}
		tags = append(tags, tag)
		codes = append(codes, code)
	}

	return &Bundle{
		def:       codes[0],
		supported: codes,
		matcher:   language.NewMatcher(tags),
	}, nil
}

func (b *Bundle) Default() string { return b.def }

func (b *Bundle) Supported() []string {
	out := make([]string, len(b.supported))
	copy(out, b.supported)
	return out
}

func (b *Bundle) IsSupported(lang string) bool {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, code := range b.supported {
		if code == lang {
			return true
		}
	}
	return false
}

// Negotiate picks the language for a request: a supported stored preference
// wins, then the Accept-Language header, then the default.
func (b *Bundle) Negotiate(preferred, acceptLanguage string) string {
	if b.IsSupported(preferred) {
		return strings.ToLower(strings.TrimSpace(preferred))
	}
	if acceptLanguage == "" {
		return b.def
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.def
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return b.def
	}
	return b.supported[idx]
}

// T looks up key in lang. Unknown languages use the default table; a missing
// entry renders the key name.
func (b *Bundle) T(lang string, key Key) string {
	return Lookup(b.resolve(lang), key)
}

func (b *Bundle) Tf(lang string, key Key, args ...any) string {
	return Format(b.resolve(lang), key, args...)
}

func (b *Bundle) Render(lang string, m *Message) string {
	if m == nil {
		return ""
	}
	return b.Tf(lang, m.Key, m.Args...)
}

func (b *Bundle) resolve(lang string) string {
	if b.IsSupported(lang) {
		return strings.ToLower(strings.TrimSpace(lang))
	}
	return b.def
}

// Lookup is the bundle-free lookup used where no negotiation happens.
func Lookup(lang string, key Key) string {
	t, ok := catalogs[lang]
	if !ok || key < 0 || key >= keyCount {
		return key.String()
	}
	if s := t[key]; s != "" {
		return s
	}
	return key.String()
}

func Format(lang string, key Key, args ...any) string {
	s := Lookup(lang, key)
	if len(args) == 0 || !strings.Contains(s, "%") {
		return s
	}
	return fmt.Sprintf(s, args...)
}
