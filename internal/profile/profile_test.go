package profile

import (
	"testing"
	"time"

	"github.com/Randidu/event-management-system/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestResolver_Avatar(t *testing.T) {
	r := NewResolver("http://127.0.0.1:8000/")

	tests := []struct {
		name  string
		image *string
		email string
		want  string
	}{
		{name: "absolute passthrough", image: strPtr("https://cdn.example.com/a.png"), email: "a@b.c", want: "https://cdn.example.com/a.png"},
		{name: "relative path", image: strPtr("/static/uploads/a.png"), want: "http://127.0.0.1:8000/static/uploads/a.png"},
		{name: "windows path", image: strPtr(`static\uploads\a.png`), want: "http://127.0.0.1:8000/static/uploads/a.png"},
		{name: "double slash", image: strPtr("//static/a.png"), want: "http://127.0.0.1:8000/static/a.png"},
		{name: "email placeholder", image: strPtr(""), email: "john@example.com", want: "https://i.pravatar.cc/32?u=john%40example.com"},
		{name: "generic placeholder", want: "https://i.pravatar.cc/32?img=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Avatar(tt.image, tt.email, 32))
		})
	}
}

func TestResolver_Poster(t *testing.T) {
	r := NewResolver("http://api")
	assert.Equal(t, EventPosterFallback, r.Poster(nil))
	assert.Equal(t, "http://api/p.jpg", r.Poster(strPtr("p.jpg")))
	assert.Equal(t, "https://i.pravatar.cc/40?img=1", FallbackAvatar(40))
}

func TestCacheBust(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	assert.Equal(t, "http://a/b.png?t=1700000000000", CacheBust("http://a/b.png", at))
	assert.Equal(t, "http://a/b.png?x=1&t=1700000000000", CacheBust("http://a/b.png?x=1", at))
	assert.Equal(t, "", CacheBust("", at))
}

func TestBuildNav(t *testing.T) {
	r := NewResolver("http://api")
	now := time.UnixMilli(42)

	t.Run("Guest", func(t *testing.T) {
		nav := BuildNav(&models.User{Role: models.RoleAdmin}, false, r, now)
		assert.False(t, nav.Authenticated)
		assert.False(t, nav.ShowAdmin)
		assert.Equal(t, LoginHref, nav.LoginHref)
	})

	t.Run("TokenWithoutProfile", func(t *testing.T) {
		nav := BuildNav(nil, true, r, now)
		assert.True(t, nav.Authenticated)
		assert.False(t, nav.ShowAdmin)
	})

	t.Run("RegularUser", func(t *testing.T) {
		nav := BuildNav(&models.User{FirstName: "Nimal", LastName: "Perera", Email: "n@p.lk", Role: models.RoleUser}, true, r, now)
		assert.Equal(t, "Nimal Perera", nav.DisplayName)
		assert.False(t, nav.ShowAdmin)
		assert.Equal(t, "https://i.pravatar.cc/40?u=n%40p.lk", nav.AvatarURL)
	})

	t.Run("Admin", func(t *testing.T) {
		nav := BuildNav(&models.User{Email: "admin@ems.lk", Role: models.RoleAdmin, ProfileImage: strPtr("/uploads/a.png")}, true, r, now)
		assert.True(t, nav.ShowAdmin)
		assert.Equal(t, AdminHref, nav.AdminHref)
		assert.Equal(t, "admin@ems.lk", nav.DisplayName)
		assert.Equal(t, "http://api/uploads/a.png?t=42", nav.AvatarURL)
	})
}
