package profile

import (
	"time"

	"github.com/Randidu/event-management-system/internal/models"
)

const (
	AdminHref = "/admin/dashboard"
	LoginHref = "/admin/login"
)

// Nav is the auth dependent part of the page header.
type Nav struct {
	Authenticated bool   `json:"authenticated"`
	DisplayName   string `json:"display_name,omitempty"`
	Email         string `json:"email,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	ShowAdmin     bool   `json:"show_admin"`
	AdminHref     string `json:"admin_href,omitempty"`
	LoginHref     string `json:"login_href,omitempty"`
}

// BuildNav derives the header state. A token without a cached profile still
// counts as signed in; the admin link needs a profile with role ADMIN.
func BuildNav(user *models.User, hasToken bool, r *Resolver, now time.Time) Nav {
	if !hasToken {
		return Nav{LoginHref: LoginHref}
	}
	nav := Nav{Authenticated: true}
	if user == nil {
		return nav
	}

	nav.DisplayName = DisplayName(user)
	nav.Email = user.Email
	nav.AvatarURL = r.Avatar(user.ProfileImage, user.Email, 40)
	if user.ProfileImage != nil && *user.ProfileImage != "" {
		nav.AvatarURL = CacheBust(nav.AvatarURL, now)
	}
	if user.IsAdmin() {
		nav.ShowAdmin = true
		nav.AdminHref = AdminHref
	}
	return nav
}

// DisplayName falls back to the email when the profile has no name.
func DisplayName(user *models.User) string {
	if user == nil {
		return ""
	}
	if name := user.FullName(); name != "" {
		return name
	}
	return user.Email
}
