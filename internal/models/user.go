package models

import "strings"

type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// User is the profile returned by /users/me and listed in dashboard signups.
type User struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Role         UserRole `json:"role"`
	ProfileImage *string  `json:"profile_image,omitempty"`
	IsActive     bool     `json:"is_active"`
	CreatedAt    string   `json:"created_at,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && strings.EqualFold(string(u.Role), string(RoleAdmin))
}

func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
