package user

import (
	"errors"
	"strings"
)

// Role constants mirror the account roles visible on user profiles.
const (
	RoleUser   = "user"
	RoleMentor = "mentor"
	RoleAdmin  = "admin"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleUser, RoleMentor, RoleAdmin}

// Domain errors
var (
	ErrEmptyID      = errors.New("user id cannot be empty")
	ErrEmptyEmail   = errors.New("email cannot be empty")
	ErrInvalidEmail = errors.New("email must contain '@'")
	ErrInvalidRole  = errors.New("role must be one of: user, mentor, admin")
)

// User is the profile document for a signed-in account. Enrollment and
// favorite lists are stored alongside it; per-course progress lives in the
// progress store.
type User struct {
	ID          string // same as the account id
	Email       string
	DisplayName string
	FirstName   string
	PhotoURL    string
	Role        string
}

// Validate checks if the User has valid data.
// PRE: User struct is populated
// POST: Returns nil if valid, error otherwise
func (u *User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if !isValidRole(u.Role) {
		return ErrInvalidRole
	}
	return nil
}

// GreetingName returns the name used in the overview greeting: the first name
// when set, otherwise the display name, otherwise empty.
func (u *User) GreetingName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.DisplayName
}

func isValidRole(r string) bool {
	for _, v := range ValidRoles {
		if v == r {
			return true
		}
	}
	return false
}

// IsMentorOrAdmin reports whether the user can see cohort-wide panels.
func (u *User) IsMentorOrAdmin() bool {
	return u.Role == RoleMentor || u.Role == RoleAdmin
}
