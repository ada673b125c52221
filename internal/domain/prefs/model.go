// Package prefs holds per-user preference keys. Values are opaque strings;
// JSON-valued preferences are marshalled by their owners before storage.
package prefs

import "errors"

// Preference keys.
const (
	KeyLastDashboardSection = "lastDashboardSection"
	KeyDashboardSettings    = "dashboardSettings"
	KeyUserSocialLinks      = "userSocialLinks"
)

// ErrNotFound indicates the preference has never been set for the user.
var ErrNotFound = errors.New("preference not found")
