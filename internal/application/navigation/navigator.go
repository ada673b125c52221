package navigation

import (
	"context"
	"log/slog"

	"learnhub/internal/domain/prefs"
	"learnhub/internal/domain/route"
)

// sectionLabels maps dashboard sections to their header titles. overview is
// absent because its title is the personalized greeting.
var sectionLabels = map[string]string{
	"progress":      "My Progress",
	"programs":      "My Programs",
	"marketplace":   "Marketplace",
	"tasks":         "Tasks",
	"profile":       "Profile",
	"settings":      "Settings",
	"payment":       "Payment & Billing",
	"help":          "Help Center",
	"community":     "Community",
	"credentials":   "Credentials",
	"subscriptions": "Subscriptions",
}

// PrefsWriter is the slice of the prefs store the navigator needs.
type PrefsWriter interface {
	Set(ctx context.Context, userID, key, value string) error
}

// NavigateOptions tunes a single navigation.
type NavigateOptions struct {
	SkipScroll bool
}

// NavigateResult tells the caller what the navigation decided.
type NavigateResult struct {
	Navigated       bool
	Section         string
	Title           string
	RefreshProgress bool // progress data is stale and should be refetched
	ScrollToTop     bool
}

// Navigator performs dashboard section switches against a session's NavState.
type Navigator struct {
	States *StateStore
	Prefs  PrefsWriter
}

// NavigateTo switches the session to a dashboard section. Unknown sections
// are a no-op result rather than an error, so stale links cannot break the
// page. The chosen section is persisted as the user's last dashboard section;
// persistence failures are logged and otherwise ignored.
func (n *Navigator) NavigateTo(ctx context.Context, token, userID, section string, opts NavigateOptions) NavigateResult {
	if !containsDashboardSection(section) {
		return NavigateResult{}
	}

	var scroll bool
	st := n.States.Update(token, func(st *NavState) {
		st.Section = section
		st.Path = route.CanonicalDashboardPath(section, userID)
		// The search flag suppresses exactly one scroll, then clears.
		scroll = !opts.SkipScroll && !st.SearchNavigation
		st.SearchNavigation = false
	})

	if userID != "" && n.Prefs != nil {
		if err := n.Prefs.Set(ctx, userID, prefs.KeyLastDashboardSection, section); err != nil {
			slog.Warn("nav_pref_save_failed", "section", section, "error", err)
		}
	}

	title := sectionLabels[section]
	if section == "overview" {
		title = greetingTitle(st.DisplayFirstName)
	}

	return NavigateResult{
		Navigated:       true,
		Section:         section,
		Title:           title,
		RefreshProgress: section == "overview" || section == "programs",
		ScrollToTop:     scroll,
	}
}

func greetingTitle(firstName string) string {
	if firstName == "" {
		return "Welcome"
	}
	return "Welcome, " + firstName
}

func containsDashboardSection(section string) bool {
	for _, s := range route.DashboardSections {
		if s == section {
			return true
		}
	}
	return false
}
