package navigation

import (
	"context"
	"testing"
)

type mockPrefsWriter struct {
	saved map[string]string
	err   error
}

// Set records the value per key.
// PRE: userID and key are non-empty
// POST: Value recorded, or the configured error returned
func (m *mockPrefsWriter) Set(_ context.Context, _ string, key, value string) error {
	if m.err != nil {
		return m.err
	}
	if m.saved == nil {
		m.saved = make(map[string]string)
	}
	m.saved[key] = value
	return nil
}

// TestNavigateToKnownSection verifies title, persistence and refresh policy.
func TestNavigateToKnownSection(t *testing.T) {
	states := NewStateStore()
	prefs := &mockPrefsWriter{}
	nav := &Navigator{States: states, Prefs: prefs}

	res := nav.NavigateTo(context.Background(), "tok", "user-1", "marketplace", NavigateOptions{})
	if !res.Navigated {
		t.Fatal("expected navigation to happen")
	}
	if res.Title != "Marketplace" {
		t.Errorf("title = %q, want Marketplace", res.Title)
	}
	if res.RefreshProgress {
		t.Error("marketplace must not trigger a progress refresh")
	}
	if !res.ScrollToTop {
		t.Error("default navigation should scroll to top")
	}
	if prefs.saved["lastDashboardSection"] != "marketplace" {
		t.Errorf("last section pref = %q, want marketplace", prefs.saved["lastDashboardSection"])
	}
	if got := states.Get("tok").Section; got != "marketplace" {
		t.Errorf("state section = %q, want marketplace", got)
	}
}

// TestNavigateToOverviewGreeting verifies the personalized overview title and
// the refresh policy for overview and programs.
func TestNavigateToOverviewGreeting(t *testing.T) {
	states := NewStateStore()
	states.Update("tok", func(st *NavState) { st.DisplayFirstName = "Jane" })
	nav := &Navigator{States: states, Prefs: &mockPrefsWriter{}}

	res := nav.NavigateTo(context.Background(), "tok", "user-1", "overview", NavigateOptions{})
	if res.Title != "Welcome, Jane" {
		t.Errorf("title = %q, want Welcome, Jane", res.Title)
	}
	if !res.RefreshProgress {
		t.Error("overview must trigger a progress refresh")
	}

	res = nav.NavigateTo(context.Background(), "tok", "user-1", "programs", NavigateOptions{})
	if !res.RefreshProgress {
		t.Error("programs must trigger a progress refresh")
	}
}

// TestNavigateToUnknownSection verifies unknown sections are a no-op.
func TestNavigateToUnknownSection(t *testing.T) {
	states := NewStateStore()
	prefs := &mockPrefsWriter{}
	nav := &Navigator{States: states, Prefs: prefs}

	res := nav.NavigateTo(context.Background(), "tok", "user-1", "definitely-not-a-section", NavigateOptions{})
	if res.Navigated {
		t.Error("unknown section must not navigate")
	}
	if len(prefs.saved) != 0 {
		t.Error("unknown section must not persist a preference")
	}
}

// TestNavigateScrollSuppression verifies SkipScroll and the one-shot
// search-navigation flag.
func TestNavigateScrollSuppression(t *testing.T) {
	states := NewStateStore()
	nav := &Navigator{States: states, Prefs: &mockPrefsWriter{}}

	res := nav.NavigateTo(context.Background(), "tok", "u", "tasks", NavigateOptions{SkipScroll: true})
	if res.ScrollToTop {
		t.Error("SkipScroll must suppress the scroll")
	}

	states.Update("tok", func(st *NavState) { st.SearchNavigation = true })
	res = nav.NavigateTo(context.Background(), "tok", "u", "help", NavigateOptions{})
	if res.ScrollToTop {
		t.Error("search navigation must suppress the scroll once")
	}
	if states.Get("tok").SearchNavigation {
		t.Error("search flag must clear after navigation")
	}

	res = nav.NavigateTo(context.Background(), "tok", "u", "community", NavigateOptions{})
	if !res.ScrollToTop {
		t.Error("scroll suppression must not persist past one navigation")
	}
}

// TestNavigatePrefFailureIsNonFatal verifies preference write errors do not
// block navigation.
func TestNavigatePrefFailureIsNonFatal(t *testing.T) {
	states := NewStateStore()
	nav := &Navigator{States: states, Prefs: &mockPrefsWriter{err: context.DeadlineExceeded}}

	res := nav.NavigateTo(context.Background(), "tok", "u", "settings", NavigateOptions{})
	if !res.Navigated {
		t.Error("navigation must survive a preference write failure")
	}
}
