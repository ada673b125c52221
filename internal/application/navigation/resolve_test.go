package navigation

import (
	"context"
	"testing"

	courseStore "learnhub/internal/adapters/storage/course"
	"learnhub/internal/domain/course"
)

type mockEnrollmentLister struct {
	ids []string
	err error
}

// ListEnrolled returns the seeded enrollment ids.
// PRE: userID is non-empty
// POST: Returns the seeded ids or the configured error
func (m *mockEnrollmentLister) ListEnrolled(_ context.Context, _ string) ([]string, error) {
	return m.ids, m.err
}

type mockCatalogLister struct {
	courses []course.Course
	err     error
}

// List returns the seeded catalog courses.
// PRE: filter is valid
// POST: Returns the seeded courses or the configured error
func (m *mockCatalogLister) List(_ context.Context, _ courseStore.ListFilter) ([]course.Course, error) {
	return m.courses, m.err
}

// TestResolveAmbientCourseID exercises the fallback chain.
func TestResolveAmbientCourseID(t *testing.T) {
	ctx := context.Background()
	enrolled := &mockEnrollmentLister{ids: []string{"enrolled-1", "enrolled-2"}}
	catalog := &mockCatalogLister{courses: []course.Course{{ID: "catalog-1"}}}

	if got := ResolveAmbientCourseID(ctx, NavState{CourseID: "active"}, "u", enrolled, catalog); got != "active" {
		t.Errorf("session course should win, got %q", got)
	}
	if got := ResolveAmbientCourseID(ctx, NavState{}, "u", enrolled, catalog); got != "enrolled-1" {
		t.Errorf("first enrollment should win next, got %q", got)
	}
	if got := ResolveAmbientCourseID(ctx, NavState{}, "u", &mockEnrollmentLister{}, catalog); got != "catalog-1" {
		t.Errorf("catalog fallback, got %q", got)
	}
	if got := ResolveAmbientCourseID(ctx, NavState{}, "", &mockEnrollmentLister{ids: []string{"x"}}, &mockCatalogLister{}); got != "" {
		t.Errorf("anonymous user with empty catalog resolves nothing, got %q", got)
	}
}

// TestResolveAmbientCourseIDDegradesOnError verifies store errors fall
// through to the next source.
func TestResolveAmbientCourseIDDegradesOnError(t *testing.T) {
	ctx := context.Background()
	enrolled := &mockEnrollmentLister{err: context.DeadlineExceeded}
	catalog := &mockCatalogLister{courses: []course.Course{{ID: "catalog-1"}}}

	if got := ResolveAmbientCourseID(ctx, NavState{}, "u", enrolled, catalog); got != "catalog-1" {
		t.Errorf("enrollment error should degrade to catalog, got %q", got)
	}
}
