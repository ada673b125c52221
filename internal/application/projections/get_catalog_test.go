package projections

import (
	"context"
	"testing"

	"learnhub/internal/adapters/storage/course"
	domainCourse "learnhub/internal/domain/course"
	domainUser "learnhub/internal/domain/user"
)

type mockCourseStore struct {
	courses     []domainCourse.Course
	lessons     []domainCourse.Lesson
	resources   []domainCourse.Resource
	assignments []domainCourse.Assignment
	listErr     error
	lastFilter  course.ListFilter
}

// GetByID returns a seeded course by id.
// PRE: id is non-empty
// POST: Returns the course or an error if unseeded
func (m *mockCourseStore) GetByID(_ context.Context, id string) (domainCourse.Course, error) {
	for _, c := range m.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return domainCourse.Course{}, context.DeadlineExceeded
}

// List returns the seeded courses.
// PRE: filter is valid
// POST: Returns all seeded courses or the configured error
func (m *mockCourseStore) List(_ context.Context, f course.ListFilter) ([]domainCourse.Course, error) {
	m.lastFilter = f
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.courses, nil
}

// Count returns the number of seeded courses.
// PRE: filter is valid
// POST: Returns count >= 0
func (m *mockCourseStore) Count(_ context.Context, _ course.ListFilter) (int, error) {
	if m.listErr != nil {
		return 0, m.listErr
	}
	return len(m.courses), nil
}

// ListLessons returns seeded lessons.
func (m *mockCourseStore) ListLessons(_ context.Context, _ string) ([]domainCourse.Lesson, error) {
	return m.lessons, nil
}

// ListResources returns seeded resources.
func (m *mockCourseStore) ListResources(_ context.Context, _ string) ([]domainCourse.Resource, error) {
	return m.resources, nil
}

// ListAssignments returns seeded assignments.
func (m *mockCourseStore) ListAssignments(_ context.Context, _ string) ([]domainCourse.Assignment, error) {
	return m.assignments, nil
}

type mockUserStore struct {
	user      domainUser.User
	enrolled  []string
	favorites []string
}

// GetByID returns the seeded profile.
// PRE: id is non-empty
// POST: Returns the seeded user
func (m *mockUserStore) GetByID(_ context.Context, _ string) (domainUser.User, error) {
	return m.user, nil
}

// CountByRole returns a fixed count.
// PRE: role is valid
// POST: Returns count >= 0
func (m *mockUserStore) CountByRole(_ context.Context, _ string) (int, error) {
	return 7, nil
}

// ListEnrolled returns the seeded enrollment ids.
func (m *mockUserStore) ListEnrolled(_ context.Context, _ string) ([]string, error) {
	return m.enrolled, nil
}

// ListFavorites returns the seeded favorite ids.
func (m *mockUserStore) ListFavorites(_ context.Context, _ string) ([]string, error) {
	return m.favorites, nil
}

// TestQueryGetCatalog_MarksViewerState verifies enrollment and favorite
// flags on the cards.
func TestQueryGetCatalog_MarksViewerState(t *testing.T) {
	courses := &mockCourseStore{courses: []domainCourse.Course{
		{ID: "advanced-ai", Title: "Advanced AI"},
		{ID: "go-basics", Title: "Go Basics"},
	}}
	users := &mockUserStore{enrolled: []string{"go-basics"}, favorites: []string{"advanced-ai"}}

	res := QueryGetCatalog(context.Background(), "u1", GetCatalogQuery{}, GetCatalogDeps{
		CourseStore: courses, UserStore: users,
	})

	if len(res.Courses) != 2 || res.Total != 2 {
		t.Fatalf("courses=%d total=%d want 2/2", len(res.Courses), res.Total)
	}
	if !res.Courses[0].Favorite || res.Courses[0].Enrolled {
		t.Errorf("advanced-ai flags = %+v, want favorite only", res.Courses[0])
	}
	if !res.Courses[1].Enrolled || res.Courses[1].Favorite {
		t.Errorf("go-basics flags = %+v, want enrolled only", res.Courses[1])
	}
}

// TestQueryGetCatalog_AnonymousViewer verifies cards carry no viewer state
// for signed-out visitors.
func TestQueryGetCatalog_AnonymousViewer(t *testing.T) {
	courses := &mockCourseStore{courses: []domainCourse.Course{{ID: "go-basics"}}}

	res := QueryGetCatalog(context.Background(), "", GetCatalogQuery{}, GetCatalogDeps{CourseStore: courses})
	if len(res.Courses) != 1 {
		t.Fatalf("courses=%d want 1", len(res.Courses))
	}
	if res.Courses[0].Enrolled || res.Courses[0].Favorite {
		t.Error("anonymous cards must carry no viewer flags")
	}
}

// TestQueryGetCatalog_PassesFilter verifies query parameters reach the store.
func TestQueryGetCatalog_PassesFilter(t *testing.T) {
	courses := &mockCourseStore{}
	QueryGetCatalog(context.Background(), "", GetCatalogQuery{
		Category: "ai", Difficulty: "advanced", Search: "neural", Sort: "rating", Dir: "desc", Limit: 12, Offset: 24,
	}, GetCatalogDeps{CourseStore: courses})

	f := courses.lastFilter
	if f.Category != "ai" || f.Difficulty != "advanced" || f.Search != "neural" || f.Sort != "rating" || f.Dir != "desc" || f.Limit != 12 || f.Offset != 24 {
		t.Errorf("filter not forwarded: %+v", f)
	}
}

// TestQueryGetCatalog_DegradesOnStoreError verifies a failing store yields an
// empty page rather than an error.
func TestQueryGetCatalog_DegradesOnStoreError(t *testing.T) {
	courses := &mockCourseStore{listErr: context.DeadlineExceeded}
	res := QueryGetCatalog(context.Background(), "u1", GetCatalogQuery{}, GetCatalogDeps{CourseStore: courses})
	if len(res.Courses) != 0 || res.Total != 0 {
		t.Errorf("expected empty degraded result, got %+v", res)
	}
}
