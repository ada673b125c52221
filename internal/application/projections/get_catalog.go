package projections

import (
	"context"
	"log/slog"

	"learnhub/internal/adapters/storage/course"
	domainCourse "learnhub/internal/domain/course"
)

// GetCatalogQuery carries marketplace query parameters.
type GetCatalogQuery struct {
	Category   string
	Difficulty string
	Search     string
	Sort       string
	Dir        string
	Limit      int
	Offset     int
}

// CatalogCourse is one marketplace card.
type CatalogCourse struct {
	domainCourse.Course
	Enrolled bool
	Favorite bool
}

// GetCatalogResult carries the query result.
type GetCatalogResult struct {
	Courses []CatalogCourse
	Total   int
}

// GetCatalogDeps holds dependencies for GetCatalog.
type GetCatalogDeps struct {
	CourseStore CourseStore
	UserStore   UserStore // optional; enriches cards for a signed-in viewer
}

// QueryGetCatalog retrieves the marketplace course list.
// PRE: Valid query parameters
// POST: Returns filtered, sorted, paginated courses; a store failure degrades
// to an empty list rather than an error so the page still renders
func QueryGetCatalog(ctx context.Context, viewerID string, query GetCatalogQuery, deps GetCatalogDeps) GetCatalogResult {
	filter := course.ListFilter{
		Category:   query.Category,
		Difficulty: query.Difficulty,
		Search:     query.Search,
		Sort:       query.Sort,
		Dir:        query.Dir,
		Limit:      query.Limit,
		Offset:     query.Offset,
	}

	courses, err := deps.CourseStore.List(ctx, filter)
	if err != nil {
		slog.Error("catalog_list_failed", "error", err)
		return GetCatalogResult{}
	}
	total, err := deps.CourseStore.Count(ctx, filter)
	if err != nil {
		slog.Error("catalog_count_failed", "error", err)
		total = len(courses)
	}

	enrolled := idSet(ctx, viewerID, deps.UserStore, listEnrolled)
	favorites := idSet(ctx, viewerID, deps.UserStore, listFavorites)

	result := GetCatalogResult{Total: total, Courses: make([]CatalogCourse, 0, len(courses))}
	for _, c := range courses {
		result.Courses = append(result.Courses, CatalogCourse{
			Course:   c,
			Enrolled: enrolled[c.ID],
			Favorite: favorites[c.ID],
		})
	}
	return result
}

func listEnrolled(ctx context.Context, s UserStore, uid string) ([]string, error) {
	return s.ListEnrolled(ctx, uid)
}

func listFavorites(ctx context.Context, s UserStore, uid string) ([]string, error) {
	return s.ListFavorites(ctx, uid)
}

// idSet loads a course-id list into a set, degrading to empty on any failure.
func idSet(ctx context.Context, viewerID string, store UserStore, list func(context.Context, UserStore, string) ([]string, error)) map[string]bool {
	set := make(map[string]bool)
	if viewerID == "" || store == nil {
		return set
	}
	ids, err := list(ctx, store, viewerID)
	if err != nil {
		return set
	}
	for _, id := range ids {
		set[id] = true
	}
	return set
}
