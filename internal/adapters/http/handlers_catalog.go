package web

import (
	"net/http"

	"learnhub/internal/adapters/http/middleware"
	"learnhub/internal/application/listutil"
	"learnhub/internal/application/projections"
)

// catalogSortColumns are the sort keys the marketplace accepts.
var catalogSortColumns = []string{"title", "price", "rating", "students"}

// handleCatalog serves the marketplace course grid.
func handleCatalog(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), catalogSortColumns, []string{"category", "difficulty"})
	page := listutil.NewPageInfo(params.Page, params.PerPage, 0)

	viewerID := ""
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		viewerID = sess.AccountID
	}

	result := projections.QueryGetCatalog(r.Context(), viewerID, projections.GetCatalogQuery{
		Category:   params.Filters["category"],
		Difficulty: params.Filters["difficulty"],
		Search:     params.Search,
		Sort:       params.Sort,
		Dir:        params.Dir,
		Limit:      page.PerPage,
		Offset:     page.Offset(),
	}, projections.GetCatalogDeps{
		CourseStore: stores.CourseStore,
		UserStore:   stores.UserStore,
	})

	page = listutil.NewPageInfo(params.Page, params.PerPage, result.Total)

	courses := make([]map[string]any, 0, len(result.Courses))
	for _, c := range result.Courses {
		courses = append(courses, map[string]any{
			"id":         c.ID,
			"title":      c.Title,
			"category":   c.Category,
			"difficulty": c.Difficulty,
			"priceCents": c.PriceCents,
			"free":       c.IsFree(),
			"rating":     c.Rating,
			"students":   c.Students,
			"enrolled":   c.Enrolled,
			"favorite":   c.Favorite,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"courses":    courses,
		"total":      result.Total,
		"page":       page.Page,
		"totalPages": page.TotalPages,
	})
}
