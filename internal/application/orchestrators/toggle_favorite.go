package orchestrators

import (
	"context"
	"errors"
	"log/slog"
)

// UserStoreForFavorite defines the store interface needed by ToggleFavorite.
type UserStoreForFavorite interface {
	ListFavorites(ctx context.Context, userID string) ([]string, error)
	AddFavorite(ctx context.Context, userID, courseID string) error
	RemoveFavorite(ctx context.Context, userID, courseID string) error
}

// ToggleFavoriteInput carries input for the toggle-favorite orchestrator.
type ToggleFavoriteInput struct {
	UserID   string
	CourseID string
}

// ToggleFavoriteDeps holds dependencies for ToggleFavorite.
type ToggleFavoriteDeps struct {
	UserStore UserStoreForFavorite
}

// ExecuteToggleFavorite flips a course's membership in the user's favorites.
// PRE: UserID and CourseID are non-empty
// POST: Returns the new favorite state
func ExecuteToggleFavorite(ctx context.Context, input ToggleFavoriteInput, deps ToggleFavoriteDeps) (bool, error) {
	if input.UserID == "" || input.CourseID == "" {
		return false, errors.New("user id and course id are required")
	}

	favorites, err := deps.UserStore.ListFavorites(ctx, input.UserID)
	if err != nil {
		return false, err
	}

	for _, id := range favorites {
		if id == input.CourseID {
			if err := deps.UserStore.RemoveFavorite(ctx, input.UserID, input.CourseID); err != nil {
				return true, err
			}
			slog.Info("favorite_event", "event", "removed", "user_id", input.UserID, "course_id", input.CourseID)
			return false, nil
		}
	}

	if err := deps.UserStore.AddFavorite(ctx, input.UserID, input.CourseID); err != nil {
		return false, err
	}
	slog.Info("favorite_event", "event", "added", "user_id", input.UserID, "course_id", input.CourseID)
	return true, nil
}
