package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"learnhub/internal/domain/progress"
)

// ProgressStoreForRecord defines the store interface needed by RecordProgress.
type ProgressStoreForRecord interface {
	Get(ctx context.Context, userID, courseID string) (progress.CourseProgress, error)
	Save(ctx context.Context, p progress.CourseProgress) error
	SaveSample(ctx context.Context, userID, courseID string, sample progress.Sample) error
}

// RecordProgressInput carries one progress update from a learning session.
type RecordProgressInput struct {
	UserID           string
	CourseID         string
	Progress         float64 // new percentage; values outside [0,100] are clamped
	MinutesSpent     int     // minutes to add to the running total
	ModulesCompleted int     // new module count; lower values never regress it
	MarkCompleted    bool    // explicit completion signal
}

// RecordProgressDeps holds dependencies for RecordProgress.
type RecordProgressDeps struct {
	ProgressStore ProgressStoreForRecord
	Now           func() time.Time // defaults to time.Now
}

// ExecuteRecordProgress folds one session update into the stored progress row
// and its daily history.
// PRE: UserID and CourseID are non-empty
// POST: Progress clamped, time accumulated, LastAccessed set to now, a
// sample upserted for today
// INVARIANT: Completed is only ever set by the explicit flag, never inferred
// from the percentage
func ExecuteRecordProgress(ctx context.Context, input RecordProgressInput, deps RecordProgressDeps) (progress.CourseProgress, error) {
	if input.UserID == "" || input.CourseID == "" {
		return progress.CourseProgress{}, errors.New("user id and course id are required")
	}
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	p, err := deps.ProgressStore.Get(ctx, input.UserID, input.CourseID)
	if err != nil {
		return progress.CourseProgress{}, err
	}
	p.UserID = input.UserID
	p.CourseID = input.CourseID

	p.Progress = input.Progress
	p.ClampProgress()
	if input.MinutesSpent > 0 {
		p.TimeSpentMinutes += input.MinutesSpent
	}
	if input.ModulesCompleted > p.ModulesCompleted {
		p.ModulesCompleted = input.ModulesCompleted
	}
	p.LastAccessed = now()
	if input.MarkCompleted {
		p.Completed = true
		p.Progress = 100
	}

	if err := deps.ProgressStore.Save(ctx, p); err != nil {
		return progress.CourseProgress{}, err
	}

	sample := progress.Sample{Date: p.LastAccessed.Format("2006-01-02"), Progress: p.Progress}
	if err := deps.ProgressStore.SaveSample(ctx, input.UserID, input.CourseID, sample); err != nil {
		slog.Warn("progress_sample_failed", "course_id", input.CourseID, "error", err)
	}

	slog.Info("progress_event", "event", "recorded", "user_id", input.UserID,
		"course_id", input.CourseID, "progress", p.Progress, "completed", p.Completed)
	return p, nil
}
