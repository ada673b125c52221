package projections

import (
	"context"
	"time"

	domainProgress "learnhub/internal/domain/progress"
)

// chartLookbackDays is the window a synthetic chart series covers.
const chartLookbackDays = 30

// CourseProgressView is one course row on the progress panel.
type CourseProgressView struct {
	CourseID         string
	Progress         float64
	TimeSpentMinutes int
	ModulesCompleted int
	LastAccessed     time.Time
	Bucket           string
}

// ChartSeries is the per-course progress-over-time series fed to the chart.
// Synthetic is set when no real history exists and the points are a linear
// ramp from zero to the current value.
type ChartSeries struct {
	CourseID  string
	Points    []domainProgress.Sample
	Synthetic bool
}

// GetProgressSummaryResult carries the aggregated progress view.
type GetProgressSummaryResult struct {
	TotalCourses      int
	CompletedCourses  int
	InProgressCourses int
	NotStartedCourses int
	TotalMinutes      int
	CurrentStreakDays int
	LastActiveDate    time.Time
	Courses           []CourseProgressView
	Series            []ChartSeries
}

// GetProgressSummaryDeps holds dependencies for GetProgressSummary.
type GetProgressSummaryDeps struct {
	ProgressStore ProgressStore
	Now           func() time.Time // defaults to time.Now
}

// QueryGetProgressSummary aggregates a user's per-course progress into the
// dashboard view.
// PRE: userID is non-empty
// POST: Bucket counts partition TotalCourses; each course yields one series
// INVARIANT: CompletedCourses counts only rows with the stored flag set
func QueryGetProgressSummary(ctx context.Context, userID string, deps GetProgressSummaryDeps) (GetProgressSummaryResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	rows, err := deps.ProgressStore.ListByUser(ctx, userID)
	if err != nil {
		return GetProgressSummaryResult{}, err
	}

	result := GetProgressSummaryResult{TotalCourses: len(rows)}
	today := now()

	for _, p := range rows {
		bucket := p.Bucket()
		switch bucket {
		case domainProgress.BucketCompleted:
			result.CompletedCourses++
		case domainProgress.BucketInProgress:
			result.InProgressCourses++
		default:
			result.NotStartedCourses++
		}

		result.TotalMinutes += p.TimeSpentMinutes
		if p.LastAccessed.After(result.LastActiveDate) {
			result.LastActiveDate = p.LastAccessed
		}
		// The streak is a single-day signal: 1 when anything was touched
		// today, 0 otherwise. Multi-day chains are out of scope.
		if p.AccessedOn(today) {
			result.CurrentStreakDays = 1
		}

		result.Courses = append(result.Courses, CourseProgressView{
			CourseID:         p.CourseID,
			Progress:         p.Progress,
			TimeSpentMinutes: p.TimeSpentMinutes,
			ModulesCompleted: p.ModulesCompleted,
			LastAccessed:     p.LastAccessed,
			Bucket:           bucket,
		})
		result.Series = append(result.Series, buildSeries(p, today))
	}

	return result, nil
}

// buildSeries returns the real history when any samples exist; otherwise a
// linear ramp from 0 to the current progress over the lookback window, marked
// synthetic.
func buildSeries(p domainProgress.CourseProgress, today time.Time) ChartSeries {
	if len(p.History) > 0 {
		return ChartSeries{CourseID: p.CourseID, Points: p.History}
	}

	points := make([]domainProgress.Sample, chartLookbackDays)
	for i := 0; i < chartLookbackDays; i++ {
		day := today.AddDate(0, 0, i-(chartLookbackDays-1))
		points[i] = domainProgress.Sample{
			Date:     day.Format("2006-01-02"),
			Progress: p.Progress * float64(i) / float64(chartLookbackDays-1),
		}
	}
	return ChartSeries{CourseID: p.CourseID, Points: points, Synthetic: true}
}
