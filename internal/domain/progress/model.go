package progress

import (
	"errors"
	"time"
)

// Bucket constants partition enrolled courses by progress state.
const (
	BucketNotStarted = "not_started"
	BucketInProgress = "in_progress"
	BucketCompleted  = "completed"
)

// Domain errors
var (
	ErrEmptyUserID   = errors.New("user id cannot be empty")
	ErrEmptyCourseID = errors.New("course id cannot be empty")
)

// Sample is one per-day progress measurement.
type Sample struct {
	Date     string // YYYY-MM-DD, local time
	Progress float64
}

// CourseProgress tracks one user's state in one course. Progress is a
// percentage in [0, 100]; Completed is a stored flag and is authoritative —
// reaching 100% alone does not mark a course completed, which guards against
// partially-synced writes.
type CourseProgress struct {
	UserID           string
	CourseID         string
	Progress         float64
	TimeSpentMinutes int
	ModulesCompleted int
	LastAccessed     time.Time // zero means never opened
	Completed        bool
	History          []Sample
}

// Validate checks if the CourseProgress has valid keys.
// PRE: CourseProgress struct is populated
// POST: Returns nil if valid, error otherwise
func (p *CourseProgress) Validate() error {
	if p.UserID == "" {
		return ErrEmptyUserID
	}
	if p.CourseID == "" {
		return ErrEmptyCourseID
	}
	return nil
}

// ClampProgress clamps the progress percentage into [0, 100].
func (p *CourseProgress) ClampProgress() {
	if p.Progress < 0 {
		p.Progress = 0
	}
	if p.Progress > 100 {
		p.Progress = 100
	}
}

// Bucket assigns the course to exactly one progress bucket.
//
// The Completed flag is authoritative: a course at 100% with the flag unset is
// counted as in-progress rather than falling into no bucket, so the three
// buckets always form a total partition of enrolled courses.
func (p *CourseProgress) Bucket() string {
	if p.Completed {
		return BucketCompleted
	}
	if p.Progress == 0 {
		return BucketNotStarted
	}
	return BucketInProgress
}

// AccessedOn reports whether the course was last accessed on the given
// calendar date (local time of day).
func (p *CourseProgress) AccessedOn(day time.Time) bool {
	if p.LastAccessed.IsZero() {
		return false
	}
	y1, m1, d1 := p.LastAccessed.Local().Date()
	y2, m2, d2 := day.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
