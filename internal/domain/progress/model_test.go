package progress_test

import (
	"testing"
	"time"

	"learnhub/internal/domain/progress"
)

// TestBucketTotality verifies every course falls into exactly one bucket and
// the three buckets partition the whole list.
func TestBucketTotality(t *testing.T) {
	courses := []progress.CourseProgress{
		{CourseID: "a", Progress: 0},
		{CourseID: "b", Progress: 45},
		{CourseID: "c", Progress: 100, Completed: true},
		{CourseID: "d", Progress: 100, Completed: false}, // the bucket-gap case
		{CourseID: "e", Progress: 0, Completed: true},    // flag wins even at 0%
		{CourseID: "f", Progress: 99.9},
	}

	counts := map[string]int{}
	for _, c := range courses {
		b := c.Bucket()
		switch b {
		case progress.BucketNotStarted, progress.BucketInProgress, progress.BucketCompleted:
			counts[b]++
		default:
			t.Fatalf("course %s: unknown bucket %q", c.CourseID, b)
		}
	}

	total := counts[progress.BucketNotStarted] + counts[progress.BucketInProgress] + counts[progress.BucketCompleted]
	if total != len(courses) {
		t.Errorf("bucket sum = %d, want %d", total, len(courses))
	}
}

// TestBucketGapCase pins the resolution of the 100%-but-not-flagged case: the
// stored Completed flag is authoritative and the course counts as in-progress.
func TestBucketGapCase(t *testing.T) {
	courses := []progress.CourseProgress{
		{CourseID: "a", Progress: 0},
		{CourseID: "b", Progress: 45},
		{CourseID: "c", Progress: 100, Completed: true},
		{CourseID: "d", Progress: 100, Completed: false},
	}

	counts := map[string]int{}
	for _, c := range courses {
		counts[c.Bucket()]++
	}

	if counts[progress.BucketNotStarted] != 1 {
		t.Errorf("not started = %d, want 1", counts[progress.BucketNotStarted])
	}
	if counts[progress.BucketInProgress] != 2 {
		t.Errorf("in progress = %d, want 2 (100%% without flag clamps here)", counts[progress.BucketInProgress])
	}
	if counts[progress.BucketCompleted] != 1 {
		t.Errorf("completed = %d, want 1", counts[progress.BucketCompleted])
	}
}

// TestClampProgress tests the percentage clamp.
func TestClampProgress(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{55.5, 55.5},
		{100, 100},
		{140, 100},
	}
	for _, tt := range tests {
		p := progress.CourseProgress{Progress: tt.in}
		p.ClampProgress()
		if p.Progress != tt.want {
			t.Errorf("ClampProgress(%v) = %v, want %v", tt.in, p.Progress, tt.want)
		}
	}
}

// TestAccessedOn tests local-calendar-date matching for the streak rule.
func TestAccessedOn(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.Local)

	p := progress.CourseProgress{LastAccessed: time.Date(2026, 3, 10, 0, 15, 0, 0, time.Local)}
	if !p.AccessedOn(now) {
		t.Error("same calendar date should match regardless of time of day")
	}

	p.LastAccessed = time.Date(2026, 3, 9, 23, 59, 0, 0, time.Local)
	if p.AccessedOn(now) {
		t.Error("previous day must not match")
	}

	p.LastAccessed = time.Time{}
	if p.AccessedOn(now) {
		t.Error("zero LastAccessed must not match")
	}
}
