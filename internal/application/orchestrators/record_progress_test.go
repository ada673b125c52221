package orchestrators

import (
	"context"
	"testing"
	"time"

	"learnhub/internal/domain/progress"
)

type mockRecordProgressStore struct {
	row     progress.CourseProgress
	saved   *progress.CourseProgress
	samples []progress.Sample
}

// Get returns the seeded row.
// PRE: ids are non-empty
// POST: Returns the row
func (m *mockRecordProgressStore) Get(_ context.Context, _, _ string) (progress.CourseProgress, error) {
	return m.row, nil
}

// Save records the row.
// PRE: row is validated
// POST: Row recorded
func (m *mockRecordProgressStore) Save(_ context.Context, p progress.CourseProgress) error {
	m.saved = &p
	return nil
}

// SaveSample records the sample.
// PRE: sample.Date is YYYY-MM-DD
// POST: Sample recorded
func (m *mockRecordProgressStore) SaveSample(_ context.Context, _, _ string, s progress.Sample) error {
	m.samples = append(m.samples, s)
	return nil
}

// TestExecuteRecordProgress verifies clamping, accumulation and the daily
// sample.
func TestExecuteRecordProgress(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)
	store := &mockRecordProgressStore{row: progress.CourseProgress{
		UserID: "u1", CourseID: "advanced-ai",
		Progress: 30, TimeSpentMinutes: 60, ModulesCompleted: 3,
	}}

	result, err := ExecuteRecordProgress(context.Background(), RecordProgressInput{
		UserID: "u1", CourseID: "advanced-ai",
		Progress: 145, MinutesSpent: 25, ModulesCompleted: 5,
	}, RecordProgressDeps{ProgressStore: store, Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Progress != 100 {
		t.Errorf("progress=%v want clamped to 100", result.Progress)
	}
	if result.Completed {
		t.Error("100%% alone must not set the completed flag")
	}
	if result.TimeSpentMinutes != 85 {
		t.Errorf("minutes=%d want 85", result.TimeSpentMinutes)
	}
	if result.ModulesCompleted != 5 {
		t.Errorf("modules=%d want 5", result.ModulesCompleted)
	}
	if !result.LastAccessed.Equal(now) {
		t.Errorf("lastAccessed=%v want now", result.LastAccessed)
	}
	if len(store.samples) != 1 || store.samples[0].Date != "2026-03-10" || store.samples[0].Progress != 100 {
		t.Errorf("samples = %+v, want one for today at 100", store.samples)
	}
}

// TestExecuteRecordProgress_ModulesNeverRegress verifies a lower module count
// does not overwrite a higher one.
func TestExecuteRecordProgress_ModulesNeverRegress(t *testing.T) {
	store := &mockRecordProgressStore{row: progress.CourseProgress{ModulesCompleted: 7}}

	result, err := ExecuteRecordProgress(context.Background(), RecordProgressInput{
		UserID: "u1", CourseID: "c1", Progress: 50, ModulesCompleted: 4,
	}, RecordProgressDeps{ProgressStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ModulesCompleted != 7 {
		t.Errorf("modules=%d want 7 preserved", result.ModulesCompleted)
	}
}

// TestExecuteRecordProgress_ExplicitCompletion verifies the completion flag
// forces 100%.
func TestExecuteRecordProgress_ExplicitCompletion(t *testing.T) {
	store := &mockRecordProgressStore{row: progress.CourseProgress{Progress: 90}}

	result, err := ExecuteRecordProgress(context.Background(), RecordProgressInput{
		UserID: "u1", CourseID: "c1", Progress: 92, MarkCompleted: true,
	}, RecordProgressDeps{ProgressStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Completed || result.Progress != 100 {
		t.Errorf("result = %+v, want completed at 100", result)
	}
}
