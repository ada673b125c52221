package progress

import (
	"context"
	"database/sql"
	"time"

	"learnhub/internal/adapters/storage"
	domain "learnhub/internal/domain/progress"
)

const dateLayout = time.RFC3339Nano

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ProgressStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the progress row for one user+course, including history samples.
// PRE: userID and courseID are non-empty
// POST: Returns the row, or a zero-valued CourseProgress if none exists
func (s *SQLiteStore) Get(ctx context.Context, userID, courseID string) (domain.CourseProgress, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, course_id, progress, time_spent_minutes, modules_completed, last_accessed, completed
		 FROM course_progress WHERE user_id = ? AND course_id = ?`, userID, courseID)

	p, err := scanProgress(row.Scan)
	if err == sql.ErrNoRows {
		return domain.CourseProgress{UserID: userID, CourseID: courseID}, nil
	}
	if err != nil {
		return domain.CourseProgress{}, err
	}

	p.History, err = s.listSamples(ctx, userID, courseID)
	return p, err
}

// Save persists a progress row (history samples are saved separately).
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, p domain.CourseProgress) error {
	lastAccessed := ""
	if !p.LastAccessed.IsZero() {
		lastAccessed = p.LastAccessed.Format(dateLayout)
	}
	completed := 0
	if p.Completed {
		completed = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO course_progress (user_id, course_id, progress, time_spent_minutes, modules_completed, last_accessed, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, course_id) DO UPDATE SET
		   progress=excluded.progress, time_spent_minutes=excluded.time_spent_minutes,
		   modules_completed=excluded.modules_completed, last_accessed=excluded.last_accessed,
		   completed=excluded.completed`,
		p.UserID, p.CourseID, p.Progress, p.TimeSpentMinutes, p.ModulesCompleted, lastAccessed, completed)
	return err
}

// ListByUser returns all progress rows for a user, history included.
// PRE: userID is non-empty
// POST: Returns matching rows
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]domain.CourseProgress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, course_id, progress, time_spent_minutes, modules_completed, last_accessed, completed
		 FROM course_progress WHERE user_id = ? ORDER BY course_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.CourseProgress
	for rows.Next() {
		p, err := scanProgress(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range results {
		results[i].History, err = s.listSamples(ctx, userID, results[i].CourseID)
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// SaveSample upserts one per-day history sample.
// PRE: sample.Date is YYYY-MM-DD
// POST: Sample persisted; a later sample for the same day overwrites
func (s *SQLiteStore) SaveSample(ctx context.Context, userID, courseID string, sample domain.Sample) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress_sample (user_id, course_id, day, progress) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, course_id, day) DO UPDATE SET progress=excluded.progress`,
		userID, courseID, sample.Date, sample.Progress)
	return err
}

func (s *SQLiteStore) listSamples(ctx context.Context, userID, courseID string) ([]domain.Sample, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT day, progress FROM progress_sample WHERE user_id = ? AND course_id = ? ORDER BY day",
		userID, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []domain.Sample
	for rows.Next() {
		var sm domain.Sample
		if err := rows.Scan(&sm.Date, &sm.Progress); err != nil {
			return nil, err
		}
		samples = append(samples, sm)
	}
	return samples, rows.Err()
}

func scanProgress(scan func(dest ...any) error) (domain.CourseProgress, error) {
	var p domain.CourseProgress
	var lastAccessed sql.NullString
	var completed int
	err := scan(&p.UserID, &p.CourseID, &p.Progress, &p.TimeSpentMinutes, &p.ModulesCompleted, &lastAccessed, &completed)
	if err != nil {
		return domain.CourseProgress{}, err
	}
	p.Completed = completed != 0
	if lastAccessed.Valid && lastAccessed.String != "" {
		p.LastAccessed, _ = time.Parse(dateLayout, lastAccessed.String)
	}
	return p, nil
}
