package user

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"learnhub/internal/adapters/storage"
	domain "learnhub/internal/domain/user"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new UserStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a User by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, display_name, first_name, photo_url, role FROM user_profile WHERE id = ?", id)
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.FirstName, &u.PhotoURL, &u.Role)
	if err == sql.ErrNoRows {
		return domain.User{}, fmt.Errorf("user not found: %w", err)
	}
	return u, err
}

// Save persists a User to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, u domain.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_profile (id, email, display_name, first_name, photo_url, role)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   email=excluded.email, display_name=excluded.display_name, first_name=excluded.first_name,
		   photo_url=excluded.photo_url, role=excluded.role`,
		u.ID, u.Email, u.DisplayName, u.FirstName, u.PhotoURL, u.Role)
	return err
}

// CountByRole returns the number of users with the given role; an empty role
// counts all users.
// PRE: none
// POST: Returns the count
func (s *SQLiteStore) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	var err error
	if role == "" {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM user_profile").Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM user_profile WHERE role = ?", role).Scan(&count)
	}
	return count, err
}

// Enroll adds a course to the user's enrollment list.
// PRE: userID and courseID are non-empty
// POST: Enrollment row exists; re-enrolling is a no-op
func (s *SQLiteStore) Enroll(ctx context.Context, userID, courseID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO enrollment (user_id, course_id, enrolled_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, course_id) DO NOTHING`,
		userID, courseID, time.Now().Format(time.RFC3339Nano))
	return err
}

// Unenroll removes a course from the user's enrollment list.
// PRE: userID and courseID are non-empty
// POST: Enrollment row removed if present
func (s *SQLiteStore) Unenroll(ctx context.Context, userID, courseID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM enrollment WHERE user_id = ? AND course_id = ?", userID, courseID)
	return err
}

// ListEnrolled returns the course ids the user is enrolled in, oldest first.
// PRE: userID is non-empty
// POST: Returns matching course ids
func (s *SQLiteStore) ListEnrolled(ctx context.Context, userID string) ([]string, error) {
	return s.listCourseIDs(ctx,
		"SELECT course_id FROM enrollment WHERE user_id = ? ORDER BY enrolled_at", userID)
}

// IsEnrolled reports whether the user is enrolled in the course.
// PRE: userID and courseID are non-empty
// POST: Returns enrollment status
func (s *SQLiteStore) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM enrollment WHERE user_id = ? AND course_id = ?", userID, courseID).Scan(&count)
	return count > 0, err
}

// AddFavorite adds a course to the user's favorites.
// PRE: userID and courseID are non-empty
// POST: Favorite row exists; duplicates are a no-op
func (s *SQLiteStore) AddFavorite(ctx context.Context, userID, courseID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO favorite (user_id, course_id) VALUES (?, ?)
		 ON CONFLICT(user_id, course_id) DO NOTHING`, userID, courseID)
	return err
}

// RemoveFavorite removes a course from the user's favorites.
// PRE: userID and courseID are non-empty
// POST: Favorite row removed if present
func (s *SQLiteStore) RemoveFavorite(ctx context.Context, userID, courseID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM favorite WHERE user_id = ? AND course_id = ?", userID, courseID)
	return err
}

// ListFavorites returns the course ids the user has favorited.
// PRE: userID is non-empty
// POST: Returns matching course ids
func (s *SQLiteStore) ListFavorites(ctx context.Context, userID string) ([]string, error) {
	return s.listCourseIDs(ctx,
		"SELECT course_id FROM favorite WHERE user_id = ? ORDER BY course_id", userID)
}

func (s *SQLiteStore) listCourseIDs(ctx context.Context, query, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
