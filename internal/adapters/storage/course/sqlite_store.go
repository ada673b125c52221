package course

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"learnhub/internal/adapters/storage"
	domain "learnhub/internal/domain/course"
)

const dateLayout = time.RFC3339Nano

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new CourseStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const courseColumns = "id, title, description, category, difficulty, price_cents, rating, students, created_at"

// sortColumns maps ListFilter.Sort values to ORDER BY expressions. Anything
// not in this map falls back to title ordering, so filter input can never
// reach the SQL string.
var sortColumns = map[string]string{
	"title":    "title COLLATE NOCASE",
	"price":    "price_cents",
	"rating":   "rating",
	"students": "students",
}

// GetByID retrieves a Course by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Course, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+courseColumns+" FROM course WHERE id = ?", id)
	entity, err := scanCourse(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Course{}, fmt.Errorf("course not found: %w", err)
	}
	return entity, err
}

// Save persists a Course to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, c domain.Course) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO course (id, title, description, category, difficulty, price_cents, rating, students, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title=excluded.title, description=excluded.description, category=excluded.category,
		   difficulty=excluded.difficulty, price_cents=excluded.price_cents, rating=excluded.rating,
		   students=excluded.students`,
		c.ID, c.Title, c.Description, c.Category, c.Difficulty, c.PriceCents, c.Rating, c.Students,
		c.CreatedAt.Format(dateLayout))
	return err
}

// Delete removes a Course from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM course WHERE id = ?", id)
	return err
}

// List retrieves courses matching the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Course, error) {
	where, args := buildWhere(filter)

	orderBy, ok := sortColumns[filter.Sort]
	if !ok {
		orderBy = sortColumns["title"]
	}
	if filter.Dir == "desc" {
		orderBy += " DESC"
	}

	query := "SELECT " + courseColumns + " FROM course" + where + " ORDER BY " + orderBy
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Course
	for rows.Next() {
		entity, err := scanCourse(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the number of courses matching the filter.
// PRE: filter has valid parameters
// POST: Returns the count
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := buildWhere(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM course"+where, args...).Scan(&count)
	return count, err
}

// AddStudents adjusts the denormalized enrolled-student counter.
// PRE: courseID is non-empty
// POST: students column adjusted by delta, floored at zero
func (s *SQLiteStore) AddStudents(ctx context.Context, courseID string, delta int) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE course SET students = MAX(0, students + ?) WHERE id = ?", delta, courseID)
	return err
}

// ListLessons retrieves a course's lessons ordered by position.
// PRE: courseID is non-empty
// POST: Returns matching lessons
func (s *SQLiteStore) ListLessons(ctx context.Context, courseID string) ([]domain.Lesson, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, course_id, title, notes, duration_minutes, position FROM lesson WHERE course_id = ? ORDER BY position",
		courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Lesson
	for rows.Next() {
		var l domain.Lesson
		if err := rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.Notes, &l.DurationMinutes, &l.Position); err != nil {
			return nil, err
		}
		results = append(results, l)
	}
	return results, rows.Err()
}

// SaveLesson persists a Lesson.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) SaveLesson(ctx context.Context, l domain.Lesson) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lesson (id, course_id, title, notes, duration_minutes, position)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title=excluded.title, notes=excluded.notes,
		   duration_minutes=excluded.duration_minutes, position=excluded.position`,
		l.ID, l.CourseID, l.Title, l.Notes, l.DurationMinutes, l.Position)
	return err
}

// ListResources retrieves a course's resources.
// PRE: courseID is non-empty
// POST: Returns matching resources
func (s *SQLiteStore) ListResources(ctx context.Context, courseID string) ([]domain.Resource, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, course_id, title, url, kind FROM resource WHERE course_id = ? ORDER BY title", courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Resource
	for rows.Next() {
		var r domain.Resource
		if err := rows.Scan(&r.ID, &r.CourseID, &r.Title, &r.URL, &r.Kind); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// SaveResource persists a Resource.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) SaveResource(ctx context.Context, r domain.Resource) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO resource (id, course_id, title, url, kind) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET title=excluded.title, url=excluded.url, kind=excluded.kind`,
		r.ID, r.CourseID, r.Title, r.URL, r.Kind)
	return err
}

// ListAssignments retrieves a course's assignments.
// PRE: courseID is non-empty
// POST: Returns matching assignments
func (s *SQLiteStore) ListAssignments(ctx context.Context, courseID string) ([]domain.Assignment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, course_id, title, description, due_at FROM assignment WHERE course_id = ? ORDER BY due_at", courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		var dueAt sql.NullString
		if err := rows.Scan(&a.ID, &a.CourseID, &a.Title, &a.Description, &dueAt); err != nil {
			return nil, err
		}
		if dueAt.Valid && dueAt.String != "" {
			a.DueAt, _ = time.Parse(dateLayout, dueAt.String)
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

// SaveAssignment persists an Assignment.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) SaveAssignment(ctx context.Context, a domain.Assignment) error {
	dueAt := ""
	if !a.DueAt.IsZero() {
		dueAt = a.DueAt.Format(dateLayout)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assignment (id, course_id, title, description, due_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET title=excluded.title, description=excluded.description, due_at=excluded.due_at`,
		a.ID, a.CourseID, a.Title, a.Description, dueAt)
	return err
}

func buildWhere(filter ListFilter) (string, []any) {
	var clauses []string
	var args []any
	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Difficulty != "" {
		clauses = append(clauses, "difficulty = ?")
		args = append(args, filter.Difficulty)
	}
	if filter.Search != "" {
		clauses = append(clauses, "(title LIKE ? COLLATE NOCASE OR category LIKE ? COLLATE NOCASE)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}

func scanCourse(scan func(dest ...any) error) (domain.Course, error) {
	var c domain.Course
	var createdAt string
	err := scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.Difficulty, &c.PriceCents, &c.Rating, &c.Students, &createdAt)
	if err != nil {
		return domain.Course{}, err
	}
	c.CreatedAt, _ = time.Parse(dateLayout, createdAt)
	return c, nil
}
