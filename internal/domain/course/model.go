package course

import (
	"errors"
	"strings"
	"time"
)

// Difficulty constants
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// ValidDifficulties contains all valid difficulty values.
var ValidDifficulties = []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// Resource kind constants
const (
	ResourceKindLink     = "link"
	ResourceKindDocument = "document"
	ResourceKindVideo    = "video"
)

// Domain errors
var (
	ErrEmptyTitle        = errors.New("course title cannot be empty")
	ErrInvalidDifficulty = errors.New("difficulty must be beginner, intermediate or advanced")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrInvalidRating     = errors.New("rating must be between 0 and 5")
	ErrEmptyCourseID     = errors.New("course id cannot be empty")
)

// Course is a catalog document: the marketplace projection and the course pages
// read it, the enrollment orchestrators bump its student count.
type Course struct {
	ID          string
	Title       string
	Description string // markdown, rendered at the HTTP layer
	Category    string
	Difficulty  string
	PriceCents  int // 0 means free
	Rating      float64
	Students    int // enrolled-student counter, denormalized
	CreatedAt   time.Time
}

// Lesson is one unit of course content.
type Lesson struct {
	ID              string
	CourseID        string
	Title           string
	Notes           string // markdown lesson notes
	DurationMinutes int
	Position        int
}

// Resource is supplementary course material.
type Resource struct {
	ID       string
	CourseID string
	Title    string
	URL      string
	Kind     string // link, document, video
}

// Assignment is graded course work with an optional due date.
type Assignment struct {
	ID          string
	CourseID    string
	Title       string
	Description string
	DueAt       time.Time // zero means no due date
}

// Validate checks if the Course has valid data.
// PRE: Course struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Course) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrEmptyCourseID
	}
	if strings.TrimSpace(c.Title) == "" {
		return ErrEmptyTitle
	}
	if !isValidDifficulty(c.Difficulty) {
		return ErrInvalidDifficulty
	}
	if c.PriceCents < 0 {
		return ErrNegativePrice
	}
	if c.Rating < 0 || c.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// IsFree reports whether the course costs nothing to enroll in.
func (c *Course) IsFree() bool {
	return c.PriceCents == 0
}

// Validate checks if the Lesson has valid data.
func (l *Lesson) Validate() error {
	if strings.TrimSpace(l.CourseID) == "" {
		return ErrEmptyCourseID
	}
	if strings.TrimSpace(l.Title) == "" {
		return errors.New("lesson title cannot be empty")
	}
	if l.DurationMinutes < 0 {
		return errors.New("lesson duration cannot be negative")
	}
	return nil
}

func isValidDifficulty(d string) bool {
	for _, v := range ValidDifficulties {
		if v == d {
			return true
		}
	}
	return false
}
