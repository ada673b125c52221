package route

import (
	"strings"
)

// Context identifies which navigation context a path belongs to.
type Context string

// Context constants
const (
	ContextNone      Context = ""
	ContextDashboard Context = "dashboard"
	ContextCourse    Context = "course"
)

// CourseSections are the sub-pages a course route may address (two-segment form).
var CourseSections = []string{
	"details", "lessons", "resources", "discussions", "analytics", "assignments", "notes",
}

// CourseOnlySections are section names that, as a single segment, always mean a
// course route resolved against the ambient course id. They never appear in the
// dashboard section enumeration, so the two sets cannot collide.
var CourseOnlySections = []string{
	"lessons", "resources", "discussions", "assignments", "notes",
}

// DashboardSections are the account-scoped panels.
var DashboardSections = []string{
	"overview", "progress", "programs", "marketplace", "tasks", "profile",
	"settings", "payment", "help", "community", "credentials", "subscriptions",
}

// reservedFirstSegments are names that can never be a course id in the
// two-segment form. A course id is otherwise an arbitrary string, so the
// reserved set is what keeps the shape-based check unambiguous.
var reservedFirstSegments = buildReservedSet()

func buildReservedSet() map[string]bool {
	set := make(map[string]bool, len(DashboardSections)+4)
	for _, s := range DashboardSections {
		set[s] = true
	}
	for _, s := range []string{"login", "register", "course", "dashboard"} {
		set[s] = true
	}
	return set
}

// Ambient carries the session state the classifier may consult. It is passed
// explicitly; the classifier holds no package-level state.
type Ambient struct {
	CourseID      string // active course id recovered from the session, if any
	UserID        string // full account id of the signed-in user, if any
	Authenticated bool
}

// Classification is the result of classifying a path. At most one of
// dashboard/course context is set; CanonicalPath is the normalized form the
// history rewriter should converge to.
type Classification struct {
	Context         Context
	CourseID        string // set only for course context
	Section         string // section name for both contexts
	CanonicalPath   string
	RedirectToLogin bool // the path requires a signed-in user and none is present
}

// shortIDLength is the number of leading characters of a full account id
// rendered in URLs.
const shortIDLength = 6

// ShortUserID returns the upper-cased first six characters of a full account id.
// Shorter ids are upper-cased whole.
func ShortUserID(uid string) string {
	if len(uid) > shortIDLength {
		uid = uid[:shortIDLength]
	}
	return strings.ToUpper(uid)
}

// MatchesShortUserID reports whether short is the short form of fullUID.
// The comparison is case-insensitive; an empty fullUID never matches.
func MatchesShortUserID(fullUID, short string) bool {
	if fullUID == "" || short == "" {
		return false
	}
	return strings.EqualFold(ShortUserID(fullUID), short)
}

// CanonicalCoursePath builds the canonical two-segment course form.
func CanonicalCoursePath(courseID, section string) string {
	return "/" + courseID + "/" + section
}

// CanonicalDashboardPath builds the canonical dashboard form. When a user id is
// known the path carries the acct_ prefix; otherwise it is the bare section.
func CanonicalDashboardPath(section, userID string) string {
	if userID == "" {
		return "/" + section
	}
	return "/acct_" + ShortUserID(userID) + "/" + section
}

// Classify inspects a URL path and ambient session state and decides which
// context the path belongs to, which identifier it encodes, and what canonical
// path should replace it. Rules are checked in priority order; the first match
// wins. Paths that match nothing are left untouched (ContextNone with the
// input path echoed back).
func Classify(pathname string, ambient Ambient) Classification {
	segs := splitPath(pathname)

	switch len(segs) {
	case 2:
		// Two-segment course form: the shape (reserved section name in second
		// position, non-reserved first segment) dominates any ambiguity about
		// what strings can be course ids.
		if containsSection(CourseSections, segs[1]) && !reservedFirstSegments[segs[0]] && !strings.HasPrefix(segs[0], "acct_") {
			return courseClassification(segs[0], segs[1], ambient)
		}
		// Legacy /course/{id}
		if segs[0] == "course" {
			return courseClassification(segs[1], "details", ambient)
		}
		// Legacy /{id}/course
		if segs[1] == "course" && !reservedFirstSegments[segs[0]] && !strings.HasPrefix(segs[0], "acct_") {
			return courseClassification(segs[0], "details", ambient)
		}
		// Account-prefixed dashboard form: /acct_{short}/{section}. A stale or
		// mismatched short id is silently corrected in the canonical path.
		if short, ok := strings.CutPrefix(segs[0], "acct_"); ok && containsSection(DashboardSections, segs[1]) {
			_ = short // mismatch is cosmetic only; the canonical form always uses the real id
			return dashboardClassification(segs[1], ambient)
		}

	case 1:
		// Course-only single-segment form needs an ambient course id. Without
		// one classification fails open: the path is left untouched and the
		// caller may run its own fallback resolution.
		if containsSection(CourseOnlySections, segs[0]) {
			if ambient.CourseID == "" {
				return Classification{Context: ContextNone, CanonicalPath: pathname}
			}
			return courseClassification(ambient.CourseID, segs[0], ambient)
		}
		if containsSection(DashboardSections, segs[0]) {
			return dashboardClassification(segs[0], ambient)
		}
	}

	return Classification{Context: ContextNone, CanonicalPath: pathname}
}

func courseClassification(courseID, section string, ambient Ambient) Classification {
	if !ambient.Authenticated {
		return Classification{
			Context:         ContextCourse,
			CourseID:        courseID,
			Section:         section,
			CanonicalPath:   "/login",
			RedirectToLogin: true,
		}
	}
	return Classification{
		Context:       ContextCourse,
		CourseID:      courseID,
		Section:       section,
		CanonicalPath: CanonicalCoursePath(courseID, section),
	}
}

func dashboardClassification(section string, ambient Ambient) Classification {
	if !ambient.Authenticated {
		return Classification{
			Context:         ContextDashboard,
			Section:         section,
			CanonicalPath:   "/login",
			RedirectToLogin: true,
		}
	}
	return Classification{
		Context:       ContextDashboard,
		Section:       section,
		CanonicalPath: CanonicalDashboardPath(section, ambient.UserID),
	}
}

// splitPath splits a pathname into its non-empty segments.
func splitPath(pathname string) []string {
	trimmed := strings.Trim(pathname, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func containsSection(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
