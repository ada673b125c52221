package navigation

import (
	"learnhub/internal/domain/route"
)

// Rewriter converges a session's recorded path to the canonical form a
// classification names. It replaces the recorded path rather than appending,
// so repeated rewrites of an already-canonical path change nothing.
type Rewriter struct {
	States *StateStore
}

// Apply rewrites the session's recorded path to the classification's
// canonical path and mirrors the section and course id into the state.
// Idempotent: applying the same classification twice leaves the state
// unchanged after the first application.
func (r *Rewriter) Apply(token string, c route.Classification) NavState {
	return r.States.Update(token, func(st *NavState) {
		st.Path = c.CanonicalPath
		if c.Section != "" {
			st.Section = c.Section
		}
		if c.Context == route.ContextCourse && c.CourseID != "" {
			st.CourseID = c.CourseID
		}
	})
}
