// Package roster turns an assignment's submissions into the students file:
// one line per submission in scope, an individual Git ID or the
// space-joined Git IDs of a group. Resolution goes through the Canvas-Git
// map and fails hard on any student the map does not know; a roster with a
// silently missing student is worse than no roster.
package roster

import (
	"fmt"
	"io"
	"os"
	"strings"

	"canvasbee/internal/canvas"
	"canvasbee/internal/gitmap"
)

// PreconditionError reports a group assignment without a single group
// submission. Canvas only attaches submissions to groups after the first
// comment or hand-in, so a fresh group assignment has to be initialized
// before a roster can be built from it.
type PreconditionError struct {
	Assignment string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("no group submissions found for group assignment %q: "+
		"run 'canvasbee prepare-assignment' to initialize the submissions, "+
		"or configure the assignment as an individual assignment", e.Assignment)
}

// Report describes group coverage of a group assignment's submissions.
// Partial coverage is not an error; whether the uncovered students end up
// in the roster is the include-groupless policy's call, but the operator is
// always told.
type Report struct {
	Submissions       int
	GroupSubmissions  int
	GrouplessIncluded bool
}

// Partial reports whether some students have not been placed in a group.
func (r *Report) Partial() bool {
	return r.GroupSubmissions > 0 && r.GroupSubmissions < r.Submissions
}

// Message renders the operator warning for a partial report.
func (r *Report) Message() string {
	msg := fmt.Sprintf("the number of group submissions (%d) is smaller than "+
		"the number of submissions (%d), so not all students in this "+
		"assignment are assigned to a group. ",
		r.GroupSubmissions, r.Submissions)

	if r.GrouplessIncluded {
		return msg + "These groupless students are included in the students file."
	}
	return msg + "These groupless students are NOT included in the students file. " +
		"Use --include-groupless to include them."
}

// Roster is the reconciled students file content: lines in submission
// order, plus the coverage report for group assignments (nil otherwise).
type Roster struct {
	Lines  []string
	Report *Report
}

// Build reconciles an assignment's submissions against the mapping.
//
// Group submissions always contribute a line; individual submissions
// contribute one when the assignment is individual or the operator asked
// for groupless students explicitly. Every participating student must
// resolve through the map or the whole build fails.
func Build(a *canvas.Assignment, m *gitmap.CanvasGitMap, includeGroupless bool) (*Roster, error) {
	includeGroupless = !a.IsGroupAssignment() || includeGroupless

	groupSubmissions := 0
	for _, s := range a.Submissions {
		if _, ok := s.(*canvas.GroupSubmission); ok {
			groupSubmissions++
		}
	}

	roster := &Roster{}
	if a.IsGroupAssignment() {
		if groupSubmissions == 0 {
			return nil, &PreconditionError{Assignment: a.Name}
		}
		roster.Report = &Report{
			Submissions:       len(a.Submissions),
			GroupSubmissions:  groupSubmissions,
			GrouplessIncluded: includeGroupless,
		}
	}

	for _, submission := range a.Submissions {
		switch s := submission.(type) {
		case *canvas.GroupSubmission:
			ids := make([]string, 0, len(s.Group.Members))
			for _, member := range s.Group.Members {
				gitID, err := m.Canvas2Git(member.LoginID)
				if err != nil {
					return nil, fmt.Errorf("cannot resolve member %q of group %q: %w", member.LoginID, s.Group.Name, err)
				}
				ids = append(ids, gitID)
			}
			roster.Lines = append(roster.Lines, strings.Join(ids, " "))

		case *canvas.IndividualSubmission:
			if !includeGroupless {
				continue
			}
			gitID, err := m.Canvas2Git(s.Submitter.LoginID)
			if err != nil {
				return nil, fmt.Errorf("cannot resolve submitter %q: %w", s.Submitter.LoginID, err)
			}
			roster.Lines = append(roster.Lines, gitID)

		default:
			return nil, fmt.Errorf("unknown submission shape %T", submission)
		}
	}

	return roster, nil
}

// Write emits the roster lines, newline-terminated, in order.
func (r *Roster) Write(w io.Writer) error {
	for _, line := range r.Lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile regenerates the students file at path in full.
func (r *Roster) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// CreateStudentsFile builds the roster and writes it to path. When the
// build fails nothing is written: the previous students file, if any, stays
// untouched. The returned report is non-nil for group assignments.
func CreateStudentsFile(a *canvas.Assignment, m *gitmap.CanvasGitMap, path string, includeGroupless bool) (*Report, error) {
	roster, err := Build(a, m, includeGroupless)
	if err != nil {
		return nil, err
	}
	if err := roster.WriteFile(path); err != nil {
		return roster.Report, err
	}
	return roster.Report, nil
}
