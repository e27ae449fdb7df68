// Package gitmap maps student identities between Canvas and Git.
//
// The CanvasGitMap is built from a table with at least the two columns
// "canvas_id" and "git_id" and answers lookups in both directions. A map is
// valid when every participating row has both ids and both ids are unique
// across the table; validation happens entirely at construction time, so a
// constructed map can be trusted during roster generation.
package gitmap

import (
	"fmt"

	"canvasbee/internal/table"
)

// Column names of the persisted mapping table. They are written to the
// mapping CSV, so they cannot change without a migration.
const (
	ColumnCanvasID = "canvas_id"
	ColumnGitID    = "git_id"
)

// DefaultFilename is the conventional name of the mapping CSV in a course
// directory.
const DefaultFilename = "canvas-git-map.csv"

// Domain names one of the two identifier spaces, for error messages.
type Domain string

const (
	DomainCanvas Domain = "Canvas"
	DomainGit    Domain = "Git"
)

// EmptyIDError reports a row with an id on one side only. Such a row wants
// to participate in the mapping but cannot; it has to be completed or
// blanked out entirely before the table is usable.
type EmptyIDError struct {
	Domain Domain
	Row    int
}

func (e *EmptyIDError) Error() string {
	return fmt.Sprintf("the %s ID cannot be empty (row %d)", e.Domain, e.Row+1)
}

// DuplicateIDError reports an id that occurs in more than one row.
type DuplicateIDError struct {
	Domain Domain
	ID     string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("the %s ID %q is not unique", e.Domain, e.ID)
}

// NotMappedError reports a lookup for an id the table does not contain.
type NotMappedError struct {
	Domain Domain
	ID     string
}

func (e *NotMappedError) Error() string {
	other := DomainGit
	if e.Domain == DomainGit {
		other = DomainCanvas
	}
	return fmt.Sprintf("%s ID %q not mapped to a %s ID", e.Domain, e.ID, other)
}

// CanvasGitMap converts Canvas IDs to Git IDs and back. Immutable once
// constructed; safe for unsynchronized concurrent reads.
type CanvasGitMap struct {
	table      *table.Table
	canvas2git map[string]string
	git2canvas map[string]string
}

// New builds the two lookup indexes from a mapping table, validating every
// row in order. Rows with both ids blank are "not yet mapped" and skipped;
// a row with exactly one blank id, or a duplicate id on either side, rejects
// the whole table. No partial map is ever returned.
func New(t *table.Table) (*CanvasGitMap, error) {
	if !t.Empty() {
		for _, column := range []string{ColumnCanvasID, ColumnGitID} {
			if !t.HasColumn(column) {
				return nil, &table.FormatError{Err: fmt.Errorf("missing required column %q", column)}
			}
		}
	}

	m := &CanvasGitMap{
		table:      t,
		canvas2git: make(map[string]string, t.Len()),
		git2canvas: make(map[string]string, t.Len()),
	}

	for i, row := range t.Rows() {
		canvasID := row[ColumnCanvasID]
		gitID := row[ColumnGitID]

		if canvasID == "" && gitID == "" {
			continue
		}
		if canvasID == "" {
			return nil, &EmptyIDError{Domain: DomainCanvas, Row: i}
		}
		if gitID == "" {
			return nil, &EmptyIDError{Domain: DomainGit, Row: i}
		}
		if _, ok := m.canvas2git[canvasID]; ok {
			return nil, &DuplicateIDError{Domain: DomainCanvas, ID: canvasID}
		}
		if _, ok := m.git2canvas[gitID]; ok {
			return nil, &DuplicateIDError{Domain: DomainGit, ID: gitID}
		}

		m.canvas2git[canvasID] = gitID
		m.git2canvas[gitID] = canvasID
	}

	return m, nil
}

// LoadFile reads a mapping CSV and constructs the map from it.
func LoadFile(path string) (*CanvasGitMap, error) {
	t, err := table.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(t)
}

// Canvas2Git converts a Canvas ID to the corresponding Git ID. A miss is an
// error, never an empty result: a student known to Canvas but absent from
// the map is a data-integrity gap the operator has to close.
func (m *CanvasGitMap) Canvas2Git(canvasID string) (string, error) {
	gitID, ok := m.canvas2git[canvasID]
	if !ok {
		return "", &NotMappedError{Domain: DomainCanvas, ID: canvasID}
	}
	return gitID, nil
}

// Git2Canvas converts a Git ID to the corresponding Canvas ID.
func (m *CanvasGitMap) Git2Canvas(gitID string) (string, error) {
	canvasID, ok := m.git2canvas[gitID]
	if !ok {
		return "", &NotMappedError{Domain: DomainGit, ID: gitID}
	}
	return canvasID, nil
}

// Table returns the table the map was constructed from.
func (m *CanvasGitMap) Table() *table.Table { return m.table }

// IncompleteRows returns the rows of a mapping table that do not yet
// participate in the mapping because one or both ids are blank. Wizard
// output legitimately contains such rows; they have to be curated before
// the table can serve a roster.
func IncompleteRows(t *table.Table) []table.Row {
	var incomplete []table.Row
	for _, row := range t.Rows() {
		if row[ColumnCanvasID] == "" || row[ColumnGitID] == "" {
			incomplete = append(incomplete, row)
		}
	}
	return incomplete
}
