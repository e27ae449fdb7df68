package gitmap

import (
	"canvasbee/internal/canvas"
	"canvasbee/internal/table"
	"canvasbee/internal/tui"
)

// CanvasLoginField is the user field that carries the Canvas side of the
// mapping. The operator does not get to choose it; Canvas login ids are
// what submissions resolve through.
const CanvasLoginField = "login_id"

const previewRows = 5

const (
	askGitID = "Which column do you want to use as the students' " +
		"Git ID in the Canvas-Git mapping table?"
	askExtraColumns = "Which extra columns do you want to add to the " +
		"Canvas-Git mapping table?"
)

// TableWizard guides the operator through shaping a mapping table for a
// course roster: preview the available student data, pick the field that
// supplies the Git ID, pick extra descriptive columns. The resulting table
// still has to be curated by hand; Git IDs taken from Canvas data are a
// starting point, not the truth.
func TableWizard(courseName string, students []canvas.User, prompter tui.Prompter) (*table.Table, error) {
	students = table.Unique(students, func(u canvas.User) int64 { return u.ID })

	if len(students) == 0 {
		tui.Warnf("No users found for course %q. Creating an empty Canvas-Git mapping table.", courseName)
		return table.New(nil), nil
	}

	head := min(len(students), previewRows)
	shown := "all"
	if head < len(students) {
		shown = "some"
	}

	preview := make([][]string, 0, head)
	for _, student := range students[:head] {
		row := make([]string, 0, len(canvas.PublicUserFields))
		for _, field := range canvas.PublicUserFields {
			row = append(row, student.Field(field))
		}
		preview = append(preview, row)
	}

	tui.Informf("Found %d students for this course. Showing available data for %s of them:\n", len(students), shown)
	tui.Inform(tui.RenderTable(canvas.PublicUserFields, preview))
	tui.VSpace(1)
	tui.Informf("The column %q contains students' Canvas ID.", CanvasLoginField)

	gitIDField, err := prompter.Select(askGitID, canvas.PublicUserFields)
	if err != nil {
		return nil, err
	}
	extraColumns, err := prompter.MultiSelect(askExtraColumns, canvas.PublicUserFields)
	if err != nil {
		return nil, err
	}

	columns := append([]string{ColumnCanvasID, ColumnGitID}, extraColumns...)

	rows := make([]table.Row, 0, len(students))
	for _, student := range students {
		row := table.Row{
			ColumnCanvasID: student.Field(CanvasLoginField),
			ColumnGitID:    student.Field(gitIDField),
		}
		for _, column := range extraColumns {
			row[column] = student.Field(column)
		}
		rows = append(rows, row)
	}

	return table.New(columns, rows...), nil
}
