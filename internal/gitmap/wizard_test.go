package gitmap

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canvasbee/internal/canvas"
	"canvasbee/internal/table"
	"canvasbee/internal/tui"
)

// scriptedPrompter answers prompts from a fixed script.
type scriptedPrompter struct {
	selected    string
	multi       []string
	selects     int
	multiSelect int
}

func (p *scriptedPrompter) Select(prompt string, choices []string) (string, error) {
	p.selects++
	return p.selected, nil
}

func (p *scriptedPrompter) MultiSelect(prompt string, choices []string) ([]string, error) {
	p.multiSelect++
	return p.multi, nil
}

func (p *scriptedPrompter) Input(prompt, suggestion string) (string, error) { return suggestion, nil }
func (p *scriptedPrompter) Password(prompt string) (string, error)          { return "", nil }
func (p *scriptedPrompter) Confirm(prompt string) (bool, error)             { return true, nil }

func TestTableWizard(t *testing.T) {
	tui.SetOutput(&bytes.Buffer{})
	t.Cleanup(func() { tui.SetOutput(os.Stdout) })

	students := []canvas.User{
		{ID: 1, Name: "Alice A.", LoginID: "alice", Email: "alice@uni.edu"},
		{ID: 2, Name: "Bob B.", LoginID: "bob", Email: "bob@uni.edu"},
	}
	prompter := &scriptedPrompter{selected: "email", multi: []string{"name"}}

	tbl, err := TableWizard("Programming 101", students, prompter)
	require.NoError(t, err)

	assert.Equal(t, []string{ColumnCanvasID, ColumnGitID, "name"}, tbl.Columns())
	require.Equal(t, 2, tbl.Len())

	rows := tbl.Rows()
	assert.Equal(t, table.Row{ColumnCanvasID: "alice", ColumnGitID: "alice@uni.edu", "name": "Alice A."}, rows[0])
	assert.Equal(t, table.Row{ColumnCanvasID: "bob", ColumnGitID: "bob@uni.edu", "name": "Bob B."}, rows[1])

	assert.Equal(t, 1, prompter.selects)
	assert.Equal(t, 1, prompter.multiSelect)
}

func TestTableWizard_AbsentFieldsBecomeBlank(t *testing.T) {
	tui.SetOutput(&bytes.Buffer{})

	students := []canvas.User{
		{ID: 1, Name: "No Login", Email: "nl@uni.edu"},
	}
	prompter := &scriptedPrompter{selected: "sis_user_id", multi: []string{"short_name"}}

	tbl, err := TableWizard("Programming 101", students, prompter)
	require.NoError(t, err)

	row := tbl.Rows()[0]
	assert.Equal(t, "", row[ColumnCanvasID], "missing login_id is data, not a fault")
	assert.Equal(t, "", row[ColumnGitID])
	assert.Equal(t, "", row["short_name"])
}

func TestTableWizard_EmptyRosterShortCircuits(t *testing.T) {
	tui.SetOutput(&bytes.Buffer{})

	prompter := &scriptedPrompter{selected: "email"}
	tbl, err := TableWizard("Ghost Course", nil, prompter)
	require.NoError(t, err)

	assert.True(t, tbl.Empty())
	assert.Zero(t, prompter.selects, "wizard must not prompt for an empty roster")
	assert.Zero(t, prompter.multiSelect)
}

func TestTableWizard_DeduplicatesStudents(t *testing.T) {
	tui.SetOutput(&bytes.Buffer{})

	students := []canvas.User{
		{ID: 1, LoginID: "alice", Email: "alice@uni.edu"},
		{ID: 1, LoginID: "alice", Email: "alice@uni.edu"},
		{ID: 2, LoginID: "bob", Email: "bob@uni.edu"},
	}
	prompter := &scriptedPrompter{selected: "email"}

	tbl, err := TableWizard("Programming 101", students, prompter)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
}
