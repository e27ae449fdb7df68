package roster

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canvasbee/internal/canvas"
	"canvasbee/internal/gitmap"
	"canvasbee/internal/table"
)

func testMapping(t *testing.T, pairs ...string) *gitmap.CanvasGitMap {
	t.Helper()

	rows := make([]table.Row, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		rows = append(rows, table.Row{
			gitmap.ColumnCanvasID: pairs[i],
			gitmap.ColumnGitID:    pairs[i+1],
		})
	}

	m, err := gitmap.New(table.New([]string{gitmap.ColumnCanvasID, gitmap.ColumnGitID}, rows...))
	require.NoError(t, err)
	return m
}

func individual(loginID string) canvas.Submission {
	return &canvas.IndividualSubmission{Submitter: canvas.User{LoginID: loginID}}
}

func group(name string, loginIDs ...string) canvas.Submission {
	members := make([]canvas.User, 0, len(loginIDs))
	for _, id := range loginIDs {
		members = append(members, canvas.User{LoginID: id})
	}
	return &canvas.GroupSubmission{Group: canvas.Group{Name: name, Members: members}}
}

// Individual assignment, three submissions, all mapped: three single-token
// lines in submission order.
func TestBuild_IndividualAssignment(t *testing.T) {
	m := testMapping(t, "alice", "agit", "bob", "bgit", "carol", "cgit")
	a := &canvas.Assignment{
		Name:        "homework 1",
		Submissions: []canvas.Submission{individual("bob"), individual("alice"), individual("carol")},
	}

	r, err := Build(a, m, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"bgit", "agit", "cgit"}, r.Lines)
	assert.Nil(t, r.Report, "individual assignments have no coverage report")
}

// Group assignment fully covered by groups: one line per group, members
// space-joined in group order, no inconsistency.
func TestBuild_GroupAssignmentFullCoverage(t *testing.T) {
	m := testMapping(t, "a", "ag", "b", "bg", "c", "cg", "d", "dg", "e", "eg")
	a := &canvas.Assignment{
		Name:            "project",
		GroupCategoryID: 7,
		Submissions: []canvas.Submission{
			group("team 1", "a", "b"),
			group("team 2", "c", "d"),
			group("team 3", "e"),
		},
	}

	for _, includeGroupless := range []bool{false, true} {
		r, err := Build(a, m, includeGroupless)
		require.NoError(t, err)

		assert.Equal(t, []string{"ag bg", "cg dg", "eg"}, r.Lines,
			"full coverage must behave identically regardless of the groupless policy")
		require.NotNil(t, r.Report)
		assert.False(t, r.Report.Partial())
	}
}

// Group assignment with partial coverage, groupless excluded: the
// ungrouped submission is dropped but reported.
func TestBuild_PartialCoverageExcluded(t *testing.T) {
	m := testMapping(t, "a", "ag", "b", "bg", "c", "cg", "d", "dg", "e", "eg")
	a := &canvas.Assignment{
		Name:            "project",
		GroupCategoryID: 7,
		Submissions: []canvas.Submission{
			group("team 1", "a", "b"),
			individual("e"),
			group("team 2", "c", "d"),
		},
	}

	r, err := Build(a, m, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"ag bg", "cg dg"}, r.Lines)
	require.NotNil(t, r.Report)
	assert.True(t, r.Report.Partial())
	assert.False(t, r.Report.GrouplessIncluded)
	assert.Contains(t, r.Report.Message(), "NOT included")
}

// Same as above with groupless included: the individual submission keeps
// its place in submission order.
func TestBuild_PartialCoverageIncluded(t *testing.T) {
	m := testMapping(t, "a", "ag", "b", "bg", "c", "cg", "d", "dg", "e", "eg")
	a := &canvas.Assignment{
		Name:            "project",
		GroupCategoryID: 7,
		Submissions: []canvas.Submission{
			group("team 1", "a", "b"),
			individual("e"),
			group("team 2", "c", "d"),
		},
	}

	r, err := Build(a, m, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"ag bg", "eg", "cg dg"}, r.Lines)
	require.NotNil(t, r.Report)
	assert.True(t, r.Report.Partial())
	assert.True(t, r.Report.GrouplessIncluded)
	assert.Contains(t, r.Report.Message(), "are included")
}

func TestBuild_GroupAssignmentWithoutGroupSubmissions(t *testing.T) {
	m := testMapping(t, "a", "ag")
	a := &canvas.Assignment{
		Name:            "project",
		GroupCategoryID: 7,
		Submissions:     []canvas.Submission{individual("a")},
	}

	_, err := Build(a, m, true)

	var precondition *PreconditionError
	require.ErrorAs(t, err, &precondition)
	assert.Contains(t, precondition.Error(), "prepare-assignment")
}

func TestBuild_UnmappedSubmitterAborts(t *testing.T) {
	m := testMapping(t, "alice", "agit")
	a := &canvas.Assignment{
		Name:        "homework 1",
		Submissions: []canvas.Submission{individual("alice"), individual("mallory")},
	}

	_, err := Build(a, m, false)

	var notMapped *gitmap.NotMappedError
	require.ErrorAs(t, err, &notMapped)
	assert.Equal(t, "mallory", notMapped.ID)
}

func TestBuild_UnmappedGroupMemberAborts(t *testing.T) {
	m := testMapping(t, "a", "ag", "b", "bg")
	a := &canvas.Assignment{
		Name:            "project",
		GroupCategoryID: 7,
		Submissions:     []canvas.Submission{group("team 1", "a", "ghost", "b")},
	}

	_, err := Build(a, m, false)

	var notMapped *gitmap.NotMappedError
	require.ErrorAs(t, err, &notMapped)
	assert.Equal(t, "ghost", notMapped.ID)
}

func TestRoster_Write(t *testing.T) {
	r := &Roster{Lines: []string{"ag bg", "cg"}}

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	assert.Equal(t, "ag bg\ncg\n", buf.String())
}

func TestCreateStudentsFile(t *testing.T) {
	m := testMapping(t, "alice", "agit", "bob", "bgit")
	a := &canvas.Assignment{
		Name:        "homework 1",
		Submissions: []canvas.Submission{individual("alice"), individual("bob")},
	}

	path := filepath.Join(t.TempDir(), "students.lst")
	report, err := CreateStudentsFile(a, m, path, false)
	require.NoError(t, err)
	assert.Nil(t, report)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "agit\nbgit\n", string(data))
}

// A failed build must leave no file behind: a partial roster is worse than
// none.
func TestCreateStudentsFile_NoPartialFileOnError(t *testing.T) {
	m := testMapping(t, "alice", "agit")
	a := &canvas.Assignment{
		Name:        "homework 1",
		Submissions: []canvas.Submission{individual("alice"), individual("mallory")},
	}

	path := filepath.Join(t.TempDir(), "students.lst")
	_, err := CreateStudentsFile(a, m, path, false)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no output file may exist after a failed build")
}

func TestCreateStudentsFile_PreconditionWritesNothing(t *testing.T) {
	m := testMapping(t, "a", "ag")
	a := &canvas.Assignment{
		Name:            "project",
		GroupCategoryID: 7,
		Submissions:     []canvas.Submission{individual("a")},
	}

	path := filepath.Join(t.TempDir(), "students.lst")
	_, err := CreateStudentsFile(a, m, path, true)

	var precondition *PreconditionError
	require.ErrorAs(t, err, &precondition)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
