package table

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	input := "canvas_id,git_id,email\nalice,agit,alice@uni.edu\nbob,bgit,bob@uni.edu\n"

	tbl, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	wantColumns := []string{"canvas_id", "git_id", "email"}
	if diff := cmp.Diff(wantColumns, tbl.Columns()); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	wantRows := []Row{
		{"canvas_id": "alice", "git_id": "agit", "email": "alice@uni.edu"},
		{"canvas_id": "bob", "git_id": "bgit", "email": "bob@uni.edu"},
	}
	if diff := cmp.Diff(wantRows, tbl.Rows()); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EmptyStream(t *testing.T) {
	tbl, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !tbl.Empty() {
		t.Error("expected empty table")
	}
	if len(tbl.Columns()) != 0 {
		t.Errorf("expected no columns, got %v", tbl.Columns())
	}
}

func TestLoad_RaggedRows(t *testing.T) {
	input := "canvas_id,git_id\nalice,agit\nbob\n"

	_, err := Load(strings.NewReader(input))
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *FormatError, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	original := New(
		[]string{"canvas_id", "git_id", "name"},
		Row{"canvas_id": "alice", "git_id": "agit", "name": "Alice A."},
		Row{"canvas_id": "bob", "git_id": "bgit", "name": "Bob, the B."},
		Row{"canvas_id": "carol", "git_id": "", "name": ""},
	)

	var buf bytes.Buffer
	if err := original.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(original.Columns(), loaded.Columns()); diff != "" {
		t.Errorf("columns not preserved (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(original.Rows(), loaded.Rows()); diff != "" {
		t.Errorf("rows not preserved (-want +got):\n%s", diff)
	}
}

func TestWrite_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := New(nil).Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty table, got %q", buf.String())
	}
}

func TestWriteFile_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.csv")

	tbl := New(
		[]string{"canvas_id", "git_id"},
		Row{"canvas_id": "alice", "git_id": "agit"},
	)
	if err := tbl.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if diff := cmp.Diff(tbl.Rows(), loaded.Rows()); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_FormatErrorCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("a,b\nonly-one-field\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *FormatError, got %v", err)
	}
	if ferr.Path != path {
		t.Errorf("expected path %q in error, got %q", path, ferr.Path)
	}
}

func TestRows_Restartable(t *testing.T) {
	tbl := New(
		[]string{"canvas_id", "git_id"},
		Row{"canvas_id": "alice", "git_id": "agit"},
		Row{"canvas_id": "bob", "git_id": "bgit"},
	)

	first := 0
	for range tbl.Rows() {
		first++
	}
	second := 0
	for range tbl.Rows() {
		second++
	}

	if first != 2 || second != 2 {
		t.Errorf("expected 2 rows on both passes, got %d then %d", first, second)
	}
}

func TestHasColumn(t *testing.T) {
	tbl := New([]string{"canvas_id", "git_id"})
	if !tbl.HasColumn("git_id") {
		t.Error("expected git_id column")
	}
	if tbl.HasColumn("email") {
		t.Error("did not expect email column")
	}
}

func TestUnique(t *testing.T) {
	type section struct {
		ID   int
		Name string
	}

	sections := []section{
		{1, "Monday"},
		{2, "Tuesday"},
		{1, "Monday again"},
		{3, "Friday"},
		{2, "Tuesday again"},
	}

	got := Unique(sections, func(s section) int { return s.ID })
	want := []section{{1, "Monday"}, {2, "Tuesday"}, {3, "Friday"}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unique mismatch (-want +got):\n%s", diff)
	}
}

func TestUnique_Empty(t *testing.T) {
	got := Unique(nil, func(s string) string { return s })
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
