package grading

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/gitgud/internal/foundation/errors"
)

func writeSheet(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseFile_RejectsPathWithoutMarkdownMarker(t *testing.T) {
	sheet, err := ParseFile("notes.txt")
	require.ErrorIs(t, err, ErrNotMarkdown)
	assert.Nil(t, sheet)
}

func TestParseFile_MarkerAnywhereInPath(t *testing.T) {
	path := writeSheet(t, "grades.md.bak", "### alice\nok\n")

	sheet, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, sheet.Names())
}

func TestParseFile_MissingFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.md"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestParse_Records(t *testing.T) {
	doc := "### alice\n- good tests\n- clean code\n\n### bob \n- missing README\n"

	sheet, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob"}, sheet.Names())
	assert.Equal(t, "### alice\n- good tests\n- clean code\n\n", sheet["alice"].Content)
	assert.Equal(t, "### bob \n- missing README\n", sheet["bob"].Content)
	assert.Equal(t, "alice", sheet["alice"].StudentName)
}

func TestParse_DuplicateHeaderLastWins(t *testing.T) {
	sheet, err := Parse(strings.NewReader("### alice\nA\n### alice\nB\n"))
	require.NoError(t, err)

	require.Len(t, sheet, 1)
	assert.Equal(t, "### alice\nB\n", sheet["alice"].Content)
}

func TestParse_NoHeadersIsDistinctError(t *testing.T) {
	for _, doc := range []string{"", "just notes\n## not a record\n", "###alice\n", "### \norphan\n", "### ##\n"} {
		sheet, err := Parse(strings.NewReader(doc))
		require.ErrorIs(t, err, ErrNoHeaders, "doc %q", doc)
		assert.Nil(t, sheet)
	}
}

func TestParse_NamelessHeaderDropped(t *testing.T) {
	sheet, err := Parse(strings.NewReader("### alice\nA\n### \nstray\n### bob\nB\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob"}, sheet.Names())
	assert.Equal(t, "### alice\nA\n", sheet["alice"].Content)
}

func TestParse_PreambleDiscardedAndNoTrailingNewline(t *testing.T) {
	sheet, err := Parse(strings.NewReader("# Lab 3 grading\n\n### carol\nlast line"))
	require.NoError(t, err)
	assert.Equal(t, "### carol\nlast line", sheet["carol"].Content)
}

func TestParse_HeaderNameStripsHashesAndCRLF(t *testing.T) {
	sheet, err := Parse(strings.NewReader("### dave ###\r\nok\r\n"))
	require.NoError(t, err)
	_, ok := sheet["dave"]
	assert.True(t, ok, "got names %v", sheet.Names())
	assert.Equal(t, "### dave ###\r\nok\r\n", sheet["dave"].Content)
}

func TestSheet_GetMissingIsExplicitError(t *testing.T) {
	sheet := Sheet{"alice": {StudentName: "alice", Content: "### alice\n"}}

	rec, err := sheet.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", rec.StudentName)

	_, err = sheet.Get("mallory")
	require.ErrorIs(t, err, ErrRecordNotFound)
}
