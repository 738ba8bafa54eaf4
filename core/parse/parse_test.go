package parse

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/issueboss/core"
	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
)

func writeSource(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestFile_MarkdownSingleIssue(t *testing.T) {
	path := writeSource(t, "issues.md", []byte("# Fix bug\nIt crashes on startup.\n"))

	doc, err := File(path, FormatAuto)
	require.NoError(t, err)
	require.Equal(t, []core.Issue{{Title: "Fix bug", Description: "It crashes on startup."}}, doc.Issues)
}

func TestFile_MarkdownBackToBackIssues(t *testing.T) {
	path := writeSource(t, "issues.md", []byte("# A\nDesc A\n\n# B\nDesc B\n"))

	doc, err := File(path, FormatAuto)
	require.NoError(t, err)
	require.Equal(t, []core.Issue{
		{Title: "A", Description: "Desc A"},
		{Title: "B", Description: "Desc B"},
	}, doc.Issues)
}

func TestFile_MarkdownTrailingHeadingDropped(t *testing.T) {
	path := writeSource(t, "issues.md", []byte("# A\nDesc A\n\n## Later\n"))

	doc, err := File(path, FormatMarkdown)
	require.NoError(t, err)
	require.Equal(t, []core.Issue{{Title: "A", Description: "Desc A"}}, doc.Issues)
}

func TestFile_MarkdownFrontMatter(t *testing.T) {
	src := "---\nrelease: v1\n---\n# A\nmultiple\nlines\n"
	path := writeSource(t, "issues.md", []byte(src))

	doc, err := File(path, FormatAuto)
	require.NoError(t, err)
	require.Equal(t, core.Metadata{"release": "v1"}, doc.Metadata)
	require.Equal(t, []core.Issue{{Title: "A", Description: "multiple\nlines"}}, doc.Issues)
}

func TestFile_TOMLScenario(t *testing.T) {
	src := "title = \"v1\"\n\n[\"Fix bug\"]\ndescription = \"Crashes\"\nowner = \"alice\"\n"
	path := writeSource(t, "issues.toml", []byte(src))

	doc, err := File(path, FormatAuto)
	require.NoError(t, err)
	require.Equal(t, core.Document{
		Metadata: core.Metadata{"title": "v1"},
		Issues: []core.Issue{{
			Title:       "Fix bug",
			Description: "Crashes",
			Metadata:    core.Metadata{"owner": "alice"},
		}},
	}, doc)
}

func TestFile_ExplicitFormatOverridesExtension(t *testing.T) {
	path := writeSource(t, "issues.txt", []byte("[a]\ndescription = \"d\"\n"))

	doc, err := File(path, FormatTOML)
	require.NoError(t, err)
	require.Equal(t, []core.Issue{{Title: "a", Description: "d"}}, doc.Issues)
}

func TestFile_HTML(t *testing.T) {
	page := `<html><head><title>Sprint 7</title></head><body>
<nav>skip me</nav>
<main><h1>Fix bug</h1><p>It crashes.</p><h2>Slow login</h2><p>Takes ages.</p></main>
</body></html>`
	path := writeSource(t, "issues.html", []byte(page))

	doc, err := File(path, FormatAuto)
	require.NoError(t, err)
	require.Equal(t, core.Metadata{"title": "Sprint 7"}, doc.Metadata)
	require.Equal(t, []core.Issue{
		{Title: "Fix bug", Description: "It crashes."},
		{Title: "Slow login", Description: "Takes ages."},
	}, doc.Issues)
}

func TestFile_MissingFileIsIOError(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "nope.md"), FormatAuto)

	require.Error(t, err)
	require.True(t, errors.Is(err, ierr.ErrIO))
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFile_InvalidUTF8IsIOError(t *testing.T) {
	path := writeSource(t, "issues.md", []byte{'#', ' ', 0xff, 0xfe, '\n'})

	_, err := File(path, FormatAuto)
	require.Error(t, err)
	require.True(t, errors.Is(err, ierr.ErrIO))
}

func TestFile_BadTOMLIsFormatError(t *testing.T) {
	path := writeSource(t, "issues.toml", []byte("= broken\n"))

	_, err := File(path, FormatAuto)
	require.Error(t, err)
	require.True(t, errors.Is(err, ierr.ErrFormat))
}

func TestDecode_StripsBOM(t *testing.T) {
	out, err := Decode([]byte("\xef\xbb\xbf# A\n"))
	require.NoError(t, err)
	require.Equal(t, []byte("# A\n"), out)
}

func TestDetect(t *testing.T) {
	cases := map[string]Format{
		"a.md":       FormatMarkdown,
		"a.markdown": FormatMarkdown,
		"a.TOML":     FormatTOML,
		"a.htm":      FormatHTML,
		"a.html":     FormatHTML,
		"noext":      FormatMarkdown,
	}
	for path, want := range cases {
		require.Equal(t, want, Detect(path, FormatAuto), path)
	}
	require.Equal(t, FormatTOML, Detect("a.md", FormatTOML))
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		require.Equal(t, f, got)
	}

	got, err := ParseFormat(" TOML ")
	require.NoError(t, err)
	require.Equal(t, FormatTOML, got)

	_, err = ParseFormat("docx")
	require.True(t, errors.Is(err, ierr.ErrConfig))
}

func TestFile_MarkdownEscapesAndEntities(t *testing.T) {
	path := writeSource(t, "issues.md", []byte("# Fix \\*bug\\*\nUse `a&b` \\# here &amp; there &copy;\n"))

	doc, err := File(path, FormatAuto)
	require.NoError(t, err)
	require.Equal(t, []core.Issue{{Title: "Fix *bug*", Description: "Use a&b # here & there ©"}}, doc.Issues)
}

func TestFile_UnquotedTableNameWithSpaceIsFormatError(t *testing.T) {
	path := writeSource(t, "issues.toml", []byte("title = \"v1\"\n\n[Fix bug]\ndescription = \"Crashes\"\n"))

	_, err := File(path, FormatAuto)
	require.Error(t, err)
	require.True(t, errors.Is(err, ierr.ErrFormat))
}

func TestForFormat_Unknown(t *testing.T) {
	_, err := ForFormat(Format("docx"))
	require.True(t, errors.Is(err, ierr.ErrConfig))
}
