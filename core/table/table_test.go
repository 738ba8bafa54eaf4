package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/issueboss/core"
	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
)

func parse(t *testing.T, src string) core.Document {
	t.Helper()
	doc, err := New().Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestParse_DocumentMetadataAndIssue(t *testing.T) {
	doc := parse(t, "title = \"v1\"\n\n[\"Fix bug\"]\ndescription = \"Crashes\"\nowner = \"alice\"\n")

	require.Equal(t, core.Metadata{"title": "v1"}, doc.Metadata)
	require.Equal(t, []core.Issue{{
		Title:       "Fix bug",
		Description: "Crashes",
		Metadata:    core.Metadata{"owner": "alice"},
	}}, doc.Issues)
}

func TestParse_BareTableKey(t *testing.T) {
	doc := parse(t, "[login]\ndescription = \"Broken\"\n")

	require.Equal(t, []core.Issue{{Title: "login", Description: "Broken"}}, doc.Issues)
	require.Nil(t, doc.Metadata)
}

func TestParse_DescriptionNeverLandsInMetadata(t *testing.T) {
	for name, src := range map[string]string{
		"first": "[a]\ndescription = \"d\"\nowner = \"o\"\n",
		"last":  "[a]\nowner = \"o\"\ndescription = \"d\"\n",
		"only":  "[a]\ndescription = \"d\"\n",
	} {
		t.Run(name, func(t *testing.T) {
			doc := parse(t, src)
			require.Len(t, doc.Issues, 1)
			require.Equal(t, "d", doc.Issues[0].Description)
			_, inMeta := doc.Issues[0].Metadata["description"]
			require.False(t, inMeta)
		})
	}
}

func TestParse_DocumentMetadataNeverInIssues(t *testing.T) {
	doc := parse(t, "project = \"web\"\n[a]\ndescription = \"x\"\n[b]\ndescription = \"y\"\n")

	require.Equal(t, core.Metadata{"project": "web"}, doc.Metadata)
	for _, issue := range doc.Issues {
		require.Nil(t, issue.Metadata)
	}
}

func TestParse_IssuesInSourceOrder(t *testing.T) {
	doc := parse(t, "[zeta]\ndescription = \"1\"\n[alpha]\ndescription = \"2\"\n[mid]\ndescription = \"3\"\n")

	titles := make([]string, 0, len(doc.Issues))
	for _, issue := range doc.Issues {
		titles = append(titles, issue.Title)
	}
	require.Equal(t, []string{"zeta", "alpha", "mid"}, titles)
}

func TestParse_TableWithoutDescription(t *testing.T) {
	doc := parse(t, "[a]\nowner = \"o\"\n")

	require.Equal(t, []core.Issue{{Title: "a", Metadata: core.Metadata{"owner": "o"}}}, doc.Issues)
}

func TestParse_NonScalarEntriesAreIgnored(t *testing.T) {
	doc := parse(t, `labels = ["x", "y"]

[[milestones]]
name = "m1"

[a]
description = "d"
tags = ["bug"]

[a.sub]
owner = "nested"
`)

	require.Nil(t, doc.Metadata)
	require.Equal(t, []core.Issue{{Title: "a", Description: "d"}}, doc.Issues)
}

func TestParse_NonStringScalarIsValueError(t *testing.T) {
	for name, src := range map[string]string{
		"top-level int":    "version = 3\n",
		"issue bool":       "[a]\ndescription = \"d\"\nurgent = true\n",
		"description date": "[a]\ndescription = 2024-01-02\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := New().Parse([]byte(src))
			require.Error(t, err)
			require.True(t, errors.Is(err, ierr.ErrValue))
		})
	}
}

func TestParse_InvalidSyntaxIsFormatError(t *testing.T) {
	_, err := New().Parse([]byte("[unterminated\ndescription = \"x\"\n"))

	require.Error(t, err)
	require.True(t, errors.Is(err, ierr.ErrFormat))
}

func TestParse_UnquotedTableNameWithSpaceIsFormatError(t *testing.T) {
	_, err := New().Parse([]byte("title = \"v1\"\n\n[Fix bug]\ndescription = \"Crashes\"\nowner = \"alice\"\n"))

	require.Error(t, err)
	require.True(t, errors.Is(err, ierr.ErrFormat))
}

func TestParse_EmptyInput(t *testing.T) {
	doc := parse(t, "")

	require.Nil(t, doc.Metadata)
	require.Empty(t, doc.Issues)
}
