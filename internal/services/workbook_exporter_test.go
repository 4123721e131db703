package services

import (
	"bytes"
	"testing"

	"github.com/alimgiray/repodigest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportWorkbook(t *testing.T) {
	record := &models.ReducedRecord{
		Repository: "octo/demo",
		BasicInfo:  models.BasicInfo{FullName: "octo/demo", Stars: 42, Language: "Go"},
		Issues: []models.Issue{
			{Number: 7, Title: "Crash", State: "open", Author: "alice", Labels: []string{"bug", "p1"}},
		},
		Releases: []models.Release{{TagName: "v1.2.0", Name: "Minor", Author: "bob"}},
		Stats:    models.Stats{TotalIssues: 1, TotalReleases: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportWorkbook(record, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Issues", "Releases"}, f.GetSheetList())

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"Field", "Value"}, summary[0])
	assert.Equal(t, []string{"Repository", "octo/demo"}, summary[1])

	stars, err := f.GetCellValue("Summary", "B7")
	require.NoError(t, err)
	assert.Equal(t, "42", stars)

	issues, err := f.GetRows("Issues")
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "Number", issues[0][0])
	assert.Equal(t, "7", issues[1][0])
	assert.Equal(t, "Crash", issues[1][1])
	assert.Equal(t, "bug, p1", issues[1][6])

	releases, err := f.GetRows("Releases")
	require.NoError(t, err)
	require.Len(t, releases, 2)
	assert.Equal(t, "v1.2.0", releases[1][0])
}

func TestExportWorkbookEmptyRecord(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportWorkbook(nil, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	issues, err := f.GetRows("Issues")
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}
