package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/alimgiray/repodigest/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	issuesSheet   = "Issues"
	releasesSheet = "Releases"
)

// ExportWorkbook writes the record as an Excel workbook with a summary, issues and releases sheet
func ExportWorkbook(record *models.ReducedRecord, w io.Writer) error {
	if record == nil {
		record = &models.ReducedRecord{}
	}

	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	info := record.BasicInfo
	stats := record.Stats
	summary := [][]interface{}{
		{"Field", "Value"},
		{"Repository", record.Repository},
		{"Description", info.Description},
		{"URL", info.URL},
		{"Language", info.Language},
		{"License", info.License},
		{"Stars", info.Stars},
		{"Forks", info.Forks},
		{"Watchers", info.Watchers},
		{"Open Issues", info.OpenIssues},
		{"Issues Fetched", stats.TotalIssues},
		{"Releases Fetched", stats.TotalReleases},
		{"Documents", stats.TotalDocuments},
		{"Workflows", stats.TotalWorkflows},
		{"README Links", stats.TotalReadmeLinks},
		{"Has README", stats.HasReadme},
		{"Has PR Template", stats.HasPRTemplate},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}

	issueRows := [][]interface{}{
		{"Number", "Title", "State", "Author", "Comments", "Reactions", "Labels", "Created", "Updated"},
	}
	for _, issue := range record.Issues {
		issueRows = append(issueRows, []interface{}{
			issue.Number, issue.Title, issue.State, issue.Author, issue.Comments,
			issue.Reactions, strings.Join(issue.Labels, ", "), issue.CreatedAt, issue.UpdatedAt,
		})
	}
	if _, err := f.NewSheet(issuesSheet); err != nil {
		return fmt.Errorf("failed to create issues sheet: %w", err)
	}
	if err := writeRows(f, issuesSheet, issueRows); err != nil {
		return err
	}

	releaseRows := [][]interface{}{
		{"Tag", "Name", "Published", "Author", "Prerelease"},
	}
	for _, release := range record.Releases {
		releaseRows = append(releaseRows, []interface{}{
			release.TagName, release.Name, release.PublishedAt, release.Author, release.Prerelease,
		})
	}
	if _, err := f.NewSheet(releasesSheet); err != nil {
		return fmt.Errorf("failed to create releases sheet: %w", err)
	}
	if err := writeRows(f, releasesSheet, releaseRows); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
