package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/model"
)

func initTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(filepath.Join(t.TempDir(), "jobs.db")))
}

func testSpec() model.UpdateJobSpec {
	return model.UpdateJobSpec{
		Export: model.Source{Type: "xlsx", URL: "export.xlsx"},
		Tags:   []model.Source{{Type: "xlsx", URL: "tags.xlsx"}},
	}
}

func TestJobLifecycle(t *testing.T) {
	initTestDB(t)

	require.NoError(t, SaveJob("job-1", testSpec()))

	job, err := GetJob("job-1")
	require.NoError(t, err)
	assert.Equal(t, "pending", job["status"])

	spec, ok := job["spec"].(model.UpdateJobSpec)
	require.True(t, ok)
	assert.Equal(t, "export.xlsx", spec.Export.URL)

	require.NoError(t, UpdateJobStatus("job-1", "completed"))
	job, err = GetJob("job-1")
	require.NoError(t, err)
	assert.Equal(t, "completed", job["status"])

	jobs, err := ListJobs()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "job-1", jobs[0]["id"])
}

func TestJobLogLinesKeepOrder(t *testing.T) {
	initTestDB(t)
	require.NoError(t, SaveJob("job-1", testSpec()))

	lines := []string{
		"Processing complete:",
		"  • Total rows processed: 2",
		"",
		"No match found for: Campaign='X', Ad Group='Y', Ad='Z'",
	}
	require.NoError(t, SaveJobLogLines("job-1", lines))

	got, err := GetJobLogLines("job-1", 100)
	require.NoError(t, err)
	assert.Equal(t, lines, got)

	// Re-saving replaces, not appends
	require.NoError(t, SaveJobLogLines("job-1", lines[:2]))
	got, err = GetJobLogLines("job-1", 100)
	require.NoError(t, err)
	assert.Equal(t, lines[:2], got)
}

func TestJobSummaryRoundTrip(t *testing.T) {
	initTestDB(t)
	require.NoError(t, SaveJob("job-1", testSpec()))

	summary := model.Summary{TotalRows: 10, MatchesFound: 7, ClickURLUpdates: 5, ImpressionURLUpdates: 3}
	require.NoError(t, SaveJobSummary("job-1", summary))

	got, err := GetJobSummary("job-1")
	require.NoError(t, err)
	assert.Equal(t, summary, got)
}

func TestJobErrorsAndDelete(t *testing.T) {
	initTestDB(t)
	require.NoError(t, SaveJob("job-1", testSpec()))

	require.NoError(t, SaveJobError("job-1", assert.AnError))
	errs, err := GetJobErrors("job-1")
	require.NoError(t, err)
	require.Len(t, errs, 1)

	require.NoError(t, SaveOutputFile("job-1", "updated.xlsx", "/tmp/updated.xlsx", "excel", 128))
	files, err := GetOutputFiles("job-1")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "updated.xlsx", files[0]["file_name"])

	require.NoError(t, DeleteJob("job-1"))
	_, err = GetJob("job-1")
	assert.Error(t, err)

	errs, err = GetJobErrors("job-1")
	require.NoError(t, err)
	assert.Empty(t, errs)
}
