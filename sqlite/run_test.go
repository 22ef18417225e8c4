package sqlite_test

import (
	"context"
	"testing"

	"vcfolio"
	"vcfolio/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunService_WriteRecords(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewRunService(db)
	ctx := context.Background()

	err := s.WriteRecords(ctx, []*vcfolio.Company{
		{
			URL:         "https://acme.example",
			Name:        "Acme Robotics",
			Description: "Builds warehouse robots.",
			Source:      "https://vc.example/portfolio",
			Location:    "Sydney",
			Domain:      "Robotics",
		},
		{URL: "https://globex.example", Source: "https://vc.example/portfolio"},
	})
	require.NoError(t, err)

	runs, err := s.FindRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.NotEmpty(t, runs[0].ID)
	assert.Equal(t, 2, runs[0].RecordCount)
	assert.False(t, runs[0].CreatedAt.IsZero())

	records, err := s.FindRecordsByRunID(ctx, runs[0].ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "https://acme.example", records[0].URL)
	assert.Equal(t, "Acme Robotics", records[0].Name)
	assert.Equal(t, "https://globex.example", records[1].URL)
	assert.Empty(t, records[1].Name)

	var hash string
	err = db.QueryRowContext(ctx, "SELECT content_hash FROM companies WHERE url = ?", "https://acme.example").Scan(&hash)
	require.NoError(t, err)
	assert.Len(t, hash, 16)
}

func TestRunService_WriteRecords_EachBatchIsItsOwnRun(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewRunService(db)
	ctx := context.Background()

	require.NoError(t, s.WriteRecords(ctx, []*vcfolio.Company{{URL: "https://acme.example"}}))
	require.NoError(t, s.WriteRecords(ctx, []*vcfolio.Company{{URL: "https://acme.example"}}))

	runs, err := s.FindRuns(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
	assert.NotEqual(t, runs[0].ID, runs[1].ID)
}

func TestRunService_WriteRecords_AtomicOnFailure(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewRunService(db)
	ctx := context.Background()

	// A duplicate URL within one batch violates the primary key and must
	// roll back the whole run.
	err := s.WriteRecords(ctx, []*vcfolio.Company{
		{URL: "https://acme.example"},
		{URL: "https://acme.example"},
	})
	require.Error(t, err)

	runs, err := s.FindRuns(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)

	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM companies").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRunService_FindRunByID(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewRunService(db)
	ctx := context.Background()

	require.NoError(t, s.WriteRecords(ctx, []*vcfolio.Company{{URL: "https://acme.example"}}))

	runs, err := s.FindRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run, err := s.FindRunByID(ctx, runs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, runs[0].ID, run.ID)
	assert.Equal(t, 1, run.RecordCount)
}

func TestRunService_FindRunByID_NotFound(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewRunService(db)

	_, err := s.FindRunByID(context.Background(), "nope")

	require.Error(t, err)
	assert.Equal(t, vcfolio.ENOTFOUND, vcfolio.ErrorCode(err))
}
