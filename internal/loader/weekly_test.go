//go:build integration

package loader

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"ffwarehouse/ingestion/internal/models"
	"ffwarehouse/ingestion/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests: the loaders run against the local test database with a
// fake upstream so the skip/force semantics are exercised end to end.
// Run with: go test -v -tags=integration ./internal/loader/...

const testSeason = 1998

type fakeWeeklySource struct {
	rows    map[int][]*models.WeeklyPlayerStats
	err     error
	fetches int
}

func (f *fakeWeeklySource) FetchWeeklyStats(ctx context.Context, season int) ([]*models.WeeklyPlayerStats, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[season], nil
}

func setupTestDB(t *testing.T) (*repository.Database, context.Context) {
	ctx := context.Background()

	cfg := repository.Config{
		Host:     "localhost",
		Port:     "5432",
		Database: "ffwarehouse_test",
		User:     "ffw_user",
		Password: "ffw_password",
		SSLMode:  "disable",
	}

	db, err := repository.NewDatabase(ctx, cfg)
	require.NoError(t, err, "Failed to connect to test database")

	return db, ctx
}

func clearSeasons(t *testing.T, ctx context.Context, db *repository.Database) {
	_, err := db.Weekly.DeleteBySeasons(ctx, []int{testSeason})
	require.NoError(t, err)
	_, err = db.Seasonal.DeleteBySeasons(ctx, []int{testSeason})
	require.NoError(t, err)
}

func fakeWeeklyRows(n int) []*models.WeeklyPlayerStats {
	rows := make([]*models.WeeklyPlayerStats, 0, n)
	for week := 1; week <= n; week++ {
		rows = append(rows, &models.WeeklyPlayerStats{
			PlayerID:      "loader-test-qb",
			Season:        testSeason,
			Week:          week,
			PlayerName:    "L.Tester",
			Position:      "QB",
			Team:          "KC",
			SeasonType:    "REG",
			PassingYards:  sql.NullFloat64{Float64: 250, Valid: true},
			Attempts:      sql.NullFloat64{Float64: 30, Valid: true},
			FantasyPoints: sql.NullFloat64{Float64: 18, Valid: true},
		})
	}
	return rows
}

func TestWeeklyLoader_Idempotent(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer db.Close()
	clearSeasons(t, ctx, db)

	source := &fakeWeeklySource{rows: map[int][]*models.WeeklyPlayerStats{
		testSeason: fakeWeeklyRows(4),
	}}
	l := NewWeeklyLoader(source, db, 2)

	result, err := l.Load(ctx, []int{testSeason}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SeasonsLoaded)
	assert.Equal(t, 4, result.RowsInserted)
	assert.Zero(t, result.BatchesFailed)

	// Second run with the same key set: skipped, no fetch, no row change
	result, err = l.Load(ctx, []int{testSeason}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SeasonsSkipped)
	assert.Zero(t, result.RowsInserted)
	assert.Equal(t, 1, source.fetches, "Skipped season should not hit upstream")

	count, err := db.Weekly.CountBySeason(ctx, testSeason)
	require.NoError(t, err)
	assert.Equal(t, 4, count, "Row count should be unchanged after second run")
}

func TestWeeklyLoader_ForceReplaces(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer db.Close()
	clearSeasons(t, ctx, db)

	source := &fakeWeeklySource{rows: map[int][]*models.WeeklyPlayerStats{
		testSeason: fakeWeeklyRows(6),
	}}
	l := NewWeeklyLoader(source, db, 500)

	_, err := l.Load(ctx, []int{testSeason}, false)
	require.NoError(t, err)

	// Reload with a smaller replacement set
	source.rows[testSeason] = fakeWeeklyRows(3)
	result, err := l.Load(ctx, []int{testSeason}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SeasonsLoaded)
	assert.Equal(t, 3, result.RowsInserted)

	count, err := db.Weekly.CountBySeason(ctx, testSeason)
	require.NoError(t, err)
	assert.Equal(t, 3, count, "Old rows should be replaced, not appended to")
}

func TestWeeklyLoader_FailedBatchDoesNotStopLoad(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer db.Close()
	clearSeasons(t, ctx, db)

	// Duplicate the middle chunk's key so that one batch violates the
	// primary key and rolls back while the surrounding batches still land
	rows := fakeWeeklyRows(6)
	rows[3].Week = rows[2].Week

	source := &fakeWeeklySource{rows: map[int][]*models.WeeklyPlayerStats{
		testSeason: rows,
	}}
	l := NewWeeklyLoader(source, db, 2)

	result, err := l.Load(ctx, []int{testSeason}, false)
	require.NoError(t, err, "A failed batch should not fail the run")
	assert.Equal(t, 1, result.SeasonsLoaded)
	assert.Equal(t, 1, result.BatchesFailed)
	assert.Equal(t, 4, result.RowsInserted)

	stored, err := db.Weekly.GetBySeason(ctx, testSeason)
	require.NoError(t, err)
	require.Len(t, stored, 4)

	weeks := make([]int, 0, len(stored))
	for _, row := range stored {
		weeks = append(weeks, row.Week)
	}
	assert.Equal(t, []int{1, 2, 5, 6}, weeks, "Only the failed batch's rows should be missing")
}

func TestWeeklyLoader_FetchFailureNonFatal(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer db.Close()
	clearSeasons(t, ctx, db)

	source := &fakeWeeklySource{err: errors.New("connection refused")}
	l := NewWeeklyLoader(source, db, 500)

	result, err := l.Load(ctx, []int{testSeason}, false)
	require.NoError(t, err, "Upstream failure should not fail the run")
	assert.Equal(t, 1, result.SeasonsFailed)
	assert.Zero(t, result.SeasonsLoaded)
}
