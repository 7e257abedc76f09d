//go:build integration

package loader

import (
	"context"
	"fmt"
	"testing"

	"ffwarehouse/ingestion/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSeasonSource struct {
	rows map[int][]*models.SeasonalPlayerStats
}

func (f *fakeSeasonSource) FetchSeasonStats(ctx context.Context, season int) ([]*models.SeasonalPlayerStats, error) {
	return f.rows[season], nil
}

func TestSeasonalLoader_FromUpstream(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer db.Close()
	clearSeasons(t, ctx, db)

	source := &fakeSeasonSource{rows: map[int][]*models.SeasonalPlayerStats{
		testSeason: {
			{
				PlayerID:    "loader-test-qb",
				Season:      testSeason,
				PlayerName:  "L.Tester",
				Position:    "QB",
				Team:        "KC",
				GamesPlayed: 16,
				SeasonType:  "REG",
			},
		},
	}}
	l := NewSeasonalLoader(source, db, 500)

	result, err := l.Load(ctx, []int{testSeason}, false, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SeasonsLoaded)
	assert.Equal(t, 1, result.RowsInserted)

	// Idempotent on the second run
	result, err = l.Load(ctx, []int{testSeason}, false, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SeasonsSkipped)
}

func TestSeasonalLoader_FailedBatchDoesNotStopLoad(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer db.Close()
	clearSeasons(t, ctx, db)

	rows := make([]*models.SeasonalPlayerStats, 0, 6)
	for i := 1; i <= 6; i++ {
		rows = append(rows, &models.SeasonalPlayerStats{
			PlayerID:    fmt.Sprintf("loader-test-%d", i),
			Season:      testSeason,
			PlayerName:  "L.Tester",
			Position:    "WR",
			Team:        "KC",
			GamesPlayed: 16,
			SeasonType:  "REG",
		})
	}
	// Middle chunk carries a duplicate key and rolls back on its own
	rows[3].PlayerID = rows[2].PlayerID

	source := &fakeSeasonSource{rows: map[int][]*models.SeasonalPlayerStats{
		testSeason: rows,
	}}
	l := NewSeasonalLoader(source, db, 2)

	result, err := l.Load(ctx, []int{testSeason}, false, false)
	require.NoError(t, err, "A failed batch should not fail the run")
	assert.Equal(t, 1, result.SeasonsLoaded)
	assert.Equal(t, 1, result.BatchesFailed)
	assert.Equal(t, 4, result.RowsInserted)

	stored, err := db.Seasonal.GetBySeason(ctx, testSeason)
	require.NoError(t, err)
	assert.Len(t, stored, 4)
}

func TestSeasonalLoader_FromDB(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer db.Close()
	clearSeasons(t, ctx, db)

	// Seed weekly rows, then reduce them instead of hitting upstream
	require.NoError(t, db.Weekly.InsertBatch(ctx, fakeWeeklyRows(4)))

	l := NewSeasonalLoader(&fakeSeasonSource{}, db, 500)
	result, err := l.Load(ctx, []int{testSeason}, false, true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SeasonsLoaded)
	assert.Equal(t, 1, result.RowsInserted)

	s, err := db.Seasonal.GetByPlayerSeason(ctx, "loader-test-qb", testSeason)
	require.NoError(t, err)
	assert.Equal(t, 4, s.GamesPlayed)
	assert.Equal(t, 1000.0, s.PassingYards.Float64, "Four weeks of 250 yards should sum")
	assert.Equal(t, 18.0, s.FantasyPointsPerGame)
}

func TestSeasonalLoader_FromDBWithoutWeeklyRows(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer db.Close()
	clearSeasons(t, ctx, db)

	l := NewSeasonalLoader(&fakeSeasonSource{}, db, 500)
	result, err := l.Load(ctx, []int{testSeason}, false, true)
	require.NoError(t, err, "Missing weekly data should not fail the run")
	assert.Equal(t, 1, result.SeasonsFailed)
}
