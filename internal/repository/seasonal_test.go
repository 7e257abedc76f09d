//go:build integration

package repository

import (
	"database/sql"
	"testing"

	"ffwarehouse/ingestion/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeasonalRow(playerID string) *models.SeasonalPlayerStats {
	return &models.SeasonalPlayerStats{
		PlayerID:             playerID,
		Season:               testSeason,
		PlayerName:           "T.Tester",
		Position:             "QB",
		Team:                 "KC",
		GamesPlayed:          16,
		SeasonType:           "REG",
		Completions:          sql.NullFloat64{Float64: 380, Valid: true},
		Attempts:             sql.NullFloat64{Float64: 580, Valid: true},
		PassingYards:         sql.NullFloat64{Float64: 4500, Valid: true},
		FantasyPoints:        sql.NullFloat64{Float64: 320, Valid: true},
		CompletionPercentage: 65.52,
		YardsPerAttempt:      7.76,
		FantasyPointsPerGame: 20.0,
	}
}

func TestSeasonalStatsRepository_InsertBatch(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Seasonal.DeleteBySeasons(ctx, []int{testSeason})
	require.NoError(t, err)

	rows := []*models.SeasonalPlayerStats{
		testSeasonalRow("test-qb-1"),
		testSeasonalRow("test-qb-2"),
	}

	err = db.Seasonal.InsertBatch(ctx, rows)
	require.NoError(t, err, "Should insert seasonal batch")

	count, err := db.Seasonal.CountBySeason(ctx, testSeason)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSeasonalStatsRepository_GetByPlayerSeason(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Seasonal.DeleteBySeasons(ctx, []int{testSeason})
	require.NoError(t, err)

	require.NoError(t, db.Seasonal.InsertBatch(ctx, []*models.SeasonalPlayerStats{
		testSeasonalRow("test-qb-1"),
	}))

	got, err := db.Seasonal.GetByPlayerSeason(ctx, "test-qb-1", testSeason)
	require.NoError(t, err, "Should retrieve seasonal row")
	assert.Equal(t, 16, got.GamesPlayed)
	assert.Equal(t, 4500.0, got.PassingYards.Float64)
	assert.Equal(t, 20.0, got.FantasyPointsPerGame)
	assert.False(t, got.TargetShare.Valid, "Unset share should come back null")

	_, err = db.Seasonal.GetByPlayerSeason(ctx, "no-such-player", testSeason)
	assert.Error(t, err, "Missing player should be an error")
}

func TestSeasonalStatsRepository_GetBySeason(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Seasonal.DeleteBySeasons(ctx, []int{testSeason})
	require.NoError(t, err)

	require.NoError(t, db.Seasonal.InsertBatch(ctx, []*models.SeasonalPlayerStats{
		testSeasonalRow("test-qb-2"),
		testSeasonalRow("test-qb-1"),
	}))

	got, err := db.Seasonal.GetBySeason(ctx, testSeason)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "test-qb-1", got[0].PlayerID, "Rows should be ordered by player id")
}
