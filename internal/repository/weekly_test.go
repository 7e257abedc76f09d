//go:build integration

package repository

import (
	"database/sql"
	"testing"

	"ffwarehouse/ingestion/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test rows use a season no real load touches so re-runs stay clean.
const testSeason = 1999

func testWeeklyRow(playerID string, week int, passingYards float64) *models.WeeklyPlayerStats {
	return &models.WeeklyPlayerStats{
		PlayerID:     playerID,
		Season:       testSeason,
		Week:         week,
		PlayerName:   "T.Tester",
		Position:     "QB",
		Team:         "KC",
		SeasonType:   "REG",
		PassingYards: sql.NullFloat64{Float64: passingYards, Valid: true},
		Attempts:     sql.NullFloat64{Float64: 30, Valid: true},
	}
}

func TestWeeklyStatsRepository_InsertBatch(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Weekly.DeleteBySeasons(ctx, []int{testSeason})
	require.NoError(t, err, "Should clear test season")

	rows := []*models.WeeklyPlayerStats{
		testWeeklyRow("test-qb-1", 1, 250),
		testWeeklyRow("test-qb-1", 2, 310),
		testWeeklyRow("test-qb-2", 1, 180),
	}

	err = db.Weekly.InsertBatch(ctx, rows)
	require.NoError(t, err, "Should insert weekly batch")

	count, err := db.Weekly.CountBySeason(ctx, testSeason)
	require.NoError(t, err)
	assert.Equal(t, 3, count, "Should have stored all rows")
}

func TestWeeklyStatsRepository_GetBySeason(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Weekly.DeleteBySeasons(ctx, []int{testSeason})
	require.NoError(t, err)

	rows := []*models.WeeklyPlayerStats{
		testWeeklyRow("test-qb-1", 2, 310),
		testWeeklyRow("test-qb-1", 1, 250),
	}
	require.NoError(t, db.Weekly.InsertBatch(ctx, rows))

	got, err := db.Weekly.GetBySeason(ctx, testSeason)
	require.NoError(t, err, "Should retrieve season rows")
	require.Len(t, got, 2)

	// Ordered by player then week
	assert.Equal(t, 1, got[0].Week)
	assert.Equal(t, 2, got[1].Week)
	assert.Equal(t, 250.0, got[0].PassingYards.Float64)
	assert.True(t, got[0].Attempts.Valid)
	assert.False(t, got[0].Targets.Valid, "Unset stats should come back null")
}

func TestWeeklyStatsRepository_DeleteBySeasons(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Weekly.DeleteBySeasons(ctx, []int{testSeason})
	require.NoError(t, err)

	require.NoError(t, db.Weekly.InsertBatch(ctx, []*models.WeeklyPlayerStats{
		testWeeklyRow("test-qb-1", 1, 250),
		testWeeklyRow("test-qb-1", 2, 310),
	}))

	deleted, err := db.Weekly.DeleteBySeasons(ctx, []int{testSeason})
	require.NoError(t, err, "Should delete season rows")
	assert.Equal(t, int64(2), deleted)

	count, err := db.Weekly.CountBySeason(ctx, testSeason)
	require.NoError(t, err)
	assert.Zero(t, count, "Season should be empty after delete")
}

func TestWeeklyStatsRepository_Summarize(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Weekly.DeleteBySeasons(ctx, []int{testSeason})
	require.NoError(t, err)

	require.NoError(t, db.Weekly.InsertBatch(ctx, []*models.WeeklyPlayerStats{
		testWeeklyRow("test-qb-1", 1, 250),
		testWeeklyRow("test-qb-1", 5, 310),
		testWeeklyRow("test-qb-2", 3, 180),
	}))

	summaries, err := db.Weekly.Summarize(ctx, []int{testSeason})
	require.NoError(t, err, "Should summarize season")
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, testSeason, s.Season)
	assert.Equal(t, 3, s.Rows)
	assert.Equal(t, 2, s.Players)
	assert.Equal(t, 1, s.MinWeek)
	assert.Equal(t, 5, s.MaxWeek)
}

func TestWeeklyStatsRepository_DuplicateKeyRejected(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Weekly.DeleteBySeasons(ctx, []int{testSeason})
	require.NoError(t, err)

	row := testWeeklyRow("test-qb-1", 1, 250)
	require.NoError(t, db.Weekly.InsertBatch(ctx, []*models.WeeklyPlayerStats{row}))

	// Same (player, season, week) again: the whole batch rolls back
	err = db.Weekly.InsertBatch(ctx, []*models.WeeklyPlayerStats{
		testWeeklyRow("test-qb-3", 1, 90),
		row,
	})
	assert.Error(t, err, "Duplicate primary key should fail the batch")

	count, err := db.Weekly.CountBySeason(ctx, testSeason)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "Failed batch should not leave partial rows")
}
