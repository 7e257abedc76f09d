package stats

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ffwarehouse/ingestion/internal/models"
)

func weeklyRow(playerID string, season, week int, mutate func(*models.WeeklyPlayerStats)) models.WeeklyPlayerStats {
	row := models.WeeklyPlayerStats{
		PlayerID:   playerID,
		Season:     season,
		Week:       week,
		PlayerName: "T.Player",
		Position:   "QB",
		Team:       "KC",
		SeasonType: "REG",
	}
	if mutate != nil {
		mutate(&row)
	}
	return row
}

func nullF(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func TestReduceWeeklySumsAndDerives(t *testing.T) {
	yards := []float64{100, 150, 0}
	attempts := []float64{10, 15, 0}

	rows := make([]models.WeeklyPlayerStats, 0, 3)
	for i := 0; i < 3; i++ {
		idx := i
		rows = append(rows, weeklyRow("00-0012345", 2023, i+1, func(w *models.WeeklyPlayerStats) {
			w.PassingYards = nullF(yards[idx])
			w.Attempts = nullF(attempts[idx])
		}))
	}

	out := ReduceWeekly(rows)
	require.Len(t, out, 1)

	s := out[0]
	assert.Equal(t, "00-0012345", s.PlayerID)
	assert.Equal(t, 2023, s.Season)
	assert.Equal(t, 3, s.GamesPlayed)
	assert.Equal(t, 250.0, s.PassingYards.Float64)
	assert.Equal(t, 25.0, s.Attempts.Float64)
	assert.Equal(t, 10.0, s.YardsPerAttempt)
	assert.Equal(t, "REG", s.SeasonType)
}

func TestReduceWeeklyTreatsNullAsZero(t *testing.T) {
	rows := []models.WeeklyPlayerStats{
		weeklyRow("p1", 2023, 1, func(w *models.WeeklyPlayerStats) {
			w.RushingYards = nullF(40)
		}),
		weeklyRow("p1", 2023, 2, nil), // all stats null
	}

	out := ReduceWeekly(rows)
	require.Len(t, out, 1)
	assert.Equal(t, 40.0, out[0].RushingYards.Float64)
	assert.True(t, out[0].RushingYards.Valid)
	assert.Equal(t, 2, out[0].GamesPlayed)
}

func TestReduceWeeklyGroupsByPlayerAndSeason(t *testing.T) {
	rows := []models.WeeklyPlayerStats{
		weeklyRow("p2", 2022, 1, nil),
		weeklyRow("p1", 2023, 1, nil),
		weeklyRow("p1", 2022, 1, nil),
		weeklyRow("p1", 2022, 2, nil),
	}

	out := ReduceWeekly(rows)
	require.Len(t, out, 3)

	// Deterministic order: player id, then season
	assert.Equal(t, "p1", out[0].PlayerID)
	assert.Equal(t, 2022, out[0].Season)
	assert.Equal(t, 2, out[0].GamesPlayed)
	assert.Equal(t, "p1", out[1].PlayerID)
	assert.Equal(t, 2023, out[1].Season)
	assert.Equal(t, "p2", out[2].PlayerID)
}

func TestReduceWeeklySkipsPostseason(t *testing.T) {
	rows := []models.WeeklyPlayerStats{
		weeklyRow("p1", 2023, 17, func(w *models.WeeklyPlayerStats) {
			w.PassingYards = nullF(200)
		}),
		weeklyRow("p1", 2023, 19, func(w *models.WeeklyPlayerStats) {
			w.SeasonType = "POST"
			w.PassingYards = nullF(300)
		}),
	}

	out := ReduceWeekly(rows)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].GamesPlayed)
	assert.Equal(t, 200.0, out[0].PassingYards.Float64)
}

func TestReduceWeeklyIdentityFromLatestWeek(t *testing.T) {
	rows := []models.WeeklyPlayerStats{
		weeklyRow("p1", 2023, 10, func(w *models.WeeklyPlayerStats) {
			w.Team = "BUF"
			w.PlayerName = "T.Player"
		}),
		weeklyRow("p1", 2023, 3, func(w *models.WeeklyPlayerStats) {
			w.Team = "ZZZ" // lexicographically later but chronologically earlier
		}),
	}

	out := ReduceWeekly(rows)
	require.Len(t, out, 1)
	assert.Equal(t, "BUF", out[0].Team)
	assert.Equal(t, "T.Player", out[0].PlayerName)
}

func TestReduceWeeklyAveragesShares(t *testing.T) {
	rows := []models.WeeklyPlayerStats{
		weeklyRow("p1", 2023, 1, func(w *models.WeeklyPlayerStats) {
			w.TargetShare = nullF(0.20)
			w.WOPR = nullF(0.50)
		}),
		weeklyRow("p1", 2023, 2, func(w *models.WeeklyPlayerStats) {
			w.TargetShare = nullF(0.30)
			// WOPR null this week: excluded from the average, not zeroed
		}),
	}

	out := ReduceWeekly(rows)
	require.Len(t, out, 1)

	s := out[0]
	require.True(t, s.TargetShare.Valid)
	assert.InDelta(t, 0.25, s.TargetShare.Float64, 1e-9)
	require.True(t, s.WOPR.Valid)
	assert.InDelta(t, 0.50, s.WOPR.Float64, 1e-9)
	assert.False(t, s.AirYardsShare.Valid)
}

func TestReduceWeeklyEmptyInput(t *testing.T) {
	assert.Empty(t, ReduceWeekly(nil))
	assert.Empty(t, ReduceWeekly([]models.WeeklyPlayerStats{}))
}
