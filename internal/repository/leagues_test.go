//go:build integration

package repository

import (
	"database/sql"
	"encoding/json"
	"testing"

	"ffwarehouse/ingestion/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeagueRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	league := &models.League{
		ID:              "test-league-1",
		Name:            "Test Dynasty League",
		Season:          "2023",
		Sport:           "nfl",
		Status:          sql.NullString{String: "in_season", Valid: true},
		TotalRosters:    sql.NullInt32{Int32: 12, Valid: true},
		ScoringSettings: json.RawMessage(`{"rec": 1.0, "pass_td": 4}`),
	}

	// Insert new league
	err := db.Leagues.Upsert(ctx, league)
	require.NoError(t, err, "Should successfully insert league")

	// Verify league was created
	retrieved, err := db.Leagues.GetByID(ctx, league.ID)
	require.NoError(t, err, "Should retrieve inserted league")
	assert.Equal(t, league.Name, retrieved.Name)
	assert.Equal(t, int32(12), retrieved.TotalRosters.Int32)

	// Update existing league
	league.Status = sql.NullString{String: "complete", Valid: true}
	err = db.Leagues.Upsert(ctx, league)
	require.NoError(t, err, "Should successfully update league")

	updated, err := db.Leagues.GetByID(ctx, league.ID)
	require.NoError(t, err)
	assert.Equal(t, "complete", updated.Status.String, "Status should be updated")
}

func TestUserRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	user := &models.User{
		ID:          "test-user-1",
		Username:    "testmanager",
		DisplayName: sql.NullString{String: "Test Manager", Valid: true},
	}

	err := db.Users.Upsert(ctx, user)
	require.NoError(t, err, "Should insert user")
	assert.False(t, user.CreatedAt.IsZero(), "Upsert should fill timestamps")

	retrieved, err := db.Users.GetByUsername(ctx, "testmanager")
	require.NoError(t, err, "Should retrieve user by username")
	assert.Equal(t, user.ID, retrieved.ID)
}

func TestRosterRepository_UpsertAndEntries(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	league := &models.League{ID: "test-league-2", Name: "Roster Test League", Season: "2023", Sport: "nfl"}
	require.NoError(t, db.Leagues.Upsert(ctx, league))

	roster := &models.Roster{
		RosterID: 1,
		LeagueID: league.ID,
		OwnerID:  sql.NullString{String: "test-user-1", Valid: true},
		Wins:     8,
		Losses:   5,
	}

	err := db.Rosters.Upsert(ctx, roster)
	require.NoError(t, err, "Should upsert roster")
	assert.Greater(t, roster.ID, 0, "Upsert should fill surrogate id")

	entries := []*models.RosterEntry{
		{RosterID: roster.ID, PlayerID: "p1", Slot: "STARTER", Week: 10, Season: "2023"},
		{RosterID: roster.ID, PlayerID: "p2", Slot: "BN", Week: 10, Season: "2023"},
	}
	err = db.Rosters.ReplaceEntries(ctx, roster.ID, "2023", 10, entries)
	require.NoError(t, err, "Should replace roster entries")

	// Replacing again with fewer entries must not leave leftovers
	err = db.Rosters.ReplaceEntries(ctx, roster.ID, "2023", 10, entries[:1])
	require.NoError(t, err, "Should replace entries a second time")

	rosters, err := db.Rosters.ListByLeague(ctx, league.ID)
	require.NoError(t, err)
	require.Len(t, rosters, 1)
	assert.Equal(t, 8, rosters[0].Wins)
}

func TestMatchupRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	league := &models.League{ID: "test-league-3", Name: "Matchup Test League", Season: "2023", Sport: "nfl"}
	require.NoError(t, db.Leagues.Upsert(ctx, league))

	m := &models.Matchup{
		MatchupID: sql.NullInt32{Int32: 1, Valid: true},
		LeagueID:  league.ID,
		RosterID:  1,
		Week:      10,
		Points:    sql.NullFloat64{Float64: 112.5, Valid: true},
	}

	err := db.Matchups.Upsert(ctx, m)
	require.NoError(t, err, "Should insert matchup")

	// Re-sync with updated points
	m.Points = sql.NullFloat64{Float64: 118.0, Valid: true}
	require.NoError(t, db.Matchups.Upsert(ctx, m))

	matchups, err := db.Matchups.ListByLeagueWeek(ctx, league.ID, 10)
	require.NoError(t, err)
	require.Len(t, matchups, 1, "Upsert should not duplicate the row")
	assert.Equal(t, 118.0, matchups[0].Points.Float64)
}

func TestTransactionRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	league := &models.League{ID: "test-league-4", Name: "Txn Test League", Season: "2023", Sport: "nfl"}
	require.NoError(t, db.Leagues.Upsert(ctx, league))

	txn := &models.Transaction{
		ID:       "test-txn-1",
		LeagueID: league.ID,
		Type:     "waiver",
		Status:   sql.NullString{String: "complete", Valid: true},
		Adds:     json.RawMessage(`{"p1": 3}`),
	}

	err := db.Transactions.Upsert(ctx, txn)
	require.NoError(t, err, "Should insert transaction")

	// Idempotent on replay
	require.NoError(t, db.Transactions.Upsert(ctx, txn))

	count, err := db.Transactions.CountByLeague(ctx, league.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
