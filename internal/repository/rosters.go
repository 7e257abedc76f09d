package repository

import (
	"context"
	"fmt"

	"ffwarehouse/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// RosterRepository handles fantasy roster database operations
type RosterRepository struct {
	db *Database
}

// Upsert inserts or updates a roster, keyed by (league_id, roster_id),
// and fills in the surrogate database id
func (r *RosterRepository) Upsert(ctx context.Context, roster *models.Roster) error {
	query := `
		INSERT INTO rosters (
			roster_id, league_id, owner_id, co_owners, wins, losses, ties,
			waiver_position, waiver_budget_used, total_moves, settings
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (league_id, roster_id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id,
			co_owners = EXCLUDED.co_owners,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			ties = EXCLUDED.ties,
			waiver_position = EXCLUDED.waiver_position,
			waiver_budget_used = EXCLUDED.waiver_budget_used,
			total_moves = EXCLUDED.total_moves,
			settings = EXCLUDED.settings,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		roster.RosterID, roster.LeagueID, roster.OwnerID, roster.CoOwners,
		roster.Wins, roster.Losses, roster.Ties,
		roster.WaiverPosition, roster.WaiverBudgetUsed, roster.TotalMoves,
		roster.Settings,
	).Scan(&roster.ID, &roster.CreatedAt, &roster.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert roster %d in league %s: %w",
			roster.RosterID, roster.LeagueID, err)
	}

	return nil
}

// ReplaceEntries swaps out a roster's player entries for one week. Delete
// plus insert inside a transaction so a re-sync never leaves a mix of old
// and new entries.
func (r *RosterRepository) ReplaceEntries(ctx context.Context, rosterDBID int, season string, week int, entries []*models.RosterEntry) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM roster_entries WHERE roster_id = $1 AND season = $2 AND week = $3`,
		rosterDBID, season, week,
	)
	if err != nil {
		return fmt.Errorf("failed to clear roster entries: %w", err)
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(
			`INSERT INTO roster_entries (roster_id, player_id, slot, week, season)
			 VALUES ($1, $2, $3, $4, $5)`,
			e.RosterID, e.PlayerID, e.Slot, e.Week, e.Season,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range entries {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert roster entries: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close roster entry batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit roster entries: %w", err)
	}

	log.Debug().
		Int("roster_id", rosterDBID).
		Str("season", season).
		Int("week", week).
		Int("entries", len(entries)).
		Msg("Roster entries replaced")

	return nil
}

// ListByLeague retrieves all rosters for a league
func (r *RosterRepository) ListByLeague(ctx context.Context, leagueID string) ([]*models.Roster, error) {
	query := `
		SELECT id, roster_id, league_id, owner_id, co_owners, wins, losses, ties,
		       waiver_position, waiver_budget_used, total_moves, settings,
		       created_at, updated_at
		FROM rosters
		WHERE league_id = $1
		ORDER BY roster_id
	`

	rows, err := r.db.Pool.Query(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rosters: %w", err)
	}
	defer rows.Close()

	var rosters []*models.Roster
	for rows.Next() {
		var roster models.Roster
		err := rows.Scan(
			&roster.ID, &roster.RosterID, &roster.LeagueID, &roster.OwnerID,
			&roster.CoOwners, &roster.Wins, &roster.Losses, &roster.Ties,
			&roster.WaiverPosition, &roster.WaiverBudgetUsed, &roster.TotalMoves,
			&roster.Settings, &roster.CreatedAt, &roster.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		rosters = append(rosters, &roster)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rosters: %w", err)
	}

	return rosters, nil
}
