package repository

import (
	"context"
	"fmt"

	"ffwarehouse/ingestion/internal/models"
)

// MatchupRepository handles weekly matchup database operations
type MatchupRepository struct {
	db *Database
}

// Upsert inserts or updates a matchup row, keyed by (league_id, roster_id, week)
func (r *MatchupRepository) Upsert(ctx context.Context, m *models.Matchup) error {
	query := `
		INSERT INTO matchups (
			matchup_id, league_id, roster_id, week, points, custom_points,
			starters, starters_points, players, players_points
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (league_id, roster_id, week) DO UPDATE SET
			matchup_id = EXCLUDED.matchup_id,
			points = EXCLUDED.points,
			custom_points = EXCLUDED.custom_points,
			starters = EXCLUDED.starters,
			starters_points = EXCLUDED.starters_points,
			players = EXCLUDED.players,
			players_points = EXCLUDED.players_points
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		m.MatchupID, m.LeagueID, m.RosterID, m.Week, m.Points, m.CustomPoints,
		m.Starters, m.StartersPoints, m.Players, m.PlayersPoints,
	).Scan(&m.ID, &m.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert matchup (league=%s roster=%d week=%d): %w",
			m.LeagueID, m.RosterID, m.Week, err)
	}

	return nil
}

// ListByLeagueWeek retrieves all matchup rows for a league and week
func (r *MatchupRepository) ListByLeagueWeek(ctx context.Context, leagueID string, week int) ([]*models.Matchup, error) {
	query := `
		SELECT id, matchup_id, league_id, roster_id, week, points, custom_points,
		       starters, starters_points, players, players_points, created_at
		FROM matchups
		WHERE league_id = $1 AND week = $2
		ORDER BY matchup_id, roster_id
	`

	rows, err := r.db.Pool.Query(ctx, query, leagueID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to list matchups: %w", err)
	}
	defer rows.Close()

	var matchups []*models.Matchup
	for rows.Next() {
		var m models.Matchup
		err := rows.Scan(
			&m.ID, &m.MatchupID, &m.LeagueID, &m.RosterID, &m.Week,
			&m.Points, &m.CustomPoints,
			&m.Starters, &m.StartersPoints, &m.Players, &m.PlayersPoints,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan matchup: %w", err)
		}
		matchups = append(matchups, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matchups: %w", err)
	}

	return matchups, nil
}
