package repository

import (
	"context"
	"fmt"

	"ffwarehouse/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// LeagueRepository handles fantasy league database operations
type LeagueRepository struct {
	db *Database
}

// Upsert inserts or updates a league
func (r *LeagueRepository) Upsert(ctx context.Context, league *models.League) error {
	query := `
		INSERT INTO leagues (
			id, name, season, sport, status, season_type, total_rosters,
			scoring_settings, roster_positions, settings
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			season = EXCLUDED.season,
			sport = EXCLUDED.sport,
			status = EXCLUDED.status,
			season_type = EXCLUDED.season_type,
			total_rosters = EXCLUDED.total_rosters,
			scoring_settings = EXCLUDED.scoring_settings,
			roster_positions = EXCLUDED.roster_positions,
			settings = EXCLUDED.settings,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		league.ID, league.Name, league.Season, league.Sport,
		league.Status, league.SeasonType, league.TotalRosters,
		league.ScoringSettings, league.RosterPositions, league.Settings,
	).Scan(&league.CreatedAt, &league.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert league %s: %w", league.ID, err)
	}

	log.Debug().
		Str("league_id", league.ID).
		Str("name", league.Name).
		Str("season", league.Season).
		Msg("League upserted")

	return nil
}

// GetByID retrieves a league by Sleeper league ID
func (r *LeagueRepository) GetByID(ctx context.Context, id string) (*models.League, error) {
	query := `
		SELECT id, name, season, sport, status, season_type, total_rosters,
		       scoring_settings, roster_positions, settings, created_at, updated_at
		FROM leagues
		WHERE id = $1
	`

	var league models.League
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&league.ID, &league.Name, &league.Season, &league.Sport,
		&league.Status, &league.SeasonType, &league.TotalRosters,
		&league.ScoringSettings, &league.RosterPositions, &league.Settings,
		&league.CreatedAt, &league.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("league not found: id=%s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}

	return &league, nil
}

// ListBySeason retrieves all stored leagues for a season
func (r *LeagueRepository) ListBySeason(ctx context.Context, season string) ([]*models.League, error) {
	query := `
		SELECT id, name, season, sport, status, season_type, total_rosters,
		       scoring_settings, roster_positions, settings, created_at, updated_at
		FROM leagues
		WHERE season = $1
		ORDER BY name
	`

	rows, err := r.db.Pool.Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	defer rows.Close()

	var leagues []*models.League
	for rows.Next() {
		var league models.League
		err := rows.Scan(
			&league.ID, &league.Name, &league.Season, &league.Sport,
			&league.Status, &league.SeasonType, &league.TotalRosters,
			&league.ScoringSettings, &league.RosterPositions, &league.Settings,
			&league.CreatedAt, &league.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan league: %w", err)
		}
		leagues = append(leagues, &league)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leagues: %w", err)
	}

	return leagues, nil
}
