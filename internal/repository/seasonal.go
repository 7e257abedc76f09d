package repository

import (
	"context"
	"fmt"

	"ffwarehouse/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// SeasonalStatsRepository handles seasonal player stat database operations
type SeasonalStatsRepository struct {
	db *Database
}

const seasonalColumns = `
	player_id, season, player_name, player_display_name, position,
	position_group, team, games_played, season_type,
	completions, attempts, passing_yards, passing_tds, interceptions,
	sacks, sack_yards, passing_air_yards, passing_yards_after_catch,
	passing_first_downs, passing_epa, passing_2pt_conversions,
	completion_percentage, yards_per_attempt, yards_per_completion,
	carries, rushing_yards, rushing_tds, rushing_fumbles, rushing_fumbles_lost,
	rushing_first_downs, rushing_epa, rushing_2pt_conversions, yards_per_carry,
	targets, receptions, receiving_yards, receiving_tds, receiving_fumbles,
	receiving_fumbles_lost, receiving_air_yards, receiving_yards_after_catch,
	receiving_first_downs, receiving_epa, receiving_2pt_conversions,
	catch_percentage, yards_per_target, yards_per_reception,
	special_teams_tds, fantasy_points, fantasy_points_ppr,
	target_share, air_yards_share, wopr,
	fantasy_points_per_game, fantasy_points_ppr_per_game`

const insertSeasonalSQL = `
	INSERT INTO seasonal_player_stats (` + seasonalColumns + `
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
		$31, $32, $33, $34, $35, $36, $37, $38, $39, $40,
		$41, $42, $43, $44, $45, $46, $47, $48, $49, $50,
		$51, $52, $53, $54, $55
	)`

func seasonalArgs(s *models.SeasonalPlayerStats) []interface{} {
	return []interface{}{
		s.PlayerID, s.Season, s.PlayerName, s.PlayerDisplayName, s.Position,
		s.PositionGroup, s.Team, s.GamesPlayed, s.SeasonType,
		s.Completions, s.Attempts, s.PassingYards, s.PassingTDs, s.Interceptions,
		s.Sacks, s.SackYards, s.PassingAirYards, s.PassingYardsAfterCatch,
		s.PassingFirstDowns, s.PassingEPA, s.Passing2PtConversions,
		s.CompletionPercentage, s.YardsPerAttempt, s.YardsPerCompletion,
		s.Carries, s.RushingYards, s.RushingTDs, s.RushingFumbles, s.RushingFumblesLost,
		s.RushingFirstDowns, s.RushingEPA, s.Rushing2PtConversions, s.YardsPerCarry,
		s.Targets, s.Receptions, s.ReceivingYards, s.ReceivingTDs, s.ReceivingFumbles,
		s.ReceivingFumblesLost, s.ReceivingAirYards, s.ReceivingYardsAfterCatch,
		s.ReceivingFirstDowns, s.ReceivingEPA, s.Receiving2PtConversions,
		s.CatchPercentage, s.YardsPerTarget, s.YardsPerReception,
		s.SpecialTeamsTDs, s.FantasyPoints, s.FantasyPointsPPR,
		s.TargetShare, s.AirYardsShare, s.WOPR,
		s.FantasyPointsPerGame, s.FantasyPointsPPRPerGame,
	}
}

func scanSeasonal(row pgx.Row) (*models.SeasonalPlayerStats, error) {
	var s models.SeasonalPlayerStats
	err := row.Scan(
		&s.PlayerID, &s.Season, &s.PlayerName, &s.PlayerDisplayName, &s.Position,
		&s.PositionGroup, &s.Team, &s.GamesPlayed, &s.SeasonType,
		&s.Completions, &s.Attempts, &s.PassingYards, &s.PassingTDs, &s.Interceptions,
		&s.Sacks, &s.SackYards, &s.PassingAirYards, &s.PassingYardsAfterCatch,
		&s.PassingFirstDowns, &s.PassingEPA, &s.Passing2PtConversions,
		&s.CompletionPercentage, &s.YardsPerAttempt, &s.YardsPerCompletion,
		&s.Carries, &s.RushingYards, &s.RushingTDs, &s.RushingFumbles, &s.RushingFumblesLost,
		&s.RushingFirstDowns, &s.RushingEPA, &s.Rushing2PtConversions, &s.YardsPerCarry,
		&s.Targets, &s.Receptions, &s.ReceivingYards, &s.ReceivingTDs, &s.ReceivingFumbles,
		&s.ReceivingFumblesLost, &s.ReceivingAirYards, &s.ReceivingYardsAfterCatch,
		&s.ReceivingFirstDowns, &s.ReceivingEPA, &s.Receiving2PtConversions,
		&s.CatchPercentage, &s.YardsPerTarget, &s.YardsPerReception,
		&s.SpecialTeamsTDs, &s.FantasyPoints, &s.FantasyPointsPPR,
		&s.TargetShare, &s.AirYardsShare, &s.WOPR,
		&s.FantasyPointsPerGame, &s.FantasyPointsPPRPerGame,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CountBySeason returns the number of stored seasonal rows for a season
func (r *SeasonalStatsRepository) CountBySeason(ctx context.Context, season int) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM seasonal_player_stats WHERE season = $1`, season,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count seasonal stats for season %d: %w", season, err)
	}
	return count, nil
}

// DeleteBySeasons removes all seasonal rows for the given seasons (force reload)
func (r *SeasonalStatsRepository) DeleteBySeasons(ctx context.Context, seasons []int) (int64, error) {
	if len(seasons) == 0 {
		return 0, nil
	}

	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM seasonal_player_stats WHERE season = ANY($1)`, seasons,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete seasonal stats: %w", err)
	}

	log.Info().
		Ints("seasons", seasons).
		Int64("rows", tag.RowsAffected()).
		Msg("Deleted existing seasonal stats")

	return tag.RowsAffected(), nil
}

// InsertBatch inserts rows inside a single transaction
func (r *SeasonalStatsRepository) InsertBatch(ctx context.Context, rows []*models.SeasonalPlayerStats) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(insertSeasonalSQL, seasonalArgs(row)...)
	}

	br := tx.SendBatch(ctx, batch)
	for range rows {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert seasonal stats batch: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close seasonal stats batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seasonal stats batch: %w", err)
	}

	return nil
}

// GetBySeason retrieves all seasonal rows for a season ordered by player
func (r *SeasonalStatsRepository) GetBySeason(ctx context.Context, season int) ([]*models.SeasonalPlayerStats, error) {
	query := `
		SELECT ` + seasonalColumns + `, created_at
		FROM seasonal_player_stats
		WHERE season = $1
		ORDER BY player_id
	`

	rows, err := r.db.Pool.Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasonal stats: %w", err)
	}
	defer rows.Close()

	var stats []*models.SeasonalPlayerStats
	for rows.Next() {
		s, err := scanSeasonal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seasonal stats: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seasonal stats: %w", err)
	}

	return stats, nil
}

// GetByPlayerSeason retrieves one player's seasonal row
func (r *SeasonalStatsRepository) GetByPlayerSeason(ctx context.Context, playerID string, season int) (*models.SeasonalPlayerStats, error) {
	query := `
		SELECT ` + seasonalColumns + `, created_at
		FROM seasonal_player_stats
		WHERE player_id = $1 AND season = $2
	`

	s, err := scanSeasonal(r.db.Pool.QueryRow(ctx, query, playerID, season))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("seasonal stats not found: player=%s season=%d", playerID, season)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seasonal stats: %w", err)
	}

	return s, nil
}

// Count returns the total number of stored seasonal rows
func (r *SeasonalStatsRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM seasonal_player_stats`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count seasonal stats: %w", err)
	}
	return count, nil
}
