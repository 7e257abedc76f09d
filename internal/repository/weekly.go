package repository

import (
	"context"
	"fmt"

	"ffwarehouse/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// WeeklyStatsRepository handles weekly player stat database operations
type WeeklyStatsRepository struct {
	db *Database
}

const weeklyColumns = `
	player_id, season, week, player_name, player_display_name,
	position, position_group, team, opponent_team, season_type,
	completions, attempts, passing_yards, passing_tds, interceptions,
	sacks, sack_yards, sack_fumbles, sack_fumbles_lost, passing_air_yards,
	passing_yards_after_catch, passing_first_downs, passing_epa, passing_2pt_conversions,
	carries, rushing_yards, rushing_tds, rushing_fumbles, rushing_fumbles_lost,
	rushing_first_downs, rushing_epa, rushing_2pt_conversions,
	targets, receptions, receiving_yards, receiving_tds, receiving_fumbles,
	receiving_fumbles_lost, receiving_air_yards, receiving_yards_after_catch,
	receiving_first_downs, receiving_epa, receiving_2pt_conversions,
	special_teams_tds, fantasy_points, fantasy_points_ppr,
	target_share, air_yards_share, wopr`

const insertWeeklySQL = `
	INSERT INTO weekly_player_stats (` + weeklyColumns + `
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
		$31, $32, $33, $34, $35, $36, $37, $38, $39, $40,
		$41, $42, $43, $44, $45, $46, $47, $48, $49
	)`

func weeklyArgs(s *models.WeeklyPlayerStats) []interface{} {
	return []interface{}{
		s.PlayerID, s.Season, s.Week, s.PlayerName, s.PlayerDisplayName,
		s.Position, s.PositionGroup, s.Team, s.OpponentTeam, s.SeasonType,
		s.Completions, s.Attempts, s.PassingYards, s.PassingTDs, s.Interceptions,
		s.Sacks, s.SackYards, s.SackFumbles, s.SackFumblesLost, s.PassingAirYards,
		s.PassingYardsAfterCatch, s.PassingFirstDowns, s.PassingEPA, s.Passing2PtConversions,
		s.Carries, s.RushingYards, s.RushingTDs, s.RushingFumbles, s.RushingFumblesLost,
		s.RushingFirstDowns, s.RushingEPA, s.Rushing2PtConversions,
		s.Targets, s.Receptions, s.ReceivingYards, s.ReceivingTDs, s.ReceivingFumbles,
		s.ReceivingFumblesLost, s.ReceivingAirYards, s.ReceivingYardsAfterCatch,
		s.ReceivingFirstDowns, s.ReceivingEPA, s.Receiving2PtConversions,
		s.SpecialTeamsTDs, s.FantasyPoints, s.FantasyPointsPPR,
		s.TargetShare, s.AirYardsShare, s.WOPR,
	}
}

func scanWeekly(row pgx.Row) (*models.WeeklyPlayerStats, error) {
	var s models.WeeklyPlayerStats
	err := row.Scan(
		&s.PlayerID, &s.Season, &s.Week, &s.PlayerName, &s.PlayerDisplayName,
		&s.Position, &s.PositionGroup, &s.Team, &s.OpponentTeam, &s.SeasonType,
		&s.Completions, &s.Attempts, &s.PassingYards, &s.PassingTDs, &s.Interceptions,
		&s.Sacks, &s.SackYards, &s.SackFumbles, &s.SackFumblesLost, &s.PassingAirYards,
		&s.PassingYardsAfterCatch, &s.PassingFirstDowns, &s.PassingEPA, &s.Passing2PtConversions,
		&s.Carries, &s.RushingYards, &s.RushingTDs, &s.RushingFumbles, &s.RushingFumblesLost,
		&s.RushingFirstDowns, &s.RushingEPA, &s.Rushing2PtConversions,
		&s.Targets, &s.Receptions, &s.ReceivingYards, &s.ReceivingTDs, &s.ReceivingFumbles,
		&s.ReceivingFumblesLost, &s.ReceivingAirYards, &s.ReceivingYardsAfterCatch,
		&s.ReceivingFirstDowns, &s.ReceivingEPA, &s.Receiving2PtConversions,
		&s.SpecialTeamsTDs, &s.FantasyPoints, &s.FantasyPointsPPR,
		&s.TargetShare, &s.AirYardsShare, &s.WOPR,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CountBySeason returns the number of stored weekly rows for a season
func (r *WeeklyStatsRepository) CountBySeason(ctx context.Context, season int) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM weekly_player_stats WHERE season = $1`, season,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count weekly stats for season %d: %w", season, err)
	}
	return count, nil
}

// DeleteBySeasons removes all weekly rows for the given seasons (force reload)
func (r *WeeklyStatsRepository) DeleteBySeasons(ctx context.Context, seasons []int) (int64, error) {
	if len(seasons) == 0 {
		return 0, nil
	}

	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM weekly_player_stats WHERE season = ANY($1)`, seasons,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete weekly stats: %w", err)
	}

	log.Info().
		Ints("seasons", seasons).
		Int64("rows", tag.RowsAffected()).
		Msg("Deleted existing weekly stats")

	return tag.RowsAffected(), nil
}

// InsertBatch inserts rows inside a single transaction. The whole batch
// either commits or rolls back; callers chunk their input and decide what
// to do when a chunk fails.
func (r *WeeklyStatsRepository) InsertBatch(ctx context.Context, rows []*models.WeeklyPlayerStats) error {
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
		batch.Queue(insertWeeklySQL, weeklyArgs(row)...)
	}

	br := tx.SendBatch(ctx, batch)
	for range rows {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert weekly stats batch: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close weekly stats batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit weekly stats batch: %w", err)
	}

	return nil
}

// GetBySeason retrieves all weekly rows for a season ordered by player and week
func (r *WeeklyStatsRepository) GetBySeason(ctx context.Context, season int) ([]*models.WeeklyPlayerStats, error) {
	query := `
		SELECT ` + weeklyColumns + `, created_at
		FROM weekly_player_stats
		WHERE season = $1
		ORDER BY player_id, week
	`

	rows, err := r.db.Pool.Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly stats: %w", err)
	}
	defer rows.Close()

	var stats []*models.WeeklyPlayerStats
	for rows.Next() {
		s, err := scanWeekly(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly stats: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly stats: %w", err)
	}

	return stats, nil
}

// GetByPlayerSeason retrieves one player's weekly rows for a season
func (r *WeeklyStatsRepository) GetByPlayerSeason(ctx context.Context, playerID string, season int) ([]*models.WeeklyPlayerStats, error) {
	query := `
		SELECT ` + weeklyColumns + `, created_at
		FROM weekly_player_stats
		WHERE player_id = $1 AND season = $2
		ORDER BY week
	`

	rows, err := r.db.Pool.Query(ctx, query, playerID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly stats: %w", err)
	}
	defer rows.Close()

	var stats []*models.WeeklyPlayerStats
	for rows.Next() {
		s, err := scanWeekly(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly stats: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly stats: %w", err)
	}

	return stats, nil
}

// SeasonSummary describes what is stored for one season
type SeasonSummary struct {
	Season  int
	Rows    int
	Players int
	MinWeek int
	MaxWeek int
}

// Summarize returns per-season row counts for the given seasons
func (r *WeeklyStatsRepository) Summarize(ctx context.Context, seasons []int) ([]SeasonSummary, error) {
	query := `
		SELECT season, COUNT(*), COUNT(DISTINCT player_id),
		       COALESCE(MIN(week), 0), COALESCE(MAX(week), 0)
		FROM weekly_player_stats
		WHERE season = ANY($1)
		GROUP BY season
		ORDER BY season
	`

	rows, err := r.db.Pool.Query(ctx, query, seasons)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize weekly stats: %w", err)
	}
	defer rows.Close()

	var summaries []SeasonSummary
	for rows.Next() {
		var s SeasonSummary
		if err := rows.Scan(&s.Season, &s.Rows, &s.Players, &s.MinWeek, &s.MaxWeek); err != nil {
			return nil, fmt.Errorf("failed to scan season summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating season summaries: %w", err)
	}

	return summaries, nil
}

// Count returns the total number of stored weekly rows
func (r *WeeklyStatsRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM weekly_player_stats`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count weekly stats: %w", err)
	}
	return count, nil
}
