package repository

import (
	"context"
	"fmt"

	"ffwarehouse/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
)

// PlayerRepository handles player directory database operations
type PlayerRepository struct {
	db *Database
}

const upsertPlayerSQL = `
	INSERT INTO players (
		id, first_name, last_name, full_name, position, team,
		college, height, weight, age, years_exp, active,
		injury_status, fantasy_data_id, rotowire_id
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (id) DO UPDATE SET
		first_name = EXCLUDED.first_name,
		last_name = EXCLUDED.last_name,
		full_name = EXCLUDED.full_name,
		position = EXCLUDED.position,
		team = EXCLUDED.team,
		college = EXCLUDED.college,
		height = EXCLUDED.height,
		weight = EXCLUDED.weight,
		age = EXCLUDED.age,
		years_exp = EXCLUDED.years_exp,
		active = EXCLUDED.active,
		injury_status = EXCLUDED.injury_status,
		fantasy_data_id = EXCLUDED.fantasy_data_id,
		rotowire_id = EXCLUDED.rotowire_id,
		updated_at = NOW()`

func playerArgs(p *models.Player) []interface{} {
	return []interface{}{
		p.ID, p.FirstName, p.LastName, p.FullName, p.Position, p.Team,
		p.College, p.Height, p.Weight, p.Age, p.YearsExp, p.Active,
		p.InjuryStatus, p.FantasyDataID, p.RotowireID,
	}
}

// Upsert inserts or updates a single player
func (r *PlayerRepository) Upsert(ctx context.Context, player *models.Player) error {
	_, err := r.db.Pool.Exec(ctx, upsertPlayerSQL, playerArgs(player)...)
	if err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", player.ID, err)
	}
	return nil
}

// UpsertBatch upserts players inside a single transaction. The player
// directory is six figures of entries, so directory syncs call this in
// chunks rather than once.
func (r *PlayerRepository) UpsertBatch(ctx context.Context, players []*models.Player) error {
	if len(players) == 0 {
		return nil
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, p := range players {
		batch.Queue(upsertPlayerSQL, playerArgs(p)...)
	}

	br := tx.SendBatch(ctx, batch)
	for range players {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to upsert player batch: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close player batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit player batch: %w", err)
	}

	return nil
}

// GetByID retrieves a player by Sleeper player ID
func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `
		SELECT id, first_name, last_name, full_name, position, team,
		       college, height, weight, age, years_exp, active,
		       injury_status, fantasy_data_id, rotowire_id, created_at, updated_at
		FROM players
		WHERE id = $1
	`

	var p models.Player
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.FullName, &p.Position, &p.Team,
		&p.College, &p.Height, &p.Weight, &p.Age, &p.YearsExp, &p.Active,
		&p.InjuryStatus, &p.FantasyDataID, &p.RotowireID, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("player not found: id=%s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return &p, nil
}

// Count returns the number of players in the directory
func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}
