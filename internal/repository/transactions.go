package repository

import (
	"context"
	"fmt"

	"ffwarehouse/ingestion/internal/models"
)

// TransactionRepository handles league transaction database operations
type TransactionRepository struct {
	db *Database
}

// Upsert inserts or updates a league transaction
func (r *TransactionRepository) Upsert(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, league_id, type, status, creator, created,
			consenter_ids, roster_ids, adds, drops, draft_picks,
			waiver_budget, settings, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			consenter_ids = EXCLUDED.consenter_ids,
			roster_ids = EXCLUDED.roster_ids,
			adds = EXCLUDED.adds,
			drops = EXCLUDED.drops,
			draft_picks = EXCLUDED.draft_picks,
			waiver_budget = EXCLUDED.waiver_budget,
			settings = EXCLUDED.settings,
			metadata = EXCLUDED.metadata
	`

	_, err := r.db.Pool.Exec(
		ctx, query,
		txn.ID, txn.LeagueID, txn.Type, txn.Status, txn.Creator, txn.Created,
		txn.ConsenterIDs, txn.RosterIDs, txn.Adds, txn.Drops, txn.DraftPicks,
		txn.WaiverBudget, txn.Settings, txn.Metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert transaction %s: %w", txn.ID, err)
	}

	return nil
}

// CountByLeague returns the number of stored transactions for a league
func (r *TransactionRepository) CountByLeague(ctx context.Context, leagueID string) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE league_id = $1`, leagueID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// ListByLeague retrieves all transactions for a league, newest first
func (r *TransactionRepository) ListByLeague(ctx context.Context, leagueID string) ([]*models.Transaction, error) {
	query := `
		SELECT id, league_id, type, status, creator, created,
		       consenter_ids, roster_ids, adds, drops, draft_picks,
		       waiver_budget, settings, metadata, created_at
		FROM transactions
		WHERE league_id = $1
		ORDER BY created DESC NULLS LAST
	`

	rows, err := r.db.Pool.Query(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		var txn models.Transaction
		err := rows.Scan(
			&txn.ID, &txn.LeagueID, &txn.Type, &txn.Status, &txn.Creator, &txn.Created,
			&txn.ConsenterIDs, &txn.RosterIDs, &txn.Adds, &txn.Drops, &txn.DraftPicks,
			&txn.WaiverBudget, &txn.Settings, &txn.Metadata, &txn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, &txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txns, nil
}
