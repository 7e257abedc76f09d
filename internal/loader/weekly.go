package loader

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"ffwarehouse/ingestion/internal/metrics"
	"ffwarehouse/ingestion/internal/models"
	"ffwarehouse/ingestion/internal/repository"
)

// WeeklyFetcher is the upstream source of per-week stats
type WeeklyFetcher interface {
	FetchWeeklyStats(ctx context.Context, season int) ([]*models.WeeklyPlayerStats, error)
}

// Result summarizes one load run across all requested seasons
type Result struct {
	SeasonsLoaded  int
	SeasonsSkipped int
	SeasonsFailed  int
	RowsInserted   int
	BatchesFailed  int
}

// WeeklyLoader fetches per-week player stats season by season and persists
// them. Loads are idempotent at season granularity: a season that already
// has rows is skipped unless force is set, in which case its rows are
// deleted and fully replaced.
type WeeklyLoader struct {
	client    WeeklyFetcher
	db        *repository.Database
	batchSize int
}

// NewWeeklyLoader creates a new weekly stats loader
func NewWeeklyLoader(c WeeklyFetcher, db *repository.Database, batchSize int) *WeeklyLoader {
	return &WeeklyLoader{
		client:    c,
		db:        db,
		batchSize: batchSize,
	}
}

// Load processes each requested season in order. Upstream failures and
// failed batches are logged and counted; the only fatal errors are the
// existence check and force-delete, since continuing past those would
// corrupt the skip semantics.
func (l *WeeklyLoader) Load(ctx context.Context, seasons []int, force bool) (*Result, error) {
	result := &Result{}

	for _, season := range seasons {
		count, err := l.db.Weekly.CountBySeason(ctx, season)
		if err != nil {
			return result, fmt.Errorf("failed to check season %d: %w", season, err)
		}

		if count > 0 && !force {
			log.Info().
				Int("season", season).
				Int("existing_rows", count).
				Msg("Season already loaded, skipping")
			metrics.RecordSeasonSkipped("weekly_player_stats")
			result.SeasonsSkipped++
			continue
		}

		rows, err := l.client.FetchWeeklyStats(ctx, season)
		if err != nil {
			// Upstream failure means no data for this season, not a dead run
			log.Warn().
				Err(err).
				Int("season", season).
				Msg("Failed to fetch weekly stats, continuing with next season")
			metrics.RecordError("weekly_loader", "fetch")
			result.SeasonsFailed++
			continue
		}
		if len(rows) == 0 {
			log.Warn().Int("season", season).Msg("No weekly stats returned, skipping season")
			result.SeasonsFailed++
			continue
		}

		if count > 0 {
			if _, err := l.db.Weekly.DeleteBySeasons(ctx, []int{season}); err != nil {
				return result, fmt.Errorf("failed to clear season %d for reload: %w", season, err)
			}
		}

		inserted, failed := l.insertChunks(ctx, season, rows)
		result.RowsInserted += inserted
		result.BatchesFailed += failed
		result.SeasonsLoaded++

		log.Info().
			Int("season", season).
			Int("rows", inserted).
			Int("failed_batches", failed).
			Msg("Season loaded")
	}

	return result, nil
}

// insertChunks writes rows in fixed-size batches. A failed batch rolls back
// alone; its rows are dropped and the remaining batches still go in.
func (l *WeeklyLoader) insertChunks(ctx context.Context, season int, rows []*models.WeeklyPlayerStats) (inserted, failedBatches int) {
	for start := 0; start < len(rows); start += l.batchSize {
		end := start + l.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		if err := l.db.Weekly.InsertBatch(ctx, chunk); err != nil {
			log.Error().
				Err(err).
				Int("season", season).
				Int("batch_start", start).
				Int("batch_size", len(chunk)).
				Msg("Batch insert failed, rows skipped")
			metrics.RecordBatchFailed("weekly_player_stats")
			failedBatches++
			continue
		}
		inserted += len(chunk)
	}

	metrics.RecordRowsInserted("weekly_player_stats", inserted)
	return inserted, failedBatches
}
