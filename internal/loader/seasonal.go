package loader

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"ffwarehouse/ingestion/internal/metrics"
	"ffwarehouse/ingestion/internal/models"
	"ffwarehouse/ingestion/internal/repository"
	"ffwarehouse/ingestion/internal/stats"
)

// SeasonFetcher is the upstream source of season-aggregate stats
type SeasonFetcher interface {
	FetchSeasonStats(ctx context.Context, season int) ([]*models.SeasonalPlayerStats, error)
}

// SeasonalLoader persists season-level player stats. Rows come from the
// upstream season-aggregate feed, or, with fromDB set, from reducing the
// weekly rows already stored for that season. Skip and force semantics
// match the weekly loader.
type SeasonalLoader struct {
	client    SeasonFetcher
	db        *repository.Database
	batchSize int
}

// NewSeasonalLoader creates a new seasonal stats loader
func NewSeasonalLoader(c SeasonFetcher, db *repository.Database, batchSize int) *SeasonalLoader {
	return &SeasonalLoader{
		client:    c,
		db:        db,
		batchSize: batchSize,
	}
}

// Load processes each requested season in order
func (l *SeasonalLoader) Load(ctx context.Context, seasons []int, force, fromDB bool) (*Result, error) {
	result := &Result{}

	for _, season := range seasons {
		count, err := l.db.Seasonal.CountBySeason(ctx, season)
		if err != nil {
			return result, fmt.Errorf("failed to check season %d: %w", season, err)
		}

		if count > 0 && !force {
			log.Info().
				Int("season", season).
				Int("existing_rows", count).
				Msg("Season already loaded, skipping")
			metrics.RecordSeasonSkipped("seasonal_player_stats")
			result.SeasonsSkipped++
			continue
		}

		rows, err := l.fetch(ctx, season, fromDB)
		if err != nil {
			log.Warn().
				Err(err).
				Int("season", season).
				Bool("from_db", fromDB).
				Msg("Failed to build seasonal stats, continuing with next season")
			metrics.RecordError("seasonal_loader", "fetch")
			result.SeasonsFailed++
			continue
		}
		if len(rows) == 0 {
			log.Warn().Int("season", season).Msg("No seasonal stats to load, skipping season")
			result.SeasonsFailed++
			continue
		}

		if count > 0 {
			if _, err := l.db.Seasonal.DeleteBySeasons(ctx, []int{season}); err != nil {
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
			Bool("from_db", fromDB).
			Msg("Season loaded")
	}

	return result, nil
}

func (l *SeasonalLoader) fetch(ctx context.Context, season int, fromDB bool) ([]*models.SeasonalPlayerStats, error) {
	if !fromDB {
		return l.client.FetchSeasonStats(ctx, season)
	}

	weekly, err := l.db.Weekly.GetBySeason(ctx, season)
	if err != nil {
		return nil, err
	}
	if len(weekly) == 0 {
		return nil, fmt.Errorf("no weekly rows stored for season %d", season)
	}

	rows := make([]models.WeeklyPlayerStats, len(weekly))
	for i, w := range weekly {
		rows[i] = *w
	}
	return stats.ReduceWeekly(rows), nil
}

func (l *SeasonalLoader) insertChunks(ctx context.Context, season int, rows []*models.SeasonalPlayerStats) (inserted, failedBatches int) {
	for start := 0; start < len(rows); start += l.batchSize {
		end := start + l.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		if err := l.db.Seasonal.InsertBatch(ctx, chunk); err != nil {
			log.Error().
				Err(err).
				Int("season", season).
				Int("batch_start", start).
				Int("batch_size", len(chunk)).
				Msg("Batch insert failed, rows skipped")
			metrics.RecordBatchFailed("seasonal_player_stats")
			failedBatches++
			continue
		}
		inserted += len(chunk)
	}

	metrics.RecordRowsInserted("seasonal_player_stats", inserted)
	return inserted, failedBatches
}
