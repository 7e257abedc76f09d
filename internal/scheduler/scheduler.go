package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ffwarehouse/ingestion/internal/config"
	"ffwarehouse/ingestion/internal/loader"
	"ffwarehouse/ingestion/internal/sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler runs the warehouse's recurring jobs when the worker is enabled:
// a nightly refresh of watched leagues and the player directory, and a
// weekly top-up of the current season's stats after the Tuesday stat
// corrections land. Each job is the same one-shot operation the CLIs run.
type Scheduler struct {
	cfg      *config.Config
	syncer   *sync.Service
	weekly   *loader.WeeklyLoader
	seasonal *loader.SeasonalLoader
	cron     *cron.Cron
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config, syncer *sync.Service, weekly *loader.WeeklyLoader, seasonal *loader.SeasonalLoader) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		syncer:   syncer,
		weekly:   weekly,
		seasonal: seasonal,
		cron:     cron.New(),
	}
}

// Start registers and starts the cron jobs
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.cfg.NightlyRefreshCron, func() {
		log.Info().Msg("Running nightly league refresh...")
		s.refreshLeagues(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule nightly refresh: %w", err)
	}

	if _, err := s.cron.AddFunc(s.cfg.StatsRefreshCron, func() {
		log.Info().Msg("Running weekly stats refresh...")
		s.refreshStats(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule stats refresh: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("nightly", s.cfg.NightlyRefreshCron).
		Str("stats", s.cfg.StatsRefreshCron).
		Msg("Recurring jobs scheduled")

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")
	if s.cron != nil {
		s.cron.Stop()
	}
	log.Info().Msg("Scheduler stopped")
}

// refreshLeagues re-syncs the player directory and every watched league
func (s *Scheduler) refreshLeagues(ctx context.Context) {
	start := time.Now()

	if _, err := s.syncer.SyncPlayers(ctx); err != nil {
		log.Error().Err(err).Msg("Player directory refresh failed")
	}

	for _, leagueID := range s.cfg.WatchedLeagues {
		if err := s.syncer.FullSync(ctx, leagueID); err != nil {
			log.Error().Err(err).Str("league_id", leagueID).Msg("League refresh failed")
		}
	}

	log.Info().
		Int("leagues", len(s.cfg.WatchedLeagues)).
		Dur("duration", time.Since(start)).
		Msg("Nightly refresh complete")
}

// refreshStats force-reloads the current season's weekly stats and rebuilds
// its seasonal row from the stored weeks
func (s *Scheduler) refreshStats(ctx context.Context) {
	state, err := s.syncer.State(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Stats refresh failed: no NFL state")
		return
	}

	season, err := strconv.Atoi(state.Season)
	if err != nil {
		log.Error().Err(err).Str("season", state.Season).Msg("Stats refresh failed: bad season in NFL state")
		return
	}

	result, err := s.weekly.Load(ctx, []int{season}, true)
	if err != nil {
		log.Error().Err(err).Int("season", season).Msg("Weekly stats refresh failed")
		return
	}
	log.Info().
		Int("season", season).
		Int("rows", result.RowsInserted).
		Int("failed_batches", result.BatchesFailed).
		Msg("Weekly stats refreshed")

	seasonalResult, err := s.seasonal.Load(ctx, []int{season}, true, true)
	if err != nil {
		log.Error().Err(err).Int("season", season).Msg("Seasonal stats refresh failed")
		return
	}
	log.Info().
		Int("season", season).
		Int("rows", seasonalResult.RowsInserted).
		Msg("Seasonal stats refreshed")
}
