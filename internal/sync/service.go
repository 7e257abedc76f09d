package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ffwarehouse/ingestion/internal/cache"
	"ffwarehouse/ingestion/internal/client"
	"ffwarehouse/ingestion/internal/config"
	"ffwarehouse/ingestion/internal/metrics"
	"ffwarehouse/ingestion/internal/models"
	"ffwarehouse/ingestion/internal/repository"
)

const (
	cacheKeyPlayers  = "sleeper:players"
	cacheKeyNFLState = "sleeper:nfl_state"
)

// Counts tallies per-record outcomes of one sync operation. A skipped
// record failed payload validation; a failed one hit a storage error.
type Counts struct {
	OK      int
	Skipped int
	Failed  int
}

// Service syncs Sleeper league data into the warehouse. The cache is
// optional: a nil cache, or any cache error, just means fetching from the
// API again.
type Service struct {
	client *client.Sleeper
	db     *repository.Database
	cache  *cache.RedisCache
	cfg    *config.Config
}

// New creates a new sync service
func New(c *client.Sleeper, db *repository.Database, rc *cache.RedisCache, cfg *config.Config) *Service {
	return &Service{
		client: c,
		db:     db,
		cache:  rc,
		cfg:    cfg,
	}
}

// State returns the current NFL season/week state, cached briefly because
// every league sync consults it
func (s *Service) State(ctx context.Context) (*models.NFLState, error) {
	var state models.NFLState
	if s.cache != nil {
		hit, err := s.cache.GetJSON(ctx, cacheKeyNFLState, &state)
		if err != nil {
			log.Warn().Err(err).Msg("NFL state cache read failed")
		}
		if hit {
			metrics.RecordCacheHit()
			return &state, nil
		}
		metrics.RecordCacheMiss()
	}

	fetched, err := s.client.GetNFLState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch NFL state: %w", err)
	}

	if s.cache != nil {
		ttl := time.Duration(s.cfg.CacheTTLState) * time.Second
		if err := s.cache.SetJSON(ctx, cacheKeyNFLState, fetched, ttl); err != nil {
			log.Warn().Err(err).Msg("NFL state cache write failed")
		}
	}

	return fetched, nil
}

// SyncPlayers refreshes the full player directory. The payload is cached
// for a day, matching how often Sleeper wants it fetched.
func (s *Service) SyncPlayers(ctx context.Context) (Counts, error) {
	start := time.Now()
	var counts Counts

	var directory map[string]models.PlayerInput
	fromCache := false
	if s.cache != nil {
		hit, err := s.cache.GetJSON(ctx, cacheKeyPlayers, &directory)
		if err != nil {
			log.Warn().Err(err).Msg("Player directory cache read failed")
		}
		if hit {
			metrics.RecordCacheHit()
			fromCache = true
		} else {
			metrics.RecordCacheMiss()
		}
	}

	if !fromCache {
		var err error
		directory, err = s.client.GetNFLPlayers(ctx)
		if err != nil {
			metrics.RecordSync("players", "failure", time.Since(start).Seconds())
			return counts, fmt.Errorf("failed to fetch player directory: %w", err)
		}
		if s.cache != nil {
			ttl := time.Duration(s.cfg.CacheTTLPlayers) * time.Second
			if err := s.cache.SetJSON(ctx, cacheKeyPlayers, directory, ttl); err != nil {
				log.Warn().Err(err).Msg("Player directory cache write failed")
			}
		}
	}

	batch := make([]*models.Player, 0, s.cfg.PlayerCommitEvery)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := s.db.Players.UpsertBatch(ctx, batch); err != nil {
			log.Error().Err(err).Int("batch_size", len(batch)).Msg("Player batch failed, records skipped")
			metrics.RecordError("sync", "player_batch")
			counts.Failed += len(batch)
		} else {
			counts.OK += len(batch)
		}
		batch = batch[:0]
	}

	for id, input := range directory {
		if id == "" {
			counts.Skipped++
			continue
		}
		batch = append(batch, input.ToPlayer(id))
		if len(batch) >= s.cfg.PlayerCommitEvery {
			flush()
		}
	}
	flush()

	if total, err := s.db.Players.Count(ctx); err == nil {
		metrics.PlayersInDirectory.Set(float64(total))
	}

	log.Info().
		Int("ok", counts.OK).
		Int("skipped", counts.Skipped).
		Int("failed", counts.Failed).
		Bool("from_cache", fromCache).
		Dur("duration", time.Since(start)).
		Msg("Player directory synced")
	metrics.RecordSync("players", "success", time.Since(start).Seconds())

	return counts, nil
}

// SyncUser fetches a user by username or ID and stores it
func (s *Service) SyncUser(ctx context.Context, usernameOrID string) (*models.User, error) {
	input, err := s.client.GetUser(ctx, usernameOrID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", usernameOrID, err)
	}
	if !input.Valid() {
		return nil, fmt.Errorf("user payload for %s is missing required keys", usernameOrID)
	}

	user := input.ToUser()
	if err := s.db.Users.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SyncUserLeagues stores all of a user's leagues for a season and returns
// the synced league IDs
func (s *Service) SyncUserLeagues(ctx context.Context, userID, season string) ([]string, Counts, error) {
	var counts Counts

	inputs, err := s.client.GetUserLeagues(ctx, userID, season)
	if err != nil {
		return nil, counts, fmt.Errorf("failed to fetch leagues for user %s: %w", userID, err)
	}

	leagueIDs := make([]string, 0, len(inputs))
	for i := range inputs {
		input := &inputs[i]
		if !input.Valid() {
			log.Warn().Str("league_id", input.LeagueID).Msg("Skipping league with missing keys")
			counts.Skipped++
			continue
		}
		if err := s.db.Leagues.Upsert(ctx, input.ToLeague()); err != nil {
			log.Error().Err(err).Str("league_id", input.LeagueID).Msg("Failed to store league")
			counts.Failed++
			continue
		}
		leagueIDs = append(leagueIDs, input.LeagueID)
		counts.OK++
	}

	return leagueIDs, counts, nil
}

// SyncLeague fetches and stores a single league by ID
func (s *Service) SyncLeague(ctx context.Context, leagueID string) (*models.League, error) {
	input, err := s.client.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch league %s: %w", leagueID, err)
	}
	if !input.Valid() {
		return nil, fmt.Errorf("league payload for %s is missing required keys", leagueID)
	}

	league := input.ToLeague()
	if err := s.db.Leagues.Upsert(ctx, league); err != nil {
		return nil, err
	}
	return league, nil
}

// SyncLeagueUsers stores the members of a league
func (s *Service) SyncLeagueUsers(ctx context.Context, leagueID string) (Counts, error) {
	var counts Counts

	inputs, err := s.client.GetLeagueUsers(ctx, leagueID)
	if err != nil {
		return counts, fmt.Errorf("failed to fetch users for league %s: %w", leagueID, err)
	}

	for i := range inputs {
		input := &inputs[i]
		if !input.Valid() {
			counts.Skipped++
			continue
		}
		if err := s.db.Users.Upsert(ctx, input.ToUser()); err != nil {
			log.Error().Err(err).Str("user_id", input.UserID).Msg("Failed to store user")
			counts.Failed++
			continue
		}
		counts.OK++
	}

	return counts, nil
}

// SyncLeagueRosters stores a league's rosters and expands each roster's
// player list into per-week entries
func (s *Service) SyncLeagueRosters(ctx context.Context, leagueID, season string, week int) (Counts, error) {
	var counts Counts

	inputs, err := s.client.GetLeagueRosters(ctx, leagueID)
	if err != nil {
		return counts, fmt.Errorf("failed to fetch rosters for league %s: %w", leagueID, err)
	}

	for i := range inputs {
		input := &inputs[i]
		if input.RosterID == 0 {
			counts.Skipped++
			continue
		}

		roster := input.ToRoster(leagueID)
		if err := s.db.Rosters.Upsert(ctx, roster); err != nil {
			log.Error().Err(err).Int("roster_id", input.RosterID).Msg("Failed to store roster")
			counts.Failed++
			continue
		}

		entries := input.Entries(roster.ID, season, week)
		if err := s.db.Rosters.ReplaceEntries(ctx, roster.ID, season, week, entries); err != nil {
			log.Error().Err(err).Int("roster_id", input.RosterID).Msg("Failed to store roster entries")
			counts.Failed++
			continue
		}
		counts.OK++
	}

	return counts, nil
}

// SyncLeagueMatchups stores a league's matchups for one week
func (s *Service) SyncLeagueMatchups(ctx context.Context, leagueID string, week int) (Counts, error) {
	var counts Counts

	inputs, err := s.client.GetLeagueMatchups(ctx, leagueID, week)
	if err != nil {
		return counts, fmt.Errorf("failed to fetch matchups for league %s week %d: %w", leagueID, week, err)
	}

	for i := range inputs {
		input := &inputs[i]
		if !input.Valid() {
			counts.Skipped++
			continue
		}
		if err := s.db.Matchups.Upsert(ctx, input.ToMatchup(leagueID, week)); err != nil {
			log.Error().Err(err).Int("roster_id", input.RosterID).Int("week", week).Msg("Failed to store matchup")
			counts.Failed++
			continue
		}
		counts.OK++
	}

	return counts, nil
}

// SyncLeagueTransactions stores a league's transactions for weeks 1 through
// throughWeek. A failed week is logged and skipped; later weeks still sync.
func (s *Service) SyncLeagueTransactions(ctx context.Context, leagueID string, throughWeek int) (Counts, error) {
	var counts Counts

	for week := 1; week <= throughWeek; week++ {
		inputs, err := s.client.GetLeagueTransactions(ctx, leagueID, week)
		if err != nil {
			log.Warn().Err(err).Str("league_id", leagueID).Int("week", week).Msg("Failed to fetch transactions for week")
			continue
		}

		for i := range inputs {
			input := &inputs[i]
			if !input.Valid() {
				counts.Skipped++
				continue
			}
			if err := s.db.Transactions.Upsert(ctx, input.ToTransaction(leagueID)); err != nil {
				log.Error().Err(err).Str("transaction_id", input.TransactionID).Msg("Failed to store transaction")
				counts.Failed++
				continue
			}
			counts.OK++
		}
	}

	return counts, nil
}

// FullSync pulls everything for one league: the league itself, its members,
// rosters, current-week matchups, and season-to-date transactions. The
// current NFL state decides which week to sync.
func (s *Service) FullSync(ctx context.Context, leagueID string) error {
	start := time.Now()

	state, err := s.State(ctx)
	if err != nil {
		metrics.RecordSync("league_full", "failure", time.Since(start).Seconds())
		return err
	}
	week := state.Week
	if week < 1 {
		week = 1
	}

	league, err := s.SyncLeague(ctx, leagueID)
	if err != nil {
		metrics.RecordSync("league_full", "failure", time.Since(start).Seconds())
		return err
	}

	users, err := s.SyncLeagueUsers(ctx, leagueID)
	if err != nil {
		metrics.RecordSync("league_full", "failure", time.Since(start).Seconds())
		return err
	}

	rosters, err := s.SyncLeagueRosters(ctx, leagueID, league.Season, week)
	if err != nil {
		metrics.RecordSync("league_full", "failure", time.Since(start).Seconds())
		return err
	}

	matchups, err := s.SyncLeagueMatchups(ctx, leagueID, week)
	if err != nil {
		metrics.RecordSync("league_full", "failure", time.Since(start).Seconds())
		return err
	}

	transactions, err := s.SyncLeagueTransactions(ctx, leagueID, week)
	if err != nil {
		metrics.RecordSync("league_full", "failure", time.Since(start).Seconds())
		return err
	}

	log.Info().
		Str("league_id", leagueID).
		Str("league", league.Name).
		Int("week", week).
		Int("users", users.OK).
		Int("rosters", rosters.OK).
		Int("matchups", matchups.OK).
		Int("transactions", transactions.OK).
		Dur("duration", time.Since(start)).
		Msg("League fully synced")
	metrics.RecordSync("league_full", "success", time.Since(start).Seconds())

	return nil
}

// FullSyncUser syncs a user and every league they belong to this season
func (s *Service) FullSyncUser(ctx context.Context, usernameOrID string) error {
	state, err := s.State(ctx)
	if err != nil {
		return err
	}

	user, err := s.SyncUser(ctx, usernameOrID)
	if err != nil {
		return err
	}

	leagueIDs, counts, err := s.SyncUserLeagues(ctx, user.ID, state.LeagueSeason)
	if err != nil {
		return err
	}
	log.Info().
		Str("username", user.Username).
		Int("leagues", counts.OK).
		Int("skipped", counts.Skipped).
		Msg("User leagues synced")

	for _, leagueID := range leagueIDs {
		if err := s.FullSync(ctx, leagueID); err != nil {
			// One broken league should not stop the rest
			log.Error().Err(err).Str("league_id", leagueID).Msg("League sync failed, continuing")
			metrics.RecordError("sync", "league")
		}
	}

	return nil
}
