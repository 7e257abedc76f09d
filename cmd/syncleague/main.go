// Command syncleague pulls Sleeper league data into the warehouse. By
// default the argument is a username and every league the user belongs to
// this season is synced; with -league the argument is a single league ID.
// -players refreshes the full player directory first.
//
// Usage: syncleague [-league] [-players] <username|league-id>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"ffwarehouse/ingestion/internal/cache"
	"ffwarehouse/ingestion/internal/client"
	"ffwarehouse/ingestion/internal/config"
	"ffwarehouse/ingestion/internal/repository"
	"ffwarehouse/ingestion/internal/sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	byLeague := flag.Bool("league", false, "treat the argument as a league ID instead of a username")
	players := flag.Bool("players", false, "refresh the full player directory before syncing")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: syncleague [-league] [-players] <username|league-id>")
		os.Exit(2)
	}
	target := flag.Arg(0)

	cfg := config.MustLoad()
	setupLogger(cfg)

	ctx := context.Background()

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	redisCache, err := cache.NewRedisCache(cache.Config{
		Host:     cfg.RedisHost,
		Port:     strconv.Itoa(cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	sleeper := client.NewSleeper(cfg.SleeperBaseURL, cfg.SleeperRateLimit, cfg.SleeperTimeout)
	syncer := sync.New(sleeper, db, redisCache, cfg)

	start := time.Now()

	if *players {
		fmt.Println("Refreshing player directory...")
		counts, err := syncer.SyncPlayers(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Player directory sync failed")
		}
		fmt.Printf("Player directory refreshed: %d stored, %d skipped, %d failed\n",
			counts.OK, counts.Skipped, counts.Failed)
	}

	if *byLeague {
		fmt.Printf("Syncing league %s...\n", target)
		if err := syncer.FullSync(ctx, target); err != nil {
			log.Fatal().Err(err).Str("league_id", target).Msg("League sync failed")
		}
	} else {
		fmt.Printf("Syncing all leagues for user %s...\n", target)
		if err := syncer.FullSyncUser(ctx, target); err != nil {
			log.Fatal().Err(err).Str("user", target).Msg("User sync failed")
		}
	}

	fmt.Printf("Sync complete in %s\n", time.Since(start).Round(time.Second))
}

func setupLogger(cfg *config.Config) {
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
