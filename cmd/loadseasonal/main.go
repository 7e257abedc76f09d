// Command loadseasonal persists season-total player stats for a range of
// seasons, either from the upstream season-aggregate feed or, with -from-db,
// by reducing the weekly rows already stored for each season.
//
// Usage: loadseasonal [-force] [-from-db] <start-year> [end-year]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"ffwarehouse/ingestion/internal/client"
	"ffwarehouse/ingestion/internal/config"
	"ffwarehouse/ingestion/internal/loader"
	"ffwarehouse/ingestion/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	force := flag.Bool("force", false, "delete and reload seasons that already have data")
	fromDB := flag.Bool("from-db", false, "reduce stored weekly rows instead of fetching season aggregates")
	flag.Parse()

	seasons, err := parseSeasonArgs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Usage: loadseasonal [-force] [-from-db] <start-year> [end-year]\n%v\n", err)
		os.Exit(2)
	}

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

	nflverse := client.NewNFLVerse(cfg.NFLVerseBaseURL, cfg.NFLVerseTimeout)
	l := loader.NewSeasonalLoader(nflverse, db, cfg.BatchSize)

	start := time.Now()
	log.Info().
		Ints("seasons", seasons).
		Bool("force", *force).
		Bool("from_db", *fromDB).
		Msg("Starting seasonal stats load")

	result, err := l.Load(ctx, seasons, *force, *fromDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Seasonal stats load failed")
	}

	fmt.Printf("Seasonal stats load complete in %s\n", time.Since(start).Round(time.Second))
	fmt.Printf("  seasons loaded:  %d\n", result.SeasonsLoaded)
	fmt.Printf("  seasons skipped: %d\n", result.SeasonsSkipped)
	fmt.Printf("  seasons failed:  %d\n", result.SeasonsFailed)
	fmt.Printf("  rows inserted:   %d\n", result.RowsInserted)
	fmt.Printf("  failed batches:  %d\n", result.BatchesFailed)
}

// parseSeasonArgs expands "<start> [end]" into an inclusive season list
func parseSeasonArgs(args []string) ([]int, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("expected a start year and optional end year")
	}

	start, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid start year %q", args[0])
	}
	end := start
	if len(args) == 2 {
		end, err = strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid end year %q", args[1])
		}
	}
	if start < 1999 || end < start {
		return nil, fmt.Errorf("year range must start at 1999 or later and end >= start")
	}

	seasons := make([]int, 0, end-start+1)
	for y := start; y <= end; y++ {
		seasons = append(seasons, y)
	}
	return seasons, nil
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
