package client

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"ffwarehouse/ingestion/internal/models"
	"ffwarehouse/ingestion/internal/stats"
)

// NFLVerse fetches bulk historical player stats published as per-season CSV
// files on nflverse release pages. One GET per season, no retries: a failed
// download means no data for that season.
type NFLVerse struct {
	baseURL    string
	httpClient *http.Client
}

// NewNFLVerse creates a new nflverse data client
func NewNFLVerse(baseURL string, timeout time.Duration) *NFLVerse {
	return &NFLVerse{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// header maps CSV column names to their indexes, tolerating the column
// renames that show up across nflverse release years
type header map[string]int

func newHeader(record []string) header {
	h := make(header, len(record))
	for i, name := range record {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h
}

// str returns the first present column among names, or ""
func (h header) str(record []string, names ...string) string {
	for _, name := range names {
		if i, ok := h[name]; ok && i < len(record) {
			return record[i]
		}
	}
	return ""
}

// num parses the first present column among names; empty and "NA" cells
// come back as null
func (h header) num(record []string, names ...string) sql.NullFloat64 {
	raw := strings.TrimSpace(h.str(record, names...))
	if raw == "" || raw == "NA" {
		return sql.NullFloat64{}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func (c *NFLVerse) fetchCSV(ctx context.Context, path string) (*csv.Reader, io.Closer, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	log.Debug().Str("url", url).Msg("Downloading nflverse CSV")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		resp.Body.Close()
		return nil, nil, fmt.Errorf("unexpected status %d for %s: %s", resp.StatusCode, url, string(body))
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	return reader, resp.Body, nil
}

// FetchWeeklyStats downloads one season of per-week player stats. Rows
// missing their identity key (player, season, week) are skipped and
// counted, not fatal.
func (c *NFLVerse) FetchWeeklyStats(ctx context.Context, season int) ([]*models.WeeklyPlayerStats, error) {
	path := fmt.Sprintf("player_stats/player_stats_%d.csv", season)
	reader, body, err := c.fetchCSV(ctx, path)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	head, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	h := newHeader(head)

	var rows []*models.WeeklyPlayerStats
	var skipped int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		playerID := h.str(record, "player_id")
		rowSeason, _ := strconv.Atoi(h.str(record, "season"))
		week, _ := strconv.Atoi(h.str(record, "week"))
		if playerID == "" || rowSeason == 0 || week == 0 {
			skipped++
			continue
		}

		rows = append(rows, &models.WeeklyPlayerStats{
			PlayerID:          playerID,
			Season:            rowSeason,
			Week:              week,
			PlayerName:        h.str(record, "player_name"),
			PlayerDisplayName: h.str(record, "player_display_name"),
			Position:          h.str(record, "position"),
			PositionGroup:     h.str(record, "position_group"),
			Team:              h.str(record, "recent_team", "team"),
			OpponentTeam:      h.str(record, "opponent_team"),
			SeasonType:        h.str(record, "season_type"),

			Completions:            h.num(record, "completions"),
			Attempts:               h.num(record, "attempts"),
			PassingYards:           h.num(record, "passing_yards"),
			PassingTDs:             h.num(record, "passing_tds"),
			Interceptions:          h.num(record, "interceptions"),
			Sacks:                  h.num(record, "sacks"),
			SackYards:              h.num(record, "sack_yards"),
			SackFumbles:            h.num(record, "sack_fumbles"),
			SackFumblesLost:        h.num(record, "sack_fumbles_lost"),
			PassingAirYards:        h.num(record, "passing_air_yards"),
			PassingYardsAfterCatch: h.num(record, "passing_yards_after_catch"),
			PassingFirstDowns:      h.num(record, "passing_first_downs"),
			PassingEPA:             h.num(record, "passing_epa"),
			Passing2PtConversions:  h.num(record, "passing_2pt_conversions"),

			Carries:               h.num(record, "carries"),
			RushingYards:          h.num(record, "rushing_yards"),
			RushingTDs:            h.num(record, "rushing_tds"),
			RushingFumbles:        h.num(record, "rushing_fumbles"),
			RushingFumblesLost:    h.num(record, "rushing_fumbles_lost"),
			RushingFirstDowns:     h.num(record, "rushing_first_downs"),
			RushingEPA:            h.num(record, "rushing_epa"),
			Rushing2PtConversions: h.num(record, "rushing_2pt_conversions"),

			Targets:                  h.num(record, "targets"),
			Receptions:               h.num(record, "receptions"),
			ReceivingYards:           h.num(record, "receiving_yards"),
			ReceivingTDs:             h.num(record, "receiving_tds"),
			ReceivingFumbles:         h.num(record, "receiving_fumbles"),
			ReceivingFumblesLost:     h.num(record, "receiving_fumbles_lost"),
			ReceivingAirYards:        h.num(record, "receiving_air_yards"),
			ReceivingYardsAfterCatch: h.num(record, "receiving_yards_after_catch"),
			ReceivingFirstDowns:      h.num(record, "receiving_first_downs"),
			ReceivingEPA:             h.num(record, "receiving_epa"),
			Receiving2PtConversions:  h.num(record, "receiving_2pt_conversions"),

			SpecialTeamsTDs:  h.num(record, "special_teams_tds"),
			FantasyPoints:    h.num(record, "fantasy_points"),
			FantasyPointsPPR: h.num(record, "fantasy_points_ppr"),

			TargetShare:   h.num(record, "target_share"),
			AirYardsShare: h.num(record, "air_yards_share"),
			WOPR:          h.num(record, "wopr"),
		})
	}

	log.Info().
		Int("season", season).
		Int("rows", len(rows)).
		Int("skipped", skipped).
		Msg("Fetched weekly stats")

	return rows, nil
}

// FetchSeasonStats downloads one season of pre-aggregated season totals and
// computes the derived ratio metrics locally so they match what the reducer
// would produce from weekly rows.
func (c *NFLVerse) FetchSeasonStats(ctx context.Context, season int) ([]*models.SeasonalPlayerStats, error) {
	path := fmt.Sprintf("player_stats/player_stats_season_%d.csv", season)
	reader, body, err := c.fetchCSV(ctx, path)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	head, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	h := newHeader(head)

	var rows []*models.SeasonalPlayerStats
	var skipped int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		playerID := h.str(record, "player_id")
		rowSeason, _ := strconv.Atoi(h.str(record, "season"))
		if playerID == "" || rowSeason == 0 {
			skipped++
			continue
		}
		games, _ := strconv.Atoi(h.str(record, "games"))

		s := &models.SeasonalPlayerStats{
			PlayerID:          playerID,
			Season:            rowSeason,
			PlayerName:        h.str(record, "player_name"),
			PlayerDisplayName: h.str(record, "player_display_name"),
			Position:          h.str(record, "position"),
			PositionGroup:     h.str(record, "position_group"),
			Team:              h.str(record, "recent_team", "team"),
			GamesPlayed:       games,
			SeasonType:        "REG",

			Completions:            h.num(record, "completions"),
			Attempts:               h.num(record, "attempts"),
			PassingYards:           h.num(record, "passing_yards"),
			PassingTDs:             h.num(record, "passing_tds"),
			Interceptions:          h.num(record, "interceptions"),
			Sacks:                  h.num(record, "sacks"),
			SackYards:              h.num(record, "sack_yards"),
			PassingAirYards:        h.num(record, "passing_air_yards"),
			PassingYardsAfterCatch: h.num(record, "passing_yards_after_catch"),
			PassingFirstDowns:      h.num(record, "passing_first_downs"),
			PassingEPA:             h.num(record, "passing_epa"),
			Passing2PtConversions:  h.num(record, "passing_2pt_conversions"),

			Carries:               h.num(record, "carries"),
			RushingYards:          h.num(record, "rushing_yards"),
			RushingTDs:            h.num(record, "rushing_tds"),
			RushingFumbles:        h.num(record, "rushing_fumbles"),
			RushingFumblesLost:    h.num(record, "rushing_fumbles_lost"),
			RushingFirstDowns:     h.num(record, "rushing_first_downs"),
			RushingEPA:            h.num(record, "rushing_epa"),
			Rushing2PtConversions: h.num(record, "rushing_2pt_conversions"),

			Targets:                  h.num(record, "targets"),
			Receptions:               h.num(record, "receptions"),
			ReceivingYards:           h.num(record, "receiving_yards"),
			ReceivingTDs:             h.num(record, "receiving_tds"),
			ReceivingFumbles:         h.num(record, "receiving_fumbles"),
			ReceivingFumblesLost:     h.num(record, "receiving_fumbles_lost"),
			ReceivingAirYards:        h.num(record, "receiving_air_yards"),
			ReceivingYardsAfterCatch: h.num(record, "receiving_yards_after_catch"),
			ReceivingFirstDowns:      h.num(record, "receiving_first_downs"),
			ReceivingEPA:             h.num(record, "receiving_epa"),
			Receiving2PtConversions:  h.num(record, "receiving_2pt_conversions"),

			SpecialTeamsTDs:  h.num(record, "special_teams_tds"),
			FantasyPoints:    h.num(record, "fantasy_points"),
			FantasyPointsPPR: h.num(record, "fantasy_points_ppr"),

			TargetShare:   h.num(record, "tgt_sh", "target_share"),
			AirYardsShare: h.num(record, "ay_sh", "air_yards_share"),
			WOPR:          h.num(record, "wopr", "wopr_y"),
		}

		d := stats.Derive(stats.Totals{
			Completions:      s.Completions.Float64,
			Attempts:         s.Attempts.Float64,
			PassingYards:     s.PassingYards.Float64,
			Carries:          s.Carries.Float64,
			RushingYards:     s.RushingYards.Float64,
			Targets:          s.Targets.Float64,
			Receptions:       s.Receptions.Float64,
			ReceivingYards:   s.ReceivingYards.Float64,
			FantasyPoints:    s.FantasyPoints.Float64,
			FantasyPointsPPR: s.FantasyPointsPPR.Float64,
			GamesPlayed:      s.GamesPlayed,
		})
		s.CompletionPercentage = d.CompletionPercentage
		s.YardsPerAttempt = d.YardsPerAttempt
		s.YardsPerCompletion = d.YardsPerCompletion
		s.YardsPerCarry = d.YardsPerCarry
		s.CatchPercentage = d.CatchPercentage
		s.YardsPerTarget = d.YardsPerTarget
		s.YardsPerReception = d.YardsPerReception
		s.FantasyPointsPerGame = d.FantasyPointsPerGame
		s.FantasyPointsPPRPerGame = d.FantasyPointsPPRPerGame

		rows = append(rows, s)
	}

	log.Info().
		Int("season", season).
		Int("rows", len(rows)).
		Int("skipped", skipped).
		Msg("Fetched seasonal stats")

	return rows, nil
}
