package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"ffwarehouse/ingestion/internal/models"
)

// TrendType selects which trending-player list to fetch
type TrendType string

const (
	TrendAdd  TrendType = "add"
	TrendDrop TrendType = "drop"
)

// Sleeper is the Sleeper fantasy API client. The API is unauthenticated and
// read-only; the published limit is requests per minute, enforced here as a
// fixed minimum interval between calls. Requests are not retried: a failed
// call means no data for that key and the caller moves on.
type Sleeper struct {
	baseURL    string
	httpClient *http.Client

	mu          sync.Mutex
	minInterval time.Duration
	lastRequest time.Time
}

// NewSleeper creates a new Sleeper API client
func NewSleeper(baseURL string, requestsPerMinute int, timeout time.Duration) *Sleeper {
	var minInterval time.Duration
	if requestsPerMinute > 0 {
		minInterval = time.Minute / time.Duration(requestsPerMinute)
	}

	return &Sleeper{
		baseURL:     baseURL,
		minInterval: minInterval,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// throttle sleeps until at least minInterval has passed since the last call
func (c *Sleeper) throttle(ctx context.Context) error {
	c.mu.Lock()
	wait := c.minInterval - time.Since(c.lastRequest)
	if wait < 0 {
		wait = 0
	}
	c.lastRequest = time.Now().Add(wait)
	c.mu.Unlock()

	if wait == 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// get performs a single throttled GET request and decodes the JSON body into out
func (c *Sleeper) get(ctx context.Context, path string, out interface{}) error {
	if err := c.throttle(ctx); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debug().Str("url", url).Msg("Sleeper API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Sleeper returns a bare "null" body for unknown keys
	if len(body) == 0 || string(body) == "null" {
		return fmt.Errorf("no data for %s", url)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}

	log.Debug().
		Str("url", url).
		Dur("duration", time.Since(start)).
		Int("bytes", len(body)).
		Msg("Sleeper API response")

	return nil
}

// GetUser fetches a user by username or user ID
func (c *Sleeper) GetUser(ctx context.Context, usernameOrID string) (*models.UserInput, error) {
	var user models.UserInput
	if err := c.get(ctx, fmt.Sprintf("user/%s", usernameOrID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserLeagues fetches all of a user's NFL leagues for a season
func (c *Sleeper) GetUserLeagues(ctx context.Context, userID, season string) ([]models.LeagueInput, error) {
	var leagues []models.LeagueInput
	path := fmt.Sprintf("user/%s/leagues/nfl/%s", userID, season)
	if err := c.get(ctx, path, &leagues); err != nil {
		return nil, err
	}
	return leagues, nil
}

// GetLeague fetches a league by ID
func (c *Sleeper) GetLeague(ctx context.Context, leagueID string) (*models.LeagueInput, error) {
	var league models.LeagueInput
	if err := c.get(ctx, fmt.Sprintf("league/%s", leagueID), &league); err != nil {
		return nil, err
	}
	return &league, nil
}

// GetLeagueUsers fetches the members of a league
func (c *Sleeper) GetLeagueUsers(ctx context.Context, leagueID string) ([]models.UserInput, error) {
	var users []models.UserInput
	if err := c.get(ctx, fmt.Sprintf("league/%s/users", leagueID), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetLeagueRosters fetches the rosters of a league
func (c *Sleeper) GetLeagueRosters(ctx context.Context, leagueID string) ([]models.RosterInput, error) {
	var rosters []models.RosterInput
	if err := c.get(ctx, fmt.Sprintf("league/%s/rosters", leagueID), &rosters); err != nil {
		return nil, err
	}
	return rosters, nil
}

// GetLeagueMatchups fetches a league's matchups for one week
func (c *Sleeper) GetLeagueMatchups(ctx context.Context, leagueID string, week int) ([]models.MatchupInput, error) {
	var matchups []models.MatchupInput
	path := fmt.Sprintf("league/%s/matchups/%d", leagueID, week)
	if err := c.get(ctx, path, &matchups); err != nil {
		return nil, err
	}
	return matchups, nil
}

// GetLeagueTransactions fetches a league's transactions for one week
func (c *Sleeper) GetLeagueTransactions(ctx context.Context, leagueID string, week int) ([]models.TransactionInput, error) {
	var txns []models.TransactionInput
	path := fmt.Sprintf("league/%s/transactions/%d", leagueID, week)
	if err := c.get(ctx, path, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// GetNFLPlayers fetches the full player directory, keyed by player ID.
// The payload runs to several megabytes; Sleeper asks that it be fetched
// at most once a day.
func (c *Sleeper) GetNFLPlayers(ctx context.Context) (map[string]models.PlayerInput, error) {
	var players map[string]models.PlayerInput
	if err := c.get(ctx, "players/nfl", &players); err != nil {
		return nil, err
	}
	return players, nil
}

// GetTrendingPlayers fetches the most added or dropped players over the
// given lookback window
func (c *Sleeper) GetTrendingPlayers(ctx context.Context, trend TrendType, lookbackHours, limit int) ([]models.TrendingPlayer, error) {
	var trending []models.TrendingPlayer
	path := fmt.Sprintf("players/nfl/trending/%s?lookback_hours=%d&limit=%d", trend, lookbackHours, limit)
	if err := c.get(ctx, path, &trending); err != nil {
		return nil, err
	}
	return trending, nil
}

// GetNFLState fetches the current NFL season and week state
func (c *Sleeper) GetNFLState(ctx context.Context) (*models.NFLState, error) {
	var state models.NFLState
	if err := c.get(ctx, "state/nfl", &state); err != nil {
		return nil, err
	}
	return &state, nil
}
