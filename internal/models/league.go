package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// League represents a fantasy league
type League struct {
	ID              string          `db:"id"` // Sleeper league ID
	Name            string          `db:"name"`
	Season          string          `db:"season"`
	Sport           string          `db:"sport"`
	Status          sql.NullString  `db:"status"` // pre_draft, drafting, in_season, complete
	SeasonType      sql.NullString  `db:"season_type"`
	TotalRosters    sql.NullInt32   `db:"total_rosters"`
	ScoringSettings json.RawMessage `db:"scoring_settings"`
	RosterPositions json.RawMessage `db:"roster_positions"`
	Settings        json.RawMessage `db:"settings"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// LeagueInput is the Sleeper league payload
type LeagueInput struct {
	LeagueID        string          `json:"league_id"`
	Name            string          `json:"name"`
	Season          string          `json:"season"`
	Sport           string          `json:"sport"`
	Status          string          `json:"status"`
	SeasonType      string          `json:"season_type"`
	TotalRosters    *int            `json:"total_rosters"`
	ScoringSettings json.RawMessage `json:"scoring_settings"`
	RosterPositions json.RawMessage `json:"roster_positions"`
	Settings        json.RawMessage `json:"settings"`
}

// ToLeague converts LeagueInput (from API) to League model
func (li *LeagueInput) ToLeague() *League {
	league := &League{
		ID:              li.LeagueID,
		Name:            li.Name,
		Season:          li.Season,
		Sport:           li.Sport,
		ScoringSettings: li.ScoringSettings,
		RosterPositions: li.RosterPositions,
		Settings:        li.Settings,
	}

	if league.Sport == "" {
		league.Sport = "nfl"
	}
	if li.Status != "" {
		league.Status = sql.NullString{String: li.Status, Valid: true}
	}
	if li.SeasonType != "" {
		league.SeasonType = sql.NullString{String: li.SeasonType, Valid: true}
	}
	if li.TotalRosters != nil {
		league.TotalRosters = sql.NullInt32{Int32: int32(*li.TotalRosters), Valid: true}
	}

	return league
}

// Valid reports whether the payload carries the keys required to store it.
func (li *LeagueInput) Valid() bool {
	return li.LeagueID != "" && li.Name != "" && li.Season != ""
}
