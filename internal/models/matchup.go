package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Matchup represents one roster's side of a weekly head-to-head matchup.
// Rosters sharing a matchup_id in the same league and week played each other.
type Matchup struct {
	ID             int             `db:"id"`
	MatchupID      sql.NullInt32   `db:"matchup_id"`
	LeagueID       string          `db:"league_id"`
	RosterID       int             `db:"roster_id"`
	Week           int             `db:"week"`
	Points         sql.NullFloat64 `db:"points"`
	CustomPoints   sql.NullFloat64 `db:"custom_points"`
	Starters       json.RawMessage `db:"starters"`
	StartersPoints json.RawMessage `db:"starters_points"`
	Players        json.RawMessage `db:"players"`
	PlayersPoints  json.RawMessage `db:"players_points"`
	CreatedAt      time.Time       `db:"created_at"`
}

// MatchupInput is the Sleeper matchup payload
type MatchupInput struct {
	MatchupID      *int            `json:"matchup_id"`
	RosterID       int             `json:"roster_id"`
	Points         *float64        `json:"points"`
	CustomPoints   *float64        `json:"custom_points"`
	Starters       json.RawMessage `json:"starters"`
	StartersPoints json.RawMessage `json:"starters_points"`
	Players        json.RawMessage `json:"players"`
	PlayersPoints  json.RawMessage `json:"players_points"`
}

// ToMatchup converts MatchupInput (from API) to Matchup model
func (mi *MatchupInput) ToMatchup(leagueID string, week int) *Matchup {
	matchup := &Matchup{
		LeagueID:       leagueID,
		RosterID:       mi.RosterID,
		Week:           week,
		Starters:       mi.Starters,
		StartersPoints: mi.StartersPoints,
		Players:        mi.Players,
		PlayersPoints:  mi.PlayersPoints,
	}

	if mi.MatchupID != nil {
		matchup.MatchupID = sql.NullInt32{Int32: int32(*mi.MatchupID), Valid: true}
	}
	if mi.Points != nil {
		matchup.Points = sql.NullFloat64{Float64: *mi.Points, Valid: true}
	}
	if mi.CustomPoints != nil {
		matchup.CustomPoints = sql.NullFloat64{Float64: *mi.CustomPoints, Valid: true}
	}

	return matchup
}

// Valid reports whether the payload carries the keys required to store it.
func (mi *MatchupInput) Valid() bool {
	return mi.RosterID > 0
}
