package models

import (
	"database/sql"
	"strconv"
	"time"
)

// Player represents an NFL player in the Sleeper directory
type Player struct {
	ID            string         `db:"id"` // Sleeper player ID
	FirstName     sql.NullString `db:"first_name"`
	LastName      sql.NullString `db:"last_name"`
	FullName      sql.NullString `db:"full_name"`
	Position      sql.NullString `db:"position"`
	Team          sql.NullString `db:"team"`
	College       sql.NullString `db:"college"`
	Height        sql.NullString `db:"height"`
	Weight        sql.NullString `db:"weight"`
	Age           sql.NullInt32  `db:"age"`
	YearsExp      sql.NullInt32  `db:"years_exp"`
	Active        bool           `db:"active"`
	InjuryStatus  sql.NullString `db:"injury_status"`
	FantasyDataID sql.NullString `db:"fantasy_data_id"`
	RotowireID    sql.NullString `db:"rotowire_id"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// PlayerInput is one entry of the Sleeper player-directory payload. The
// directory is keyed by player id; the id is injected by the caller because
// the payload nests it as the map key.
type PlayerInput struct {
	PlayerID      string  `json:"player_id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	FullName      string  `json:"full_name"`
	Position      string  `json:"position"`
	Team          string  `json:"team"`
	College       string  `json:"college"`
	Height        string  `json:"height"`
	Weight        string  `json:"weight"`
	Age           *int    `json:"age"`
	YearsExp      *int    `json:"years_exp"`
	Active        bool    `json:"active"`
	InjuryStatus  string  `json:"injury_status"`
	FantasyDataID *int64  `json:"fantasy_data_id"`
	RotowireID    *int64  `json:"rotowire_id"`
}

// ToPlayer converts PlayerInput (from API) to Player model
func (pi *PlayerInput) ToPlayer(id string) *Player {
	player := &Player{
		ID:     id,
		Active: pi.Active,
	}

	setNullString := func(dst *sql.NullString, v string) {
		if v != "" {
			*dst = sql.NullString{String: v, Valid: true}
		}
	}
	setNullString(&player.FirstName, pi.FirstName)
	setNullString(&player.LastName, pi.LastName)
	setNullString(&player.FullName, pi.FullName)
	setNullString(&player.Position, pi.Position)
	setNullString(&player.Team, pi.Team)
	setNullString(&player.College, pi.College)
	setNullString(&player.Height, pi.Height)
	setNullString(&player.Weight, pi.Weight)
	setNullString(&player.InjuryStatus, pi.InjuryStatus)

	if pi.Age != nil {
		player.Age = sql.NullInt32{Int32: int32(*pi.Age), Valid: true}
	}
	if pi.YearsExp != nil {
		player.YearsExp = sql.NullInt32{Int32: int32(*pi.YearsExp), Valid: true}
	}
	if pi.FantasyDataID != nil {
		player.FantasyDataID = sql.NullString{String: strconv.FormatInt(*pi.FantasyDataID, 10), Valid: true}
	}
	if pi.RotowireID != nil {
		player.RotowireID = sql.NullString{String: strconv.FormatInt(*pi.RotowireID, 10), Valid: true}
	}

	return player
}

// TrendingPlayer is one entry of the Sleeper trending-players payload
type TrendingPlayer struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"` // adds or drops over the lookback window
}

// NFLState is the Sleeper season/week state payload
type NFLState struct {
	Week         int    `json:"week"`
	Season       string `json:"season"`
	SeasonType   string `json:"season_type"`
	LeagueSeason string `json:"league_season"`
	DisplayWeek  int    `json:"display_week"`
}
