package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Roster represents one fantasy team within a league
type Roster struct {
	ID               int             `db:"id"` // surrogate key
	RosterID         int             `db:"roster_id"`
	LeagueID         string          `db:"league_id"`
	OwnerID          sql.NullString  `db:"owner_id"`
	CoOwners         json.RawMessage `db:"co_owners"`
	Wins             int             `db:"wins"`
	Losses           int             `db:"losses"`
	Ties             int             `db:"ties"`
	WaiverPosition   sql.NullInt32   `db:"waiver_position"`
	WaiverBudgetUsed int             `db:"waiver_budget_used"` // FAAB spent
	TotalMoves       int             `db:"total_moves"`
	Settings         json.RawMessage `db:"settings"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// RosterEntry is a single rostered player on a roster for a given week
type RosterEntry struct {
	ID       int    `db:"id"`
	RosterID int    `db:"roster_id"` // surrogate roster key
	PlayerID string `db:"player_id"`
	Slot     string `db:"slot"` // STARTER or BN
	Week     int    `db:"week"`
	Season   string `db:"season"`
}

// RosterInput is the Sleeper roster payload
type RosterInput struct {
	RosterID int             `json:"roster_id"`
	OwnerID  string          `json:"owner_id"`
	CoOwners json.RawMessage `json:"co_owners"`
	Players  []string        `json:"players"`
	Starters []string        `json:"starters"`
	Settings rosterSettings  `json:"settings"`
	Raw      json.RawMessage `json:"-"`
}

type rosterSettings struct {
	Wins             int  `json:"wins"`
	Losses           int  `json:"losses"`
	Ties             int  `json:"ties"`
	WaiverPosition   *int `json:"waiver_position"`
	WaiverBudgetUsed int  `json:"waiver_budget_used"`
	TotalMoves       int  `json:"total_moves"`
}

// ToRoster converts RosterInput (from API) to Roster model
func (ri *RosterInput) ToRoster(leagueID string) *Roster {
	roster := &Roster{
		RosterID:         ri.RosterID,
		LeagueID:         leagueID,
		CoOwners:         ri.CoOwners,
		Wins:             ri.Settings.Wins,
		Losses:           ri.Settings.Losses,
		Ties:             ri.Settings.Ties,
		WaiverBudgetUsed: ri.Settings.WaiverBudgetUsed,
		TotalMoves:       ri.Settings.TotalMoves,
	}

	if ri.OwnerID != "" {
		roster.OwnerID = sql.NullString{String: ri.OwnerID, Valid: true}
	}
	if ri.Settings.WaiverPosition != nil {
		roster.WaiverPosition = sql.NullInt32{Int32: int32(*ri.Settings.WaiverPosition), Valid: true}
	}

	return roster
}

// Entries expands the roster's player list into RosterEntry rows for the
// given week. Players appearing in the starters list get the STARTER slot.
func (ri *RosterInput) Entries(rosterDBID int, season string, week int) []*RosterEntry {
	starters := make(map[string]struct{}, len(ri.Starters))
	for _, p := range ri.Starters {
		starters[p] = struct{}{}
	}

	entries := make([]*RosterEntry, 0, len(ri.Players))
	for _, playerID := range ri.Players {
		if playerID == "" {
			continue
		}
		slot := "BN"
		if _, ok := starters[playerID]; ok {
			slot = "STARTER"
		}
		entries = append(entries, &RosterEntry{
			RosterID: rosterDBID,
			PlayerID: playerID,
			Slot:     slot,
			Week:     week,
			Season:   season,
		})
	}
	return entries
}
