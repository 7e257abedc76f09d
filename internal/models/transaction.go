package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Transaction represents a league transaction (trade, waiver claim, or
// free-agent move). Adds and drops map player id to roster id; waiver budget
// entries carry FAAB bids.
type Transaction struct {
	ID           string          `db:"id"` // Sleeper transaction ID
	LeagueID     string          `db:"league_id"`
	Type         string          `db:"type"` // trade, waiver, free_agent
	Status       sql.NullString  `db:"status"`
	Creator      sql.NullString  `db:"creator"`
	Created      sql.NullTime    `db:"created"`
	ConsenterIDs json.RawMessage `db:"consenter_ids"`
	RosterIDs    json.RawMessage `db:"roster_ids"`
	Adds         json.RawMessage `db:"adds"`
	Drops        json.RawMessage `db:"drops"`
	DraftPicks   json.RawMessage `db:"draft_picks"`
	WaiverBudget json.RawMessage `db:"waiver_budget"`
	Settings     json.RawMessage `db:"settings"`
	Metadata     json.RawMessage `db:"metadata"`
	CreatedAt    time.Time       `db:"created_at"`
}

// TransactionInput is the Sleeper transaction payload
type TransactionInput struct {
	TransactionID string          `json:"transaction_id"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Creator       string          `json:"creator"`
	Created       *int64          `json:"created"` // epoch millis
	ConsenterIDs  json.RawMessage `json:"consenter_ids"`
	RosterIDs     json.RawMessage `json:"roster_ids"`
	Adds          json.RawMessage `json:"adds"`
	Drops         json.RawMessage `json:"drops"`
	DraftPicks    json.RawMessage `json:"draft_picks"`
	WaiverBudget  json.RawMessage `json:"waiver_budget"`
	Settings      json.RawMessage `json:"settings"`
	Metadata      json.RawMessage `json:"metadata"`
}

// ToTransaction converts TransactionInput (from API) to Transaction model
func (ti *TransactionInput) ToTransaction(leagueID string) *Transaction {
	txn := &Transaction{
		ID:           ti.TransactionID,
		LeagueID:     leagueID,
		Type:         ti.Type,
		ConsenterIDs: ti.ConsenterIDs,
		RosterIDs:    ti.RosterIDs,
		Adds:         ti.Adds,
		Drops:        ti.Drops,
		DraftPicks:   ti.DraftPicks,
		WaiverBudget: ti.WaiverBudget,
		Settings:     ti.Settings,
		Metadata:     ti.Metadata,
	}

	if ti.Status != "" {
		txn.Status = sql.NullString{String: ti.Status, Valid: true}
	}
	if ti.Creator != "" {
		txn.Creator = sql.NullString{String: ti.Creator, Valid: true}
	}
	if ti.Created != nil {
		txn.Created = sql.NullTime{Time: time.UnixMilli(*ti.Created).UTC(), Valid: true}
	}

	return txn
}

// Valid reports whether the payload carries the keys required to store it.
func (ti *TransactionInput) Valid() bool {
	return ti.TransactionID != "" && ti.Type != ""
}
