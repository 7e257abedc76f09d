package models

import (
	"database/sql"
	"time"
)

// WeeklyPlayerStats represents one player's raw counting stats for a single
// NFL week. Keyed by (player_id, season, week); the table enforces that as
// its primary key. Stat columns are nullable because the upstream feed only
// populates the columns relevant to a player's position.
type WeeklyPlayerStats struct {
	PlayerID          string `db:"player_id"`
	Season            int    `db:"season"`
	Week              int    `db:"week"`
	PlayerName        string `db:"player_name"`
	PlayerDisplayName string `db:"player_display_name"`
	Position          string `db:"position"`
	PositionGroup     string `db:"position_group"`
	Team              string `db:"team"`
	OpponentTeam      string `db:"opponent_team"`
	SeasonType        string `db:"season_type"`

	// Passing
	Completions            sql.NullFloat64 `db:"completions"`
	Attempts               sql.NullFloat64 `db:"attempts"`
	PassingYards           sql.NullFloat64 `db:"passing_yards"`
	PassingTDs             sql.NullFloat64 `db:"passing_tds"`
	Interceptions          sql.NullFloat64 `db:"interceptions"`
	Sacks                  sql.NullFloat64 `db:"sacks"`
	SackYards              sql.NullFloat64 `db:"sack_yards"`
	SackFumbles            sql.NullFloat64 `db:"sack_fumbles"`
	SackFumblesLost        sql.NullFloat64 `db:"sack_fumbles_lost"`
	PassingAirYards        sql.NullFloat64 `db:"passing_air_yards"`
	PassingYardsAfterCatch sql.NullFloat64 `db:"passing_yards_after_catch"`
	PassingFirstDowns      sql.NullFloat64 `db:"passing_first_downs"`
	PassingEPA             sql.NullFloat64 `db:"passing_epa"`
	Passing2PtConversions  sql.NullFloat64 `db:"passing_2pt_conversions"`

	// Rushing
	Carries               sql.NullFloat64 `db:"carries"`
	RushingYards          sql.NullFloat64 `db:"rushing_yards"`
	RushingTDs            sql.NullFloat64 `db:"rushing_tds"`
	RushingFumbles        sql.NullFloat64 `db:"rushing_fumbles"`
	RushingFumblesLost    sql.NullFloat64 `db:"rushing_fumbles_lost"`
	RushingFirstDowns     sql.NullFloat64 `db:"rushing_first_downs"`
	RushingEPA            sql.NullFloat64 `db:"rushing_epa"`
	Rushing2PtConversions sql.NullFloat64 `db:"rushing_2pt_conversions"`

	// Receiving
	Targets                  sql.NullFloat64 `db:"targets"`
	Receptions               sql.NullFloat64 `db:"receptions"`
	ReceivingYards           sql.NullFloat64 `db:"receiving_yards"`
	ReceivingTDs             sql.NullFloat64 `db:"receiving_tds"`
	ReceivingFumbles         sql.NullFloat64 `db:"receiving_fumbles"`
	ReceivingFumblesLost     sql.NullFloat64 `db:"receiving_fumbles_lost"`
	ReceivingAirYards        sql.NullFloat64 `db:"receiving_air_yards"`
	ReceivingYardsAfterCatch sql.NullFloat64 `db:"receiving_yards_after_catch"`
	ReceivingFirstDowns      sql.NullFloat64 `db:"receiving_first_downs"`
	ReceivingEPA             sql.NullFloat64 `db:"receiving_epa"`
	Receiving2PtConversions  sql.NullFloat64 `db:"receiving_2pt_conversions"`

	// Special teams and fantasy
	SpecialTeamsTDs  sql.NullFloat64 `db:"special_teams_tds"`
	FantasyPoints    sql.NullFloat64 `db:"fantasy_points"`
	FantasyPointsPPR sql.NullFloat64 `db:"fantasy_points_ppr"`

	// Opportunity shares (per-week ratios, not counts)
	TargetShare   sql.NullFloat64 `db:"target_share"`
	AirYardsShare sql.NullFloat64 `db:"air_yards_share"`
	WOPR          sql.NullFloat64 `db:"wopr"`

	CreatedAt time.Time `db:"created_at"`
}
