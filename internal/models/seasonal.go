package models

import (
	"database/sql"
	"time"
)

// SeasonalPlayerStats represents one player's totals and derived efficiency
// metrics for a full season. Keyed by (player_id, season). Rows come either
// from the upstream season-aggregate feed or from reducing stored weekly rows.
type SeasonalPlayerStats struct {
	PlayerID          string `db:"player_id"`
	Season            int    `db:"season"`
	PlayerName        string `db:"player_name"`
	PlayerDisplayName string `db:"player_display_name"`
	Position          string `db:"position"`
	PositionGroup     string `db:"position_group"`
	Team              string `db:"team"`
	GamesPlayed       int    `db:"games_played"`
	SeasonType        string `db:"season_type"`

	// Passing totals
	Completions            sql.NullFloat64 `db:"completions"`
	Attempts               sql.NullFloat64 `db:"attempts"`
	PassingYards           sql.NullFloat64 `db:"passing_yards"`
	PassingTDs             sql.NullFloat64 `db:"passing_tds"`
	Interceptions          sql.NullFloat64 `db:"interceptions"`
	Sacks                  sql.NullFloat64 `db:"sacks"`
	SackYards              sql.NullFloat64 `db:"sack_yards"`
	PassingAirYards        sql.NullFloat64 `db:"passing_air_yards"`
	PassingYardsAfterCatch sql.NullFloat64 `db:"passing_yards_after_catch"`
	PassingFirstDowns      sql.NullFloat64 `db:"passing_first_downs"`
	PassingEPA             sql.NullFloat64 `db:"passing_epa"`
	Passing2PtConversions  sql.NullFloat64 `db:"passing_2pt_conversions"`

	// Passing efficiency (derived, always computed)
	CompletionPercentage float64 `db:"completion_percentage"`
	YardsPerAttempt      float64 `db:"yards_per_attempt"`
	YardsPerCompletion   float64 `db:"yards_per_completion"`

	// Rushing totals
	Carries               sql.NullFloat64 `db:"carries"`
	RushingYards          sql.NullFloat64 `db:"rushing_yards"`
	RushingTDs            sql.NullFloat64 `db:"rushing_tds"`
	RushingFumbles        sql.NullFloat64 `db:"rushing_fumbles"`
	RushingFumblesLost    sql.NullFloat64 `db:"rushing_fumbles_lost"`
	RushingFirstDowns     sql.NullFloat64 `db:"rushing_first_downs"`
	RushingEPA            sql.NullFloat64 `db:"rushing_epa"`
	Rushing2PtConversions sql.NullFloat64 `db:"rushing_2pt_conversions"`

	// Rushing efficiency (derived)
	YardsPerCarry float64 `db:"yards_per_carry"`

	// Receiving totals
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

	// Receiving efficiency (derived)
	CatchPercentage   float64 `db:"catch_percentage"`
	YardsPerTarget    float64 `db:"yards_per_target"`
	YardsPerReception float64 `db:"yards_per_reception"`

	// Special teams and fantasy totals
	SpecialTeamsTDs  sql.NullFloat64 `db:"special_teams_tds"`
	FantasyPoints    sql.NullFloat64 `db:"fantasy_points"`
	FantasyPointsPPR sql.NullFloat64 `db:"fantasy_points_ppr"`

	// Opportunity shares (season averages of the weekly ratios; null when
	// no weekly row carried a value)
	TargetShare   sql.NullFloat64 `db:"target_share"`
	AirYardsShare sql.NullFloat64 `db:"air_yards_share"`
	WOPR          sql.NullFloat64 `db:"wopr"`

	// Per-game metrics (derived)
	FantasyPointsPerGame    float64 `db:"fantasy_points_per_game"`
	FantasyPointsPPRPerGame float64 `db:"fantasy_points_ppr_per_game"`

	CreatedAt time.Time `db:"created_at"`
}
