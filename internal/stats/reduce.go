package stats

import (
	"database/sql"
	"sort"

	"ffwarehouse/ingestion/internal/models"
)

type groupKey struct {
	playerID string
	season   int
}

// shareAvg accumulates a per-week ratio so it can be averaged over the
// weeks that actually carried a value.
type shareAvg struct {
	sum float64
	n   int
}

func (s *shareAvg) add(v sql.NullFloat64) {
	if v.Valid {
		s.sum += v.Float64
		s.n++
	}
}

func (s *shareAvg) value() sql.NullFloat64 {
	if s.n == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: s.sum / float64(s.n), Valid: true}
}

type seasonAccum struct {
	latest models.WeeklyPlayerStats
	games  int

	totals models.SeasonalPlayerStats

	targetShare   shareAvg
	airYardsShare shareAvg
	wopr          shareAvg
}

// ReduceWeekly collapses weekly rows into one seasonal row per
// (player, season). Only regular-season rows participate in the totals.
// Counting stats sum across weeks with null treated as 0, opportunity
// shares average over the weeks that carried a value, and identity fields
// (name, position, team) come from the highest week in the group so that
// team reflects where the player finished the season. games_played is the
// number of weekly rows in the group. Output order is deterministic:
// player id, then season.
func ReduceWeekly(rows []models.WeeklyPlayerStats) []*models.SeasonalPlayerStats {
	groups := make(map[groupKey]*seasonAccum)
	for i := range rows {
		row := &rows[i]
		if row.SeasonType != "REG" {
			continue
		}

		key := groupKey{playerID: row.PlayerID, season: row.Season}
		acc, ok := groups[key]
		if !ok {
			acc = &seasonAccum{latest: *row}
			groups[key] = acc
		}
		acc.add(row)
	}

	out := make([]*models.SeasonalPlayerStats, 0, len(groups))
	for _, acc := range groups {
		out = append(out, acc.finish())
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].PlayerID != out[j].PlayerID {
			return out[i].PlayerID < out[j].PlayerID
		}
		return out[i].Season < out[j].Season
	})

	return out
}

func (a *seasonAccum) add(row *models.WeeklyPlayerStats) {
	a.games++
	if row.Week > a.latest.Week {
		a.latest = *row
	}

	t := &a.totals
	addNull(&t.Completions, row.Completions)
	addNull(&t.Attempts, row.Attempts)
	addNull(&t.PassingYards, row.PassingYards)
	addNull(&t.PassingTDs, row.PassingTDs)
	addNull(&t.Interceptions, row.Interceptions)
	addNull(&t.Sacks, row.Sacks)
	addNull(&t.SackYards, row.SackYards)
	addNull(&t.PassingAirYards, row.PassingAirYards)
	addNull(&t.PassingYardsAfterCatch, row.PassingYardsAfterCatch)
	addNull(&t.PassingFirstDowns, row.PassingFirstDowns)
	addNull(&t.PassingEPA, row.PassingEPA)
	addNull(&t.Passing2PtConversions, row.Passing2PtConversions)

	addNull(&t.Carries, row.Carries)
	addNull(&t.RushingYards, row.RushingYards)
	addNull(&t.RushingTDs, row.RushingTDs)
	addNull(&t.RushingFumbles, row.RushingFumbles)
	addNull(&t.RushingFumblesLost, row.RushingFumblesLost)
	addNull(&t.RushingFirstDowns, row.RushingFirstDowns)
	addNull(&t.RushingEPA, row.RushingEPA)
	addNull(&t.Rushing2PtConversions, row.Rushing2PtConversions)

	addNull(&t.Targets, row.Targets)
	addNull(&t.Receptions, row.Receptions)
	addNull(&t.ReceivingYards, row.ReceivingYards)
	addNull(&t.ReceivingTDs, row.ReceivingTDs)
	addNull(&t.ReceivingFumbles, row.ReceivingFumbles)
	addNull(&t.ReceivingFumblesLost, row.ReceivingFumblesLost)
	addNull(&t.ReceivingAirYards, row.ReceivingAirYards)
	addNull(&t.ReceivingYardsAfterCatch, row.ReceivingYardsAfterCatch)
	addNull(&t.ReceivingFirstDowns, row.ReceivingFirstDowns)
	addNull(&t.ReceivingEPA, row.ReceivingEPA)
	addNull(&t.Receiving2PtConversions, row.Receiving2PtConversions)

	addNull(&t.SpecialTeamsTDs, row.SpecialTeamsTDs)
	addNull(&t.FantasyPoints, row.FantasyPoints)
	addNull(&t.FantasyPointsPPR, row.FantasyPointsPPR)

	a.targetShare.add(row.TargetShare)
	a.airYardsShare.add(row.AirYardsShare)
	a.wopr.add(row.WOPR)
}

func (a *seasonAccum) finish() *models.SeasonalPlayerStats {
	s := a.totals
	s.PlayerID = a.latest.PlayerID
	s.Season = a.latest.Season
	s.PlayerName = a.latest.PlayerName
	s.PlayerDisplayName = a.latest.PlayerDisplayName
	s.Position = a.latest.Position
	s.PositionGroup = a.latest.PositionGroup
	s.Team = a.latest.Team
	s.GamesPlayed = a.games
	s.SeasonType = "REG"

	s.TargetShare = a.targetShare.value()
	s.AirYardsShare = a.airYardsShare.value()
	s.WOPR = a.wopr.value()

	d := Derive(Totals{
		Completions:      nf(s.Completions),
		Attempts:         nf(s.Attempts),
		PassingYards:     nf(s.PassingYards),
		Carries:          nf(s.Carries),
		RushingYards:     nf(s.RushingYards),
		Targets:          nf(s.Targets),
		Receptions:       nf(s.Receptions),
		ReceivingYards:   nf(s.ReceivingYards),
		FantasyPoints:    nf(s.FantasyPoints),
		FantasyPointsPPR: nf(s.FantasyPointsPPR),
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

	return &s
}

// addNull folds one weekly value into a running season total, with null
// treated as 0. The total always ends up valid so the stored season row
// has concrete numbers rather than a mix of nulls and sums.
func addNull(dst *sql.NullFloat64, src sql.NullFloat64) {
	dst.Valid = true
	if src.Valid {
		dst.Float64 += src.Float64
	}
}

func nf(v sql.NullFloat64) float64 {
	if !v.Valid {
		return 0
	}
	return v.Float64
}
