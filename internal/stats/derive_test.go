package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveZeroDenominators(t *testing.T) {
	d := Derive(Totals{})

	assert.Zero(t, d.CompletionPercentage)
	assert.Zero(t, d.YardsPerAttempt)
	assert.Zero(t, d.YardsPerCompletion)
	assert.Zero(t, d.YardsPerCarry)
	assert.Zero(t, d.CatchPercentage)
	assert.Zero(t, d.YardsPerTarget)
	assert.Zero(t, d.YardsPerReception)
	assert.Zero(t, d.FantasyPointsPerGame)
	assert.Zero(t, d.FantasyPointsPPRPerGame)
}

func TestDeriveNeverNaN(t *testing.T) {
	// Yards without attempts/targets/carries must not blow up the ratios
	d := Derive(Totals{
		PassingYards:   120,
		RushingYards:   45,
		ReceivingYards: 80,
	})

	for _, v := range []float64{
		d.CompletionPercentage, d.YardsPerAttempt, d.YardsPerCompletion,
		d.YardsPerCarry, d.CatchPercentage, d.YardsPerTarget,
		d.YardsPerReception, d.FantasyPointsPerGame, d.FantasyPointsPPRPerGame,
	} {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
}

func TestDerivePassingMetrics(t *testing.T) {
	d := Derive(Totals{
		Completions:      20,
		Attempts:         30,
		PassingYards:     250,
		FantasyPoints:    100,
		FantasyPointsPPR: 120,
		GamesPlayed:      5,
	})

	assert.InDelta(t, 66.67, d.CompletionPercentage, 0.01)
	assert.InDelta(t, 8.33, d.YardsPerAttempt, 0.01)
	assert.Equal(t, 12.5, d.YardsPerCompletion)
	assert.Equal(t, 20.0, d.FantasyPointsPerGame)
	assert.Equal(t, 24.0, d.FantasyPointsPPRPerGame)
}

func TestDeriveReceivingMetrics(t *testing.T) {
	d := Derive(Totals{
		Targets:        100,
		Receptions:     70,
		ReceivingYards: 840,
	})

	assert.Equal(t, 70.0, d.CatchPercentage)
	assert.Equal(t, 8.4, d.YardsPerTarget)
	assert.Equal(t, 12.0, d.YardsPerReception)
}

func TestDeriveYardsPerCarry(t *testing.T) {
	d := Derive(Totals{Carries: 200, RushingYards: 900})
	assert.Equal(t, 4.5, d.YardsPerCarry)
}

func TestDeriveGamesPlayedFloor(t *testing.T) {
	// games_played of 0 is floored at 1, never a division error
	d := Derive(Totals{FantasyPoints: 0, FantasyPointsPPR: 0, GamesPlayed: 0})
	assert.Equal(t, 0.0, d.FantasyPointsPerGame)
	assert.Equal(t, 0.0, d.FantasyPointsPPRPerGame)

	d = Derive(Totals{FantasyPoints: 18, GamesPlayed: 0})
	assert.Equal(t, 18.0, d.FantasyPointsPerGame)
}

func TestDeriveIsPure(t *testing.T) {
	in := Totals{Completions: 11, Attempts: 17, PassingYards: 140, GamesPlayed: 2}
	assert.Equal(t, Derive(in), Derive(in))
}
