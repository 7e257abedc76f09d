package stats

// Totals holds the season-total counting stats that feed the derived
// metrics. Null columns are expected to be collapsed to 0 before this
// struct is filled.
type Totals struct {
	Completions      float64
	Attempts         float64
	PassingYards     float64
	Carries          float64
	RushingYards     float64
	Targets          float64
	Receptions       float64
	ReceivingYards   float64
	FantasyPoints    float64
	FantasyPointsPPR float64
	GamesPlayed      int
}

// Derived holds the normalized metrics computed from Totals.
type Derived struct {
	CompletionPercentage    float64
	YardsPerAttempt         float64
	YardsPerCompletion      float64
	YardsPerCarry           float64
	CatchPercentage         float64
	YardsPerTarget          float64
	YardsPerReception       float64
	FantasyPointsPerGame    float64
	FantasyPointsPPRPerGame float64
}

// Derive computes every derived metric from season totals. Pure function,
// zero-safe: any ratio whose denominator is 0 comes back as 0, and per-game
// metrics floor games played at 1.
func Derive(t Totals) Derived {
	games := float64(t.GamesPlayed)
	if games < 1 {
		games = 1
	}

	return Derived{
		CompletionPercentage:    safeDiv(t.Completions, t.Attempts) * 100,
		YardsPerAttempt:         safeDiv(t.PassingYards, t.Attempts),
		YardsPerCompletion:      safeDiv(t.PassingYards, t.Completions),
		YardsPerCarry:           safeDiv(t.RushingYards, t.Carries),
		CatchPercentage:         safeDiv(t.Receptions, t.Targets) * 100,
		YardsPerTarget:          safeDiv(t.ReceivingYards, t.Targets),
		YardsPerReception:       safeDiv(t.ReceivingYards, t.Receptions),
		FantasyPointsPerGame:    t.FantasyPoints / games,
		FantasyPointsPPRPerGame: t.FantasyPointsPPR / games,
	}
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
