package stats

// RankingEntry is one player's accumulated points across a league's
// finalized rounds.
type RankingEntry struct {
	PlayerID int64
	Name     string
	Points   float64
	Rounds   int
}

// AwardTally counts a player's top/bottom awards within a league.
type AwardTally struct {
	PlayerID int64
	Name     string
	Top      int
	Bottom   int
}

// LeagueOverview is the stats page payload for one league.
type LeagueOverview struct {
	LeagueID int64
	Ranking  []RankingEntry
	Awards   []AwardTally
}
