package match

import "fmt"

// Match is one scored game between two numbered teams of a round. Created
// empty, closed by the result recorder; re-recording overwrites wholesale.
type Match struct {
	ID              int64
	RoundID         int64
	Score1          int
	Score2          int
	DurationSeconds int
	Team1Number     int
	Team2Number     int
}

// Result is one ledger row: a player's line for a single match. The
// win/draw/loss and clean-sheet fields are derived from the match score,
// never caller-supplied. Own goals mutate independently via the adjuster.
type Result struct {
	ID          int64
	MatchID     int64
	PlayerID    int64
	TeamLabel   string
	Goals       int
	Assists     int
	Wins        int
	Draws       int
	Losses      int
	Warnings    int
	OwnGoals    int
	CleanSheets int
}

// SideLabel is the ledger label for a played team slot: "Team 1" or "Team 2".
func SideLabel(slot int) string {
	return fmt.Sprintf("Team %d", slot)
}

// DeriveOutcome computes the side-1 flags from a final score. Call with the
// scores swapped for side 2.
func DeriveOutcome(ownScore, opponentScore int) (win, draw, loss, cleanSheet int) {
	switch {
	case ownScore > opponentScore:
		win = 1
	case ownScore < opponentScore:
		loss = 1
	default:
		draw = 1
	}
	if opponentScore == 0 {
		cleanSheet = 1
	}

	return win, draw, loss, cleanSheet
}
