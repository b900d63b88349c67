package round

import (
	"errors"
	"fmt"
	"time"

	"github.com/peladahub/pickup-league/internal/domain/scoring"
)

// Status is the round lifecycle. The only transition is open to finalized,
// and it happens exactly once.
type Status string

const (
	StatusOpen      Status = "open"
	StatusFinalized Status = "finalized"
)

var (
	// ErrAlreadyFinalized rejects a second finalization attempt. A repeat
	// call is a conflict, never a silent no-op.
	ErrAlreadyFinalized = errors.New("round is already finalized")
	// ErrDuplicateDate rejects a second round on the same date in a league.
	ErrDuplicateDate = errors.New("league already has a round on this date")
)

// Round is one match day inside a league.
type Round struct {
	ID       int64
	LeagueID int64
	Date     time.Time
	Status   Status
}

func (r Round) Validate() error {
	if r.LeagueID <= 0 {
		return fmt.Errorf("round league id is required")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("round date is required")
	}

	return nil
}

// TeamAssignment places one rostered player on a numbered team for the round.
// Assignments are replaced wholesale on every save.
type TeamAssignment struct {
	PlayerID   int64
	TeamNumber int
}

type AwardKind string

const (
	AwardTop    AwardKind = "top"
	AwardBottom AwardKind = "bottom"
)

// Award is written only by finalization. A round can carry several tied top
// and bottom awardees.
type Award struct {
	ID       int64
	RoundID  int64
	PlayerID int64
	Kind     AwardKind
	Points   float64
}

// PlayerTotals is one rostered player's aggregated ledger line for a round.
// Players with no match rows still appear, with all-zero stats.
type PlayerTotals struct {
	PlayerID int64
	Name     string
	Defends  bool
	Stats    scoring.StatLine
}

// PlayerResult is a scored totals line, used by live results and by the
// finalize outcome.
type PlayerResult struct {
	PlayerID int64
	Name     string
	Defends  bool
	Stats    scoring.StatLine
	Points   float64
}

// FinalizeResult is what a successful finalization reports back.
type FinalizeResult struct {
	Top               []PlayerResult
	Bottom            []PlayerResult
	PlayersConsidered int
	MaxPoints         float64
	MinPoints         float64
}
