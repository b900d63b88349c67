package usecase

import (
	"errors"
	"testing"

	"github.com/peladahub/pickup-league/internal/domain/match"
	"github.com/peladahub/pickup-league/internal/domain/round"
)

func TestMatchService_RecordResult_DerivesOutcome(t *testing.T) {
	f := newLeagueFixture(t)
	rnd, roster := f.seedRoundWithResult(t)
	_ = rnd

	matches, err := f.matchSvc.ListMatches(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	rows, err := f.matchSvc.ListResults(t.Context(), matches[0].ID)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}

	byPlayer := make(map[int64]match.Result, len(rows))
	for _, row := range rows {
		byPlayer[row.PlayerID] = row
	}

	winner := byPlayer[roster[0].ID]
	if winner.Wins != 1 || winner.Losses != 0 || winner.Draws != 0 {
		t.Fatalf("unexpected winner flags: %+v", winner)
	}
	if winner.CleanSheets != 1 {
		t.Fatalf("expected clean sheet recorded for winning side, got %+v", winner)
	}
	if winner.TeamLabel != "Team 1" {
		t.Fatalf("unexpected team label: %s", winner.TeamLabel)
	}

	loser := byPlayer[roster[2].ID]
	if loser.Losses != 1 || loser.Wins != 0 || loser.CleanSheets != 0 {
		t.Fatalf("unexpected loser flags: %+v", loser)
	}
	if loser.TeamLabel != "Team 2" {
		t.Fatalf("unexpected team label: %s", loser.TeamLabel)
	}
}

func TestMatchService_RecordResult_ReplacesPreviousRecording(t *testing.T) {
	f := newLeagueFixture(t)
	rnd, roster := f.seedRoundWithResult(t)

	matches, err := f.matchSvc.ListMatches(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}

	rows, err := f.matchSvc.RecordResult(t.Context(), RecordResultInput{
		MatchID: matches[0].ID,
		Score1:  1,
		Score2:  1,
		Lines: []PlayerLine{
			{PlayerID: roster[0].ID, Side: 1, Goals: 1},
			{PlayerID: roster[2].ID, Side: 2, Goals: 1},
		},
	})
	if err != nil {
		t.Fatalf("re-record result: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected the old ledger rows replaced, got %d rows", len(rows))
	}
	for _, row := range rows {
		if row.Draws != 1 || row.Wins != 0 || row.Losses != 0 {
			t.Fatalf("expected draw flags after re-record: %+v", row)
		}
	}

	m, err := f.matchSvc.GetMatch(t.Context(), matches[0].ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if m.Score1 != 1 || m.Score2 != 1 {
		t.Fatalf("expected score overwritten, got %d-%d", m.Score1, m.Score2)
	}
}

func TestMatchService_RecordResult_RejectsUnrosteredPlayer(t *testing.T) {
	f := newLeagueFixture(t)
	rnd, roster := f.seedRoundWithResult(t)

	matches, err := f.matchSvc.ListMatches(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}

	_, err = f.matchSvc.RecordResult(t.Context(), RecordResultInput{
		MatchID: matches[0].ID,
		Score1:  1,
		Score2:  0,
		Lines: []PlayerLine{
			{PlayerID: roster[3].ID + 100, Side: 1, Goals: 1},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchService_RecordResult_RejectsOneSidedLines(t *testing.T) {
	f := newLeagueFixture(t)
	rnd, roster := f.seedRoundWithResult(t)

	matches, err := f.matchSvc.ListMatches(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}

	_, err = f.matchSvc.RecordResult(t.Context(), RecordResultInput{
		MatchID: matches[0].ID,
		Score1:  2,
		Score2:  0,
		Lines: []PlayerLine{
			{PlayerID: roster[0].ID, Side: 1, Goals: 2},
			{PlayerID: roster[1].ID, Side: 1},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput when one side has no players, got %v", err)
	}

	rows, err := f.matchSvc.ListResults(t.Context(), matches[0].ID)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected the earlier recording untouched, got %d rows", len(rows))
	}
}

func TestMatchService_RegisterOwnGoal(t *testing.T) {
	f := newLeagueFixture(t)
	rnd, roster := f.seedRoundWithResult(t)

	matches, err := f.matchSvc.ListMatches(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	matchID := matches[0].ID

	// roster[2] already has a ledger row on side 2, so side 1 benefits.
	updated, err := f.matchSvc.RegisterOwnGoal(t.Context(), matchID, roster[2].ID)
	if err != nil {
		t.Fatalf("register own goal: %v", err)
	}
	if updated.Score1 != 4 || updated.Score2 != 0 {
		t.Fatalf("expected score bumped to 4-0, got %d-%d", updated.Score1, updated.Score2)
	}

	rows, err := f.matchSvc.ListResults(t.Context(), matchID)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	for _, row := range rows {
		if row.PlayerID == roster[2].ID && row.OwnGoals != 1 {
			t.Fatalf("expected own goal recorded, got %+v", row)
		}
	}
}

func TestMatchService_RegisterOwnGoal_CreatesMissingLedgerRow(t *testing.T) {
	f := newLeagueFixture(t)

	rnd, err := f.roundSvc.CreateRound(t.Context(), CreateRoundInput{LeagueID: f.leagueID, Date: day(2026, 3, 8)})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}
	roster, err := f.roundSvc.SyncRoster(t.Context(), rnd.ID, []string{"ana", "bruno"})
	if err != nil {
		t.Fatalf("sync roster: %v", err)
	}
	assignments := []round.TeamAssignment{
		{PlayerID: roster[0].ID, TeamNumber: 1},
		{PlayerID: roster[1].ID, TeamNumber: 2},
	}
	if err := f.roundSvc.SaveTeamAssignments(t.Context(), rnd.ID, assignments); err != nil {
		t.Fatalf("save team assignments: %v", err)
	}

	m, err := f.matchSvc.CreateMatch(t.Context(), CreateMatchInput{RoundID: rnd.ID, Team1Number: 1, Team2Number: 2})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	// No ledger rows yet; the player's side comes from the team split.
	updated, err := f.matchSvc.RegisterOwnGoal(t.Context(), m.ID, roster[1].ID)
	if err != nil {
		t.Fatalf("register own goal: %v", err)
	}
	if updated.Score1 != 1 || updated.Score2 != 0 {
		t.Fatalf("expected 1-0 after own goal, got %d-%d", updated.Score1, updated.Score2)
	}

	rows, err := f.matchSvc.ListResults(t.Context(), m.ID)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected a minimal ledger row, got %d rows", len(rows))
	}
	if rows[0].PlayerID != roster[1].ID || rows[0].OwnGoals != 1 || rows[0].TeamLabel != "Team 2" {
		t.Fatalf("unexpected ledger row: %+v", rows[0])
	}
}

func TestMatchService_RegisterOwnGoal_UnknownSide(t *testing.T) {
	f := newLeagueFixture(t)

	rnd, err := f.roundSvc.CreateRound(t.Context(), CreateRoundInput{LeagueID: f.leagueID, Date: day(2026, 3, 8)})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}
	roster, err := f.roundSvc.SyncRoster(t.Context(), rnd.ID, []string{"ana", "bruno"})
	if err != nil {
		t.Fatalf("sync roster: %v", err)
	}

	m, err := f.matchSvc.CreateMatch(t.Context(), CreateMatchInput{RoundID: rnd.ID, Team1Number: 1, Team2Number: 2})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	_, err = f.matchSvc.RegisterOwnGoal(t.Context(), m.ID, roster[0].ID)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput when no side is known, got %v", err)
	}
}

func TestMatchService_MutationsRejectFinalizedRound(t *testing.T) {
	f := newLeagueFixture(t)
	rnd, roster := f.seedRoundWithResult(t)

	matches, err := f.matchSvc.ListMatches(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}

	if _, err := f.roundSvc.Finalize(t.Context(), rnd.ID); err != nil {
		t.Fatalf("finalize round: %v", err)
	}

	if _, err := f.matchSvc.CreateMatch(t.Context(), CreateMatchInput{RoundID: rnd.ID, Team1Number: 1, Team2Number: 2}); !errors.Is(err, round.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized for create match, got %v", err)
	}

	_, err = f.matchSvc.RecordResult(t.Context(), RecordResultInput{
		MatchID: matches[0].ID,
		Score1:  1,
		Score2:  0,
		Lines:   []PlayerLine{{PlayerID: roster[0].ID, Side: 1}},
	})
	if !errors.Is(err, round.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized for record result, got %v", err)
	}

	if _, err := f.matchSvc.RegisterOwnGoal(t.Context(), matches[0].ID, roster[2].ID); !errors.Is(err, round.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized for own goal, got %v", err)
	}
}
