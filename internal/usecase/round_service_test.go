package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/peladahub/pickup-league/internal/domain/player"
	"github.com/peladahub/pickup-league/internal/domain/round"
	"github.com/peladahub/pickup-league/internal/domain/scoring"
	"github.com/peladahub/pickup-league/internal/infrastructure/repository/memory"
)

type leagueFixture struct {
	store     *memory.Store
	leagueSvc *LeagueService
	playerSvc *PlayerService
	roundSvc  *RoundService
	matchSvc  *MatchService
	statsSvc  *StatsService
	cupSvc    *ChampionshipService
	leagueID  int64
}

func newLeagueFixture(t *testing.T) *leagueFixture {
	t.Helper()

	store := memory.NewStore()
	leagueRepo := memory.NewLeagueRepository(store)
	playerRepo := memory.NewPlayerRepository(store)
	roundRepo := memory.NewRoundRepository(store)
	matchRepo := memory.NewMatchRepository(store)
	statsRepo := memory.NewStatsRepository(store)
	engine := scoring.NewEngine(scoring.DefaultWeights())

	f := &leagueFixture{
		store:     store,
		leagueSvc: NewLeagueService(leagueRepo),
		playerSvc: NewPlayerService(playerRepo),
		roundSvc:  NewRoundService(roundRepo, leagueRepo, playerRepo, matchRepo, engine),
		matchSvc:  NewMatchService(matchRepo, roundRepo),
		statsSvc:  NewStatsService(statsRepo, leagueRepo, engine, 2),
		cupSvc:    NewChampionshipService(memory.NewChampionshipRepository(store), playerRepo),
	}

	l, err := f.leagueSvc.CreateLeague(t.Context(), CreateLeagueInput{
		Name:      "Sunday League",
		StartDate: day(2026, 1, 1),
		EndDate:   day(2026, 12, 31),
	})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	f.leagueID = l.ID

	return f
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestRoundService_CreateRound(t *testing.T) {
	f := newLeagueFixture(t)

	created, err := f.roundSvc.CreateRound(t.Context(), CreateRoundInput{
		LeagueID: f.leagueID,
		Date:     time.Date(2026, 3, 8, 18, 30, 0, 0, time.FixedZone("WIB", 7*3600)),
	})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}
	if created.Status != round.StatusOpen {
		t.Fatalf("expected open status, got %s", created.Status)
	}
	if !created.Date.Equal(day(2026, 3, 8)) {
		t.Fatalf("expected date normalized to UTC midnight, got %s", created.Date)
	}
}

func TestRoundService_CreateRound_DuplicateDate(t *testing.T) {
	f := newLeagueFixture(t)

	if _, err := f.roundSvc.CreateRound(t.Context(), CreateRoundInput{LeagueID: f.leagueID, Date: day(2026, 3, 8)}); err != nil {
		t.Fatalf("create round: %v", err)
	}

	_, err := f.roundSvc.CreateRound(t.Context(), CreateRoundInput{LeagueID: f.leagueID, Date: day(2026, 3, 8)})
	if !errors.Is(err, round.ErrDuplicateDate) {
		t.Fatalf("expected ErrDuplicateDate, got %v", err)
	}
}

func TestRoundService_CreateRound_OutsideLeagueWindow(t *testing.T) {
	f := newLeagueFixture(t)

	_, err := f.roundSvc.CreateRound(t.Context(), CreateRoundInput{LeagueID: f.leagueID, Date: day(2027, 1, 10)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRoundService_SyncRoster_AutoCreatesPlayers(t *testing.T) {
	f := newLeagueFixture(t)

	existing, err := f.playerSvc.CreatePlayer(t.Context(), CreatePlayerInput{Name: "Ana", Defends: true})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	rnd, err := f.roundSvc.CreateRound(t.Context(), CreateRoundInput{LeagueID: f.leagueID, Date: day(2026, 3, 8)})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}

	roster, err := f.roundSvc.SyncRoster(t.Context(), rnd.ID, []string{"ana", "Bruno", "bruno", "Caio"})
	if err != nil {
		t.Fatalf("sync roster: %v", err)
	}

	if len(roster) != 3 {
		t.Fatalf("expected duplicate name collapsed, got %d entries", len(roster))
	}
	if roster[0].ID != existing.ID {
		t.Fatalf("expected case-insensitive match to reuse player %d, got %d", existing.ID, roster[0].ID)
	}
	if !roster[0].Defends {
		t.Fatalf("expected existing player attributes preserved")
	}
}

func TestRoundService_SyncRoster_RejectsFinalizedRound(t *testing.T) {
	f := newLeagueFixture(t)

	rnd, err := f.roundSvc.CreateRound(t.Context(), CreateRoundInput{LeagueID: f.leagueID, Date: day(2026, 3, 8)})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}
	if _, err := f.roundSvc.Finalize(t.Context(), rnd.ID); err != nil {
		t.Fatalf("finalize round: %v", err)
	}

	_, err = f.roundSvc.SyncRoster(t.Context(), rnd.ID, []string{"ana"})
	if !errors.Is(err, round.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized, got %v", err)
	}
}

func TestRoundService_SaveTeamAssignments_RejectsUnrosteredPlayer(t *testing.T) {
	f := newLeagueFixture(t)

	rnd, err := f.roundSvc.CreateRound(t.Context(), CreateRoundInput{LeagueID: f.leagueID, Date: day(2026, 3, 8)})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}
	roster, err := f.roundSvc.SyncRoster(t.Context(), rnd.ID, []string{"ana", "bruno"})
	if err != nil {
		t.Fatalf("sync roster: %v", err)
	}

	err = f.roundSvc.SaveTeamAssignments(t.Context(), rnd.ID, []round.TeamAssignment{
		{PlayerID: roster[0].ID, TeamNumber: 1},
		{PlayerID: roster[1].ID + 100, TeamNumber: 2},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRoundService_LiveResults_OrdersByPoints(t *testing.T) {
	f := newLeagueFixture(t)
	rnd, roster := f.seedRoundWithResult(t)

	results, err := f.roundSvc.LiveResults(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("live results: %v", err)
	}

	if len(results) != 4 {
		t.Fatalf("expected every rostered player in live results, got %d", len(results))
	}
	if results[0].PlayerID != roster[0].ID {
		t.Fatalf("expected the scorer on top, got player %d", results[0].PlayerID)
	}
	// 2 goals, a win and a defender clean sheet
	if results[0].Points != 14.5 {
		t.Fatalf("unexpected top score: %v", results[0].Points)
	}

	item, err := f.roundSvc.GetRound(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("get round: %v", err)
	}
	if item.Status != round.StatusOpen {
		t.Fatalf("live results must not change round status, got %s", item.Status)
	}
}

func TestRoundService_Finalize(t *testing.T) {
	f := newLeagueFixture(t)
	rnd, roster := f.seedRoundWithResult(t)

	result, err := f.roundSvc.Finalize(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("finalize round: %v", err)
	}

	if result.PlayersConsidered != 4 {
		t.Fatalf("expected 4 players considered, got %d", result.PlayersConsidered)
	}
	if len(result.Top) != 1 || result.Top[0].PlayerID != roster[0].ID {
		t.Fatalf("unexpected top awardees: %+v", result.Top)
	}
	if len(result.Bottom) != 1 || result.Bottom[0].PlayerID != roster[2].ID {
		t.Fatalf("unexpected bottom awardees: %+v", result.Bottom)
	}

	awards, err := f.roundSvc.ListAwards(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("list awards: %v", err)
	}
	if len(awards) != 2 {
		t.Fatalf("expected persisted awards, got %d", len(awards))
	}

	_, err = f.roundSvc.Finalize(t.Context(), rnd.ID)
	if !errors.Is(err, round.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized on repeat, got %v", err)
	}
}

func TestRoundService_Finalize_EmptyRoster(t *testing.T) {
	f := newLeagueFixture(t)

	rnd, err := f.roundSvc.CreateRound(t.Context(), CreateRoundInput{LeagueID: f.leagueID, Date: day(2026, 3, 8)})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}

	result, err := f.roundSvc.Finalize(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("finalize empty round: %v", err)
	}
	if result.PlayersConsidered != 0 || len(result.Top) != 0 || len(result.Bottom) != 0 {
		t.Fatalf("expected empty finalize result, got %+v", result)
	}

	item, err := f.roundSvc.GetRound(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("get round: %v", err)
	}
	if item.Status != round.StatusFinalized {
		t.Fatalf("expected finalized status, got %s", item.Status)
	}
}

func TestRoundService_Finalize_RosterWithoutMatches(t *testing.T) {
	f := newLeagueFixture(t)

	rnd, err := f.roundSvc.CreateRound(t.Context(), CreateRoundInput{LeagueID: f.leagueID, Date: day(2026, 3, 8)})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}
	if _, err := f.roundSvc.SyncRoster(t.Context(), rnd.ID, []string{"ana", "bruno", "caio"}); err != nil {
		t.Fatalf("sync roster: %v", err)
	}

	result, err := f.roundSvc.Finalize(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("finalize round without matches: %v", err)
	}
	if result.PlayersConsidered != 0 || len(result.Top) != 0 || len(result.Bottom) != 0 {
		t.Fatalf("expected empty finalize result for a round without results, got %+v", result)
	}

	awards, err := f.roundSvc.ListAwards(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("list awards: %v", err)
	}
	if len(awards) != 0 {
		t.Fatalf("expected no persisted awards, got %d", len(awards))
	}

	item, err := f.roundSvc.GetRound(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("get round: %v", err)
	}
	if item.Status != round.StatusFinalized {
		t.Fatalf("expected finalized status, got %s", item.Status)
	}
}

func TestRoundService_RoundDetail(t *testing.T) {
	f := newLeagueFixture(t)
	rnd, roster := f.seedRoundWithResult(t)

	detail, err := f.roundSvc.RoundDetail(t.Context(), rnd.ID)
	if err != nil {
		t.Fatalf("round detail: %v", err)
	}

	if detail.Round.ID != rnd.ID {
		t.Fatalf("unexpected round id: %d", detail.Round.ID)
	}
	if len(detail.Roster) != len(roster) {
		t.Fatalf("unexpected roster size: %d", len(detail.Roster))
	}
	if len(detail.Teams) != 4 {
		t.Fatalf("unexpected team assignment count: %d", len(detail.Teams))
	}
	if len(detail.Matches) != 1 {
		t.Fatalf("unexpected match count: %d", len(detail.Matches))
	}
}

// seedRoundWithResult sets up an open round with four rostered players on
// two teams and one recorded 3-0 match. roster[0] is a defender with two
// goals on the winning side, roster[2] concedes on the losing side.
func (f *leagueFixture) seedRoundWithResult(t *testing.T) (round.Round, []player.Player) {
	t.Helper()

	rnd, err := f.roundSvc.CreateRound(t.Context(), CreateRoundInput{LeagueID: f.leagueID, Date: day(2026, 3, 8)})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}

	if _, err := f.playerSvc.CreatePlayer(t.Context(), CreatePlayerInput{Name: "ana", Defends: true}); err != nil {
		t.Fatalf("create player: %v", err)
	}

	roster, err := f.roundSvc.SyncRoster(t.Context(), rnd.ID, []string{"ana", "bruno", "caio", "dani"})
	if err != nil {
		t.Fatalf("sync roster: %v", err)
	}

	assignments := []round.TeamAssignment{
		{PlayerID: roster[0].ID, TeamNumber: 1},
		{PlayerID: roster[1].ID, TeamNumber: 1},
		{PlayerID: roster[2].ID, TeamNumber: 2},
		{PlayerID: roster[3].ID, TeamNumber: 2},
	}
	if err := f.roundSvc.SaveTeamAssignments(t.Context(), rnd.ID, assignments); err != nil {
		t.Fatalf("save team assignments: %v", err)
	}

	m, err := f.matchSvc.CreateMatch(t.Context(), CreateMatchInput{RoundID: rnd.ID, Team1Number: 1, Team2Number: 2})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	_, err = f.matchSvc.RecordResult(t.Context(), RecordResultInput{
		MatchID:         m.ID,
		Score1:          3,
		Score2:          0,
		DurationSeconds: 600,
		Lines: []PlayerLine{
			{PlayerID: roster[0].ID, Side: 1, Goals: 2},
			{PlayerID: roster[1].ID, Side: 1, Goals: 1, Assists: 2},
			{PlayerID: roster[2].ID, Side: 2, Warnings: 1},
			{PlayerID: roster[3].ID, Side: 2},
		},
	})
	if err != nil {
		t.Fatalf("record result: %v", err)
	}

	return rnd, roster
}
