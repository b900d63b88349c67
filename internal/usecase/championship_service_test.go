package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/peladahub/pickup-league/internal/domain/championship"
)

func TestChampionshipService_CreateChampionship(t *testing.T) {
	f := newLeagueFixture(t)

	created, err := f.cupSvc.CreateChampionship(t.Context(), CreateChampionshipInput{
		Name: "  Winter Cup ",
		Date: time.Date(2026, 7, 4, 21, 0, 0, 0, time.FixedZone("WIB", 7*3600)),
	})
	if err != nil {
		t.Fatalf("create championship: %v", err)
	}
	if created.Name != "Winter Cup" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if !created.Date.Equal(day(2026, 7, 4)) {
		t.Fatalf("expected date normalized to UTC midnight, got %s", created.Date)
	}

	_, err = f.cupSvc.CreateChampionship(t.Context(), CreateChampionshipInput{Name: "  "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestChampionshipService_AddWinnersAndTitleCounts(t *testing.T) {
	f := newLeagueFixture(t)

	ana, err := f.playerSvc.CreatePlayer(t.Context(), CreatePlayerInput{Name: "ana"})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	bruno, err := f.playerSvc.CreatePlayer(t.Context(), CreatePlayerInput{Name: "bruno"})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	first, err := f.cupSvc.CreateChampionship(t.Context(), CreateChampionshipInput{Name: "Winter Cup", Date: day(2026, 7, 4)})
	if err != nil {
		t.Fatalf("create championship: %v", err)
	}
	second, err := f.cupSvc.CreateChampionship(t.Context(), CreateChampionshipInput{Name: "Summer Cup", Date: day(2026, 12, 12)})
	if err != nil {
		t.Fatalf("create championship: %v", err)
	}

	if err := f.cupSvc.AddWinners(t.Context(), first.ID, []int64{ana.ID, bruno.ID}); err != nil {
		t.Fatalf("add winners: %v", err)
	}
	if err := f.cupSvc.AddWinners(t.Context(), second.ID, []int64{ana.ID}); err != nil {
		t.Fatalf("add winners: %v", err)
	}

	counts, err := f.cupSvc.TitleCounts(t.Context())
	if err != nil {
		t.Fatalf("title counts: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 title holders, got %d", len(counts))
	}
	if counts[0].PlayerID != ana.ID || counts[0].Titles != 2 {
		t.Fatalf("expected ana on top with 2 titles, got %+v", counts[0])
	}
	if counts[1].PlayerID != bruno.ID || counts[1].Titles != 1 {
		t.Fatalf("expected bruno with 1 title, got %+v", counts[1])
	}
}

func TestChampionshipService_AddWinners_Validation(t *testing.T) {
	f := newLeagueFixture(t)

	ana, err := f.playerSvc.CreatePlayer(t.Context(), CreatePlayerInput{Name: "ana"})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	cup, err := f.cupSvc.CreateChampionship(t.Context(), CreateChampionshipInput{Name: "Winter Cup", Date: day(2026, 7, 4)})
	if err != nil {
		t.Fatalf("create championship: %v", err)
	}

	if err := f.cupSvc.AddWinners(t.Context(), cup.ID, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty winners, got %v", err)
	}
	if err := f.cupSvc.AddWinners(t.Context(), cup.ID, []int64{ana.ID + 100}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown player, got %v", err)
	}
	if err := f.cupSvc.AddWinners(t.Context(), cup.ID+100, []int64{ana.ID}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown championship, got %v", err)
	}
	if err := f.cupSvc.AddWinners(t.Context(), cup.ID, []int64{ana.ID, ana.ID}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a player listed twice, got %v", err)
	}

	if err := f.cupSvc.AddWinners(t.Context(), cup.ID, []int64{ana.ID}); err != nil {
		t.Fatalf("add winners: %v", err)
	}
	if err := f.cupSvc.AddWinners(t.Context(), cup.ID, []int64{ana.ID}); !errors.Is(err, championship.ErrDuplicateWinner) {
		t.Fatalf("expected ErrDuplicateWinner on repeat credit, got %v", err)
	}
}
