package usecase

import (
	"errors"
	"testing"

	"github.com/peladahub/pickup-league/internal/domain/player"
)

func TestPlayerService_CreatePlayer_DefaultsRole(t *testing.T) {
	f := newLeagueFixture(t)

	p, err := f.playerSvc.CreatePlayer(t.Context(), CreatePlayerInput{Name: "  Zico  ", Level: 3})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if p.Name != "Zico" {
		t.Fatalf("expected trimmed name, got %q", p.Name)
	}
	if p.Role != player.RolePlayer {
		t.Fatalf("expected default role, got %q", p.Role)
	}
	if p.ID == 0 {
		t.Fatalf("expected an id assigned")
	}
}

func TestPlayerService_CreatePlayer_RejectsDuplicateName(t *testing.T) {
	f := newLeagueFixture(t)

	if _, err := f.playerSvc.CreatePlayer(t.Context(), CreatePlayerInput{Name: "Zico"}); err != nil {
		t.Fatalf("create player: %v", err)
	}

	_, err := f.playerSvc.CreatePlayer(t.Context(), CreatePlayerInput{Name: "zIcO"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate name, got %v", err)
	}
}

func TestPlayerService_UpdatePlayer(t *testing.T) {
	f := newLeagueFixture(t)

	p, err := f.playerSvc.CreatePlayer(t.Context(), CreatePlayerInput{Name: "Zico"})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	updated, err := f.playerSvc.UpdatePlayer(t.Context(), UpdatePlayerInput{
		PlayerID: p.ID,
		Name:     "Zico",
		Role:     string(player.RoleAdmin),
		Defends:  true,
		Level:    5,
	})
	if err != nil {
		t.Fatalf("update player: %v", err)
	}
	if updated.Role != player.RoleAdmin || !updated.Defends || updated.Level != 5 {
		t.Fatalf("unexpected updated player: %+v", updated)
	}

	stored, err := f.playerSvc.GetPlayer(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if !stored.Defends {
		t.Fatalf("expected update persisted, got %+v", stored)
	}
}

func TestPlayerService_UpdatePlayer_RejectsTakenName(t *testing.T) {
	f := newLeagueFixture(t)

	if _, err := f.playerSvc.CreatePlayer(t.Context(), CreatePlayerInput{Name: "Zico"}); err != nil {
		t.Fatalf("create player: %v", err)
	}
	other, err := f.playerSvc.CreatePlayer(t.Context(), CreatePlayerInput{Name: "Romario"})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	_, err = f.playerSvc.UpdatePlayer(t.Context(), UpdatePlayerInput{PlayerID: other.ID, Name: "ZICO"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for taken name, got %v", err)
	}
}
