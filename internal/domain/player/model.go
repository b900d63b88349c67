package player

import (
	"fmt"
	"strings"
)

// Role separates the people who run match days from the ones who just play.
type Role string

const (
	RoleAdmin  Role = "admin"
	RolePlayer Role = "player"
)

var AllRoles = map[Role]struct{}{
	RoleAdmin:  {},
	RolePlayer: {},
}

// Player is a person who shows up to rounds. Defends marks goalkeepers and
// dedicated defenders, who are the only ones eligible for clean-sheet points.
type Player struct {
	ID      int64
	Name    string
	Role    Role
	Defends bool
	Level   int
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("invalid player role: %s", p.Role)
	}
	if p.Level < 0 {
		return fmt.Errorf("player level must be >= 0")
	}

	return nil
}
