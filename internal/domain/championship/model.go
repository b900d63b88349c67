package championship

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrDuplicateWinner rejects crediting the same player twice for one cup.
var ErrDuplicateWinner = errors.New("player already holds a title for this championship")

// Championship is a one-day cup played outside the league rounds. Its
// winners collect titles that accumulate across cups.
type Championship struct {
	ID   int64
	Name string
	Date time.Time
}

func (c Championship) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("championship name is required")
	}
	if c.Date.IsZero() {
		return fmt.Errorf("championship date is required")
	}

	return nil
}

// TitleCount is a player's accumulated championship titles.
type TitleCount struct {
	PlayerID int64
	Name     string
	Titles   int
}
