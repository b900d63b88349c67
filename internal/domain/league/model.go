package league

import (
	"fmt"
	"strings"
	"time"
)

// League is a season of pickup football. Rounds must fall inside the
// start/end window.
type League struct {
	ID        int64
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

func (l League) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	if l.StartDate.IsZero() || l.EndDate.IsZero() {
		return fmt.Errorf("league start and end dates are required")
	}
	if l.EndDate.Before(l.StartDate) {
		return fmt.Errorf("league end date is before start date")
	}

	return nil
}

// ContainsDate reports whether a day falls inside the league window,
// boundaries included. Only the calendar date matters.
func (l League) ContainsDate(day time.Time) bool {
	d := truncateToDay(day)
	return !d.Before(truncateToDay(l.StartDate)) && !d.After(truncateToDay(l.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
