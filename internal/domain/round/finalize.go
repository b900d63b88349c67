package round

import "github.com/peladahub/pickup-league/internal/domain/scoring"

// SelectAwardees scores the aggregated totals and picks the tied extremes.
// Every player at the maximum gets a top award. Bottom awards are handed
// out only when the minimum differs from the maximum, so a fully tied
// round produces no bottom awardees. A round whose ledger holds no
// recorded results (every stat line zero) yields no awardees at all.
func SelectAwardees(totals []PlayerTotals, engine scoring.Engine) FinalizeResult {
	result := FinalizeResult{PlayersConsidered: len(totals)}
	if len(totals) == 0 {
		return result
	}

	played := false
	for _, t := range totals {
		if !t.Stats.IsZero() {
			played = true
			break
		}
	}
	if !played {
		return FinalizeResult{}
	}

	scored := make([]PlayerResult, 0, len(totals))
	for _, t := range totals {
		scored = append(scored, PlayerResult{
			PlayerID: t.PlayerID,
			Name:     t.Name,
			Defends:  t.Defends,
			Stats:    t.Stats,
			Points:   engine.Score(t.Stats, t.Defends),
		})
	}

	result.MaxPoints = scored[0].Points
	result.MinPoints = scored[0].Points
	for _, res := range scored[1:] {
		if res.Points > result.MaxPoints {
			result.MaxPoints = res.Points
		}
		if res.Points < result.MinPoints {
			result.MinPoints = res.Points
		}
	}

	for _, res := range scored {
		if res.Points == result.MaxPoints {
			result.Top = append(result.Top, res)
		}
	}
	if result.MinPoints != result.MaxPoints {
		for _, res := range scored {
			if res.Points == result.MinPoints {
				result.Bottom = append(result.Bottom, res)
			}
		}
	}

	return result
}
