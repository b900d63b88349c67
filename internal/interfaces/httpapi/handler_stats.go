package httpapi

import (
	"net/http"

	"github.com/peladahub/pickup-league/internal/domain/stats"
)

type rankingEntryDTO struct {
	PlayerID int64   `json:"playerId"`
	Name     string  `json:"name"`
	Points   float64 `json:"points"`
	Rounds   int     `json:"rounds"`
}

type awardTallyDTO struct {
	PlayerID int64  `json:"playerId"`
	Name     string `json:"name"`
	Top      int    `json:"top"`
	Bottom   int    `json:"bottom"`
}

type leagueOverviewDTO struct {
	LeagueID int64             `json:"leagueId"`
	Ranking  []rankingEntryDTO `json:"ranking"`
	Awards   []awardTallyDTO   `json:"awards"`
}

func (h *Handler) LeagueOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeagueOverview")
	defer span.End()

	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	overview, err := h.statsService.LeagueOverview(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "league overview failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueOverviewToDTO(overview))
}

func leagueOverviewToDTO(v stats.LeagueOverview) leagueOverviewDTO {
	ranking := make([]rankingEntryDTO, 0, len(v.Ranking))
	for _, entry := range v.Ranking {
		ranking = append(ranking, rankingEntryDTO{
			PlayerID: entry.PlayerID,
			Name:     entry.Name,
			Points:   entry.Points,
			Rounds:   entry.Rounds,
		})
	}

	awards := make([]awardTallyDTO, 0, len(v.Awards))
	for _, tally := range v.Awards {
		awards = append(awards, awardTallyDTO{
			PlayerID: tally.PlayerID,
			Name:     tally.Name,
			Top:      tally.Top,
			Bottom:   tally.Bottom,
		})
	}

	return leagueOverviewDTO{
		LeagueID: v.LeagueID,
		Ranking:  ranking,
		Awards:   awards,
	}
}
