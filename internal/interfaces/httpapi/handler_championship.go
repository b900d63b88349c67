package httpapi

import (
	"net/http"

	"github.com/peladahub/pickup-league/internal/domain/championship"
	"github.com/peladahub/pickup-league/internal/usecase"
)

type createChampionshipRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
	Date string `json:"cupDate" validate:"required"`
}

type addWinnersRequest struct {
	PlayerIDs []int64 `json:"playerIds" validate:"required,min=1,dive,gt=0"`
}

type championshipDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Date string `json:"cupDate"`
}

type titleCountDTO struct {
	PlayerID int64  `json:"playerId"`
	Name     string `json:"name"`
	Titles   int    `json:"titles"`
}

func (h *Handler) CreateChampionship(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateChampionship")
	defer span.End()

	var req createChampionshipRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	cupDate, err := parseDate(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.championshipService.CreateChampionship(ctx, usecase.CreateChampionshipInput{
		Name: req.Name,
		Date: cupDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create championship failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, championshipToDTO(created))
}

func (h *Handler) ListChampionships(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListChampionships")
	defer span.End()

	championships, err := h.championshipService.ListChampionships(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list championships failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]championshipDTO, 0, len(championships))
	for _, c := range championships {
		items = append(items, championshipToDTO(c))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) AddChampionshipWinners(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddChampionshipWinners")
	defer span.End()

	championshipID, err := pathID(r, "championshipID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req addWinnersRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.championshipService.AddWinners(ctx, championshipID, req.PlayerIDs); err != nil {
		h.logger.WarnContext(ctx, "add championship winners failed", "championship_id", championshipID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"championshipId": championshipID, "winners": len(req.PlayerIDs)})
}

func (h *Handler) ListTitleCounts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTitleCounts")
	defer span.End()

	counts, err := h.championshipService.TitleCounts(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list title counts failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]titleCountDTO, 0, len(counts))
	for _, c := range counts {
		items = append(items, titleCountDTO{
			PlayerID: c.PlayerID,
			Name:     c.Name,
			Titles:   c.Titles,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

func championshipToDTO(v championship.Championship) championshipDTO {
	return championshipDTO{
		ID:   v.ID,
		Name: v.Name,
		Date: v.Date.UTC().Format(dateLayout),
	}
}
