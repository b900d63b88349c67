package httpapi

import (
	"net/http"

	"github.com/peladahub/pickup-league/internal/domain/round"
	"github.com/peladahub/pickup-league/internal/usecase"
)

type createRoundRequest struct {
	RoundDate string `json:"roundDate" validate:"required"`
}

type syncRosterRequest struct {
	Players []string `json:"players" validate:"required,min=1,dive,required,min=1,max=120"`
}

type saveTeamsRequest struct {
	Assignments []teamAssignmentDTO `json:"assignments" validate:"required,min=1,dive"`
}

type roundDetailDTO struct {
	Round   roundDTO            `json:"round"`
	Roster  []playerDTO         `json:"roster"`
	Teams   []teamAssignmentDTO `json:"teams"`
	Matches []matchDTO          `json:"matches"`
}

type finalizeResultDTO struct {
	Top               []playerResultDTO `json:"top"`
	Bottom            []playerResultDTO `json:"bottom"`
	PlayersConsidered int               `json:"playersConsidered"`
	MaxPoints         float64           `json:"maxPoints"`
	MinPoints         float64           `json:"minPoints"`
}

func (h *Handler) CreateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRound")
	defer span.End()

	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createRoundRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	date, err := parseDate(req.RoundDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.roundService.CreateRound(ctx, usecase.CreateRoundInput{
		LeagueID: leagueID,
		Date:     date,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create round failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, roundToDTO(created))
}

func (h *Handler) ListRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRounds")
	defer span.End()

	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rounds, err := h.roundService.ListRounds(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list rounds failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]roundDTO, 0, len(rounds))
	for _, rd := range rounds {
		items = append(items, roundToDTO(rd))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) GetRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRound")
	defer span.End()

	roundID, err := pathID(r, "roundID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.roundService.RoundDetail(ctx, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "get round failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundDetailToDTO(detail))
}

func (h *Handler) SyncRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncRoster")
	defer span.End()

	roundID, err := pathID(r, "roundID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req syncRosterRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, err := h.roundService.SyncRoster(ctx, roundID, req.Players)
	if err != nil {
		h.logger.WarnContext(ctx, "sync roster failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(roster))
	for _, p := range roster {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoster")
	defer span.End()

	roundID, err := pathID(r, "roundID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, err := h.roundService.ListRoster(ctx, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "list roster failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(roster))
	for _, p := range roster {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) SaveTeamAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveTeamAssignments")
	defer span.End()

	roundID, err := pathID(r, "roundID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveTeamsRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	assignments := make([]round.TeamAssignment, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		assignments = append(assignments, round.TeamAssignment{
			PlayerID:   a.PlayerID,
			TeamNumber: a.TeamNumber,
		})
	}

	if err := h.roundService.SaveTeamAssignments(ctx, roundID, assignments); err != nil {
		h.logger.WarnContext(ctx, "save team assignments failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": req.Assignments})
}

func (h *Handler) ListTeamAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamAssignments")
	defer span.End()

	roundID, err := pathID(r, "roundID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	assignments, err := h.roundService.ListTeamAssignments(ctx, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team assignments failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamAssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		items = append(items, teamAssignmentDTO{PlayerID: a.PlayerID, TeamNumber: a.TeamNumber})
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) LiveResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LiveResults")
	defer span.End()

	roundID, err := pathID(r, "roundID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	results, err := h.roundService.LiveResults(ctx, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "live results failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerResultDTO, 0, len(results))
	for _, pr := range results {
		items = append(items, playerResultToDTO(pr))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) FinalizeRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeRound")
	defer span.End()

	roundID, err := pathID(r, "roundID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.roundService.Finalize(ctx, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "finalize round failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	top := make([]playerResultDTO, 0, len(result.Top))
	for _, pr := range result.Top {
		top = append(top, playerResultToDTO(pr))
	}
	bottom := make([]playerResultDTO, 0, len(result.Bottom))
	for _, pr := range result.Bottom {
		bottom = append(bottom, playerResultToDTO(pr))
	}

	writeSuccess(ctx, w, http.StatusOK, finalizeResultDTO{
		Top:               top,
		Bottom:            bottom,
		PlayersConsidered: result.PlayersConsidered,
		MaxPoints:         result.MaxPoints,
		MinPoints:         result.MinPoints,
	})
}

func (h *Handler) ListAwards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAwards")
	defer span.End()

	roundID, err := pathID(r, "roundID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	awards, err := h.roundService.ListAwards(ctx, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "list awards failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]awardDTO, 0, len(awards))
	for _, a := range awards {
		items = append(items, awardToDTO(a))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

func roundDetailToDTO(detail usecase.RoundDetail) roundDetailDTO {
	roster := make([]playerDTO, 0, len(detail.Roster))
	for _, p := range detail.Roster {
		roster = append(roster, playerToDTO(p))
	}
	teams := make([]teamAssignmentDTO, 0, len(detail.Teams))
	for _, a := range detail.Teams {
		teams = append(teams, teamAssignmentDTO{PlayerID: a.PlayerID, TeamNumber: a.TeamNumber})
	}
	matches := make([]matchDTO, 0, len(detail.Matches))
	for _, m := range detail.Matches {
		matches = append(matches, matchToDTO(m))
	}

	return roundDetailDTO{
		Round:   roundToDTO(detail.Round),
		Roster:  roster,
		Teams:   teams,
		Matches: matches,
	}
}
