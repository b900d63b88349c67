package httpapi

import (
	"net/http"

	"github.com/peladahub/pickup-league/internal/usecase"
)

type createMatchRequest struct {
	Team1Number int `json:"team1Number" validate:"required,gte=1"`
	Team2Number int `json:"team2Number" validate:"required,gte=1,nefield=Team1Number"`
}

type playerLineRequest struct {
	PlayerID int64 `json:"playerId" validate:"required,gt=0"`
	Side     int   `json:"side" validate:"required,oneof=1 2"`
	Goals    int   `json:"goals" validate:"gte=0"`
	Assists  int   `json:"assists" validate:"gte=0"`
	Warnings int   `json:"warnings" validate:"gte=0"`
}

type recordResultRequest struct {
	Score1          int                 `json:"score1" validate:"gte=0"`
	Score2          int                 `json:"score2" validate:"gte=0"`
	DurationSeconds int                 `json:"durationSeconds" validate:"gte=0"`
	Lines           []playerLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type ownGoalRequest struct {
	PlayerID int64 `json:"playerId" validate:"required,gt=0"`
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	roundID, err := pathID(r, "roundID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createMatchRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchService.CreateMatch(ctx, usecase.CreateMatchInput{
		RoundID:     roundID,
		Team1Number: req.Team1Number,
		Team2Number: req.Team2Number,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	roundID, err := pathID(r, "roundID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.matchService.ListMatches(ctx, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	found, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(found))
}

func (h *Handler) ListMatchResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchResults")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	results, err := h.matchService.ListResults(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match results failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchResultDTO, 0, len(results))
	for _, res := range results {
		items = append(items, matchResultToDTO(res))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) RecordMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchResult")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req recordResultRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	lines := make([]usecase.PlayerLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, usecase.PlayerLine{
			PlayerID: line.PlayerID,
			Side:     line.Side,
			Goals:    line.Goals,
			Assists:  line.Assists,
			Warnings: line.Warnings,
		})
	}

	results, err := h.matchService.RecordResult(ctx, usecase.RecordResultInput{
		MatchID:         matchID,
		Score1:          req.Score1,
		Score2:          req.Score2,
		DurationSeconds: req.DurationSeconds,
		Lines:           lines,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record match result failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchResultDTO, 0, len(results))
	for _, res := range results {
		items = append(items, matchResultToDTO(res))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) RegisterOwnGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterOwnGoal")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req ownGoalRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.matchService.RegisterOwnGoal(ctx, matchID, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "register own goal failed", "match_id", matchID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(updated))
}
