package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/peladahub/pickup-league/internal/domain/league"
	"github.com/peladahub/pickup-league/internal/domain/match"
	"github.com/peladahub/pickup-league/internal/domain/player"
	"github.com/peladahub/pickup-league/internal/domain/round"
	"github.com/peladahub/pickup-league/internal/platform/logging"
	"github.com/peladahub/pickup-league/internal/usecase"
)

const dateLayout = "2006-01-02"

type Handler struct {
	playerService       *usecase.PlayerService
	leagueService       *usecase.LeagueService
	roundService        *usecase.RoundService
	matchService        *usecase.MatchService
	statsService        *usecase.StatsService
	championshipService *usecase.ChampionshipService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	leagueService *usecase.LeagueService,
	roundService *usecase.RoundService,
	matchService *usecase.MatchService,
	statsService *usecase.StatsService,
	championshipService *usecase.ChampionshipService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:       playerService,
		leagueService:       leagueService,
		roundService:        roundService,
		matchService:        matchService,
		statsService:        statsService,
		championshipService: championshipService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) decodeRequest(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// pathID parses a positive int64 path segment like {playerID}.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, name, raw)
	}

	return id, nil
}

type playerDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Defends bool   `json:"defends"`
	Level   int    `json:"level"`
}

type leagueDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type roundDTO struct {
	ID       int64  `json:"id"`
	LeagueID int64  `json:"leagueId"`
	Date     string `json:"roundDate"`
	Status   string `json:"status"`
}

type teamAssignmentDTO struct {
	PlayerID   int64 `json:"playerId" validate:"required,gt=0"`
	TeamNumber int   `json:"teamNumber" validate:"required,gte=1"`
}

type matchDTO struct {
	ID              int64 `json:"id"`
	RoundID         int64 `json:"roundId"`
	Score1          int   `json:"score1"`
	Score2          int   `json:"score2"`
	DurationSeconds int   `json:"durationSeconds"`
	Team1Number     int   `json:"team1Number"`
	Team2Number     int   `json:"team2Number"`
}

type matchResultDTO struct {
	ID          int64  `json:"id"`
	MatchID     int64  `json:"matchId"`
	PlayerID    int64  `json:"playerId"`
	TeamLabel   string `json:"teamLabel"`
	Goals       int    `json:"goals"`
	Assists     int    `json:"assists"`
	Wins        int    `json:"wins"`
	Draws       int    `json:"draws"`
	Losses      int    `json:"losses"`
	Warnings    int    `json:"warnings"`
	OwnGoals    int    `json:"ownGoals"`
	CleanSheets int    `json:"cleanSheets"`
}

type playerResultDTO struct {
	PlayerID    int64   `json:"playerId"`
	Name        string  `json:"name"`
	Defends     bool    `json:"defends"`
	Goals       int     `json:"goals"`
	Assists     int     `json:"assists"`
	Wins        int     `json:"wins"`
	Draws       int     `json:"draws"`
	Losses      int     `json:"losses"`
	Warnings    int     `json:"warnings"`
	OwnGoals    int     `json:"ownGoals"`
	CleanSheets int     `json:"cleanSheets"`
	Points      float64 `json:"points"`
}

type awardDTO struct {
	ID       int64   `json:"id"`
	RoundID  int64   `json:"roundId"`
	PlayerID int64   `json:"playerId"`
	Kind     string  `json:"kind"`
	Points   float64 `json:"points"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:      v.ID,
		Name:    v.Name,
		Role:    string(v.Role),
		Defends: v.Defends,
		Level:   v.Level,
	}
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:        v.ID,
		Name:      v.Name,
		StartDate: v.StartDate.UTC().Format(dateLayout),
		EndDate:   v.EndDate.UTC().Format(dateLayout),
	}
}

func roundToDTO(v round.Round) roundDTO {
	return roundDTO{
		ID:       v.ID,
		LeagueID: v.LeagueID,
		Date:     v.Date.UTC().Format(dateLayout),
		Status:   string(v.Status),
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:              v.ID,
		RoundID:         v.RoundID,
		Score1:          v.Score1,
		Score2:          v.Score2,
		DurationSeconds: v.DurationSeconds,
		Team1Number:     v.Team1Number,
		Team2Number:     v.Team2Number,
	}
}

func matchResultToDTO(v match.Result) matchResultDTO {
	return matchResultDTO{
		ID:          v.ID,
		MatchID:     v.MatchID,
		PlayerID:    v.PlayerID,
		TeamLabel:   v.TeamLabel,
		Goals:       v.Goals,
		Assists:     v.Assists,
		Wins:        v.Wins,
		Draws:       v.Draws,
		Losses:      v.Losses,
		Warnings:    v.Warnings,
		OwnGoals:    v.OwnGoals,
		CleanSheets: v.CleanSheets,
	}
}

func playerResultToDTO(v round.PlayerResult) playerResultDTO {
	return playerResultDTO{
		PlayerID:    v.PlayerID,
		Name:        v.Name,
		Defends:     v.Defends,
		Goals:       v.Stats.Goals,
		Assists:     v.Stats.Assists,
		Wins:        v.Stats.Wins,
		Draws:       v.Stats.Draws,
		Losses:      v.Stats.Losses,
		Warnings:    v.Stats.Warnings,
		OwnGoals:    v.Stats.OwnGoals,
		CleanSheets: v.Stats.CleanSheets,
		Points:      v.Points,
	}
}

func awardToDTO(v round.Award) awardDTO {
	return awardDTO{
		ID:       v.ID,
		RoundID:  v.RoundID,
		PlayerID: v.PlayerID,
		Kind:     string(v.Kind),
		Points:   v.Points,
	}
}

func parseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", usecase.ErrInvalidInput, raw)
	}

	return parsed, nil
}
