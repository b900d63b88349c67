package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/peladahub/pickup-league/internal/domain/scoring"
	"github.com/peladahub/pickup-league/internal/infrastructure/repository/memory"
	"github.com/peladahub/pickup-league/internal/platform/logging"
	"github.com/peladahub/pickup-league/internal/usecase"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	playerRepo := memory.NewPlayerRepository(store)
	leagueRepo := memory.NewLeagueRepository(store)
	roundRepo := memory.NewRoundRepository(store)
	matchRepo := memory.NewMatchRepository(store)
	statsRepo := memory.NewStatsRepository(store)
	engine := scoring.NewEngine(scoring.DefaultWeights())

	handler := NewHandler(
		usecase.NewPlayerService(playerRepo),
		usecase.NewLeagueService(leagueRepo),
		usecase.NewRoundService(roundRepo, leagueRepo, playerRepo, matchRepo, engine),
		usecase.NewMatchService(matchRepo, roundRepo),
		usecase.NewStatsService(statsRepo, leagueRepo, engine, 4),
		usecase.NewChampionshipService(memory.NewChampionshipRepository(store), playerRepo),
		logging.NewNop(),
	)

	return NewRouter(handler, newStubVerifier(), logging.NewNop(), []string{"*"})
}

func doRequest(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRouter_HealthzIsPublic(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"status":"ok"`)
}

func TestRouter_ReadsRequireAuthentication(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/v1/players", "", "")
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRouter_MutationsRequireAdmin(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodPost, "/v1/players", "player-token", `{"name":"Zico"}`)
	require.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestRouter_PlayerLifecycle(t *testing.T) {
	router := newTestRouter(t)

	created := doRequest(router, http.MethodPost, "/v1/players", "admin-token", `{"name":"Zico","defends":true,"level":7}`)
	require.Equal(t, http.StatusCreated, created.Code)

	var createdEnvelope struct {
		Data playerDTO `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(created.Body.Bytes(), &createdEnvelope))
	require.Equal(t, "Zico", createdEnvelope.Data.Name)
	require.Equal(t, "player", createdEnvelope.Data.Role)
	require.True(t, createdEnvelope.Data.Defends)
	require.NotZero(t, createdEnvelope.Data.ID)

	listed := doRequest(router, http.MethodGet, "/v1/players", "player-token", "")
	require.Equal(t, http.StatusOK, listed.Code)

	var listEnvelope struct {
		Data struct {
			Items []playerDTO `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(listed.Body.Bytes(), &listEnvelope))
	require.Len(t, listEnvelope.Data.Items, 1)
}

func TestRouter_LeagueAndRoundFlow(t *testing.T) {
	router := newTestRouter(t)

	createdLeague := doRequest(router, http.MethodPost, "/v1/leagues", "admin-token",
		`{"name":"Sunday League","startDate":"2026-01-01","endDate":"2026-12-31"}`)
	require.Equal(t, http.StatusCreated, createdLeague.Code)

	var leagueEnvelope struct {
		Data leagueDTO `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(createdLeague.Body.Bytes(), &leagueEnvelope))
	leagueID := leagueEnvelope.Data.ID
	require.NotZero(t, leagueID)

	roundPath := "/v1/leagues/" + strconvID(leagueID) + "/rounds"
	createdRound := doRequest(router, http.MethodPost, roundPath, "admin-token", `{"roundDate":"2026-03-08"}`)
	require.Equal(t, http.StatusCreated, createdRound.Code)

	duplicate := doRequest(router, http.MethodPost, roundPath, "admin-token", `{"roundDate":"2026-03-08"}`)
	require.Equal(t, http.StatusConflict, duplicate.Code)
	require.Contains(t, duplicate.Body.String(), "duplicateRoundDate")

	outOfWindow := doRequest(router, http.MethodPost, roundPath, "admin-token", `{"roundDate":"2027-01-10"}`)
	require.Equal(t, http.StatusBadRequest, outOfWindow.Code)
}

func TestRouter_ChampionshipFlow(t *testing.T) {
	router := newTestRouter(t)

	createdPlayer := doRequest(router, http.MethodPost, "/v1/players", "admin-token", `{"name":"Zico"}`)
	require.Equal(t, http.StatusCreated, createdPlayer.Code)
	var playerEnvelope struct {
		Data playerDTO `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(createdPlayer.Body.Bytes(), &playerEnvelope))

	createdCup := doRequest(router, http.MethodPost, "/v1/championships", "admin-token",
		`{"name":"Winter Cup","cupDate":"2026-07-04"}`)
	require.Equal(t, http.StatusCreated, createdCup.Code)
	var cupEnvelope struct {
		Data championshipDTO `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(createdCup.Body.Bytes(), &cupEnvelope))
	require.Equal(t, "2026-07-04", cupEnvelope.Data.Date)

	winnersPath := "/v1/championships/" + strconvID(cupEnvelope.Data.ID) + "/winners"
	winnersBody := `{"playerIds":[` + strconvID(playerEnvelope.Data.ID) + `]}`
	credited := doRequest(router, http.MethodPost, winnersPath, "admin-token", winnersBody)
	require.Equal(t, http.StatusOK, credited.Code)

	repeat := doRequest(router, http.MethodPost, winnersPath, "admin-token", winnersBody)
	require.Equal(t, http.StatusConflict, repeat.Code)
	require.Contains(t, repeat.Body.String(), "duplicateWinner")

	titles := doRequest(router, http.MethodGet, "/v1/championships/titles", "player-token", "")
	require.Equal(t, http.StatusOK, titles.Code)
	var titlesEnvelope struct {
		Data struct {
			Items []titleCountDTO `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(titles.Body.Bytes(), &titlesEnvelope))
	require.Len(t, titlesEnvelope.Data.Items, 1)
	require.Equal(t, 1, titlesEnvelope.Data.Items[0].Titles)
	require.Equal(t, "Zico", titlesEnvelope.Data.Items[0].Name)
}

func TestRouter_UnknownBodyFieldIsRejected(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodPost, "/v1/players", "admin-token", `{"name":"Zico","nickname":"Galinho"}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func strconvID(id int64) string {
	return strconv.FormatInt(id, 10)
}
