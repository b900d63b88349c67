package httpapi

import "net/http"

// registerRoutes wires every endpoint. Mutations require the admin role,
// reads require any authenticated principal, /healthz stays public.
func registerRoutes(mux *http.ServeMux, h *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /healthz", h.Healthz)

	authed := func(handlerFunc http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, handlerFunc)
	}
	admin := func(handlerFunc http.HandlerFunc) http.Handler {
		return RequireAdmin(verifier, handlerFunc)
	}

	// Players.
	mux.Handle("POST /v1/players", admin(h.CreatePlayer))
	mux.Handle("GET /v1/players", authed(h.ListPlayers))
	mux.Handle("GET /v1/players/{playerID}", authed(h.GetPlayer))
	mux.Handle("PUT /v1/players/{playerID}", admin(h.UpdatePlayer))

	// Leagues.
	mux.Handle("POST /v1/leagues", admin(h.CreateLeague))
	mux.Handle("GET /v1/leagues", authed(h.ListLeagues))
	mux.Handle("GET /v1/leagues/{leagueID}", authed(h.GetLeague))
	mux.Handle("GET /v1/leagues/{leagueID}/overview", authed(h.LeagueOverview))

	// Rounds.
	mux.Handle("POST /v1/leagues/{leagueID}/rounds", admin(h.CreateRound))
	mux.Handle("GET /v1/leagues/{leagueID}/rounds", authed(h.ListRounds))
	mux.Handle("GET /v1/rounds/{roundID}", authed(h.GetRound))
	mux.Handle("PUT /v1/rounds/{roundID}/roster", admin(h.SyncRoster))
	mux.Handle("GET /v1/rounds/{roundID}/roster", authed(h.ListRoster))
	mux.Handle("PUT /v1/rounds/{roundID}/teams", admin(h.SaveTeamAssignments))
	mux.Handle("GET /v1/rounds/{roundID}/teams", authed(h.ListTeamAssignments))
	mux.Handle("GET /v1/rounds/{roundID}/live-results", authed(h.LiveResults))
	mux.Handle("POST /v1/rounds/{roundID}/finalize", admin(h.FinalizeRound))
	mux.Handle("GET /v1/rounds/{roundID}/awards", authed(h.ListAwards))

	// Matches.
	mux.Handle("POST /v1/rounds/{roundID}/matches", admin(h.CreateMatch))
	mux.Handle("GET /v1/rounds/{roundID}/matches", authed(h.ListMatches))
	mux.Handle("GET /v1/matches/{matchID}", authed(h.GetMatch))
	mux.Handle("GET /v1/matches/{matchID}/results", authed(h.ListMatchResults))
	mux.Handle("PUT /v1/matches/{matchID}/result", admin(h.RecordMatchResult))
	mux.Handle("POST /v1/matches/{matchID}/own-goals", admin(h.RegisterOwnGoal))

	// Championships.
	mux.Handle("POST /v1/championships", admin(h.CreateChampionship))
	mux.Handle("GET /v1/championships", authed(h.ListChampionships))
	mux.Handle("POST /v1/championships/{championshipID}/winners", admin(h.AddChampionshipWinners))
	mux.Handle("GET /v1/championships/titles", authed(h.ListTitleCounts))
}
