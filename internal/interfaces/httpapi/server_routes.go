package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedRosterRoutes(mux, handler, verifier)
	registerAuthorizedMatchRoutes(mux, handler, verifier)
	registerAuthorizedSessionRoutes(mux, handler, verifier)
}

func registerAuthorizedRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.ListPlayers)))
	mux.Handle("PUT /v1/players/me/profile", RequireAuth(verifier, http.HandlerFunc(handler.CompleteMyProfile)))
}

func registerAuthorizedMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("GET /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.ListMatches)))
	mux.Handle("GET /v1/matches/{matchID}", RequireAuth(verifier, http.HandlerFunc(handler.GetMatch)))
}

func registerAuthorizedSessionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/matches/{matchID}/session", RequireAuth(verifier, http.HandlerFunc(handler.StartSession)))
	mux.Handle("GET /v1/matches/{matchID}/session", RequireAuth(verifier, http.HandlerFunc(handler.GetSessionRound)))
	mux.Handle("POST /v1/matches/{matchID}/session/scores", RequireAuth(verifier, http.HandlerFunc(handler.SubmitScore)))
	mux.Handle("POST /v1/matches/{matchID}/session/rounds/next", RequireAuth(verifier, http.HandlerFunc(handler.NextRound)))
	mux.Handle("POST /v1/matches/{matchID}/session/finish", RequireAuth(verifier, http.HandlerFunc(handler.FinishSession)))
	mux.Handle("GET /v1/matches/{matchID}/session/standings", RequireAuth(verifier, http.HandlerFunc(handler.GetStandings)))
}
