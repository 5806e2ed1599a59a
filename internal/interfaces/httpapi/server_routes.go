package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerBoardRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{slug}/scoreboard", handler.GetScoreboard)
	mux.HandleFunc("GET /v1/leagues/{slug}/competitions/{competitionID}/odds", handler.GetOdds)
	mux.HandleFunc("GET /v1/board", handler.GetBoard)
}
