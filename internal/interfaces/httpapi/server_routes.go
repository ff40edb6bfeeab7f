package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/game", handler.GetGame)
	mux.HandleFunc("GET /v1/game/live", handler.GetLivePreview)
	mux.HandleFunc("POST /v1/game/pause", handler.TogglePause)
	mux.HandleFunc("POST /v1/game/end", handler.EndGame)
	mux.HandleFunc("POST /v1/game/background", handler.Background)
	mux.HandleFunc("POST /v1/game/foreground", handler.Foreground)
	mux.HandleFunc("POST /v1/game/breaks/apply", handler.ApplyBreakSwap)

	mux.HandleFunc("POST /v1/game/subs/reason", handler.RequestSubReason)
	mux.HandleFunc("POST /v1/game/subs/draft", handler.StartSubDraft)
	mux.HandleFunc("POST /v1/game/subs/pick", handler.PickSubPlayer)
	mux.HandleFunc("POST /v1/game/subs/confirm", handler.ConfirmSub)
	mux.HandleFunc("POST /v1/game/subs/cancel", handler.CancelSub)
}

func registerHistoryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/history", handler.ListHistory)
}
