package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dimashiii/EzySubs-App/internal/domain/rotation"
	"github.com/dimashiii/EzySubs-App/internal/usecase"
)

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	view, err := h.gameService.View(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) GetLivePreview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLivePreview")
	defer span.End()

	game, err := h.gameService.LivePreview(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "live preview failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, archivedGameToDTO(game))
}

func (h *Handler) TogglePause(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TogglePause")
	defer span.End()

	applied, err := h.gameService.TogglePause(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !applied {
		writeError(ctx, w, notApplied("pause"))
		return
	}
	h.writeAction(ctx, w, true)
}

func (h *Handler) EndGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EndGame")
	defer span.End()

	game, err := h.gameService.EndGame(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "end game failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, archivedGameToDTO(game))
}

func (h *Handler) Background(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Background")
	defer span.End()

	if err := h.gameService.Background(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}
	h.writeAction(ctx, w, true)
}

func (h *Handler) Foreground(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Foreground")
	defer span.End()

	res, err := h.gameService.Foreground(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	view, err := h.gameService.View(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, tickToDTO(res, view))
}

func (h *Handler) ApplyBreakSwap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyBreakSwap")
	defer span.End()

	applied, err := h.gameService.ApplyPendingSwap(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !applied {
		writeError(ctx, w, notApplied("break substitution"))
		return
	}
	h.writeAction(ctx, w, true)
}

func (h *Handler) RequestSubReason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RequestSubReason")
	defer span.End()

	var req playerSideRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	applied, err := h.gameService.RequestReason(ctx, req.PlayerID, rotation.Side(req.Side))
	h.respondAction(ctx, w, "reason prompt", applied, err)
}

func (h *Handler) StartSubDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartSubDraft")
	defer span.End()

	var req subDraftRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	applied, err := h.gameService.StartDraft(ctx, req.PlayerID, rotation.Side(req.Side), strings.TrimSpace(req.Reason))
	h.respondAction(ctx, w, "substitution draft", applied, err)
}

func (h *Handler) PickSubPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PickSubPlayer")
	defer span.End()

	var req playerSideRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	applied, err := h.gameService.Pick(ctx, req.PlayerID, rotation.Side(req.Side))
	h.respondAction(ctx, w, "pick", applied, err)
}

func (h *Handler) ConfirmSub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmSub")
	defer span.End()

	applied, err := h.gameService.ConfirmDraft(ctx)
	h.respondAction(ctx, w, "confirm", applied, err)
}

func (h *Handler) CancelSub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelSub")
	defer span.End()

	applied, err := h.gameService.CancelDraft(ctx)
	h.respondAction(ctx, w, "cancel", applied, err)
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHistory")
	defer span.End()

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a non-negative integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	games, err := h.gameService.History(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list history failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]archivedGameDTO, 0, len(games))
	for _, g := range games {
		out = append(out, archivedGameToDTO(g))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) respondAction(ctx context.Context, w http.ResponseWriter, action string, applied bool, err error) {
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !applied {
		writeError(ctx, w, notApplied(action))
		return
	}
	h.writeAction(ctx, w, applied)
}

func (h *Handler) writeAction(ctx context.Context, w http.ResponseWriter, applied bool) {
	view, err := h.gameService.View(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, actionDTO{Applied: applied, Game: view})
}
