package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/dimashiii/EzySubs-App/internal/domain/rotation"
	"github.com/dimashiii/EzySubs-App/internal/domain/settings"
	"github.com/dimashiii/EzySubs-App/internal/infrastructure/repository/memory"
	"github.com/dimashiii/EzySubs-App/internal/platform/logging"
	"github.com/dimashiii/EzySubs-App/internal/usecase"
)

type envelope[T any] struct {
	Data  T `json:"data"`
	Error *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

func newTestGameRouter(t *testing.T, start bool) http.Handler {
	t.Helper()

	svc, err := usecase.NewGameService(
		memory.NewPlayerRepository(memory.SeedPlayers(), nil),
		memory.NewLineupRepository(),
		memory.NewSettingsRepository(),
		memory.NewSnapshotRepository(),
		memory.NewHistoryRepository(),
		nil,
		usecase.GameServiceConfig{
			DefaultSettings: settings.Settings{HalfLengthSeconds: 600, SubIntervalSeconds: 120, SubWarningSeconds: 30},
			SnapshotWorkers: 1,
		},
		logging.NewNop(),
	)
	if err != nil {
		t.Fatalf("new game service: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close(context.Background()) })

	if start {
		if _, err := svc.Start(context.Background()); err != nil {
			t.Fatalf("start game: %v", err)
		}
	}

	return NewRouter(NewHandler(svc, logging.NewNop()), logging.NewNop(), nil)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var out envelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return out
}

func TestHandler_GetGameBeforeStart(t *testing.T) {
	router := newTestGameRouter(t, false)

	rec := doRequest(t, router, http.MethodGet, "/v1/game", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
	body := decodeEnvelope[any](t, rec)
	if body.Error == nil || body.Error.Status != "FAILED_PRECONDITION" {
		t.Fatalf("expected FAILED_PRECONDITION error, got %+v", body.Error)
	}
}

func TestHandler_GetGame(t *testing.T) {
	router := newTestGameRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/v1/game", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope[rotation.View](t, rec)
	if len(body.Data.Starters) != rotation.MaxStarters {
		t.Fatalf("expected %d starters, got %d", rotation.MaxStarters, len(body.Data.Starters))
	}
	if len(body.Data.Bench) != 4 {
		t.Fatalf("expected 4 bench players, got %d", len(body.Data.Bench))
	}
	if body.Data.GameClock != 600 {
		t.Fatalf("expected game clock 600, got %d", body.Data.GameClock)
	}
}

func TestHandler_ManualSubstitutionFlow(t *testing.T) {
	router := newTestGameRouter(t, true)

	rec := doRequest(t, router, http.MethodPost, "/v1/game/subs/draft", `{"playerId":"p-01","side":"court","reason":"foul trouble"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("draft: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/game/subs/pick", `{"playerId":"p-07","side":"bench"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("pick: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	picked := decodeEnvelope[actionDTO](t, rec)
	if picked.Data.Game.Manual.Stage != "confirm" {
		t.Fatalf("expected confirm stage, got %q", picked.Data.Game.Manual.Stage)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/game/subs/confirm", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	confirmed := decodeEnvelope[actionDTO](t, rec)
	onCourt := false
	for _, p := range confirmed.Data.Game.Starters {
		if p.ID == "p-07" {
			onCourt = true
		}
		if p.ID == "p-01" {
			t.Fatalf("expected p-01 to leave the court")
		}
	}
	if !onCourt {
		t.Fatalf("expected p-07 on court after confirm")
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/game/subs/confirm", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second confirm: expected status 400, got %d", rec.Code)
	}
}

func TestHandler_SubRequestValidation(t *testing.T) {
	router := newTestGameRouter(t, true)

	cases := []struct {
		name string
		path string
		body string
	}{
		{name: "bad side", path: "/v1/game/subs/reason", body: `{"playerId":"p-01","side":"locker"}`},
		{name: "unknown field", path: "/v1/game/subs/pick", body: `{"playerId":"p-01","side":"court","extra":1}`},
		{name: "missing reason", path: "/v1/game/subs/draft", body: `{"playerId":"p-01","side":"court"}`},
		{name: "malformed", path: "/v1/game/subs/reason", body: `{"playerId":`},
		{name: "player on other side", path: "/v1/game/subs/reason", body: `{"playerId":"p-09","side":"court"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, tc.path, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandler_PauseAndEnd(t *testing.T) {
	router := newTestGameRouter(t, true)

	rec := doRequest(t, router, http.MethodPost, "/v1/game/pause", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("pause: expected status 200, got %d", rec.Code)
	}
	paused := decodeEnvelope[actionDTO](t, rec)
	if !paused.Data.Game.Paused {
		t.Fatalf("expected game to be paused")
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/game/end", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("end: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	ended := decodeEnvelope[archivedGameDTO](t, rec)
	if ended.Data.Live || ended.Data.ID == "" {
		t.Fatalf("expected archived game with id, got %+v", ended.Data)
	}
	if len(ended.Data.Players) != 9 {
		t.Fatalf("expected 9 player lines, got %d", len(ended.Data.Players))
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("history: expected status 200, got %d", rec.Code)
	}
	games := decodeEnvelope[[]archivedGameDTO](t, rec)
	if len(games.Data) != 1 || games.Data[0].ID != ended.Data.ID {
		t.Fatalf("expected archived game in history, got %+v", games.Data)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/game/pause", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("pause after end: expected status 400, got %d", rec.Code)
	}
}

func TestHandler_LivePreview(t *testing.T) {
	router := newTestGameRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/v1/game/live", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope[archivedGameDTO](t, rec)
	if !body.Data.Live {
		t.Fatalf("expected live preview, got id %q", body.Data.ID)
	}
}

func TestHandler_ListHistoryRejectsBadLimit(t *testing.T) {
	router := newTestGameRouter(t, false)

	rec := doRequest(t, router, http.MethodGet, "/v1/history?limit=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandler_Healthz(t *testing.T) {
	router := newTestGameRouter(t, false)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
