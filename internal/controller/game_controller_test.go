package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/benbeisheim/chess-arena/internal/engine"
	"github.com/benbeisheim/chess-arena/internal/model"
	"github.com/benbeisheim/chess-arena/internal/service"
	"github.com/benbeisheim/chess-arena/internal/setup"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	gs := service.NewGameService(service.NewGameManager(ctx, time.Hour, time.Minute), engine.NewSearcher(engine.WithWorkers(2)))
	t.Cleanup(gs.Wait)

	app := fiber.New()
	Register(app, gs, nil)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, player, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if player != "" {
		req.Header.Set("X-Player-ID", player)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, data
}

func createGame(t *testing.T, app *fiber.App, player, body string) string {
	t.Helper()
	status, data := do(t, app, fiber.MethodPost, "/api/game/create", player, body)
	if status != http.StatusOK {
		t.Fatalf("create status = %d: %s", status, data)
	}
	var resp struct {
		GameID string `json:"game_id"`
		Color  string `json:"color"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatal(err)
	}
	return resp.GameID
}

func TestGameLifecycle(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app, "alice", "")

	status, data := do(t, app, fiber.MethodPost, "/api/game/join/"+gameID, "bob", "")
	if status != http.StatusOK || !strings.Contains(string(data), `"black"`) {
		t.Fatalf("join = %d %s", status, data)
	}
	if status, _ := do(t, app, fiber.MethodPost, "/api/game/join/"+gameID, "carol", ""); status != http.StatusConflict {
		t.Errorf("third join status = %d, want 409", status)
	}

	status, data = do(t, app, fiber.MethodGet, "/api/game/"+gameID, "alice", "")
	if status != http.StatusOK {
		t.Fatalf("state status = %d", status)
	}
	var state model.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatal(err)
	}
	if state.FEN != setup.StartFEN {
		t.Errorf("FEN = %q, want the start position", state.FEN)
	}
}

func TestLegalMovesEndpoint(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app, "alice", "")

	status, data := do(t, app, fiber.MethodGet, fmt.Sprintf("/api/game/%s/moves?row=6&col=4", gameID), "alice", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d: %s", status, data)
	}
	var resp struct {
		Moves []model.SimpleMove `json:"moves"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, m := range resp.Moves {
		got = append(got, m.To.Notation())
	}
	if diff := cmp.Diff([]string{"e4", "e3"}, got); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}

	if status, _ := do(t, app, fiber.MethodGet, "/api/game/"+gameID+"/moves?row=8&col=0", "alice", ""); status != http.StatusBadRequest {
		t.Errorf("off-board status = %d, want 400", status)
	}
}

func TestBoardSVGEndpoint(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app, "alice", "")

	req := httptest.NewRequest(fiber.MethodGet, "/api/game/"+gameID+"/board.svg", nil)
	req.Header.Set("X-Player-ID", "alice")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(fiber.HeaderContentType); got != "image/svg+xml" {
		t.Errorf("content type = %q", got)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "</svg>") {
		t.Errorf("body is not an svg document: %.80s", body)
	}
}

func TestBestMoveEndpoint(t *testing.T) {
	app := newTestApp(t)
	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"hanging queen", `{"fen":"q7/8/7k/8/8/8/8/R5K1 w - - 0 1","difficulty":3}`, http.StatusOK, `"move":"a1a8"`},
		{"no fen", `{"difficulty":3}`, http.StatusBadRequest, "fen is required"},
		{"bad fen", `{"fen":"xyz"}`, http.StatusBadRequest, "invalid FEN"},
		{"mated", `{"fen":"R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1","difficulty":2}`, http.StatusConflict, "no legal moves"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := do(t, app, fiber.MethodPost, "/api/analysis/bestmove", "alice", tt.body)
			if status != tt.status || !strings.Contains(string(data), tt.want) {
				t.Errorf("bestmove = %d %s; want %d containing %q", status, data, tt.status, tt.want)
			}
		})
	}
}

func TestErrorStatuses(t *testing.T) {
	app := newTestApp(t)
	tests := []struct {
		name   string
		method string
		target string
		player string
		body   string
		want   int
	}{
		{"no player", fiber.MethodGet, "/api/game/abc", "", "", http.StatusUnauthorized},
		{"unknown game", fiber.MethodGet, "/api/game/abc", "alice", "", http.StatusNotFound},
		{"join unknown", fiber.MethodPost, "/api/game/join/abc", "alice", "", http.StatusNotFound},
		{"bad fen", fiber.MethodPost, "/api/game/create", "alice", `{"fen":"nope"}`, http.StatusBadRequest},
		{"bad mode", fiber.MethodPost, "/api/game/create", "alice", `{"mode":"blitz"}`, http.StatusBadRequest},
		{"bad body", fiber.MethodPost, "/api/game/create", "alice", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status, data := do(t, app, tt.method, tt.target, tt.player, tt.body); status != tt.want {
				t.Errorf("status = %d (%s), want %d", status, data, tt.want)
			}
		})
	}
}

func TestMatchmakingEndpoint(t *testing.T) {
	app := newTestApp(t)
	if status, _ := do(t, app, fiber.MethodPost, "/api/game/matchmaking/join", "alice", ""); status != http.StatusOK {
		t.Fatalf("first join status = %d", status)
	}
	if status, _ := do(t, app, fiber.MethodPost, "/api/game/matchmaking/join", "alice", ""); status != http.StatusConflict {
		t.Errorf("second join status = %d, want 409", status)
	}
}

func TestComputerGameEndpoint(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app, "alice", `{"mode":"computer","difficulty":1,"computerColor":"white"}`)

	deadline := time.Now().Add(5 * time.Second)
	for {
		_, data := do(t, app, fiber.MethodGet, "/api/game/"+gameID, "alice", "")
		var state model.GameState
		if err := json.Unmarshal(data, &state); err != nil {
			t.Fatal(err)
		}
		if len(state.MoveHistory) == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("computer never opened")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrapped: %w", model.ErrGameNotFound), http.StatusNotFound},
		{model.ErrNotInGame, http.StatusForbidden},
		{model.ErrIllegalMove, http.StatusUnprocessableEntity},
		{model.ErrInvalidPromotion, http.StatusUnprocessableEntity},
		{model.ErrNotYourTurn, http.StatusConflict},
		{model.ErrGameOver, http.StatusConflict},
		{setup.ErrInvalidFEN, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
