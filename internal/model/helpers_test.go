package model

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/benbeisheim/chess-arena/internal/chess"
	"github.com/benbeisheim/chess-arena/internal/setup"
	"github.com/benbeisheim/chess-arena/internal/ws"
)

// fakeConn records what a game writes to it.
type fakeConn struct {
	mu     sync.Mutex
	msgs   []ws.Message
	closed bool
	fail   bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.msgs = append(c.msgs, v.(ws.Message))
	return nil
}

func (c *fakeConn) WriteMessage(int, []byte) error {
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) breakPipe() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail = true
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

func (c *fakeConn) lastState(t *testing.T) GameState {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.msgs) == 0 {
		t.Fatal("no messages written")
	}
	msg := c.msgs[len(c.msgs)-1]
	if msg.Type != ws.MessageTypeGameState {
		t.Fatalf("last message type = %q, want %q", msg.Type, ws.MessageTypeGameState)
	}
	var s GameState
	if err := json.Unmarshal(msg.Payload, &s); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	return s
}

func mustSetup(t *testing.T, fen string) *setup.Setup {
	t.Helper()
	s, err := setup.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) error: %v", fen, err)
	}
	return &s
}

func wsMove(t *testing.T, s string) WSMove {
	t.Helper()
	m, err := chess.ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q) error: %v", s, err)
	}
	return WSMove{From: m.From(), To: m.To()}
}

// newPvP returns a pvp game with "alice" as White and "bob" as Black.
func newPvP(t *testing.T, opts Options) *Game {
	t.Helper()
	g := NewGame("g1", opts)
	for _, id := range []string{"alice", "bob"} {
		if _, err := g.AddPlayer(id); err != nil {
			t.Fatalf("AddPlayer(%q) error: %v", id, err)
		}
	}
	return g
}

func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, s := range moves {
		player := "alice"
		if _, toMove := g.Position(); toMove == chess.Black {
			player = "bob"
		}
		if err := g.MakeMove(player, wsMove(t, s)); err != nil {
			t.Fatalf("MakeMove(%s) error: %v", s, err)
		}
	}
}
