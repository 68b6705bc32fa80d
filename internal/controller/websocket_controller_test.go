package controller

import (
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/checkers"
	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/ws"
	fastws "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
)

func serve(t *testing.T, app *fiber.App) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("expected a listener, got %v", err)
	}
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.ShutdownWithTimeout(time.Second)
	})
	return ln.Addr().String()
}

func dial(t *testing.T, addr, gameID, playerID string) *fastws.Conn {
	t.Helper()
	url := "ws://" + addr + "/ws/game/" + gameID + "?playerId=" + playerID
	conn, _, err := fastws.DefaultDialer.Dial(url, http.Header{"Origin": {"http://localhost:5173"}})
	if err != nil {
		t.Fatalf("expected websocket to connect, got %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return conn
}

func send(t *testing.T, conn *fastws.Conn, msgType ws.MessageType, payload any) {
	t.Helper()
	msg, err := ws.NewMessage(msgType, payload)
	if err != nil {
		t.Fatalf("expected message to encode, got %v", err)
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("expected message to send, got %v", err)
	}
}

func readFrame(t *testing.T, conn *fastws.Conn) ws.Message {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(3 * time.Second)); err != nil {
		t.Fatalf("setting read deadline failed: %v", err)
	}
	var msg ws.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("expected a frame, got %v", err)
	}
	return msg
}

func readState(t *testing.T, conn *fastws.Conn) model.GameState {
	t.Helper()
	msg := readFrame(t, conn)
	if msg.Type != ws.MessageTypeGameState {
		t.Fatalf("expected gameState frame, got %s %s", msg.Type, msg.Payload)
	}
	var state model.GameState
	if err := json.Unmarshal(msg.Payload, &state); err != nil {
		t.Fatalf("expected state payload to decode, got %v", err)
	}
	return state
}

func expectErrorFrame(t *testing.T, conn *fastws.Conn) {
	t.Helper()
	if msg := readFrame(t, conn); msg.Type != ws.MessageTypeError {
		t.Fatalf("expected error frame, got %s %s", msg.Type, msg.Payload)
	}
}

func expectClosed(t *testing.T, conn *fastws.Conn) {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(3 * time.Second)); err != nil {
		t.Fatalf("setting read deadline failed: %v", err)
	}
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if _, ok := err.(*fastws.CloseError); !ok {
				t.Fatalf("expected the server to close the socket, got %v", err)
			}
			return
		}
	}
}

func TestWebSocketSession(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app, "alice")
	alice := dial(t, serve(t, app), gameID, "alice")

	if state := readState(t, alice); len(state.MoveHistory) != 0 || state.Status != checkers.StatusOngoing {
		t.Fatalf("expected a fresh game on connect, got %d plies %v", len(state.MoveHistory), state.Status)
	}

	send(t, alice, ws.MessageTypeSelect, model.SelectRequest{Square: checkers.Position{Row: 5, Col: 0}})
	state := readState(t, alice)
	if state.SelectedSquare == nil || *state.SelectedSquare != (checkers.Position{Row: 5, Col: 0}) || len(state.LegalMoves) != 1 {
		t.Fatalf("expected selection of (5,0) with one move, got %v %v", state.SelectedSquare, state.LegalMoves)
	}

	send(t, alice, ws.MessageTypeSelect, model.SelectRequest{Square: checkers.Position{Row: 4, Col: 1}})
	expectErrorFrame(t, alice)
	send(t, alice, ws.MessageType("castle"), nil)
	expectErrorFrame(t, alice)

	send(t, alice, ws.MessageTypeMove, model.MoveRequest{
		From: checkers.Position{Row: 5, Col: 2},
		To:   checkers.Position{Row: 4, Col: 3},
	})
	plies := 0
	for {
		state = readState(t, alice)
		if len(state.MoveHistory) < plies {
			t.Fatalf("expected history to only grow, went from %d to %d plies", plies, len(state.MoveHistory))
		}
		plies = len(state.MoveHistory)
		if plies == 2 && !state.AIThinking {
			break
		}
	}
	if state.ToMove != checkers.SidePlayer || !state.MoveHistory[1].IsAI {
		t.Fatalf("expected the computer reply to end on the human's turn, got %v %+v", state.ToMove, state.MoveHistory[1])
	}

	send(t, alice, ws.MessageTypeReset, nil)
	if state := readState(t, alice); len(state.MoveHistory) != 0 || state.Board != checkers.NewBoard() {
		t.Fatalf("expected a fresh board after reset, got %d plies", len(state.MoveHistory))
	}
}

func TestWebSocketDuplicateConnectionKeepsFirst(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app, "alice")
	addr := serve(t, app)

	first := dial(t, addr, gameID, "alice")
	readState(t, first)

	second := dial(t, addr, gameID, "alice")
	expectErrorFrame(t, second)
	expectClosed(t, second)

	send(t, first, ws.MessageTypeReset, nil)
	if state := readState(t, first); len(state.MoveHistory) != 0 {
		t.Fatalf("expected reset state on the first socket, got %d plies", len(state.MoveHistory))
	}

	stranger := dial(t, addr, gameID, "bob")
	expectErrorFrame(t, stranger)
	expectClosed(t, stranger)
}
