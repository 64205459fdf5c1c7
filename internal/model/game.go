package model

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/flipchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/hashicorp/go-multierror"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*SyncConn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*SyncConn),
	}
}

// Game wraps one Board with its two seats and the connections watching it.
// The board itself is not safe for concurrent use, so every access goes
// through mu.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *Board
	players     Players
	sound       string
	lastMove    *SimpleMove
	captured    CapturedPieces
	version     uint64 // bumped for every state handed to broadcastState
	touched     time.Time
	connections *GameConnections
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

type GameState struct {
	Sound          string         `json:"sound"`
	Board          BoardSnapshot  `json:"board"`
	ToMove         PlayerColor    `json:"toMove"`
	MoveCount      int            `json:"moveCount"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	Players        Players        `json:"players"`
	LastMove       *SimpleMove    `json:"lastMove"` // in the current frame
}

func NewGame(id string) *Game {
	return NewGameWithBoard(id, NewBoard())
}

// NewGameWithBoard starts a game from an arbitrary position.
func NewGameWithBoard(id string, board *Board) *Game {
	return &Game{
		ID:    id,
		board: board,
		captured: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
		touched:     time.Now(),
		connections: NewGameConnections(),
	}
}

// AddPlayer seats playerID on the first free side. Rejoining returns the
// seat the player already holds.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.colorOf(playerID); ok {
		return color, nil
	}
	g.touched = time.Now()
	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{ID: playerID, Color: PlayerColorWhite}
		return PlayerColorWhite, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{ID: playerID, Color: PlayerColorBlack}
		return PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.stateLocked()
}

func (g *Game) stateLocked() GameState {
	state := GameState{
		Sound:     g.sound,
		Board:     g.board.Snapshot(),
		ToMove:    g.board.CurrentSide(),
		MoveCount: g.board.MoveCount(),
		CapturedPieces: CapturedPieces{
			White: append([]Piece(nil), g.captured.White...),
			Black: append([]Piece(nil), g.captured.Black...),
		},
		Players: g.players,
	}
	if g.lastMove != nil {
		lm := *g.lastMove
		state.LastMove = &lm
	}
	return state
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.colorOf(playerID)
	return ok
}

func (g *Game) colorOf(playerID string) (PlayerColor, bool) {
	if playerID == "" {
		return "", false
	}
	if g.players.White.ID == playerID {
		return PlayerColorWhite, true
	}
	if g.players.Black.ID == playerID {
		return PlayerColorBlack, true
	}
	return "", false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.hasOpenSeat()
}

func (g *Game) hasOpenSeat() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

// MakeMove applies a move for playerID. The board decides legality; a
// rejected move leaves the game untouched and returns ErrIllegalMove.
func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()

	color, ok := g.colorOf(playerID)
	if !ok {
		g.mu.Unlock()
		return ErrNotInGame
	}
	if color != g.board.CurrentSide() {
		g.mu.Unlock()
		return ErrNotYourTurn
	}

	target := g.board.At(move.To)
	if !g.board.Move(move.From, move.To) {
		g.mu.Unlock()
		return fmt.Errorf("%w: %v -> %v", ErrIllegalMove, move.From, move.To)
	}

	g.sound = "move"
	if target != nil {
		g.sound = "capture"
		switch color {
		case PlayerColorWhite:
			g.captured.White = append(g.captured.White, *target)
		case PlayerColorBlack:
			g.captured.Black = append(g.captured.Black, *target)
		}
	}
	last := SimpleMove{From: move.From, To: move.To}.Rotate()
	g.lastMove = &last

	g.touched = time.Now()
	version, state := g.nextStateLocked()
	g.mu.Unlock()

	log.Infow("move applied", "game", g.ID, "player", playerID, "from", move.From, "to", move.To, "moveCount", state.MoveCount)

	go func() {
		if err := g.broadcastState(version, state); err != nil {
			log.Warnf("game %s: broadcast after move: %v", g.ID, err)
		}
	}()
	return nil
}

// nextStateLocked snapshots the state for a broadcast. Versions grow with
// every call, so connections can discard a state overtaken by a newer one.
func (g *Game) nextStateLocked() (uint64, GameState) {
	g.version++
	return g.version, g.stateLocked()
}

// IdleSince returns when the game last saw a seat, move or connection
// change. ok is false while any connection is registered.
func (g *Game) IdleSince() (since time.Time, ok bool) {
	if g.ConnectionCount() > 0 {
		return time.Time{}, false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.touched, true
}

// RegisterConnection attaches conn to the game. The connection is wrapped
// in a SyncConn unless it already is one; callers that also write to the
// socket should pass the SyncConn they write through.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	sc := NewSyncConn(conn)

	g.mu.Lock()
	isAuthorized := g.isPlayerInGameLocked(playerID) || g.hasOpenSeat()
	if isAuthorized {
		g.touched = time.Now()
	}
	version, state := g.nextStateLocked()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the healthy connection, reject the newcomer
		g.connections.mu.Unlock()
		_ = sc.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		_ = sc.Close()
		return nil
	}
	g.connections.connections[playerID] = sc
	g.connections.mu.Unlock()
	log.Debugf("game %s: registered connection for player %s", g.ID, playerID)

	go func() {
		if err := g.broadcastState(version, state); err != nil {
			log.Warnf("game %s: initial broadcast: %v", g.ID, err)
		}
	}()
	return nil
}

func (g *Game) isPlayerInGameLocked(playerID string) bool {
	_, ok := g.colorOf(playerID)
	return ok
}

// UnregisterConnection removes conn only if it is still the registered
// connection for playerID; a stale socket closing must not evict a newer one.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	current, exists := g.connections.connections[playerID]
	removed := exists && current.wraps(conn)
	if removed {
		delete(g.connections.connections, playerID)
	}
	g.connections.mu.Unlock()

	if removed {
		g.mu.Lock()
		g.touched = time.Now()
		g.mu.Unlock()
		log.Debugf("game %s: unregistered connection for player %s", g.ID, playerID)
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

// broadcastState pushes state to every connection. A connection that
// already sent a newer version skips it. Connections that fail are dropped
// and their errors returned together.
func (g *Game) broadcastState(version uint64, state GameState) error {
	g.connections.mu.RLock()
	active := make(map[string]*SyncConn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal game state: %w", err)
	}
	msg := ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	}

	var result *multierror.Error
	var failed []string
	for playerID, conn := range active {
		if _, err := conn.writeState(version, msg); err != nil {
			result = multierror.Append(result, fmt.Errorf("player %s: %w", playerID, err))
			failed = append(failed, playerID)
		}
	}

	if len(failed) > 0 {
		g.connections.mu.Lock()
		for _, playerID := range failed {
			if g.connections.connections[playerID] == active[playerID] {
				delete(g.connections.connections, playerID)
			}
		}
		g.connections.mu.Unlock()
	}
	return result.ErrorOrNil()
}
