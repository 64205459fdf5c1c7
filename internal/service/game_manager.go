// service/game_manager.go
package service

import (
	"sync"
	"time"

	"github.com/benbeisheim/flipchess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan model.MatchFoundEvent
	mu               sync.RWMutex
	idleTTL          time.Duration // zero keeps games forever
	done             chan struct{}
	closeOnce        sync.Once
}

// NewGameManager starts the housekeeping loop. Every interval it pairs
// queued players and drops games nobody has been connected to for idleTTL.
// The loop runs until Close is called.
func NewGameManager(interval, idleTTL time.Duration) *GameManager {
	gm := newGameManager()
	gm.idleTTL = idleTTL
	go gm.processMatchmaking(interval)
	return gm
}

func newGameManager() *GameManager {
	return &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan model.MatchFoundEvent),
		done:             make(chan struct{}),
	}
}

func (gm *GameManager) Close() {
	gm.closeOnce.Do(func() { close(gm.done) })
}

func (gm *GameManager) processMatchmaking(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-gm.done:
			return
		case now := <-ticker.C:
			gm.matchPlayers()
			if n := gm.evictIdle(now); n > 0 {
				log.Infof("evicted %d idle games", n)
			}
		}
	}
}

// evictIdle drops every game without connections whose last activity is
// at least idleTTL before now, and returns how many it dropped.
func (gm *GameManager) evictIdle(now time.Time) int {
	if gm.idleTTL <= 0 {
		return 0
	}
	gm.mu.Lock()
	defer gm.mu.Unlock()

	evicted := 0
	for gameID, game := range gm.games {
		since, idle := game.IdleSince()
		if idle && now.Sub(since) >= gm.idleTTL {
			delete(gm.games, gameID)
			evicted++
			log.Debugf("game %s: evicted after %s idle", gameID, now.Sub(since))
		}
	}
	return evicted
}

// matchPlayers pairs queued players two at a time. Only players with a
// registered matchmaking channel are paired, since nobody else could learn
// about the game; the rest keep waiting in the queue.
func (gm *GameManager) matchPlayers() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	listening := func(p model.Player) bool {
		_, ok := gm.matchingChannels[p.ID]
		return ok
	}
	for {
		player1, player2, ok := gm.queue.TakePairWhere(listening)
		if !ok {
			return
		}

		gameID := uuid.New().String()
		game := model.NewGame(gameID)
		p1Color, err := game.AddPlayer(player1.ID)
		if err != nil {
			log.Errorf("matchmaking: seat %s: %v", player1.ID, err)
			continue
		}
		p2Color, err := game.AddPlayer(player2.ID)
		if err != nil {
			log.Errorf("matchmaking: seat %s: %v", player2.ID, err)
			continue
		}
		gm.games[gameID] = game
		log.Infow("match found", "game", gameID, "white", player1.ID, "black", player2.ID)

		gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
		gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
	}
}

// notifyMatch hands the event to the player's channel and retires the
// channel. Callers hold gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		log.Warnf("matchmaking: no channel for player %s", playerID)
		return
	}
	delete(gm.matchingChannels, playerID)
	select {
	case ch <- event:
	default:
		log.Warnf("matchmaking: channel full for player %s", playerID)
	}
	close(ch)
}

// RegisterMatchmakingChannel sets the channel that receives playerID's
// match. A previously registered channel is closed.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel forgets playerID's channel and takes them
// out of the queue. The channel is left open; its creator owns it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, exists := gm.matchingChannels[playerID]; exists && current == ch {
		delete(gm.matchingChannels, playerID)
		gm.queue.RemovePlayer(playerID)
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.Wrapf(model.ErrGameExists, "game %s", gameID)
	}

	gm.games[gameID] = model.NewGame(gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.Wrapf(model.ErrGameNotFound, "game %s", gameID)
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", errors.Wrapf(err, "join game %s", gameID)
	}
	return color, nil
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	if err := gm.queue.AddPlayer(model.Player{ID: playerID}); err != nil {
		return errors.Wrapf(err, "queue player %s", playerID)
	}
	return nil
}

func (gm *GameManager) QueueSize() int {
	return gm.queue.Size()
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.MakeMove(playerID, move); err != nil {
		return errors.Wrapf(err, "game %s", gameID)
	}
	return nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
