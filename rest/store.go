package rest

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/thoas/go-funk"

	"voyager.com/pokerclient/game"
	"voyager.com/pokerclient/poker"
	"voyager.com/pokerclient/util"
)

var (
	ErrGameNotFound      = errors.New("rest: game not found")
	ErrPlayerNotFound    = errors.New("rest: player not found in game")
	ErrNotPlayerTurn     = errors.New("rest: player acted out of turn")
	ErrRaiseTooSmall     = errors.New("rest: raiseTo must exceed the current bet")
	ErrInsufficientChips = errors.New("rest: player bank cannot cover the bet")
	ErrTableFull         = errors.New("rest: no empty seats available")
)

const maxSeats = 10

type gameRecord struct {
	game game.Game
	deck *poker.Deck
	// Version last handed to a watcher; a fetch is "modified" when the
	// game moved past it.
	servedVersion uint64
}

// Store holds every live game in memory. There is no persistence: games
// exist from creation until process exit.
type Store struct {
	mu    sync.RWMutex
	games map[string]*gameRecord
}

func NewStore() *Store {
	return &Store{games: make(map[string]*gameRecord)}
}

// CreateGame starts an empty game: no players, empty board, version 1.
func (s *Store) CreateGame() game.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := game.Game{
		ID:      uuid.New().String(),
		Version: 1,
		Board:   game.Board{Pot: 0, Cards: []poker.Card{}},
		Players: []game.Player{},
	}
	s.games[g.ID] = &gameRecord{game: g, deck: poker.NewDeck(nil)}
	util.Metrics.SetActiveGamesCount(len(s.games))
	return g
}

// Fetch returns a copy of the game and whether it changed since the
// last fetch. The served-version bookkeeping assumes one watcher per
// game, which is all the dev server needs.
func (s *Store) Fetch(gameID string) (game.Game, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, found := s.games[gameID]
	if !found {
		return game.Game{}, false, ErrGameNotFound
	}
	modified := rec.game.Version > rec.servedVersion
	rec.servedVersion = rec.game.Version
	return copyGame(&rec.game), modified, nil
}

// Get returns a copy of the game without touching the modified
// bookkeeping.
func (s *Store) Get(gameID string) (game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, found := s.games[gameID]
	if !found {
		return game.Game{}, ErrGameNotFound
	}
	return copyGame(&rec.game), nil
}

// AddPlayer seats a player at the next free seat and deals two hole
// cards. Bank is in cents.
func (s *Store) AddPlayer(gameID string, name string, bank int64) (game.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, found := s.games[gameID]
	if !found {
		return game.Player{}, ErrGameNotFound
	}
	if len(rec.game.Players) >= maxSeats {
		return game.Player{}, ErrTableFull
	}
	player := game.Player{
		ID:    uuid.New().String(),
		Cards: rec.deck.Draw(2),
		Name:  name,
		Bet:   0,
		Bank:  bank,
	}
	rec.game.Players = append(rec.game.Players, player)
	rec.game.Version++
	return player, nil
}

// PostBlinds places the small and big blind for the first two seats and
// moves the turn to the next seat.
func (s *Store) PostBlinds(gameID string, small int64, big int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, found := s.games[gameID]
	if !found {
		return ErrGameNotFound
	}
	if len(rec.game.Players) < 2 {
		return errors.New("rest: need at least two players to post blinds")
	}
	rec.game.Players[0].Bet = small
	rec.game.Players[0].Bank -= small
	rec.game.Players[1].Bet = big
	rec.game.Players[1].Bank -= big
	rec.game.PlayerTurn = 2 % len(rec.game.Players)
	rec.game.Version++
	return nil
}

// DealCommunity turns up the next n community cards.
func (s *Store) DealCommunity(gameID string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, found := s.games[gameID]
	if !found {
		return ErrGameNotFound
	}
	rec.game.Board.Cards = append(rec.game.Board.Cards, rec.deck.Draw(n)...)
	rec.game.Version++
	return nil
}

// ApplyAction validates and applies a player action, returning the
// post-action snapshot. Violations map to the sentinel errors above;
// the handler reports them all as expectation failures.
func (s *Store) ApplyAction(gameID string, input game.PlayerInput) (game.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, found := s.games[gameID]
	if !found {
		return game.Game{}, ErrGameNotFound
	}
	g := &rec.game

	playerIDs := funk.Map(g.Players, func(p game.Player) string { return p.ID }).([]string)
	seat := funk.IndexOf(playerIDs, input.PlayerID)
	if seat < 0 {
		return game.Game{}, ErrPlayerNotFound
	}
	if seat != g.PlayerTurn {
		return game.Game{}, ErrNotPlayerTurn
	}

	player := &g.Players[seat]
	switch input.Action {
	case game.ActionFold:
		// Bet stays in front of the player until the round settles.
	case game.ActionCall:
		owed := g.MaxBet() - player.Bet
		if owed > player.Bank {
			return game.Game{}, ErrInsufficientChips
		}
		player.Bank -= owed
		player.Bet = g.MaxBet()
		g.Board.Pot += owed
	case game.ActionRaise:
		raiseTo := *input.RaiseTo
		if raiseTo <= g.MaxBet() {
			return game.Game{}, ErrRaiseTooSmall
		}
		owed := raiseTo - player.Bet
		if owed > player.Bank {
			return game.Game{}, ErrInsufficientChips
		}
		player.Bank -= owed
		player.Bet = raiseTo
		g.Board.Pot += owed
	default:
		return game.Game{}, game.ErrUnknownAction
	}

	g.PlayerTurn = (seat + 1) % len(g.Players)
	g.Version++
	return copyGame(g), nil
}

func (s *Store) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

func copyGame(g *game.Game) game.Game {
	copied := *g
	copied.Board.Cards = append([]poker.Card(nil), g.Board.Cards...)
	copied.Players = append([]game.Player(nil), g.Players...)
	for i := range copied.Players {
		copied.Players[i].Cards = append([]poker.Card(nil), g.Players[i].Cards...)
	}
	return copied
}
