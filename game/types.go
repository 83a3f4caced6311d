package game

import (
	"voyager.com/pokerclient/poker"
)

// Player is one seated player as the server reports it. ID is stable for
// the life of the game; every other field changes across updates. Cards
// holds up to two hole cards, with blank tokens for concealed cards.
// Bet and Bank are in minor currency units (cents).
type Player struct {
	ID    string       `json:"id"`
	Cards []poker.Card `json:"cards"`
	Name  string       `json:"name"`
	Bet   int64        `json:"bet"`
	Bank  int64        `json:"bank"`
}

// Board carries the pot (cents) and up to five community cards.
type Board struct {
	Pot   int64        `json:"pot"`
	Cards []poker.Card `json:"cards"`
}

// Game is one immutable snapshot of server-held game state. Version is a
// server-incremented sequence number; consumers must not apply a snapshot
// older than the last one they applied. PlayerTurn indexes into Players
// (seating order, stable across updates).
type Game struct {
	ID         string   `json:"id"`
	Version    uint64   `json:"version"`
	Board      Board    `json:"board"`
	Players    []Player `json:"players"`
	PlayerTurn int      `json:"playerTurnI"`
}

// ActivePlayer returns the player whose turn it is, honoring the
// 0 <= PlayerTurn < len(Players) invariant.
func (g *Game) ActivePlayer() (*Player, bool) {
	if len(g.Players) == 0 {
		return nil, false
	}
	if g.PlayerTurn < 0 || g.PlayerTurn >= len(g.Players) {
		return nil, false
	}
	return &g.Players[g.PlayerTurn], true
}

// MaxBet returns the highest current bet on the table.
func (g *Game) MaxBet() int64 {
	var max int64
	for _, p := range g.Players {
		if p.Bet > max {
			max = p.Bet
		}
	}
	return max
}
