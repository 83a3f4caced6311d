package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager.com/pokerclient/game"
)

func seatTwo(t *testing.T, store *Store) (string, game.Player, game.Player) {
	t.Helper()
	g := store.CreateGame()
	alice, err := store.AddPlayer(g.ID, "Alice", 10000)
	require.NoError(t, err)
	bob, err := store.AddPlayer(g.ID, "Bob", 10000)
	require.NoError(t, err)
	return g.ID, alice, bob
}

func TestStoreCreateGame(t *testing.T) {
	store := NewStore()
	g := store.CreateGame()

	assert.NotEmpty(t, g.ID)
	assert.Equal(t, uint64(1), g.Version)
	assert.Empty(t, g.Players)
	assert.Equal(t, int64(0), g.Board.Pot)
	assert.Equal(t, 1, store.GameCount())
}

func TestStoreFetchModifiedTracking(t *testing.T) {
	store := NewStore()
	g := store.CreateGame()

	// First fetch sees the fresh game.
	fetched, modified, err := store.Fetch(g.ID)
	require.NoError(t, err)
	assert.True(t, modified)
	assert.Equal(t, g.ID, fetched.ID)

	// Nothing changed since: not modified.
	_, modified, err = store.Fetch(g.ID)
	require.NoError(t, err)
	assert.False(t, modified)

	// A mutation flips it back.
	_, err = store.AddPlayer(g.ID, "Alice", 10000)
	require.NoError(t, err)
	fetched, modified, err = store.Fetch(g.ID)
	require.NoError(t, err)
	assert.True(t, modified)
	assert.Len(t, fetched.Players, 1)

	_, _, err = store.Fetch("nope")
	assert.Equal(t, ErrGameNotFound, err)
}

func TestStoreAddPlayerDealsCards(t *testing.T) {
	store := NewStore()
	g := store.CreateGame()

	alice, err := store.AddPlayer(g.ID, "Alice", 12345)
	require.NoError(t, err)
	assert.NotEmpty(t, alice.ID)
	assert.Len(t, alice.Cards, 2)
	assert.NotEqual(t, alice.Cards[0], alice.Cards[1])
	assert.Equal(t, int64(12345), alice.Bank)

	bob, err := store.AddPlayer(g.ID, "Bob", 10000)
	require.NoError(t, err)
	for _, card := range bob.Cards {
		assert.NotContains(t, alice.Cards, card)
	}
}

func TestStoreApplyActionCall(t *testing.T) {
	store := NewStore()
	gameID, alice, bob := seatTwo(t, store)
	require.NoError(t, store.PostBlinds(gameID, 50, 100))

	// Blinds put the turn past the big blind; wrap back to Alice.
	g, err := store.Get(gameID)
	require.NoError(t, err)
	require.Equal(t, 0, g.PlayerTurn)

	g, err = store.ApplyAction(gameID, game.PlayerInput{PlayerID: alice.ID, Action: game.ActionCall})
	require.NoError(t, err)
	assert.Equal(t, int64(100), g.Players[0].Bet)
	assert.Equal(t, int64(9900), g.Players[0].Bank)
	assert.Equal(t, int64(50), g.Board.Pot)
	assert.Equal(t, 1, g.PlayerTurn)
	assert.Equal(t, bob.ID, g.Players[g.PlayerTurn].ID)
}

func TestStoreApplyActionRaise(t *testing.T) {
	store := NewStore()
	gameID, alice, _ := seatTwo(t, store)
	require.NoError(t, store.PostBlinds(gameID, 50, 100))

	raiseTo := int64(300)
	g, err := store.ApplyAction(gameID, game.PlayerInput{PlayerID: alice.ID, Action: game.ActionRaise, RaiseTo: &raiseTo})
	require.NoError(t, err)
	assert.Equal(t, int64(300), g.Players[0].Bet)
	assert.Equal(t, int64(250), g.Board.Pot)

	// Raising to no more than the current bet is rejected.
	badRaise := int64(300)
	_, err = store.ApplyAction(gameID, game.PlayerInput{PlayerID: g.Players[1].ID, Action: game.ActionRaise, RaiseTo: &badRaise})
	assert.Equal(t, ErrRaiseTooSmall, err)
}

func TestStoreApplyActionValidation(t *testing.T) {
	store := NewStore()
	gameID, _, bob := seatTwo(t, store)

	// Turn is Alice's; Bob cannot act.
	_, err := store.ApplyAction(gameID, game.PlayerInput{PlayerID: bob.ID, Action: game.ActionCall})
	assert.Equal(t, ErrNotPlayerTurn, err)

	_, err = store.ApplyAction(gameID, game.PlayerInput{PlayerID: "ghost", Action: game.ActionCall})
	assert.Equal(t, ErrPlayerNotFound, err)

	_, err = store.ApplyAction("nope", game.PlayerInput{PlayerID: bob.ID, Action: game.ActionCall})
	assert.Equal(t, ErrGameNotFound, err)
}

func TestStoreApplyActionBumpsVersion(t *testing.T) {
	store := NewStore()
	gameID, alice, _ := seatTwo(t, store)

	before, err := store.Get(gameID)
	require.NoError(t, err)

	g, err := store.ApplyAction(gameID, game.PlayerInput{PlayerID: alice.ID, Action: game.ActionFold})
	require.NoError(t, err)
	assert.Equal(t, before.Version+1, g.Version)
}

func TestStoreDealCommunity(t *testing.T) {
	store := NewStore()
	g := store.CreateGame()
	require.NoError(t, store.DealCommunity(g.ID, 3))

	dealt, err := store.Get(g.ID)
	require.NoError(t, err)
	assert.Len(t, dealt.Board.Cards, 3)
}
