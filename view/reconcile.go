package view

import (
	"voyager.com/pokerclient/game"
	"voyager.com/pokerclient/poker"
	"voyager.com/pokerclient/util"
)

// Reconcile overwrites every tracked field of the view tree from the
// snapshot. No diffing: the unconditional overwrite makes the operation
// idempotent and rules out stale partial updates at the cost of
// redundant writes, which is fine at table seat counts.
//
// Order matters only for readers of the tree mid-pass and mirrors the
// snapshot layout: identity, pot, community cards, then seats.
func Reconcile(v View, g *game.Game) {
	v.SetGameID(g.ID)
	if len(g.Players) > 0 {
		v.SetPrimaryPlayerID(g.Players[0].ID)
	} else {
		v.SetPrimaryPlayerID("")
	}

	board := v.Board()
	board.SetPot(util.CentsToDisplay(g.Board.Pot))
	for i := 0; i < board.CardSlots(); i++ {
		applyCard(board.CardSlot(i), g.Board.Cards, i)
	}

	for i := 0; i < v.Seats(); i++ {
		seat := v.Seat(i)
		seat.SetActive(i == g.PlayerTurn)

		var player *game.Player
		if i < len(g.Players) {
			player = &g.Players[i]
		}

		if player != nil {
			seat.SetPlayerID(player.ID)
		} else {
			seat.ClearPlayerID()
		}

		for j := 0; j < seat.CardSlots(); j++ {
			if player != nil {
				applyCard(seat.CardSlot(j), player.Cards, j)
			} else {
				seat.CardSlot(j).Clear()
			}
		}

		if player != nil {
			seat.SetName(player.Name)
			seat.SetBet(util.CentsToDisplay(player.Bet))
			seat.SetBank(util.CentsToDisplay(player.Bank))
			seat.BindForm(FormBinding{GameID: g.ID, PlayerID: player.ID})
		} else {
			seat.SetName("")
			seat.SetBet(util.CentsToDisplay(0))
			seat.SetBank(util.CentsToDisplay(0))
			seat.BindForm(FormBinding{})
		}
	}
}

// applyCard writes cards[i] into the slot, clearing it when the index is
// past the dealt cards or the card is the face-down blank.
func applyCard(slot CardSlot, cards []poker.Card, i int) {
	if i < len(cards) && !cards[i].IsBlank() {
		slot.SetCard(cards[i])
	} else {
		slot.Clear()
	}
}
