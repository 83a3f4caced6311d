package view

import (
	"voyager.com/pokerclient/poker"
)

// The view tree is a pre-existing structure owned by the rendering
// surface: one board region and a fixed number of seat regions, each
// with two hole-card slots, a name field, a bet field, a bank field and
// an action form. Reconcile owns specific attributes and text of these
// nodes but never their structure.

// CardSlot is one rendered card position carrying rank and suit data
// fields. A blank card clears both.
type CardSlot interface {
	SetCard(card poker.Card)
	Clear()
}

type BoardView interface {
	SetPot(display string)
	CardSlots() int
	CardSlot(i int) CardSlot
}

// FormBinding is the routing data stamped onto a seat's action form so a
// later submission is routable without re-querying the engine.
type FormBinding struct {
	GameID   string
	PlayerID string
}

func (b FormBinding) Empty() bool {
	return b.GameID == "" || b.PlayerID == ""
}

type SeatView interface {
	SetActive(active bool)
	SetPlayerID(id string)
	ClearPlayerID()
	CardSlots() int
	CardSlot(i int) CardSlot
	SetName(name string)
	SetBet(display string)
	SetBank(display string)
	BindForm(binding FormBinding)
	Form() FormBinding
}

type View interface {
	SetGameID(id string)
	SetPrimaryPlayerID(id string)
	Board() BoardView
	Seats() int
	Seat(i int) SeatView
}
