package view

import (
	"fmt"
	"strings"
	"sync"

	"voyager.com/pokerclient/poker"
)

// CardState is a card slot's rank and suit data fields. Both empty means
// the slot shows a face-down card.
type CardState struct {
	Rank string
	Suit string
}

type SeatState struct {
	Active   bool
	PlayerID string
	Cards    []CardState
	Name     string
	Bet      string
	Bank     string
	Form     FormBinding
}

// TreeState is a full copy of a TreeView's observable content, for
// comparison in tests and rendering.
type TreeState struct {
	GameID          string
	PrimaryPlayerID string
	Pot             string
	BoardCards      []CardState
	Seats           []SeatState
}

// TreeView is an in-memory view tree: the same labeled regions a page
// would have, backed by plain fields instead of markup. Structure (seat
// count, card slots) is fixed at construction; only tracked attributes
// and text mutate afterwards. Safe for concurrent use.
type TreeView struct {
	mu    sync.Mutex
	state TreeState
}

// NewTreeView builds a tree with the given seat count, two hole-card
// slots per seat and five community-card slots.
func NewTreeView(seats int) *TreeView {
	return NewTreeViewWithSlots(seats, 2, 5)
}

func NewTreeViewWithSlots(seats, holeSlots, boardSlots int) *TreeView {
	t := &TreeView{}
	t.state.BoardCards = make([]CardState, boardSlots)
	t.state.Seats = make([]SeatState, seats)
	for i := range t.state.Seats {
		t.state.Seats[i].Cards = make([]CardState, holeSlots)
	}
	return t
}

func (t *TreeView) SetGameID(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.GameID = id
}

func (t *TreeView) SetPrimaryPlayerID(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.PrimaryPlayerID = id
}

func (t *TreeView) Board() BoardView {
	return &treeBoard{tree: t}
}

func (t *TreeView) Seats() int {
	return len(t.state.Seats)
}

func (t *TreeView) Seat(i int) SeatView {
	return &treeSeat{tree: t, index: i}
}

// State returns a deep copy of the tree's observable content.
func (t *TreeView) State() TreeState {
	t.mu.Lock()
	defer t.mu.Unlock()
	copied := t.state
	copied.BoardCards = append([]CardState(nil), t.state.BoardCards...)
	copied.Seats = append([]SeatState(nil), t.state.Seats...)
	for i := range copied.Seats {
		copied.Seats[i].Cards = append([]CardState(nil), t.state.Seats[i].Cards...)
	}
	return copied
}

// Render draws the table as text, one line per region. Presentation
// glue for the console watcher.
func (t *TreeView) Render() string {
	s := t.State()
	var sb strings.Builder
	fmt.Fprintf(&sb, "game %s  pot %s  board %s\n", s.GameID, s.Pot, renderCards(s.BoardCards))
	for i, seat := range s.Seats {
		marker := " "
		if seat.Active {
			marker = "*"
		}
		if seat.PlayerID == "" {
			fmt.Fprintf(&sb, "%s seat %d: empty\n", marker, i)
			continue
		}
		fmt.Fprintf(&sb, "%s seat %d: %s  cards %s  bet %s  bank %s\n",
			marker, i, seat.Name, renderCards(seat.Cards), seat.Bet, seat.Bank)
	}
	return sb.String()
}

func renderCards(cards []CardState) string {
	tokens := make([]string, len(cards))
	for i, c := range cards {
		if c.Rank == "" && c.Suit == "" {
			tokens[i] = "[  ]"
		} else {
			tokens[i] = fmt.Sprintf("[%s%s]", c.Rank, c.Suit)
		}
	}
	return strings.Join(tokens, " ")
}

type treeBoard struct {
	tree *TreeView
}

func (b *treeBoard) SetPot(display string) {
	b.tree.mu.Lock()
	defer b.tree.mu.Unlock()
	b.tree.state.Pot = display
}

func (b *treeBoard) CardSlots() int {
	return len(b.tree.state.BoardCards)
}

func (b *treeBoard) CardSlot(i int) CardSlot {
	return &treeCardSlot{tree: b.tree, cards: b.tree.state.BoardCards, index: i}
}

type treeSeat struct {
	tree  *TreeView
	index int
}

func (s *treeSeat) seat() *SeatState {
	return &s.tree.state.Seats[s.index]
}

func (s *treeSeat) SetActive(active bool) {
	s.tree.mu.Lock()
	defer s.tree.mu.Unlock()
	s.seat().Active = active
}

func (s *treeSeat) SetPlayerID(id string) {
	s.tree.mu.Lock()
	defer s.tree.mu.Unlock()
	s.seat().PlayerID = id
}

func (s *treeSeat) ClearPlayerID() {
	s.tree.mu.Lock()
	defer s.tree.mu.Unlock()
	s.seat().PlayerID = ""
}

func (s *treeSeat) CardSlots() int {
	return len(s.seat().Cards)
}

func (s *treeSeat) CardSlot(i int) CardSlot {
	return &treeCardSlot{tree: s.tree, cards: s.seat().Cards, index: i}
}

func (s *treeSeat) SetName(name string) {
	s.tree.mu.Lock()
	defer s.tree.mu.Unlock()
	s.seat().Name = name
}

func (s *treeSeat) SetBet(display string) {
	s.tree.mu.Lock()
	defer s.tree.mu.Unlock()
	s.seat().Bet = display
}

func (s *treeSeat) SetBank(display string) {
	s.tree.mu.Lock()
	defer s.tree.mu.Unlock()
	s.seat().Bank = display
}

func (s *treeSeat) BindForm(binding FormBinding) {
	s.tree.mu.Lock()
	defer s.tree.mu.Unlock()
	s.seat().Form = binding
}

func (s *treeSeat) Form() FormBinding {
	s.tree.mu.Lock()
	defer s.tree.mu.Unlock()
	return s.seat().Form
}

type treeCardSlot struct {
	tree  *TreeView
	cards []CardState
	index int
}

func (c *treeCardSlot) SetCard(card poker.Card) {
	c.tree.mu.Lock()
	defer c.tree.mu.Unlock()
	c.cards[c.index] = CardState{Rank: string(card.Rank), Suit: string(card.Suit)}
}

func (c *treeCardSlot) Clear() {
	c.tree.mu.Lock()
	defer c.tree.mu.Unlock()
	c.cards[c.index] = CardState{}
}
