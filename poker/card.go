package poker

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

type Rank rune

const (
	RankNone Rank = ' '
	Ace      Rank = 'A'
	Ten      Rank = 'X'
	Jack     Rank = 'J'
	Queen    Rank = 'Q'
	King     Rank = 'K'
)

// Ranks in deck order, ace high last position aside, matching the wire tokens.
var ranks = []Rank{Ace, '2', '3', '4', '5', '6', '7', '8', '9', Ten, Jack, Queen, King}

func (r Rank) Validate() error {
	switch r {
	case RankNone, Ace, '2', '3', '4', '5', '6', '7', '8', '9', Ten, Jack, Queen, King:
		return nil
	}
	return errors.Errorf("invalid rank: %q", string(r))
}

type Suit rune

const (
	SuitNone Suit = ' '
	Clubs    Suit = '♣'
	Diamonds Suit = '♦'
	Hearts   Suit = '♥'
	Spades   Suit = '♠'
)

var suits = []Suit{Clubs, Diamonds, Hearts, Spades}

func (s Suit) Validate() error {
	switch s {
	case SuitNone, Clubs, Diamonds, Hearts, Spades:
		return nil
	}
	return errors.Errorf("invalid suit: %q", string(s))
}

// Card is a two-rune token on the wire: one rank and one suit, or two
// spaces for a concealed (face-down) card.
type Card struct {
	Rank Rank
	Suit Suit
}

// BlankCard is the face-down sentinel.
var BlankCard = Card{Rank: RankNone, Suit: SuitNone}

func (c Card) IsBlank() bool {
	return c.Rank == RankNone && c.Suit == SuitNone
}

func (c Card) Validate() error {
	if err := c.Rank.Validate(); err != nil {
		return err
	}
	if err := c.Suit.Validate(); err != nil {
		return err
	}
	if (c.Rank == RankNone) != (c.Suit == SuitNone) {
		return errors.Errorf("half-blank card: %q", c.String())
	}
	return nil
}

func (c Card) String() string {
	return fmt.Sprintf("%c%c", c.Rank, c.Suit)
}

func CardFromString(str string) (Card, error) {
	runes := []rune(str)
	if len(runes) != 2 {
		return Card{}, errors.Errorf("invalid card token length: %q", str)
	}
	card := Card{Rank: Rank(runes[0]), Suit: Suit(runes[1])}
	if err := card.Validate(); err != nil {
		return card, err
	}
	return card, nil
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	card, err := CardFromString(str)
	if err != nil {
		return err
	}
	*c = card
	return nil
}
