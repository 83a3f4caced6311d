package poker

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// AllCards returns the full 52-card deck in rank-major order: each rank
// paired with all four suits before moving on to the next rank.
func AllCards() []Card {
	cards := make([]Card, 0, len(ranks)*len(suits))
	for _, rank := range ranks {
		for _, suit := range suits {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}

func newSeed() rand.Source {
	var b [8]byte
	_, err := crypto_rand.Read(b[:])
	if err != nil {
		panic("cannot seed math/rand package with cryptographically secure random number generator")
	}
	return rand.NewSource(int64(binary.LittleEndian.Uint64(b[:])))
}

// Shuffle reorders cards in place with a Fisher-Yates pass: walk from the
// last index down to 1 and swap with a uniform index in [0, i]. Every
// permutation is equally likely given a uniform source. Returns the same
// slice for chaining.
func Shuffle(cards []Card, randGen *rand.Rand) []Card {
	for i := len(cards) - 1; i >= 1; i-- {
		j := randGen.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return cards
}

type Deck struct {
	cards   []Card
	randGen *rand.Rand
}

// NewDeck returns a freshly shuffled 52-card deck. A nil source seeds
// from crypto randomness.
func NewDeck(source rand.Source) *Deck {
	if source == nil {
		source = newSeed()
	}
	deck := &Deck{randGen: rand.New(source)}
	deck.Shuffle()
	return deck
}

func NewDeckNoShuffle() *Deck {
	return &Deck{cards: AllCards()}
}

func (deck *Deck) Shuffle() *Deck {
	if deck.randGen == nil {
		deck.randGen = rand.New(newSeed())
	}
	deck.cards = Shuffle(AllCards(), deck.randGen)
	return deck
}

func (deck *Deck) Draw(n int) []Card {
	cards := make([]Card, n)
	copy(cards, deck.cards[:n])
	deck.cards = deck.cards[n:]
	return cards
}

func (deck *Deck) Empty() bool {
	return len(deck.cards) == 0
}

func (deck *Deck) Remaining() int {
	return len(deck.cards)
}
