package game

import "fmt"

type Suit string

const (
	Clubs    Suit = "C"
	Diamonds Suit = "D"
	Hearts   Suit = "H"
	Spades   Suit = "S"
)

var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

type Rank string

var Ranks = []Rank{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

var rankValues = map[Rank]int{
	"2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9, "10": 10,
	"J": 10, "Q": 10, "K": 10, "A": 11,
}

// Card is an immutable value: one suit, one rank.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) Value() int {
	return rankValues[c.Rank]
}

func (c Card) IsAce() bool {
	return c.Rank == "A"
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, suitSymbols[c.Suit])
}

var suitSymbols = map[Suit]string{
	Clubs:    "♣",
	Diamonds: "♦",
	Hearts:   "♥",
	Spades:   "♠",
}
