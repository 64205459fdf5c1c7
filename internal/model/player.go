package model

type Player struct {
	ID    string
	Color PlayerColor
	Conn  Conn
}

type ClientPlayer struct {
	ID    string      `json:"name"`
	Color PlayerColor `json:"color"`
}

// PlayerColor doubles as piece ownership and as the side to move.
type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

// FirstSide moves on even move counts.
const (
	FirstSide  = PlayerColorWhite
	SecondSide = PlayerColorBlack
)

func (c PlayerColor) Opposite() PlayerColor {
	if c == PlayerColorWhite {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}

func (c PlayerColor) Valid() bool {
	return c == PlayerColorWhite || c == PlayerColorBlack
}
