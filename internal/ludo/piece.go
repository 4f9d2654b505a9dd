package ludo

import "fmt"

// Color identifies one of the four seats on the board.
type Color string

const (
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorBlue   Color = "blue"
)

// TurnOrder is the fixed seat order; red always takes the first turn.
var TurnOrder = [PlayersPerGame]Color{ColorRed, ColorGreen, ColorYellow, ColorBlue}

// IsValid reports whether the color is one of the four playable colors.
func (that Color) IsValid() bool {
	for _, color := range TurnOrder {
		if color == that {
			return true
		}
	}
	return false
}

// Piece is a single token owned by a player. Position is either a track
// coordinate, a home-stretch coordinate, or BasePosition while the piece
// waits at base.
type Piece struct {
	Color    Color `json:"color"`
	Index    int   `json:"index"`
	Position int   `json:"position"`

	Finished  bool `json:"finished"`
	Protected bool `json:"protected"`
}

func NewPiece(color Color, index int) *Piece {
	return &Piece{
		Color:    color,
		Index:    index,
		Position: BasePosition,
	}
}

// AtBase reports whether the piece has not yet entered the track.
func (that *Piece) AtBase() bool {
	return that.Position == BasePosition
}

// Reset returns the piece to base and clears its flags. Used on capture
// and on full game reset; pieces are never destroyed.
func (that *Piece) Reset() {
	that.Position = BasePosition
	that.Finished = false
	that.Protected = false
}

func (that *Piece) String() string {
	return fmt.Sprintf("%s piece %d", that.Color, that.Index)
}
