package ludo

// Player owns the four pieces of one color. Pieces are created once here
// and reset in place; they are never reallocated.
type Player struct {
	Color  Color
	Pieces [PiecesPerPlayer]*Piece

	HomeCount int

	StartPosition     int
	HomeEntryPosition int
}

func NewPlayer(color Color) *Player {
	player := &Player{
		Color:             color,
		StartPosition:     StartPosition(color),
		HomeEntryPosition: HomeEntryPosition(color),
	}

	for i := range player.Pieces {
		player.Pieces[i] = NewPiece(color, i)
	}

	return player
}

// PiecesAtBase returns the pieces still waiting at base.
func (that *Player) PiecesAtBase() []*Piece {
	return that.filter(func(piece *Piece) bool {
		return piece.AtBase()
	})
}

// PiecesInTransit returns the pieces on the board that have not finished.
func (that *Player) PiecesInTransit() []*Piece {
	return that.filter(func(piece *Piece) bool {
		return !piece.AtBase() && !piece.Finished
	})
}

// PiecesFinished returns the pieces that reached the home stretch.
func (that *Player) PiecesFinished() []*Piece {
	return that.filter(func(piece *Piece) bool {
		return piece.Finished
	})
}

// HasWon reports whether all four pieces have finished.
func (that *Player) HasWon() bool {
	return len(that.PiecesFinished()) == PiecesPerPlayer
}

func (that *Player) filter(keep func(*Piece) bool) []*Piece {
	pieces := make([]*Piece, 0, PiecesPerPlayer)
	for _, piece := range that.Pieces {
		if keep(piece) {
			pieces = append(pieces, piece)
		}
	}
	return pieces
}

func (that *Player) reset() {
	for _, piece := range that.Pieces {
		piece.Reset()
	}
	that.HomeCount = 0
}
