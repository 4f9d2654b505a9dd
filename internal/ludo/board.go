package ludo

// Board layout for the standard 4-color game: a 52-cell circular track,
// one entry cell per color 13 apart, and a 6-cell home stretch per color
// addressed by coordinates past the track range.
const (
	TrackLength       = 52
	PlayersPerGame    = 4
	PiecesPerPlayer   = 4
	HomeStretchLength = 6

	// BasePosition is the sentinel for a piece still at base.
	BasePosition = -1

	// DiceToLeaveBase is the roll required to bring a piece onto the track.
	DiceToLeaveBase = 6
)

var startPositions = map[Color]int{
	ColorRed:    0,
	ColorGreen:  13,
	ColorYellow: 26,
	ColorBlue:   39,
}

var homeEntryPositions = map[Color]int{
	ColorRed:    50,
	ColorGreen:  63,
	ColorYellow: 76,
	ColorBlue:   89,
}

var safeCells = map[int]struct{}{
	0: {}, 8: {}, 13: {}, 21: {}, 26: {}, 34: {}, 39: {}, 47: {},
}

// StartPosition returns the track cell where the color's pieces enter.
func StartPosition(color Color) int {
	return startPositions[color]
}

// HomeEntryPosition returns the first home-stretch coordinate of the color.
func HomeEntryPosition(color Color) int {
	return homeEntryPositions[color]
}

// IsSafeCell reports whether the track cell is immune to capture.
func IsSafeCell(position int) bool {
	_, ok := safeCells[position]
	return ok
}

// InHomeStretch reports whether the coordinate lies in the color's
// home-stretch range.
func InHomeStretch(color Color, position int) bool {
	entry := homeEntryPositions[color]
	return position >= entry && position < entry+HomeStretchLength
}

// Destination computes where the piece would land on the given dice value.
// A finished piece stays put and a piece at base only leaves on a six.
// Crossing the end of the track diverts the piece into its home stretch
// unless it still has to pass its own start cell; otherwise the track
// wraps around.
func Destination(piece *Piece, dice int) int {
	if piece.Finished {
		return piece.Position
	}

	if piece.AtBase() {
		if dice == DiceToLeaveBase {
			return startPositions[piece.Color]
		}
		return BasePosition
	}

	destination := piece.Position + dice

	if entersHomeStretch(piece, destination) {
		return homeEntryPositions[piece.Color] + (destination - TrackLength)
	}

	if destination >= TrackLength {
		destination -= TrackLength
	}

	return destination
}

func entersHomeStretch(piece *Piece, destination int) bool {
	if destination < TrackLength {
		return false
	}

	// Still approaching its own start cell: keep going around.
	start := startPositions[piece.Color]
	if piece.Position < start && destination >= start {
		return false
	}

	return true
}
