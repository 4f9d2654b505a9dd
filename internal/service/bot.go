package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/rocketscienceinc/ludo-backend/internal/ludo"
)

var (
	ErrNotBotTurn      = errors.New("it is not the bot's turn")
	ErrBotMoveRejected = errors.New("engine rejected the bot move")
)

// Difficulty selects how much of the board a bot looks at.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps a config string onto a difficulty, defaulting to
// medium for anything unknown.
func ParseDifficulty(value string) Difficulty {
	switch Difficulty(value) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(value)
	default:
		return DifficultyMedium
	}
}

type BotService interface {
	TakeTurn(game *ludo.Game, color ludo.Color, difficulty Difficulty) error
	ChooseMove(game *ludo.Game, color ludo.Color, difficulty Difficulty) (int, bool)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// TakeTurn plays one complete turn for the bot: roll, then move, or pass
// when the dice allow nothing.
func (that *botService) TakeTurn(game *ludo.Game, color ludo.Color, difficulty Difficulty) error {
	if game.CurrentPlayer() != color {
		return fmt.Errorf("%w: %s", ErrNotBotTurn, color)
	}

	if game.Phase() == ludo.PhaseRollingDice {
		game.Roll()
	}

	if game.Phase() != ludo.PhaseMovingPiece {
		return nil
	}

	pieceIndex, ok := that.ChooseMove(game, color, difficulty)
	if !ok {
		if !game.Pass(color) {
			return fmt.Errorf("%w: pass refused for %s", ErrBotMoveRejected, color)
		}
		return nil
	}

	if !game.MovePiece(color, pieceIndex) {
		return fmt.Errorf("%w: piece %d for %s", ErrBotMoveRejected, pieceIndex, color)
	}

	return nil
}

// ChooseMove picks a piece index among the current legal moves. The
// second return is false when no move exists.
func (that *botService) ChooseMove(game *ludo.Game, color ludo.Color, difficulty Difficulty) (int, bool) {
	moves := game.LegalMoves(color)
	if len(moves) == 0 {
		return 0, false
	}

	switch difficulty {
	case DifficultyEasy:
		return that.easyMove(moves), true
	case DifficultyHard:
		return that.hardMove(game.Snapshot(), color, moves), true
	default:
		return that.mediumMove(game.Snapshot(), color, moves), true
	}
}

// easyMove prefers leaving base most of the time, otherwise picks any
// legal move.
func (that *botService) easyMove(moves []ludo.Move) int {
	var baseExits []ludo.Move
	for _, move := range moves {
		if move.From == ludo.BasePosition {
			baseExits = append(baseExits, move)
		}
	}

	if len(baseExits) > 0 && rand.Float64() < 0.7 { //nolint:gosec // it's ok
		return baseExits[rand.Intn(len(baseExits))].PieceIndex //nolint:gosec // it's ok
	}

	return moves[rand.Intn(len(moves))].PieceIndex //nolint:gosec // it's ok
}

// mediumMove scores every move and picks among the top three with
// weighted randomness, so the bot stays beatable.
func (that *botService) mediumMove(snapshot ludo.Snapshot, color ludo.Color, moves []ludo.Move) int {
	scored := make([]scoredMove, 0, len(moves))
	for _, move := range moves {
		scored = append(scored, scoredMove{move: move, score: that.scoreMedium(snapshot, color, move)})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	top := scored
	if len(top) > 3 {
		top = top[:3]
	}

	weights := []int{3, 2, 1}[:len(top)]
	total := 0
	for _, w := range weights {
		total += w
	}

	pick := rand.Intn(total) //nolint:gosec // it's ok
	for i, w := range weights {
		if pick < w {
			return top[i].move.PieceIndex
		}
		pick -= w
	}

	return top[0].move.PieceIndex
}

// hardMove always takes the highest-scoring move.
func (that *botService) hardMove(snapshot ludo.Snapshot, color ludo.Color, moves []ludo.Move) int {
	best := moves[0]
	bestScore := that.scoreHard(snapshot, color, best)
	for _, move := range moves[1:] {
		if score := that.scoreHard(snapshot, color, move); score > bestScore {
			best, bestScore = move, score
		}
	}

	return best.PieceIndex
}

type scoredMove struct {
	move  ludo.Move
	score float64
}

func (that *botService) scoreMedium(snapshot ludo.Snapshot, color ludo.Color, move ludo.Move) float64 {
	var score float64

	if move.From == ludo.BasePosition {
		score += 50
	} else {
		score += float64(ludo.TrackLength-distanceToHomeEntry(color, move.Destination)) * 2
	}

	if isVulnerable(snapshot, color, move.Destination) {
		score -= 30
	}

	if entersHomeStretch(color, move) {
		score += 40
	}

	if capturesAt(snapshot, color, move.Destination) {
		score += 25
	}

	return score
}

func (that *botService) scoreHard(snapshot ludo.Snapshot, color ludo.Color, move ludo.Move) float64 {
	score := that.scoreMedium(snapshot, color, move)

	score += blockingValue(snapshot, color, move.Destination) * 15

	if ludo.IsSafeCell(move.Destination) {
		score += 20
	}

	score += groupBonus(snapshot, color, move.Destination) * 10

	if entersHomeStretch(color, move) {
		score += homeStretchTiming(snapshot, color) * 20
	}

	if capturesAt(snapshot, color, move.Destination) {
		multiplier := 1.0
		if ludo.IsSafeCell(move.Destination) {
			multiplier = 2.0
		}
		score += 30 * multiplier
	}

	return score
}

// distanceToHomeEntry measures remaining track cells before the color's
// home stretch, accounting for the wrap at the track end.
func distanceToHomeEntry(color ludo.Color, position int) int {
	if position == ludo.BasePosition || position >= ludo.TrackLength {
		return 0
	}

	start := ludo.StartPosition(color)
	if position >= start {
		return ludo.TrackLength - position + start
	}
	return start - position
}

// isVulnerable reports whether any opposing piece in transit could land
// on the cell with a single roll.
func isVulnerable(snapshot ludo.Snapshot, color ludo.Color, position int) bool {
	if position == ludo.BasePosition || ludo.IsSafeCell(position) {
		return false
	}

	for _, player := range snapshot.Players {
		if player.Color == color {
			continue
		}
		for _, piece := range player.Pieces {
			if pieceCanReach(player.Color, piece, position) {
				return true
			}
		}
	}

	return false
}

func pieceCanReach(color ludo.Color, piece ludo.PieceSnapshot, position int) bool {
	if piece.Position == ludo.BasePosition || piece.Finished {
		return false
	}

	probe := &ludo.Piece{Color: color, Index: piece.Index, Position: piece.Position}
	for dice := 1; dice <= ludo.DiceToLeaveBase; dice++ {
		if ludo.Destination(probe, dice) == position {
			return true
		}
	}

	return false
}

func entersHomeStretch(color ludo.Color, move ludo.Move) bool {
	return ludo.InHomeStretch(color, move.Destination) &&
		move.From != ludo.BasePosition &&
		move.From < ludo.HomeEntryPosition(color)
}

// capturesAt reports whether the cell holds an opposing unfinished piece
// that would be sent back to base.
func capturesAt(snapshot ludo.Snapshot, color ludo.Color, position int) bool {
	if ludo.IsSafeCell(position) {
		return false
	}

	for _, player := range snapshot.Players {
		if player.Color == color {
			continue
		}
		for _, piece := range player.Pieces {
			if piece.Position == position && !piece.Finished {
				return true
			}
		}
	}

	return false
}

// blockingValue rewards squatting on cells opponents would want within
// one roll, weighted by how far those opponents have come.
func blockingValue(snapshot ludo.Snapshot, color ludo.Color, position int) float64 {
	var value float64

	for _, player := range snapshot.Players {
		if player.Color == color {
			continue
		}
		for _, piece := range player.Pieces {
			if piece.Position == ludo.BasePosition || piece.Finished {
				continue
			}

			distance := abs(piece.Position-position) % ludo.TrackLength
			if distance <= ludo.DiceToLeaveBase {
				value += (pieceProgress(player.Color, piece) / 100) * float64(7-distance)
			}
		}
	}

	return value
}

// groupBonus rewards keeping own pieces close together.
func groupBonus(snapshot ludo.Snapshot, color ludo.Color, position int) float64 {
	own, ok := snapshot.Player(color)
	if !ok {
		return 0
	}

	nearby := 0
	for _, piece := range own.Pieces {
		if piece.Position == ludo.BasePosition || piece.Finished {
			continue
		}
		if abs(piece.Position-position)%ludo.TrackLength <= 3 {
			nearby++
		}
	}

	return float64(nearby) * 0.5
}

// homeStretchTiming prefers finishing pieces once the rest are on the
// board.
func homeStretchTiming(snapshot ludo.Snapshot, color ludo.Color) float64 {
	own, ok := snapshot.Player(color)
	if !ok {
		return 0.5
	}

	atBase := 0
	for _, piece := range own.Pieces {
		if piece.Position == ludo.BasePosition {
			atBase++
		}
	}

	if atBase <= 1 {
		return 1.0
	}
	return 0.5
}

func pieceProgress(color ludo.Color, piece ludo.PieceSnapshot) float64 {
	if piece.Position == ludo.BasePosition {
		return 0
	}
	if piece.Finished {
		return 100
	}

	start := ludo.StartPosition(color)
	progress := piece.Position - start
	if piece.Position < start {
		progress = ludo.TrackLength - start + piece.Position
	}

	return float64(progress) / ludo.TrackLength * 100
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
