package ludo

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// Phase is the engine's state machine position.
type Phase string

const (
	PhaseAwaitingPlayers Phase = "awaiting_players"
	PhaseRollingDice     Phase = "rolling_dice"
	PhaseMovingPiece     Phase = "moving_piece"
	PhaseGameOver        Phase = "game_over"
)

// Move pairs a movable piece with its destination for the current dice
// value, in piece-index order.
type Move struct {
	PieceIndex  int `json:"piece_index"`
	From        int `json:"from"`
	Destination int `json:"destination"`
}

// Game is the authoritative rules engine for one match. It owns all
// player and piece state; callers only ever receive copies. The engine is
// single-threaded: every operation, including event delivery, runs to
// completion on the caller's goroutine, and concurrent callers must
// serialize access themselves.
type Game struct {
	players   map[Color]*Player
	current   Color
	phase     Phase
	diceValue int

	rng *rand.Rand
	bus eventBus
}

// NewGame creates an empty game with a crypto-seeded dice source.
func NewGame() *Game {
	return NewGameWithRand(rand.New(rand.NewSource(newSeed()))) //nolint:gosec // dice, not secrets
}

// NewGameWithRand creates an empty game drawing dice from rng. Tests use
// this for deterministic rolls.
func NewGameWithRand(rng *rand.Rand) *Game {
	return &Game{
		players: make(map[Color]*Player, PlayersPerGame),
		phase:   PhaseAwaitingPlayers,
		rng:     rng,
	}
}

// Subscribe registers a listener for all subsequent events.
func (that *Game) Subscribe(listener Listener) {
	that.bus.subscribe(listener)
}

// Phase returns the current state machine phase.
func (that *Game) Phase() Phase {
	return that.phase
}

// CurrentPlayer returns the color whose turn it is, or "" while waiting
// for players or after the game is over.
func (that *Game) CurrentPlayer() Color {
	return that.current
}

// DiceValue returns the last rolled value, 0 before the first roll.
func (that *Game) DiceValue() int {
	return that.diceValue
}

// AddPlayer seats a new color. It fails on an unknown or duplicate color
// and once the game has started. The game starts automatically the moment
// the fourth color is seated.
func (that *Game) AddPlayer(color Color) bool {
	if !color.IsValid() || that.phase != PhaseAwaitingPlayers {
		return false
	}

	if _, ok := that.players[color]; ok {
		return false
	}

	that.players[color] = NewPlayer(color)

	if len(that.players) == PlayersPerGame {
		that.start()
	}

	return true
}

// RemovePlayer unseats a color. Removal is only supported before the game
// starts; a 2-3 player continuation is undefined and rejected.
func (that *Game) RemovePlayer(color Color) bool {
	if that.phase != PhaseAwaitingPlayers {
		return false
	}

	if _, ok := that.players[color]; !ok {
		return false
	}

	delete(that.players, color)

	return true
}

// Roll draws the dice for the current player. Outside the rolling phase
// it is a no-op returning 0.
func (that *Game) Roll() int {
	if that.phase != PhaseRollingDice {
		return 0
	}

	that.diceValue = that.rng.Intn(DiceToLeaveBase) + 1
	that.phase = PhaseMovingPiece

	that.bus.emit(Event{
		Type:  EventDiceRolled,
		Color: that.current,
		Data:  DiceRolledData{Value: that.diceValue},
	})

	return that.diceValue
}

// LegalMoves enumerates the color's movable pieces for the current dice
// value, in piece-index order. It returns nothing unless it is the
// color's turn and a piece is waiting to be moved.
func (that *Game) LegalMoves(color Color) []Move {
	if that.current != color || that.phase != PhaseMovingPiece {
		return nil
	}

	player := that.players[color]

	var moves []Move
	baseExitListed := false
	for _, piece := range player.Pieces {
		destination := Destination(piece, that.diceValue)
		if !that.isValidMove(player, piece, destination) {
			continue
		}

		// All base exits land on the same start cell; list the move once,
		// for the lowest-indexed piece.
		if piece.AtBase() {
			if baseExitListed {
				continue
			}
			baseExitListed = true
		}

		moves = append(moves, Move{
			PieceIndex:  piece.Index,
			From:        piece.Position,
			Destination: destination,
		})
	}

	return moves
}

// MovePiece applies the current dice value to one of the mover's pieces.
// The move is re-validated from scratch; a previously enumerated move list
// is never trusted. On success the engine resolves home arrival, capture
// and protection, emits the corresponding events, and either ends the
// game or passes the turn. On failure it emits InvalidMove and leaves all
// state untouched.
func (that *Game) MovePiece(color Color, pieceIndex int) bool {
	if that.current != color || that.phase != PhaseMovingPiece {
		return false
	}

	if pieceIndex < 0 || pieceIndex >= PiecesPerPlayer {
		return false
	}

	player := that.players[color]
	piece := player.Pieces[pieceIndex]
	destination := Destination(piece, that.diceValue)

	if !that.isValidMove(player, piece, destination) {
		that.bus.emit(Event{
			Type:  EventInvalidMove,
			Color: color,
			Data:  InvalidMoveData{PieceIndex: pieceIndex, DiceValue: that.diceValue},
		})
		return false
	}

	oldPosition := piece.Position
	piece.Position = destination

	if InHomeStretch(piece.Color, piece.Position) {
		piece.Finished = true
		player.HomeCount++

		that.bus.emit(Event{
			Type:  EventPieceReachedHome,
			Color: color,
			Data:  PieceReachedHomeData{PieceIndex: pieceIndex, Color: color},
		})
	}

	if captured := that.findCapture(piece, destination); captured != nil {
		captured.Reset()

		that.bus.emit(Event{
			Type:  EventPieceCaptured,
			Color: color,
			Data: PieceCapturedData{
				Captured: PieceRef{Color: captured.Color, Index: captured.Index},
				Capturer: PieceRef{Color: piece.Color, Index: piece.Index},
			},
		})
	}

	piece.Protected = IsSafeCell(destination)

	that.bus.emit(Event{
		Type:  EventPieceMoved,
		Color: color,
		Data: PieceMovedData{
			PieceIndex:  pieceIndex,
			OldPosition: oldPosition,
			NewPosition: destination,
			DiceValue:   that.diceValue,
		},
	})

	if player.HasWon() {
		that.end(color)
		return true
	}

	that.nextTurn()

	return true
}

// Pass gives up the turn when the current dice value allows no move at
// all. It fails if any legal move remains.
func (that *Game) Pass(color Color) bool {
	if that.current != color || that.phase != PhaseMovingPiece {
		return false
	}

	if len(that.LegalMoves(color)) > 0 {
		return false
	}

	that.nextTurn()

	return true
}

// Reset returns every seated player to the initial state. If all four
// seats are taken the game restarts immediately, exactly as if the fourth
// player had just joined.
func (that *Game) Reset() {
	for _, player := range that.players {
		player.reset()
	}

	that.current = ""
	that.diceValue = 0
	that.phase = PhaseAwaitingPlayers

	if len(that.players) == PlayersPerGame {
		that.start()
	}
}

func (that *Game) start() {
	that.phase = PhaseRollingDice
	that.current = TurnOrder[0]

	colors := make([]Color, 0, PlayersPerGame)
	for _, color := range TurnOrder {
		if _, ok := that.players[color]; ok {
			colors = append(colors, color)
		}
	}

	that.bus.emit(Event{
		Type:  EventGameStarted,
		Color: that.current,
		Data:  GameStartedData{Players: colors},
	})
}

func (that *Game) end(winner Color) {
	that.phase = PhaseGameOver

	that.bus.emit(Event{
		Type:  EventGameOver,
		Color: winner,
		Data:  GameOverData{Winner: winner},
	})
}

// isValidMove checks a single piece against the current dice value: a
// finished piece never moves, a piece at base needs a six, and a piece in
// transit may not land on an unfinished piece of its own color.
func (that *Game) isValidMove(player *Player, piece *Piece, destination int) bool {
	if piece.Finished {
		return false
	}

	if piece.AtBase() {
		return that.diceValue == DiceToLeaveBase
	}

	for _, other := range player.Pieces {
		if other != piece && other.Position == destination && !other.Finished {
			return false
		}
	}

	return true
}

// findCapture scans for an opposing unfinished piece on the destination
// cell. Safe cells never yield a capture. The occupancy rule in
// isValidMove keeps at most one opponent on any non-safe cell, so the
// first hit is the only one.
func (that *Game) findCapture(mover *Piece, destination int) *Piece {
	if IsSafeCell(destination) {
		return nil
	}

	for _, player := range that.players {
		if player.Color == mover.Color {
			continue
		}
		for _, piece := range player.Pieces {
			if piece.Position == destination && !piece.Finished {
				return piece
			}
		}
	}

	return nil
}

// nextTurn advances to the next color in seat order, skipping colors that
// already brought all pieces home. If everyone else has finished the turn
// stays with the mover.
func (that *Game) nextTurn() {
	currentIndex := 0
	for i, color := range TurnOrder {
		if color == that.current {
			currentIndex = i
			break
		}
	}

	nextIndex := (currentIndex + 1) % PlayersPerGame
	for nextIndex != currentIndex {
		player, ok := that.players[TurnOrder[nextIndex]]
		if ok && !player.HasWon() {
			break
		}
		nextIndex = (nextIndex + 1) % PlayersPerGame
	}

	that.current = TurnOrder[nextIndex]
	that.phase = PhaseRollingDice

	that.bus.emit(Event{
		Type:  EventPlayerTurnChanged,
		Color: that.current,
		Data:  PlayerTurnChangedData{Color: that.current},
	})
}

func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
