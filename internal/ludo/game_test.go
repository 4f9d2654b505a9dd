package ludo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFullGame(t *testing.T) *Game {
	t.Helper()

	game := NewGameWithRand(rand.New(rand.NewSource(1)))
	for _, color := range TurnOrder {
		require.True(t, game.AddPlayer(color))
	}

	return game
}

// forceDice puts the game into the moving phase with a known dice value.
func forceDice(game *Game, value int) {
	game.phase = PhaseMovingPiece
	game.diceValue = value
}

func TestGame_AddPlayer(t *testing.T) {
	t.Run("Adds four distinct colors and starts automatically", func(t *testing.T) {
		// Given: an empty game with an event listener
		game := NewGameWithRand(rand.New(rand.NewSource(1)))

		var events []Event
		game.Subscribe(func(event Event) {
			events = append(events, event)
		})

		// When: four distinct colors join
		for _, color := range TurnOrder {
			assert.True(t, game.AddPlayer(color))
		}

		// Then: the game starts with red to roll and announces the players
		assert.Equal(t, PhaseRollingDice, game.Phase())
		assert.Equal(t, ColorRed, game.CurrentPlayer())

		require.Len(t, events, 1)
		assert.Equal(t, EventGameStarted, events[0].Type)
		assert.Equal(t, GameStartedData{Players: []Color{ColorRed, ColorGreen, ColorYellow, ColorBlue}}, events[0].Data)
	})

	t.Run("Rejects duplicate colors", func(t *testing.T) {
		// Given: a game where red already joined
		game := NewGameWithRand(rand.New(rand.NewSource(1)))
		require.True(t, game.AddPlayer(ColorRed))

		// When: red tries to join again
		// Then: the second add fails
		assert.False(t, game.AddPlayer(ColorRed))
	})

	t.Run("Rejects unknown colors", func(t *testing.T) {
		game := NewGameWithRand(rand.New(rand.NewSource(1)))

		assert.False(t, game.AddPlayer(Color("purple")))
	})

	t.Run("Rejects joining a started game", func(t *testing.T) {
		// Given: a started game
		game := newFullGame(t)

		// When/Then: no further seats exist
		assert.False(t, game.AddPlayer(ColorRed))
	})
}

func TestGame_RemovePlayer(t *testing.T) {
	t.Run("Removes a seated color before start", func(t *testing.T) {
		// Given: a game with red and green seated
		game := NewGameWithRand(rand.New(rand.NewSource(1)))
		require.True(t, game.AddPlayer(ColorRed))
		require.True(t, game.AddPlayer(ColorGreen))

		// When/Then: red leaves once, not twice, and blue was never there
		assert.True(t, game.RemovePlayer(ColorRed))
		assert.False(t, game.RemovePlayer(ColorRed))
		assert.False(t, game.RemovePlayer(ColorBlue))
	})

	t.Run("Rejects removal after the game started", func(t *testing.T) {
		// Given: a started game
		game := newFullGame(t)

		// When: a player tries to leave mid-game
		// Then: removal is rejected and the seat stays
		assert.False(t, game.RemovePlayer(ColorGreen))
		assert.Equal(t, PhaseRollingDice, game.Phase())
	})
}

func TestGame_Roll(t *testing.T) {
	t.Run("Returns a value between 1 and 6 and enters the moving phase", func(t *testing.T) {
		// Given: a started game
		game := newFullGame(t)

		var events []Event
		game.Subscribe(func(event Event) {
			events = append(events, event)
		})

		// When: the current player rolls
		value := game.Roll()

		// Then: the value is in range and announced, and a move is awaited
		assert.GreaterOrEqual(t, value, 1)
		assert.LessOrEqual(t, value, 6)
		assert.Equal(t, value, game.DiceValue())
		assert.Equal(t, PhaseMovingPiece, game.Phase())

		require.Len(t, events, 1)
		assert.Equal(t, EventDiceRolled, events[0].Type)
		assert.Equal(t, ColorRed, events[0].Color)
		assert.Equal(t, DiceRolledData{Value: value}, events[0].Data)
	})

	t.Run("Is a no-op outside the rolling phase", func(t *testing.T) {
		// Given: a game still waiting for players
		game := NewGameWithRand(rand.New(rand.NewSource(1)))

		// When/Then: rolling yields the 0 sentinel
		assert.Zero(t, game.Roll())

		// And: rolling twice in a row is also rejected
		game = newFullGame(t)
		game.Roll()
		assert.Zero(t, game.Roll())
	})
}

func TestGame_LegalMoves(t *testing.T) {
	t.Run("Empty for the wrong color or phase", func(t *testing.T) {
		// Given: a started game before any roll
		game := newFullGame(t)

		// Then: nobody has moves yet, and green never does on red's turn
		assert.Empty(t, game.LegalMoves(ColorRed))

		forceDice(game, 6)
		assert.Empty(t, game.LegalMoves(ColorGreen))
	})

	t.Run("Base pieces need a six", func(t *testing.T) {
		// Given: red's turn with all pieces at base and a five rolled
		game := newFullGame(t)
		forceDice(game, 5)

		// Then: red cannot move at all
		assert.Empty(t, game.LegalMoves(ColorRed))
	})

	t.Run("A six yields a single base exit onto the start cell", func(t *testing.T) {
		// Given: red's turn with all pieces at base and a six rolled
		game := newFullGame(t)
		forceDice(game, 6)

		// When: enumerating red's moves
		moves := game.LegalMoves(ColorRed)

		// Then: the four identical base exits collapse into one entry
		require.Len(t, moves, 1)
		assert.Equal(t, Move{PieceIndex: 0, From: BasePosition, Destination: 0}, moves[0])
	})

	t.Run("Excludes destinations blocked by an own piece", func(t *testing.T) {
		// Given: two red pieces three cells apart and a three rolled
		game := newFullGame(t)
		game.players[ColorRed].Pieces[0].Position = 10
		game.players[ColorRed].Pieces[1].Position = 13
		forceDice(game, 3)

		// When: enumerating red's moves
		moves := game.LegalMoves(ColorRed)

		// Then: only the leading piece may move
		require.Len(t, moves, 1)
		assert.Equal(t, Move{PieceIndex: 1, From: 13, Destination: 16}, moves[0])
	})

	t.Run("Keeps piece-index order", func(t *testing.T) {
		// Given: three red pieces in transit
		game := newFullGame(t)
		game.players[ColorRed].Pieces[0].Position = 20
		game.players[ColorRed].Pieces[1].Position = 5
		game.players[ColorRed].Pieces[2].Position = 30
		forceDice(game, 2)

		moves := game.LegalMoves(ColorRed)

		require.Len(t, moves, 3)
		assert.Equal(t, []int{0, 1, 2}, []int{moves[0].PieceIndex, moves[1].PieceIndex, moves[2].PieceIndex})
	})
}

func TestGame_MovePiece(t *testing.T) {
	t.Run("Base exit lands on the protected start cell and passes the turn", func(t *testing.T) {
		// Given: red's turn with a six rolled
		game := newFullGame(t)
		forceDice(game, 6)

		var events []Event
		game.Subscribe(func(event Event) {
			events = append(events, event)
		})

		// When: red brings piece 0 onto the board
		require.True(t, game.MovePiece(ColorRed, 0))

		// Then: the piece sits protected on red's start cell
		piece := game.players[ColorRed].Pieces[0]
		assert.Equal(t, 0, piece.Position)
		assert.True(t, piece.Protected)
		assert.False(t, piece.Finished)

		// And: the turn advances to green, back in the rolling phase
		assert.Equal(t, ColorGreen, game.CurrentPlayer())
		assert.Equal(t, PhaseRollingDice, game.Phase())

		require.Len(t, events, 2)
		assert.Equal(t, EventPieceMoved, events[0].Type)
		assert.Equal(t, PieceMovedData{PieceIndex: 0, OldPosition: BasePosition, NewPosition: 0, DiceValue: 6}, events[0].Data)
		assert.Equal(t, EventPlayerTurnChanged, events[1].Type)
	})

	t.Run("Captures an opposing piece on a plain cell", func(t *testing.T) {
		// Given: red at 10 and green at 14, with red rolling a four
		game := newFullGame(t)
		game.players[ColorRed].Pieces[0].Position = 10
		game.players[ColorGreen].Pieces[2].Position = 14
		forceDice(game, 4)

		var events []Event
		game.Subscribe(func(event Event) {
			events = append(events, event)
		})

		// When: red lands on green
		require.True(t, game.MovePiece(ColorRed, 0))

		// Then: green's piece is back at base and the capture names both pieces
		assert.Equal(t, BasePosition, game.players[ColorGreen].Pieces[2].Position)
		assert.Equal(t, 14, game.players[ColorRed].Pieces[0].Position)

		require.Len(t, events, 3)
		assert.Equal(t, EventPieceCaptured, events[0].Type)
		assert.Equal(t, PieceCapturedData{
			Captured: PieceRef{Color: ColorGreen, Index: 2},
			Capturer: PieceRef{Color: ColorRed, Index: 0},
		}, events[0].Data)
		assert.Equal(t, EventPieceMoved, events[1].Type)
		assert.Equal(t, EventPlayerTurnChanged, events[2].Type)
	})

	t.Run("Never captures on a safe cell", func(t *testing.T) {
		// Given: green resting on safe cell 13 and red three cells behind
		game := newFullGame(t)
		game.players[ColorRed].Pieces[0].Position = 10
		game.players[ColorGreen].Pieces[0].Position = 13
		forceDice(game, 3)

		var captures int
		game.Subscribe(func(event Event) {
			if event.Type == EventPieceCaptured {
				captures++
			}
		})

		// When: red lands on the safe cell
		require.True(t, game.MovePiece(ColorRed, 0))

		// Then: green survives and red is protected
		assert.Zero(t, captures)
		assert.Equal(t, 13, game.players[ColorGreen].Pieces[0].Position)
		assert.True(t, game.players[ColorRed].Pieces[0].Protected)
	})

	t.Run("Enters the home stretch instead of wrapping past the entry", func(t *testing.T) {
		// Given: red at 49 with a one rolled
		game := newFullGame(t)
		game.players[ColorRed].Pieces[0].Position = 49
		forceDice(game, 1)

		var events []Event
		game.Subscribe(func(event Event) {
			events = append(events, event)
		})

		// When: red moves
		require.True(t, game.MovePiece(ColorRed, 0))

		// Then: the piece is on the first home-stretch cell, finished, not 1 mod 52
		piece := game.players[ColorRed].Pieces[0]
		assert.Equal(t, 50, piece.Position)
		assert.True(t, piece.Finished)
		assert.Equal(t, 1, game.players[ColorRed].HomeCount)

		assert.Equal(t, EventPieceReachedHome, events[0].Type)
		assert.Equal(t, PieceReachedHomeData{PieceIndex: 0, Color: ColorRed}, events[0].Data)
	})

	t.Run("Fourth finished piece ends the game", func(t *testing.T) {
		// Given: three red pieces already home and the last one at 49
		game := newFullGame(t)
		red := game.players[ColorRed]
		for i := 1; i < PiecesPerPlayer; i++ {
			red.Pieces[i].Position = 50 + i
			red.Pieces[i].Finished = true
		}
		red.HomeCount = 3
		red.Pieces[0].Position = 49
		forceDice(game, 2)

		var events []Event
		game.Subscribe(func(event Event) {
			events = append(events, event)
		})

		// When: the last piece reaches home
		require.True(t, game.MovePiece(ColorRed, 0))

		// Then: red wins and the game is over, with no turn change
		assert.Equal(t, PhaseGameOver, game.Phase())
		assert.True(t, red.HasWon())

		require.Len(t, events, 3)
		assert.Equal(t, EventPieceReachedHome, events[0].Type)
		assert.Equal(t, EventPieceMoved, events[1].Type)
		assert.Equal(t, EventGameOver, events[2].Type)
		assert.Equal(t, GameOverData{Winner: ColorRed}, events[2].Data)

		// And: no further roll or move is accepted
		assert.Zero(t, game.Roll())
		assert.False(t, game.MovePiece(ColorGreen, 0))
	})

	t.Run("Rejects moves out of turn, out of range, or without a six from base", func(t *testing.T) {
		// Given: red's turn with a three rolled
		game := newFullGame(t)
		forceDice(game, 3)

		var invalid []Event
		game.Subscribe(func(event Event) {
			if event.Type == EventInvalidMove {
				invalid = append(invalid, event)
			}
		})

		// Then: green cannot move on red's turn (no event, wrong context)
		assert.False(t, game.MovePiece(ColorGreen, 0))
		assert.Empty(t, invalid)

		// And: an out-of-range piece index fails without state change
		assert.False(t, game.MovePiece(ColorRed, 7))
		assert.False(t, game.MovePiece(ColorRed, -1))

		// And: moving from base without a six emits InvalidMove
		assert.False(t, game.MovePiece(ColorRed, 0))
		require.Len(t, invalid, 1)
		assert.Equal(t, InvalidMoveData{PieceIndex: 0, DiceValue: 3}, invalid[0].Data)

		// And: the phase did not change
		assert.Equal(t, PhaseMovingPiece, game.Phase())
		assert.Equal(t, ColorRed, game.CurrentPlayer())
	})

	t.Run("Skips finished players when passing the turn", func(t *testing.T) {
		// Given: green already won, red about to move
		game := newFullGame(t)
		green := game.players[ColorGreen]
		for i, piece := range green.Pieces {
			piece.Position = 63 + i
			piece.Finished = true
		}
		green.HomeCount = PiecesPerPlayer

		game.players[ColorRed].Pieces[0].Position = 5
		forceDice(game, 2)

		// When: red moves
		require.True(t, game.MovePiece(ColorRed, 0))

		// Then: the turn skips green straight to yellow
		assert.Equal(t, ColorYellow, game.CurrentPlayer())
	})
}

func TestGame_Pass(t *testing.T) {
	t.Run("Passes the turn when no move exists", func(t *testing.T) {
		// Given: red stuck at base with a four rolled
		game := newFullGame(t)
		forceDice(game, 4)

		// When: red passes
		require.True(t, game.Pass(ColorRed))

		// Then: green is up, rolling
		assert.Equal(t, ColorGreen, game.CurrentPlayer())
		assert.Equal(t, PhaseRollingDice, game.Phase())
	})

	t.Run("Rejected while a legal move remains", func(t *testing.T) {
		// Given: red with a six rolled
		game := newFullGame(t)
		forceDice(game, 6)

		// When/Then: passing is refused
		assert.False(t, game.Pass(ColorRed))
		assert.Equal(t, ColorRed, game.CurrentPlayer())
	})

	t.Run("Rejected out of turn or phase", func(t *testing.T) {
		game := newFullGame(t)

		assert.False(t, game.Pass(ColorRed))

		forceDice(game, 4)
		assert.False(t, game.Pass(ColorGreen))
	})
}

func TestGame_Reset(t *testing.T) {
	t.Run("Restores the exact starting snapshot with four players", func(t *testing.T) {
		// Given: a fresh snapshot and a game that has seen some play
		game := newFullGame(t)
		fresh := game.Snapshot()

		forceDice(game, 6)
		require.True(t, game.MovePiece(ColorRed, 0))

		// When: the game is reset
		game.Reset()

		// Then: the game restarted immediately and matches the fresh state
		assert.Equal(t, PhaseRollingDice, game.Phase())
		assert.Equal(t, ColorRed, game.CurrentPlayer())
		assert.Zero(t, game.DiceValue())
		assert.Equal(t, fresh, game.Snapshot())
	})

	t.Run("Replays the start transition including the event", func(t *testing.T) {
		// Given: a started game with a listener
		game := newFullGame(t)

		var events []Event
		game.Subscribe(func(event Event) {
			events = append(events, event)
		})

		// When: resetting
		game.Reset()

		// Then: GameStarted fires again
		require.Len(t, events, 1)
		assert.Equal(t, EventGameStarted, events[0].Type)
	})

	t.Run("Stays waiting with fewer than four players", func(t *testing.T) {
		// Given: only two players seated
		game := NewGameWithRand(rand.New(rand.NewSource(1)))
		require.True(t, game.AddPlayer(ColorRed))
		require.True(t, game.AddPlayer(ColorBlue))

		// When: resetting
		game.Reset()

		// Then: still waiting for players
		assert.Equal(t, PhaseAwaitingPlayers, game.Phase())
		assert.Empty(t, game.CurrentPlayer())
	})
}

func TestGame_PositionInvariants(t *testing.T) {
	t.Run("Positions stay on the track, at base, or in the own home stretch", func(t *testing.T) {
		// Given: a full game played to completion with real dice
		game := newFullGame(t)

		// When: playing many turns, always taking the first legal move
		for i := 0; i < 10000 && game.Phase() != PhaseGameOver; i++ {
			current := game.CurrentPlayer()
			require.NotZero(t, game.Roll())

			moves := game.LegalMoves(current)
			if len(moves) == 0 {
				require.True(t, game.Pass(current))
				continue
			}
			require.True(t, game.MovePiece(current, moves[0].PieceIndex))

			// Then: every piece satisfies the position invariant after every move
			snapshot := game.Snapshot()
			totalHome := 0
			for _, player := range snapshot.Players {
				totalHome += player.HomeCount
				for _, piece := range player.Pieces {
					valid := piece.Position == BasePosition ||
						(piece.Position >= 0 && piece.Position < TrackLength) ||
						InHomeStretch(player.Color, piece.Position)
					require.True(t, valid, "%s piece %d at %d", player.Color, piece.Index, piece.Position)
				}
			}
			require.LessOrEqual(t, totalHome, PlayersPerGame*PiecesPerPlayer)
		}
	})
}

func TestGame_Snapshot(t *testing.T) {
	t.Run("Shares no state with the engine", func(t *testing.T) {
		// Given: a started game
		game := newFullGame(t)

		// When: mutating a snapshot
		snapshot := game.Snapshot()
		snapshot.Players[0].Pieces[0].Position = 40

		// Then: the engine is unaffected
		assert.Equal(t, BasePosition, game.players[ColorRed].Pieces[0].Position)
	})

	t.Run("Carries phase, turn, dice and per-piece state", func(t *testing.T) {
		// Given: a game mid-move
		game := newFullGame(t)
		game.players[ColorRed].Pieces[2].Position = 8
		game.players[ColorRed].Pieces[2].Protected = true
		forceDice(game, 4)

		// When: taking a snapshot
		snapshot := game.Snapshot()

		// Then: it reflects the full externally visible state
		assert.Equal(t, PhaseMovingPiece, snapshot.Phase)
		assert.Equal(t, ColorRed, snapshot.CurrentPlayer)
		assert.Equal(t, 4, snapshot.DiceValue)
		require.Len(t, snapshot.Players, 4)

		red, ok := snapshot.Player(ColorRed)
		require.True(t, ok)
		assert.Equal(t, PieceSnapshot{Index: 2, Position: 8, Protected: true}, red.Pieces[2])
	})
}
