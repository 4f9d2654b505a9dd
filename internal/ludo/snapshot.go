package ludo

// Snapshot is a read-only projection of the whole game, safe to hand to
// transports and observers: it shares no memory with the engine.
type Snapshot struct {
	Phase         Phase            `json:"phase"`
	CurrentPlayer Color            `json:"current_player,omitempty"`
	DiceValue     int              `json:"dice_value"`
	Players       []PlayerSnapshot `json:"players"`
}

type PlayerSnapshot struct {
	Color     Color                          `json:"color"`
	HomeCount int                            `json:"home_count"`
	HasWon    bool                           `json:"has_won"`
	Pieces    [PiecesPerPlayer]PieceSnapshot `json:"pieces"`
}

type PieceSnapshot struct {
	Index     int  `json:"index"`
	Position  int  `json:"position"`
	Finished  bool `json:"finished"`
	Protected bool `json:"protected"`
}

// Snapshot copies the current state. Players appear in seat order.
func (that *Game) Snapshot() Snapshot {
	snapshot := Snapshot{
		Phase:         that.phase,
		CurrentPlayer: that.current,
		DiceValue:     that.diceValue,
		Players:       make([]PlayerSnapshot, 0, len(that.players)),
	}

	for _, color := range TurnOrder {
		player, ok := that.players[color]
		if !ok {
			continue
		}

		playerSnapshot := PlayerSnapshot{
			Color:     color,
			HomeCount: player.HomeCount,
			HasWon:    player.HasWon(),
		}
		for i, piece := range player.Pieces {
			playerSnapshot.Pieces[i] = PieceSnapshot{
				Index:     piece.Index,
				Position:  piece.Position,
				Finished:  piece.Finished,
				Protected: piece.Protected,
			}
		}

		snapshot.Players = append(snapshot.Players, playerSnapshot)
	}

	return snapshot
}

// Player returns the snapshot entry for a color, if present.
func (that Snapshot) Player(color Color) (PlayerSnapshot, bool) {
	for _, player := range that.Players {
		if player.Color == color {
			return player, true
		}
	}
	return PlayerSnapshot{}, false
}
