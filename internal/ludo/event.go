package ludo

// EventType tags the kind of a game event.
type EventType string

const (
	EventGameStarted       EventType = "game_started"
	EventDiceRolled        EventType = "dice_rolled"
	EventPieceMoved        EventType = "piece_moved"
	EventPlayerTurnChanged EventType = "player_turn_changed"
	EventPieceCaptured     EventType = "piece_captured"
	EventPieceReachedHome  EventType = "piece_reached_home"
	EventGameOver          EventType = "game_over"
	EventInvalidMove       EventType = "invalid_move"
)

// Event is an immutable state-change notification. Color is the acting
// player where one applies; Data holds the payload struct for the type.
type Event struct {
	Type  EventType `json:"type"`
	Color Color     `json:"color,omitempty"`
	Data  any       `json:"data,omitempty"`
}

// PieceRef names a piece in an event payload.
type PieceRef struct {
	Color Color `json:"color"`
	Index int   `json:"index"`
}

type GameStartedData struct {
	Players []Color `json:"players"`
}

type DiceRolledData struct {
	Value int `json:"value"`
}

type PieceMovedData struct {
	PieceIndex  int `json:"piece_index"`
	OldPosition int `json:"old_position"`
	NewPosition int `json:"new_position"`
	DiceValue   int `json:"dice_value"`
}

type PlayerTurnChangedData struct {
	Color Color `json:"color"`
}

type PieceCapturedData struct {
	Captured PieceRef `json:"captured"`
	Capturer PieceRef `json:"capturer"`
}

type PieceReachedHomeData struct {
	PieceIndex int   `json:"piece_index"`
	Color      Color `json:"color"`
}

type GameOverData struct {
	Winner Color `json:"winner"`
}

type InvalidMoveData struct {
	PieceIndex int `json:"piece_index"`
	DiceValue  int `json:"dice_value"`
}

// Listener receives every event emitted by the engine, synchronously and
// in emission order. A listener must not call back into the engine.
type Listener func(Event)

// eventBus fans events out to listeners in subscription order. There is
// no buffering: with no listeners an event is simply dropped. A panicking
// listener is not recovered; the panic reaches the engine's caller.
type eventBus struct {
	listeners []Listener
}

func (that *eventBus) subscribe(listener Listener) {
	that.listeners = append(that.listeners, listener)
}

func (that *eventBus) emit(event Event) {
	for _, listener := range that.listeners {
		listener(event)
	}
}
