package entity

import "github.com/rocketscienceinc/ludo-backend/internal/ludo"

const BotType = "bot"

// Player is the session-level record of a participant: who they are,
// which match they sit in and which color they play. Board state lives in
// the engine, not here.
type Player struct {
	ID      string     `json:"id"`
	MatchID string     `json:"match_id,omitempty"`
	Color   ludo.Color `json:"color,omitempty"`
	Type    string     `json:"type,omitempty"`
}

func NewBotPlayer(id, matchID string, color ludo.Color) *Player {
	return &Player{
		ID:      id,
		MatchID: matchID,
		Color:   color,
		Type:    BotType,
	}
}

func (that *Player) IsBot() bool {
	return that.Type == BotType
}
