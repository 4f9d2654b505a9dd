package rest

import (
	"github.com/rocketscienceinc/ludo-backend/internal/entity"
	"github.com/rocketscienceinc/ludo-backend/internal/ludo"
)

type connectPlayerRequest struct {
	PlayerID string `json:"player_id"`
}

type createMatchRequest struct {
	PlayerID   string `json:"player_id"`
	Type       string `json:"type"`
	Difficulty string `json:"difficulty,omitempty"`
}

type joinMatchRequest struct {
	PlayerID string `json:"player_id"`
	MatchID  string `json:"match_id"`
}

type playerActionRequest struct {
	PlayerID string `json:"player_id"`
}

type movePieceRequest struct {
	PlayerID   string `json:"player_id"`
	PieceIndex int    `json:"piece_index"`
}

type matchResponse struct {
	Match *entity.Match `json:"match"`
}

type rollResponse struct {
	DiceValue int           `json:"dice_value"`
	Match     *entity.Match `json:"match"`
}

type movesResponse struct {
	Moves []ludo.Move `json:"moves"`
}

type eventsResponse struct {
	Events []ludo.Event `json:"events"`
}

type errorResponse struct {
	Error string `json:"error"`
}
