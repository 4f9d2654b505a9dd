package entity

import (
	"github.com/rocketscienceinc/ludo-backend/internal/ludo"
)

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

const (
	PrivateType = "private"
	WithBotType = "bot"
)

// Match is the stored session document for one game: seat assignment,
// lifecycle status and the latest engine snapshot. It never holds move or
// event history.
type Match struct {
	ID      string    `json:"id"`
	Type    string    `json:"type,omitempty"`
	Status  string    `json:"status"`
	Players []*Player `json:"players,omitempty"`

	Snapshot *ludo.Snapshot `json:"snapshot,omitempty"`
	Winner   ludo.Color     `json:"winner,omitempty"`
}

func NewMatch(id, matchType string) *Match {
	return &Match{
		ID:     id,
		Type:   matchType,
		Status: StatusWaiting,
	}
}

func (that *Match) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Match) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Match) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Match) IsWithBots() bool {
	return that.Type == WithBotType
}

// PlayerByID returns the seated player with the id, if any.
func (that *Match) PlayerByID(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}
	return nil
}

// TakenColors returns the colors already assigned, in seat order.
func (that *Match) TakenColors() []ludo.Color {
	taken := make([]ludo.Color, 0, len(that.Players))
	for _, color := range ludo.TurnOrder {
		for _, player := range that.Players {
			if player.Color == color {
				taken = append(taken, color)
			}
		}
	}
	return taken
}

// FreeColor returns the first unassigned color in seat order.
func (that *Match) FreeColor() (ludo.Color, bool) {
	for _, color := range ludo.TurnOrder {
		used := false
		for _, player := range that.Players {
			if player.Color == color {
				used = true
				break
			}
		}
		if !used {
			return color, true
		}
	}
	return "", false
}
