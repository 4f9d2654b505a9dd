package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/ludo-backend/internal/apperror"
	"github.com/rocketscienceinc/ludo-backend/internal/repository"
	"github.com/rocketscienceinc/ludo-backend/internal/service"
)

func (that *Server) handleConnectPlayer(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleConnectPlayer")

	var req connectPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	player, err := that.uGame.GetOrCreatePlayer(r.Context(), req.PlayerID)
	if err != nil {
		log.Error("failed to get or create player", "error", err)
		that.respondError(w, http.StatusInternalServerError, "failed to get or create player")
		return
	}

	that.respondJSON(w, http.StatusOK, player)
}

func (that *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleCreateMatch")

	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	match, err := that.uGame.CreateMatch(r.Context(), req.PlayerID, req.Type, service.ParseDifficulty(req.Difficulty))
	if err != nil {
		log.Error("failed to create match", "error", err)
		that.respondAppError(w, err)
		return
	}

	that.respondJSON(w, http.StatusCreated, matchResponse{Match: match})
}

func (that *Server) handleJoinMatch(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleJoinMatch")

	var req joinMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	match, err := that.uGame.JoinMatch(r.Context(), req.MatchID, req.PlayerID)
	if err != nil {
		log.Error("failed to join match", "match", req.MatchID, "error", err)
		that.respondAppError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, matchResponse{Match: match})
}

func (that *Server) handleMatchState(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleMatchState")

	match, err := that.uGame.GetMatchState(r.Context(), r.PathValue("id"))
	if err != nil {
		log.Error("failed to get match state", "error", err)
		that.respondAppError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, matchResponse{Match: match})
}

func (that *Server) handleRecentEvents(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleRecentEvents")

	events, err := that.uGame.RecentEvents(r.Context(), r.PathValue("id"))
	if err != nil {
		log.Error("failed to get recent events", "error", err)
		that.respondAppError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, eventsResponse{Events: events})
}

func (that *Server) handleResetMatch(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleResetMatch")

	match, err := that.uGame.ResetMatch(r.Context(), r.PathValue("id"))
	if err != nil {
		log.Error("failed to reset match", "error", err)
		that.respondAppError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, matchResponse{Match: match})
}

func (that *Server) handleRollDice(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleRollDice")

	var req playerActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	value, match, err := that.uGame.RollDice(r.Context(), req.PlayerID)
	if err != nil {
		log.Error("failed to roll dice", "player", req.PlayerID, "error", err)
		that.respondAppError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, rollResponse{DiceValue: value, Match: match})
}

func (that *Server) handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleLegalMoves")

	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		that.respondError(w, http.StatusBadRequest, "player_id is required")
		return
	}

	moves, err := that.uGame.LegalMoves(r.Context(), playerID)
	if err != nil {
		log.Error("failed to enumerate moves", "player", playerID, "error", err)
		that.respondAppError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, movesResponse{Moves: moves})
}

func (that *Server) handleMovePiece(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleMovePiece")

	var req movePieceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	match, err := that.uGame.MovePiece(r.Context(), req.PlayerID, req.PieceIndex)
	if err != nil {
		log.Error("failed to move piece", "player", req.PlayerID, "piece", req.PieceIndex, "error", err)
		that.respondAppError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, matchResponse{Match: match})
}

func (that *Server) handlePassTurn(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handlePassTurn")

	var req playerActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	match, err := that.uGame.PassTurn(r.Context(), req.PlayerID)
	if err != nil {
		log.Error("failed to pass turn", "player", req.PlayerID, "error", err)
		that.respondAppError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, matchResponse{Match: match})
}

// respondAppError maps known domain errors to client-facing statuses;
// everything else is a 500 with a generic message.
func (that *Server) respondAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrMatchNotFound),
		errors.Is(err, repository.ErrPlayerNotFound),
		errors.Is(err, apperror.ErrNoActiveMatch):
		that.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrMovesAvailable),
		errors.Is(err, apperror.ErrMatchFull),
		errors.Is(err, apperror.ErrMatchIsNotStarted),
		errors.Is(err, apperror.ErrMatchFinished):
		that.respondError(w, http.StatusConflict, err.Error())
	default:
		that.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (that *Server) respondError(w http.ResponseWriter, status int, message string) {
	that.respondJSON(w, status, errorResponse{Error: message})
}

func (that *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
