package apperror

import "errors"

var (
	ErrMatchFinished     = errors.New("match is already finished")
	ErrMatchIsNotStarted = errors.New("match is not started")
	ErrMatchFull         = errors.New("match already has four players")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrInvalidMove       = errors.New("move is not allowed")
	ErrMovesAvailable    = errors.New("a legal move is still available")
	ErrNoActiveMatch     = errors.New("no active match")
)
