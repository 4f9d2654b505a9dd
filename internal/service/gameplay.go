package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/ludo-backend/internal/apperror"
	"github.com/rocketscienceinc/ludo-backend/internal/entity"
	"github.com/rocketscienceinc/ludo-backend/internal/ludo"
)

const recentEventLimit = 128

type GamePlayService interface {
	CreateMatch(ctx context.Context, playerID, matchType string, difficulty Difficulty) (*entity.Match, error)
	JoinMatch(ctx context.Context, matchID, playerID string) (*entity.Match, error)
	GetMatchState(ctx context.Context, matchID string) (*entity.Match, error)

	RollDice(ctx context.Context, playerID string) (int, *entity.Match, error)
	LegalMoves(ctx context.Context, playerID string) ([]ludo.Move, error)
	MovePiece(ctx context.Context, playerID string, pieceIndex int) (*entity.Match, error)
	PassTurn(ctx context.Context, playerID string) (*entity.Match, error)

	ResetMatch(ctx context.Context, matchID string) (*entity.Match, error)
	RecentEvents(ctx context.Context, matchID string) ([]ludo.Event, error)
}

// session pairs one live engine with everything match-scoped: the event
// buffer and the bot seats. The mutex serializes all engine access, as
// the engine itself is single-threaded.
type session struct {
	mu   sync.Mutex
	game *ludo.Game
	log  *eventLog
	bots map[ludo.Color]Difficulty
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	matchService  MatchService
	botService    BotService

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewGamePlayService(logger *slog.Logger, playerService PlayerService, matchService MatchService, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:        logger,
		playerService: playerService,
		matchService:  matchService,
		botService:    botService,
		sessions:      make(map[string]*session),
	}
}

// CreateMatch seats the creating player as red in a new match. A match
// against bots fills the remaining three seats immediately, which starts
// the engine. A player already seated somewhere gets their current match
// back instead.
func (that *gamePlayService) CreateMatch(ctx context.Context, playerID, matchType string, difficulty Difficulty) (*entity.Match, error) {
	player, err := that.playerService.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create player: %w", err)
	}

	if player.MatchID != "" {
		return that.GetMatchState(ctx, player.MatchID)
	}

	match, err := that.matchService.CreateMatch(ctx, matchType)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	sess := that.newSession(match.ID)

	player.MatchID = match.ID
	player.Color = ludo.TurnOrder[0]
	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	match.Players = []*entity.Player{player}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.game.AddPlayer(player.Color)

	if match.IsWithBots() {
		for _, color := range ludo.TurnOrder[1:] {
			botID := fmt.Sprintf("bot:%s:%s", match.ID, color)
			match.Players = append(match.Players, entity.NewBotPlayer(botID, match.ID, color))
			sess.bots[color] = difficulty
			sess.game.AddPlayer(color)
		}
	}

	if err = that.persistState(ctx, sess, match); err != nil {
		return nil, err
	}

	return match, nil
}

// JoinMatch seats a player on the first free color. The engine starts on
// the fourth seat.
func (that *gamePlayService) JoinMatch(ctx context.Context, matchID, playerID string) (*entity.Match, error) {
	match, err := that.matchService.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	player, err := that.playerService.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create player: %w", err)
	}

	if player.MatchID == match.ID {
		return match, nil
	}

	if match.IsFinished() {
		return nil, apperror.ErrMatchFinished
	}

	color, free := match.FreeColor()
	if !free {
		return nil, fmt.Errorf("%w: match id %s", apperror.ErrMatchFull, matchID)
	}

	sess, err := that.session(matchID)
	if err != nil {
		return nil, err
	}

	player.MatchID = match.ID
	player.Color = color
	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	match.Players = append(match.Players, player)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.game.AddPlayer(color)

	if err = that.persistState(ctx, sess, match); err != nil {
		return nil, err
	}

	return match, nil
}

func (that *gamePlayService) GetMatchState(ctx context.Context, matchID string) (*entity.Match, error) {
	match, err := that.matchService.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	return match, nil
}

// RollDice rolls for the player and returns the value with the updated
// match state.
func (that *gamePlayService) RollDice(ctx context.Context, playerID string) (int, *entity.Match, error) {
	player, match, sess, err := that.resolve(ctx, playerID)
	if err != nil {
		return 0, nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err = confirmPlayable(sess.game, player.Color); err != nil {
		return 0, nil, err
	}

	value := sess.game.Roll()
	if value == 0 {
		// already rolled, a move or pass is due
		return 0, nil, apperror.ErrInvalidMove
	}

	if err = that.persistState(ctx, sess, match); err != nil {
		return 0, nil, err
	}

	return value, match, nil
}

// LegalMoves enumerates the player's moves for the current dice value.
func (that *gamePlayService) LegalMoves(ctx context.Context, playerID string) ([]ludo.Move, error) {
	player, _, sess, err := that.resolve(ctx, playerID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.game.LegalMoves(player.Color), nil
}

// MovePiece applies the player's move, then lets seated bots play until
// the turn returns to a human or the game ends.
func (that *gamePlayService) MovePiece(ctx context.Context, playerID string, pieceIndex int) (*entity.Match, error) {
	player, match, sess, err := that.resolve(ctx, playerID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err = confirmPlayable(sess.game, player.Color); err != nil {
		return nil, err
	}

	if !sess.game.MovePiece(player.Color, pieceIndex) {
		return nil, fmt.Errorf("%w: piece %d", apperror.ErrInvalidMove, pieceIndex)
	}

	that.runBotTurns(sess)

	if err = that.persistState(ctx, sess, match); err != nil {
		return nil, err
	}

	return match, nil
}

// PassTurn gives up a turn with no legal move, then lets bots play.
func (that *gamePlayService) PassTurn(ctx context.Context, playerID string) (*entity.Match, error) {
	player, match, sess, err := that.resolve(ctx, playerID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err = confirmPlayable(sess.game, player.Color); err != nil {
		return nil, err
	}

	if !sess.game.Pass(player.Color) {
		return nil, apperror.ErrMovesAvailable
	}

	that.runBotTurns(sess)

	if err = that.persistState(ctx, sess, match); err != nil {
		return nil, err
	}

	return match, nil
}

// ResetMatch restarts the engine in place. With all four seats taken the
// game begins again immediately.
func (that *gamePlayService) ResetMatch(ctx context.Context, matchID string) (*entity.Match, error) {
	match, err := that.matchService.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	sess, err := that.session(matchID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.log.reset()
	sess.game.Reset()
	match.Winner = ""

	if err = that.persistState(ctx, sess, match); err != nil {
		return nil, err
	}

	return match, nil
}

// RecentEvents returns the match's buffered event stream.
func (that *gamePlayService) RecentEvents(_ context.Context, matchID string) ([]ludo.Event, error) {
	sess, err := that.session(matchID)
	if err != nil {
		return nil, err
	}

	return sess.log.recent(), nil
}

func (that *gamePlayService) newSession(matchID string) *session {
	sess := &session{
		game: ludo.NewGame(),
		log:  newEventLog(recentEventLimit),
		bots: make(map[ludo.Color]Difficulty),
	}

	sess.game.Subscribe(sess.log.record)
	sess.game.Subscribe(func(event ludo.Event) {
		that.logger.Debug("game event", "match", matchID, "type", event.Type, "color", event.Color)
	})

	that.mu.Lock()
	that.sessions[matchID] = sess
	that.mu.Unlock()

	return sess
}

func (that *gamePlayService) session(matchID string) (*session, error) {
	that.mu.RLock()
	sess, ok := that.sessions[matchID]
	that.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: match id %s", apperror.ErrNoActiveMatch, matchID)
	}

	return sess, nil
}

func (that *gamePlayService) resolve(ctx context.Context, playerID string) (*entity.Player, *entity.Match, *session, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.MatchID == "" {
		return nil, nil, nil, apperror.ErrNoActiveMatch
	}

	match, err := that.matchService.GetMatchByID(ctx, player.MatchID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	sess, err := that.session(player.MatchID)
	if err != nil {
		return nil, nil, nil, err
	}

	return player, match, sess, nil
}

// runBotTurns plays every consecutive bot turn. The loop ends when the
// turn reaches a human seat or the game is over; a rejected bot action
// would spin forever, so it breaks the loop instead.
func (that *gamePlayService) runBotTurns(sess *session) {
	for sess.game.Phase() != ludo.PhaseGameOver {
		current := sess.game.CurrentPlayer()
		difficulty, isBot := sess.bots[current]
		if !isBot {
			return
		}

		if err := that.botService.TakeTurn(sess.game, current, difficulty); err != nil {
			that.logger.Error("bot turn failed", "color", current, "error", err)
			return
		}
	}
}

// persistState writes the engine snapshot and derived lifecycle status
// back onto the match document. Caller holds the session lock.
func (that *gamePlayService) persistState(ctx context.Context, sess *session, match *entity.Match) error {
	snapshot := sess.game.Snapshot()
	match.Snapshot = &snapshot

	switch snapshot.Phase {
	case ludo.PhaseAwaitingPlayers:
		match.Status = entity.StatusWaiting
	case ludo.PhaseGameOver:
		match.Status = entity.StatusFinished
		for _, player := range snapshot.Players {
			if player.HasWon {
				match.Winner = player.Color
				break
			}
		}
	default:
		match.Status = entity.StatusOngoing
	}

	if err := that.matchService.UpdateMatch(ctx, match); err != nil {
		return fmt.Errorf("failed to persist match state: %w", err)
	}

	return nil
}

// confirmPlayable rejects actions outside an ongoing game or out of turn.
func confirmPlayable(game *ludo.Game, color ludo.Color) error {
	switch game.Phase() {
	case ludo.PhaseAwaitingPlayers:
		return apperror.ErrMatchIsNotStarted
	case ludo.PhaseGameOver:
		return apperror.ErrMatchFinished
	default:
	}

	if game.CurrentPlayer() != color {
		return apperror.ErrNotYourTurn
	}

	return nil
}
