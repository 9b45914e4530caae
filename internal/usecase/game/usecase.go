package game

import (
	"context"
	"time"

	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/kiryu-dev/board-games/internal/usecase/chess"
	"github.com/kiryu-dev/board-games/internal/usecase/morris"
	"github.com/kiryu-dev/board-games/internal/usecase/session"
	"github.com/kiryu-dev/board-games/internal/usecase/tictactoe"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type state[G any] interface {
	session.Game[G]
	Finished() bool
	Outcome() domain.Result
}

type Option func(u *useCase)

func WithClock(now func() time.Time) Option {
	return func(u *useCase) {
		u.now = now
	}
}

// WithRand replaces the randomness of the computer opponents.
func WithRand(rnd domain.Rand) Option {
	return func(u *useCase) {
		u.rnd = rnd
	}
}

type useCase struct {
	tictactoe    *session.Store[*tictactoe.State]
	morris       *session.Store[*morris.State]
	chess        *session.Store[*chess.State]
	tictactoeBot *tictactoe.Bot
	morrisBot    *morris.Bot
	rnd          domain.Rand
	notifier     domain.Notifier
	now          func() time.Time
	logger       *zap.Logger
}

func New(notifier domain.Notifier, logger *zap.Logger, opts ...Option) *useCase {
	u := &useCase{
		tictactoe: session.New[*tictactoe.State](domain.TicTacToe, logger),
		morris:    session.New[*morris.State](domain.Morris, logger),
		chess:     session.New[*chess.State](domain.Chess, logger),
		rnd:       domain.DefaultRand,
		notifier:  notifier,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(u)
	}
	u.tictactoeBot = tictactoe.NewBot(u.rnd)
	u.morrisBot = morris.NewBot(u.rnd)
	return u
}

func unknownKind(kind domain.Kind) error {
	return errors.WithMessagef(domain.ErrBadRequest, "unknown game kind '%s'", kind)
}

func (u *useCase) Create(_ context.Context, kind domain.Kind, opts domain.CreateOptions) (domain.Snapshot, error) {
	difficulty, err := domain.ParseDifficulty(string(opts.Difficulty))
	if err != nil {
		return domain.Snapshot{}, err
	}
	now := u.now()
	switch kind {
	case domain.TicTacToe:
		return create(u, u.tictactoe, tictactoe.New(opts.VsComputer, difficulty, now)), nil
	case domain.Morris:
		return create(u, u.morris, morris.New(opts.VsComputer, difficulty, now)), nil
	case domain.Chess:
		if opts.VsComputer {
			return domain.Snapshot{}, errNoChessComputer
		}
		return create(u, u.chess, chess.New(now)), nil
	}
	return domain.Snapshot{}, unknownKind(kind)
}

// CreateOnline starts a game between two connected clients, first moves first.
func (u *useCase) CreateOnline(_ context.Context, kind domain.Kind, first string, second string) (domain.Snapshot, error) {
	firstMarker, secondMarker := kind.Markers()
	players := map[string]string{firstMarker: first, secondMarker: second}
	now := u.now()
	switch kind {
	case domain.TicTacToe:
		game := tictactoe.New(false, domain.Medium, now)
		game.Players = players
		return create(u, u.tictactoe, game), nil
	case domain.Morris:
		game := morris.New(false, domain.Medium, now)
		game.Players = players
		return create(u, u.morris, game), nil
	case domain.Chess:
		game := chess.New(now)
		game.Players = players
		return create(u, u.chess, game), nil
	}
	return domain.Snapshot{}, unknownKind(kind)
}

func create[G state[G]](u *useCase, store *session.Store[G], game G) domain.Snapshot {
	view := game.Clone()
	gameUuid := store.Create(game)
	u.logger.Info("game created",
		zap.String("kind", string(store.Kind())),
		zap.String("game uuid", gameUuid),
		zap.Bool("online", game.Metadata().Online()),
	)
	return snapshotOf(store.Kind(), gameUuid, view, nil)
}

func (u *useCase) Get(_ context.Context, kind domain.Kind, gameUuid string) (domain.Snapshot, error) {
	switch kind {
	case domain.TicTacToe:
		return get(u.tictactoe, gameUuid)
	case domain.Morris:
		return get(u.morris, gameUuid)
	case domain.Chess:
		return get(u.chess, gameUuid)
	}
	return domain.Snapshot{}, unknownKind(kind)
}

func get[G state[G]](store *session.Store[G], gameUuid string) (domain.Snapshot, error) {
	game, err := store.Get(gameUuid)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return snapshotOf(store.Kind(), gameUuid, game, nil), nil
}

func snapshotOf[G state[G]](kind domain.Kind, gameUuid string, game G, destinations []int) domain.Snapshot {
	return domain.Snapshot{
		GameUuid:          gameUuid,
		Kind:              kind,
		Game:              game,
		Winner:            game.Outcome(),
		LegalDestinations: destinations,
	}
}

// mutate runs op under the session's lock. An accepted op is published to
// the participants of an online game and a finished game is removed.
func mutate[G state[G]](u *useCase, store *session.Store[G], gameUuid string,
	op func(game G) ([]int, error)) (domain.Snapshot, error) {
	var snapshot domain.Snapshot
	err := store.Update(gameUuid, func(game G) (bool, error) {
		destinations, err := op(game)
		if err != nil {
			return false, err
		}
		snapshot = snapshotOf(store.Kind(), gameUuid, game.Clone(), destinations)
		u.publish(game.Metadata(), snapshot)
		if !game.Finished() {
			return false, nil
		}
		u.logger.Info("game finished",
			zap.String("kind", string(store.Kind())),
			zap.String("game uuid", gameUuid),
			zap.String("winner", string(game.Outcome())),
		)
		return true, nil
	})
	if err != nil {
		return domain.Snapshot{}, err
	}
	return snapshot, nil
}

func (u *useCase) Apply(_ context.Context, req domain.ActionRequest) (domain.Snapshot, error) {
	switch req.Kind {
	case domain.TicTacToe:
		return u.applyTicTacToe(req)
	case domain.Morris:
		return u.applyMorris(req)
	case domain.Chess:
		return u.applyChess(req)
	}
	return domain.Snapshot{}, unknownKind(req.Kind)
}

func (u *useCase) applyTicTacToe(req domain.ActionRequest) (domain.Snapshot, error) {
	if req.Type != "" && req.Type != domain.MoveAction {
		return domain.Snapshot{}, errors.WithMessagef(errUnsupportedAction, "'%s' in tictactoe", req.Type)
	}
	position, err := point(req.Position)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return mutate(u, u.tictactoe, req.GameUuid, func(game *tictactoe.State) ([]int, error) {
		marker, err := actingCell(&game.Meta, req, game.CurrentPlayer)
		if err != nil {
			return nil, err
		}
		return nil, tictactoe.Play(game, position, marker, u.tictactoeBot, u.now())
	})
}

func (u *useCase) applyMorris(req domain.ActionRequest) (domain.Snapshot, error) {
	return mutate(u, u.morris, req.GameUuid, func(game *morris.State) ([]int, error) {
		marker, err := actingCell(&game.Meta, req, game.CurrentPlayer)
		if err != nil {
			return nil, err
		}
		now := u.now()
		switch action := morrisAction(req, game.Phase); action {
		case domain.PlaceAction:
			position, err := point(req.Position)
			if err != nil {
				return nil, err
			}
			return nil, morris.Place(game, position, marker, u.morrisBot, now)
		case domain.SelectAction:
			position, err := point(req.Position)
			if err != nil {
				return nil, err
			}
			return morris.Select(game, position, marker, now)
		case domain.MoveAction:
			from, to, err := slideOf(game, req)
			if err != nil {
				return nil, err
			}
			return nil, morris.Slide(game, from, to, marker, u.morrisBot, now)
		default:
			return nil, errors.WithMessagef(errUnsupportedAction, "'%s' in morris", action)
		}
	})
}

// morrisAction fills in the action a client left out: a placement while
// placing, otherwise a move when a destination is given and a selection if not.
func morrisAction(req domain.ActionRequest, phase morris.Phase) domain.ActionType {
	switch {
	case req.Type != "":
		return req.Type
	case phase == morris.Placing:
		return domain.PlaceAction
	case req.To != nil:
		return domain.MoveAction
	default:
		return domain.SelectAction
	}
}

// slideOf resolves a slide; a missing source falls back to the selected piece
// and the destination may come as a plain position.
func slideOf(game *morris.State, req domain.ActionRequest) (int, int, error) {
	var (
		from int
		err  error
	)
	switch {
	case req.From != nil:
		if from, err = squarePoint(req.From); err != nil {
			return 0, 0, err
		}
	case game.SelectedPiece != nil:
		from = *game.SelectedPiece
	default:
		return 0, 0, errors.WithMessage(errMissingSquare, "no piece selected")
	}
	if req.To == nil && req.Position != nil {
		return from, *req.Position, nil
	}
	to, err := squarePoint(req.To)
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

func (u *useCase) applyChess(req domain.ActionRequest) (domain.Snapshot, error) {
	if req.Type != "" && req.Type != domain.MoveAction {
		return domain.Snapshot{}, errors.WithMessagef(errUnsupportedAction, "'%s' in chess", req.Type)
	}
	if req.From == nil || req.To == nil {
		return domain.Snapshot{}, errMissingSquare
	}
	from, err := chess.ParsePosition(req.From)
	if err != nil {
		return domain.Snapshot{}, err
	}
	to, err := chess.ParsePosition(req.To)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return mutate(u, u.chess, req.GameUuid, func(game *chess.State) ([]int, error) {
		player, err := actingMarker(&game.Meta, req, game.CurrentPlayer.String())
		if err != nil {
			return nil, err
		}
		color, err := chess.ParseColor(player)
		if err != nil {
			return nil, err
		}
		return nil, game.MakeMove(from, to, color, u.now())
	})
}

// actingMarker resolves who is acting. Online games only trust the client
// id; local games take the requested side or the side to move.
func actingMarker(meta *domain.Meta, req domain.ActionRequest, current string) (string, error) {
	if meta.Online() {
		marker, ok := meta.MarkerOf(req.ClientUuid)
		if !ok {
			return "", errors.WithMessagef(errNotParticipant, "client '%s'", req.ClientUuid)
		}
		return marker, nil
	}
	if req.Player == "" {
		return current, nil
	}
	return req.Player, nil
}

func actingCell(meta *domain.Meta, req domain.ActionRequest, current domain.Cell) (domain.Cell, error) {
	marker, err := actingMarker(meta, req, current.String())
	if err != nil {
		return domain.None, err
	}
	return domain.ParseMarker(marker)
}

func point(position *int) (int, error) {
	if position == nil {
		return 0, errMissingPosition
	}
	return *position, nil
}

func squarePoint(sq *domain.Square) (int, error) {
	switch {
	case sq == nil:
		return 0, errMissingSquare
	case sq.Index == nil:
		return 0, errPointExpected
	}
	return *sq.Index, nil
}

// ComputerMove lets the computer play one turn of a local game.
func (u *useCase) ComputerMove(_ context.Context, kind domain.Kind, gameUuid string) (domain.Snapshot, error) {
	switch kind {
	case domain.TicTacToe:
		return mutate(u, u.tictactoe, gameUuid, func(game *tictactoe.State) ([]int, error) {
			if game.Online() {
				return nil, errOnlineGame
			}
			_, err := game.ComputerMove(u.tictactoeBot, u.now())
			return nil, err
		})
	case domain.Morris:
		return mutate(u, u.morris, gameUuid, func(game *morris.State) ([]int, error) {
			if game.Online() {
				return nil, errOnlineGame
			}
			_, err := game.ComputerMove(u.morrisBot, u.now())
			return nil, err
		})
	case domain.Chess:
		return domain.Snapshot{}, errNoChessComputer
	}
	return domain.Snapshot{}, unknownKind(kind)
}

// Disconnect ends every game clientUuid takes part in. The opponent wins.
func (u *useCase) Disconnect(_ context.Context, clientUuid string) {
	ended := disconnect(u, u.tictactoe, clientUuid) +
		disconnect(u, u.morris, clientUuid) +
		disconnect(u, u.chess, clientUuid)
	if ended > 0 {
		u.logger.Info("ended games of disconnected client",
			zap.String("client uuid", clientUuid),
			zap.Int("games", ended),
		)
	}
}

func disconnect[G state[G]](u *useCase, store *session.Store[G], clientUuid string) int {
	ended := 0
	for _, gameUuid := range store.FindByParticipant(clientUuid) {
		game, ok := store.Delete(gameUuid)
		if !ok {
			/* already ended by the other side or the reaper */
			continue
		}
		ended++
		var (
			winner    domain.Result
			remaining []string
		)
		for marker, participant := range game.Metadata().Players {
			if participant != clientUuid {
				winner = domain.Result(marker)
				remaining = append(remaining, participant)
			}
		}
		u.broadcast(remaining, domain.Message{
			Type: domain.GameEnded,
			Payload: domain.GameEndedPayload{
				GameUuid: gameUuid,
				Kind:     store.Kind(),
				Winner:   winner,
				Reason:   domain.Disconnected,
			},
		})
	}
	return ended
}

// EndIdle removes the games untouched since deadline and reports how many
// were removed.
func (u *useCase) EndIdle(_ context.Context, deadline time.Time) int {
	return endIdle(u, u.tictactoe, deadline) +
		endIdle(u, u.morris, deadline) +
		endIdle(u, u.chess, deadline)
}

func endIdle[G state[G]](u *useCase, store *session.Store[G], deadline time.Time) int {
	ended := 0
	for _, gameUuid := range store.IdleSince(deadline) {
		game, ok := store.DeleteIf(gameUuid, func(game G) bool {
			return game.Metadata().LastActivity.Before(deadline)
		})
		if !ok {
			continue
		}
		ended++
		u.logger.Info("idle game removed",
			zap.String("kind", string(store.Kind())),
			zap.String("game uuid", gameUuid),
		)
		u.broadcast(game.Metadata().Participants(), domain.Message{
			Type: domain.GameEnded,
			Payload: domain.GameEndedPayload{
				GameUuid: gameUuid,
				Kind:     store.Kind(),
				Reason:   domain.Inactivity,
			},
		})
	}
	return ended
}
