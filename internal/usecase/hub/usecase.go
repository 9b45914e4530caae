package hub

import (
	"context"

	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// useCase pairs online players. Every kind has a single waiting slot holding
// the id of the client waiting for an opponent.
type useCase struct {
	game     domain.GameUseCase
	notifier domain.Notifier
	slots    map[domain.Kind]*atomic.String
	logger   *zap.Logger
}

func New(game domain.GameUseCase, notifier domain.Notifier, logger *zap.Logger) *useCase {
	slots := make(map[domain.Kind]*atomic.String, len(domain.Kinds))
	for _, kind := range domain.Kinds {
		slots[kind] = atomic.NewString("")
	}
	return &useCase{
		game:     game,
		notifier: notifier,
		slots:    slots,
		logger:   logger,
	}
}

func (u *useCase) slot(kind domain.Kind) (*atomic.String, error) {
	slot, ok := u.slots[kind]
	if !ok {
		return nil, errors.WithMessagef(domain.ErrBadRequest, "unknown game kind '%s'", kind)
	}
	return slot, nil
}

// Join queues the client or pairs it with the one already waiting. Both
// players of a new game get game-started through the notifier.
func (u *useCase) Join(ctx context.Context, kind domain.Kind, clientUuid string) (domain.JoinResult, error) {
	slot, err := u.slot(kind)
	if err != nil {
		return domain.JoinResult{}, err
	}
	for {
		switch waiting := slot.Load(); waiting {
		case clientUuid:
			return domain.JoinResult{Waiting: true}, nil
		case "":
			/* told before it's visible in the slot, so 'waiting' never follows 'game-started' */
			u.notify(clientUuid, domain.Message{Type: domain.Waiting, Payload: domain.QueuePayload{Kind: kind}})
			if slot.CompareAndSwap("", clientUuid) {
				u.logger.Info("client is waiting for an opponent",
					zap.String("kind", string(kind)),
					zap.String("client uuid", clientUuid),
				)
				return domain.JoinResult{Waiting: true}, nil
			}
		default:
			if slot.CompareAndSwap(waiting, "") {
				return u.pair(ctx, kind, waiting, clientUuid)
			}
		}
	}
}

func (u *useCase) pair(ctx context.Context, kind domain.Kind, waiting string, clientUuid string) (domain.JoinResult, error) {
	snapshot, err := u.game.CreateOnline(ctx, kind, waiting, clientUuid)
	if err != nil {
		return domain.JoinResult{}, errors.WithMessage(err, "create online game")
	}
	first, second := kind.Markers()
	u.logger.Info("paired players",
		zap.String("kind", string(kind)),
		zap.String("game uuid", snapshot.GameUuid),
		zap.String(first, waiting),
		zap.String(second, clientUuid),
	)
	var gone []string
	for player, mark := range map[string]string{waiting: first, clientUuid: second} {
		err := u.notifier.Notify(player, domain.Message{
			Type: domain.GameStarted,
			Payload: domain.GameStartedPayload{
				GameUuid: snapshot.GameUuid,
				Kind:     kind,
				Mark:     mark,
			},
		})
		if errors.Is(err, domain.ErrClientGone) || errors.Is(err, domain.ErrConnectionClosed) {
			gone = append(gone, player)
		} else if err != nil {
			u.logger.Warn("failed to notify client", zap.String("client uuid", player), zap.Error(err))
		}
	}
	for _, player := range gone {
		u.logger.Info("paired client is gone", zap.String("client uuid", player))
		u.game.Disconnect(ctx, player)
	}
	return domain.JoinResult{
		Game: &domain.GameStartedPayload{
			GameUuid: snapshot.GameUuid,
			Kind:     kind,
			Mark:     second,
		},
	}, nil
}

// Leave takes the client out of the queue if it's still waiting there.
func (u *useCase) Leave(kind domain.Kind, clientUuid string) {
	slot, err := u.slot(kind)
	if err != nil || clientUuid == "" {
		return
	}
	if slot.CompareAndSwap(clientUuid, "") {
		u.logger.Info("client left the queue",
			zap.String("kind", string(kind)),
			zap.String("client uuid", clientUuid),
		)
	}
}

// Disconnect clears every slot the client waits in and ends its games.
func (u *useCase) Disconnect(ctx context.Context, clientUuid string) {
	for _, kind := range domain.Kinds {
		u.Leave(kind, clientUuid)
	}
	u.game.Disconnect(ctx, clientUuid)
}

func (u *useCase) notify(clientUuid string, msg domain.Message) {
	if err := u.notifier.Notify(clientUuid, msg); err != nil {
		u.logger.Warn("failed to notify client",
			zap.String("client uuid", clientUuid),
			zap.String("message type", string(msg.Type)),
			zap.Error(err),
		)
	}
}
