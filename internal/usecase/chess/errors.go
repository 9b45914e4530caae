package chess

import (
	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/pkg/errors"
)

var (
	errGameFinished  = errors.WithMessage(domain.ErrInvalidMove, "game is already finished")
	errInvalidSquare = errors.WithMessage(domain.ErrInvalidMove, "invalid square")
	errNotYourTurn   = errors.WithMessage(domain.ErrInvalidMove, "it's not your turn")
	errNotYourPiece  = errors.WithMessage(domain.ErrInvalidMove, "no piece of yours on the source square")
	errBlockedSquare = errors.WithMessage(domain.ErrInvalidMove, "destination holds your own piece")
	errUnknownColor  = errors.WithMessage(domain.ErrInvalidMove, "unknown color")
)
