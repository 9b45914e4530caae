package game

import (
	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/pkg/errors"
)

var (
	errUnsupportedAction = errors.WithMessage(domain.ErrBadRequest, "unsupported action")
	errMissingPosition   = errors.WithMessage(domain.ErrBadRequest, "position is required")
	errMissingSquare     = errors.WithMessage(domain.ErrBadRequest, "from and to are required")
	errPointExpected     = errors.WithMessage(domain.ErrBadRequest, "square must be a point index 0-8")
	errNotParticipant    = errors.WithMessage(domain.ErrInvalidMove, "you are not playing this game")
	errOnlineGame        = errors.WithMessage(domain.ErrBadRequest, "the computer doesn't play online games")
	errNoChessComputer   = errors.WithMessage(domain.ErrBadRequest, "chess has no computer opponent")
)
