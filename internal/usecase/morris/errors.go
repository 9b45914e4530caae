package morris

import (
	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/pkg/errors"
)

var (
	errGameFinished    = errors.WithMessage(domain.ErrInvalidMove, "game is already finished")
	errNotYourTurn     = errors.WithMessage(domain.ErrInvalidMove, "it's not your turn")
	errHumanTurn       = errors.WithMessage(domain.ErrInvalidMove, "it's the player's turn, not the computer's")
	errWrongPhase      = errors.WithMessage(domain.ErrInvalidMove, "not allowed in the current phase")
	errInvalidPosition = errors.WithMessage(domain.ErrInvalidMove, "invalid position")
	errCellOccupied    = errors.WithMessage(domain.ErrInvalidMove, "position is occupied")
	errNoPiecesLeft    = errors.WithMessage(domain.ErrInvalidMove, "all pieces are already placed")
	errNotYourPiece    = errors.WithMessage(domain.ErrInvalidMove, "not current player's piece")
	errNoDestinations  = errors.WithMessage(domain.ErrInvalidMove, "no valid moves for selected piece")
	errNotAdjacent     = errors.WithMessage(domain.ErrInvalidMove, "positions are not adjacent")
	errNoLegalMoves    = errors.WithMessage(domain.ErrIllegalState, "computer has no legal move")
)
