package tictactoe

import (
	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/pkg/errors"
)

var (
	errGameFinished    = errors.WithMessage(domain.ErrInvalidMove, "game is already finished")
	errInvalidPosition = errors.WithMessage(domain.ErrInvalidMove, "invalid cell position")
	errNotYourTurn     = errors.WithMessage(domain.ErrInvalidMove, "it's not your turn")
	errHumanTurn       = errors.WithMessage(domain.ErrInvalidMove, "it's the player's turn, not the computer's")
	errCellOccupied    = errors.WithMessage(domain.ErrInvalidMove, "cell is already occupied")
	errNoFreeCells     = errors.WithMessage(domain.ErrIllegalState, "no free cells left for the computer")
)
