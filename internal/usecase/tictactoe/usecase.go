package tictactoe

import (
	"time"

	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/pkg/errors"
)

const (
	boardSize      = 9
	computerMarker = domain.O
)

type State struct {
	Board         domain.Board  `json:"board"`
	CurrentPlayer domain.Cell   `json:"currentPlayer"`
	Winner        domain.Result `json:"winner"`
	domain.Meta
}

func New(vsComputer bool, difficulty domain.Difficulty, now time.Time) *State {
	return &State{
		Board:         domain.EmptyBoard(),
		CurrentPlayer: domain.X,
		Meta:          domain.NewMeta(vsComputer, difficulty, now),
	}
}

func (s *State) Clone() *State {
	clone := *s
	clone.Meta = s.Meta.Clone()
	return &clone
}

func (s *State) Finished() bool {
	return s.Winner != domain.NoResult
}

func (s *State) Outcome() domain.Result {
	return s.Winner
}

// CheckWinner returns the marker of a completed line, Draw for a full
// board without one, and NoResult otherwise.
func CheckWinner(board domain.Board) domain.Result {
	if winner := domain.TripleWinner(board); winner != domain.None {
		return domain.ResultOf(winner)
	}
	if board.IsFull() {
		return domain.Draw
	}
	return domain.NoResult
}

func (s *State) validateMove(position int, player domain.Cell) error {
	switch {
	case s.Finished():
		return errors.WithMessage(errGameFinished, "validate move")
	case position < 0 || position >= boardSize:
		return errors.WithMessagef(errInvalidPosition, "position '%d'", position)
	case player != s.CurrentPlayer:
		return errors.WithMessagef(errNotYourTurn, "player '%s'", player)
	case s.Board[position] != domain.None:
		return errors.WithMessagef(errCellOccupied, "position '%d'", position)
	}
	return nil
}

// MakeMove places player's marker. A rejected move leaves the state untouched.
func (s *State) MakeMove(position int, player domain.Cell, now time.Time) error {
	if err := s.validateMove(position, player); err != nil {
		return err
	}
	s.Board[position] = player
	s.Winner = CheckWinner(s.Board)
	if !s.Finished() {
		s.CurrentPlayer = player.Opponent()
	}
	s.Touch(now)
	return nil
}

// ComputerMove lets the bot play for the current player. In a game against
// the computer it only ever plays O.
func (s *State) ComputerMove(bot *Bot, now time.Time) (int, error) {
	switch {
	case s.Finished():
		return 0, errors.WithMessage(errGameFinished, "computer move")
	case s.VsComputer && s.CurrentPlayer != computerMarker:
		return 0, errors.WithMessage(errHumanTurn, "computer move")
	}
	position, err := bot.SelectMove(s.Board, s.CurrentPlayer, s.Difficulty)
	if err != nil {
		return 0, errors.WithMessage(err, "select computer move")
	}
	if err := s.MakeMove(position, s.CurrentPlayer, now); err != nil {
		return 0, errors.WithMessagef(domain.ErrIllegalState, "computer picked a rejected move: %v", err)
	}
	return position, nil
}

// Play applies the player's move and, in a game against the computer,
// answers it right away when the turn passes to the computer.
func Play(s *State, position int, player domain.Cell, bot *Bot, now time.Time) error {
	if s.VsComputer && player == computerMarker {
		return errors.WithMessage(errNotYourTurn, "the computer plays O")
	}
	if err := s.MakeMove(position, player, now); err != nil {
		return err
	}
	if s.VsComputer && !s.Finished() && s.CurrentPlayer == computerMarker {
		if _, err := s.ComputerMove(bot, now); err != nil {
			return err
		}
	}
	return nil
}
