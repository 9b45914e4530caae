package morris

import (
	"time"

	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/kiryu-dev/board-games/internal/usecase/tictactoe"
	"github.com/pkg/errors"
)

const center = 4

var corners = []int{0, 2, 6, 8}

type Bot struct {
	rnd domain.Rand
}

func NewBot(rnd domain.Rand) *Bot {
	if rnd == nil {
		rnd = domain.DefaultRand
	}
	return &Bot{rnd: rnd}
}

// SelectPlacement picks a point for the next piece. It follows the same
// ladder as the tic-tac-toe computer.
func (b *Bot) SelectPlacement(board domain.Board, player domain.Cell, difficulty domain.Difficulty) (int, error) {
	free := board.EmptyCells()
	if len(free) == 0 {
		return 0, errors.WithMessage(errNoLegalMoves, "board is full")
	}
	if difficulty == domain.Easy {
		return domain.Pick(b.rnd, free), nil
	}
	if position, ok := tictactoe.CompletingCell(board, player); ok {
		return position, nil
	}
	if difficulty == domain.Hard {
		if position, ok := tictactoe.CompletingCell(board, player.Opponent()); ok {
			return position, nil
		}
	}
	if position, ok := tictactoe.PreferredCell(b.rnd, board); ok {
		return position, nil
	}
	return domain.Pick(b.rnd, free), nil
}

// SelectMove picks a slide in the moving phase.
func (b *Bot) SelectMove(board domain.Board, player domain.Cell, difficulty domain.Difficulty) (Move, error) {
	moves := LegalMoves(board, player)
	if len(moves) == 0 {
		return Move{}, errNoLegalMoves
	}
	if difficulty == domain.Easy {
		return domain.Pick(b.rnd, moves), nil
	}
	if move, ok := winningMove(board, player, moves); ok {
		return move, nil
	}
	if difficulty == domain.Hard {
		if move, ok := blockingMove(board, player, moves); ok {
			return move, nil
		}
	}
	if move, ok := b.positionalMove(moves); ok {
		return move, nil
	}
	return domain.Pick(b.rnd, moves), nil
}

func winningMove(board domain.Board, player domain.Cell, moves []Move) (Move, bool) {
	for _, move := range moves {
		board[move.To], board[move.From] = player, domain.None
		won := domain.TripleWinner(board) == player
		board[move.To], board[move.From] = domain.None, player
		if won {
			return move, true
		}
	}
	return Move{}, false
}

// blockingMove occupies the point that would complete one of the
// opponent's lines, as long as moving there doesn't open another one.
// It only looks at the point itself, not at every reply the opponent has.
func blockingMove(board domain.Board, player domain.Cell, moves []Move) (Move, bool) {
	opponent := player.Opponent()
	threat, ok := tictactoe.CompletingCell(board, opponent)
	if !ok {
		return Move{}, false
	}
	for _, move := range moves {
		if move.To != threat {
			continue
		}
		board[move.To], board[move.From] = player, domain.None
		_, stillThreat := tictactoe.CompletingCell(board, opponent)
		board[move.To], board[move.From] = domain.None, player
		if !stillThreat {
			return move, true
		}
	}
	return Move{}, false
}

func (b *Bot) positionalMove(moves []Move) (Move, bool) {
	for _, move := range moves {
		if move.To == center {
			return move, true
		}
	}
	var toCorner []Move
	for _, move := range moves {
		for _, corner := range corners {
			if move.To == corner {
				toCorner = append(toCorner, move)
			}
		}
	}
	if len(toCorner) == 0 {
		return Move{}, false
	}
	return domain.Pick(b.rnd, toCorner), true
}

// ComputerMove plays one turn for the current player, placing or sliding
// depending on the phase. It returns the destination point and, for a
// slide, the point the piece left.
func (s *State) ComputerMove(bot *Bot, now time.Time) (Move, error) {
	switch {
	case s.Finished():
		return Move{}, errors.WithMessage(errGameFinished, "computer move")
	case s.VsComputer && s.CurrentPlayer != computerMarker:
		return Move{}, errors.WithMessage(errHumanTurn, "computer move")
	}
	player := s.CurrentPlayer
	if s.Phase == Placing {
		position, err := bot.SelectPlacement(s.Board, player, s.Difficulty)
		if err != nil {
			return Move{}, errors.WithMessage(err, "select placement")
		}
		if err := s.PlacePiece(position, player, now); err != nil {
			return Move{}, errors.WithMessagef(domain.ErrIllegalState, "computer placement rejected: %v", err)
		}
		return Move{From: -1, To: position}, nil
	}
	move, err := bot.SelectMove(s.Board, player, s.Difficulty)
	if err != nil {
		return Move{}, errors.WithMessage(err, "select move")
	}
	if err := s.MovePiece(move.From, move.To, player, now); err != nil {
		return Move{}, errors.WithMessagef(domain.ErrIllegalState, "computer move rejected: %v", err)
	}
	return move, nil
}

// Place applies a human placement and lets the computer answer it in a
// game against the computer.
func Place(s *State, position int, player domain.Cell, bot *Bot, now time.Time) error {
	if err := guardHuman(s, player); err != nil {
		return err
	}
	if err := s.PlacePiece(position, player, now); err != nil {
		return err
	}
	return answer(s, bot, now)
}

// Slide is Place for the moving phase.
func Slide(s *State, from, to int, player domain.Cell, bot *Bot, now time.Time) error {
	if err := guardHuman(s, player); err != nil {
		return err
	}
	if err := s.MovePiece(from, to, player, now); err != nil {
		return err
	}
	return answer(s, bot, now)
}

// Select picks a piece to slide on behalf of a human player.
func Select(s *State, position int, player domain.Cell, now time.Time) ([]int, error) {
	if err := guardHuman(s, player); err != nil {
		return nil, err
	}
	return s.SelectPiece(position, player, now)
}

func guardHuman(s *State, player domain.Cell) error {
	if s.VsComputer && player == computerMarker {
		return errors.WithMessage(errNotYourTurn, "the computer plays O")
	}
	return nil
}

func answer(s *State, bot *Bot, now time.Time) error {
	if !s.VsComputer || s.Finished() || s.CurrentPlayer != computerMarker {
		return nil
	}
	_, err := s.ComputerMove(bot, now)
	return err
}
