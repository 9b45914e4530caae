package tictactoe

import (
	"github.com/kiryu-dev/board-games/internal/domain"
)

const center = 4

var corners = []int{0, 2, 6, 8}

// Bot is the computer opponent. Rules are tried in order and the first
// one that applies wins: complete a line, block the opponent's line,
// take the center, take a random corner, play anywhere. Easy plays anywhere.
type Bot struct {
	rnd domain.Rand
}

func NewBot(rnd domain.Rand) *Bot {
	if rnd == nil {
		rnd = domain.DefaultRand
	}
	return &Bot{rnd: rnd}
}

func (b *Bot) SelectMove(board domain.Board, player domain.Cell, difficulty domain.Difficulty) (int, error) {
	free := board.EmptyCells()
	if len(free) == 0 {
		return 0, errNoFreeCells
	}
	if difficulty == domain.Easy {
		return domain.Pick(b.rnd, free), nil
	}
	if position, ok := CompletingCell(board, player); ok {
		return position, nil
	}
	if position, ok := CompletingCell(board, player.Opponent()); ok {
		return position, nil
	}
	if position, ok := PreferredCell(b.rnd, board); ok {
		return position, nil
	}
	return domain.Pick(b.rnd, free), nil
}

// CompletingCell finds an empty cell that gives player a full line.
func CompletingCell(board domain.Board, player domain.Cell) (int, bool) {
	for _, position := range board.EmptyCells() {
		board[position] = player
		won := domain.TripleWinner(board) == player
		board[position] = domain.None
		if won {
			return position, true
		}
	}
	return 0, false
}

// PreferredCell returns the center when it's free, otherwise a random free corner.
func PreferredCell(rnd domain.Rand, board domain.Board) (int, bool) {
	if board[center] == domain.None {
		return center, true
	}
	free := make([]int, 0, len(corners))
	for _, corner := range corners {
		if board[corner] == domain.None {
			free = append(free, corner)
		}
	}
	if len(free) == 0 {
		return 0, false
	}
	return domain.Pick(rnd, free), true
}
