package tictactoe

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func boardOf(cells string) domain.Board {
	var board domain.Board
	for i, c := range cells {
		switch c {
		case 'X':
			board[i] = domain.X
		case 'O':
			board[i] = domain.O
		default:
			board[i] = domain.None
		}
	}
	return board
}

func TestNew(t *testing.T) {
	state := New(true, domain.Hard, now)

	require.Equal(t, domain.EmptyBoard(), state.Board)
	require.Equal(t, domain.X, state.CurrentPlayer)
	require.Equal(t, domain.NoResult, state.Winner)
	require.True(t, state.VsComputer)
	require.Equal(t, domain.Hard, state.Difficulty)
	require.Equal(t, now, state.CreatedAt)
	require.Equal(t, now, state.LastActivity)
}

func TestCheckWinner(t *testing.T) {
	t.Run("every board", func(t *testing.T) {
		// Given: every possible assignment of the nine cells
		for code := 0; code < 19683; code++ {
			var board domain.Board
			n := code
			for i := range board {
				board[i] = [3]domain.Cell{domain.None, domain.X, domain.O}[n%3]
				n /= 3
			}

			// When: checking the winner
			result := CheckWinner(board)

			// Then: a marker is reported iff one of its lines is complete
			lineOwner := domain.None
			for _, line := range domain.WinConditions {
				a, b, c := board[line[0]], board[line[1]], board[line[2]]
				if a != domain.None && a == b && b == c {
					lineOwner = a
					break
				}
			}
			switch {
			case lineOwner != domain.None:
				require.Equal(t, domain.ResultOf(lineOwner), result, "board %v", board)
			case board.IsFull():
				require.Equal(t, domain.Draw, result, "board %v", board)
			default:
				require.Equal(t, domain.NoResult, result, "board %v", board)
			}
		}
	})

	t.Run("diagonal", func(t *testing.T) {
		assert.Equal(t, domain.Result("O"), CheckWinner(boardOf("OX XO  XO")))
	})

	t.Run("draw", func(t *testing.T) {
		assert.Equal(t, domain.Draw, CheckWinner(boardOf("XOXXOOOXX")))
	})
}

func TestState_MakeMove(t *testing.T) {
	t.Run("no winner until a full line", func(t *testing.T) {
		// Given: an empty board
		state := New(false, domain.Medium, now)

		// When: X center, O corner, X opposite corner, O edge, X corner
		require.NoError(t, state.MakeMove(4, domain.X, now))
		require.NoError(t, state.MakeMove(0, domain.O, now))
		require.NoError(t, state.MakeMove(8, domain.X, now))
		require.Equal(t, domain.NoResult, state.Winner)
		require.NoError(t, state.MakeMove(1, domain.O, now))
		require.NoError(t, state.MakeMove(2, domain.X, now))

		// Then: 6 is still open and nobody has won
		require.Equal(t, domain.None, state.Board[6])
		require.Equal(t, domain.NoResult, state.Winner)
		require.Equal(t, domain.NoResult, CheckWinner(state.Board))
		require.Equal(t, domain.O, state.CurrentPlayer)
	})

	t.Run("top row wins", func(t *testing.T) {
		// Given: X X _ / O O _ / _ _ _ with X to move
		state := New(false, domain.Medium, now)
		state.Board = boardOf("XX OO    ")

		// When: X completes the top row
		err := state.MakeMove(2, domain.X, now.Add(time.Minute))

		// Then: X is the winner and the turn is frozen
		require.NoError(t, err)
		require.Equal(t, domain.Result("X"), state.Winner)
		require.Equal(t, domain.X, state.CurrentPlayer)
		require.Equal(t, now.Add(time.Minute), state.LastActivity)
	})

	t.Run("rejected moves leave the state untouched", func(t *testing.T) {
		state := New(false, domain.Medium, now)
		require.NoError(t, state.MakeMove(0, domain.X, now))
		before := *state

		later := now.Add(time.Hour)
		require.ErrorIs(t, state.MakeMove(0, domain.O, later), errCellOccupied)
		require.ErrorIs(t, state.MakeMove(1, domain.X, later), errNotYourTurn)
		require.ErrorIs(t, state.MakeMove(9, domain.O, later), errInvalidPosition)
		require.ErrorIs(t, state.MakeMove(-1, domain.O, later), domain.ErrInvalidMove)

		require.Equal(t, before, *state)
	})

	t.Run("move after the game finished", func(t *testing.T) {
		state := New(false, domain.Medium, now)
		state.Board = boardOf("XXXOO    ")
		state.Winner = domain.Result("X")
		state.CurrentPlayer = domain.O

		err := state.MakeMove(5, domain.O, now)

		require.ErrorIs(t, err, errGameFinished)
		require.ErrorIs(t, err, domain.ErrInvalidMove)
	})

	t.Run("turns alternate on random playouts", func(t *testing.T) {
		rnd := rand.New(rand.NewPCG(7, 11))
		for game := 0; game < 200; game++ {
			state := New(false, domain.Medium, now)
			for !state.Finished() {
				position := rnd.IntN(boardSize)
				player := state.CurrentPlayer
				before := *state
				err := state.MakeMove(position, player, now)
				if err != nil {
					require.Equal(t, before, *state)
					continue
				}
				if !state.Finished() {
					require.Equal(t, player.Opponent(), state.CurrentPlayer)
				}
			}
		}
	})
}

func TestPlay(t *testing.T) {
	t.Run("computer answers right away", func(t *testing.T) {
		// Given: a game against the hard computer
		state := New(true, domain.Hard, now)
		bot := NewBot(rand.New(rand.NewPCG(1, 2)))

		// When: X takes a corner
		err := Play(state, 0, domain.X, bot, now)

		// Then: the computer has taken the center and it's X's turn again
		require.NoError(t, err)
		require.Equal(t, domain.O, state.Board[center])
		require.Equal(t, domain.X, state.CurrentPlayer)
	})

	t.Run("default computer blocks a line", func(t *testing.T) {
		// Given: a medium game where X holds 0 and O the center
		state := New(true, "", now)
		state.Board = boardOf("X   O    ")

		// When: X threatens the left column
		err := Play(state, 3, domain.X, NewBot(firstRand{}), now)

		// Then: the computer closes it
		require.NoError(t, err)
		require.Equal(t, domain.O, state.Board[6])
		require.Equal(t, domain.NoResult, state.Winner)
	})

	t.Run("no answer after a winning move", func(t *testing.T) {
		state := New(true, domain.Hard, now)
		state.Board = boardOf("XX OO    ")
		bot := NewBot(rand.New(rand.NewPCG(1, 2)))

		require.NoError(t, Play(state, 2, domain.X, bot, now))

		require.Equal(t, domain.Result("X"), state.Winner)
		require.Len(t, state.Board.EmptyCells(), 4)
	})

	t.Run("human can't play the computer's marker", func(t *testing.T) {
		state := New(true, domain.Medium, now)
		state.CurrentPlayer = domain.O

		require.ErrorIs(t, Play(state, 0, domain.O, NewBot(nil), now), errNotYourTurn)
	})

	t.Run("local game has no computer", func(t *testing.T) {
		state := New(false, domain.Medium, now)

		require.NoError(t, Play(state, 0, domain.X, NewBot(nil), now))

		require.Len(t, state.Board.EmptyCells(), 8)
		require.Equal(t, domain.O, state.CurrentPlayer)
	})
}
