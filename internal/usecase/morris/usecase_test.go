package morris

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

func movingState(cells string, current domain.Cell) *State {
	state := New(false, domain.Medium, now)
	state.Board = boardOf(cells)
	state.Phase = Moving
	state.PiecesPlaced = PiecesPlaced{X: piecesPerPlayer, O: piecesPerPlayer}
	state.CurrentPlayer = current
	return state
}

func TestAdjacency(t *testing.T) {
	t.Run("symmetric", func(t *testing.T) {
		for a, neighbours := range Adjacency {
			for _, b := range neighbours {
				assert.True(t, IsAdjacent(b, a), "%d -> %d", b, a)
			}
		}
	})

	t.Run("every edge is a legal move", func(t *testing.T) {
		for a, neighbours := range Adjacency {
			for _, b := range neighbours {
				// Given: X owns a, b is empty and it's X's turn
				cells := []byte("         ")
				cells[a] = 'X'
				state := movingState(string(cells), domain.X)

				// When: X slides a -> b
				err := state.MovePiece(a, b, domain.X, now)

				// Then: the move is accepted
				require.NoError(t, err, "%d -> %d", a, b)
				require.Equal(t, domain.X, state.Board[b])
				require.Equal(t, domain.None, state.Board[a])
			}
		}
	})

	t.Run("no diagonal through the center", func(t *testing.T) {
		assert.False(t, IsAdjacent(0, 4))
		assert.False(t, IsAdjacent(4, 8))
		assert.False(t, IsAdjacent(2, 6))
	})
}

func TestCheckWinner(t *testing.T) {
	assert.Equal(t, domain.Result("X"), CheckWinner(boardOf("X  X  X  ")))
	assert.Equal(t, domain.Result("O"), CheckWinner(boardOf("  O O O  ")))
	assert.Equal(t, domain.NoResult, CheckWinner(boardOf("XOXXOOOXX")))
}

func TestState_PlacePiece(t *testing.T) {
	t.Run("winning column during placement", func(t *testing.T) {
		// Given: a new game
		state := New(false, domain.Medium, now)

		// When: X places 0, 3, 6 while O places 1 and 2
		require.NoError(t, state.PlacePiece(0, domain.X, now))
		require.NoError(t, state.PlacePiece(1, domain.O, now))
		require.NoError(t, state.PlacePiece(3, domain.X, now))
		require.NoError(t, state.PlacePiece(2, domain.O, now))
		require.NoError(t, state.PlacePiece(6, domain.X, now))

		// Then: X wins and the game never reaches the moving phase
		require.Equal(t, domain.Result("X"), state.Winner)
		require.Equal(t, Placing, state.Phase)
		require.Equal(t, PiecesPlaced{X: 3, O: 2}, state.PiecesPlaced)
		require.ErrorIs(t, state.PlacePiece(4, domain.O, now), errGameFinished)
	})

	t.Run("phase switches after the sixth piece", func(t *testing.T) {
		state := New(false, domain.Medium, now)
		for i, position := range []int{0, 1, 2, 4, 3, 5} {
			require.Equal(t, Placing, state.Phase, "placement %d", i)
			require.NoError(t, state.PlacePiece(position, state.CurrentPlayer, now))
		}

		require.Equal(t, Moving, state.Phase)
		require.Equal(t, domain.X, state.CurrentPlayer)
		require.Equal(t, domain.NoResult, state.Winner)
		require.ErrorIs(t, state.PlacePiece(6, domain.X, now), errWrongPhase)
	})

	t.Run("rejections", func(t *testing.T) {
		state := New(false, domain.Medium, now)
		require.NoError(t, state.PlacePiece(4, domain.X, now))
		before := *state

		later := now.Add(time.Minute)
		require.ErrorIs(t, state.PlacePiece(4, domain.O, later), errCellOccupied)
		require.ErrorIs(t, state.PlacePiece(0, domain.X, later), errNotYourTurn)
		require.ErrorIs(t, state.PlacePiece(9, domain.O, later), errInvalidPosition)
		_, err := state.SelectPiece(4, domain.O, later)
		require.ErrorIs(t, err, domain.ErrInvalidMove)
		require.ErrorIs(t, state.MovePiece(4, 1, domain.O, later), errWrongPhase)

		require.Equal(t, before, *state)
	})

	t.Run("phase transition fires exactly once", func(t *testing.T) {
		rnd := rand.New(rand.NewPCG(5, 8))
		for game := 0; game < 200; game++ {
			state := New(false, domain.Medium, now)
			transitions := 0
			for turn := 0; turn < 60 && !state.Finished(); turn++ {
				phase := state.Phase
				player := state.CurrentPlayer
				if phase == Placing {
					err := state.PlacePiece(rnd.IntN(boardSize), player, now)
					if err != nil {
						continue
					}
				} else {
					moves := LegalMoves(state.Board, player)
					move := moves[rnd.IntN(len(moves))]
					require.NoError(t, state.MovePiece(move.From, move.To, player, now))
				}
				if phase != state.Phase {
					transitions++
				}
				bothPlaced := state.PiecesPlaced.X == 3 && state.PiecesPlaced.O == 3
				require.Equal(t, bothPlaced, state.Phase == Moving)
				require.LessOrEqual(t, state.PiecesPlaced.X+state.PiecesPlaced.O, 6)
				if !state.Finished() {
					require.Equal(t, player.Opponent(), state.CurrentPlayer)
				}
			}
			require.LessOrEqual(t, transitions, 1)
		}
	})
}

func TestState_SelectPiece(t *testing.T) {
	t.Run("returns destinations", func(t *testing.T) {
		state := movingState("XO  X O X", domain.X)

		destinations, err := state.SelectPiece(4, domain.X, now.Add(time.Second))

		require.NoError(t, err)
		assert.ElementsMatch(t, []int{3, 5, 7}, destinations)
		require.NotNil(t, state.SelectedPiece)
		assert.Equal(t, 4, *state.SelectedPiece)
		assert.Equal(t, now.Add(time.Second), state.LastActivity)
	})

	t.Run("blocked piece", func(t *testing.T) {
		state := movingState("XO O  X  ", domain.X)

		_, err := state.SelectPiece(0, domain.X, now)

		require.ErrorIs(t, err, errNoDestinations)
		require.Nil(t, state.SelectedPiece)
	})

	t.Run("opponent's piece", func(t *testing.T) {
		state := movingState("XO  X O X", domain.X)

		_, err := state.SelectPiece(1, domain.X, now)

		require.ErrorIs(t, err, errNotYourPiece)
	})
}

func TestState_MovePiece(t *testing.T) {
	t.Run("clears the selection and passes the turn", func(t *testing.T) {
		state := movingState("XO  X O X", domain.X)
		_, err := state.SelectPiece(4, domain.X, now)
		require.NoError(t, err)

		require.NoError(t, state.MovePiece(4, 5, domain.X, now))

		require.Nil(t, state.SelectedPiece)
		require.Equal(t, domain.O, state.CurrentPlayer)
		require.Equal(t, domain.NoResult, state.Winner)
	})

	t.Run("winning slide", func(t *testing.T) {
		state := movingState("XX O XOO ", domain.X)

		require.NoError(t, state.MovePiece(5, 2, domain.X, now))

		require.Equal(t, domain.Result("X"), state.Winner)
		require.Equal(t, domain.X, state.CurrentPlayer)
	})

	t.Run("rejections", func(t *testing.T) {
		state := movingState("XO  X O X", domain.X)
		before := *state

		require.ErrorIs(t, state.MovePiece(4, 0, domain.X, now), errCellOccupied)
		require.ErrorIs(t, state.MovePiece(4, 2, domain.X, now), errNotAdjacent)
		require.ErrorIs(t, state.MovePiece(1, 2, domain.X, now), errNotYourPiece)
		require.ErrorIs(t, state.MovePiece(6, 3, domain.O, now), errNotYourTurn)
		require.ErrorIs(t, state.MovePiece(4, 12, domain.X, now), errInvalidPosition)

		require.Equal(t, before, *state)
	})

	t.Run("stuck player loses", func(t *testing.T) {
		state := movingState("OX X     ", domain.O)

		state.passTurn(domain.X)

		require.Equal(t, domain.Result("X"), state.Winner)
	})
}
