package morris

import (
	"time"

	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/pkg/errors"
)

const (
	boardSize       = 9
	piecesPerPlayer = 3
	computerMarker  = domain.O
)

type Phase string

const (
	Placing = Phase("placing")
	Moving  = Phase("moving")
)

// Adjacency lists where a piece on a point may slide. Only the orthogonal
// lines of the board are edges, the center has no diagonal links.
var Adjacency = [boardSize][]int{
	0: {1, 3},
	1: {0, 2, 4},
	2: {1, 5},
	3: {0, 4, 6},
	4: {1, 3, 5, 7},
	5: {2, 4, 8},
	6: {3, 7},
	7: {4, 6, 8},
	8: {5, 7},
}

type PiecesPlaced struct {
	X int `json:"X"`
	O int `json:"O"`
}

func (p *PiecesPlaced) of(player domain.Cell) *int {
	if player == domain.X {
		return &p.X
	}
	return &p.O
}

type State struct {
	Board         domain.Board  `json:"board"`
	CurrentPlayer domain.Cell   `json:"currentPlayer"`
	Winner        domain.Result `json:"winner"`
	Phase         Phase         `json:"phase"`
	PiecesPlaced  PiecesPlaced  `json:"piecesPlaced"`
	SelectedPiece *int          `json:"selectedPiece"`
	domain.Meta
}

func New(vsComputer bool, difficulty domain.Difficulty, now time.Time) *State {
	return &State{
		Board:         domain.EmptyBoard(),
		CurrentPlayer: domain.X,
		Phase:         Placing,
		Meta:          domain.NewMeta(vsComputer, difficulty, now),
	}
}

func (s *State) Clone() *State {
	clone := *s
	if s.SelectedPiece != nil {
		selected := *s.SelectedPiece
		clone.SelectedPiece = &selected
	}
	clone.Meta = s.Meta.Clone()
	return &clone
}

func (s *State) Finished() bool {
	return s.Winner != domain.NoResult
}

func (s *State) Outcome() domain.Result {
	return s.Winner
}

// CheckWinner reports the owner of a complete line. There is no draw by a
// full board in this game.
func CheckWinner(board domain.Board) domain.Result {
	return domain.ResultOf(domain.TripleWinner(board))
}

func IsAdjacent(from, to int) bool {
	if !onBoard(from) {
		return false
	}
	for _, v := range Adjacency[from] {
		if v == to {
			return true
		}
	}
	return false
}

// LegalDestinations returns the empty points the piece on from can slide to.
func LegalDestinations(board domain.Board, from int) []int {
	if !onBoard(from) {
		return nil
	}
	result := make([]int, 0, len(Adjacency[from]))
	for _, to := range Adjacency[from] {
		if board[to] == domain.None {
			result = append(result, to)
		}
	}
	return result
}

type Move struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// LegalMoves lists every slide available to player.
func LegalMoves(board domain.Board, player domain.Cell) []Move {
	var moves []Move
	for from, cell := range board {
		if cell != player {
			continue
		}
		for _, to := range LegalDestinations(board, from) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func onBoard(position int) bool {
	return position >= 0 && position < boardSize
}

func (s *State) validateTurn(player domain.Cell) error {
	switch {
	case s.Finished():
		return errGameFinished
	case player != s.CurrentPlayer:
		return errors.WithMessagef(errNotYourTurn, "player '%s'", player)
	}
	return nil
}

func (s *State) PlacePiece(position int, player domain.Cell, now time.Time) error {
	if err := s.validateTurn(player); err != nil {
		return err
	}
	switch {
	case s.Phase != Placing:
		return errors.WithMessage(errWrongPhase, "place piece")
	case !onBoard(position):
		return errors.WithMessagef(errInvalidPosition, "position '%d'", position)
	case s.Board[position] != domain.None:
		return errors.WithMessagef(errCellOccupied, "position '%d'", position)
	case *s.PiecesPlaced.of(player) >= piecesPerPlayer:
		return errors.WithMessagef(errNoPiecesLeft, "player '%s'", player)
	}
	s.Board[position] = player
	*s.PiecesPlaced.of(player)++
	s.Touch(now)
	if s.PiecesPlaced.X == piecesPerPlayer && s.PiecesPlaced.O == piecesPerPlayer {
		s.Phase = Moving
	}
	if s.Winner = CheckWinner(s.Board); s.Finished() {
		return nil
	}
	s.passTurn(player)
	return nil
}

// SelectPiece marks the piece on position as the one to move and returns
// where it can go.
func (s *State) SelectPiece(position int, player domain.Cell, now time.Time) ([]int, error) {
	if err := s.validateTurn(player); err != nil {
		return nil, err
	}
	switch {
	case s.Phase != Moving:
		return nil, errors.WithMessage(errWrongPhase, "select piece")
	case !onBoard(position) || s.Board[position] != player:
		return nil, errors.WithMessagef(errNotYourPiece, "position '%d'", position)
	}
	destinations := LegalDestinations(s.Board, position)
	if len(destinations) == 0 {
		return nil, errors.WithMessagef(errNoDestinations, "position '%d'", position)
	}
	s.SelectedPiece = &position
	s.Touch(now)
	return destinations, nil
}

func (s *State) MovePiece(from, to int, player domain.Cell, now time.Time) error {
	if err := s.validateTurn(player); err != nil {
		return err
	}
	switch {
	case s.Phase != Moving:
		return errors.WithMessage(errWrongPhase, "move piece")
	case !onBoard(from) || s.Board[from] != player:
		return errors.WithMessagef(errNotYourPiece, "position '%d'", from)
	case !onBoard(to):
		return errors.WithMessagef(errInvalidPosition, "position '%d'", to)
	case s.Board[to] != domain.None:
		return errors.WithMessagef(errCellOccupied, "position '%d'", to)
	case !IsAdjacent(from, to):
		return errors.WithMessagef(errNotAdjacent, "from '%d' to '%d'", from, to)
	}
	s.Board[to] = player
	s.Board[from] = domain.None
	s.SelectedPiece = nil
	s.Touch(now)
	if s.Winner = CheckWinner(s.Board); s.Finished() {
		return nil
	}
	s.passTurn(player)
	return nil
}

// passTurn hands the turn over. A player left without a legal slide in the
// moving phase loses.
func (s *State) passTurn(player domain.Cell) {
	next := player.Opponent()
	s.CurrentPlayer = next
	if s.Phase == Moving && len(LegalMoves(s.Board, next)) == 0 {
		s.Winner = domain.ResultOf(player)
	}
}
