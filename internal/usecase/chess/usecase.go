package chess

import (
	"strings"
	"time"

	"github.com/kiryu-dev/board-games/internal/domain"
	notnil "github.com/notnil/chess"
	"github.com/pkg/errors"
)

const size = 8

var backRank = [size]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Board is indexed [row][col]; row 0 is black's back rank.
type Board [size][size]Piece

// Position is a [row, col] pair.
type Position [2]int

func (p Position) valid() bool {
	return p[0] >= 0 && p[0] < size && p[1] >= 0 && p[1] < size
}

// Name returns the algebraic name of the square, e.g. "e2".
func (p Position) Name() string {
	return notnil.Square((size-1-p[0])*size + p[1]).String()
}

// ParsePosition resolves a client supplied square: [row, col] or "e2".
func ParsePosition(sq *domain.Square) (Position, error) {
	switch {
	case sq == nil:
		return Position{}, errors.WithMessage(errInvalidSquare, "missing square")
	case sq.Coord != nil:
		p := Position(*sq.Coord)
		if !p.valid() {
			return Position{}, errors.WithMessagef(errInvalidSquare, "square %v", *sq.Coord)
		}
		return p, nil
	case sq.Name != "":
		name := strings.ToLower(strings.TrimSpace(sq.Name))
		for s := notnil.A1; s <= notnil.H8; s++ {
			if s.String() == name {
				return Position{size - 1 - int(s.Rank()), int(s.File())}, nil
			}
		}
		return Position{}, errors.WithMessagef(errInvalidSquare, "square '%s'", sq.Name)
	default:
		return Position{}, errors.WithMessage(errInvalidSquare, "square must be [row, col] or a name like 'e2'")
	}
}

type Move struct {
	From     Position `json:"from"`
	To       Position `json:"to"`
	Piece    Piece    `json:"piece"`
	Captured Piece    `json:"captured"`
	Notation string   `json:"notation"`
}

type Captured struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// Material is the value of the pieces each side has captured.
type Material struct {
	White int `json:"white"`
	Black int `json:"black"`
}

func (c *Captured) by(color Color) *[]Piece {
	if color == White {
		return &c.White
	}
	return &c.Black
}

type State struct {
	Board          Board         `json:"board"`
	CurrentPlayer  Color         `json:"currentPlayer"`
	Winner         domain.Result `json:"winner"`
	MoveHistory    []Move        `json:"moveHistory"`
	CapturedPieces Captured      `json:"capturedPieces"`
	Material       Material      `json:"material"`
	domain.Meta
}

func New(now time.Time) *State {
	return &State{
		Board:         initialBoard(),
		CurrentPlayer: White,
		MoveHistory:   []Move{},
		CapturedPieces: Captured{
			White: []Piece{},
			Black: []Piece{},
		},
		Meta: domain.Meta{CreatedAt: now, LastActivity: now},
	}
}

func initialBoard() Board {
	var board Board
	for col := 0; col < size; col++ {
		board[0][col] = Piece{Color: Black, Kind: backRank[col]}
		board[1][col] = Piece{Color: Black, Kind: Pawn}
		board[6][col] = Piece{Color: White, Kind: Pawn}
		board[7][col] = Piece{Color: White, Kind: backRank[col]}
	}
	return board
}

func (s *State) Clone() *State {
	clone := *s
	clone.MoveHistory = append([]Move{}, s.MoveHistory...)
	clone.CapturedPieces = Captured{
		White: append([]Piece{}, s.CapturedPieces.White...),
		Black: append([]Piece{}, s.CapturedPieces.Black...),
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

func (s *State) at(p Position) *Piece {
	return &s.Board[p[0]][p[1]]
}

// ValidateMove only checks ownership of the source and that the
// destination isn't the mover's own piece. Piece movement rules are not
// implemented.
func (s *State) ValidateMove(from, to Position, player Color) error {
	switch {
	case s.Finished():
		return errGameFinished
	case !from.valid() || !to.valid():
		return errors.WithMessagef(errInvalidSquare, "from %v to %v", from, to)
	case player != s.CurrentPlayer:
		return errors.WithMessagef(errNotYourTurn, "player '%s'", player)
	case s.at(from).Empty() || s.at(from).Color != player:
		return errors.WithMessagef(errNotYourPiece, "square '%s'", from.Name())
	case !s.at(to).Empty() && s.at(to).Color == player:
		return errors.WithMessagef(errBlockedSquare, "square '%s'", to.Name())
	}
	return nil
}

func (s *State) MakeMove(from, to Position, player Color, now time.Time) error {
	if err := s.ValidateMove(from, to, player); err != nil {
		return err
	}
	piece := *s.at(from)
	captured := *s.at(to)
	if !captured.Empty() {
		list := s.CapturedPieces.by(player)
		*list = append(*list, captured)
		s.Material = Material{White: s.CapturedValue(White), Black: s.CapturedValue(Black)}
	}
	if piece.Kind == Pawn && (to[0] == 0 || to[0] == size-1) {
		piece.Kind = Queen
	}
	*s.at(to) = piece
	*s.at(from) = NoPiece
	s.MoveHistory = append(s.MoveHistory, Move{
		From:     from,
		To:       to,
		Piece:    piece,
		Captured: captured,
		Notation: from.Name() + to.Name(),
	})
	s.CurrentPlayer = player.Opponent()
	s.Touch(now)
	if s.IsCheckmate() {
		s.Winner = domain.Result(player.String())
	}
	return nil
}

// IsCheckmate always reports false: check detection is not implemented, so
// chess games only end by disconnect or inactivity.
func (s *State) IsCheckmate() bool {
	return false
}

// CapturedValue sums the material color has taken.
func (s *State) CapturedValue(color Color) int {
	total := 0
	for _, piece := range *s.CapturedPieces.by(color) {
		total += piece.Value()
	}
	return total
}
