package domain

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

type Kind string

const (
	TicTacToe = Kind("tictactoe")
	Morris    = Kind("morris")
	Chess     = Kind("chess")
)

var Kinds = [...]Kind{TicTacToe, Morris, Chess}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", errors.WithMessagef(ErrBadRequest, "unknown game kind '%s'", s)
}

// Markers returns the sides of kind in turn order.
func (k Kind) Markers() (first string, second string) {
	if k == Chess {
		return "white", "black"
	}
	return X.String(), O.String()
}

// Cell is a square of a 3x3 board.
type Cell byte

const (
	None = Cell(' ')
	X    = Cell('X')
	O    = Cell('O')
)

func (c Cell) Opponent() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	default:
		return None
	}
}

func (c Cell) String() string {
	if c == None {
		return ""
	}
	return string(c)
}

func (c Cell) MarshalJSON() ([]byte, error) {
	if c == None || c == 0 {
		return []byte("null"), nil
	}
	return jsoniter.Marshal(string(c))
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var s *string
	if err := jsoniter.Unmarshal(data, &s); err != nil {
		return errors.WithMessage(err, "unmarshal cell")
	}
	if s == nil || *s == "" {
		*c = None
		return nil
	}
	cell, err := ParseMarker(*s)
	if err != nil {
		return err
	}
	*c = cell
	return nil
}

func ParseMarker(s string) (Cell, error) {
	switch s {
	case "X", "x":
		return X, nil
	case "O", "o":
		return O, nil
	default:
		return None, errors.WithMessagef(ErrInvalidMove, "unknown player '%s'", s)
	}
}

type Board [9]Cell

func EmptyBoard() Board {
	var board Board
	for i := range board {
		board[i] = None
	}
	return board
}

func (b Board) IsFull() bool {
	for _, cell := range b {
		if cell == None {
			return false
		}
	}
	return true
}

func (b Board) EmptyCells() []int {
	cells := make([]int, 0, len(b))
	for i, cell := range b {
		if cell == None {
			cells = append(cells, i)
		}
	}
	return cells
}

var WinConditions = [8][3]uint8{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// TripleWinner returns the marker filling one of the winning lines, or None.
func TripleWinner(board Board) Cell {
	for _, condition := range WinConditions {
		a, b, c := board[condition[0]], board[condition[1]], board[condition[2]]
		if a != None && a == b && b == c {
			return a
		}
	}
	return None
}

// Result is the outcome of a game. The zero value means the game is still on.
type Result string

const (
	NoResult = Result("")
	Draw     = Result("draw")
)

func ResultOf(c Cell) Result {
	if c == None {
		return NoResult
	}
	return Result(c.String())
}

type Difficulty string

const (
	Easy   = Difficulty("easy")
	Medium = Difficulty("medium")
	Hard   = Difficulty("hard")
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case "":
		return Medium, nil
	case Easy, Medium, Hard:
		return Difficulty(s), nil
	default:
		return "", errors.WithMessagef(ErrBadRequest, "unknown difficulty '%s'", s)
	}
}

// Meta holds the part of a game state shared by every kind.
type Meta struct {
	VsComputer   bool       `json:"vsComputer"`
	Difficulty   Difficulty `json:"computerDifficulty,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastActivity time.Time  `json:"lastActivity"`
	// marker -> client id, only set for online games
	Players map[string]string `json:"-"`
}

func NewMeta(vsComputer bool, difficulty Difficulty, now time.Time) Meta {
	if difficulty == "" {
		difficulty = Medium
	}
	return Meta{
		VsComputer:   vsComputer,
		Difficulty:   difficulty,
		CreatedAt:    now,
		LastActivity: now,
	}
}

func (m *Meta) Metadata() *Meta {
	return m
}

func (m *Meta) Touch(now time.Time) {
	m.LastActivity = now
}

func (m *Meta) Online() bool {
	return len(m.Players) > 0
}

func (m *Meta) MarkerOf(clientUuid string) (string, bool) {
	for marker, uuid := range m.Players {
		if uuid == clientUuid {
			return marker, true
		}
	}
	return "", false
}

func (m *Meta) Participants() []string {
	result := make([]string, 0, len(m.Players))
	for _, uuid := range m.Players {
		result = append(result, uuid)
	}
	return result
}

// Clone returns a copy that does not share the players map.
func (m Meta) Clone() Meta {
	if m.Players != nil {
		players := make(map[string]string, len(m.Players))
		for k, v := range m.Players {
			players[k] = v
		}
		m.Players = players
	}
	return m
}
