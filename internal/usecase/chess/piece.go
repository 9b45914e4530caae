package chess

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

type Color byte

const (
	NoColor = Color(iota)
	White
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return ""
	}
}

func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func (c Color) MarshalJSON() ([]byte, error) {
	if c == NoColor {
		return []byte("null"), nil
	}
	return jsoniter.Marshal(c.String())
}

func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	default:
		return NoColor, errors.WithMessagef(errUnknownColor, "color '%s'", s)
	}
}

type PieceKind byte

const (
	NoKind = PieceKind(iota)
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"", "pawn", "knight", "bishop", "rook", "queen", "king"}

// Values follow the usual material weights.
var kindValues = [...]int{0, 10, 30, 30, 50, 90, 900}

func (k PieceKind) String() string {
	return kindNames[k]
}

// Piece occupies a square; the zero value is an empty square.
type Piece struct {
	Color Color
	Kind  PieceKind
}

var NoPiece = Piece{}

func (p Piece) Empty() bool {
	return p.Kind == NoKind
}

func (p Piece) Value() int {
	return kindValues[p.Kind]
}

func (p Piece) String() string {
	if p.Empty() {
		return ""
	}
	return p.Color.String() + "-" + p.Kind.String()
}

func (p Piece) MarshalJSON() ([]byte, error) {
	if p.Empty() {
		return []byte("null"), nil
	}
	return jsoniter.Marshal(p.String())
}

func (p *Piece) UnmarshalJSON(data []byte) error {
	var s *string
	if err := jsoniter.Unmarshal(data, &s); err != nil {
		return errors.WithMessage(err, "unmarshal piece")
	}
	if s == nil || *s == "" {
		*p = NoPiece
		return nil
	}
	color, kind, ok := strings.Cut(*s, "-")
	if !ok {
		return errors.Errorf("malformed piece '%s'", *s)
	}
	c, err := ParseColor(color)
	if err != nil {
		return err
	}
	for i, name := range kindNames {
		if i > 0 && name == kind {
			*p = Piece{Color: c, Kind: PieceKind(i)}
			return nil
		}
	}
	return errors.Errorf("unknown piece kind '%s'", kind)
}
