package domain

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Square is a move endpoint as sent by clients: a 3x3 board index (7),
// an 8x8 [row, col] pair ([6, 4]) or an algebraic square name ("e2").
type Square struct {
	Index *int
	Coord *[2]int
	Name  string
}

func IndexSquare(i int) *Square {
	return &Square{Index: &i}
}

func CoordSquare(row, col int) *Square {
	return &Square{Coord: &[2]int{row, col}}
}

func NamedSquare(name string) *Square {
	return &Square{Name: name}
}

func (s Square) MarshalJSON() ([]byte, error) {
	switch {
	case s.Index != nil:
		return jsoniter.Marshal(*s.Index)
	case s.Coord != nil:
		return jsoniter.Marshal(*s.Coord)
	case s.Name != "":
		return jsoniter.Marshal(s.Name)
	default:
		return []byte("null"), nil
	}
}

func (s *Square) UnmarshalJSON(data []byte) error {
	*s = Square{}
	switch jsoniter.Get(data).ValueType() {
	case jsoniter.NilValue:
		return nil
	case jsoniter.NumberValue:
		var i int
		if err := jsoniter.Unmarshal(data, &i); err != nil {
			return errors.WithMessage(err, "unmarshal square index")
		}
		s.Index = &i
	case jsoniter.ArrayValue:
		var coord [2]int
		if err := jsoniter.Unmarshal(data, &coord); err != nil {
			return errors.WithMessage(err, "unmarshal square coordinates")
		}
		s.Coord = &coord
	case jsoniter.StringValue:
		if err := jsoniter.Unmarshal(data, &s.Name); err != nil {
			return errors.WithMessage(err, "unmarshal square name")
		}
	default:
		return errors.WithMessagef(ErrBadRequest, "unsupported square '%s'", string(data))
	}
	return nil
}
