package dataset

import (
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

// Kind distinguishes numeric from categorical attribute values.
type Kind int

// Attribute kinds.
const (
	Numeric Kind = iota + 1
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Value is a scalar attribute: either a number or a category label.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: Numeric, num: f} }

// Text returns a categorical Value.
func Text(s string) Value { return Value{kind: Categorical, str: s} }

// Kind returns the value kind.
func (v Value) Kind() Kind { return v.kind }

// Float returns the numeric value and whether v is numeric.
func (v Value) Float() (float64, bool) { return v.num, v.kind == Numeric }

// Label returns the categorical value and whether v is categorical.
func (v Value) Label() (string, bool) { return v.str, v.kind == Categorical }

// Interface returns v as float64 or string.
func (v Value) Interface() any {
	if v.kind == Numeric {
		return v.num
	}
	return v.str
}

// String renders v for tabular output.
func (v Value) String() string {
	if v.kind == Numeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// ValueOf converts a Go scalar into a Value. Integers and floats become
// numeric, strings categorical; anything else is ErrMalformedInput.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		if t.kind != Numeric && t.kind != Categorical {
			return Value{}, eris.Wrap(geoerr.ErrMalformedInput, "dataset: attribute value has no kind")
		}
		return t, nil
	case string:
		return Text(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	default:
		return Value{}, eris.Wrapf(geoerr.ErrMalformedInput, "dataset: unsupported attribute type %T", x)
	}
}
