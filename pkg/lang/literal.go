package lang

import (
	"math"
	"strconv"
	"strings"
)

// maxRepeatBytes caps the result of string repetition.
const maxRepeatBytes = 1 << 30

// Kind tags the active member of a Literal.
type Kind uint8

const (
	NumberKind Kind = iota
	StringKind
	BoolKind
)

func (k Kind) String() string {
	switch k {
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case BoolKind:
		return "boolean"
	}
	return "unknown"
}

// Literal is a runtime value: a Number (float32), a String or a Bool.
// Only the field matching kind is meaningful.
type Literal struct {
	kind Kind
	num  float32
	str  string
	b    bool
}

func Number(v float32) Literal { return Literal{kind: NumberKind, num: v} }
func String(v string) Literal  { return Literal{kind: StringKind, str: v} }
func Bool(v bool) Literal      { return Literal{kind: BoolKind, b: v} }

func (l Literal) Kind() Kind { return l.kind }

// AsNumber returns the number and true when l is a Number.
func (l Literal) AsNumber() (float32, bool) { return l.num, l.kind == NumberKind }

// AsString returns the text and true when l is a String.
func (l Literal) AsString() (string, bool) { return l.str, l.kind == StringKind }

// AsBool returns the boolean and true when l is a Bool.
func (l Literal) AsBool() (bool, bool) { return l.b, l.kind == BoolKind }

// Equal reports whether both literals have the same kind and value.
// Numbers follow IEEE rules, so NaN is never equal to anything.
func (l Literal) Equal(o Literal) bool {
	if l.kind != o.kind {
		return false
	}
	switch l.kind {
	case NumberKind:
		return l.num == o.num
	case StringKind:
		return l.str == o.str
	default:
		return l.b == o.b
	}
}

// String renders the value the way print shows it: numbers in their
// shortest decimal form without exponent, strings verbatim.
func (l Literal) String() string {
	switch l.kind {
	case NumberKind:
		return formatNumber(l.num)
	case StringKind:
		return l.str
	default:
		return strconv.FormatBool(l.b)
	}
}

// GoString is used by %#v and the ast dump; strings are quoted there.
func (l Literal) GoString() string {
	if l.kind == StringKind {
		return strconv.Quote(l.str)
	}
	return l.String()
}

func formatNumber(v float32) string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 32)
}

// Add: number+number, string+string.
func (l Literal) Add(r Literal) (Literal, error) {
	switch {
	case l.kind == NumberKind && r.kind == NumberKind:
		return Number(l.num + r.num), nil
	case l.kind == StringKind && r.kind == StringKind:
		return String(l.str + r.str), nil
	}
	return Literal{}, mismatch("add", l, r)
}

func (l Literal) Sub(r Literal) (Literal, error) {
	if l.kind == NumberKind && r.kind == NumberKind {
		return Number(l.num - r.num), nil
	}
	return Literal{}, mismatch("subtract", l, r)
}

// Mul: number*number, or string*number which repeats the string.
func (l Literal) Mul(r Literal) (Literal, error) {
	switch {
	case l.kind == NumberKind && r.kind == NumberKind:
		return Number(l.num * r.num), nil
	case l.kind == StringKind && r.kind == NumberKind:
		n := float64(r.num)
		if math.IsInf(n, 0) {
			return Literal{}, errInvalidOperation("cannot repeat a string %s times", formatNumber(r.num))
		}
		// NaN and negative counts repeat zero times.
		if !(n > 0) || l.str == "" {
			return String(""), nil
		}
		count := math.Trunc(n)
		if count*float64(len(l.str)) > maxRepeatBytes {
			return Literal{}, errInvalidOperation("repeating a string %s times exceeds %d bytes", formatNumber(r.num), maxRepeatBytes)
		}
		return String(strings.Repeat(l.str, int(count))), nil
	}
	return Literal{}, mismatch("multiply", l, r)
}

func (l Literal) Div(r Literal) (Literal, error) {
	if l.kind == NumberKind && r.kind == NumberKind {
		return Number(l.num / r.num), nil
	}
	return Literal{}, mismatch("divide", l, r)
}

// Mod is the floating point remainder, with the sign of the dividend.
func (l Literal) Mod(r Literal) (Literal, error) {
	if l.kind == NumberKind && r.kind == NumberKind {
		return Number(float32(math.Mod(float64(l.num), float64(r.num)))), nil
	}
	return Literal{}, mismatch("mod", l, r)
}

// Compare orders two literals of the same kind and returns -1, 0 or 1.
// ok is false for cross-kind pairs and for NaN operands.
func (l Literal) Compare(r Literal) (cmp int, ok bool, err error) {
	if l.kind != r.kind {
		return 0, false, errInvalidOperation("cannot compare %s with %s", l.kind, r.kind)
	}
	switch l.kind {
	case NumberKind:
		switch {
		case l.num < r.num:
			return -1, true, nil
		case l.num > r.num:
			return 1, true, nil
		case l.num == r.num:
			return 0, true, nil
		}
		return 0, false, nil
	case StringKind:
		return strings.Compare(l.str, r.str), true, nil
	default:
		switch {
		case l.b == r.b:
			return 0, true, nil
		case !l.b:
			return -1, true, nil
		}
		return 1, true, nil
	}
}

func (l Literal) And(r Literal) (Literal, error) {
	if l.kind == BoolKind && r.kind == BoolKind {
		return Bool(l.b && r.b), nil
	}
	return Literal{}, errInvalidOperation("'and' requires two booleans, got %s and %s", l.kind, r.kind)
}

func (l Literal) Or(r Literal) (Literal, error) {
	if l.kind == BoolKind && r.kind == BoolKind {
		return Bool(l.b || r.b), nil
	}
	return Literal{}, errInvalidOperation("'or' requires two booleans, got %s and %s", l.kind, r.kind)
}

func mismatch(verb string, l, r Literal) *Error {
	return errInvalidOperation("cannot %s %s and %s", verb, l.kind, r.kind)
}
