package sheet

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindEmpty is a blank cell. The zero Value is empty.
	KindEmpty Kind = iota

	// KindString is a text cell.
	KindString

	// KindInt is an integral number.
	KindInt

	// KindFloat is a non-integral number.
	KindFloat

	// KindBool is a boolean cell.
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a normalized spreadsheet cell. Values are comparable and can be
// used as map keys.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

// StringValue returns a text Value. The empty string is a text Value, not
// an empty one; readers decide which blank cells are empty.
func StringValue(s string) Value {
	return Value{kind: KindString, s: s}
}

// IntValue returns an integral Value.
func IntValue(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// FloatValue returns a float Value without normalization.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// NumberValue returns an Int Value when f is integral and fits in int64,
// otherwise a Float Value. Spreadsheet formats store every number as a
// float, so readers use this for numeric cells.
func NumberValue(f float64) Value {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return IntValue(int64(f))
	}
	return FloatValue(f)
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v is a blank cell.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// Str returns the text of a String Value and false for any other kind.
func (v Value) Str() (string, bool) {
	return v.s, v.kind == KindString
}

// Int returns the integer of an Int Value and false for any other kind.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInt
}

// Float returns the number of a Float Value and false for any other kind.
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// Bool returns the boolean of a Bool Value and false for any other kind.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Native returns v as a plain Go value: nil, string, int64, float64 or bool.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// String renders v as text. Empty values render as "".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.Native(), nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}
