package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Kind identifies the runtime representation of a cell.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindText
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a single cell. It is a closed tagged union over
// {null, number, text, bool}, fixed at load time. The zero value is null.
type Value struct {
	kind Kind
	num  float64
	text string
	b    bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the value's kind tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// String renders the value for issue examples and report output.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindText:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// boolTokens maps the accepted boolean spellings to their meaning.
// Matching is case- and space-insensitive.
var boolTokens = map[string]bool{
	"true":  true,
	"yes":   true,
	"1":     true,
	"false": false,
	"no":    false,
	"0":     false,
}

// dateLayouts are tried in order by AsTime.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

// AsNumber coerces the value to a float64. Coercion is fail-soft: the
// second return is false when the value has no numeric reading.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindText:
		f, err := cast.ToFloat64E(strings.TrimSpace(v.text))
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsBool coerces the value to a boolean using the accepted token set.
func (v Value) AsBool() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindNumber:
		if v.num == 0 {
			return false, true
		}
		if v.num == 1 {
			return true, true
		}
		return false, false
	case KindText:
		b, ok := boolTokens[strings.ToLower(strings.TrimSpace(v.text))]
		return b, ok
	default:
		return false, false
	}
}

// AsTime coerces the value to a timestamp, trying each known layout.
func (v Value) AsTime() (time.Time, bool) {
	if v.kind != KindText {
		return time.Time{}, false
	}
	s := strings.TrimSpace(v.text)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsIntegral reports whether the value is a number with no fractional part.
func (v Value) IsIntegral() bool {
	if v.kind != KindNumber {
		return false
	}
	if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return false
	}
	return math.Mod(v.num, 1) == 0
}

// Equal reports strict equality between two values: same kind, same payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindText:
		return v.text == o.text
	case KindBool:
		return v.b == o.b
	default:
		return true
	}
}
