// Package cypher turns extracted relational rows and declarative
// relationship rules into a replayable Cypher script.
package cypher

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind enumerates the scalar types a source cell can carry. The set is
// closed: anything a driver hands back that is not one of the first six
// kinds travels as KindOther and is stringified on encoding.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindTime
	KindOther
)

// Value is one scalar cell, tagged with its kind so encoding is exhaustive
// instead of relying on runtime type inspection at the point of use.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	t    time.Time
}

func NullValue() Value           { return Value{kind: KindNull} }
func BoolValue(b bool) Value     { return Value{kind: KindBool, b: b} }
func IntValue(i int64) Value     { return Value{kind: KindInt, i: i} }
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }
func TextValue(s string) Value   { return Value{kind: KindText, s: s} }
func TimeValue(t time.Time) Value {
	return Value{kind: KindTime, t: t}
}
func OtherValue(v interface{}) Value {
	return Value{kind: KindOther, s: fmt.Sprint(v)}
}

// FromAny maps a driver-returned scalar onto a Value. Unknown types are
// never an error; they degrade to KindOther and encode as escaped text.
func FromAny(v interface{}) Value {
	switch x := v.(type) {
	case nil:
		return NullValue()
	case bool:
		return BoolValue(x)
	case int:
		return IntValue(int64(x))
	case int8:
		return IntValue(int64(x))
	case int16:
		return IntValue(int64(x))
	case int32:
		return IntValue(int64(x))
	case int64:
		return IntValue(x)
	case uint:
		return IntValue(int64(x))
	case uint16:
		return IntValue(int64(x))
	case uint32:
		return IntValue(int64(x))
	case uint64:
		return IntValue(int64(x))
	case float32:
		return FloatValue(float64(x))
	case float64:
		return FloatValue(x)
	case string:
		return TextValue(x)
	case []byte:
		return TextValue(string(x))
	case time.Time:
		return TimeValue(x)
	default:
		return OtherValue(v)
	}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Encode renders the value as a Cypher literal. Pure and total: every kind
// has a rendering, nulls included (callers omit null properties instead of
// embedding the literal).
func (v Value) Encode() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return quoteText(v.s)
	case KindTime:
		return "datetime(" + quoteText(v.t.UTC().Format(time.RFC3339Nano)) + ")"
	default:
		return quoteText(v.s)
	}
}

// quoteText single-quotes a string literal. Backslashes are escaped before
// single quotes so the quote escaping cannot double-escape.
func quoteText(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)
	return "'" + escaped + "'"
}

// Row is one extracted record, keyed by included column name. Property
// order comes from the column list the caller iterates, not from the map.
type Row map[string]Value
