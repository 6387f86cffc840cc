package cypher

import (
	"strings"
	"testing"
	"time"
)

// unescape reverses quoteText for round-trip checks.
func unescape(t *testing.T, literal string) string {
	t.Helper()
	if !strings.HasPrefix(literal, "'") || !strings.HasSuffix(literal, "'") {
		t.Fatalf("not a quoted literal: %q", literal)
	}
	body := literal[1 : len(literal)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
			b.WriteByte(body[i])
			continue
		}
		b.WriteByte(body[i])
	}
	return b.String()
}

func TestEncodeScalars(t *testing.T) {
	cases := []struct {
		name string
		in   Value
		want string
	}{
		{"null", NullValue(), "null"},
		{"true", BoolValue(true), "true"},
		{"false", BoolValue(false), "false"},
		{"int", IntValue(42), "42"},
		{"negative int", IntValue(-7), "-7"},
		{"float", FloatValue(3.14), "3.14"},
		{"whole float", FloatValue(2), "2"},
		{"plain text", TextValue("hello"), "'hello'"},
		{"quote", TextValue("O'Brien"), `'O\'Brien'`},
		{"backslash", TextValue(`a\b`), `'a\\b'`},
		{"quote and backslash", TextValue(`O'Brien\path`), `'O\'Brien\\path'`},
		{"adjacent", TextValue(`\'`), `'\\\''`},
		{"other", OtherValue(struct{ X int }{1}), "'{1}'"},
	}
	for _, tc := range cases {
		if got := tc.in.Encode(); got != tc.want {
			t.Fatalf("%s: want=%q got=%q", tc.name, tc.want, got)
		}
	}
}

func TestEncodeTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 12, 30, 45, 0, time.UTC)
	got := TimeValue(ts).Encode()
	want := "datetime('2024-03-09T12:30:45Z')"
	if got != want {
		t.Fatalf("want=%q got=%q", want, got)
	}
}

func TestEncodeTextRoundTrip(t *testing.T) {
	inputs := []string{
		`O'Brien\path`,
		`''`,
		`\\`,
		`\'\'`,
		"plain",
		`trailing\`,
		`'leading`,
	}
	for _, in := range inputs {
		literal := TextValue(in).Encode()
		if got := unescape(t, literal); got != in {
			t.Fatalf("round trip %q: literal=%q got back %q", in, literal, got)
		}
	}
}

func TestFromAny(t *testing.T) {
	if k := FromAny(nil).Kind(); k != KindNull {
		t.Fatalf("nil: want KindNull got %d", k)
	}
	if k := FromAny(true).Kind(); k != KindBool {
		t.Fatalf("bool: want KindBool got %d", k)
	}
	if k := FromAny(int32(5)).Kind(); k != KindInt {
		t.Fatalf("int32: want KindInt got %d", k)
	}
	if k := FromAny(1.5).Kind(); k != KindFloat {
		t.Fatalf("float64: want KindFloat got %d", k)
	}
	if k := FromAny("s").Kind(); k != KindText {
		t.Fatalf("string: want KindText got %d", k)
	}
	if k := FromAny([]byte("b")).Kind(); k != KindText {
		t.Fatalf("bytes: want KindText got %d", k)
	}
	if k := FromAny(time.Now()).Kind(); k != KindTime {
		t.Fatalf("time: want KindTime got %d", k)
	}
	// Unknown types must degrade to stringified text, never fail.
	type odd struct{ A string }
	v := FromAny(odd{A: "x"})
	if v.Kind() != KindOther {
		t.Fatalf("struct: want KindOther got %d", v.Kind())
	}
	if got := v.Encode(); got != "'{x}'" {
		t.Fatalf("struct encode: got %q", got)
	}
}
