package pyliteral

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseGenreList(t *testing.T) {
	t.Parallel()

	got, err := Parse("[{'id': 28, 'name': 'Action'}]")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := []any{map[string]any{"id": int64(28), "name": "Action"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected value: %#v", got)
	}
}

func TestParseScalars(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want any
	}{
		{"42", int64(42)},
		{"-3", int64(-3)},
		{"7.25", 7.25},
		{"1e3", 1000.0},
		{"'it\\'s'", "it's"},
		{`"say \"hi\""`, `say "hi"`},
		{`"L'Avventura"`, "L'Avventura"},
		{`'café'`, "café"},
		{"True", true},
		{"false", false},
		{"None", nil},
		{"null", nil},
		{"  [ 1 , 2 , ]  ", []any{int64(1), int64(2)}},
		{"(1, 'a')", []any{int64(1), "a"}},
		{"{}", map[string]any{}},
		{"[]", []any{}},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tc.in, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Parse(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"[",
		"[{'id': 28, 'name': 'Action'}",
		"{'id' 28}",
		"[1 2]",
		"'unterminated",
		"__import__('os').system('ls')",
		"[1] trailing",
		"nan",
		"-",
		"{[1]: 2}",
	}

	for _, in := range inputs {
		_, err := Parse(in)
		if err == nil {
			t.Fatalf("Parse(%q) expected error", in)
		}
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Fatalf("Parse(%q) error %T is not *SyntaxError", in, err)
		}
	}
}

func TestFormatRoundTripsGenres(t *testing.T) {
	t.Parallel()

	value := []any{
		map[string]any{"name": "Drama", "id": int64(18)},
		map[string]any{"name": "Children's", "id": int64(10751)},
	}

	text := Format(value)
	want := `[{'id': 18, 'name': 'Drama'}, {'id': 10751, 'name': "Children's"}]`
	if text != want {
		t.Fatalf("Format = %s, want %s", text, want)
	}

	back, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(Format) returned error: %v", err)
	}
	if !reflect.DeepEqual(back, value) {
		t.Fatalf("round trip mismatch: %#v", back)
	}
}

func TestFormatScalars(t *testing.T) {
	t.Parallel()

	if got := Format(3.0); got != "3.0" {
		t.Fatalf("Format(3.0) = %s", got)
	}
	if got := Format(nil); got != "None" {
		t.Fatalf("Format(nil) = %s", got)
	}
	if got := Format(true); got != "True" {
		t.Fatalf("Format(true) = %s", got)
	}
	if got := Format("a\nb"); got != `'a\nb'` {
		t.Fatalf("Format newline = %s", got)
	}
}
