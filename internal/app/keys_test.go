//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snakeworks/termsnake/internal/engine"
)

func TestDecodeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []byte
		want Key
	}{
		{name: "empty", in: nil, want: Key{}},
		{name: "line feed", in: []byte{10}, want: Key{Code: KeyEnter}},
		{name: "carriage return", in: []byte{13}, want: Key{Code: KeyEnter}},
		{name: "escape", in: []byte{27}, want: Key{Code: KeyEscape}},
		{name: "space", in: []byte{32}, want: Key{Code: KeySpace}},
		{name: "delete", in: []byte{127}, want: Key{Code: KeyBackspace}},
		{name: "ctrl-h", in: []byte{8}, want: Key{Code: KeyBackspace}},
		{name: "letter", in: []byte("q"), want: Key{Code: KeyRune, Rune: 'q'}},
		{name: "digit", in: []byte("2"), want: Key{Code: KeyRune, Rune: '2'}},
		{name: "control char", in: []byte{1}, want: Key{}},
		{name: "arrow up", in: []byte("\x1b[A"), want: Key{Code: KeyUp}},
		{name: "arrow down", in: []byte("\x1b[B"), want: Key{Code: KeyDown}},
		{name: "arrow right", in: []byte("\x1b[C"), want: Key{Code: KeyRight}},
		{name: "arrow left", in: []byte("\x1b[D"), want: Key{Code: KeyLeft}},
		{name: "application mode arrow", in: []byte("\x1bOA"), want: Key{Code: KeyUp}},
		{name: "unknown csi", in: []byte("\x1b[Z"), want: Key{}},
		{name: "not escape", in: []byte("x[A"), want: Key{}},
		{name: "two bytes", in: []byte("ab"), want: Key{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DecodeKey(tt.in))
		})
	}
}

func TestParseKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   Key
		wantOK bool
	}{
		{in: "up", want: Key{Code: KeyUp}, wantOK: true},
		{in: "DOWN", want: Key{Code: KeyDown}, wantOK: true},
		{in: "left", want: Key{Code: KeyLeft}, wantOK: true},
		{in: "right", want: Key{Code: KeyRight}, wantOK: true},
		{in: "return", want: Key{Code: KeyEnter}, wantOK: true},
		{in: "escape", want: Key{Code: KeyEscape}, wantOK: true},
		{in: "esc", want: Key{Code: KeyEscape}, wantOK: true},
		{in: " ", want: Key{Code: KeySpace}, wantOK: true},
		{in: "backspace", want: Key{Code: KeyBackspace}, wantOK: true},
		{in: "0", want: Key{Code: KeyRune, Rune: '0'}, wantOK: true},
		{in: "W", want: Key{Code: KeyRune, Rune: 'W'}, wantOK: true},
		{in: "", wantOK: false},
		{in: "pgup", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseKey(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKey_StringRoundTripsThroughParseKey(t *testing.T) {
	t.Parallel()

	for _, k := range []Key{
		{Code: KeyUp}, {Code: KeyDown}, {Code: KeyLeft}, {Code: KeyRight},
		{Code: KeyEnter}, {Code: KeyEscape}, {Code: KeySpace}, {Code: KeyBackspace},
		{Code: KeyRune, Rune: 'x'},
	} {
		got, ok := ParseKey(k.String())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
}

func TestKey_Direction(t *testing.T) {
	t.Parallel()

	cases := map[Key]engine.Direction{
		{Code: KeyUp}:              engine.Up,
		{Code: KeyRune, Rune: 'W'}: engine.Up,
		{Code: KeyRune, Rune: 'a'}: engine.Left,
		{Code: KeyRune, Rune: 's'}: engine.Down,
		{Code: KeyRune, Rune: 'D'}: engine.Right,
		{Code: KeyRight}:           engine.Right,
	}
	for k, want := range cases {
		got, ok := k.Direction()
		assert.True(t, ok, k.String())
		assert.Equal(t, want, got, k.String())
	}

	_, ok := RuneKey('q').Direction()
	assert.False(t, ok)
	_, ok = Key{Code: KeyEnter}.Direction()
	assert.False(t, ok)
}

func TestKey_LetterAndDigit(t *testing.T) {
	t.Parallel()

	r, ok := RuneKey('Z').Letter()
	assert.True(t, ok)
	assert.Equal(t, 'Z', r)
	_, ok = RuneKey('5').Letter()
	assert.False(t, ok)
	_, ok = RuneKey('é').Letter()
	assert.False(t, ok)

	d, ok := RuneKey('5').Digit()
	assert.True(t, ok)
	assert.Equal(t, 5, d)
	_, ok = RuneKey('a').Digit()
	assert.False(t, ok)
	_, ok = Key{Code: KeySpace}.Digit()
	assert.False(t, ok)
}
