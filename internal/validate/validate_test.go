package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "letters", input: "Alice", wantErr: false},
		{name: "max length", input: strings.Repeat("a", MaxNameLength), wantErr: false},
		{name: "too long", input: strings.Repeat("a", MaxNameLength+1), wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "digits", input: "abc1", wantErr: true},
		{name: "whitespace", input: "a b", wantErr: true},
		{name: "non ascii", input: "Zoë", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := PlayerName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStruct_UsesAlias(t *testing.T) {
	t.Parallel()

	type row struct {
		Name  string `validate:"playername"`
		Score int    `validate:"min=0"`
	}

	assert.NoError(t, Struct(row{Name: "bob", Score: 10}))
	assert.Error(t, Struct(row{Name: "bob", Score: -1}))
	assert.Error(t, Struct(row{Name: "", Score: 1}))
}
