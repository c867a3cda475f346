//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsStore_MissingFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.txt")

	s, err := NewOptionsStore(path)
	require.NoError(t, err)

	opts, err := s.Options()
	require.NoError(t, err)
	assert.Equal(t, Options{}, opts)

	// Nothing is created until the first save.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestNewOptionsStore_RejectsUnusablePaths(t *testing.T) {
	for name, path := range map[string]string{
		"empty":     "",
		"directory": t.TempDir(),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewOptionsStore(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid options file")
		})
	}
}

func TestOptionsStore_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "options.txt")

	s, err := NewOptionsStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(Options{CutItself: true, PassBorder: false}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "snake_can_cut_itself = true\nsnake_can_pass_border = false", string(raw))

	s2, err := NewOptionsStore(path)
	require.NoError(t, err)
	opts, err := s2.Options()
	require.NoError(t, err)
	assert.Equal(t, Options{CutItself: true}, opts)
}

func TestOptionsStore_LoadIsMemoized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.txt")
	require.NoError(t, os.WriteFile(path, []byte("snake_can_pass_border = true"), 0o600))

	s, err := NewOptionsStore(path)
	require.NoError(t, err)
	opts, err := s.Options()
	require.NoError(t, err)
	assert.True(t, opts.PassBorder)

	// Changes on disk after the first read are not observed.
	require.NoError(t, os.WriteFile(path, []byte("snake_can_pass_border = false"), 0o600))
	opts, err = s.Options()
	require.NoError(t, err)
	assert.True(t, opts.PassBorder)
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Options
		wantErr bool
	}{
		{
			name:  "both keys",
			input: "snake_can_cut_itself = true\nsnake_can_pass_border = true",
			want:  Options{CutItself: true, PassBorder: true},
		},
		{
			name:  "unknown keys ignored",
			input: "colour = green\nsnake_can_pass_border=1\n",
			want:  Options{PassBorder: true},
		},
		{
			name:    "bad boolean",
			input:   "snake_can_cut_itself = maybe",
			wantErr: true,
		},
		{
			name:    "missing separator",
			input:   "snake_can_cut_itself true",
			wantErr: true,
		},
		{
			name:  "empty file",
			input: "",
			want:  Options{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOptions([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionsStore_CorruptFileDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.txt")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	s, err := NewOptionsStore(path)
	require.NoError(t, err)
	opts, err := s.Options()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, Options{}, opts)

	// The file is recreated on save.
	require.NoError(t, s.Save(Options{PassBorder: true}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "snake_can_pass_border = true")
}

func TestOptions_Set(t *testing.T) {
	var o Options
	require.NoError(t, o.Set(KeyPassBorder, true))
	assert.True(t, o.PassBorder)
	require.Error(t, o.Set("speed", true))
}

func TestWriteFileAtomic_ReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, WriteFileAtomic(path, []byte("one")))
	require.NoError(t, WriteFileAtomic(path, []byte("two")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandTilde("~/x/y")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y"), got)

	got, err = ExpandTilde("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)
}
