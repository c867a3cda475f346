package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoglobals // test binary path is set in TestMain
var testBinaryPath string

// TestMain builds the CLI binary once for the entire package and reuses it.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "termsnake-test-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1) //nolint:gocritic // Mkdir failed, nothing to cleanup
	}
	defer os.RemoveAll(dir)

	bin := filepath.Join(dir, "termsnake-test")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build test binary: %v\nOutput: %s\n", err, string(out))
		os.Exit(1) //nolint:gocritic // Binary failed, nothing to cleanup
	}
	testBinaryPath = bin

	code := m.Run()
	os.Exit(code)
}

func buildTestBinary(t *testing.T) string {
	t.Helper()
	if testBinaryPath == "" {
		t.Fatalf("test binary not built")
	}
	return testBinaryPath
}

// newCmd runs the binary with HOME pointed at home so default file
// locations never touch the real user directory.
func newCmd(binary, home string, args ...string) *exec.Cmd {
	cmd := exec.Command(binary, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)
	return cmd
}

func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	cmd := newCmd(buildTestBinary(t), home, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.String(), err
}

func replayTestdata() string {
	return filepath.Join("..", "..", "internal", "replay", "testdata")
}

func TestCLI_HelpOutput(t *testing.T) {
	home := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name: "root help",
			args: []string{"--help"},
			contains: []string{
				"termsnake",
				"Steer the snake",
				"leaderboard",
				"scores",
				"options",
				"replay",
				"--leaderboard-file",
				"--options-file",
				"--base-tick",
				"--log-file",
			},
		},
		{
			name:     "scores help",
			args:     []string{"scores", "--help"},
			contains: []string{"ten best scores", "--json", "--verbose"},
		},
		{
			name:     "options help",
			args:     []string{"options", "--help"},
			contains: []string{"snake_can_cut_itself", "snake_can_pass_border", "set", "reset"},
		},
		{
			name:     "replay help",
			args:     []string{"replay", "--help"},
			contains: []string{"SCRIPT_OR_DIR", "--persist", "virtual clock"},
		},
		{
			name:     "version",
			args:     []string{"--version"},
			contains: []string{"termsnake dev", "commit: none", "date: unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := run(t, home, tt.args...)
			require.NoError(t, err)
			for _, expected := range tt.contains {
				assert.Contains(t, output, expected)
			}
		})
	}
}

func TestCLI_Scores(t *testing.T) {
	home := t.TempDir()
	file := filepath.Join(t.TempDir(), "board.txt")

	output, err := run(t, home, "scores", "--leaderboard-file", file)
	require.NoError(t, err)
	assert.Contains(t, output, "Leaderboard is empty.")

	require.NoError(t, os.WriteFile(file, []byte("ada 120\nbob 30\ncy 75"), 0o600))
	output, err = run(t, home, "scores", "--leaderboard-file", file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], " 1. ada")
	assert.Contains(t, lines[1], " 2. cy")
	assert.Contains(t, lines[2], " 3. bob")

	output, err = run(t, home, "scores", "--json", "--leaderboard-file", file)
	require.NoError(t, err)
	var entries []struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &entries), output)
	require.Len(t, entries, 3)
	assert.Equal(t, "ada", entries[0].Name)
	assert.Equal(t, 120, entries[0].Score)
}

func TestCLI_ScoresMalformedFileIsNotFatal(t *testing.T) {
	home := t.TempDir()
	file := filepath.Join(t.TempDir(), "board.txt")
	require.NoError(t, os.WriteFile(file, []byte("this is not a leaderboard"), 0o600))

	output, err := run(t, home, "scores", "--leaderboard-file", file)
	require.NoError(t, err)
	assert.Contains(t, output, "Leaderboard is empty.")
	assert.Contains(t, output, "storage unavailable")
}

func TestCLI_Options(t *testing.T) {
	home := t.TempDir()
	defaultFile := filepath.Join(home, ".termsnake", "options.txt")

	output, err := run(t, home, "options")
	require.NoError(t, err)
	assert.Contains(t, output, "snake_can_cut_itself = false")
	assert.Contains(t, output, "snake_can_pass_border = false")
	assert.NoFileExists(t, defaultFile)

	output, err = run(t, home, "options", "set", "snake_can_pass_border", "true")
	require.NoError(t, err, output)
	data, err := os.ReadFile(defaultFile)
	require.NoError(t, err)
	assert.Equal(t, "snake_can_cut_itself = false\nsnake_can_pass_border = true", string(data))

	output, err = run(t, home, "options")
	require.NoError(t, err)
	assert.Contains(t, output, "snake_can_pass_border = true")

	output, err = run(t, home, "options", "reset")
	require.NoError(t, err)
	assert.Contains(t, output, "Options reset to defaults")
	output, err = run(t, home, "options")
	require.NoError(t, err)
	assert.Contains(t, output, "snake_can_pass_border = false")
}

func TestCLI_ErrorHandling(t *testing.T) {
	home := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		errorMsg string
	}{
		{
			name:     "options set with wrong number of args",
			args:     []string{"options", "set", "snake_can_cut_itself"},
			errorMsg: "accepts 2 arg(s)",
		},
		{
			name:     "options set unknown key",
			args:     []string{"options", "set", "snake_can_fly", "true"},
			errorMsg: "unknown option",
		},
		{
			name:     "options set bad value",
			args:     []string{"options", "set", "snake_can_cut_itself", "maybe"},
			errorMsg: "expected true or false",
		},
		{
			name:     "options file is a directory",
			args:     []string{"options", "--options-file", home},
			errorMsg: "invalid options file",
		},
		{
			name:     "replay without paths",
			args:     []string{"replay"},
			errorMsg: "requires at least 1 arg(s)",
		},
		{
			name:     "replay missing path",
			args:     []string{"replay", filepath.Join(home, "missing.yaml")},
			errorMsg: "no such file",
		},
		{
			name:     "invalid command",
			args:     []string{"invalid-command"},
			errorMsg: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := run(t, home, tt.args...)
			require.Error(t, err)
			assert.Contains(t, output, tt.errorMsg)
		})
	}
}

func TestCLI_Replay(t *testing.T) {
	home := t.TempDir()
	board := filepath.Join(t.TempDir(), "board.txt")

	output, err := run(t, home, "replay", "--leaderboard-file", board, replayTestdata())
	require.NoError(t, err, output)
	assert.Contains(t, output, "== lose on easy")
	assert.Contains(t, output, "== exit from the menu")
	assert.Contains(t, output, "== wrap around the border")
	assert.Contains(t, output, "Game over!")
	assert.Equal(t, 3, strings.Count(output, "ok: "))
	assert.NoFileExists(t, board, "replays without --persist must not touch the leaderboard")

	output, err = run(t, home, "replay", "--persist", "--leaderboard-file", board,
		filepath.Join(replayTestdata(), "lose_easy.yaml"))
	require.NoError(t, err, output)
	output, err = run(t, home, "scores", "--leaderboard-file", board)
	require.NoError(t, err)
	assert.Contains(t, output, " 1. bob")
}

func TestCLI_ReplayExpectationFailure(t *testing.T) {
	home := t.TempDir()
	script := filepath.Join(t.TempDir(), "wrong.yaml")
	require.NoError(t, os.WriteFile(script, []byte(`name: wrong expectation
steps:
  - key: down
expect:
  state: scoreboard
`), 0o600))

	output, err := run(t, home, "replay", script)
	require.Error(t, err)
	assert.Contains(t, output, "FAIL: replay expectation not met")
	assert.Contains(t, output, "1 of 1 replays")
}

func TestCLI_ReplayInvalidScript(t *testing.T) {
	home := t.TempDir()
	script := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(script, []byte("name: bad\nsteps: [{key: teleport}]\n"), 0o600))

	output, err := run(t, home, "replay", script)
	require.Error(t, err)
	assert.Contains(t, output, "invalid replay script")
}
