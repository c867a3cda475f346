package leaderboard

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/snakeworks/termsnake/internal/storage"
	"github.com/snakeworks/termsnake/internal/validate"
)

// ErrInvalidEntry is returned by Submit for a result the file format cannot hold.
var ErrInvalidEntry = errors.New("invalid leaderboard entry")

// MaxEntries caps the ranking; lower scores are evicted past this size.
const MaxEntries = 10

// Entry is one ranked result.
type Entry struct {
	Name  string `json:"name"  validate:"playername"`
	Score int    `json:"score" validate:"min=0"`
}

// Board is the file-backed top-N ranking, kept sorted by descending score.
type Board struct {
	Path string

	entries []Entry
	loaded  bool
}

// New creates a Board for path. An empty path keeps the board in memory only.
func New(path string) (*Board, error) {
	expandedPath, err := storage.ExpandTilde(path)
	if err != nil {
		return nil, err
	}
	return &Board{Path: expandedPath}, nil
}

// Load reads the persisted entries once per Board. A missing file is an empty
// board. An unreadable or malformed file also leaves the board empty, and the
// returned error wraps storage.ErrUnavailable.
func (b *Board) Load() error {
	if b.loaded {
		return nil
	}
	b.loaded = true
	if b.Path == "" {
		return nil
	}

	logrus.Debug("Loading leaderboard from: ", b.Path)
	data, err := storage.ReadFile(b.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		logrus.WithField("path", b.Path).WithError(err).Warn("Unable to read leaderboard; starting empty")
		return fmt.Errorf("%w: read leaderboard: %w", storage.ErrUnavailable, err)
	}

	entries, err := parse(data)
	if err != nil {
		logrus.WithField("path", b.Path).WithError(err).Warn("Malformed leaderboard; starting empty")
		return fmt.Errorf("%w: %s: %w", storage.ErrUnavailable, b.Path, err)
	}
	b.entries = entries
	return nil
}

// Submit ranks a new result and persists the board. The entry is placed before
// the first entry with a strictly lower score, so equal scores keep insertion
// order. The persisted error, if any, wraps storage.ErrUnavailable; the
// in-memory board is updated regardless. An entry that would not load back
// is rejected with ErrInvalidEntry and leaves the board untouched.
func (b *Board) Submit(name string, score int) error {
	if err := validate.Struct(Entry{Name: name, Score: score}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	if err := b.Load(); err != nil {
		logrus.WithError(err).Debug("Submitting to an empty leaderboard")
	}

	at := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].Score < score })
	b.entries = append(b.entries, Entry{})
	copy(b.entries[at+1:], b.entries[at:])
	b.entries[at] = Entry{Name: name, Score: score}
	if len(b.entries) > MaxEntries {
		b.entries = b.entries[:MaxEntries]
	}

	logrus.WithFields(logrus.Fields{"player": name, "score": score, "rank": at + 1}).Info("Score submitted")
	return b.Persist()
}

// Persist rewrites the whole file with the current entries.
func (b *Board) Persist() error {
	if b.Path == "" {
		return nil
	}
	return storage.WriteFileAtomic(b.Path, format(b.entries))
}

// Entries returns a copy of the ranking, best first.
func (b *Board) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len is the number of ranked entries.
func (b *Board) Len() int { return len(b.entries) }

// parse decodes "<name> <score>" lines, keeping at most MaxEntries of them.
func parse(data []byte) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNo := 1; scanner.Scan() && len(entries) < MaxEntries; lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 { //nolint:mnd // <name> <score>
			return nil, fmt.Errorf("line %d: expected <name> <score>", lineNo)
		}
		score, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		e := Entry{Name: fields[0], Score: score}
		if err := validate.Struct(e); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	// Hand-edited files may be out of order.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	return entries, nil
}

func format(entries []Entry) []byte {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Name+" "+strconv.Itoa(e.Score))
	}
	return []byte(strings.Join(lines, "\n"))
}
