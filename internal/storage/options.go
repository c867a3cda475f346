package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/snakeworks/termsnake/internal/validate"
)

// Recognised keys of the options file.
const (
	KeyCutItself  = "snake_can_cut_itself"
	KeyPassBorder = "snake_can_pass_border"
)

// Options are the two gameplay switches persisted between runs.
type Options struct {
	CutItself  bool
	PassBorder bool
}

// Set assigns the flag named by key.
func (o *Options) Set(key string, value bool) error {
	switch key {
	case KeyCutItself:
		o.CutItself = value
	case KeyPassBorder:
		o.PassBorder = value
	default:
		return fmt.Errorf("unknown option %q (known: %s, %s)", key, KeyCutItself, KeyPassBorder)
	}
	return nil
}

// OptionsStore handles the loading and saving of the options file.
type OptionsStore struct {
	Path string `validate:"required,filepath"`

	opts   Options
	loaded bool
}

// NewOptionsStore creates a store for path. Nothing is read until Options is called.
func NewOptionsStore(path string) (*OptionsStore, error) {
	expandedPath, err := ExpandTilde(path)
	if err != nil {
		return nil, err
	}
	s := &OptionsStore{Path: expandedPath}
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid options file %q: %w", path, err)
	}
	return s, nil
}

// Options returns the persisted options, reading the file on first use only.
// A missing file yields defaults without error. An unreadable or malformed
// file yields defaults and an error wrapping ErrUnavailable.
func (s *OptionsStore) Options() (Options, error) {
	if s.loaded {
		return s.opts, nil
	}
	s.loaded = true

	logrus.Debug("Loading options file from: ", s.Path)
	data, err := ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.opts, nil
		}
		logrus.WithField("path", s.Path).WithError(err).Warn("Unable to read options; using defaults")
		return s.opts, fmt.Errorf("%w: read options: %w", ErrUnavailable, err)
	}

	opts, err := parseOptions(data)
	if err != nil {
		logrus.WithField("path", s.Path).WithError(err).Warn("Malformed options file; using defaults")
		return s.opts, fmt.Errorf("%w: %s: %w", ErrUnavailable, s.Path, err)
	}
	s.opts = opts
	return s.opts, nil
}

// Save writes opts to disk and makes them the current value.
func (s *OptionsStore) Save(opts Options) error {
	s.opts = opts
	s.loaded = true
	return WriteFileAtomic(s.Path, formatOptions(opts))
}

// Reset restores the defaults on disk.
func (s *OptionsStore) Reset() error {
	return s.Save(Options{})
}

func parseOptions(data []byte) (Options, error) {
	var opts Options
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return Options{}, fmt.Errorf("line %d: expected <key> = <value>", lineNo)
		}
		key = strings.TrimSpace(key)
		if key != KeyCutItself && key != KeyPassBorder {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return Options{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
		_ = opts.Set(key, b)
	}
	if err := scanner.Err(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func formatOptions(opts Options) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s = %t\n", KeyCutItself, opts.CutItself)
	fmt.Fprintf(&b, "%s = %t", KeyPassBorder, opts.PassBorder)
	return b.Bytes()
}

// String formats opts the way they are stored on disk.
func (o Options) String() string {
	return string(formatOptions(o))
}
