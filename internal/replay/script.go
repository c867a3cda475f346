// Package replay plays scripted key sequences through the application state
// machine on a virtual clock. A script with a fixed seed always produces the
// same game, which makes replays usable as regression checks for gameplay.
package replay

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/snakeworks/termsnake/internal/app"
	"github.com/snakeworks/termsnake/internal/engine"
	"github.com/snakeworks/termsnake/internal/storage"
	"github.com/snakeworks/termsnake/internal/validate"
)

var (
	// ErrInvalidScript is returned for scripts that cannot be played.
	ErrInvalidScript = errors.New("invalid replay script")
	// ErrExpectation is returned when a replay ends differently than its script expects.
	ErrExpectation = errors.New("replay expectation not met")
)

// Script is a replay file.
//
//	name: lose on easy
//	seed: 7
//	options:
//	  pass_border: false
//	steps:
//	  - key: enter
//	  - text: bob
//	  - key: enter
//	  - key: "0"
//	  - wait: 5s
//	expect:
//	  state: snake game
//	  status: lost
type Script struct {
	Name    string       `yaml:"name"    validate:"required"`
	Seed    uint64       `yaml:"seed"`
	Options Options      `yaml:"options"`
	Steps   []Step       `yaml:"steps"   validate:"required,min=1,dive"`
	Expect  *Expectation `yaml:"expect"`

	keys [][]app.Key
}

// Options are the game options in effect for the whole replay.
type Options struct {
	CutItself  bool `yaml:"cut_itself"`
	PassBorder bool `yaml:"pass_border"`
}

// Step is one scripted action: a single named key, a run of typed
// characters, or a pause of virtual time. Exactly one field is set.
type Step struct {
	Key  string        `yaml:"key"`
	Text string        `yaml:"text"`
	Wait time.Duration `yaml:"wait" validate:"min=0"`
}

// Expectation describes how a replay must end. Unset fields are not checked.
type Expectation struct {
	State   string `yaml:"state"`
	Status  string `yaml:"status"`
	Score   *int   `yaml:"score"   validate:"omitempty,min=0"`
	Entries *int   `yaml:"entries" validate:"omitempty,min=0,max=10"`
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}

	s.keys = make([][]app.Key, len(s.Steps))
	for i, step := range s.Steps {
		keys, err := step.decode()
		if err != nil {
			return nil, fmt.Errorf("%w: step %d: %w", ErrInvalidScript, i+1, err)
		}
		s.keys[i] = keys
	}

	if s.Expect != nil {
		if _, _, err := s.Expect.state(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
		}
		if _, _, err := s.Expect.status(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
		}
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := storage.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s Step) decode() ([]app.Key, error) {
	set := 0
	for _, isSet := range []bool{s.Key != "", s.Text != "", s.Wait > 0} {
		if isSet {
			set++
		}
	}
	if set != 1 {
		return nil, errors.New("exactly one of key, text or wait must be set")
	}

	switch {
	case s.Key != "":
		k, ok := app.ParseKey(s.Key)
		if !ok {
			return nil, fmt.Errorf("unknown key %q", s.Key)
		}
		return []app.Key{k}, nil
	case s.Text != "":
		keys := make([]app.Key, 0, len(s.Text))
		for _, r := range s.Text {
			keys = append(keys, app.RuneKey(r))
		}
		return keys, nil
	default:
		return nil, nil
	}
}

func (e *Expectation) state() (app.State, bool, error) {
	if e.State == "" {
		return 0, false, nil
	}
	for st := app.MainMenu; st <= app.Scoreboard; st++ {
		if st.String() == e.State {
			return st, true, nil
		}
	}
	return 0, false, fmt.Errorf("unknown state %q", e.State)
}

func (e *Expectation) status() (engine.Status, bool, error) {
	if e.Status == "" {
		return 0, false, nil
	}
	for st := engine.NotInitialized; st <= engine.Lost; st++ {
		if st.String() == e.Status {
			return st, true, nil
		}
	}
	return 0, false, fmt.Errorf("unknown status %q", e.Status)
}
