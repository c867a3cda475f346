package app

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/snakeworks/termsnake/internal/engine"
	"github.com/snakeworks/termsnake/internal/leaderboard"
	"github.com/snakeworks/termsnake/internal/storage"
	"github.com/snakeworks/termsnake/internal/validate"
)

const (
	// PollInterval is how often input is read and the machine stepped.
	PollInterval = 30 * time.Millisecond
	// DefaultBaseTick is the Easy tick period; harder tiers scale it down.
	DefaultBaseTick = 400 * time.Millisecond

	noticeDuration = 3 * time.Second
)

// State is the top-level screen of the application.
type State uint8

const (
	MainMenu State = iota
	EnterName
	EnterDifficulty
	Options
	SnakeGame
	Scoreboard
)

func (s State) String() string {
	switch s {
	case MainMenu:
		return "main menu"
	case EnterName:
		return "enter name"
	case EnterDifficulty:
		return "enter difficulty"
	case Options:
		return "options"
	case SnakeGame:
		return "snake game"
	case Scoreboard:
		return "scoreboard"
	default:
		return "unknown"
	}
}

// MenuItem is an entry of the main menu.
type MenuItem uint8

const (
	ItemNewGame MenuItem = iota
	ItemOptions
	ItemScoreboard
	ItemExit
	menuItemCount
)

// OptionItem is an entry of the options menu.
type OptionItem uint8

const (
	ItemCutItself OptionItem = iota
	ItemPassBorder
	ItemBack
	optionItemCount
)

// OptionsStore persists GameOptions.
type OptionsStore interface {
	Options() (storage.Options, error)
	Save(storage.Options) error
}

// Leaderboard ranks finished rounds.
type Leaderboard interface {
	engine.Recorder
	Load() error
	Entries() []leaderboard.Entry
}

// Session is the player currently at the keyboard.
type Session struct {
	ID        uuid.UUID
	Name      string
	Score     int
	StartedAt time.Time
}

// Config wires a Machine to its collaborators.
type Config struct {
	Options     OptionsStore
	Leaderboard Leaderboard
	// BaseTick defaults to DefaultBaseTick.
	BaseTick time.Duration
	// Difficulties defaults to engine.Difficulties; index is the digit typed.
	Difficulties []engine.Difficulty
	// Now defaults to time.Now.
	Now func() time.Time
	// NewRand supplies the random source of each round; nil seeds randomly.
	NewRand func() *rand.Rand
}

// Machine is the application controller. Every field is owned by the single
// goroutine that calls HandleKey, Step and Frame.
type Machine struct {
	cfg Config

	state      State
	menuSel    MenuItem
	optionsSel OptionItem

	opts        storage.Options
	optsLoaded  bool
	optsDirty   bool
	name        []rune
	session     Session
	difficulty  engine.Difficulty
	game        *engine.Engine
	lastAdvance time.Time

	notice      string
	noticeUntil time.Time
	done        bool
}

// NewMachine returns a Machine on the main menu.
func NewMachine(cfg Config) *Machine {
	if cfg.BaseTick <= 0 {
		cfg.BaseTick = DefaultBaseTick
	}
	if len(cfg.Difficulties) == 0 {
		cfg.Difficulties = engine.Difficulties[:]
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Machine{cfg: cfg, state: MainMenu}
}

// State returns the current screen.
func (m *Machine) State() State { return m.state }

// Done reports whether Exit was chosen.
func (m *Machine) Done() bool { return m.done }

// Session returns the active player session.
func (m *Machine) Session() Session { return m.session }

// Game returns the running engine, or nil outside SnakeGame.
func (m *Machine) Game() *engine.Engine { return m.game }

// GameStatus is the nested SnakeGame sub-state.
func (m *Machine) GameStatus() engine.Status {
	if m.game == nil {
		return engine.NotInitialized
	}
	return m.game.Status()
}

// PollInterval is how long the loop sleeps between iterations in the current state.
func (m *Machine) PollInterval() time.Duration { return PollInterval }

// HandleKey applies one key press to the current state.
func (m *Machine) HandleKey(k Key) {
	if k.Code == KeyNone {
		return
	}
	switch m.state {
	case MainMenu:
		m.handleMainMenu(k)
	case EnterName:
		m.handleEnterName(k)
	case EnterDifficulty:
		m.handleEnterDifficulty(k)
	case Options:
		m.handleOptions(k)
	case SnakeGame:
		m.handleSnakeGame(k)
	case Scoreboard:
		if k.Code == KeyEscape {
			m.toMainMenu()
		}
	}
}

func (m *Machine) handleMainMenu(k Key) {
	if step := k.menuStep(); step != 0 {
		m.menuSel = MenuItem((int(m.menuSel) + step + int(menuItemCount)) % int(menuItemCount))
		return
	}
	if k.Code != KeyEnter {
		return
	}
	switch m.menuSel {
	case ItemNewGame:
		m.name = m.name[:0]
		m.state = EnterName
	case ItemOptions:
		m.loadOptions()
		m.optionsSel = ItemCutItself
		m.optsDirty = false
		m.state = Options
	case ItemScoreboard:
		if err := m.cfg.Leaderboard.Load(); err != nil {
			m.setNotice("Leaderboard unavailable: %v", err)
		}
		m.state = Scoreboard
	case ItemExit:
		logrus.Debug("Exit selected")
		m.done = true
	}
}

func (m *Machine) handleEnterName(k Key) {
	switch k.Code {
	case KeyBackspace:
		if len(m.name) > 0 {
			m.name = m.name[:len(m.name)-1]
		}
	case KeyEscape:
		m.toMainMenu()
	case KeyEnter:
		if len(m.name) == 0 {
			return
		}
		if err := validate.PlayerName(string(m.name)); err != nil {
			m.setNotice("Invalid name: %v", err)
			return
		}
		m.toEnterDifficulty()
	default:
		if r, ok := k.Letter(); ok && len(m.name) < validate.MaxNameLength {
			m.name = append(m.name, r)
		}
	}
}

func (m *Machine) handleEnterDifficulty(k Key) {
	if k.Code == KeyEscape {
		m.toMainMenu()
		return
	}
	digit, ok := k.Digit()
	if !ok || digit >= len(m.cfg.Difficulties) {
		return
	}
	m.startGame(m.cfg.Difficulties[digit])
}

func (m *Machine) handleOptions(k Key) {
	if step := k.menuStep(); step != 0 {
		m.optionsSel = OptionItem((int(m.optionsSel) + step + int(optionItemCount)) % int(optionItemCount))
		return
	}
	switch k.Code {
	case KeySpace:
		switch m.optionsSel {
		case ItemCutItself:
			m.opts.CutItself = !m.opts.CutItself
			m.optsDirty = true
		case ItemPassBorder:
			m.opts.PassBorder = !m.opts.PassBorder
			m.optsDirty = true
		case ItemBack:
		}
	case KeyEnter:
		if m.optionsSel == ItemBack {
			m.leaveOptions()
		}
	case KeyEscape:
		m.leaveOptions()
	}
}

func (m *Machine) handleSnakeGame(k Key) {
	status := m.GameStatus()
	switch {
	case !status.Finished():
		if k.Code == KeyEscape {
			logrus.WithField("session", m.session.ID).Debug("Round aborted")
			m.toMainMenu()
			return
		}
		if d, ok := k.Direction(); ok && m.game != nil {
			m.game.SetPendingDirection(d)
		}
	case k.Code == KeyEscape:
		m.toMainMenu()
	case status == engine.Lost && k.Code == KeyEnter:
		m.startGame(m.difficulty)
	case status == engine.Lost && k.Code == KeySpace:
		m.toEnterDifficulty()
	}
}

// Step advances whatever is time-driven in the current state.
func (m *Machine) Step(now time.Time) {
	if m.notice != "" && !now.Before(m.noticeUntil) {
		m.notice = ""
	}
	if m.state != SnakeGame || m.game == nil {
		return
	}

	switch m.game.Status() {
	case engine.CanBegin:
		if err := m.game.Start(); err != nil {
			m.setNotice("Unable to start: %v", err)
			m.toEnterDifficulty()
			return
		}
		m.lastAdvance = now
	case engine.Ongoing:
		if now.Sub(m.lastAdvance) < m.difficulty.TickPeriod(m.cfg.BaseTick) {
			return
		}
		m.lastAdvance = now
		status := m.game.Tick()
		m.session.Score = m.game.Score()
		if status.Finished() {
			if err := m.game.SubmitErr(); err != nil {
				m.setNotice("Score not saved: %v", err)
			}
		}
	case engine.NotInitialized, engine.Won, engine.Lost:
	}
}

func (m *Machine) startGame(d engine.Difficulty) {
	opts := m.loadOptions()
	log := logrus.WithFields(logrus.Fields{
		"session":    m.session.ID,
		"player":     m.session.Name,
		"difficulty": d.Level,
	})
	engineOpts := []engine.Option{
		engine.WithRules(engine.Rules{CutItself: opts.CutItself, PassBorder: opts.PassBorder}),
		engine.WithPlayer(m.session.Name),
		engine.WithRecorder(m.cfg.Leaderboard),
		engine.WithClock(m.cfg.Now),
		engine.WithLogger(log),
	}
	if m.cfg.NewRand != nil {
		engineOpts = append(engineOpts, engine.WithRand(m.cfg.NewRand()))
	}

	game := engine.New(engineOpts...)
	if err := game.Initialize(d); err != nil {
		log.WithError(err).Warn("Refusing to start round")
		m.setNotice("Cannot start %s: %v", d.Level, err)
		m.toEnterDifficulty()
		return
	}

	m.game = game
	m.difficulty = d
	m.session.Score = 0
	m.session.StartedAt = m.cfg.Now()
	m.state = SnakeGame
	log.Info("Round initialized")
}

func (m *Machine) toEnterDifficulty() {
	m.game = nil
	m.session = Session{
		ID:        uuid.New(),
		Name:      string(m.name),
		StartedAt: m.cfg.Now(),
	}
	m.state = EnterDifficulty
}

// toMainMenu abandons the session and puts the cursor back on New game.
func (m *Machine) toMainMenu() {
	m.game = nil
	m.menuSel = ItemNewGame
	m.name = m.name[:0]
	m.session = Session{}
	m.state = MainMenu
}

func (m *Machine) leaveOptions() {
	if m.optsDirty {
		if err := m.cfg.Options.Save(m.opts); err != nil {
			logrus.WithError(err).Warn("Unable to save options")
			m.setNotice("Options not saved: %v", err)
		}
		m.optsDirty = false
	}
	m.state = MainMenu
}

// loadOptions reads the options store on first use.
func (m *Machine) loadOptions() storage.Options {
	if m.optsLoaded {
		return m.opts
	}
	m.optsLoaded = true
	opts, err := m.cfg.Options.Options()
	if err != nil {
		m.setNotice("Options unavailable, using defaults: %v", err)
	}
	m.opts = opts
	return m.opts
}

func (m *Machine) setNotice(format string, args ...any) {
	m.notice = fmt.Sprintf(format, args...)
	m.noticeUntil = m.cfg.Now().Add(noticeDuration)
}
