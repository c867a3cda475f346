package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/snakeworks/termsnake/internal/app"
	"github.com/snakeworks/termsnake/internal/leaderboard"
	"github.com/snakeworks/termsnake/internal/replay"
	"github.com/snakeworks/termsnake/internal/storage"
	"github.com/snakeworks/termsnake/internal/tui"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	leaderboardFile = "~/.termsnake/leaderboard.txt"
	optionsFile     = "~/.termsnake/options.txt"
	baseTick        = app.DefaultBaseTick
	logFile         string
	verbose         bool
	jsonOutput      bool
	persistReplays  bool

	rootCmd = &cobra.Command{
		Use:   "termsnake",
		Short: "A classic snake game for the terminal.",
		Long: `Steer the snake with the arrow keys or WASD, eat food to grow and score, and avoid the walls and your own tail. ` +
			`Fill the whole field to win. The ten best scores are kept on a local leaderboard.`,
		PersistentPreRun: setupLogging,
		Run:              playGame,
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to avoid polluting stdout, especially for --json output.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append logs to this file (logs are hidden while the game is on screen otherwise)")
	rootCmd.PersistentFlags().StringVar(&leaderboardFile, "leaderboard-file", leaderboardFile, "Path of the leaderboard file")
	rootCmd.PersistentFlags().StringVar(&optionsFile, "options-file", optionsFile, "Path of the game options file")
	rootCmd.PersistentFlags().DurationVar(&baseTick, "base-tick", baseTick, "Snake step period on Easy; Normal and Hard are 0.8x and 0.6x of it")

	scoresCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the leaderboard in JSON format")
	replayCmd.Flags().BoolVar(&persistReplays, "persist", false, "Record replayed scores on the real leaderboard")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(replayCmd)

	optionsCmd.AddCommand(optionsSetCmd)
	optionsCmd.AddCommand(optionsResetCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

func setupLogging(_ *cobra.Command, _ []string) {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if logFile == "" {
		return
	}
	path, err := storage.ExpandTilde(logFile)
	if err != nil {
		logrus.Fatal(err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logrus.Fatalf("Unable to open log file: %v", err)
	}
	logrus.SetOutput(f)
}

func openLeaderboard() *leaderboard.Board {
	board, err := leaderboard.New(leaderboardFile)
	if err != nil {
		logrus.Fatal(err)
	}
	return board
}

func openOptions() *storage.OptionsStore {
	store, err := storage.NewOptionsStore(optionsFile)
	if err != nil {
		logrus.Fatal(err)
	}
	return store
}

func playGame(cmd *cobra.Command, _ []string) {
	if baseTick <= 0 {
		logrus.Fatalf("Invalid --base-tick %s: must be positive", baseTick)
	}
	m := app.NewMachine(app.Config{
		Options:     openOptions(),
		Leaderboard: openLeaderboard(),
		BaseTick:    baseTick,
	})
	if err := tui.Run(cmd.Context(), m); err != nil {
		logrus.Fatalf("Game failed: %v", err)
	}
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game (same as running without a command)",
	Args:  cobra.NoArgs,
	Run:   playGame,
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the leaderboard",
	Long:  "Print the ten best scores recorded on this machine, best first.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		board := openLeaderboard()
		if err := board.Load(); err != nil {
			logrus.Warn(err)
		}
		if jsonOutput {
			if err := board.PrintJSON(os.Stdout); err != nil {
				logrus.Fatal(err)
			}
			return
		}
		board.Print(os.Stdout)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show or change the game options",
	Long: fmt.Sprintf("Show the game options. Use 'options set' to change %s or %s, and 'options reset' to restore the defaults.",
		storage.KeyCutItself, storage.KeyPassBorder),
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := openOptions().Options()
		if err != nil {
			logrus.Warn(err)
		}
		fmt.Fprintln(os.Stdout, opts)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var optionsSetCmd = &cobra.Command{
	Use:   "set [KEY] [VALUE]",
	Short: "Set one game option",
	Long:  fmt.Sprintf("Set %s or %s to true or false.", storage.KeyCutItself, storage.KeyPassBorder),
	Args:  cobra.ExactArgs(2), //nolint:mnd // 'set' takes a key and a value by CLI contract
	Run: func(cmd *cobra.Command, args []string) {
		value, err := strconv.ParseBool(args[1])
		if err != nil {
			logrus.Fatalf("Invalid value %q for %s: expected true or false", args[1], args[0])
		}
		store := openOptions()
		opts, err := store.Options()
		if err != nil {
			logrus.Warn(err)
		}
		if err := opts.Set(args[0], value); err != nil {
			logrus.Fatal(err)
		}
		if err := store.Save(opts); err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintf(os.Stdout, "%s = %t\n", args[0], value)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var optionsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default game options",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := openOptions().Reset(); err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintln(os.Stdout, "Options reset to defaults")
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var replayCmd = &cobra.Command{
	Use:   "replay [SCRIPT_OR_DIR...]",
	Short: "Play scripted key sequences headless",
	Long: "Run YAML replay scripts against the game on a virtual clock and print the final screen of each. " +
		"Directories are searched for *.yaml and *.yml files. Scores go to a throwaway leaderboard unless --persist is set.",
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		paths, err := replay.Discover(cmd.Context(), args)
		if err != nil {
			logrus.Fatal(err)
		}
		if len(paths) == 0 {
			logrus.Fatal("No replay scripts found")
		}

		runner := replay.Runner{BaseTick: baseTick}
		if persistReplays {
			board := openLeaderboard()
			if err := board.Load(); err != nil {
				logrus.Warn(err)
			}
			runner.Leaderboard = board
		}

		renderer := tui.NewRenderer()
		failed := 0
		for _, path := range paths {
			s, err := replay.Load(path)
			if err != nil {
				logrus.Fatal(err)
			}
			res, err := runner.Run(cmd.Context(), s)
			if err != nil {
				logrus.Fatal(err)
			}
			fmt.Fprintf(os.Stdout, "== %s (%s, %s virtual)\n", s.Name, path, res.Duration.Truncate(time.Millisecond))
			fmt.Fprintln(os.Stdout, renderer.Render(res.Frame))
			if err := s.Check(res); err != nil {
				failed++
				fmt.Fprintf(os.Stdout, "FAIL: %v\n\n", err)
				continue
			}
			fmt.Fprintf(os.Stdout, "ok: state=%s status=%s score=%d\n\n", res.State, res.Status, res.Score)
		}
		if failed > 0 {
			logrus.Fatalf("%d of %d replays did not meet their expectations", failed, len(paths))
		}
	},
}

func main() {
	Execute()
}
